package spotlight

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/esimov/spotlight/utils"
	"golang.org/x/term"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// DefaultPattern selects the images processed from a source directory.
const DefaultPattern = "**/*.{jpg,jpeg,png,bmp,gif}"

// Ops holds the source and destination of a batch execution.
type Ops struct {
	Src, Dst, PipeName string
	// Pattern is the doublestar pattern matched against the paths relative
	// to a source directory. DefaultPattern is used when empty.
	Pattern string
	Workers int
	// Quiet suppresses the per file status messages.
	Quiet bool
}

// result holds the relevant information about the masking process and the generated image.
type result struct {
	path string
	err  error
}

// validOutputs are the destination extensions having an encoder.
var validOutputs = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Execute masks a single image, a piped image, a downloaded image or every
// image of a directory tree. Directory sources are processed concurrently.
func (p *Processor) Execute(op *Ops) error {
	defaultMsg := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ SPOTLIGHT", utils.StatusMessage),
		utils.DecorateText("⇢ masking image...", utils.DefaultMessage),
	)
	if p.Spinner == nil {
		p.Spinner = utils.NewSpinner(defaultMsg, time.Millisecond*80)
	}
	if err := p.init(); err != nil {
		return err
	}

	// Capture CTRL-C signal and restores back the cursor visibility.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-signalChan; ok {
			p.Spinner.RestoreCursor()
			os.Exit(1)
		}
	}()
	defer func() {
		signal.Stop(signalChan)
		close(signalChan)
	}()

	var (
		fi  os.FileInfo
		err error
	)

	src := op.Src
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(op.Src) {
		f, err := utils.DownloadImage(op.Src)
		if f != nil {
			defer os.Remove(f.Name())
			defer f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
		src = f.Name()
	}

	// Check if the source is a pipe name or a regular file.
	if src == op.PipeName {
		fi, err = os.Stdin.Stat()
	} else {
		fi, err = os.Stat(src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %w", err)
	}

	now := time.Now()

	switch mode := fi.Mode(); {
	case mode.IsDir():
		err = p.executeDir(op, src)
	case mode.IsRegular() || mode&os.ModeNamedPipe != 0 || src == op.PipeName:
		if op.Dst != op.PipeName {
			if err := p.checkOutput(op.Dst); err != nil {
				return err
			}
		}
		op.startSpinner(p)
		err = op.process(p, src, op.Dst)
		op.stopSpinner(p, err)
		op.printOpStatus(op.Dst, err)
	default:
		err = fmt.Errorf("unsupported source: %s", op.Src)
	}
	if err != nil {
		return err
	}

	if !op.Quiet {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return nil
}

func (p *Processor) checkOutput(dst string) error {
	ext := strings.ToLower(filepath.Ext(dst))
	if p.JSON {
		if ext != ".json" {
			return fmt.Errorf("%v file type not supported for json output", ext)
		}
		return nil
	}
	if !utils.Contains(validOutputs, ext) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// executeDir processes recursively the image files of the source directory
// concurrently.
func (p *Processor) executeDir(op *Ops, src string) error {
	if op.Dst == op.PipeName {
		return errors.New("a directory source needs a destination directory")
	}
	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return fmt.Errorf("unable to create the destination directory: %w", err)
	}
	p.Preview = false

	pattern := op.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid file pattern: %q", pattern)
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	ch := make(chan result)
	done := make(chan interface{})
	defer close(done)

	paths, errc := walkDir(done, src, pattern)
	op.startSpinner(p)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(p, src, ch, done, paths)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var (
		firstErr error
		results  []result
	)
	for res := range ch {
		if res.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("%s: %w", res.path, res.err)
		}
		results = append(results, res)
	}
	op.stopSpinner(p, firstErr)
	for _, res := range results {
		op.printOpStatus(res.path, res.err)
	}

	if err := <-errc; err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// consumer reads the relative path names from the paths channel and masks
// every source image into the destination tree.
func (op *Ops) consumer(
	p *Processor,
	root string,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for rel := range paths {
		dst := filepath.Join(op.Dst, filepath.FromSlash(rel))
		if p.JSON {
			dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".json"
		} else if !utils.Contains(validOutputs, strings.ToLower(filepath.Ext(dst))) {
			dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
		}

		err := os.MkdirAll(filepath.Dir(dst), 0755)
		if err == nil {
			err = op.process(p, filepath.Join(root, filepath.FromSlash(rel)), dst)
		}

		select {
		case <-done:
			return
		case res <- result{
			path: dst,
			err:  err,
		}:
		}
	}
}

// startSpinner starts the progress indicator.
func (op *Ops) startSpinner(p *Processor) {
	if !op.Quiet {
		p.Spinner.Start()
	}
}

// stopSpinner stops the progress indicator with a message reporting err.
func (op *Ops) stopSpinner(p *Processor, err error) {
	if op.Quiet {
		return
	}
	if err != nil {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ SPOTLIGHT", utils.StatusMessage),
			utils.DecorateText("masking image failed...", utils.DefaultMessage),
			utils.DecorateText("✘", utils.ErrorMessage),
		)
	} else {
		p.Spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ SPOTLIGHT", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the image has been masked successfully ✔", utils.SuccessMessage),
		)
	}
	p.Spinner.Stop()
}

// process calls the masking processor over the source image and returns the error in case exists.
func (op *Ops) process(p *Processor, in, out string) error {
	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		return err
	}

	defer func() {
		if img, ok := src.(*os.File); ok && img != os.Stdin {
			if err := img.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	err = p.Process(src, dst)
	if f, ok := dst.(*os.File); ok && f != os.Stdout {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			// remove the generated file in case of an error
			os.Remove(f.Name())
		}
	}
	return err
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)

	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			if f, ok := src.(*os.File); ok && f != os.Stdin {
				f.Close()
			}
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the masking process.
func (op *Ops) printOpStatus(fname string, err error) {
	if op.Quiet {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s%s",
			utils.DecorateText("\nError masking the image: "+filepath.Base(fname), utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != op.PipeName {
		fmt.Fprintf(os.Stderr, "\nThe image has been saved as: %s %s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}

// walkDir starts a new goroutine to walk the specified directory tree and
// sends the slash separated path, relative to src, of each regular file
// matching the pattern to a new channel. It finishes in case the done
// channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	pattern string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after the walk returns.
		defer close(pathChan)

		errChan <- doublestar.GlobWalk(os.DirFS(src), pattern, func(path string, d fs.DirEntry) error {
			if !d.Type().IsRegular() {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}
