package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/esimov/spotlight"
	"github.com/esimov/spotlight/server"
	"github.com/esimov/spotlight/utils"
)

const HelpBanner = `
┌─┐┌─┐┌─┐┌┬┐┬  ┬┌─┐┬ ┬┌┬┐
└─┐├─┘│ │ │ │  ││ ┬├─┤ │
└─┘┴  └─┘ ┴ ┴─┘┴└─┘┴ ┴ ┴

Dims everything on an image except the regions you want to highlight.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", pipeName, "Source")
	destination = flag.String("out", pipeName, "Destination")
	layoutFile  = flag.String("layout", "", "Layout document (YAML or JSON) measuring the selectors")
	container   = flag.String("container", spotlight.DefaultContainer, "Container selector")
	holes       = flag.String("holes", "", "Selector list of the regions left visible")
	faceDetect  = flag.Bool("face", false, "Use face detection")
	cascade     = flag.String("cc", "", "Cascade classifier")
	faceAngle   = flag.Float64("angle", 0.0, "Plane rotated faces angle")
	minQuality  = flag.Float64("quality", 5.0, "Minimum face detection quality")
	padding     = flag.Float64("pad", 0, "Padding around the detected faces")
	style       = flag.String("style", spotlight.StyleFill, "Panel style (fill, blur)")
	panelColor  = flag.String("color", "#000000", "Panel color")
	opacity     = flag.Float64("opacity", 0.7, "Panel opacity")
	composite   = flag.String("comp", "src_over", "Composite operator")
	blendMode   = flag.String("blend", "", "Blend mode")
	blurRadius  = flag.Float64("blur", 8, "Blur radius of the blur style")
	jsonOutput  = flag.Bool("json", false, "Write the computed masks as JSON")
	preview     = flag.Bool("preview", false, "Show the masked image in the terminal")
	pattern     = flag.String("pattern", spotlight.DefaultPattern, "Files processed from a source directory")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
	serveAddr   = flag.String("serve", "", "Serve the mask API on the given address instead")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(*serveAddr) > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(*serveAddr, nil).Run(ctx); err != nil {
			log.Fatalf(utils.DecorateText("Server error: %v", utils.ErrorMessage), err)
		}
		return
	}

	if *faceDetect && len(*cascade) == 0 {
		log.Fatalf(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!\n", utils.ErrorMessage))
	}

	proc := &spotlight.Processor{
		Container:  *container,
		FaceDetect: *faceDetect,
		Classifier: *cascade,
		FaceAngle:  *faceAngle,
		MinQuality: *minQuality,
		Padding:    *padding,
		Style:      *style,
		Color:      *panelColor,
		Opacity:    opacity,
		Composite:  *composite,
		BlendMode:  *blendMode,
		BlurRadius: *blurRadius,
		JSON:       *jsonOutput,
		Preview:    *preview,
	}
	if len(*holes) > 0 {
		proc.Holes = []string{*holes}
	}

	if len(*layoutFile) > 0 {
		layout, err := spotlight.LoadLayout(*layoutFile)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the layout: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		proc.Layout = layout
	}

	op := &spotlight.Ops{
		Src:      *source,
		Dst:      *destination,
		PipeName: pipeName,
		Pattern:  *pattern,
		Workers:  *workers,
	}

	if err := proc.Execute(op); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError masking the image: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}

	if *destination != pipeName {
		stats := proc.Summary()
		fmt.Fprintf(os.Stderr, "Panels: %s, masked area: %s\n",
			utils.DecorateText(fmt.Sprint(stats.Panels), utils.StatusMessage),
			utils.DecorateText(utils.FormatPercent(stats.Coverage), utils.StatusMessage),
		)
	}
}
