package spotlight

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/spotlight/utils"
	"github.com/gdamore/tcell/v2"
)

// upperHalfBlock paints two vertically stacked pixels in one terminal cell:
// the foreground colors the upper one, the background the lower one.
const upperHalfBlock = '▀'

// Preview shows a masked image on a terminal screen until the user quits
// with Esc, q or Ctrl-C.
type Preview struct {
	screen tcell.Screen
	img    *image.NRGBA
	masks  []Mask
}

// NewPreview returns a preview of img drawn on an initialized screen.
func NewPreview(screen tcell.Screen, img *image.NRGBA, masks []Mask) *Preview {
	return &Preview{screen: screen, img: img, masks: masks}
}

// Draw renders the image scaled to fit the screen, leaving the last row for
// the status line.
func (pv *Preview) Draw() {
	pv.screen.Clear()

	w, h := pv.screen.Size()
	if w <= 0 || h <= 1 {
		pv.screen.Show()
		return
	}

	// Resize the image but retain the aspect ratio in case it does not fit.
	fit := imaging.Fit(pv.img, w, (h-1)*2, imaging.Box)
	b := fit.Bounds()
	for y := 0; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			top := fit.NRGBAAt(x, y)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if y+1 < b.Dy() {
				bottom := fit.NRGBAAt(x, y+1)
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			}
			pv.screen.SetContent(x, y/2, upperHalfBlock, nil, style)
		}
	}

	pv.drawStatus(h - 1)
	pv.screen.Show()
}

func (pv *Preview) drawStatus(row int) {
	stats := TotalStats(pv.masks)
	status := fmt.Sprintf(" %d panels, %s masked  (esc/q to quit)",
		stats.Panels, utils.FormatPercent(stats.Coverage))

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	w, _ := pv.screen.Size()
	x := 0
	for _, r := range status {
		if x >= w {
			break
		}
		pv.screen.SetContent(x, row, r, nil, style)
		x++
	}
}

// HandleEvent processes one screen event and reports whether the preview
// should quit.
func (pv *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
			return true
		}
	case *tcell.EventResize:
		pv.screen.Sync()
		pv.Draw()
	}
	return false
}

// Run draws the preview and blocks until the user quits or the screen is
// finalized.
func (pv *Preview) Run() {
	pv.Draw()
	for {
		ev := pv.screen.PollEvent()
		if ev == nil || pv.HandleEvent(ev) {
			return
		}
	}
}

// showPreview opens the terminal, shows the masked image and restores the
// terminal once the user quits.
func (p *Processor) showPreview(img *image.NRGBA, masks []Mask) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not open the terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("could not initialize the terminal screen: %w", err)
	}
	defer screen.Fini()

	if p.Spinner != nil {
		p.Spinner.Stop()
	}
	NewPreview(screen, img, masks).Run()
	return nil
}
