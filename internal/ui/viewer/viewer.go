package viewer

import (
	"image"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

// Run opens a window for img and blocks until it closes.
func Run(title string, coord *zoom.Coordinator, img image.Image, verbose bool) error {
	go func() {
		w := new(app.Window)
		w.Option(app.Title(title), app.Size(unit.Dp(800), unit.Dp(800)))
		ui := New(w, coord, img)
		ui.SetVerbose(verbose)
		if err := ui.Run(); err != nil {
			log.Printf("viewer: %v", err)
		}
		os.Exit(0)
	}()

	app.Main()
	return nil
}
