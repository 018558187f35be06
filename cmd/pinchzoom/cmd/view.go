package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pinchzoom/internal/ui/viewer"
	"github.com/OpenTraceLab/pinchzoom/pkg/imagemeta"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

var viewCmd = &cobra.Command{
	Use:   "view <image_file>",
	Short: "View an image with touch pan and pinch zoom",
	Long: `Opens an image fitted to the window width. Drag with one finger to pan,
pinch with two to zoom, double-tap to toggle between min and max zoom.

Controls:
  + / -        - Zoom in/out one step
  Toolbar      - Zoom buttons and Fit/2x/Max presets
  Mouse drag   - Pan (primary button)`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	filename := args[0]

	cfg, err := loadZoomConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("Loading image: %s\n", filename)
	img, info, err := imagemeta.Load(filename)
	if err != nil {
		return fmt.Errorf("error loading image: %w", err)
	}
	fmt.Printf("  Format: %s\n", info.Format)
	fmt.Printf("  Size: %d x %d\n", info.Width, info.Height)
	if info.Orientation > 1 {
		fmt.Printf("  EXIF orientation: %d\n", info.Orientation)
	}

	geo, err := zoom.NewImageGeometry(info.Size())
	if err != nil {
		return err
	}
	coord, err := zoom.New(geo, cfg)
	if err != nil {
		return err
	}
	if verbose {
		coord.SetLogger(logf)
	}

	return viewer.Run("pinchzoom - "+filepath.Base(filename), coord, img, verbose)
}
