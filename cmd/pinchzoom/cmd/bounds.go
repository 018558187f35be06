package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pinchzoom/pkg/geom"
	"github.com/OpenTraceLab/pinchzoom/pkg/imagemeta"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

var (
	boundsViewport string
	boundsZooms    []float64
)

var boundsCmd = &cobra.Command{
	Use:   "bounds <image_file|WIDTHxHEIGHT>",
	Short: "Show translation bounds for an image",
	Long: `Prints the allowed translation range of an image placed in a viewport
at one or more zoom levels. The image may be a file or a raw size.`,
	Args: cobra.ExactArgs(1),
	RunE: runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
	boundsCmd.Flags().StringVar(&boundsViewport, "viewport", "400x400", "viewport size WIDTHxHEIGHT")
	boundsCmd.Flags().Float64SliceVar(&boundsZooms, "zoom", nil, "zoom levels (default min and max zoom)")
}

func runBounds(cmd *cobra.Command, args []string) error {
	cfg, err := loadZoomConfig(cmd)
	if err != nil {
		return err
	}
	viewport, err := parseSize(boundsViewport)
	if err != nil {
		return err
	}
	size, err := resolverFor(args[0]).Resolve(args[0])
	if err != nil {
		return err
	}
	geo, err := zoom.NewImageGeometry(size)
	if err != nil {
		return err
	}

	zooms := boundsZooms
	if len(zooms) == 0 {
		zooms = []float64{cfg.MinZoom, cfg.MaxZoom}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Image %gx%g in viewport %gx%g (base scale %.4f)\n",
		geo.Width, geo.Height, viewport.Width, viewport.Height, zoom.BaseScale(viewport, geo))
	for _, z := range zooms {
		b, ok := zoom.ComputeBounds(viewport, geo, z)
		if !ok {
			fmt.Fprintf(out, "  zoom %-6g  no bounds\n", z)
			continue
		}
		fmt.Fprintf(out, "  zoom %-6g  x [%.2f, %.2f]  y [%.2f, %.2f]\n",
			z, b.Min.X, b.Max.X, b.Min.Y, b.Max.Y)
	}
	return nil
}

// resolverFor treats ref as a path when it exists, otherwise as WIDTHxHEIGHT.
func resolverFor(ref string) zoom.Resolver {
	if _, err := os.Stat(ref); err == nil {
		return imagemeta.NewFileResolver()
	}
	size, err := parseSize(ref)
	if err != nil {
		return failedResolver{err}
	}
	return imagemeta.StaticResolver(size)
}

type failedResolver struct{ err error }

func (f failedResolver) Resolve(string) (geom.Size, error) {
	return geom.Size{}, f.err
}
