package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pinchzoom",
	Short: "pinchzoom - touch pan/zoom viewport engine and image viewer",
	Long: `pinchzoom interprets pan, pinch and double-tap gestures over an image
and keeps the image inside the viewport.

Examples:
  pinchzoom view photo.jpg                        # Open a touch viewer
  pinchzoom bounds photo.jpg --viewport 400x400   # Show translation bounds
  pinchzoom bounds 200x400 --zoom 2               # Same, for a raw size
  pinchzoom replay pinch.gesture --image 200x400  # Replay a gesture script`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	addZoomFlags(rootCmd)
}

// logf is handed to the coordinator when --verbose is set.
func logf(format string, args ...any) {
	log.Printf(format, args...)
}
