package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/pinchzoom/pkg/script"
	"github.com/OpenTraceLab/pinchzoom/pkg/zoom"
)

var replayImage string

var replayCmd = &cobra.Command{
	Use:   "replay <script_file>",
	Short: "Replay a gesture script",
	Long: `Runs a gesture script against the zoom engine on a simulated clock and
prints the displayed transform after every step.

Script example:
  viewport 400 400
  start
  move (150,200) (250,200)
  move (140,200) (260,200)
  end
  wait 300ms
  expect scale 1.1`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayImage, "image", "200x400", "image file or size WIDTHxHEIGHT")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadZoomConfig(cmd)
	if err != nil {
		return err
	}

	parser, err := script.NewParser()
	if err != nil {
		return err
	}
	s, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	coord, err := zoom.NewFromResolver(resolverFor(replayImage), replayImage, cfg)
	if err != nil {
		return err
	}
	if verbose {
		coord.SetLogger(logf)
	}

	runner := script.NewRunner(coord)
	runner.Trace = cmd.OutOrStdout()
	if err := runner.Run(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d steps\n", len(s.Steps))
	return nil
}
