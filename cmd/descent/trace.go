package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/descent/internal/cli"
	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <markup>",
	Short: "Trace a gradient descent (or ascent) path",
	Long: `Walks the gradient of the field from a start point with a fixed step size
and prints the path. With --animate the path is replayed at --fps frames per second.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		xs, _ := cmd.Flags().GetString("x")
		ys, _ := cmd.Flags().GetString("y")
		animate, _ := cmd.Flags().GetBool("animate")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		settings := rt.Settings
		if cmd.Flags().Changed("ascend") {
			settings.Ascend, _ = cmd.Flags().GetBool("ascend")
		}
		if cmd.Flags().Changed("fps") {
			settings.FPS, _ = cmd.Flags().GetInt("fps")
			if err := config.ValidateFPS(settings.FPS); err != nil {
				return err
			}
		}

		start, err := domain.ParsePoint(xs, ys)
		if err != nil {
			return err
		}
		snap, err := rt.Engine.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if snap.NumericGradient() {
			tui.Advisory(os.Stderr, snap.Advisory())
		}

		trace, err := rt.Engine.Trace(cmd.Context(), snap, start, settings.Mode())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(trace)
		}

		rich := tui.IsTerminal(os.Stdout)
		if animate {
			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			if err := cli.PlayTrace(ctx, out, trace, settings.FPS, rich); err != nil {
				if ctx.Signal() != nil {
					return nil
				}
				return err
			}
		}

		text, err := tui.NewRenderer(rich, tui.Width(os.Stdout))(tui.TraceReport(snap, trace))
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().String("x", "", "Start x coordinate")
	traceCmd.Flags().String("y", "", "Start y coordinate")
	traceCmd.Flags().Bool("ascend", false, "Climb the gradient instead of descending (default from settings)")
	traceCmd.Flags().Int("fps", config.DefaultFPS, "Playback frame rate: 15, 24, 30, 60 or 120 (default from settings)")
	traceCmd.Flags().Bool("animate", false, "Replay the path frame by frame")
	traceCmd.Flags().Bool("json", false, "Print the trace as JSON")
	_ = traceCmd.MarkFlagRequired("x")
	_ = traceCmd.MarkFlagRequired("y")
}
