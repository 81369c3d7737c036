package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/spf13/cobra"
)

var surfaceCmd = &cobra.Command{
	Use:   "surface <markup>",
	Short: "Sample the field over the plot ranges",
	Long: `Samples the field on the configured grid and prints a shaded height map.
Undefined cells are drawn as '?'. With --json the raw grid is printed, gaps as null.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		width, _ := cmd.Flags().GetInt("width")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		ranges, err := rangesFromFlags(cmd, rt.Settings.Ranges)
		if err != nil {
			return err
		}

		snap, err := rt.Engine.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		grid, err := rt.Engine.Surface(cmd.Context(), snap, ranges)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return json.NewEncoder(out).Encode(grid)
		}

		rich := tui.IsTerminal(os.Stdout)
		if width <= 0 {
			width = tui.Width(os.Stdout)
		}
		render := tui.NewRenderer(rich, width)
		text, err := render(tui.SurfaceReport(snap, grid, width-4))
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		if snap.NumericGradient() {
			tui.Advisory(os.Stderr, snap.Advisory())
		}
		return nil
	},
}

// rangesFromFlags overrides the x and y bounds of base with --x-range and --y-range.
func rangesFromFlags(cmd *cobra.Command, base domain.Ranges) (domain.Ranges, error) {
	r := base
	for _, axis := range []struct {
		flag     string
		min, max *float64
	}{
		{"x-range", &r.XMin, &r.XMax},
		{"y-range", &r.YMin, &r.YMax},
	} {
		if !cmd.Flags().Changed(axis.flag) {
			continue
		}
		v, _ := cmd.Flags().GetFloat64Slice(axis.flag)
		if len(v) != 2 {
			return r, fmt.Errorf("%w: --%s takes min,max", domain.ErrInvalidConfig, axis.flag)
		}
		*axis.min, *axis.max = v[0], v[1]
	}
	return r, r.Validate()
}

func init() {
	rootCmd.AddCommand(surfaceCmd)
	surfaceCmd.Flags().Bool("json", false, "Print the raw grid as JSON")
	surfaceCmd.Flags().Int("width", 0, "Output width in columns (default: terminal width)")
	surfaceCmd.Flags().Float64Slice("x-range", nil, "x bounds as min,max")
	surfaceCmd.Flags().Float64Slice("y-range", nil, "y bounds as min,max")
}
