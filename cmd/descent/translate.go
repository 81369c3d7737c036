package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate <markup>",
	Short: "Translate LaTeX markup into a flat expression",
	Long: `Translates the typeset expression, compiles it and prints the flat form
together with its symbolic partial derivatives.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		snap, err := rt.Engine.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"expression":       snap.Expression,
				"gradient_x":       snap.GradientX,
				"gradient_y":       snap.GradientY,
				"numeric_gradient": snap.NumericGradient(),
			})
		}

		fmt.Fprintln(out, snap.Expression)
		if snap.NumericGradient() {
			tui.Advisory(os.Stderr, snap.Advisory())
			return nil
		}
		fmt.Fprintf(out, "df/dx = %s\ndf/dy = %s\n", snap.GradientX, snap.GradientY)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(translateCmd)
	translateCmd.Flags().Bool("json", false, "Print machine-readable output")
}
