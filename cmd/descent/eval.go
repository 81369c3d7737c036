package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <markup>",
	Short: "Evaluate the field and its gradient at a point",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		asJSON, _ := cmd.Flags().GetBool("json")

		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		snap, err := rt.Engine.Compile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		sample := rt.Engine.Evaluate(snap, x, y)

		out := cmd.OutOrStdout()
		if asJSON {
			return json.NewEncoder(out).Encode(sample)
		}
		fmt.Fprintf(out, "f(%g, %g) = %g\ngrad = (%g, %g)\n", sample.X, sample.Y, sample.Z, sample.GradientX, sample.GradientY)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().Float64("x", 0, "x coordinate")
	evalCmd.Flags().Float64("y", 0, "y coordinate")
	evalCmd.Flags().Bool("json", false, "Print machine-readable output")
}
