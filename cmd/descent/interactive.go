package main

import (
	"os"

	"github.com/aretw0/descent/internal/cli"
	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/animation"
	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"repl"},
	Short:   "Explore fields and animate paths from a prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		loop := animation.NewLoop()
		go func() { _ = loop.Run(ctx) }()

		rich := tui.IsTerminal(os.Stdout)
		if rich {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		it := cli.NewInteractive(rt, cmd.OutOrStdout(), tui.Width(os.Stdout), rich, loop)
		return it.Run(ctx, cmd.InOrStdin())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
