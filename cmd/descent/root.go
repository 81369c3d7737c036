package main

import (
	"fmt"
	"os"

	"github.com/aretw0/descent/internal/cli"
	"github.com/aretw0/descent/internal/presentation/tui"
	"github.com/aretw0/descent/pkg/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "descent",
	Short: "Descent visualizes gradient descent over two-variable fields",
	Long: `Descent translates LaTeX expressions of f(x, y) into flat expressions,
samples them as surfaces and traces fixed-step gradient descent or ascent paths.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.Failure(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Settings file (YAML or JSON)")
	rootCmd.PersistentFlags().String("log-level", "off", "Log level: off, debug, info, warn, error")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	path, _ := cmd.Flags().GetString("config")
	level, _ := cmd.Flags().GetString("log-level")
	return cli.Options{ConfigPath: path, LogLevel: level}
}

func setup(cmd *cobra.Command) (*cli.Runtime, error) {
	rt, err := cli.Setup(globalOptions(cmd))
	if err != nil {
		return nil, fmt.Errorf("setup failed: %w", err)
	}
	return rt, nil
}
