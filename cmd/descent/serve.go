package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/descent/internal/cli"
	"github.com/aretw0/descent/internal/presentation/tui"
	httpAdapter "github.com/aretw0/descent/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the descent engine in server mode, exposing a JSON API over HTTP,
SSE playback of stored traces and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := globalOptions(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		opts.Redis, _ = cmd.Flags().GetString("redis")
		opts.TraceTTL, _ = cmd.Flags().GetDuration("trace-ttl")
		opts.Metrics = true
		if !cmd.Flags().Changed("log-level") {
			opts.LogLevel = "info"
		}

		rt, err := cli.Setup(opts)
		if err != nil {
			return err
		}
		manager := cli.NewManager(opts, rt.Logger)

		handler := httpAdapter.NewHandler(rt.Engine, manager,
			httpAdapter.WithSettings(rt.Settings),
			httpAdapter.WithLogger(rt.Logger),
			httpAdapter.WithMetrics(rt.Metrics.Handler()),
		)

		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(os.Stderr)
			rt.Logger.Info("Starting descent server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			rt.Logger.Info("Start shutdown", "signal", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				rt.Logger.Error("Graceful shutdown did not complete", "timeout", 5*time.Second, "error", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			rt.Logger.Info("Server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the trace store (default: in-memory)")
	serveCmd.Flags().Duration("trace-ttl", 0, "Expire stored traces after this duration (Redis only)")
}
