package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spboyer/gridlens/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API for a directory of batches",
		Long: `Serve a read-only JSON API over every batch file in a directory.

Endpoints:
  GET /api/health
  GET /api/experiments
  GET /api/experiments/{id}
  GET /api/experiments/{id}/best
  GET /api/experiments/{id}/tendencies
  GET /api/experiments/{id}/responses/{rid}
  GET /api/experiments/{id}/export?format=csv|json
  GET /metrics

The server listens on 127.0.0.1 and stops on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadProjectConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = cfg.Server.Port
			}
			if !cmd.Flags().Changed("dir") {
				dir = cfg.Paths.Batches
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				BatchesDir:     dir,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Logger:         slog.Default(),
			})
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			fmt.Fprintf(cmd.ErrOrStderr(), "gridlens API: http://%s/api/experiments\n", srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Port to listen on")
	cmd.Flags().StringVarP(&dir, "dir", "d", "batches/", "Directory of batch files")

	return cmd
}
