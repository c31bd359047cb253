package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/portfolio/internal/config"
	"github.com/sakif/portfolio/internal/server"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			logger := newLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat)

			store, err := server.OpenStore(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
			}

			srv, err := server.New(cfg, store, logger)
			if err != nil {
				store.Close()
				return fmt.Errorf("failed to create server: %w", err)
			}

			// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
			return srv.Start()
		},
	}
	cmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides PORT)")
	return cmd
}
