package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sakif/portfolio/internal/config"
	"github.com/sakif/portfolio/internal/seed"
	"github.com/sakif/portfolio/internal/server"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a JSON content file into the configured backend",
		Long: `Validates the content file against its JSON schema, then inserts every
timeline entry, skill, project and contact into the backend named by BACKEND.
Rows with an id that already exists are reported as conflicts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Backend == config.BackendFile {
				return errors.New("BACKEND=file reads CONTENT_FILE at startup; there is nothing to seed")
			}
			logger := newLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)

			doc, err := seed.LoadFile(file)
			if err != nil {
				return err
			}

			store, err := server.OpenStore(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
			}
			defer store.Close()

			sum, err := seed.Apply(cmd.Context(), doc, store, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d timeline entries, %d skills, %d projects, %d contacts\n",
				sum.Timeline, sum.Skills, sum.Projects, sum.Contacts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "content.json", "content file to load")
	return cmd
}
