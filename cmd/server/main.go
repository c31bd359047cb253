// Package main is the entry point for the portfolio server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to read configuration,
// create dependencies (logger, content store) and hand them to the packages
// that do the work. All actual logic lives in internal/.
//
// COMMANDS:
//
//	server serve                 run the site
//	server seed --file FILE      load a content file into the configured backend
//	server hash-password [PW]    print a bcrypt hash for ADMIN_PASSWORD_HASH
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "server",
		Short:         "Portfolio and resume site",
		Long:          "Serves a portfolio site (timeline, skills, projects and a PIN-gated contact panel) from SQLite, Postgres, PostgREST or a JSON content file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSeedCmd(), newHashPasswordCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
// Config validation has already restricted both to known values.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	// Log levels (from least to most severe): Debug → Info → Warn → Error
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
