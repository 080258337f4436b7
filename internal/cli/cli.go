// Package cli implements the invoicer command-line interface.
//
// This package provides commands for rendering invoices into styled
// spreadsheets, inspecting their totals in the terminal, listing the
// built-in palettes and serving the renderer over HTTP. The CLI is built
// using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Generate XLSX, JSON trace or summary outputs from an invoice file
//   - summary: Print totals and the per-section breakdown
//   - palette: List and inspect the built-in palettes
//   - serve: Start the HTTP API
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/invoicer/config.toml (or --config)
// and INVOICER_* environment variables. Flags win over both when set.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/buildinfo"
	"github.com/matzehuels/invoicer/pkg/cache"
	"github.com/matzehuels/invoicer/pkg/config"
	"github.com/matzehuels/invoicer/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "invoicer"

	// serveCacheEntries bounds the artifact cache of `invoicer serve`.
	serveCacheEntries = 256
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Invoicer renders billing invoices as styled spreadsheets",
		Long:         `Invoicer turns an invoice description (sections of tasks with hours, a rate and a few metadata fields) into a styled, print-ready XLSX document.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/invoicer/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.summaryCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the layered configuration once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for one-shot CLI use. Nothing is
// cached between invocations.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
}

// newServeRunner creates a runner whose artifacts are cached in memory for
// the lifetime of the server.
func (c *CLI) newServeRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewMemoryCache(serveCacheEntries), nil, c.Logger)
}
