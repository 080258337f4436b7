package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/api"
)

// serveCommand creates the serve command, which runs the HTTP API until
// the process is interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the renderer over HTTP",
		Long: `Serve the renderer over HTTP.

Endpoints:
  GET  /health
  POST /render?format=xlsx|json|summary&palette=<name>

The request body is the invoice; its Content-Type selects the parser
(application/json, application/toml, otherwise YAML). Rendered artifacts
are cached in memory while the server runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if cfg.PaletteFile != "" {
				printWarning(cmd.ErrOrStderr(), "palette_file is ignored by serve; using built-in palette %q", cfg.Palette)
			}

			runner := c.newServeRunner()
			defer runner.Close()

			srv := api.NewServer(runner, loggerFromContext(cmd.Context()),
				api.WithPalette(cfg.Palette),
				api.WithPageLayout(cfg.PageLayout()),
			)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")

	return cmd
}
