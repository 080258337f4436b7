package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/config"
	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
)

// renderFlags holds the command-line flags for the render command. Empty
// values defer to the loaded configuration.
type renderFlags struct {
	output      string
	outputDir   string
	formats     string
	palette     string
	paletteFile string
	orientation string
	noSpinner   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <invoice>",
		Short: "Render an invoice to XLSX (and optional JSON trace or summary)",
		Long: `Render an invoice file (YAML, TOML or JSON) to a styled spreadsheet.

Formats:
  xlsx     the print-ready workbook (default)
  json     a trace of every cell, merge and row the layout produced
  summary  the computed totals and per-section breakdown as JSON

With a single format, -o names the output file. With several, -o is a base
path and each format appends its own extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := flags.options(cmd, args[0], cfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd, opts, flags, cfg)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&flags.outputDir, "output-dir", "", "directory for outputs when -o is not given")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): xlsx (default), json, summary (comma-separated)")
	cmd.Flags().StringVar(&flags.palette, "palette", "", "built-in palette: midnight (default), paper")
	cmd.Flags().StringVar(&flags.paletteFile, "palette-file", "", "TOML palette file (overrides --palette)")
	cmd.Flags().StringVar(&flags.orientation, "orientation", "", "page orientation: landscape (default), portrait")
	cmd.Flags().BoolVar(&flags.noSpinner, "no-spinner", false, "disable the progress spinner")

	cmd.RegisterFlagCompletionFunc("palette", completePalettes)
	cmd.RegisterFlagCompletionFunc("format", completeFormats)
	cmd.RegisterFlagCompletionFunc("orientation", cobra.FixedCompletions(
		[]string{string(sink.Landscape), string(sink.Portrait)}, cobra.ShellCompDirectiveNoFileComp))
	cmd.MarkFlagFilename("palette-file", "toml")

	return cmd
}

// options builds pipeline options from explicitly set flags, then fills the
// rest from cfg.
func (f renderFlags) options(cmd *cobra.Command, input string, cfg *config.Config) (pipeline.Options, error) {
	opts := pipeline.Options{Input: input}
	if cmd.Flags().Changed("format") {
		opts.Formats = pipeline.ParseFormats(f.formats)
		if err := pipeline.ValidateFormats(opts.Formats); err != nil {
			return opts, err
		}
	}
	if cmd.Flags().Changed("palette") {
		opts.Palette = f.palette
	}
	if cmd.Flags().Changed("palette-file") {
		opts.PaletteFile = f.paletteFile
	}
	if cmd.Flags().Changed("orientation") {
		opts.Page = cfg.PageLayout()
		opts.Page.Orientation = sink.Orientation(strings.ToLower(f.orientation))
	}
	cfg.Apply(&opts)
	return opts, nil
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, flags renderFlags, cfg *config.Config) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner := c.newRunner()
	defer runner.Close()

	var spinner *Spinner
	if !flags.noSpinner {
		spinner = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", filepath.Base(opts.Input)))
		spinner.Start()
	}

	opts.Logger = logger
	result, err := runner.Execute(ctx, opts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	prog.step("rendered", "formats", opts.Formats, "cached", result.CacheHit)

	outputDir := flags.outputDir
	if !cmd.Flags().Changed("output-dir") {
		outputDir = cfg.OutputDir
	}
	paths := outputPaths(opts.Input, flags.output, outputDir, opts.Formats)

	for _, format := range opts.Formats {
		if err := writeOutput(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		prog.step("wrote output", "format", format, "path", paths[format], "bytes", len(result.Artifacts[format]))
	}
	prog.done("invoice rendered", "input", filepath.Base(opts.Input), "rows", result.Stats.Rows)

	printSuccess(out, "Invoice rendered")
	for _, format := range opts.Formats {
		printFile(out, paths[format])
	}
	printStats(out, result.Stats, result.CacheHit)
	printNewline(out)
	printNextStep(out, "Inspect totals", appName+" summary "+opts.Input)

	return nil
}

// outputPaths derives the file written for each format.
//
// A single format with an explicit output uses it verbatim. Otherwise the
// base is the output with any known extension stripped, or the input name
// without its extension (placed in dir when set).
func outputPaths(input, output, dir string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	if output == "" && dir != "" {
		base = filepath.Join(dir, filepath.Base(base))
	}
	for _, format := range formats {
		paths[format] = base + pipeline.Extensions[format]
	}
	return paths
}

// basePath strips a known output extension from output, or derives the base
// from input when output is empty.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{".sheet.json", ".summary.json", ".xlsx", ".json"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// writeOutput writes data to path, creating parent directories.
func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
