package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// paletteCommand creates the palette inspection command.
func (c *CLI) paletteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "List and inspect palettes",
	}

	cmd.AddCommand(c.paletteListCommand())
	cmd.AddCommand(c.paletteShowCommand())

	return cmd
}

// paletteListCommand creates the "palette list" subcommand.
func (c *CLI) paletteListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range styles.Names() {
				if name == pipeline.DefaultPalette {
					printInfo(out, "%s %s", name, StyleDim.Render("(default)"))
					continue
				}
				printInfo(out, "%s", name)
			}
			return nil
		},
	}
}

// paletteShowCommand creates the "palette show" subcommand.
func (c *CLI) paletteShowCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Show the roles of a palette",
		Long: `Show every role of a built-in palette, or of a TOML palette file
given with --file, with a swatch of its fill and text colors.`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: completePalettes,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := pipeline.DefaultPalette
			if len(args) == 1 {
				name = args[0]
			}
			theme, err := pipeline.ResolvePalette(name, file)
			if err != nil {
				return err
			}
			printTheme(cmd.OutOrStdout(), theme)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "TOML palette file")

	return cmd
}

// printTheme prints one line per role: a swatch, the role name and its
// font, fill and border settings.
func printTheme(w io.Writer, t *styles.Theme) {
	fmt.Fprintln(w, StyleTitle.Render(t.Name()))
	for _, role := range styles.Roles {
		d, ok := t.Descriptor(role)
		if !ok {
			printWarning(w, "%s: undefined", role)
			continue
		}
		fmt.Fprintf(w, "  %s %-16s %s\n", swatch(d), role, StyleDim.Render(describe(d)))
	}
}

func swatch(d styles.Descriptor) string {
	s := lipgloss.NewStyle().Padding(0, 1)
	if d.Fill != "" {
		s = s.Background(lipgloss.Color("#" + d.Fill))
	}
	if d.Font.Color != "" {
		s = s.Foreground(lipgloss.Color("#" + d.Font.Color))
	}
	return s.Render("Aa")
}

func describe(d styles.Descriptor) string {
	var parts []string
	f := d.Font
	if f.Family != "" {
		parts = append(parts, f.Family)
	}
	if f.Size > 0 {
		parts = append(parts, fmt.Sprintf("%gpt", f.Size))
	}
	if f.Bold {
		parts = append(parts, "bold")
	}
	if f.Italic {
		parts = append(parts, "italic")
	}
	if f.Color != "" {
		parts = append(parts, "text #"+f.Color)
	}
	if d.Fill != "" {
		parts = append(parts, "fill #"+d.Fill)
	}
	if d.Bottom.Style != styles.LineNone {
		parts = append(parts, fmt.Sprintf("%s bottom #%s", d.Bottom.Style, d.Bottom.Color))
	}
	return strings.Join(parts, ", ")
}
