package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
	invio "github.com/matzehuels/invoicer/pkg/io"
	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
)

// summaryCommand creates the summary command, which prints totals and
// optionally exports them as JSON.
func (c *CLI) summaryCommand() *cobra.Command {
	var export string

	cmd := &cobra.Command{
		Use:   "summary <invoice>",
		Short: "Print invoice totals and the per-section breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := c.newRunner()
			defer runner.Close()

			result, err := runner.Execute(cmd.Context(), pipeline.Options{
				Input:   args[0],
				Formats: []string{pipeline.FormatSummary},
				Logger:  loggerFromContext(cmd.Context()),
			})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, result.Invoice)

			if export == "" {
				return nil
			}
			if err := errors.ValidatePath(export); err != nil {
				return err
			}
			if err := invio.ExportSummary(result.Invoice, export); err != nil {
				return errors.Wrap(errors.ErrCodeSinkWrite, err, "export summary")
			}
			printFile(out, export)
			return nil
		},
	}

	cmd.Flags().StringVar(&export, "export", "", "also write the totals as JSON to this file")
	return cmd
}

// printSummary prints the invoice header, totals and the breakdown table.
func printSummary(w io.Writer, e *billing.Enriched) {
	title := e.Meta.Title
	if title == "" {
		title = layout.DefaultTitle
	}
	fmt.Fprintln(w, StyleTitle.Render(title))
	if e.Meta.Subtitle != "" {
		fmt.Fprintln(w, StyleDim.Render(e.Meta.Subtitle))
	}
	printNewline(w)

	if e.Meta.InvoiceID != "" {
		printKeyValue(w, "Invoice", e.Meta.InvoiceID)
	}
	if e.Meta.Date != "" {
		printKeyValue(w, "Date", e.Meta.Date)
	}
	printKeyValue(w, "Rate", billing.FormatCurrency(e.Rate)+" / hour")
	printKeyValue(w, "Hours", billing.FormatHours(e.TotalHours))
	printKeyValue(w, "Total", StyleNumber.Render(billing.FormatCurrency(e.TotalAmount)))
	printNewline(w)

	fmt.Fprintln(w, breakdownTable(e).Render())
}

// breakdownTable renders one row per section with its share bar.
func breakdownTable(e *billing.Enriched) *table.Table {
	rows := make([][]string, 0, len(e.Sections))
	for _, sec := range e.Sections {
		rows = append(rows, []string{
			sec.Name,
			strconv.Itoa(len(sec.Items)),
			billing.FormatHours(sec.Hours),
			billing.FormatCurrency(sec.Amount),
			billing.FormatPercent(sec.SharePct),
			layout.Bar(sec.SharePct),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("Section", "Items", "Hours", "Amount", "Share", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 5:
				return styleBar.Padding(0, 1)
			case col >= 1 && col <= 4:
				return cell.Align(lipgloss.Right)
			}
			return cell
		})
}
