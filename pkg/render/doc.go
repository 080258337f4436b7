// Package render groups the output renderers for invoices.
//
// The [sheet] subpackage is the only renderer: it lays an aggregated
// invoice out on a cell grid and writes it through a sink.
//
//	x, _ := sink.NewXLSX(styles.Midnight())
//	res, err := sheet.Render(doc, x)
//	os.WriteFile("invoice.xlsx", res.Data, 0o644)
//
// Key sheet subpackages:
//   - [sheet/layout]: Region geometry and the layout engine
//   - [sheet/sink]: Output targets (XLSX, recorded JSON grid)
//   - [sheet/styles]: Style roles, palettes and TOML theme files
//
// [sheet]: github.com/matzehuels/invoicer/pkg/render/sheet
// [sheet/layout]: github.com/matzehuels/invoicer/pkg/render/sheet/layout
// [sheet/sink]: github.com/matzehuels/invoicer/pkg/render/sheet/sink
// [sheet/styles]: github.com/matzehuels/invoicer/pkg/render/sheet/styles
package render
