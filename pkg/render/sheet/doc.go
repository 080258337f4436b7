// Package sheet renders an invoice [billing.Document] into a styled grid
// document.
//
// [Render] runs the whole transform: aggregation, layout through a
// [sink.Sink], and finalization into bytes. Subpackages hold the pieces:
//
//   - styles: roles, palettes and TOML theme files
//   - sink: the grid sink interface with XLSX and recording implementations
//   - layout: the region geometry table and the layout engine
//
// [billing.Document]: github.com/matzehuels/invoicer/pkg/billing.Document
// [sink.Sink]: github.com/matzehuels/invoicer/pkg/render/sheet/sink.Sink
package sheet
