// Package layout places an aggregated invoice onto a grid [sink.Sink].
//
// The document is a fixed sequence of regions: banner, summary strip, table
// header, one block per section (header, items, subtotal, spacer), grand total,
// hours breakdown, deliverables and terms. Every region consumes a known
// number of rows whose heights and merge spans are declared once in
// [Geometry]; [Plan] expands that table for a given document so tests can
// compare it against what the engine actually wrote.
//
// Row placement is driven by an explicit [Cursor] that each region function
// receives and returns advanced. Rows are opened strictly in order; opening a
// row out of sequence or writing outside the open row is an internal error,
// so a layout bug can never silently overwrite content.
//
// The engine only names style roles. Colours and fonts come from whatever
// palette the sink was built with.
package layout
