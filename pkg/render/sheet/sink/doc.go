// Package sink provides grid-addressable document sinks for the sheet layout.
//
// # Overview
//
// A "sink" materialises the cell writes produced by the layout engine. The
// engine only talks to the [Sink] interface: it sets cell values with a style
// [styles.Ref], merges horizontal regions, sizes rows and columns, freezes the
// header and sets print attributes. The sink resolves styles through its
// palette and produces the final artifact in [Sink.Finalize].
//
// Two sinks are provided:
//
//   - [XLSX]: an Excel workbook built with excelize
//   - [Recorder]: an in-memory log of every call, finalized as JSON; useful
//     for debugging layouts and as the test double for the engine
//
// # Lifecycle
//
// A sink is created, written to, finalized at most once and closed. Close is
// safe to call more than once and after Finalize, so callers can always
// defer it:
//
//	s, err := sink.NewXLSX(palette)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	// ... writes ...
//	data, err := s.Finalize()
//
// Rows and columns are 1-based, matching spreadsheet addressing.
//
// [styles.Ref]: github.com/matzehuels/invoicer/pkg/render/sheet/styles.Ref
package sink
