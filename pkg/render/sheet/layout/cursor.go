package layout

import (
	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// Cursor is the next unused row of the document.
type Cursor struct {
	Row int
}

// Start returns the cursor at the first row.
func Start() Cursor { return Cursor{Row: 1} }

// Advance returns the cursor k rows further down.
func (c Cursor) Advance(k int) Cursor { return Cursor{Row: c.Row + k} }

// writer guards the sink: rows open exactly once, in order, with no gaps,
// and cells are only written to the open row. Sink failures are wrapped with
// the row and column being written.
type writer struct {
	sink sink.Sink
	row  int
}

func (w *writer) open(row int, height float64) error {
	if row != w.row+1 {
		return errors.New(errors.ErrCodeInternal, "row %d opened after row %d", row, w.row)
	}
	w.row = row
	if err := w.sink.SetRowHeight(row, height); err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "row %d: set height", row)
	}
	return nil
}

func (w *writer) cell(c sink.Cell) error {
	if c.Row != w.row {
		return errors.New(errors.ErrCodeInternal, "cell (%d,%d) written while row %d is open", c.Row, c.Col, w.row)
	}
	if err := w.sink.SetCell(c); err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "row %d col %d: set cell", c.Row, c.Col)
	}
	return nil
}

func (w *writer) merge(row int, span Span) error {
	if row != w.row {
		return errors.New(errors.ErrCodeInternal, "merge on row %d while row %d is open", row, w.row)
	}
	if err := w.sink.MergeRegion(row, span.From, span.To); err != nil {
		return errors.Wrap(errors.ErrCodeSinkWrite, err, "row %d cols %d-%d: merge", row, span.From, span.To)
	}
	return nil
}

// band writes every column in from..to of row. Columns with an entry in
// cells get that cell; the rest are painted with base only.
func (w *writer) band(row, from, to int, base styles.Ref, cells ...sink.Cell) error {
	byCol := make(map[int]sink.Cell, len(cells))
	for _, c := range cells {
		c.Row = row
		byCol[c.Col] = c
	}
	for col := from; col <= to; col++ {
		c, ok := byCol[col]
		if !ok {
			c = sink.Cell{Row: row, Col: col, Style: base}
		}
		if err := w.cell(c); err != nil {
			return err
		}
	}
	return nil
}
