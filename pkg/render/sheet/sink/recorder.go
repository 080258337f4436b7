package sink

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// Op kinds recorded by [Recorder].
const (
	OpCell      = "cell"
	OpMerge     = "merge"
	OpRowHeight = "row_height"
	OpColWidth  = "col_width"
	OpFreeze    = "freeze"
	OpPage      = "page"
)

// Op is one recorded sink call.
type Op struct {
	Kind   string      `json:"op"`
	Row    int         `json:"row,omitempty"`
	Col    int         `json:"col,omitempty"`
	ColEnd int         `json:"col_end,omitempty"`
	Value  any         `json:"value,omitempty"`
	Style  string      `json:"style,omitempty"`
	Align  HAlign      `json:"align,omitempty"`
	Wrap   bool        `json:"wrap,omitempty"`
	Format NumFormat   `json:"format,omitempty"`
	Size   float64     `json:"size,omitempty"`
	Page   *PageLayout `json:"page,omitempty"`
}

// RecorderOption configures a [Recorder].
type RecorderOption func(*Recorder)

// WithRecorderPalette resolves every style reference used through p and
// includes the resulting descriptors in the finalized JSON.
func WithRecorderPalette(p styles.Palette) RecorderOption {
	return func(r *Recorder) { r.palette = p }
}

// Recorder is a [Sink] that keeps every call in memory. Finalize returns the
// call log as indented JSON.
type Recorder struct {
	ops       []Op
	palette   styles.Palette
	finalized bool
}

// NewRecorder creates an empty recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Recorder) record(op Op) error {
	if r.finalized {
		return ErrFinalized
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *Recorder) SetCell(c Cell) error {
	if c.Row < 1 || c.Col < 1 {
		return fmt.Errorf("cell (%d,%d): coordinates are 1-based", c.Row, c.Col)
	}
	return r.record(Op{
		Kind:   OpCell,
		Row:    c.Row,
		Col:    c.Col,
		Value:  c.Value,
		Style:  c.Style.String(),
		Align:  c.Align.Horizontal,
		Wrap:   c.Align.Wrap,
		Format: c.Format,
	})
}

func (r *Recorder) MergeRegion(row, colStart, colEnd int) error {
	if colEnd < colStart {
		return fmt.Errorf("merge row %d: column range %d..%d is reversed", row, colStart, colEnd)
	}
	return r.record(Op{Kind: OpMerge, Row: row, Col: colStart, ColEnd: colEnd})
}

func (r *Recorder) SetRowHeight(row int, height float64) error {
	return r.record(Op{Kind: OpRowHeight, Row: row, Size: height})
}

func (r *Recorder) SetColumnWidth(col int, width float64) error {
	return r.record(Op{Kind: OpColWidth, Col: col, Size: width})
}

func (r *Recorder) FreezeHeader(row int) error {
	return r.record(Op{Kind: OpFreeze, Row: row})
}

func (r *Recorder) SetPageLayout(p PageLayout) error {
	return r.record(Op{Kind: OpPage, Page: &p})
}

type recorderOutput struct {
	Palette string                        `json:"palette,omitempty"`
	Styles  map[string]styles.Descriptor `json:"styles,omitempty"`
	Ops     []Op                          `json:"ops"`
}

// Finalize returns the recorded calls as JSON. Decimal cell values are
// encoded as strings to keep them exact.
func (r *Recorder) Finalize() ([]byte, error) {
	if r.finalized {
		return nil, ErrFinalized
	}
	r.finalized = true

	out := recorderOutput{Ops: r.Ops()}
	if r.palette != nil {
		out.Palette = r.palette.Name()
		out.Styles = make(map[string]styles.Descriptor)
		for _, op := range r.ops {
			if op.Kind != OpCell || op.Style == "" {
				continue
			}
			if _, done := out.Styles[op.Style]; done {
				continue
			}
			if d, ok := styles.Resolve(r.palette, styles.ParseRef(op.Style)); ok {
				out.Styles[op.Style] = d
			}
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// Close is a no-op; the recorder holds no external resources.
func (r *Recorder) Close() error { return nil }

// Ops returns a copy of the recorded calls in order.
func (r *Recorder) Ops() []Op { return slices.Clone(r.ops) }

// Cells returns the recorded cell writes in order.
func (r *Recorder) Cells() []Op {
	var cells []Op
	for _, op := range r.ops {
		if op.Kind == OpCell {
			cells = append(cells, op)
		}
	}
	return cells
}

// Cell returns the last write to (row, col).
func (r *Recorder) Cell(row, col int) (Op, bool) {
	for i := len(r.ops) - 1; i >= 0; i-- {
		op := r.ops[i]
		if op.Kind == OpCell && op.Row == row && op.Col == col {
			return op, true
		}
	}
	return Op{}, false
}

// RowHeights returns the recorded row heights keyed by row.
func (r *Recorder) RowHeights() map[int]float64 {
	h := make(map[int]float64)
	for _, op := range r.ops {
		if op.Kind == OpRowHeight {
			h[op.Row] = op.Size
		}
	}
	return h
}

// Text returns the string form of a recorded cell value.
func (op Op) Text() string {
	switch v := op.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
