package sink

import (
	"errors"

	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// ErrFinalized is returned by writes issued after Finalize or Close.
var ErrFinalized = errors.New("sink already finalized")

// HAlign is a horizontal cell alignment.
type HAlign string

const (
	AlignLeft   HAlign = "left"
	AlignCenter HAlign = "center"
	AlignRight  HAlign = "right"
)

// Align controls cell text placement. Text is always vertically centred.
type Align struct {
	Horizontal HAlign
	Wrap       bool
}

// NumFormat is a spreadsheet number format code.
type NumFormat string

const (
	FormatGeneral  NumFormat = ""
	FormatHours    NumFormat = "0.0"
	FormatCurrency NumFormat = `"$"#,##0.00`
)

// Cell is one cell write. Value may be nil to paint style only.
type Cell struct {
	Row, Col int
	Value    any
	Style    styles.Ref
	Align    Align
	Format   NumFormat
}

// Orientation is the printed page orientation.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Margins are page margins in inches.
type Margins struct {
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// PageLayout are the print settings of the document.
type PageLayout struct {
	Orientation Orientation `json:"orientation"`
	FitToWidth  int         `json:"fit_to_width"` // pages wide; height is unbounded
	Margins     Margins     `json:"margins"`
}

// Sink is a grid-addressable document under construction.
type Sink interface {
	// SetCell writes a value and style to one cell.
	SetCell(c Cell) error
	// MergeRegion merges columns colStart..colEnd (inclusive) of row.
	MergeRegion(row, colStart, colEnd int) error
	// SetRowHeight sets the height of row in points.
	SetRowHeight(row int, height float64) error
	// SetColumnWidth sets the width of col in characters.
	SetColumnWidth(col int, width float64) error
	// FreezeHeader keeps rows 1..row visible while scrolling.
	FreezeHeader(row int) error
	// SetPageLayout sets print orientation, scaling and margins.
	SetPageLayout(p PageLayout) error
	// Finalize produces the finished artifact. It may be called once.
	Finalize() ([]byte, error)
	// Close releases resources. It is idempotent.
	Close() error
}
