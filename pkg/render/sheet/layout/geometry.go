package layout

import "github.com/matzehuels/invoicer/pkg/billing"

// Columns, 1-based. A and G are gutters; content lives in B..F.
const (
	ColOrdinal = iota + 1
	ColTask
	ColDescription
	ColHours
	ColRate
	ColAmount
	ColGutter

	FirstCol = ColOrdinal
	LastCol  = ColGutter
)

// ColumnWidths are the widths of columns A..G in characters.
var ColumnWidths = [LastCol]float64{3, 48, 50, 12, 16, 18, 3}

// Kind identifies a region of the document.
type Kind string

const (
	KindBanner        Kind = "banner"
	KindSummaryGap    Kind = "summary-gap"
	KindSummary       Kind = "summary"
	KindHeaderGap     Kind = "header-gap"
	KindHeader        Kind = "header"
	KindSectionHeader Kind = "section-header"
	KindItem          Kind = "item"
	KindSubtotal      Kind = "subtotal"
	KindSpacer        Kind = "spacer"
	KindTotalGap      Kind = "total-gap"
	KindTotal         Kind = "total"
	KindBandGap       Kind = "band-gap"
	KindBandHeader    Kind = "band-header"
	KindBreakdownRow  Kind = "breakdown-row"
	KindListEntry     Kind = "list-entry"
)

// Span is an inclusive column range merged into one cell.
type Span struct {
	From, To int
}

// Shape is the size of a region: one height per row it consumes, and the
// span of its main merged cell (zero when the region merges nothing).
type Shape struct {
	Heights []float64
	Span    Span
}

// Rows returns the number of rows the region consumes.
func (s Shape) Rows() int { return len(s.Heights) }

// Geometry is the single table of row heights and merge spans.
var Geometry = map[Kind]Shape{
	KindBanner:        {Heights: []float64{6, 45, 20, 5, 22, 6}, Span: Span{ColTask, ColHours}},
	KindSummaryGap:    {Heights: []float64{8}},
	KindSummary:       {Heights: []float64{32}, Span: Span{ColTask, ColDescription}},
	KindHeaderGap:     {Heights: []float64{10}},
	KindHeader:        {Heights: []float64{30}},
	KindSectionHeader: {Heights: []float64{28}, Span: Span{ColTask, ColAmount}},
	KindItem:          {Heights: []float64{38}},
	KindSubtotal:      {Heights: []float64{26}, Span: Span{ColTask, ColDescription}},
	KindSpacer:        {Heights: []float64{6}},
	KindTotalGap:      {Heights: []float64{10}},
	KindTotal:         {Heights: []float64{50}, Span: Span{ColTask, ColDescription}},
	KindBandGap:       {Heights: []float64{15}},
	KindBandHeader:    {Heights: []float64{24}, Span: Span{ColTask, ColAmount}},
	KindBreakdownRow:  {Heights: []float64{22}, Span: Span{ColTask, ColDescription}},
	KindListEntry:     {Heights: []float64{18}, Span: Span{ColTask, ColAmount}},
}

// Banner sub-rows (0-based offsets within the banner region).
const (
	bannerTitleRow    = 1
	bannerSubtitleRow = 2
	bannerNoteRow     = 4
)

// Region is one placed region: its kind and first row.
type Region struct {
	Kind Kind
	Row  int
}

// Rows returns the number of rows r consumes.
func (r Region) Rows() int { return Geometry[r.Kind].Rows() }

var preamble = []Kind{KindBanner, KindSummaryGap, KindSummary, KindHeaderGap, KindHeader}

// HeaderRow is the row of the table header; rows up to it stay frozen.
func HeaderRow() int {
	row := 1
	for _, k := range preamble[:len(preamble)-1] {
		row += Geometry[k].Rows()
	}
	return row
}

// Plan returns the regions the engine emits for doc, in order, with their
// starting rows.
func Plan(doc *billing.Enriched) []Region {
	var regions []Region
	c := Start()
	add := func(k Kind) {
		regions = append(regions, Region{Kind: k, Row: c.Row})
		c = c.Advance(Geometry[k].Rows())
	}

	for _, k := range preamble {
		add(k)
	}
	for _, sec := range doc.Sections {
		add(KindSectionHeader)
		for range sec.Items {
			add(KindItem)
		}
		add(KindSubtotal)
		add(KindSpacer)
	}
	add(KindTotalGap)
	add(KindTotal)

	add(KindBandGap)
	add(KindBandHeader)
	for range doc.Sections {
		add(KindBreakdownRow)
	}
	for _, list := range [][]string{doc.Deliverables, doc.Terms} {
		add(KindBandGap)
		add(KindBandHeader)
		for range list {
			add(KindListEntry)
		}
	}
	return regions
}

// PlannedRows returns the total number of rows [Plan] places for doc.
func PlannedRows(doc *billing.Enriched) int {
	n := 0
	for _, r := range Plan(doc) {
		n += r.Rows()
	}
	return n
}
