package layout

import (
	"github.com/shopspring/decimal"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// DefaultTitle is written in the banner when the document has no title.
const DefaultTitle = "INVOICE"

// Band header labels.
const (
	BreakdownLabel    = "HOURS BREAKDOWN BY PHASE"
	DeliverablesLabel = "PROJECT DELIVERABLES"
	TermsLabel        = "TERMS"
)

// HeaderLabels are the table header captions for columns A..F.
var HeaderLabels = [...]string{"#", "Task", "Description", "Hours", "Rate", "Amount"}

// DefaultPageLayout is landscape, one page wide, with narrow margins.
var DefaultPageLayout = sink.PageLayout{
	Orientation: sink.Landscape,
	FitToWidth:  1,
	Margins:     sink.Margins{Left: 0.4, Right: 0.4, Top: 0.3, Bottom: 0.3},
}

// Option configures [Layout].
type Option func(*engine)

// WithPageLayout overrides [DefaultPageLayout].
func WithPageLayout(p sink.PageLayout) Option { return func(e *engine) { e.page = p } }

type engine struct {
	doc  *billing.Enriched
	w    *writer
	page sink.PageLayout
}

type regionFunc func(Cursor) (Cursor, error)

// Layout writes doc to s and returns the cursor past the last row written.
// It fails with EMPTY_DOCUMENT, before touching s, when doc has no sections.
// Sink failures abort the layout and are returned as SINK_WRITE_FAILURE.
func Layout(doc *billing.Enriched, s sink.Sink, opts ...Option) (Cursor, error) {
	if doc == nil || len(doc.Sections) == 0 {
		return Start(), errors.New(errors.ErrCodeEmptyDocument, "document has no sections")
	}
	e := &engine{doc: doc, w: &writer{sink: s}, page: DefaultPageLayout}
	for _, opt := range opts {
		opt(e)
	}

	for i, width := range ColumnWidths {
		if err := s.SetColumnWidth(i+1, width); err != nil {
			return Start(), errors.Wrap(errors.ErrCodeSinkWrite, err, "col %d: set width", i+1)
		}
	}

	c := Start()
	steps := []regionFunc{
		e.banner,
		e.gap(KindSummaryGap),
		e.summary,
		e.gap(KindHeaderGap),
		e.header,
		e.sections,
		e.gap(KindTotalGap),
		e.total,
		e.gap(KindBandGap),
		e.breakdown,
		e.gap(KindBandGap),
		e.list(DeliverablesLabel, doc.Deliverables),
		e.gap(KindBandGap),
		e.list(TermsLabel, doc.Terms),
	}
	for _, step := range steps {
		var err error
		if c, err = step(c); err != nil {
			return c, err
		}
	}

	if err := s.FreezeHeader(HeaderRow()); err != nil {
		return c, errors.Wrap(errors.ErrCodeSinkWrite, err, "freeze header at row %d", HeaderRow())
	}
	if err := s.SetPageLayout(e.page); err != nil {
		return c, errors.Wrap(errors.ErrCodeSinkWrite, err, "set page layout")
	}
	return c, nil
}

// region opens the rows of kind k starting at c, calls body for each, and
// returns c advanced past them. body receives the row and its offset.
func (e *engine) region(c Cursor, k Kind, body func(row, i int) error) (Cursor, error) {
	shape := Geometry[k]
	for i, h := range shape.Heights {
		row := c.Row + i
		if err := e.w.open(row, h); err != nil {
			return c, err
		}
		if body == nil {
			continue
		}
		if err := body(row, i); err != nil {
			return c, err
		}
	}
	return c.Advance(shape.Rows()), nil
}

// gap returns a visual-only region of kind k.
func (e *engine) gap(k Kind) regionFunc {
	return func(c Cursor) (Cursor, error) { return e.region(c, k, nil) }
}

// =============================================================================
// Preamble
// =============================================================================

func (e *engine) banner(c Cursor) (Cursor, error) {
	meta := e.doc.Meta
	title := meta.Title
	if title == "" {
		title = DefaultTitle
	}
	base := styles.Of(styles.RoleBanner)
	label := styles.On(styles.RoleBanner, styles.RoleBannerLabel)
	right := sink.Align{Horizontal: sink.AlignRight}
	span := Geometry[KindBanner].Span

	return e.region(c, KindBanner, func(row, i int) error {
		var cells []sink.Cell
		var merge Span
		switch i {
		case bannerTitleRow:
			cells = []sink.Cell{
				{Col: span.From, Value: title, Style: styles.On(styles.RoleBanner, styles.RoleBannerTitle)},
				{Col: ColRate, Value: "Invoice #", Style: label, Align: right},
				{Col: ColAmount, Value: meta.InvoiceID, Style: styles.On(styles.RoleBanner, styles.RoleBannerValue)},
			}
			merge = span
		case bannerSubtitleRow:
			cells = []sink.Cell{
				{Col: span.From, Value: meta.Subtitle, Style: styles.On(styles.RoleBanner, styles.RoleBannerSubtitle)},
				{Col: ColRate, Value: "Date:", Style: label, Align: right},
				{Col: ColAmount, Value: meta.Date, Style: base},
			}
			merge = span
		case bannerNoteRow:
			cells = []sink.Cell{
				{Col: ColTask, Value: meta.Project, Style: styles.On(styles.RoleBanner, styles.RoleBannerNote)},
			}
			merge = Span{ColTask, ColAmount}
		}
		if err := e.w.band(row, FirstCol, LastCol, base, cells...); err != nil {
			return err
		}
		if merge == (Span{}) {
			return nil
		}
		return e.w.merge(row, merge)
	})
}

func (e *engine) summary(c Cursor) (Cursor, error) {
	left := Geometry[KindSummary].Span
	right := Span{ColHours, ColAmount}
	center := sink.Align{Horizontal: sink.AlignCenter}
	rate := "Rate: " + billing.FormatCurrency(e.doc.Rate) + " / hour"

	return e.region(c, KindSummary, func(row, _ int) error {
		err := e.w.band(row, ColTask, ColAmount, styles.Of(styles.RoleSummary),
			sink.Cell{Col: left.From, Value: e.doc.Meta.Summary, Style: styles.Of(styles.RoleSummary), Align: center},
			sink.Cell{Col: right.From, Value: rate, Style: styles.On(styles.RoleSummary, styles.RoleSummaryRate), Align: center},
		)
		if err != nil {
			return err
		}
		if err := e.w.merge(row, left); err != nil {
			return err
		}
		return e.w.merge(row, right)
	})
}

func (e *engine) header(c Cursor) (Cursor, error) {
	ref := styles.Of(styles.RoleHeader)
	return e.region(c, KindHeader, func(row, _ int) error {
		cells := make([]sink.Cell, len(HeaderLabels))
		for i, label := range HeaderLabels {
			col := i + 1
			cells[i] = sink.Cell{Col: col, Value: label, Style: ref, Align: sink.Align{Horizontal: columnAlign(col)}}
		}
		return e.w.band(row, FirstCol, LastCol, ref, cells...)
	})
}

// columnAlign is the horizontal alignment of table columns: text left,
// quantities centred, amounts right.
func columnAlign(col int) sink.HAlign {
	switch col {
	case ColHours, ColRate:
		return sink.AlignCenter
	case ColAmount:
		return sink.AlignRight
	default:
		return sink.AlignLeft
	}
}

// =============================================================================
// Sections
// =============================================================================

func (e *engine) sections(c Cursor) (Cursor, error) {
	for i := range e.doc.Sections {
		var err error
		if c, err = e.sectionBlock(c, &e.doc.Sections[i]); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (e *engine) sectionBlock(c Cursor, sec *billing.SectionTotal) (Cursor, error) {
	c, err := e.sectionHeader(c, sec)
	if err != nil {
		return c, err
	}
	for i := range sec.Items {
		if c, err = e.item(c, i, &sec.Items[i]); err != nil {
			return c, err
		}
	}
	if c, err = e.subtotal(c, sec); err != nil {
		return c, err
	}
	return e.region(c, KindSpacer, nil)
}

func (e *engine) sectionHeader(c Cursor, sec *billing.SectionTotal) (Cursor, error) {
	ref := styles.Of(styles.RoleSection)
	span := Geometry[KindSectionHeader].Span
	return e.region(c, KindSectionHeader, func(row, _ int) error {
		err := e.w.band(row, FirstCol, LastCol, ref,
			sink.Cell{Col: ColOrdinal, Value: sec.Ordinal, Style: ref, Align: sink.Align{Horizontal: sink.AlignCenter}},
			sink.Cell{Col: span.From, Value: sec.Name, Style: ref},
		)
		if err != nil {
			return err
		}
		return e.w.merge(row, span)
	})
}

// itemRole alternates item backgrounds, starting with the shaded row.
func itemRole(index int) styles.Role {
	if index%2 == 0 {
		return styles.RoleItemEven
	}
	return styles.RoleItemOdd
}

func (e *engine) item(c Cursor, index int, it *billing.ItemTotal) (Cursor, error) {
	bg := itemRole(index)
	base := styles.Of(bg)
	wrap := sink.Align{Horizontal: sink.AlignLeft, Wrap: true}
	return e.region(c, KindItem, func(row, _ int) error {
		return e.w.band(row, FirstCol, LastCol, base,
			sink.Cell{Col: ColTask, Value: it.Task, Style: base, Align: wrap},
			sink.Cell{Col: ColDescription, Value: it.Description, Style: styles.On(bg, styles.RoleDescription), Align: wrap},
			numeric(ColHours, it.Hours, base, sink.FormatHours),
			numeric(ColRate, e.doc.Rate, base, sink.FormatCurrency),
			numeric(ColAmount, it.Amount, styles.On(bg, styles.RoleBoldValue), sink.FormatCurrency),
		)
	})
}

func numeric(col int, v decimal.Decimal, ref styles.Ref, f sink.NumFormat) sink.Cell {
	return sink.Cell{Col: col, Value: v, Style: ref, Align: sink.Align{Horizontal: columnAlign(col)}, Format: f}
}

// SubtotalLabel is the caption of a section's subtotal row.
func SubtotalLabel(sec *billing.SectionTotal) string {
	return billing.SubtotalPrefix + sec.Title
}

func (e *engine) subtotal(c Cursor, sec *billing.SectionTotal) (Cursor, error) {
	ref := styles.Of(styles.RoleSubtotal)
	span := Geometry[KindSubtotal].Span
	return e.region(c, KindSubtotal, func(row, _ int) error {
		err := e.w.band(row, FirstCol, LastCol, ref,
			sink.Cell{Col: span.From, Value: SubtotalLabel(sec), Style: ref},
			numeric(ColHours, sec.Hours, ref, sink.FormatHours),
			numeric(ColAmount, sec.Amount, ref, sink.FormatCurrency),
		)
		if err != nil {
			return err
		}
		return e.w.merge(row, span)
	})
}

// =============================================================================
// Totals and bands
// =============================================================================

// RateNote describes the multiplier in the total band, e.g. "hours x $250".
func RateNote(rate decimal.Decimal) string {
	return "hours x " + billing.FormatRate(rate)
}

func (e *engine) total(c Cursor) (Cursor, error) {
	ref := styles.Of(styles.RoleTotal)
	span := Geometry[KindTotal].Span
	return e.region(c, KindTotal, func(row, _ int) error {
		err := e.w.band(row, FirstCol, LastCol, ref,
			sink.Cell{Col: span.From, Value: "TOTAL", Style: ref},
			numeric(ColHours, e.doc.TotalHours, ref, sink.FormatHours),
			sink.Cell{Col: ColRate, Value: RateNote(e.doc.Rate), Style: styles.On(styles.RoleTotal, styles.RoleTotalNote), Align: sink.Align{Horizontal: sink.AlignCenter}},
			numeric(ColAmount, e.doc.TotalAmount, styles.On(styles.RoleTotal, styles.RoleTotalAmount), sink.FormatCurrency),
		)
		if err != nil {
			return err
		}
		return e.w.merge(row, span)
	})
}

func (e *engine) bandHeader(c Cursor, label string) (Cursor, error) {
	ref := styles.Of(styles.RoleBandHeader)
	span := Geometry[KindBandHeader].Span
	return e.region(c, KindBandHeader, func(row, _ int) error {
		if err := e.w.band(row, span.From, span.To, ref, sink.Cell{Col: span.From, Value: label, Style: ref}); err != nil {
			return err
		}
		return e.w.merge(row, span)
	})
}

func (e *engine) breakdown(c Cursor) (Cursor, error) {
	c, err := e.bandHeader(c, BreakdownLabel)
	if err != nil {
		return c, err
	}
	base := styles.Of(styles.RoleBreakdown)
	strong := styles.On(styles.RoleBreakdown, styles.RoleBoldValue)
	span := Geometry[KindBreakdownRow].Span
	for i := range e.doc.Sections {
		sec := &e.doc.Sections[i]
		c, err = e.region(c, KindBreakdownRow, func(row, _ int) error {
			err := e.w.band(row, span.From, ColAmount, base,
				sink.Cell{Col: span.From, Value: sec.Name, Style: base},
				sink.Cell{Col: ColHours, Value: billing.FormatHours(sec.Hours), Style: strong, Align: sink.Align{Horizontal: sink.AlignCenter}},
				sink.Cell{Col: ColRate, Value: billing.FormatPercent(sec.SharePct), Style: styles.On(styles.RoleBreakdown, styles.RoleMutedLabel), Align: sink.Align{Horizontal: sink.AlignCenter}},
				sink.Cell{Col: ColAmount, Value: billing.FormatCurrency(sec.Amount), Style: strong, Align: sink.Align{Horizontal: sink.AlignRight}},
			)
			if err != nil {
				return err
			}
			return e.w.merge(row, span)
		})
		if err != nil {
			return c, err
		}
	}
	return c, nil
}

// Bullet formats a deliverable or term entry.
func Bullet(entry string) string { return billing.BulletPrefix + entry }

func (e *engine) list(label string, entries []string) regionFunc {
	return func(c Cursor) (Cursor, error) {
		c, err := e.bandHeader(c, label)
		if err != nil {
			return c, err
		}
		ref := styles.Of(styles.RoleMutedLabel)
		span := Geometry[KindListEntry].Span
		for _, entry := range entries {
			c, err = e.region(c, KindListEntry, func(row, _ int) error {
				if err := e.w.band(row, span.From, span.To, ref, sink.Cell{Col: span.From, Value: Bullet(entry), Style: ref}); err != nil {
					return err
				}
				return e.w.merge(row, span)
			})
			if err != nil {
				return c, err
			}
		}
		return c, nil
	}
}
