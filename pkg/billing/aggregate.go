package billing

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/invoicer/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Decorations the layout adds around document text.
const (
	BulletPrefix   = "  •  "
	SubtotalPrefix = "Subtotal — "
)

// Text limits leave room for the decoration each field is rendered with.
var (
	listEntryLimit   = errors.MaxCellText - utf8.RuneCountInString(BulletPrefix)
	sectionNameLimit = errors.MaxCellText - utf8.RuneCountInString(SubtotalPrefix)
)

// ItemTotal is a line item together with its computed amount.
type ItemTotal struct {
	LineItem
	Amount decimal.Decimal
}

// SectionTotal is a section with its computed subtotals.
type SectionTotal struct {
	Name     string
	Ordinal  string
	Title    string
	Items    []ItemTotal
	Hours    decimal.Decimal
	Amount   decimal.Decimal
	SharePct decimal.Decimal // share of the document's total hours, 0..100
}

// Enriched is a validated document with every derived number filled in.
// It is built once by [Aggregate] and never mutated afterwards.
type Enriched struct {
	Meta         Metadata
	Rate         decimal.Decimal
	Sections     []SectionTotal
	TotalHours   decimal.Decimal
	TotalAmount  decimal.Decimal
	Deliverables []string
	Terms        []string
}

// ItemCount returns the number of line items across all sections.
func (e *Enriched) ItemCount() int {
	n := 0
	for _, s := range e.Sections {
		n += len(s.Items)
	}
	return n
}

// Aggregate validates doc and computes amounts, subtotals, totals and shares.
//
// It fails with INVALID_RATE when the rate is not positive, INVALID_HOURS when
// any item has non-positive hours, and INVALID_ITEM when a task is blank or
// an item's text does not fit a cell. Over-long metadata, section names and
// list entries fail with INVALID_INPUT. Error messages name the offending
// field, section or item (1-based).
//
// doc is not modified; the result shares no slices with it.
func Aggregate(doc Document) (*Enriched, error) {
	if !doc.Rate.IsPositive() {
		return nil, errors.New(errors.ErrCodeInvalidRate, "rate must be positive, got %s", doc.Rate)
	}

	if err := validateDocumentText(doc); err != nil {
		return nil, err
	}

	e := &Enriched{
		Meta:         doc.Meta,
		Rate:         doc.Rate,
		Sections:     make([]SectionTotal, 0, len(doc.Sections)),
		TotalHours:   decimal.Zero,
		Deliverables: slices.Clone(doc.Deliverables),
		Terms:        slices.Clone(doc.Terms),
	}

	for si, sec := range doc.Sections {
		if err := errors.ValidateSectionName(sec.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "section %d", si+1)
		}
		if err := errors.ValidateTextLength(errors.ErrCodeInvalidInput, "section name", sec.Name, sectionNameLimit); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "section %d", si+1)
		}
		st, err := aggregateSection(si, sec, doc.Rate)
		if err != nil {
			return nil, err
		}
		e.TotalHours = e.TotalHours.Add(st.Hours)
		e.Sections = append(e.Sections, st)
	}

	e.TotalAmount = e.TotalHours.Mul(doc.Rate)
	for i := range e.Sections {
		e.Sections[i].SharePct = share(e.Sections[i].Hours, e.TotalHours)
	}
	return e, nil
}

func aggregateSection(si int, sec Section, rate decimal.Decimal) (SectionTotal, error) {
	st := SectionTotal{
		Name:    sec.Name,
		Ordinal: sec.Ordinal(),
		Title:   sec.Title(),
		Items:   make([]ItemTotal, 0, len(sec.Items)),
		Hours:   decimal.Zero,
	}
	for ii, it := range sec.Items {
		if err := errors.ValidateTask(it.Task); err != nil {
			return st, errors.Wrap(errors.ErrCodeInvalidItem, err, "section %d (%q) item %d", si+1, sec.Name, ii+1)
		}
		if err := errors.ValidateTextLength(errors.ErrCodeInvalidItem, "description", it.Description, errors.MaxCellText); err != nil {
			return st, errors.Wrap(errors.ErrCodeInvalidItem, err, "section %d (%q) item %d", si+1, sec.Name, ii+1)
		}
		if !it.Hours.IsPositive() {
			return st, errors.New(errors.ErrCodeInvalidHours,
				"section %d (%q) item %d (%q): hours must be positive, got %s",
				si+1, sec.Name, ii+1, it.Task, it.Hours)
		}
		st.Items = append(st.Items, ItemTotal{LineItem: it, Amount: it.Amount(rate)})
		st.Hours = st.Hours.Add(it.Hours)
	}
	st.Amount = st.Hours.Mul(rate)
	return st, nil
}

// validateDocumentText rejects metadata and list entries that would not fit
// their cell once rendered.
func validateDocumentText(doc Document) error {
	meta := []struct{ field, value string }{
		{"invoice id", doc.Meta.InvoiceID},
		{"date", doc.Meta.Date},
		{"title", doc.Meta.Title},
		{"subtitle", doc.Meta.Subtitle},
		{"project", doc.Meta.Project},
		{"summary", doc.Meta.Summary},
	}
	for _, m := range meta {
		if err := errors.ValidateTextLength(errors.ErrCodeInvalidInput, m.field, m.value, errors.MaxCellText); err != nil {
			return err
		}
	}
	lists := []struct {
		name    string
		entries []string
	}{
		{"deliverable", doc.Deliverables},
		{"term", doc.Terms},
	}
	for _, l := range lists {
		for i, entry := range l.entries {
			field := fmt.Sprintf("%s %d", l.name, i+1)
			if err := errors.ValidateTextLength(errors.ErrCodeInvalidInput, field, entry, listEntryLimit); err != nil {
				return err
			}
		}
	}
	return nil
}

// share returns part/total as a percentage, or 0 when total is zero.
func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(total)
}
