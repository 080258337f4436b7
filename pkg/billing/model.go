package billing

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// LineItem is a single billable task.
type LineItem struct {
	Task        string
	Description string
	Hours       decimal.Decimal
}

// Amount returns hours × rate without rounding.
func (li LineItem) Amount(rate decimal.Decimal) decimal.Decimal {
	return li.Hours.Mul(rate)
}

// Section groups line items under a numbered heading such as "1. Setup".
// Items render in slice order.
type Section struct {
	Name  string
	Items []LineItem
}

// Ordinal returns the numeric prefix of the section name ("1" for "1. Setup"),
// or "" when the name has none.
func (s Section) Ordinal() string {
	ord, _ := SplitOrdinal(s.Name)
	return ord
}

// Title returns the section name without its ordinal prefix.
func (s Section) Title() string {
	_, title := SplitOrdinal(s.Name)
	return title
}

// Metadata is the descriptive header of an invoice. Date is supplied by the
// caller; nothing in the renderer reads the clock.
type Metadata struct {
	InvoiceID string
	Date      string
	Title     string
	Subtitle  string
	Project   string // italic note line under the title
	Summary   string // left half of the summary strip
}

// Document is the root of the invoice tree.
type Document struct {
	Sections     []Section
	Rate         decimal.Decimal
	Meta         Metadata
	Deliverables []string
	Terms        []string
}

var ordinalPrefix = regexp.MustCompile(`^(\d+)\.\s+`)

// SplitOrdinal separates a section name into its ordinal prefix and title.
// Names without a prefix return an empty ordinal and the name unchanged.
//
//	SplitOrdinal("3. VIDEO SYNC") // "3", "VIDEO SYNC"
func SplitOrdinal(name string) (ordinal, title string) {
	m := ordinalPrefix.FindStringSubmatchIndex(name)
	if m == nil {
		return "", name
	}
	return name[m[2]:m[3]], name[m[1]:]
}
