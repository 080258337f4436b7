package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/matzehuels/invoicer/pkg/billing"
)

// Summary is the JSON shape written by [WriteSummary].
type Summary struct {
	InvoiceID   string           `json:"invoice_id,omitempty"`
	Date        string           `json:"date,omitempty"`
	Rate        decimal.Decimal  `json:"rate"`
	TotalHours  decimal.Decimal  `json:"total_hours"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Items       int              `json:"items"`
	Sections    []SectionSummary `json:"sections"`
}

// SectionSummary is one section's totals. SharePct is rounded to two places.
type SectionSummary struct {
	Name     string          `json:"name"`
	Ordinal  string          `json:"ordinal,omitempty"`
	Items    int             `json:"items"`
	Hours    decimal.Decimal `json:"hours"`
	Amount   decimal.Decimal `json:"amount"`
	SharePct decimal.Decimal `json:"share_pct"`
}

// NewSummary extracts the totals of e.
func NewSummary(e *billing.Enriched) Summary {
	s := Summary{
		InvoiceID:   e.Meta.InvoiceID,
		Date:        e.Meta.Date,
		Rate:        e.Rate,
		TotalHours:  e.TotalHours,
		TotalAmount: e.TotalAmount,
		Items:       e.ItemCount(),
		Sections:    make([]SectionSummary, len(e.Sections)),
	}
	for i, sec := range e.Sections {
		s.Sections[i] = SectionSummary{
			Name:     sec.Name,
			Ordinal:  sec.Ordinal,
			Items:    len(sec.Items),
			Hours:    sec.Hours,
			Amount:   sec.Amount,
			SharePct: sec.SharePct.Round(2),
		}
	}
	return s
}

// WriteSummary encodes the totals of e as indented JSON. Decimal values are
// written as strings so no precision is lost.
func WriteSummary(e *billing.Enriched, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewSummary(e)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSummary writes the totals of e to a JSON file at path.
func ExportSummary(e *billing.Enriched, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSummary(e, f)
}
