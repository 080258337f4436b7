// Package billing holds the invoice data model and the aggregation engine.
//
// A [Document] is an ordered list of [Section]s, each an ordered list of
// [LineItem]s, billed at a single hourly rate. [Aggregate] validates the
// document and derives every number the rendered sheet shows: per-item
// amounts, per-section subtotals, the grand total and each section's share
// of the total hours.
//
// All arithmetic uses [decimal.Decimal] so that summing many small line items
// never drifts. Rounding happens only when a value is formatted for display
// ([FormatCurrency], [FormatHours], [FormatPercent]).
//
//	e, err := billing.Aggregate(doc)
//	if err != nil {
//	    return err // INVALID_RATE, INVALID_HOURS or INVALID_ITEM
//	}
//	fmt.Println(billing.FormatCurrency(e.TotalAmount))
//
// [decimal.Decimal]: https://pkg.go.dev/github.com/shopspring/decimal#Decimal
package billing
