package billing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders d as dollars with two decimals and thousands
// separators, e.g. "$12,345.50". Rounding is half away from zero.
func FormatCurrency(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	d = d.Round(2)
	_, cents, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + groupDollars(d.Truncate(0)) + "." + cents
}

// groupDollars renders a non-negative whole amount with thousands
// separators. Values past int64 are grouped from their decimal digits so
// no precision is lost.
func groupDollars(d decimal.Decimal) string {
	if n := d.BigInt(); n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	digits := d.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatRate renders a rate compactly: whole-dollar rates drop their cents
// ("$250"), fractional rates keep two decimals ("$87.50").
func FormatRate(rate decimal.Decimal) string {
	if rate.IsInteger() {
		return "$" + groupDollars(rate)
	}
	return FormatCurrency(rate)
}

// FormatHours renders hours with one decimal and a unit, e.g. "12.5 hrs".
func FormatHours(d decimal.Decimal) string {
	return d.StringFixed(1) + " hrs"
}

// FormatPercent renders a 0..100 share rounded to a whole percent, e.g. "25%".
func FormatPercent(pct decimal.Decimal) string {
	return pct.Round(0).String() + "%"
}
