package layout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// BarWidth is the number of glyphs in a share bar; each stands for 2.5%.
const BarWidth = 40

const (
	barFilled = "█"
	barEmpty  = "░"
)

var barStep = decimal.RequireFromString("2.5")

// BarCells returns how many of the [BarWidth] glyphs a share of pct percent
// fills: round(pct / 2.5), clamped to the bar.
func BarCells(pct decimal.Decimal) int {
	n := int(pct.Div(barStep).Round(0).IntPart())
	return max(0, min(BarWidth, n))
}

// Bar renders pct as a fixed-width run of filled and empty glyphs.
//
//	Bar(decimal.NewFromInt(25)) // 10 filled, 30 empty
func Bar(pct decimal.Decimal) string {
	n := BarCells(pct)
	return strings.Repeat(barFilled, n) + strings.Repeat(barEmpty, BarWidth-n)
}
