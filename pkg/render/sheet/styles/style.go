// Package styles defines the style palette consumed by the sheet renderer.
//
// The layout engine never names a colour or a font. It asks for a [Role]
// ("section", "subtotal", "total-amount", ...) and a sink resolves that role
// through a [Palette]. Swapping the palette re-themes the whole document
// without touching layout code.
//
// A cell is styled by a [Ref]: a base role that paints the band the cell sits
// in (fill, bottom border, default font) and an optional text role that
// overrides the font. An item row's description cell, for example, uses
// Ref{Base: RoleItemOdd, Text: RoleDescription}: zebra background, muted italic
// text.
package styles

import "strings"

// Role is a symbolic style name resolved by a [Palette].
type Role string

// Roles used by the sheet layout.
const (
	RoleBanner         Role = "banner"
	RoleBannerTitle    Role = "banner-title"
	RoleBannerSubtitle Role = "banner-subtitle"
	RoleBannerLabel    Role = "banner-label"
	RoleBannerValue    Role = "banner-value"
	RoleBannerNote     Role = "banner-note"
	RoleSummary        Role = "summary"
	RoleSummaryRate    Role = "summary-rate"
	RoleHeader         Role = "header"
	RoleSection        Role = "section"
	RoleItemEven       Role = "item-even"
	RoleItemOdd        Role = "item-odd"
	RoleDescription    Role = "description"
	RoleMutedLabel     Role = "muted-label"
	RoleBoldValue      Role = "bold-value"
	RoleSubtotal       Role = "subtotal"
	RoleTotal          Role = "total"
	RoleTotalAmount    Role = "total-amount"
	RoleTotalNote      Role = "total-note"
	RoleBandHeader     Role = "band-header"
	RoleBreakdown      Role = "breakdown"
)

// Roles lists every role a complete palette must define.
var Roles = []Role{
	RoleBanner, RoleBannerTitle, RoleBannerSubtitle, RoleBannerLabel, RoleBannerValue, RoleBannerNote,
	RoleSummary, RoleSummaryRate,
	RoleHeader,
	RoleSection, RoleItemEven, RoleItemOdd, RoleDescription, RoleMutedLabel, RoleBoldValue,
	RoleSubtotal,
	RoleTotal, RoleTotalAmount, RoleTotalNote,
	RoleBandHeader, RoleBreakdown,
}

// LineStyle is a border weight.
type LineStyle string

const (
	LineNone   LineStyle = ""
	LineThin   LineStyle = "thin"
	LineMedium LineStyle = "medium"
)

// Font describes text appearance. Colors are 6-digit hex without '#'.
type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Bold   bool    `json:"bold,omitempty"`
	Italic bool    `json:"italic,omitempty"`
	Color  string  `json:"color,omitempty"`
}

// IsZero reports whether the font carries no settings.
func (f Font) IsZero() bool { return f == Font{} }

// Line is a single border edge.
type Line struct {
	Style LineStyle `json:"style,omitempty"`
	Color string    `json:"color,omitempty"`
}

// Descriptor is the concrete look a role resolves to.
type Descriptor struct {
	Font   Font   `json:"font"`
	Fill   string `json:"fill,omitempty"`   // background hex, "" for none
	Bottom Line   `json:"bottom,omitempty"` // bottom border, zero for none
}

// Merge returns d with the non-zero parts of over applied on top.
func (d Descriptor) Merge(over Descriptor) Descriptor {
	if !over.Font.IsZero() {
		d.Font = over.Font
	}
	if over.Fill != "" {
		d.Fill = over.Fill
	}
	if over.Bottom.Style != LineNone {
		d.Bottom = over.Bottom
	}
	return d
}

// Palette maps roles to descriptors.
type Palette interface {
	// Name identifies the palette (e.g. "midnight").
	Name() string
	// Descriptor returns the style for r and whether the palette defines it.
	Descriptor(r Role) (Descriptor, bool)
}

// Ref selects the style of one cell: Base paints the band, Text (optional)
// overrides the font.
type Ref struct {
	Base Role
	Text Role
}

// Of returns a Ref that uses r for both band and text.
func Of(r Role) Ref { return Ref{Base: r} }

// On returns a Ref with text role over base role.
func On(base, text Role) Ref { return Ref{Base: base, Text: text} }

// String renders the ref as "base" or "base/text".
func (r Ref) String() string {
	if r.Text == "" {
		return string(r.Base)
	}
	return string(r.Base) + "/" + string(r.Text)
}

// ParseRef is the inverse of [Ref.String].
func ParseRef(s string) Ref {
	base, text, _ := strings.Cut(s, "/")
	return Ref{Base: Role(base), Text: Role(text)}
}

// Resolve looks up ref in p. It reports false if either role is undefined.
func Resolve(p Palette, ref Ref) (Descriptor, bool) {
	d, ok := p.Descriptor(ref.Base)
	if !ok {
		return Descriptor{}, false
	}
	if ref.Text == "" {
		return d, true
	}
	over, ok := p.Descriptor(ref.Text)
	if !ok {
		return Descriptor{}, false
	}
	return d.Merge(over), true
}
