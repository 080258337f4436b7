package styles

import (
	"maps"
	"regexp"
	"slices"

	"github.com/matzehuels/invoicer/pkg/errors"
)

const fontFamily = "Calibri"

// Theme is a Palette backed by a role table.
type Theme struct {
	ThemeName string
	Roles     map[Role]Descriptor
}

// Name implements Palette.
func (t *Theme) Name() string { return t.ThemeName }

// Descriptor implements Palette.
func (t *Theme) Descriptor(r Role) (Descriptor, bool) {
	d, ok := t.Roles[r]
	return d, ok
}

// Clone returns a deep copy of t under a new name.
func (t *Theme) Clone(name string) *Theme {
	return &Theme{ThemeName: name, Roles: maps.Clone(t.Roles)}
}

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// Validate checks that every role in [Roles] is defined, all colors are hex
// and border styles are ones the sinks can draw.
func (t *Theme) Validate() error {
	for _, r := range Roles {
		d, ok := t.Roles[r]
		if !ok {
			return errors.New(errors.ErrCodeInvalidPalette, "palette %q: missing role %q", t.ThemeName, r)
		}
		for _, c := range []string{d.Fill, d.Font.Color, d.Bottom.Color} {
			if c != "" && !hexColor.MatchString(c) {
				return errors.New(errors.ErrCodeInvalidPalette, "palette %q: role %q: invalid color %q", t.ThemeName, r, c)
			}
		}
		switch d.Bottom.Style {
		case LineNone, LineThin, LineMedium:
		default:
			return errors.New(errors.ErrCodeInvalidPalette, "palette %q: role %q: unknown border style %q (want thin or medium)", t.ThemeName, r, d.Bottom.Style)
		}
		if d.Font.Size < 0 {
			return errors.New(errors.ErrCodeInvalidPalette, "palette %q: role %q: negative font size", t.ThemeName, r)
		}
	}
	return nil
}

var builtins = map[string]func() *Theme{
	"midnight": Midnight,
	"paper":    Paper,
}

// DefaultName is the palette used when none is configured.
const DefaultName = "midnight"

// Names returns the built-in palette names in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Builtin returns a fresh copy of the named built-in palette.
func Builtin(name string) (*Theme, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown palette %q (available: %v)", name, Names())
	}
	return fn(), nil
}

func font(size float64, color string) Font {
	return Font{Family: fontFamily, Size: size, Color: color}
}

func bold(size float64, color string) Font {
	return Font{Family: fontFamily, Size: size, Bold: true, Color: color}
}

func italic(size float64, color string) Font {
	return Font{Family: fontFamily, Size: size, Italic: true, Color: color}
}

// Midnight is the dark banner / violet accent theme.
func Midnight() *Theme {
	const (
		dark        = "1A1A2E"
		accent      = "6C5CE7"
		accentLight = "A29BFE"
		headerBG    = "2D2856"
		white       = "FFFFFF"
		lightGray   = "F8F9FA"
		medGray     = "E9ECEF"
		textDark    = "2D3436"
		textMed     = "636E72"
		sectionBG   = "EDE7F6"
		subtotalBG  = "F3E5F5"
	)
	thin := Line{Style: LineThin, Color: medGray}
	emphasis := Line{Style: LineMedium, Color: accent}

	return &Theme{
		ThemeName: "midnight",
		Roles: map[Role]Descriptor{
			RoleBanner:         {Fill: dark, Font: font(10, white)},
			RoleBannerTitle:    {Font: bold(28, white)},
			RoleBannerSubtitle: {Font: font(11, accentLight)},
			RoleBannerLabel:    {Font: font(9, accentLight)},
			RoleBannerValue:    {Font: bold(12, white)},
			RoleBannerNote:     {Font: italic(10, accentLight)},
			RoleSummary:        {Fill: accent, Font: bold(9, white)},
			RoleSummaryRate:    {Font: bold(10, white)},
			RoleHeader:         {Fill: headerBG, Font: bold(10, white), Bottom: emphasis},
			RoleSection:        {Fill: sectionBG, Font: bold(11, accent)},
			RoleItemEven:       {Fill: lightGray, Font: font(10, textDark), Bottom: thin},
			RoleItemOdd:        {Fill: white, Font: font(10, textDark), Bottom: thin},
			RoleDescription:    {Font: italic(9, textMed)},
			RoleMutedLabel:     {Font: font(9, textMed)},
			RoleBoldValue:      {Font: bold(10, textDark)},
			RoleSubtotal:       {Fill: subtotalBG, Font: bold(10, accent)},
			RoleTotal:          {Fill: dark, Font: bold(14, white)},
			RoleTotalAmount:    {Font: bold(18, white)},
			RoleTotalNote:      {Font: font(10, accentLight)},
			RoleBandHeader:     {Font: bold(11, accent), Bottom: emphasis},
			RoleBreakdown:      {Font: font(9, textDark), Bottom: thin},
		},
	}
}

// Paper is a light, print-friendly theme with no dark fills.
func Paper() *Theme {
	const (
		ink       = "212529"
		slate     = "495057"
		muted     = "868E96"
		rule      = "DEE2E6"
		accent    = "1C7ED6"
		white     = "FFFFFF"
		wash      = "F1F3F5"
		sectionBG = "E7F5FF"
	)
	thin := Line{Style: LineThin, Color: rule}
	emphasis := Line{Style: LineMedium, Color: ink}

	return &Theme{
		ThemeName: "paper",
		Roles: map[Role]Descriptor{
			RoleBanner:         {Fill: white, Font: font(10, ink)},
			RoleBannerTitle:    {Font: bold(28, ink)},
			RoleBannerSubtitle: {Font: font(11, slate)},
			RoleBannerLabel:    {Font: font(9, muted)},
			RoleBannerValue:    {Font: bold(12, ink)},
			RoleBannerNote:     {Font: italic(10, slate)},
			RoleSummary:        {Fill: wash, Font: bold(9, ink)},
			RoleSummaryRate:    {Font: bold(10, ink)},
			RoleHeader:         {Fill: white, Font: bold(10, ink), Bottom: emphasis},
			RoleSection:        {Fill: sectionBG, Font: bold(11, accent)},
			RoleItemEven:       {Fill: wash, Font: font(10, ink), Bottom: thin},
			RoleItemOdd:        {Fill: white, Font: font(10, ink), Bottom: thin},
			RoleDescription:    {Font: italic(9, muted)},
			RoleMutedLabel:     {Font: font(9, muted)},
			RoleBoldValue:      {Font: bold(10, ink)},
			RoleSubtotal:       {Fill: wash, Font: bold(10, accent)},
			RoleTotal:          {Fill: ink, Font: bold(14, white)},
			RoleTotalAmount:    {Font: bold(18, white)},
			RoleTotalNote:      {Font: font(10, rule)},
			RoleBandHeader:     {Font: bold(11, ink), Bottom: emphasis},
			RoleBreakdown:      {Font: font(9, ink), Bottom: thin},
		},
	}
}
