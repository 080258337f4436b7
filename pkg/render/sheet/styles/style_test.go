package styles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/invoicer/pkg/errors"
)

func TestBuiltinsAreComplete(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			th, err := Builtin(name)
			if err != nil {
				t.Fatalf("Builtin(%q) error: %v", name, err)
			}
			if th.Name() != name {
				t.Errorf("Name() = %q, want %q", th.Name(), name)
			}
			if err := th.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestBuiltinUnknown(t *testing.T) {
	_, err := Builtin("neon")
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("Builtin(neon) error = %v, want %v", err, errors.ErrCodeInvalidPalette)
	}
}

func TestBuiltinReturnsCopy(t *testing.T) {
	a, _ := Builtin("midnight")
	a.Roles[RoleSection] = Descriptor{Fill: "000000"}

	b, _ := Builtin("midnight")
	if b.Roles[RoleSection].Fill == "000000" {
		t.Error("Builtin returned a shared role table")
	}
}

func TestResolve(t *testing.T) {
	th := Midnight()

	d, ok := Resolve(th, On(RoleItemOdd, RoleDescription))
	if !ok {
		t.Fatal("Resolve() ok = false, want true")
	}
	if d.Fill != th.Roles[RoleItemOdd].Fill {
		t.Errorf("Fill = %q, want band fill %q", d.Fill, th.Roles[RoleItemOdd].Fill)
	}
	if d.Bottom != th.Roles[RoleItemOdd].Bottom {
		t.Errorf("Bottom = %+v, want band border %+v", d.Bottom, th.Roles[RoleItemOdd].Bottom)
	}
	if !d.Font.Italic {
		t.Error("Font.Italic = false, want description font")
	}

	if _, ok := Resolve(th, On(RoleItemOdd, Role("nope"))); ok {
		t.Error("Resolve() with unknown text role ok = true, want false")
	}
	if _, ok := Resolve(th, Of(Role("nope"))); ok {
		t.Error("Resolve() with unknown base role ok = true, want false")
	}
}

func TestRefString(t *testing.T) {
	if got := Of(RoleTotal).String(); got != "total" {
		t.Errorf("String() = %q, want %q", got, "total")
	}
	if got := On(RoleTotal, RoleTotalAmount).String(); got != "total/total-amount" {
		t.Errorf("String() = %q, want %q", got, "total/total-amount")
	}
}

func TestValidate(t *testing.T) {
	th := Midnight()
	delete(th.Roles, RoleSubtotal)
	if err := th.Validate(); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("missing role: Validate() = %v, want INVALID_PALETTE", err)
	}

	th = Midnight()
	th.Roles[RoleSection] = Descriptor{Fill: "#EDE7F6"}
	if err := th.Validate(); err == nil {
		t.Error("bad color: Validate() = nil, want error")
	}

	th = Midnight()
	th.Roles[RoleHeader] = Descriptor{Bottom: Line{Style: "dashed", Color: "000000"}}
	if err := th.Validate(); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("bad border style: Validate() = %v, want INVALID_PALETTE", err)
	}
}

func TestReadTheme(t *testing.T) {
	src := `
name = "acme"
base = "paper"

[roles.section]
fill = "FFF3BF"

[roles.section.font]
color = "E67700"
size = 12

[roles.header.bottom]
style = "thin"
color = "E67700"
`
	th, err := ReadTheme(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTheme() error: %v", err)
	}
	if th.Name() != "acme" {
		t.Errorf("Name() = %q, want %q", th.Name(), "acme")
	}

	sec := th.Roles[RoleSection]
	if sec.Fill != "FFF3BF" {
		t.Errorf("section fill = %q, want FFF3BF", sec.Fill)
	}
	if sec.Font.Color != "E67700" || sec.Font.Size != 12 {
		t.Errorf("section font = %+v, want color E67700 size 12", sec.Font)
	}
	if !sec.Font.Bold {
		t.Error("section font lost base bold setting")
	}
	if got := th.Roles[RoleHeader].Bottom; got.Style != LineThin {
		t.Errorf("header bottom = %+v, want thin", got)
	}
	if th.Roles[RoleTotal] != Paper().Roles[RoleTotal] {
		t.Error("untouched role differs from base")
	}
}

func TestReadThemeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown role", "[roles.sidebar]\nfill = \"FFFFFF\"\n"},
		{"unknown key", "[roles.section]\nbackground = \"FFFFFF\"\n"},
		{"unknown base", "base = \"neon\"\n"},
		{"bad color", "[roles.section]\nfill = \"red\"\n"},
		{"bad border style", "[roles.header.bottom]\nstyle = \"dashed\"\ncolor = \"000000\"\n"},
		{"syntax", "name = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadTheme(strings.NewReader(tt.src)); !errors.Is(err, errors.ErrCodeInvalidPalette) {
				t.Errorf("ReadTheme() error = %v, want INVALID_PALETTE", err)
			}
		})
	}
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	if err := os.WriteFile(path, []byte("base = \"midnight\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	th, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme() error: %v", err)
	}
	if th.Name() != "midnight-custom" {
		t.Errorf("Name() = %q, want %q", th.Name(), "midnight-custom")
	}

	_, err = LoadTheme(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadTheme(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadExampleTheme(t *testing.T) {
	th, err := LoadTheme(filepath.Join("..", "..", "..", "..", "examples", "palette.toml"))
	if err != nil {
		t.Fatalf("LoadTheme() error: %v", err)
	}
	if th.Name() != "acme" {
		t.Errorf("Name() = %q, want acme", th.Name())
	}
	d, ok := th.Descriptor(RoleSection)
	if !ok || d.Fill != "FFF3BF" || !d.Font.Bold {
		t.Errorf("section = %+v, want orange override", d)
	}
}
