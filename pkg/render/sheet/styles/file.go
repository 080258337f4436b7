package styles

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/invoicer/pkg/errors"
)

// themeFile is the TOML layout of a palette override file:
//
//	name = "acme"
//	base = "paper"
//
//	[roles.section]
//	fill = "FFF3BF"
//
//	[roles.section.font]
//	color = "E67700"
//	bold = true
//
//	[roles.header.bottom]
//	style = "medium"
//	color = "E67700"
type themeFile struct {
	Name  string              `toml:"name"`
	Base  string              `toml:"base"`
	Roles map[string]roleFile `toml:"roles"`
}

type roleFile struct {
	Fill   *string   `toml:"fill"`
	Font   *fontFile `toml:"font"`
	Bottom *lineFile `toml:"bottom"`
}

type fontFile struct {
	Family *string  `toml:"family"`
	Size   *float64 `toml:"size"`
	Bold   *bool    `toml:"bold"`
	Italic *bool    `toml:"italic"`
	Color  *string  `toml:"color"`
}

type lineFile struct {
	Style string `toml:"style"`
	Color string `toml:"color"`
}

// LoadTheme reads a TOML palette file from path. See [ReadTheme].
func LoadTheme(path string) (*Theme, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "palette file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "open palette file %s", path)
	}
	defer f.Close()
	return ReadTheme(f)
}

// ReadTheme decodes a TOML palette. Roles listed in the file override the
// named base palette (default "midnight") field by field. Unknown keys or
// roles are rejected so that typos do not silently fall back to the base.
func ReadTheme(r io.Reader) (*Theme, error) {
	var tf themeFile
	md, err := toml.NewDecoder(r).Decode(&tf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPalette, err, "decode palette")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown palette keys: %s", strings.Join(keys, ", "))
	}

	base := tf.Base
	if base == "" {
		base = DefaultName
	}
	parent, err := Builtin(base)
	if err != nil {
		return nil, err
	}

	name := tf.Name
	if name == "" {
		name = base + "-custom"
	}
	t := parent.Clone(name)

	for key, rf := range tf.Roles {
		role := Role(key)
		d, ok := t.Roles[role]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidPalette, "unknown role %q", key)
		}
		t.Roles[role] = rf.apply(d)
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (rf roleFile) apply(d Descriptor) Descriptor {
	if rf.Fill != nil {
		d.Fill = *rf.Fill
	}
	if ff := rf.Font; ff != nil {
		if ff.Family != nil {
			d.Font.Family = *ff.Family
		}
		if ff.Size != nil {
			d.Font.Size = *ff.Size
		}
		if ff.Bold != nil {
			d.Font.Bold = *ff.Bold
		}
		if ff.Italic != nil {
			d.Font.Italic = *ff.Italic
		}
		if ff.Color != nil {
			d.Font.Color = *ff.Color
		}
	}
	if rf.Bottom != nil {
		d.Bottom = Line{Style: LineStyle(rf.Bottom.Style), Color: rf.Bottom.Color}
	}
	return d
}
