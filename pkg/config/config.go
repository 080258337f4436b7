// Package config loads invoicer settings from layered sources.
//
// Sources are merged in order, later ones winning:
//
//  1. Built-in defaults (the pipeline defaults)
//  2. A TOML file, $XDG_CONFIG_HOME/invoicer/config.toml unless a path is given
//  3. INVOICER_* environment variables (INVOICER_PAGE_ORIENTATION → page.orientation)
//
// Command-line flags are applied by the caller on top of the loaded [Config].
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/pipeline"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "INVOICER_"

// DefaultAddr is the listen address of `invoicer serve`.
const DefaultAddr = ":8080"

// Config is the merged configuration.
type Config struct {
	Palette     string       `koanf:"palette"`
	PaletteFile string       `koanf:"palette_file"`
	Formats     []string     `koanf:"formats"`
	OutputDir   string       `koanf:"output_dir"`
	Page        PageConfig   `koanf:"page"`
	Server      ServerConfig `koanf:"server"`

	// Source is the config file that was loaded, empty when none was.
	Source string `koanf:"-"`
}

// PageConfig holds print settings.
type PageConfig struct {
	Orientation string        `koanf:"orientation"`
	FitToWidth  int           `koanf:"fit_to_width"`
	Margins     MarginsConfig `koanf:"margins"`
}

// MarginsConfig holds page margins in inches.
type MarginsConfig struct {
	Left   float64 `koanf:"left"`
	Right  float64 `koanf:"right"`
	Top    float64 `koanf:"top"`
	Bottom float64 `koanf:"bottom"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// keys lists every recognized key; environment variables map onto these.
var keys = []string{
	"palette",
	"palette_file",
	"formats",
	"output_dir",
	"page.orientation",
	"page.fit_to_width",
	"page.margins.left",
	"page.margins.right",
	"page.margins.top",
	"page.margins.bottom",
	"server.addr",
}

// Defaults returns the built-in configuration values as a flat key map.
func Defaults() map[string]any {
	p := layout.DefaultPageLayout
	return map[string]any{
		"palette":             pipeline.DefaultPalette,
		"palette_file":        "",
		"formats":             slices.Clone(pipeline.DefaultFormats),
		"output_dir":          "",
		"page.orientation":    string(p.Orientation),
		"page.fit_to_width":   p.FitToWidth,
		"page.margins.left":   p.Margins.Left,
		"page.margins.right":  p.Margins.Right,
		"page.margins.top":    p.Margins.Top,
		"page.margins.bottom": p.Margins.Bottom,
		"server.addr":         DefaultAddr,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "invoicer", "config.toml")
}

// Load merges defaults, the config file and the environment.
//
// An empty path reads [DefaultPath] if it exists. An explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load defaults")
	}

	source, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load config %s", source)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load environment")
	}

	var cfg Config
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, conf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	cfg.Source = source
	cfg.Formats = pipeline.ParseFormats(strings.Join(cfg.Formats, ","))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if err := errors.ValidatePath(path); err != nil {
			return "", err
		}
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return path, nil
	}
	def := DefaultPath()
	if def == "" {
		return "", nil
	}
	if _, err := os.Stat(def); err != nil {
		return "", nil
	}
	return def, nil
}

// envKey maps INVOICER_PAGE_MARGINS_LEFT to page.margins.left. Unknown
// variables are dropped.
func envKey(name string) string {
	flat := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	for _, key := range keys {
		if strings.ReplaceAll(key, ".", "_") == flat {
			return key
		}
	}
	return ""
}

// Validate checks the formats and print settings.
func (c *Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return err
	}
	return pipeline.ValidatePage(c.PageLayout())
}

// PageLayout converts the print settings for the sink.
func (c *Config) PageLayout() sink.PageLayout {
	m := c.Page.Margins
	return sink.PageLayout{
		Orientation: sink.Orientation(strings.ToLower(c.Page.Orientation)),
		FitToWidth:  c.Page.FitToWidth,
		Margins:     sink.Margins{Left: m.Left, Right: m.Right, Top: m.Top, Bottom: m.Bottom},
	}
}

// Apply fills the render fields of opts that are still unset.
func (c *Config) Apply(opts *pipeline.Options) {
	if len(opts.Formats) == 0 {
		opts.Formats = slices.Clone(c.Formats)
	}
	if opts.Palette == "" && opts.PaletteFile == "" {
		opts.Palette = c.Palette
		opts.PaletteFile = c.PaletteFile
	}
	if opts.Page == (sink.PageLayout{}) {
		opts.Page = c.PageLayout()
	}
}
