// Package pipeline provides the invoice rendering pipeline shared by the CLI
// and the HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Parse: decode the invoice from a file or raw bytes (YAML, TOML, JSON)
//  2. Aggregate: validate the document and compute every total
//  3. Render: produce one artifact per requested format (xlsx, json, summary)
//
// Aggregation runs before any rendering, so a bad rate or hours value fails
// the run without producing partial output.
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "invoice.yaml",
//	    Formats: []string{pipeline.FormatXLSX},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xlsx := result.Artifacts[pipeline.FormatXLSX]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
	invio "github.com/matzehuels/invoicer/pkg/io"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatXLSX    = "xlsx"
	FormatJSON    = "json"
	FormatSummary = "summary"
)

// DefaultPalette is the palette used when none is configured.
const DefaultPalette = styles.DefaultName

// DefaultFormats are rendered when none are requested.
var DefaultFormats = []string{FormatXLSX}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXLSX:    true,
	FormatJSON:    true,
	FormatSummary: true,
}

// Extensions maps output formats to file extensions.
var Extensions = map[string]string{
	FormatXLSX:    ".xlsx",
	FormatJSON:    ".sheet.json",
	FormatSummary: ".summary.json",
}

// ContentTypes maps output formats to MIME types.
var ContentTypes = map[string]string{
	FormatXLSX:    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON:    "application/json",
	FormatSummary: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Input options. Exactly one of Input or Data is required.
	Input       string       `json:"input,omitempty"`
	Data        []byte       `json:"-"`
	InputFormat invio.Format `json:"input_format,omitempty"` // required with Data

	// Render options
	Formats     []string        `json:"formats,omitempty"`
	Palette     string          `json:"palette,omitempty"`
	PaletteFile string          `json:"palette_file,omitempty"`
	Page        sink.PageLayout `json:"page"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Invoice is the aggregated document.
	Invoice *billing.Enriched

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sections   int
	Items      int
	Rows       int // planned sheet rows; zero when no sheet format is requested
	ParseTime  time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: xlsx, json, summary)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// ValidatePage checks print settings.
func ValidatePage(p sink.PageLayout) error {
	if p.Orientation != sink.Landscape && p.Orientation != sink.Portrait {
		return errors.New(errors.ErrCodeInvalidInput, "invalid page orientation: %q (must be landscape or portrait)", p.Orientation)
	}
	if p.FitToWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fit_to_width must not be negative")
	}
	m := p.Margins
	if m.Left < 0 || m.Right < 0 || m.Top < 0 || m.Bottom < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page margins must not be negative")
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks the input fields.
func (o *Options) ValidateForParse() error {
	switch {
	case o.Input == "" && len(o.Data) == 0:
		return errors.New(errors.ErrCodeInvalidInput, "input file or data is required")
	case o.Input != "" && len(o.Data) > 0:
		return errors.New(errors.ErrCodeInvalidInput, "input file and data are mutually exclusive")
	case o.Input != "":
		if err := errors.ValidatePath(o.Input); err != nil {
			return err
		}
	case !slices.Contains(invio.Formats, o.InputFormat):
		return errors.New(errors.ErrCodeInvalidFormat, "invalid input format: %q (must be one of: yaml, toml, json)", o.InputFormat)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Page == (sink.PageLayout{}) {
		o.Page = layout.DefaultPageLayout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PaletteFile != "" {
		if err := errors.ValidatePath(o.PaletteFile); err != nil {
			return err
		}
	}
	return ValidatePage(o.Page)
}

// source names the input for logs and hooks.
func (o *Options) source() string {
	if o.Input != "" {
		return o.Input
	}
	return "data:" + string(o.InputFormat)
}

// NeedsSheet reports whether any requested format runs the layout engine.
func (o *Options) NeedsSheet() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool { return f != FormatSummary })
}
