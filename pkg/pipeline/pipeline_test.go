package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/invoicer/pkg/cache"
	"github.com/matzehuels/invoicer/pkg/errors"
	invio "github.com/matzehuels/invoicer/pkg/io"
	"github.com/matzehuels/invoicer/pkg/observability"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
)

const sampleYAML = `
invoice_id: INV-1
rate: 100
sections:
  - name: "1. Setup"
    items:
      - task: A
        hours: 2
      - task: B
        hours: 3
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"xlsx", false},
		{"json", false},
		{"summary", false},
		{"pdf", true},
		{"XLSX", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"xlsx", "summary"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"xlsx", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"xlsx", []string{"xlsx"}},
		{"xlsx, JSON ,summary", []string{"xlsx", "json", "summary"}},
		{"xlsx,,xlsx", []string{"xlsx"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name    string
		page    sink.PageLayout
		wantErr bool
	}{
		{"default", layout.DefaultPageLayout, false},
		{"portrait", sink.PageLayout{Orientation: sink.Portrait}, false},
		{"bad orientation", sink.PageLayout{Orientation: "sideways"}, true},
		{"negative fit", sink.PageLayout{Orientation: sink.Landscape, FitToWidth: -1}, true},
		{"negative margin", sink.PageLayout{Orientation: sink.Landscape, Margins: sink.Margins{Top: -0.1}}, true},
	}
	for _, tt := range tests {
		if err := ValidatePage(tt.page); (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidatePage() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Data: []byte(sampleYAML), InputFormat: invio.FormatYAML}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if !slices.Equal(opts.Formats, DefaultFormats) {
		t.Errorf("Formats = %v, want %v", opts.Formats, DefaultFormats)
	}
	if opts.Palette != DefaultPalette {
		t.Errorf("Palette = %q, want %q", opts.Palette, DefaultPalette)
	}
	if opts.Page != layout.DefaultPageLayout {
		t.Errorf("Page = %+v, want default", opts.Page)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second ValidateAndSetDefaults() error: %v", err)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no input", Options{}, errors.ErrCodeInvalidInput},
		{"both inputs", Options{Input: "a.yaml", Data: []byte("x"), InputFormat: invio.FormatYAML}, errors.ErrCodeInvalidInput},
		{"data without format", Options{Data: []byte("x")}, errors.ErrCodeInvalidFormat},
		{"bad format", Options{Input: "a.yaml", Formats: []string{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"bad path", Options{Input: "a\x00.yaml"}, errors.ErrCodeInvalidPath},
		{"bad page", Options{Input: "a.yaml", Page: sink.PageLayout{Orientation: "up"}}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	defer r.Close()

	res, err := r.Execute(context.Background(), Options{
		Data:        []byte(sampleYAML),
		InputFormat: invio.FormatYAML,
		Formats:     []string{FormatXLSX, FormatJSON, FormatSummary},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	for _, f := range []string{FormatXLSX, FormatJSON, FormatSummary} {
		if len(res.Artifacts[f]) == 0 {
			t.Errorf("artifact %s is empty", f)
		}
	}
	if got := res.Invoice.TotalAmount.String(); got != "500" {
		t.Errorf("TotalAmount = %s, want 500", got)
	}
	if res.Stats.Sections != 1 || res.Stats.Items != 2 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.Rows != layout.PlannedRows(res.Invoice) {
		t.Errorf("Rows = %d, want %d", res.Stats.Rows, layout.PlannedRows(res.Invoice))
	}

	var summary invio.Summary
	if err := json.Unmarshal(res.Artifacts[FormatSummary], &summary); err != nil {
		t.Fatalf("summary is not JSON: %v", err)
	}
	if summary.InvoiceID != "INV-1" || summary.TotalHours.String() != "5" {
		t.Errorf("summary = %+v", summary)
	}
}

func TestRunnerExecuteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Input: path, Palette: "paper"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(res.Artifacts[FormatXLSX]) == 0 {
		t.Error("xlsx artifact is empty")
	}
}

func TestRunnerExecuteErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts Options
		code errors.Code
	}{
		{"zero rate", "rate: 0\nsections: [{name: A}]\n", Options{}, errors.ErrCodeInvalidRate},
		{"negative hours", "rate: 1\nsections: [{name: A, items: [{task: t, hours: -1}]}]\n", Options{}, errors.ErrCodeInvalidHours},
		{"no sections", "rate: 1\n", Options{}, errors.ErrCodeEmptyDocument},
		{"unknown palette", sampleYAML, Options{Palette: "neon"}, errors.ErrCodeInvalidPalette},
		{"malformed", "rate: [", Options{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			opts.Data = []byte(tt.data)
			opts.InputFormat = invio.FormatYAML
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRunnerCache(t *testing.T) {
	mem := cache.NewMemoryCache(16)
	r := NewRunner(mem, nil, nil)
	defer r.Close()

	opts := Options{Data: []byte(sampleYAML), InputFormat: invio.FormatYAML, Formats: []string{FormatJSON, FormatSummary}}
	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if first.CacheHit {
		t.Error("first run should miss the cache")
	}
	if mem.Len() != 2 {
		t.Errorf("cached entries = %d, want 2", mem.Len())
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run should hit the cache")
	}
	if string(first.Artifacts[FormatJSON]) != string(second.Artifacts[FormatJSON]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	opts.Palette = "paper"
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute() error: %v", err)
	}
	if third.CacheHit {
		t.Error("changing the palette should miss the cache")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks
	events []string
}

func (h *recordingHooks) OnParseComplete(_ context.Context, source string, sections, items int, _ time.Duration, err error) {
	h.events = append(h.events, fmt.Sprintf("parse %s %d/%d err=%v", source, sections, items, err != nil))
}

func (h *recordingHooks) OnRenderComplete(_ context.Context, formats []string, _ time.Duration, err error) {
	h.events = append(h.events, fmt.Sprintf("render %v err=%v", formats, err != nil))
}

func (h *recordingHooks) OnCacheHit(_ context.Context, format string) {
	h.events = append(h.events, "hit "+format)
}

func (h *recordingHooks) OnCacheMiss(_ context.Context, format string) {
	h.events = append(h.events, "miss "+format)
}

func (h *recordingHooks) OnCacheSet(_ context.Context, format string, _ int) {
	h.events = append(h.events, "set "+format)
}

func TestRunnerHooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	r := NewRunner(cache.NewMemoryCache(4), nil, nil)
	opts := Options{Data: []byte(sampleYAML), InputFormat: invio.FormatYAML, Formats: []string{FormatSummary}}
	for range 2 {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatalf("Execute() error: %v", err)
		}
	}
	bad := Options{Data: []byte("rate: 0\nsections: []\n"), InputFormat: invio.FormatYAML}
	if _, err := r.Execute(context.Background(), bad); err == nil {
		t.Fatal("expected error for zero rate")
	}

	want := []string{
		"parse data:yaml 1/2 err=false",
		"miss summary",
		"set summary",
		"render [summary] err=false",
		"parse data:yaml 1/2 err=false",
		"hit summary",
		"render [summary] err=false",
		"parse data:yaml 0/0 err=true",
	}
	if !slices.Equal(hooks.events, want) {
		t.Errorf("events =\n%v\nwant\n%v", hooks.events, want)
	}
}

func TestSummaryOnlySkipsRowCount(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Data:        []byte(sampleYAML),
		InputFormat: invio.FormatYAML,
		Formats:     []string{FormatSummary},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.Stats.Rows != 0 {
		t.Errorf("Rows = %d, want 0 without a sheet format", res.Stats.Rows)
	}
}
