package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/cache"
	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/observability"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating the stage logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → aggregate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	// Stages 1 and 2: Parse and aggregate
	source := opts.source()
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	parseStart := time.Now()
	doc, enriched, err := parseAndAggregate(opts)
	if err != nil {
		hooks.OnParseComplete(ctx, source, 0, 0, time.Since(parseStart), err)
		return nil, err
	}

	result := &Result{Invoice: enriched}
	result.Stats.ParseTime = time.Since(parseStart)
	hooks.OnParseComplete(ctx, source, len(enriched.Sections), enriched.ItemCount(), result.Stats.ParseTime, nil)
	result.Stats.Sections = len(enriched.Sections)
	result.Stats.Items = enriched.ItemCount()
	if opts.NeedsSheet() {
		result.Stats.Rows = layout.PlannedRows(enriched)
	}

	opts.Logger.Info("parsed invoice",
		"sections", result.Stats.Sections,
		"items", result.Stats.Items,
		"hours", enriched.TotalHours.String(),
		"amount", billing.FormatCurrency(enriched.TotalAmount),
		"duration", result.Stats.ParseTime)

	palette, err := ResolvePalette(opts.Palette, opts.PaletteFile)
	if err != nil {
		return nil, err
	}

	// Stage 3: Render
	hooks.OnRenderStart(ctx, opts.Formats)
	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, enriched, palette, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"palette", palette.Name(),
		"rows", result.Stats.Rows,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// RenderWithCacheInfo renders every requested format, serving artifacts from
// the cache when all of them are present, and reports whether it did.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc billing.Document, enriched *billing.Enriched, palette *styles.Theme, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// The decoded document is hashed, so formatting differences in the
	// source file do not defeat the cache.
	docHash, err := cache.HashValue(doc)
	if err != nil {
		return nil, false, fmt.Errorf("hash document: %w", err)
	}
	paletteHash, err := cache.HashValue(palette)
	if err != nil {
		return nil, false, fmt.Errorf("hash palette: %w", err)
	}
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(docHash, cache.ArtifactKeyOpts{Format: format, Palette: paletteHash, Page: opts.Page})
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, hit, err := r.Cache.Get(ctx, keyFor(format))
		if err != nil || !hit {
			cacheHooks.OnCacheMiss(ctx, format)
			break
		}
		cacheHooks.OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		opts.Logger.Debug("artifacts served from cache", "formats", opts.Formats)
		return artifacts, true, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	rendered, err := Render(doc, enriched, palette, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		if err := r.Cache.Set(ctx, keyFor(format), data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache artifact", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, format, len(data))
	}
	return rendered, false, nil
}

// parseAndAggregate decodes the input and computes totals. A document
// without sections is rejected here so nothing is rendered for it.
func parseAndAggregate(opts Options) (billing.Document, *billing.Enriched, error) {
	doc, err := Parse(opts)
	if err != nil {
		return billing.Document{}, nil, fmt.Errorf("parse: %w", err)
	}
	enriched, err := billing.Aggregate(doc)
	if err != nil {
		return billing.Document{}, nil, err
	}
	if len(enriched.Sections) == 0 {
		return billing.Document{}, nil, errors.New(errors.ErrCodeEmptyDocument, "document has no sections")
	}
	return doc, enriched, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
