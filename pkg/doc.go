// Package pkg provides the core libraries for invoicer.
//
// # Overview
//
// invoicer turns an invoice description (sections of billable items, an
// hourly rate) into a styled spreadsheet: a banner, an item table grouped
// by section, a per-section summary with proportional bars, and a grand
// total. The pkg directory is organized by stage:
//
//  1. [billing] - Domain model, aggregation and display formatting
//  2. [io] - Invoice decoding (YAML, TOML, JSON) and summary export
//  3. [render/sheet] - Layout onto a cell grid and XLSX output
//  4. [pipeline] - Orchestration (parse → aggregate → render) with caching
//  5. [api] - HTTP access to the pipeline
//
// # Architecture
//
// The data flow through invoicer:
//
//	invoice.yaml / .toml / .json
//	         ↓
//	    [io] package (decode + validate input)
//	         ↓
//	    [billing] package (subtotals, shares, grand total)
//	         ↓
//	    [render/sheet/layout] package (region plan, cell writes)
//	         ↓
//	    [render/sheet/sink] package (XLSX workbook or recorded grid)
//	         ↓
//	    .xlsx / .sheet.json / .summary.json
//
// # Quick Start
//
// Render an invoice file to XLSX:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/invoicer/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "invoice.yaml",
//	    Formats: []string{pipeline.FormatXLSX},
//	})
//	os.WriteFile("invoice.xlsx", result.Artifacts[pipeline.FormatXLSX], 0o644)
//
// # Main Packages
//
// [billing] - Items, sections and documents with decimal hours and rates.
// [billing.Aggregate] computes amounts and each section's share of the
// total; the Format helpers produce "$1,375.00", "8.0 hrs" and "25%".
//
// [render/sheet] - The layout engine walks a fixed region plan (banner,
// header, sections, summary, total) and writes styled cells to a sink.
// Palettes come built in or from TOML theme files.
//
// [pipeline] - Options validation, format selection and a [cache.Cache]
// in front of rendering, keyed by the hash of input and options.
//
// [config] - Layered settings: defaults, a TOML config file and
// INVOICER_* environment variables.
//
// [errors] - Coded errors shared by every layer. The CLI maps them to exit
// statuses and the API to HTTP statuses.
//
// [observability] - Hook interfaces for parse, render, cache and HTTP
// events, no-ops unless registered.
//
// [billing]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/billing
// [billing.Aggregate]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/billing#Aggregate
// [io]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/io
// [render/sheet]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/render/sheet
// [render/sheet/layout]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/render/sheet/layout
// [render/sheet/sink]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/render/sheet/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/api
// [cache.Cache]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/cache#Cache
// [config]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/invoicer/pkg/observability
package pkg
