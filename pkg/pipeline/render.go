package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/invoicer/pkg/billing"
	invio "github.com/matzehuels/invoicer/pkg/io"
	"github.com/matzehuels/invoicer/pkg/render/sheet"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

// ResolvePalette loads file when set, otherwise the built-in palette name.
func ResolvePalette(name, file string) (*styles.Theme, error) {
	if file != "" {
		return styles.LoadTheme(file)
	}
	return styles.Builtin(name)
}

// Render generates output artifacts in the requested formats. enriched must
// be the aggregation of doc.
func Render(doc billing.Document, enriched *billing.Enriched, palette styles.Palette, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatXLSX:
			data, err = renderXLSX(doc, palette, opts)
		case FormatJSON:
			data, err = renderSheet(doc, sink.NewRecorder(sink.WithRecorderPalette(palette)), opts)
		case FormatSummary:
			data, err = renderSummary(enriched)
		default:
			err = ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderXLSX(doc billing.Document, palette styles.Palette, opts Options) ([]byte, error) {
	x, err := sink.NewXLSX(palette)
	if err != nil {
		return nil, err
	}
	return renderSheet(doc, x, opts)
}

func renderSheet(doc billing.Document, s sink.Sink, opts Options) ([]byte, error) {
	res, err := sheet.Render(doc, s, layout.WithPageLayout(opts.Page))
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func renderSummary(enriched *billing.Enriched) ([]byte, error) {
	var buf bytes.Buffer
	if err := invio.WriteSummary(enriched, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
