package sheet

import (
	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
)

// Result is a rendered document.
type Result struct {
	Data     []byte
	Invoice  *billing.Enriched
	RowCount int
}

// Render aggregates doc, lays it out on s and finalizes s. s is always
// closed before Render returns.
//
// Aggregation errors (INVALID_RATE, INVALID_HOURS, ...) are returned before s
// receives any call. A document without sections fails with EMPTY_DOCUMENT.
// Sink failures are reported as SINK_WRITE_FAILURE with the cause attached;
// no partial output is returned.
func Render(doc billing.Document, s sink.Sink, opts ...layout.Option) (*Result, error) {
	defer s.Close()

	enriched, err := billing.Aggregate(doc)
	if err != nil {
		return nil, err
	}

	end, err := layout.Layout(enriched, s, opts...)
	if err != nil {
		return nil, err
	}

	data, err := s.Finalize()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSinkWrite, err, "finalize document")
	}
	return &Result{Data: data, Invoice: enriched, RowCount: end.Row - 1}, nil
}
