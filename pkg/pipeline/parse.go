package pipeline

import (
	"bytes"

	"github.com/matzehuels/invoicer/pkg/billing"
	invio "github.com/matzehuels/invoicer/pkg/io"
)

// Parse decodes the invoice named by opts: the file at opts.Input, or
// opts.Data in opts.InputFormat.
func Parse(opts Options) (billing.Document, error) {
	if opts.Input != "" {
		return invio.ImportFile(opts.Input)
	}
	return invio.ReadInvoice(bytes.NewReader(opts.Data), opts.InputFormat)
}
