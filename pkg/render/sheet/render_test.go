package sheet

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
	"github.com/matzehuels/invoicer/pkg/render/sheet/layout"
	"github.com/matzehuels/invoicer/pkg/render/sheet/sink"
	"github.com/matzehuels/invoicer/pkg/render/sheet/styles"
)

func sampleDoc() billing.Document {
	return billing.Document{
		Rate: decimal.NewFromInt(250),
		Meta: billing.Metadata{InvoiceID: "WT-2026-002", Date: "January 5, 2026", Title: "INVOICE"},
		Sections: []billing.Section{
			{Name: "1. Foundation", Items: []billing.LineItem{
				{Task: "Scaffold", Description: "Repo, CI", Hours: decimal.RequireFromString("3.5")},
				{Task: "Auth", Hours: decimal.NewFromInt(6)},
			}},
			{Name: "2. Polish", Items: []billing.LineItem{
				{Task: "Themes", Hours: decimal.RequireFromString("2.5")},
			}},
		},
		Deliverables: []string{"Source code"},
		Terms:        []string{"Net 30"},
	}
}

// closeCounter records Close calls on a Recorder.
type closeCounter struct {
	*sink.Recorder
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return c.Recorder.Close()
}

func TestRenderRecorder(t *testing.T) {
	s := &closeCounter{Recorder: sink.NewRecorder()}
	res, err := Render(sampleDoc(), s)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if len(res.Data) == 0 {
		t.Error("Render() returned no data")
	}
	if got := res.Invoice.TotalAmount.String(); got != "3000" {
		t.Errorf("TotalAmount = %s, want 3000", got)
	}
	if want := layout.PlannedRows(res.Invoice); res.RowCount != want {
		t.Errorf("RowCount = %d, want %d", res.RowCount, want)
	}
	if s.closes != 1 {
		t.Errorf("Close() called %d times, want 1", s.closes)
	}
}

func TestRenderInvalidRateTouchesNothing(t *testing.T) {
	for _, rate := range []int64{0, -10} {
		doc := sampleDoc()
		doc.Rate = decimal.NewFromInt(rate)
		s := &closeCounter{Recorder: sink.NewRecorder()}

		_, err := Render(doc, s)
		if !errors.Is(err, errors.ErrCodeInvalidRate) {
			t.Fatalf("rate %d: error = %v, want INVALID_RATE", rate, err)
		}
		if n := len(s.Ops()); n != 0 {
			t.Errorf("rate %d: sink received %d calls, want 0", rate, n)
		}
		if s.closes != 1 {
			t.Errorf("rate %d: Close() called %d times, want 1", rate, s.closes)
		}
	}
}

func TestRenderInvalidHours(t *testing.T) {
	doc := sampleDoc()
	doc.Sections[1].Items[0].Hours = decimal.Zero
	s := sink.NewRecorder()

	_, err := Render(doc, s)
	if !errors.Is(err, errors.ErrCodeInvalidHours) {
		t.Fatalf("error = %v, want INVALID_HOURS", err)
	}
	if n := len(s.Ops()); n != 0 {
		t.Errorf("sink received %d calls, want 0", n)
	}
}

func TestRenderEmptyDocument(t *testing.T) {
	doc := sampleDoc()
	doc.Sections = nil
	_, err := Render(doc, sink.NewRecorder())
	if !errors.Is(err, errors.ErrCodeEmptyDocument) {
		t.Fatalf("error = %v, want EMPTY_DOCUMENT", err)
	}
}

type failingFinalize struct {
	*sink.Recorder
	err error
}

func (f *failingFinalize) Finalize() ([]byte, error) { return nil, f.err }

func TestRenderFinalizeFailure(t *testing.T) {
	cause := stderrors.New("quota exceeded")
	_, err := Render(sampleDoc(), &failingFinalize{Recorder: sink.NewRecorder(), err: cause})
	if !errors.Is(err, errors.ErrCodeSinkWrite) {
		t.Fatalf("error = %v, want SINK_WRITE_FAILURE", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("cause not reachable through %v", err)
	}
}

func TestRenderXLSX(t *testing.T) {
	x, err := sink.NewXLSX(styles.Midnight())
	if err != nil {
		t.Fatalf("NewXLSX() error: %v", err)
	}
	res, err := Render(sampleDoc(), x)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("OpenReader() error: %v", err)
	}
	defer f.Close()

	tests := []struct {
		cell, want string
	}{
		{"B2", "INVOICE"},
		{"F2", "WT-2026-002"},
		{"A10", "#"},
		{"B11", "1. Foundation"},
		{"D12", "3.5"},
		{"F12", "875"},
		{"F13", "1500"},
		{"B14", "Subtotal — Foundation"},
		{"F14", "2375"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(sink.DefaultSheetName, tt.cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("GetCellValue(%s) error: %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestRenderRejectsOverlongDescription(t *testing.T) {
	doc := sampleDoc()
	doc.Sections[0].Items[1].Description = strings.Repeat("d", 40000)

	x, err := sink.NewXLSX(styles.Midnight())
	if err != nil {
		t.Fatalf("NewXLSX() error: %v", err)
	}
	if _, err := Render(doc, x); !errors.Is(err, errors.ErrCodeInvalidItem) || !errors.IsInputError(err) {
		t.Fatalf("xlsx: error = %v, want INVALID_ITEM", err)
	}

	rec := sink.NewRecorder()
	if _, err := Render(doc, rec); !errors.Is(err, errors.ErrCodeInvalidItem) {
		t.Fatalf("recorder: error = %v, want INVALID_ITEM", err)
	}
	if n := len(rec.Ops()); n != 0 {
		t.Errorf("recorder received %d calls, want 0", n)
	}
}

func TestRenderXLSXDeterministic(t *testing.T) {
	render := func() []byte {
		t.Helper()
		x, err := sink.NewXLSX(styles.Midnight())
		if err != nil {
			t.Fatalf("NewXLSX() error: %v", err)
		}
		res, err := Render(sampleDoc(), x)
		if err != nil {
			t.Fatalf("Render() error: %v", err)
		}
		return res.Data
	}

	first, second := render(), render()
	if !bytes.Equal(first, second) {
		t.Errorf("two renders of the same invoice differ (%d vs %d bytes)", len(first), len(second))
	}
}
