package io

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/invoicer/pkg/billing"
	"github.com/matzehuels/invoicer/pkg/errors"
)

// MaxInvoiceSize bounds how much input ReadInvoice accepts.
const MaxInvoiceSize = 4 << 20

type invoiceFile struct {
	InvoiceID    string        `json:"invoice_id" yaml:"invoice_id" toml:"invoice_id"`
	Date         string        `json:"date" yaml:"date" toml:"date"`
	Title        string        `json:"title" yaml:"title" toml:"title"`
	Subtitle     string        `json:"subtitle" yaml:"subtitle" toml:"subtitle"`
	Project      string        `json:"project" yaml:"project" toml:"project"`
	Summary      string        `json:"summary" yaml:"summary" toml:"summary"`
	Rate         quantity      `json:"rate" yaml:"rate" toml:"rate"`
	Sections     []sectionFile `json:"sections" yaml:"sections" toml:"sections"`
	Deliverables []string      `json:"deliverables" yaml:"deliverables" toml:"deliverables"`
	Terms        []string      `json:"terms" yaml:"terms" toml:"terms"`
}

type sectionFile struct {
	Name  string     `json:"name" yaml:"name" toml:"name"`
	Items []itemFile `json:"items" yaml:"items" toml:"items"`
}

type itemFile struct {
	Task        string   `json:"task" yaml:"task" toml:"task"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Hours       quantity `json:"hours" yaml:"hours" toml:"hours"`
}

// ReadInvoice decodes an invoice in format f from r.
//
// The returned document is only structurally valid; call billing.Aggregate
// to check rates and hours. ReadInvoice does not close r.
func ReadInvoice(r io.Reader, f Format) (billing.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInvoiceSize+1))
	if err != nil {
		return billing.Document{}, fmt.Errorf("read invoice: %w", err)
	}
	if len(data) > MaxInvoiceSize {
		return billing.Document{}, errors.New(errors.ErrCodeInvalidInput, "invoice exceeds %d bytes", MaxInvoiceSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return billing.Document{}, errors.New(errors.ErrCodeInvalidInput, "invoice is empty")
	}

	var file invoiceFile
	switch f {
	case FormatYAML:
		err = decodeYAML(data, &file)
	case FormatTOML:
		err = decodeTOML(data, &file)
	case FormatJSON:
		err = decodeJSON(data, &file)
	default:
		return billing.Document{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported invoice format %q", f)
	}
	if err != nil {
		return billing.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s invoice", f)
	}
	return file.document(), nil
}

func decodeYAML(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func decodeTOML(data []byte, v any) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (f invoiceFile) document() billing.Document {
	doc := billing.Document{
		Rate: f.Rate.Decimal,
		Meta: billing.Metadata{
			InvoiceID: f.InvoiceID,
			Date:      f.Date,
			Title:     f.Title,
			Subtitle:  f.Subtitle,
			Project:   f.Project,
			Summary:   f.Summary,
		},
		Sections:     make([]billing.Section, len(f.Sections)),
		Deliverables: f.Deliverables,
		Terms:        f.Terms,
	}
	for i, s := range f.Sections {
		sec := billing.Section{Name: s.Name, Items: make([]billing.LineItem, len(s.Items))}
		for j, it := range s.Items {
			sec.Items[j] = billing.LineItem{Task: it.Task, Description: it.Description, Hours: it.Hours.Decimal}
		}
		doc.Sections[i] = sec
	}
	return doc
}

// ImportFile reads the invoice at path, choosing the format from its
// extension.
func ImportFile(path string) (billing.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return billing.Document{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return billing.Document{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return billing.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "invoice file %s", path)
		}
		return billing.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadInvoice(f, format)
}
