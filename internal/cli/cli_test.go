package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/invoicer/pkg/errors"
)

const invoiceYAML = `
invoice_id: INV-42
date: "2026-10-01"
title: Consulting Invoice
rate: 250
sections:
  - name: "1. Discovery"
    items:
      - task: Kickoff
        hours: 2
      - task: Audit
        hours: 3.5
  - name: "2. Build"
    items:
      - task: API
        description: REST endpoints
        hours: 10
`

// execute runs the root command with args in an isolated config
// environment and returns everything written to stdout and stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeInvoice(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write invoice: %v", err)
	}
	return path
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "invoices/oct.yaml", "invoices/oct"},
		{"out/oct.xlsx", "oct.yaml", "out/oct"},
		{"out/oct.sheet.json", "oct.yaml", "out/oct"},
		{"out/oct.summary.json", "oct.yaml", "out/oct"},
		{"out/oct", "oct.yaml", "out/oct"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		dir     string
		formats []string
		want    map[string]string
	}{
		{
			name:    "derived from input",
			formats: []string{"xlsx"},
			want:    map[string]string{"xlsx": "in/oct.xlsx"},
		},
		{
			name:    "explicit single output",
			output:  "final.bin",
			formats: []string{"xlsx"},
			want:    map[string]string{"xlsx": "final.bin"},
		},
		{
			name:    "base path for several formats",
			output:  "out/oct.xlsx",
			formats: []string{"xlsx", "json", "summary"},
			want: map[string]string{
				"xlsx":    "out/oct.xlsx",
				"json":    "out/oct.sheet.json",
				"summary": "out/oct.summary.json",
			},
		},
		{
			name:    "output dir",
			dir:     "dist",
			formats: []string{"xlsx", "summary"},
			want: map[string]string{
				"xlsx":    filepath.Join("dist", "oct.xlsx"),
				"summary": filepath.Join("dist", "oct.summary.json"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths("in/oct.yaml", tt.output, tt.dir, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths = %v, want %v", got, tt.want)
			}
			for format, path := range tt.want {
				if got[format] != path {
					t.Errorf("path[%s] = %q, want %q", format, got[format], path)
				}
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	input := writeInvoice(t, "oct.yaml", invoiceYAML)
	base := strings.TrimSuffix(input, ".yaml")

	out, err := execute(t, "render", input, "-f", "xlsx,summary", "--no-spinner")
	if err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Invoice rendered") {
		t.Errorf("output missing success line:\n%s", out)
	}
	if !strings.Contains(out, "2 sections") || !strings.Contains(out, "3 items") {
		t.Errorf("output missing stats:\n%s", out)
	}

	f, err := excelize.OpenFile(base + ".xlsx")
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	got, err := f.GetCellValue(f.GetSheetName(0), "B2")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if got != "Consulting Invoice" {
		t.Errorf("B2 = %q, want title", got)
	}

	summary, err := os.ReadFile(base + ".summary.json")
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if !bytes.Contains(summary, []byte(`"invoice_id": "INV-42"`)) && !bytes.Contains(summary, []byte(`"invoice_id":"INV-42"`)) {
		t.Errorf("summary missing invoice id:\n%s", summary)
	}
}

func TestRenderCommandExplicitOutput(t *testing.T) {
	input := writeInvoice(t, "oct.yaml", invoiceYAML)
	output := filepath.Join(t.TempDir(), "nested", "final.xlsx")

	if out, err := execute(t, "render", input, "-o", output, "--palette", "paper", "--no-spinner"); err != nil {
		t.Fatalf("render: %v\n%s", err, out)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected %s: %v", output, err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	badRate := strings.Replace(invoiceYAML, "rate: 250", "rate: 0", 1)

	tests := []struct {
		name    string
		content string
		args    []string
		want    errors.Code
	}{
		{"invalid format", invoiceYAML, []string{"-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"invalid rate", badRate, nil, errors.ErrCodeInvalidRate},
		{"unknown palette", invoiceYAML, []string{"--palette", "neon"}, errors.ErrCodeInvalidPalette},
		{"invalid orientation", invoiceYAML, []string{"--orientation", "diagonal"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInvoice(t, "oct.yaml", tt.content)
			args := append([]string{"render", input, "--no-spinner"}, tt.args...)
			_, err := execute(t, args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("render error = %v, want code %s", err, tt.want)
			}
			if _, statErr := os.Stat(strings.TrimSuffix(input, ".yaml") + ".xlsx"); statErr == nil {
				t.Error("no output should be written on failure")
			}
		})
	}
}

func TestRenderCommandMissingInput(t *testing.T) {
	_, err := execute(t, "render", filepath.Join(t.TempDir(), "missing.yaml"), "--no-spinner")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSummaryCommand(t *testing.T) {
	input := writeInvoice(t, "oct.toml", `
title = "Consulting Invoice"
rate = 250

[[sections]]
name = "1. Discovery"
[[sections.items]]
task = "Kickoff"
hours = 2

[[sections]]
name = "2. Build"
[[sections.items]]
task = "API"
hours = 6
`)

	out, err := execute(t, "summary", input)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	for _, want := range []string{
		"Consulting Invoice",
		"$2,000.00",
		"8.0 hrs",
		"1. Discovery",
		"2. Build",
		"25%",
		"75%",
		strings.Repeat("█", 30) + strings.Repeat("░", 10),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestPaletteCommands(t *testing.T) {
	out, err := execute(t, "palette", "list")
	if err != nil {
		t.Fatalf("palette list: %v", err)
	}
	for _, name := range []string{"midnight", "paper", "(default)"} {
		if !strings.Contains(out, name) {
			t.Errorf("palette list missing %q:\n%s", name, out)
		}
	}

	out, err = execute(t, "palette", "show", "paper")
	if err != nil {
		t.Fatalf("palette show: %v", err)
	}
	for _, role := range []string{"banner-title", "item-odd", "total-amount"} {
		if !strings.Contains(out, role) {
			t.Errorf("palette show missing role %q:\n%s", role, out)
		}
	}

	if _, err := execute(t, "palette", "show", "neon"); !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Errorf("palette show neon error = %v, want INVALID_PALETTE", err)
	}
}

func TestFlagCompletion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
		not  []string
	}{
		{"palette flag", []string{"render", "oct.yaml", "--palette", ""}, []string{"midnight", "paper"}, nil},
		{"palette show arg", []string{"palette", "show", ""}, []string{"midnight", "paper"}, nil},
		{"first format", []string{"render", "oct.yaml", "--format", "s"}, []string{"summary"}, []string{"xlsx"}},
		{"next format", []string{"render", "oct.yaml", "--format", "xlsx,"}, []string{"xlsx,json", "xlsx,summary"}, []string{"xlsx,xlsx"}},
		{"orientation", []string{"render", "oct.yaml", "--orientation", ""}, []string{"landscape", "portrait"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{cobra.ShellCompRequestCmd}, tt.args...)...)
			if err != nil {
				t.Fatalf("complete: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want+"\n") {
					t.Errorf("completions missing %q:\n%s", want, out)
				}
			}
			for _, not := range tt.not {
				if strings.Contains(out, not+"\n") {
					t.Errorf("completions should not offer %q:\n%s", not, out)
				}
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the program name")
	}
}

func TestSummaryCommandExport(t *testing.T) {
	input := writeInvoice(t, "oct.yaml", invoiceYAML)
	export := filepath.Join(t.TempDir(), "totals.json")

	out, err := execute(t, "summary", input, "--export", export)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, export) {
		t.Errorf("output should list the exported file:\n%s", out)
	}
	data, err := os.ReadFile(export)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Contains(data, []byte(`"total_hours": "15.5"`)) {
		t.Errorf("export missing total hours:\n%s", data)
	}
}
