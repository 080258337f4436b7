package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/matzehuels/invoicer/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupt", fmt.Errorf("render: %w", context.Canceled), exitInterrupt},
		{"invalid rate", errors.New(errors.ErrCodeInvalidRate, "rate must be positive"), exitBadInput},
		{"empty document", errors.New(errors.ErrCodeEmptyDocument, "no sections"), exitBadInput},
		{"sink failure", errors.New(errors.ErrCodeSinkWrite, "disk full"), exitFailure},
		{"plain error", stderrors.New("boom"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"interrupt", context.Canceled, ""},
		{"coded", errors.New(errors.ErrCodeInvalidHours, "section 1 item 2: hours must be positive"), "Error [INVALID_HOURS]: section 1 item 2: hours must be positive\n"},
		{"plain", stderrors.New("boom"), "Error: boom\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			reportError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("reportError() wrote %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := run(context.Background(), []string{"invoice-me"}); err == nil {
		t.Error("run(unknown command) should fail")
	}
}

func TestRunPaletteList(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := run(context.Background(), []string{"-v", "palette", "list"}); err != nil {
		t.Errorf("run(palette list) error: %v", err)
	}
}
