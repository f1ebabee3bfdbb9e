package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/danieljhkim/pdfsplit/internal/config"
	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/planner"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"invalid argument", fmt.Errorf("%w: parts", engine.ErrInvalidArgument), ExitInvalidArgument},
		{"planner invalid argument", fmt.Errorf("wrapped: %w", planner.ErrInvalidArgument), ExitInvalidArgument},
		{"invalid config", fmt.Errorf("%w: log-level", config.ErrInvalidConfig), ExitInvalidArgument},
		{"not found", fmt.Errorf("%w: book.pdf", engine.ErrNotFound), ExitIO},
		{"io", fmt.Errorf("part 2: %w", engine.ErrIO), ExitIO},
		{"document", engine.ErrDocument, ExitDocument},
		{"verification", fmt.Errorf("part 1: %w", engine.ErrVerification), ExitDocument},
		{"unclassified", errors.New("boom"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	got := FormatError(os.ErrNotExist)
	if !strings.Contains(got, "Error:") || !strings.Contains(got, os.ErrNotExist.Error()) {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]int{"total_pages": 3}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputTo(&buf, OutputFormatJSON, data); err != nil {
			t.Fatalf("outputTo() error = %v", err)
		}
		if buf.String() != "{\n  \"total_pages\": 3\n}\n" {
			t.Errorf("unexpected JSON: %q", buf.String())
		}
		var v map[string]int
		if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
			t.Errorf("outputTo() produced invalid JSON: %v", err)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		if err := outputTo(&buf, OutputFormatYAML, data); err != nil {
			t.Fatalf("outputTo() error = %v", err)
		}
		if buf.String() != "total_pages: 3\n" {
			t.Errorf("unexpected YAML: %q", buf.String())
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := outputTo(&bytes.Buffer{}, OutputFormat("xml"), data); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"PART", "OUTPUT"}, [][]string{
		{"1", "out/doc_part1.pdf"},
		{"10", "x"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, separator and 2 rows, got %q", buf.String())
	}
	if !strings.Contains(lines[1], "----  -----------------") {
		t.Errorf("separator not sized to widest cell: %q", lines[1])
	}

	buf.Reset()
	printTable(&buf, []string{"PART"}, nil)
	if buf.Len() != 0 {
		t.Error("empty table should print nothing")
	}
}

func TestFormatCount(t *testing.T) {
	if got := formatCount(1, "part", "parts"); got != "1 part" {
		t.Errorf("formatCount(1) = %q", got)
	}
	if got := formatCount(3, "part", "parts"); got != "3 parts" {
		t.Errorf("formatCount(3) = %q", got)
	}
}
