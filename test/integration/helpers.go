// Package integration runs full splits against generated PDFs on disk.
package integration

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/danieljhkim/pdfsplit/internal/clock"
	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/fsops"
	"github.com/danieljhkim/pdfsplit/internal/hash"
	"github.com/danieljhkim/pdfsplit/internal/pdfdoc"
	"github.com/danieljhkim/pdfsplit/internal/testutil"
)

// setupTestEngine creates an engine bound to the real filesystem and pdfcpu,
// plus a source PDF with the given page count in a temp directory.
func setupTestEngine(t *testing.T, pages int) (*engine.Engine, string, string) {
	t.Helper()

	dir := t.TempDir()
	source := testutil.WritePDF(t, dir, "source.pdf", pages)

	fs := fsops.NewRealFS()
	docs := pdfdoc.New(fs)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return engine.New(fs, docs, docs, hash.NewSHA256Hasher(), &clock.RealClock{}, logger), source, filepath.Join(dir, "out")
}

// sourcePagesOf returns the 1-based source page numbers found in a persisted
// part, recovered from the page widths the test PDFs are generated with.
func sourcePagesOf(t *testing.T, path string) []int {
	t.Helper()

	dims, err := api.PageDimsFile(path)
	if err != nil {
		t.Fatalf("PageDimsFile(%s) error = %v", path, err)
	}
	pages := make([]int, 0, len(dims))
	for _, d := range dims {
		pages = append(pages, int(d.Width)-612)
	}
	return pages
}

// pageRange returns [from..to], empty when to < from.
func pageRange(from, to int) []int {
	var pages []int
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}

func equalPages(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
