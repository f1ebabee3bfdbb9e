// Package pdfdoc binds the split engine to pdfcpu.
//
// A source PDF is read and validated once. Pages are copied out of it as
// single-page PDFs; an output document collects those pages and merges them
// into one file when persisted.
package pdfdoc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/fsops"
)

func init() {
	// Keep pdfcpu from creating its config directory under the user's home.
	api.DisableConfigDir()
}

// Engine opens PDF sources and creates PDF outputs.
// It implements engine.SourceOpener, engine.DocumentSink and engine.ArtifactInspector.
type Engine struct {
	fs fsops.FS
}

// New creates a new pdfcpu-backed Engine.
func New(fs fsops.FS) *Engine {
	return &Engine{fs: fs}
}

// newConf returns a fresh configuration. pdfcpu records the running command
// on the configuration, so one is never shared between calls.
func newConf() *model.Configuration {
	return model.NewDefaultConfiguration()
}

// Open reads and validates the PDF at path.
func (e *Engine) Open(path string) (engine.DocumentSource, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", engine.ErrIO, path, err)
	}

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newConf())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", engine.ErrDocument, path, err)
	}
	if ctx.PageCount == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", engine.ErrDocument, path)
	}

	return &Document{
		ctx:      ctx,
		retained: make(map[int]bool),
		cache:    make(map[int][]byte),
	}, nil
}

// Create returns a new empty output document.
func (e *Engine) Create() (engine.OutputDocument, error) {
	return &Output{fs: e.fs}, nil
}

// PageCountFile reads back a persisted PDF and returns its page count.
func (e *Engine) PageCountFile(path string) (int, error) {
	data, err := e.fs.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read %s: %w", engine.ErrIO, path, err)
	}
	n, err := api.PageCount(bytes.NewReader(data), newConf())
	if err != nil {
		return 0, fmt.Errorf("%w: failed to count pages of %s: %w", engine.ErrDocument, path, err)
	}
	return n, nil
}

// Document is a parsed source PDF.
type Document struct {
	ctx      *model.Context
	retained map[int]bool
	cache    map[int][]byte
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d.ctx == nil {
		return 0
	}
	return d.ctx.PageCount
}

// Retain keeps the given pages in memory once extracted.
func (d *Document) Retain(indexes []int) {
	for _, i := range indexes {
		d.retained[i] = true
	}
}

// Page extracts the page at the 0-based index as a single-page PDF.
func (d *Document) Page(index int) (engine.Page, error) {
	if index < 0 || index >= d.PageCount() {
		return engine.Page{}, fmt.Errorf("%w: page %d of %d", engine.ErrNotFound, index+1, d.PageCount())
	}
	if data, ok := d.cache[index]; ok {
		return engine.Page{Index: index, Data: data}, nil
	}

	r, err := api.ExtractPage(d.ctx, index+1)
	if err != nil {
		return engine.Page{}, fmt.Errorf("%w: failed to extract page %d: %w", engine.ErrDocument, index+1, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Page{}, fmt.Errorf("%w: failed to read page %d: %w", engine.ErrDocument, index+1, err)
	}

	if d.retained[index] {
		d.cache[index] = data
	}
	return engine.Page{Index: index, Data: data}, nil
}

// Close drops the parsed document and any retained pages.
func (d *Document) Close() error {
	d.ctx = nil
	d.cache = nil
	return nil
}

// Output is a PDF under construction.
type Output struct {
	fs    fsops.FS
	pages [][]byte
	count int
}

// AppendCopiedPage copies a page from src to the end of the output. The page
// count grows by however many pages the engine actually produced.
func (o *Output) AppendCopiedPage(src engine.DocumentSource, srcIndex int) error {
	page, err := src.Page(srcIndex)
	if err != nil {
		return err
	}

	n, err := api.PageCount(bytes.NewReader(page.Data), newConf())
	if err != nil {
		return fmt.Errorf("%w: copied page %d is unreadable: %w", engine.ErrDocument, srcIndex+1, err)
	}

	o.pages = append(o.pages, page.Data)
	o.count += n
	return nil
}

// PageCount returns the number of pages copied so far.
func (o *Output) PageCount() int {
	return o.count
}

// Persist merges the copied pages and writes them to path atomically.
func (o *Output) Persist(path string) error {
	if len(o.pages) == 0 {
		return fmt.Errorf("%w: no pages to write to %s", engine.ErrDocument, path)
	}

	rsc := make([]io.ReadSeeker, 0, len(o.pages))
	for _, p := range o.pages {
		rsc = append(rsc, bytes.NewReader(p))
	}

	var buf bytes.Buffer
	if err := api.MergeRaw(rsc, &buf, false, newConf()); err != nil {
		return fmt.Errorf("%w: failed to assemble %s: %w", engine.ErrDocument, path, err)
	}

	if err := o.fs.AtomicWrite(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", engine.ErrIO, path, err)
	}
	return nil
}

// Close releases the copied pages.
func (o *Output) Close() error {
	o.pages = nil
	o.count = 0
	return nil
}
