package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/danieljhkim/pdfsplit/internal/clock"
	"github.com/danieljhkim/pdfsplit/internal/hash"
)

// --- Filesystem mock ---

type memFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newMemFS() *memFS {
	return &memFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (fs *memFS) Stat(path string) (os.FileInfo, error) {
	if data, ok := fs.files[path]; ok {
		return &mockFileInfo{name: filepath.Base(path), size: int64(len(data))}, nil
	}
	if fs.dirs[path] {
		return &mockFileInfo{name: filepath.Base(path), isDir: true}, nil
	}
	return nil, os.ErrNotExist
}

func (fs *memFS) MkdirAll(path string, perm os.FileMode) error {
	fs.dirs[path] = true
	return nil
}

func (fs *memFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

func (fs *memFS) ReadFile(path string) ([]byte, error) {
	if data, ok := fs.files[path]; ok {
		return data, nil
	}
	return nil, os.ErrNotExist
}

func (fs *memFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}

func (fs *memFS) ValidateIdentifier(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid identifier %q", id)
	}
	return nil
}

// outputs returns the persisted paths other than the source, sorted.
func (fs *memFS) outputs(source string) []string {
	var paths []string
	for p := range fs.files {
		if p != source {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

type mockFileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return 0644 }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// --- Document mocks ---

type memDocument struct {
	pages  int
	closed bool
}

func (d *memDocument) PageCount() int { return d.pages }

func (d *memDocument) Page(index int) (Page, error) {
	if index < 0 || index >= d.pages {
		return Page{}, fmt.Errorf("%w: page index %d", ErrNotFound, index)
	}
	return Page{Index: index, Data: []byte(fmt.Sprintf("p%d", index+1))}, nil
}

func (d *memDocument) Close() error {
	d.closed = true
	return nil
}

type memOpener struct {
	doc    *memDocument
	err    error
	opened int
}

func (o *memOpener) Open(path string) (DocumentSource, error) {
	o.opened++
	if o.err != nil {
		return nil, o.err
	}
	return o.doc, nil
}

// memSink builds output documents in memory and persists them through memFS.
// Failure knobs are keyed by the 1-based order in which outputs are created.
type memSink struct {
	fs      *memFS
	created int
	closed  int

	dropCopyIn    int // output that silently drops its second copy
	failCopyIn    int
	emptyPersist  int
	failPersistIn int
}

func (s *memSink) Create() (OutputDocument, error) {
	s.created++
	return &memOutput{sink: s, seq: s.created}, nil
}

type memOutput struct {
	sink  *memSink
	seq   int
	pages []string
}

func (o *memOutput) AppendCopiedPage(src DocumentSource, srcIndex int) error {
	if o.sink.failCopyIn == o.seq {
		return errors.New("engine refused page")
	}
	page, err := src.Page(srcIndex)
	if err != nil {
		return err
	}
	if o.sink.dropCopyIn == o.seq && len(o.pages) == 1 {
		return nil
	}
	o.pages = append(o.pages, string(page.Data))
	return nil
}

func (o *memOutput) PageCount() int { return len(o.pages) }

func (o *memOutput) Persist(path string) error {
	if o.sink.failPersistIn == o.seq {
		return errors.New("disk full")
	}
	data := []byte(strings.Join(o.pages, ","))
	if o.sink.emptyPersist == o.seq {
		data = nil
	}
	return o.sink.fs.AtomicWrite(path, data, 0644)
}

func (o *memOutput) Close() error {
	o.sink.closed++
	return nil
}

// inspectingSink reports a fixed page count for every persisted artifact.
type inspectingSink struct {
	*memSink
	pages int
}

func (s *inspectingSink) PageCountFile(path string) (int, error) {
	return s.pages, nil
}

// --- Emitter mock ---

type eventRecorder struct {
	events []Event
	failOn EventKind
}

func (r *eventRecorder) Emit(ev Event) error {
	if r.failOn != "" && ev.Kind == r.failOn {
		return errors.New("broken pipe")
	}
	r.events = append(r.events, ev)
	return nil
}

func (r *eventRecorder) ofKind(kind EventKind) []Event {
	var out []Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// --- Engine helper ---

const sourcePath = "/in/book.pdf"

func newTestEngine(pages int) (*Engine, *memFS, *memOpener, *memSink) {
	fs := newMemFS()
	fs.files[sourcePath] = []byte("%PDF-1.7")
	opener := &memOpener{doc: &memDocument{pages: pages}}
	sink := &memSink{fs: fs}
	return newTestEngineWith(fs, opener, sink), fs, opener, sink
}

// newTestEngineWith builds an engine over fs with fake hashing and time.
func newTestEngineWith(fs *memFS, opener SourceOpener, sink DocumentSink) *Engine {
	clk := clock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	eng := New(fs, opener, sink, hash.NewFakeHasher(), clk, slog.New(slog.NewTextHandler(io.Discard, nil)))
	eng.newID = func() string { return "run-1" }
	return eng
}
