package engine

// Page is a single page copied out of a source document. Data is opaque to the
// engine and only meaningful to the DocumentSink paired with the source.
type Page struct {
	// Index is the 0-based position in the source document
	Index int

	// Data is the engine-specific page payload
	Data []byte
}

// DocumentSource is a read-only paginated document.
// Implementations are shared by every part of a run and must not be mutated.
type DocumentSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// Page returns the page at the 0-based index. Fails with ErrNotFound
	// when the index is out of range.
	Page(index int) (Page, error)

	// Close releases engine resources held by the source.
	Close() error
}

// SourceOpener opens source documents from storage.
type SourceOpener interface {
	Open(path string) (DocumentSource, error)
}

// DocumentSink creates output documents.
type DocumentSink interface {
	// Create returns a new empty output document.
	Create() (OutputDocument, error)
}

// OutputDocument is an output document under construction. It is owned by the
// engine until Close and must be closed on every path.
type OutputDocument interface {
	// AppendCopiedPage copies the page at srcIndex (0-based) to the end of the document.
	AppendCopiedPage(src DocumentSource, srcIndex int) error

	// PageCount returns the number of pages currently in the document.
	PageCount() int

	// Persist writes the document to path.
	Persist(path string) error

	// Close releases engine resources held by the document.
	Close() error
}

// ArtifactInspector is implemented by sinks that can read back a persisted
// artifact. The engine uses it to confirm the persisted page count.
type ArtifactInspector interface {
	PageCountFile(path string) (int, error)
}

// PageRetainer is implemented by sources that can keep extracted pages in
// memory. The engine asks it to retain the intro pages, which every part copies.
type PageRetainer interface {
	Retain(indexes []int)
}
