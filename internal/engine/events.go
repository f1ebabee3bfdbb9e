package engine

import (
	"encoding/json"
	"io"
)

// EventKind identifies the lifecycle stage an Event reports.
type EventKind string

const (
	EventProgress     EventKind = "progress"
	EventPartComplete EventKind = "partComplete"
	EventComplete     EventKind = "complete"
)

// Event is a progress record emitted while a split runs. Events are delivered
// in emission order and are never persisted.
type Event struct {
	Kind EventKind `json:"event"`

	// Part is the 1-based part index (progress, partComplete)
	Part int `json:"part,omitempty"`

	// Page is the number of pages copied into the part so far (progress)
	Page int `json:"page,omitempty"`

	// Total is the number of pages the part will hold (progress)
	Total int `json:"total,omitempty"`

	// OutputPath is the persisted artifact location (partComplete)
	OutputPath string `json:"outputPath,omitempty"`

	// OutputCount is the number of parts written (complete)
	OutputCount int `json:"outputCount,omitempty"`
}

// ProgressEvent reports that page of total pages have been copied into part.
func ProgressEvent(part, page, total int) Event {
	return Event{Kind: EventProgress, Part: part, Page: page, Total: total}
}

// PartCompleteEvent reports that part was persisted to path.
func PartCompleteEvent(part int, path string) Event {
	return Event{Kind: EventPartComplete, Part: part, OutputPath: path}
}

// CompleteEvent reports that the run finished after writing count parts.
func CompleteEvent(count int) Event {
	return Event{Kind: EventComplete, OutputCount: count}
}

// Emitter receives events.
type Emitter interface {
	Emit(ev Event) error
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(ev Event) error

// Emit calls f(ev).
func (f EmitterFunc) Emit(ev Event) error {
	return f(ev)
}

// NopEmitter discards every event.
var NopEmitter Emitter = EmitterFunc(func(Event) error { return nil })

// JSONLinesEmitter writes each event as one JSON object per line.
type JSONLinesEmitter struct {
	enc *json.Encoder
}

// NewJSONLinesEmitter creates an emitter writing to w.
func NewJSONLinesEmitter(w io.Writer) *JSONLinesEmitter {
	return &JSONLinesEmitter{enc: json.NewEncoder(w)}
}

// Emit writes ev followed by a newline.
func (e *JSONLinesEmitter) Emit(ev Event) error {
	return e.enc.Encode(ev)
}
