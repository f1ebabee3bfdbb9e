package engine

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/pdfsplit/internal/planner"
)

// EmptyPartsPolicy decides what happens to parts without body pages.
type EmptyPartsPolicy string

const (
	// EmptyPartsEmit writes parts without body pages (intro only).
	EmptyPartsEmit EmptyPartsPolicy = "emit"

	// EmptyPartsReject fails the request before any output is written.
	EmptyPartsReject EmptyPartsPolicy = "reject"
)

const (
	DefaultOutputDir      = "."
	DefaultOutputBasename = "output"
	DefaultExtension      = "pdf"
)

// SplitRequest represents a request to split a document into parts.
type SplitRequest struct {
	// FilePath is the source document
	FilePath string

	// Parts is the number of output parts (>= 1)
	Parts int

	// Intro is the optional page range prepended to every part
	Intro *planner.IntroRange

	// OutputDir is the directory parts are written to
	OutputDir string

	// OutputBasename is the file name prefix of every part
	OutputBasename string

	// Extension is the file extension of every part, without the dot
	Extension string

	// EmptyParts selects the policy for parts without body pages
	EmptyParts EmptyPartsPolicy

	// Verbose requests progress events
	Verbose bool

	// DryRun performs planning only without reading pages or writing files
	DryRun bool
}

// withDefaults returns a copy of the request with empty output fields filled in.
func (r SplitRequest) withDefaults() *SplitRequest {
	if r.OutputDir == "" {
		r.OutputDir = DefaultOutputDir
	}
	if r.OutputBasename == "" {
		r.OutputBasename = DefaultOutputBasename
	}
	if r.Extension == "" {
		r.Extension = DefaultExtension
	}
	if r.EmptyParts == "" {
		r.EmptyParts = EmptyPartsEmit
	}
	return &r
}

// OutputPath returns the location part index is persisted to.
func (r *SplitRequest) OutputPath(index int) string {
	name := fmt.Sprintf("%s_part%d.%s", r.OutputBasename, index, r.Extension)
	return filepath.Join(r.OutputDir, name)
}
