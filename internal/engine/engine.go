// Package engine provides the core business logic for pdfsplit.
//
// The engine package acts as the orchestration layer between the CLI and the
// document engine. It validates split requests, asks the planner for a
// partition plan and materializes each part through a DocumentSink, verifying
// every page copy and every persisted artifact.
//
// Key components:
//   - Engine: Main orchestrator that coordinates a split run
//   - DocumentSource/DocumentSink: Capabilities of the bound document engine
//   - Event/Emitter: Progress reporting in emission order
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/danieljhkim/pdfsplit/internal/clock"
	"github.com/danieljhkim/pdfsplit/internal/fsops"
	"github.com/danieljhkim/pdfsplit/internal/hash"
)

// Engine orchestrates split runs.
// It is the main API surface called by the CLI.
type Engine struct {
	fs     fsops.FS
	opener SourceOpener
	sink   DocumentSink
	hasher hash.Hasher
	clock  clock.Clock
	logger *slog.Logger
	newID  func() string
}

// New creates a new Engine with the given dependencies.
func New(fs fsops.FS, opener SourceOpener, sink DocumentSink, hasher hash.Hasher, clk clock.Clock, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if hasher == nil {
		hasher = hash.NewSHA256Hasher()
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Engine{
		fs:     fs,
		opener: opener,
		sink:   sink,
		hasher: hasher,
		clock:  clk,
		logger: logger,
		newID:  uuid.NewString,
	}
}
