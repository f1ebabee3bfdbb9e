package cli

import (
	"log/slog"

	"github.com/danieljhkim/pdfsplit/internal/clock"
	"github.com/danieljhkim/pdfsplit/internal/engine"
	"github.com/danieljhkim/pdfsplit/internal/fsops"
	"github.com/danieljhkim/pdfsplit/internal/hash"
	"github.com/danieljhkim/pdfsplit/internal/pdfdoc"
)

// newEngine creates a new engine bound to the real filesystem and the pdfcpu
// document engine. The same binding opens sources and creates outputs.
func newEngine(logger *slog.Logger) *engine.Engine {
	fs := fsops.NewRealFS()
	docs := pdfdoc.New(fs)
	hasher := hash.NewSHA256Hasher()
	clk := &clock.RealClock{}
	return engine.New(fs, docs, docs, hasher, clk, logger)
}
