package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danieljhkim/pdfsplit/internal/clock"
	"github.com/danieljhkim/pdfsplit/internal/planner"
)

// Algorithm steps:
// 1. Validate the request (no I/O)
// 2. Check the source exists and open it
// 3. Build the partition plan
// 4. Apply the empty-part policy
// 5. Return the plan (if DryRun)
// 6. Create the output directory and execute the plan
func (e *Engine) Split(ctx context.Context, req *SplitRequest, emitter Emitter) (*SplitResult, error) {
	req, err := e.validateRequest(req)
	if err != nil {
		return nil, err
	}

	runID := e.newID()
	logger := e.logger.With("run_id", runID)

	exists, err := e.fs.Exists(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check source %s: %w", ErrIO, req.FilePath, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: file not found at %s", ErrNotFound, req.FilePath)
	}

	src, err := e.opener.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", req.FilePath, classify(err, ErrDocument))
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.WarnContext(ctx, "failed to close source", "file", req.FilePath, "error", cerr)
		}
	}()

	plan, err := planner.Plan(src.PageCount(), req.Parts, req.Intro)
	if err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "built split plan",
		"file", req.FilePath,
		"total_pages", plan.TotalPages,
		"intro_pages", plan.IntroPages,
		"body_pages", plan.BodyPages,
		"parts", plan.PartCount,
	)

	if err := checkPlan(ctx, logger, req, plan); err != nil {
		return nil, err
	}

	if !req.DryRun {
		if err := e.fs.MkdirAll(req.OutputDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create output directory %s: %w", ErrIO, req.OutputDir, err)
		}
	}

	return e.execute(ctx, logger, runID, req, plan, src, e.sink, emitter)
}

// Execute materializes plan from src through sink. A DryRun request returns
// the plan without touching the sink. Execution stops at the first error;
// parts persisted before it are left in place.
func (e *Engine) Execute(ctx context.Context, req *SplitRequest, plan *planner.SplitPlan, src DocumentSource, sink DocumentSink, emitter Emitter) (*SplitResult, error) {
	req, err := e.validateRequest(req)
	if err != nil {
		return nil, err
	}
	runID := e.newID()
	logger := e.logger.With("run_id", runID)
	if err := checkPlan(ctx, logger, req, plan); err != nil {
		return nil, err
	}
	return e.execute(ctx, logger, runID, req, plan, src, sink, emitter)
}

// checkPlan applies the empty-part policy and warns about pages no part
// will contain.
func checkPlan(ctx context.Context, logger *slog.Logger, req *SplitRequest, plan *planner.SplitPlan) error {
	if empty := plan.EmptyParts(); len(empty) > 0 {
		if req.EmptyParts == EmptyPartsReject {
			return fmt.Errorf("%w: %d parts requested but only %d body pages, parts %v would be empty",
				ErrInvalidArgument, plan.PartCount, plan.BodyPages, empty)
		}
		logger.WarnContext(ctx, "plan contains parts without body pages", "parts", empty)
	}
	if unused := plan.UnusedPages(); unused > 0 {
		logger.WarnContext(ctx, "pages before the intro are not included in any part",
			"pages", fmt.Sprintf("1-%d", unused))
	}
	return nil
}

func (e *Engine) execute(ctx context.Context, logger *slog.Logger, runID string, req *SplitRequest, plan *planner.SplitPlan, src DocumentSource, sink DocumentSink, emitter Emitter) (*SplitResult, error) {
	if req.DryRun {
		return newResult(plan, runID, true), nil
	}
	if emitter == nil {
		emitter = NopEmitter
	}

	if retainer, ok := src.(PageRetainer); ok && plan.Intro != nil && plan.PartCount > 1 {
		indexes := make([]int, 0, plan.IntroPages)
		for p := plan.Intro.Start; p <= plan.Intro.End; p++ {
			indexes = append(indexes, p-1)
		}
		retainer.Retain(indexes)
	}

	start := e.clock.Now()
	result := newResult(plan, runID, false)
	for _, part := range plan.Parts {
		artifact, err := e.executePart(ctx, logger, req, part, src, sink, emitter)
		if err != nil {
			return nil, fmt.Errorf("part %d: %w", part.Index, err)
		}
		result.Outputs = append(result.Outputs, artifact.Path)
		result.Artifacts = append(result.Artifacts, *artifact)
	}

	if err := emitter.Emit(CompleteEvent(len(result.Outputs))); err != nil {
		return nil, fmt.Errorf("%w: failed to emit event: %w", ErrIO, err)
	}
	result.Elapsed = clock.Since(e.clock, start)
	logger.InfoContext(ctx, "split complete",
		"file", req.FilePath,
		"parts", len(result.Outputs),
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// executePart builds, persists and verifies a single part.
func (e *Engine) executePart(ctx context.Context, logger *slog.Logger, req *SplitRequest, part planner.PartPlan, src DocumentSource, sink DocumentSink, emitter Emitter) (artifact *Artifact, err error) {
	out, err := sink.Create()
	if err != nil {
		return nil, fmt.Errorf("failed to create output document: %w", classify(err, ErrDocument))
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to release output document: %w", classify(cerr, ErrDocument))
		}
	}()

	pages := sourcePages(part)
	total := len(pages)
	for i, page := range pages {
		if err := out.AppendCopiedPage(src, page-1); err != nil {
			return nil, fmt.Errorf("failed to copy page %d: %w", page, classify(err, ErrDocument))
		}
		if got := out.PageCount(); got != i+1 {
			return nil, fmt.Errorf("%w: expected %d pages after copying page %d, output has %d",
				ErrVerification, i+1, page, got)
		}
		if err := emitter.Emit(ProgressEvent(part.Index, i+1, total)); err != nil {
			return nil, fmt.Errorf("%w: failed to emit event: %w", ErrIO, err)
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: output document is empty", ErrVerification)
	}

	path := req.OutputPath(part.Index)
	if err := out.Persist(path); err != nil {
		return nil, fmt.Errorf("failed to persist %s: %w", path, classify(err, ErrIO))
	}
	artifact, err = e.verifyArtifact(part.Index, path, total, sink)
	if err != nil {
		return nil, err
	}

	if err := emitter.Emit(PartCompleteEvent(part.Index, path)); err != nil {
		return nil, fmt.Errorf("%w: failed to emit event: %w", ErrIO, err)
	}
	logger.DebugContext(ctx, "part complete",
		"part", part.Index,
		"path", path,
		"pages", total,
		"sha256", artifact.SHA256,
	)

	return artifact, nil
}

// verifyArtifact checks the persisted part exists, is non-empty and, when the
// sink can read it back, holds the expected number of pages. It records the
// part's digest.
func (e *Engine) verifyArtifact(index int, path string, want int, sink DocumentSink) (*Artifact, error) {
	info, err := e.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: persisted part %s is missing: %w", ErrVerification, path, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%w: persisted part %s is empty", ErrVerification, path)
	}

	if inspector, ok := sink.(ArtifactInspector); ok {
		got, err := inspector.PageCountFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read back %s: %w", ErrVerification, path, err)
		}
		if got != want {
			return nil, fmt.Errorf("%w: persisted part %s has %d pages, want %d", ErrVerification, path, got, want)
		}
	}

	digest, err := e.hasher.HashFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to hash %s: %w", ErrVerification, path, err)
	}

	return &Artifact{
		Part:   index,
		Path:   path,
		Pages:  want,
		Size:   info.Size(),
		SHA256: digest,
	}, nil
}

// sourcePages lists the 1-based source pages of a part in output order.
func sourcePages(part planner.PartPlan) []int {
	pages := make([]int, 0, part.TotalPages())
	if part.Intro != nil {
		for p := part.Intro.Start; p <= part.Intro.End; p++ {
			pages = append(pages, p)
		}
	}
	for p := part.StartPage; p <= part.EndPage; p++ {
		pages = append(pages, p)
	}
	return pages
}

// validateRequest checks everything that can be checked without I/O and
// returns a copy with defaults applied.
func (e *Engine) validateRequest(req *SplitRequest) (*SplitRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrInvalidArgument)
	}
	if req.FilePath == "" {
		return nil, fmt.Errorf("%w: file path is required", ErrInvalidArgument)
	}
	if req.Parts < 1 {
		return nil, fmt.Errorf("%w: parts must be a positive integer, got %d", ErrInvalidArgument, req.Parts)
	}
	if err := planner.ValidateIntroShape(req.Intro); err != nil {
		return nil, err
	}

	r := req.withDefaults()
	switch r.EmptyParts {
	case EmptyPartsEmit, EmptyPartsReject:
	default:
		return nil, fmt.Errorf("%w: unknown empty parts policy %q", ErrInvalidArgument, r.EmptyParts)
	}
	if err := e.fs.ValidateIdentifier(r.OutputBasename); err != nil {
		return nil, fmt.Errorf("%w: output basename: %w", ErrInvalidArgument, err)
	}
	if err := e.fs.ValidateIdentifier(r.Extension); err != nil {
		return nil, fmt.Errorf("%w: extension: %w", ErrInvalidArgument, err)
	}
	return r, nil
}
