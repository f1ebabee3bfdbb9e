package engine

import (
	"time"

	"github.com/danieljhkim/pdfsplit/internal/planner"
)

// SplitResult represents the result of a split. Dry runs and real runs return
// the same shape; only Outputs differs.
type SplitResult struct {
	planner.SplitPlan `yaml:",inline"`

	// RunID identifies the run in logs
	RunID string `json:"run_id" yaml:"run_id"`

	// DryRun is true when no pages were copied
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Outputs lists persisted parts in part order (empty if DryRun)
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`

	// Artifacts describes each persisted part (empty if DryRun)
	Artifacts []Artifact `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`

	// Elapsed is the wall time spent executing the plan
	Elapsed time.Duration `json:"-" yaml:"-"`
}

// Artifact is a verified part on disk.
type Artifact struct {
	Part   int    `json:"part" yaml:"part"`
	Path   string `json:"path" yaml:"path"`
	Pages  int    `json:"pages" yaml:"pages"`
	Size   int64  `json:"size" yaml:"size"`
	SHA256 string `json:"sha256" yaml:"sha256"`
}

func newResult(plan *planner.SplitPlan, runID string, dryRun bool) *SplitResult {
	return &SplitResult{
		SplitPlan: *plan,
		RunID:     runID,
		DryRun:    dryRun,
		Outputs:   []string{},
		Artifacts: []Artifact{},
	}
}
