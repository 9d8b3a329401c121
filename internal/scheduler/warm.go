package scheduler

import (
	"context"
)

// Warmer recomputes cached years.
type Warmer interface {
	Warm(ctx context.Context, years ...int) error
	CurrentYears() []int
}

// WarmJob keeps the current and next Jewish year in the cache so the first
// request after a restart or a new year does not compute it.
type WarmJob struct {
	warmer Warmer
}

// NewWarmJob creates a cache warm-up job
func NewWarmJob(w Warmer) *WarmJob {
	return &WarmJob{warmer: w}
}

// Name returns the job name
func (j *WarmJob) Name() string {
	return "warm_cache"
}

// Run warms the years the warmer considers current.
func (j *WarmJob) Run(ctx context.Context) error {
	return j.warmer.Warm(ctx, j.warmer.CurrentYears()...)
}
