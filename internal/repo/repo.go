// Package repo wires git extraction to the scan pipeline: it turns a list
// of commit SHAs into lazy commits and runs the batch/dispatch/correlate
// loop over them.
package repo

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/leakscout/leakscout/internal/git"
	"github.com/leakscout/leakscout/internal/scan"
)

// DefaultBatchMaxSize is the default content-size ceiling (in touched file
// paths) per remote call.
const DefaultBatchMaxSize = 20

// Options configures a repository scan.
type Options struct {
	Root         string
	BatchMaxSize int // 0 = DefaultBatchMaxSize
	Filters      git.Filters
	Observer     scan.Observer
	Logger       *zap.Logger
}

func (o Options) batchMaxSize() int {
	if o.BatchMaxSize == 0 {
		return DefaultBatchMaxSize
	}
	return o.BatchMaxSize
}

// ScanCommits runs the pipeline over already-built commits.
func ScanCommits(ctx context.Context, detector scan.Detector, commits []*scan.Commit, opts Options) (*scan.Collection, error) {
	p := scan.NewPipeline(detector, scan.PipelineConfig{
		BatchMaxSize: opts.batchMaxSize(),
		Observer:     opts.Observer,
		Logger:       opts.Logger,
	})
	return p.Run(ctx, commits)
}

// ScanCommitSHAs opens the repository at opts.Root, builds lazy commits for
// the given SHAs in order, and scans them.
func ScanCommitSHAs(ctx context.Context, detector scan.Detector, shas []string, opts Options) (*scan.Collection, error) {
	r, err := git.Open(opts.Root, opts.Filters)
	if err != nil {
		return nil, err
	}
	commits, err := r.Commits(shas)
	if err != nil {
		return nil, fmt.Errorf("load commits: %w", err)
	}
	return ScanCommits(ctx, detector, commits, opts)
}
