package scan

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Detector is the remote detection service seen from the pipeline: one call
// per batch, taking the batch's flattened scannables and returning a sparse
// result set. An empty result set means a clean batch, not an error.
type Detector interface {
	Detect(ctx context.Context, items []Scannable) (Results, error)
}

// Observer receives pipeline progress. Calls are synchronous and ordered:
// Progress and CommitScanned fire once per commit, in commit order, after
// the commit's batch has been fully correlated.
type Observer interface {
	Progress(advance int)
	CommitScanned(c *Commit)
}

type nopObserver struct{}

func (nopObserver) Progress(int)          {}
func (nopObserver) CommitScanned(*Commit) {}

// PipelineConfig configures a Pipeline. BatchMaxSize is the only required
// knob; a nil Observer or Logger is replaced with a no-op.
type PipelineConfig struct {
	BatchMaxSize int
	Observer     Observer
	Logger       *zap.Logger
}

// Pipeline runs the batch-dispatch-correlate loop: commits are grouped into
// size-bounded batches, each batch is expanded and sent to the detector in
// one call, and the findings are regrouped under their commits in order.
type Pipeline struct {
	detector Detector
	obs      Observer
	maxSize  int
	log      *zap.Logger
}

func NewPipeline(detector Detector, cfg PipelineConfig) *Pipeline {
	obs := cfg.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{detector: detector, obs: obs, maxSize: cfg.BatchMaxSize, log: log}
}

// Run scans the commits batch by batch and returns the accumulated
// collection. Batches are dispatched and correlated strictly in order, one
// in flight at a time, so peak memory is bounded by one batch's content.
//
// Per-commit and per-item failures are absorbed into Collection.Errors. A
// failed detector call is fatal for the run: Run returns the collection
// built from the batches that already completed, plus the error, and no
// partial groups from the failed batch are committed. Cancellation is
// checked between batches.
func (p *Pipeline) Run(ctx context.Context, commits []*Commit) (*Collection, error) {
	batches, err := Batches(commits, p.maxSize)
	if err != nil {
		return nil, err
	}

	col := &Collection{}
	n := 0
	for batch := range batches {
		if err := ctx.Err(); err != nil {
			return col, err
		}
		n++
		items, parseErrs := Expand(batch)
		p.log.Debug("dispatching batch",
			zap.Int("batch", n),
			zap.Int("commits", len(batch)),
			zap.Int("files", len(items)))

		results, err := p.detector.Detect(ctx, items)
		if err != nil {
			return col, fmt.Errorf("batch %d scan failed: %w", n, err)
		}
		results.Errors = append(parseErrs, results.Errors...)

		groups := Correlate(batch, results)
		col.Scans = append(col.Scans, groups...)
		col.Errors = append(col.Errors, results.Errors...)
		for _, g := range groups {
			p.obs.Progress(1)
			p.obs.CommitScanned(g.Commit)
		}
	}
	p.log.Debug("scan complete",
		zap.Int("batches", n),
		zap.Int("commits", len(col.Scans)),
		zap.Int("findings", col.TotalFindings()))
	return col, nil
}
