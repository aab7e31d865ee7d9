package scan

import (
	"errors"
	"iter"
)

// ErrBatchMaxSize is returned when a non-positive batch size is requested.
var ErrBatchMaxSize = errors.New("batch max size must be positive")

// Batches groups commits, in order, into batches whose cumulative Size stays
// within batchMaxSize. The returned sequence is lazy: no commit content is
// parsed and batches are formed one at a time as the caller iterates.
//
// A single commit larger than batchMaxSize is still yielded alone in its own
// batch; batches are never split below commit granularity. Zero-size commits
// are kept. Concatenating all batches reproduces the input exactly.
func Batches(commits []*Commit, batchMaxSize int) (iter.Seq[[]*Commit], error) {
	if batchMaxSize <= 0 {
		return nil, ErrBatchMaxSize
	}
	seq := func(yield func([]*Commit) bool) {
		var batch []*Commit
		total := 0
		for _, c := range commits {
			size := c.Size()
			if len(batch) > 0 && total+size > batchMaxSize {
				if !yield(batch) {
					return
				}
				batch = nil
				total = 0
			}
			batch = append(batch, c)
			total += size
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
	return seq, nil
}
