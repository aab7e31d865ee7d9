package scan

import (
	"fmt"

	"github.com/leakscout/leakscout/internal/types"
)

// Result associates one scannable with the non-empty list of findings the
// detection service reported for it. Clean scannables produce no Result.
type Result struct {
	Scannable Scannable
	Findings  []types.Finding
}

// ScanError records an item the pipeline could not evaluate. Path is empty
// when a whole commit failed (patch parse error); otherwise the error is
// local to one file.
type ScanError struct {
	OwnerSHA string
	Path     string
	Err      error
}

func (e ScanError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("commit %s: %v", e.OwnerSHA, e.Err)
	}
	return fmt.Sprintf("%s:%s: %v", e.OwnerSHA, e.Path, e.Err)
}

func (e ScanError) Unwrap() error { return e.Err }

// Results is what one batch dispatch yields: a sparse, unordered subset of
// the dispatched scannables that have findings, plus per-item errors.
type Results struct {
	Results []Result
	Errors  []ScanError
}

// CommitScan is one commit's group: the commit plus the (possibly empty)
// results that belong to it, in dispatcher emission order.
type CommitScan struct {
	Commit  *Commit
	Results []Result
}

// Collection accumulates one CommitScan per commit across all batches, in
// the order commits were consumed. Append-only, single writer.
type Collection struct {
	Scans  []CommitScan
	Errors []ScanError
}

// AllResults flattens the per-commit groups into one slice, preserving
// commit order and within-commit order.
func (c *Collection) AllResults() []Result {
	var out []Result
	for _, s := range c.Scans {
		out = append(out, s.Results...)
	}
	return out
}

// TotalFindings counts findings across every commit group.
func (c *Collection) TotalFindings() int {
	n := 0
	for _, s := range c.Scans {
		for _, r := range s.Results {
			n += len(r.Findings)
		}
	}
	return n
}
