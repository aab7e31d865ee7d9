package report

import (
	"github.com/leakscout/leakscout/internal/scan"
	"github.com/leakscout/leakscout/internal/types"
)

// Entry is one finding flattened with its location context: the owning
// commit and the path the secret was found at.
type Entry struct {
	SHA     string        `json:"sha"`
	Path    string        `json:"path"`
	Finding types.Finding `json:"finding"`
}

// Flatten turns a scan collection into a flat list of entries, preserving
// commit order and within-commit result order.
func Flatten(col *scan.Collection) []Entry {
	var out []Entry
	for _, s := range col.Scans {
		for _, r := range s.Results {
			for _, f := range r.Findings {
				out = append(out, Entry{SHA: s.Commit.SHA, Path: r.Scannable.Path, Finding: f})
			}
		}
	}
	return out
}

// FilterIgnored drops entries whose finding the given predicate marks as
// previously ignored.
func FilterIgnored(entries []Entry, isIgnored func(types.Finding) bool) []Entry {
	if isIgnored == nil {
		return entries
	}
	var out []Entry
	for _, e := range entries {
		if !isIgnored(e.Finding) {
			out = append(out, e)
		}
	}
	return out
}
