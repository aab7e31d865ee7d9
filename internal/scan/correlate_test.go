package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leakscout/leakscout/internal/types"
)

func staticCommit(sha string, files []Scannable) *Commit {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return NewCommit(sha, CommitInfo{Paths: paths}, func(*Commit) ([]Scannable, error) {
		return files, nil
	})
}

func twoFindings() []types.Finding {
	return []types.Finding{
		{Type: "AWS Keys", Match: "AKIA...", Line: 1, Severity: types.SevHigh},
		{Type: "Generic Password", Match: "hunter2", Line: 3, Severity: types.SevMed},
	}
}

func TestCorrelateCardinality(t *testing.T) {
	batch := []*Commit{
		staticCommit("sha_1", []Scannable{{OwnerSHA: "sha_1", Path: "a", Content: "x"}}),
		staticCommit("sha_2", nil),
		staticCommit("sha_3", []Scannable{{OwnerSHA: "sha_3", Path: "b", Content: "y"}}),
	}
	groups := Correlate(batch, Results{})
	require.Len(t, groups, len(batch), "one group per commit even with no results")
	for i, g := range groups {
		assert.Same(t, batch[i], g.Commit)
		assert.Empty(t, g.Results)
	}
}

func TestCorrelateSameContentDifferentCommits(t *testing.T) {
	// Both commits add a file with identical path and content. Findings must
	// stay with their owner and never merge.
	file1 := Scannable{OwnerSHA: "sha_1", Path: "filename", Content: "content"}
	file2 := Scannable{OwnerSHA: "sha_2", Path: "filename", Content: "content"}
	batch := []*Commit{
		staticCommit("sha_1", []Scannable{file1}),
		staticCommit("sha_2", []Scannable{file2}),
	}
	results := Results{Results: []Result{
		{Scannable: file1, Findings: twoFindings()},
		{Scannable: file2, Findings: twoFindings()},
	}}

	groups := Correlate(batch, results)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Results, 1)
	require.Len(t, groups[1].Results, 1)
	assert.Equal(t, "sha_1", groups[0].Results[0].Scannable.OwnerSHA)
	assert.Equal(t, "sha_2", groups[1].Results[0].Scannable.OwnerSHA)

	col := &Collection{Scans: groups}
	assert.Equal(t, 4, col.TotalFindings())
}

func TestCorrelatePartialOutOfOrderResults(t *testing.T) {
	// Commit 1 has three files, results come back only for files 1 and 3 and
	// interleaved with another commit's result.
	f11 := Scannable{OwnerSHA: "sha_1", Path: "filename1", Content: "document1"}
	f12 := Scannable{OwnerSHA: "sha_1", Path: "filename2", Content: "document2"}
	f13 := Scannable{OwnerSHA: "sha_1", Path: "filename3", Content: "document3"}
	f21 := Scannable{OwnerSHA: "sha_2", Path: "filename2", Content: "document2"}
	f22 := Scannable{OwnerSHA: "sha_2", Path: "filename3", Content: "document3"}

	batch := []*Commit{
		staticCommit("sha_1", []Scannable{f11, f12, f13}),
		staticCommit("sha_2", []Scannable{f21, f22}),
	}
	results := Results{Results: []Result{
		{Scannable: f13, Findings: twoFindings()},
		{Scannable: f21, Findings: twoFindings()},
		{Scannable: f11, Findings: twoFindings()},
	}}

	groups := Correlate(batch, results)
	require.Len(t, groups, 2)

	// Out of 3 files only 2 results, kept in dispatcher emission order.
	require.Len(t, groups[0].Results, 2)
	assert.Equal(t, "filename3", groups[0].Results[0].Scannable.Path)
	assert.Equal(t, "filename1", groups[0].Results[1].Scannable.Path)

	// Out of 2 files only 1 result.
	require.Len(t, groups[1].Results, 1)
	assert.Equal(t, "filename2", groups[1].Results[0].Scannable.Path)
}
