package scan

// Correlate regroups a batch's sparse results under the commits that
// produced them. The output has exactly one group per commit, in batch
// order; commits with no results get an empty group. Within a group,
// results keep the order the dispatcher emitted them.
//
// Matching is by owner SHA only. Path and content equality is not identity:
// two commits can introduce the same file with the same content and their
// findings must not cross over.
func Correlate(batch []*Commit, results Results) []CommitScan {
	byOwner := make(map[string][]Result, len(batch))
	for _, r := range results.Results {
		byOwner[r.Scannable.OwnerSHA] = append(byOwner[r.Scannable.OwnerSHA], r)
	}
	groups := make([]CommitScan, 0, len(batch))
	for _, c := range batch {
		groups = append(groups, CommitScan{Commit: c, Results: byOwner[c.SHA]})
	}
	return groups
}
