// Package scan implements the commit-batching and result-correlation core:
// commits are grouped into size-bounded batches using only cheap metadata,
// each batch's content is materialized just before dispatch, and the sparse
// findings returned by the detection service are regrouped under the commits
// that produced them, preserving commit order and cardinality.
package scan
