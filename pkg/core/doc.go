// Package core provides a small, stable facade over leakscout's internal
// pipeline for external integrations. It deliberately re-exports a narrow
// API surface so other tools can depend on a stable import path without
// reaching into internal implementation packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", APIURL: "https://scan.example.com"}
//	entries, err := core.ScanLast(context.Background(), cfg, 10)
//	if err != nil { /* handle */ }
//	_ = core.MarshalEntries(os.Stdout, entries)
package core
