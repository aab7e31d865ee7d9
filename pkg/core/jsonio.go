package core

import (
	"encoding/json"
	"io"
)

// MarshalEntries pretty-prints entries as JSON for humans or pipelines.
func MarshalEntries(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// UnmarshalEntries decodes entries JSON, useful for ingestion tests.
func UnmarshalEntries(r io.Reader) ([]Entry, error) {
	var es []Entry
	if err := json.NewDecoder(r).Decode(&es); err != nil {
		return nil, err
	}
	return es, nil
}
