package report

import (
	"encoding/json"
	"io"
)

const envelopeSchemaVersion = "1"

// Envelope is the JSON report shape: run identification plus the flattened
// findings and per-item errors.
type Envelope struct {
	Tool     string   `json:"tool"`
	Version  string   `json:"version"`
	Schema   string   `json:"schema_version"`
	RunID    string   `json:"run_id"`
	Repo     string   `json:"repo,omitempty"`
	Commit   string   `json:"commit,omitempty"`
	Branch   string   `json:"branch,omitempty"`
	Findings []Entry  `json:"findings"`
	Errors   []string `json:"errors,omitempty"`
}

// WriteJSON emits the envelope, normalizing a nil findings slice so the
// output never contains `null`.
func WriteJSON(w io.Writer, env Envelope) error {
	if env.Findings == nil {
		env.Findings = []Entry{}
	}
	if env.Schema == "" {
		env.Schema = envelopeSchemaVersion
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}
