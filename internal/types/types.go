package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding describes one potential secret reported by the detection service
// for a single document. The path and owning commit are carried by the
// Scannable the finding is attached to, not by the finding itself.
type Finding struct {
	Type     string   `json:"type"`             // detector name, e.g. "AWS Keys"
	Policy   string   `json:"policy,omitempty"` // policy group, e.g. "Secrets detection"
	Match    string   `json:"match"`            // matched text (may be redacted)
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`
}
