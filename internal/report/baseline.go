package report

import (
	"encoding/json"
	"os"
)

type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	return b, nil
}

func SaveBaseline(path string, entries []Entry) error {
	b := Baseline{Items: map[string]bool{}}
	for _, e := range entries {
		b.Items[key(e)] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

// FilterNewFindings keeps only entries absent from the baseline.
func FilterNewFindings(entries []Entry, base Baseline) []Entry {
	var out []Entry
	for _, e := range entries {
		if !base.Items[key(e)] {
			out = append(out, e)
		}
	}
	return out
}

// key deliberately omits the SHA: a baselined secret stays accepted even
// when later commits touch the same file again.
func key(e Entry) string {
	return e.Path + "|" + e.Finding.Type + "|" + e.Finding.Match
}
