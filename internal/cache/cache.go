// Package cache persists per-repository scan state: the set of secret
// hashes the user chose to ignore, and the flattened findings of the last
// run (so "ignore --last-found" can reference them).
package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/leakscout/leakscout/internal/types"
)

// DB maps ignored secret hashes to a human-readable label (usually the
// finding type) so the ignore list stays auditable.
type DB struct {
	Ignored map[string]string `json:"ignored"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	// Fall back to repo root if .git does not exist
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "leakscoutcache.json")
	}
	return filepath.Join(root, ".leakscoutcache.json")
}

func Load(root string) (DB, error) {
	var db DB
	p := defaultPath(root)
	f, err := os.ReadFile(p)
	if err != nil {
		return DB{Ignored: map[string]string{}}, err
	}
	if err := json.Unmarshal(f, &db); err != nil {
		return DB{Ignored: map[string]string{}}, err
	}
	if db.Ignored == nil {
		db.Ignored = map[string]string{}
	}
	return db, nil
}

func Save(root string, db DB) error {
	if db.Ignored == nil {
		return errors.New("empty cache")
	}
	p := defaultPath(root)
	b, _ := json.MarshalIndent(db, "", "  ")
	return os.WriteFile(p, b, 0644)
}

// HashMatch derives the stable ignore key for a matched secret.
func HashMatch(match string) string {
	if match == "" {
		return "0000000000000000"
	}
	sum := xxhash.Sum64String(match)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// IsIgnored reports whether the finding's match was previously ignored.
func (db DB) IsIgnored(f types.Finding) bool {
	_, ok := db.Ignored[HashMatch(f.Match)]
	return ok
}

// LastScan stores the flattened findings of the most recent run.
type LastScan struct {
	Timestamp time.Time   `json:"timestamp"`
	Root      string      `json:"root"`
	Findings  []LastEntry `json:"findings"`
}

// LastEntry is one finding with its location context.
type LastEntry struct {
	SHA     string        `json:"sha"`
	Path    string        `json:"path"`
	Finding types.Finding `json:"finding"`
}

func lastScanPath(root string) string {
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "leakscout_last_scan.json")
	}
	return filepath.Join(root, ".leakscout_last_scan.json")
}

// SaveLastScan records the run's findings for later "ignore --last-found".
func SaveLastScan(root string, entries []LastEntry) error {
	b, err := json.MarshalIndent(LastScan{
		Timestamp: time.Now(),
		Root:      root,
		Findings:  entries,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(lastScanPath(root), b, 0644)
}

// LoadLastScan loads the previous run's findings.
func LoadLastScan(root string) (LastScan, error) {
	var last LastScan
	f, err := os.ReadFile(lastScanPath(root))
	if err != nil {
		return last, err
	}
	if err := json.Unmarshal(f, &last); err != nil {
		return last, err
	}
	return last, nil
}
