package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leakscout/leakscout/internal/types"
)

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	// initial load should return empty DB and error
	db, _ := Load(dir)
	if db.Ignored == nil {
		t.Fatalf("expected ignored map initialized")
	}
	db.Ignored[HashMatch("AKIA123")] = "AWS Keys"
	if err := Save(dir, db); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".leakscoutcache.json")); err != nil {
		t.Fatalf("cache file not written: %v", err)
	}
	db2, err := Load(dir)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if !db2.IsIgnored(types.Finding{Match: "AKIA123"}) {
		t.Fatalf("expected match to be ignored")
	}
	if db2.IsIgnored(types.Finding{Match: "other"}) {
		t.Fatalf("unexpected ignore hit")
	}
}

func TestHashMatchStable(t *testing.T) {
	if HashMatch("secret") != HashMatch("secret") {
		t.Fatal("hash not stable")
	}
	if HashMatch("secret") == HashMatch("Secret") {
		t.Fatal("hash should be case sensitive")
	}
	if got := HashMatch(""); got != "0000000000000000" {
		t.Fatalf("empty match hash = %q", got)
	}
}

func TestLastScanRoundTrip(t *testing.T) {
	dir := t.TempDir()
	entries := []LastEntry{
		{SHA: "sha1", Path: "a.env", Finding: types.Finding{Type: "AWS Keys", Match: "AKIA123", Severity: types.SevHigh}},
	}
	if err := SaveLastScan(dir, entries); err != nil {
		t.Fatal(err)
	}
	got, err := LoadLastScan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Findings) != 1 || got.Findings[0].Finding.Match != "AKIA123" {
		t.Fatalf("unexpected last scan: %+v", got)
	}
}
