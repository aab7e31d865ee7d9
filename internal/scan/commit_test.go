package scan

import (
	"errors"
	"testing"
)

func TestCommitScannablesMemoized(t *testing.T) {
	calls := 0
	c := NewCommit("sha", CommitInfo{Paths: []string{"a", "b"}}, func(c *Commit) ([]Scannable, error) {
		calls++
		return []Scannable{{OwnerSHA: c.SHA, Path: "a", Content: "x"}}, nil
	})
	if c.Size() != 2 {
		t.Fatalf("Size = %d, want 2", c.Size())
	}
	if calls != 0 {
		t.Fatalf("parser ran during metadata access")
	}
	for i := 0; i < 3; i++ {
		files, err := c.Scannables()
		if err != nil {
			t.Fatal(err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d scannables, want 1", len(files))
		}
	}
	if calls != 1 {
		t.Fatalf("parser invoked %d times, want exactly once", calls)
	}
}

func TestCommitScannablesMemoizesError(t *testing.T) {
	calls := 0
	parseErr := errors.New("bad patch")
	c := NewCommit("sha", CommitInfo{}, func(*Commit) ([]Scannable, error) {
		calls++
		return nil, parseErr
	})
	for i := 0; i < 2; i++ {
		if _, err := c.Scannables(); !errors.Is(err, parseErr) {
			t.Fatalf("err = %v, want %v", err, parseErr)
		}
	}
	if calls != 1 {
		t.Fatalf("parser invoked %d times, want exactly once", calls)
	}
}

func TestCommitNilParser(t *testing.T) {
	c := NewCommit("sha", CommitInfo{}, nil)
	files, err := c.Scannables()
	if err != nil || files != nil {
		t.Fatalf("nil parser: got %v, %v", files, err)
	}
}
