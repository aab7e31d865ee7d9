package core

import (
	"context"
	"os"

	"github.com/leakscout/leakscout/internal/client"
	"github.com/leakscout/leakscout/internal/config"
	"github.com/leakscout/leakscout/internal/git"
	"github.com/leakscout/leakscout/internal/repo"
	"github.com/leakscout/leakscout/internal/report"
	"github.com/leakscout/leakscout/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Finding = types.Finding
type Severity = types.Severity
type Entry = report.Entry

// Config holds the settings an embedding program needs to run a history
// scan. Token falls back to the LEAKSCOUT_API_TOKEN environment variable.
type Config struct {
	Root         string
	APIURL       string
	Token        string
	BatchMaxSize int   // 0 = default
	MaxBytes     int64 // 0 = no size limit
}

func (c Config) token() string {
	if c.Token != "" {
		return c.Token
	}
	return os.Getenv(config.TokenEnvVar)
}

// ScanRange scans the commits selected by a rev-list range spec
// (e.g. "main..HEAD") and returns the flattened findings.
func ScanRange(ctx context.Context, cfg Config, rangeSpec string) ([]Entry, error) {
	shas, err := git.RevList(cfg.Root, rangeSpec)
	if err != nil {
		return nil, err
	}
	return scanSHAs(ctx, cfg, shas)
}

// ScanLast scans the last n commits reachable from HEAD.
func ScanLast(ctx context.Context, cfg Config, n int) ([]Entry, error) {
	shas, err := git.LastCommits(cfg.Root, n)
	if err != nil {
		return nil, err
	}
	return scanSHAs(ctx, cfg, shas)
}

func scanSHAs(ctx context.Context, cfg Config, shas []string) ([]Entry, error) {
	detector, err := client.New(client.Config{BaseURL: cfg.APIURL, Token: cfg.token()})
	if err != nil {
		return nil, err
	}
	col, err := repo.ScanCommitSHAs(ctx, detector, shas, repo.Options{
		Root:         cfg.Root,
		BatchMaxSize: cfg.BatchMaxSize,
		Filters:      git.Filters{MaxBytes: cfg.MaxBytes},
	})
	if err != nil {
		return nil, err
	}
	return report.Flatten(col), nil
}
