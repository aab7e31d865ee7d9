package leakscout

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/leakscout/leakscout/internal/cache"
	"github.com/leakscout/leakscout/internal/client"
	"github.com/leakscout/leakscout/internal/config"
	"github.com/leakscout/leakscout/internal/git"
	"github.com/leakscout/leakscout/internal/ignore"
	"github.com/leakscout/leakscout/internal/logging"
	"github.com/leakscout/leakscout/internal/repo"
	"github.com/leakscout/leakscout/internal/report"
	"github.com/leakscout/leakscout/internal/scan"
	"github.com/leakscout/leakscout/internal/update"
)

const baselineFile = "leakscout.baseline.json"

var (
	flagPath           string
	flagRange          string
	flagLast           int
	flagBatchMaxSize   int
	flagMaxBytes       int64
	flagInclude        string
	flagExclude        string
	flagAPIURL         string
	flagUpdateBaseline bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan commit history for secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository to scan")
	cmd.Flags().StringVar(&flagRange, "range", "", "commit range to scan (rev-list syntax, e.g. main..HEAD)")
	cmd.Flags().IntVar(&flagLast, "last", 0, "scan the last N commits (0=off)")
	cmd.Flags().IntVar(&flagBatchMaxSize, "batch-max-size", 0, "max changed files per detection call (0=default)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "detection service base URL")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "accept this run's findings into the baseline")
}

func runScan(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)
	shas, err := resolveCommits(abs)
	if err != nil {
		return err
	}
	return runHistoryScan(cmd.Context(), abs, shas)
}

// resolveCommits maps the scan flags to a SHA list: an explicit range wins,
// then --last, then the single HEAD commit.
func resolveCommits(root string) ([]string, error) {
	if flagRange != "" {
		return git.RevList(root, flagRange)
	}
	if flagLast > 0 {
		return git.LastCommits(root, flagLast)
	}
	return git.LastCommits(root, 1)
}

// runHistoryScan is the shared scan flow behind "scan" and "ci": it merges
// config, scans the given commits, and renders the selected report format.
func runHistoryScan(ctx context.Context, root string, shas []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !term.IsTerminal(int(os.Stdout.Fd()))
	color.NoColor = noColor
	verbose := pickBool(flagVerbose, lcfg.Verbose, gcfg.Verbose)
	runID := uuid.NewString()
	log := logging.New(verbose).With(zap.String("run_id", runID))
	defer func() { _ = log.Sync() }()

	apiURL := pickString(flagAPIURL, lcfg.APIURL, gcfg.APIURL)
	if apiURL == "" {
		return fmt.Errorf("detection service URL required (use --api-url or set api_url in config)")
	}
	detector, err := client.New(client.Config{
		BaseURL: apiURL,
		Token:   os.Getenv(config.TokenEnvVar),
		Logger:  log,
	})
	if err != nil {
		return err
	}

	interactive := !flagJSON && !flagSARIF
	if interactive && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'leakscout update' to upgrade\n", latest)
		}
	}

	if len(shas) == 0 {
		if interactive {
			fmt.Fprintln(os.Stderr, "No commits to scan")
		}
		return nil
	}
	if interactive {
		fmt.Fprintf(os.Stderr, "Scanning %d commits in %s...\n", len(shas), root)
	}

	var obs scan.Observer
	if interactive && term.IsTerminal(int(os.Stderr.Fd())) {
		obs = &progressBar{out: os.Stderr, total: len(shas)}
	}

	opts := repo.Options{
		Root:         root,
		BatchMaxSize: pickInt(flagBatchMaxSize, lcfg.BatchMaxSize, gcfg.BatchMaxSize),
		Filters: git.Filters{
			MaxBytes: pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
			Allow: buildAllow(
				pickString(flagInclude, lcfg.Include, gcfg.Include),
				pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
				root,
			),
		},
		Observer: obs,
		Logger:   log,
	}

	start := time.Now()
	col, scanErr := repo.ScanCommitSHAs(ctx, detector, shas, opts)
	if obs != nil {
		fmt.Fprintln(os.Stderr)
	}
	if col == nil {
		return scanErr
	}
	if scanErr != nil {
		// Render what completed before the failure, then surface the error.
		fmt.Fprintln(os.Stderr, "scan aborted:", scanErr)
	}

	entries := report.Flatten(col)

	if db, err := cache.Load(root); err == nil {
		entries = report.FilterIgnored(entries, db.IsIgnored)
	}

	if flagUpdateBaseline {
		if err := report.SaveBaseline(filepath.Join(root, baselineFile), entries); err != nil {
			return fmt.Errorf("save baseline: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Baseline updated.")
	}
	if base, err := report.LoadBaseline(filepath.Join(root, baselineFile)); err == nil {
		entries = report.FilterNewFindings(entries, base)
	}

	saveLastScan(root, entries)

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, version, entries); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		repoName, commit, branch := git.RepoMetadata(root)
		env := report.Envelope{
			Tool:     "leakscout",
			Version:  version,
			RunID:    runID,
			Repo:     repoName,
			Commit:   commit,
			Branch:   branch,
			Findings: entries,
		}
		for _, e := range col.Errors {
			env.Errors = append(env.Errors, e.Error())
		}
		if err := report.WriteJSON(os.Stdout, env); err != nil {
			return err
		}
	default:
		report.PrintTable(os.Stdout, entries, report.PrintOptions{
			NoColor:        noColor,
			Duration:       time.Since(start),
			CommitsScanned: len(col.Scans),
			ErrorCount:     len(col.Errors),
		})
	}

	if scanErr != nil {
		return scanErr
	}
	if report.ShouldFail(entries, pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)) {
		os.Exit(1)
	}
	return nil
}

func saveLastScan(root string, entries []report.Entry) {
	last := make([]cache.LastEntry, 0, len(entries))
	for _, e := range entries {
		last = append(last, cache.LastEntry{SHA: e.SHA, Path: e.Path, Finding: e.Finding})
	}
	_ = cache.SaveLastScan(root, last)
}

// buildAllow combines include/exclude globs with the repo's .leakscoutignore
// file into a single path predicate.
func buildAllow(include, exclude, root string) func(string) bool {
	matcher, _ := ignore.Load(filepath.Join(root, ".leakscoutignore"))
	includes := splitGlobs(include)
	excludes := splitGlobs(exclude)
	return func(p string) bool {
		if matcher.Match(p) {
			return false
		}
		for _, g := range excludes {
			if ok, _ := doublestar.Match(g, p); ok {
				return false
			}
		}
		if len(includes) == 0 {
			return true
		}
		for _, g := range includes {
			if ok, _ := doublestar.Match(g, p); ok {
				return true
			}
		}
		return false
	}
}

func splitGlobs(s string) []string {
	var out []string
	for _, g := range strings.Split(s, ",") {
		g = strings.TrimSpace(g)
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

// progressBar draws a single-line textual progress indicator on stderr.
type progressBar struct {
	out   io.Writer
	total int
	done  int
}

func (p *progressBar) Progress(advance int) {
	p.done += advance
	pct := float64(p.done) / float64(p.total) * 100
	fmt.Fprintf(p.out, "\r[%d/%d] %.0f%%", p.done, p.total, pct)
}

func (p *progressBar) CommitScanned(*scan.Commit) {}
