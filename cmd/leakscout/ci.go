package leakscout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leakscout/leakscout/internal/ci"
	"github.com/leakscout/leakscout/internal/git"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Scan the commits pushed in the current CI job",
		Long:  "Detects the CI provider from the environment, derives the pushed commit range, and scans it. Supports GitLab CI, GitHub Actions, Travis, Jenkins, CircleCI and Bitbucket Pipelines.",
		RunE:  runCI,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository to scan")
	cmd.Flags().IntVar(&flagBatchMaxSize, "batch-max-size", 0, "max changed files per detection call (0=default)")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().StringVar(&flagAPIURL, "api-url", "", "detection service base URL")
}

func runCI(cmd *cobra.Command, _ []string) error {
	abs, _ := filepath.Abs(flagPath)

	provider, err := ci.Detect(os.Getenv)
	if err != nil {
		return err
	}
	candidates, err := ci.RangeCandidates(provider, os.Getenv)
	if err != nil {
		return err
	}

	var shas []string
	for _, spec := range candidates {
		list, err := git.RevList(abs, spec)
		if err != nil {
			continue
		}
		if len(list) > 0 {
			shas = list
			break
		}
	}
	if len(shas) == 0 {
		return fmt.Errorf("no commit range resolved for %s (tried %d candidates)", provider, len(candidates))
	}
	fmt.Fprintf(os.Stderr, "CI provider: %s\n", provider)
	return runHistoryScan(cmd.Context(), abs, shas)
}
