package leakscout

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagFailOn        string
	flagNoColor       bool
	flagVerbose       bool
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the leakscout CLI.
var rootCmd = &cobra.Command{
	Use:           "leakscout",
	Short:         "Find secrets in your git history",
	Long:          "Leakscout walks commit ranges, sends changed file contents to a detection service in size-bounded batches, and reports every secret with the commit that introduced it.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the leakscout CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "", "fail on low|medium|high (default medium)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}
