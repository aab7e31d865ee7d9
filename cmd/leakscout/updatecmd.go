package leakscout

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leakscout/leakscout/internal/update"
)

func init() {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update leakscout to the latest release",
		RunE: func(_ *cobra.Command, _ []string) error {
			latest, newer, err := update.Check(version, false)
			if err != nil {
				return err
			}
			if !newer {
				fmt.Fprintln(os.Stderr, "leakscout is up to date")
				return nil
			}
			if checkOnly {
				fmt.Fprintf(os.Stderr, "new version available: v%s\n", latest)
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			fmt.Fprintf(os.Stderr, "updated to v%s\n", latest)
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")
	rootCmd.AddCommand(cmd)
}
