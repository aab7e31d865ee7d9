package leakscout

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leakscout/leakscout/internal/cache"
)

func init() {
	var lastFound bool
	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Mark findings as ignored in future scans",
		RunE: func(_ *cobra.Command, _ []string) error {
			if !lastFound {
				return fmt.Errorf("nothing to ignore (did you mean --last-found?)")
			}
			abs, _ := filepath.Abs(flagPath)
			last, err := cache.LoadLastScan(abs)
			if err != nil {
				return fmt.Errorf("no previous scan found, run 'leakscout scan' first")
			}
			db, _ := cache.Load(abs)
			added := 0
			for _, e := range last.Findings {
				h := cache.HashMatch(e.Finding.Match)
				if _, ok := db.Ignored[h]; !ok {
					db.Ignored[h] = e.Finding.Type
					added++
				}
			}
			if err := cache.Save(abs, db); err != nil {
				return err
			}
			fmt.Printf("Ignored %d secrets (%d total)\n", added, len(db.Ignored))
			return nil
		},
	}
	cmd.Flags().BoolVar(&lastFound, "last-found", false, "ignore all secrets found by the last scan")
	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "repository the scan ran in")
	rootCmd.AddCommand(cmd)
}
