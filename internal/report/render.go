package report

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/leakscout/leakscout/internal/types"
)

type PrintOptions struct {
	NoColor        bool
	Duration       time.Duration
	CommitsScanned int
	ErrorCount     int
}

// PrintTable renders entries grouped as they arrive (commit order) with a
// short summary footer.
func PrintTable(w io.Writer, entries []Entry, opts PrintOptions) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No secrets found")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Commit", "Path", "Line", "Type", "Severity", "Match"})
		for _, e := range entries {
			sev := string(e.Finding.Severity)
			if !opts.NoColor {
				sev = colorSeverity(e.Finding.Severity)
			}
			table.Append([]string{
				shortSHA(e.SHA),
				e.Path,
				fmt.Sprintf("%d", e.Finding.Line),
				e.Finding.Type,
				sev,
				maskValue(e.Finding.Match),
			})
		}
		_ = table.Render()
	}

	high, med, low := 0, 0, 0
	for _, e := range entries {
		switch e.Finding.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(entries), high, med, low)
	if opts.CommitsScanned > 0 {
		fmt.Fprintf(w, "Commits scanned: %d\n", opts.CommitsScanned)
	}
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.ErrorCount > 0 {
		fmt.Fprintf(w, "Items skipped due to errors: %d\n", opts.ErrorCount)
	}
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func maskValue(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return color.New(color.FgRed).Sprint("high")
	case types.SevMed:
		return color.New(color.FgYellow).Sprint("medium")
	default:
		return color.New(color.FgCyan).Sprint("low")
	}
}

// ShouldFail reports whether the run should exit non-zero given the fail-on
// threshold (low|medium|high; unknown values mean medium).
func ShouldFail(entries []Entry, failOn string) bool {
	level := map[string]int{"low": 1, "medium": 2, "high": 3}
	th := level[failOn]
	if th == 0 {
		th = 2
	}
	for _, e := range entries {
		if level[string(e.Finding.Severity)] >= th {
			return true
		}
	}
	return false
}
