package importers

import (
	"fmt"
	"io"
	"strings"

	"github.com/mrlokans/journal-importer/internal/entities"
)

// MissingListLimit is how many missing media items Summary lists in verbose mode.
const MissingListLimit = 10

// Summary prints the end-of-run report.
func Summary(w io.Writer, stats entities.ImportStats, verbose bool) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "IMPORT SUMMARY")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "📓 Total entries processed: %d\n", stats.TotalEntries)
	fmt.Fprintf(w, "✅ Successful imports: %d\n", stats.Successful)
	fmt.Fprintf(w, "❌ Failed imports: %d\n", stats.Failed)
	if stats.Cancelled {
		fmt.Fprintf(w, "⏹️  Cancelled, entries skipped: %d\n", stats.Skipped)
	}

	if n := len(stats.MissingMedia); n > 0 {
		fmt.Fprintf(w, "\n⚠️  Missing media files: %d\n", n)
		if verbose {
			for _, m := range stats.MissingMedia[:min(n, MissingListLimit)] {
				fmt.Fprintf(w, "  - %s\n", m)
			}
			if n > MissingListLimit {
				fmt.Fprintf(w, "  ... and %d more\n", n-MissingListLimit)
			}
		}
	}
	fmt.Fprintln(w, rule)
}
