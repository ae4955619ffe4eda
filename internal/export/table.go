// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/prazg/brain-trials-finder/internal/pipeline"
)

// Column widths for the result table. Sponsor names and non-ASCII site
// names are truncated by display width, not byte count.
const (
	titleWidth   = 56
	sponsorWidth = 24
	siteWidth    = 22
	statusWidth  = 20
	phasesWidth  = 12
)

// FormatTable writes the result set as a human-readable table with the
// aggregate counters a user needs to tell "no matches" from "data quality
// issues" ("fetched N, showing M, skipped K").
func FormatTable(res pipeline.Result, w io.Writer) {
	if len(res.Rows) == 0 {
		fmt.Fprintln(w, "No studies found.")
		printCounters(res, w)
		return
	}

	fmt.Fprintf(w, "%-5s  %-*s  %-*s  %-*s  %-*s  %-*s  %s\n",
		"Score",
		titleWidth, "Title",
		sponsorWidth, "Sponsor",
		siteWidth, "Site",
		statusWidth, "Status",
		phasesWidth, "Phases",
		"NCT ID")
	fmt.Fprintln(w, strings.Repeat("-", 5+titleWidth+sponsorWidth+siteWidth+statusWidth+phasesWidth+22))

	for _, r := range res.Rows {
		fmt.Fprintf(w, "%-5d  %s  %s  %s  %s  %s  %s\n",
			r.Score,
			cell(r.Title, titleWidth),
			cell(r.Sponsor, sponsorWidth),
			cell(r.Site, siteWidth),
			cell(r.Status, statusWidth),
			cell(r.Phases, phasesWidth),
			r.NCTID)
		for _, reason := range r.Reasons {
			fmt.Fprintf(w, "       - %s\n", reason)
		}
		for _, line := range r.Contacts {
			fmt.Fprintf(w, "       %s\n", line)
		}
	}

	printCounters(res, w)
}

func printCounters(res pipeline.Result, w io.Writer) {
	fmt.Fprintf(w, "\nFetched %d trials; showing %d after filters.", res.TotalRaw, len(res.Rows))
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, " Skipped %d.", len(res.Skipped))
	}
	if len(res.TermErrors) > 0 {
		fmt.Fprintf(w, " %d search terms failed.", len(res.TermErrors))
	}
	fmt.Fprintln(w)
}

// cell truncates s to the column's display width and pads it to exactly
// that width.
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}
