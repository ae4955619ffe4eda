// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prazg/brain-trials-finder/pkg/types"
)

// ukCountry is the country filter text for the UK aggregator.
const ukCountry = "united kingdom"

// FetchUK runs the pipeline restricted to trials with at least one United
// Kingdom site. The displayed site is the first UK site ("facility, city,
// country"), and rows are deduplicated once more by NCT identifier with a
// normalized-title fallback, since rows from registries without NCT IDs
// may join this aggregate later.
func FetchUK(ctx context.Context, f Fetcher, intake types.Intake, log zerolog.Logger) Result {
	ukIntake := intake
	ukIntake.Country = ukCountry
	ukIntake.RequireCountry = true

	res := FetchFiltered(ctx, f, ukIntake, log)
	res.Rows = dedupeRows(res.Rows)
	return res
}

// dedupeRows keeps the first occurrence of each row key, preserving order.
func dedupeRows(rows []types.Row) []types.Row {
	seen := make(map[string]bool, len(rows))
	out := rows[:0]
	for _, r := range rows {
		k := rowKey(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// rowKey prefers the NCT identifier and falls back to the normalized title.
func rowKey(r types.Row) string {
	if r.NCTID != "" {
		return "NCT:" + r.NCTID
	}
	return "TITLE:" + strings.ToLower(strings.TrimSpace(r.Title))
}
