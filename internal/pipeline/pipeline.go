// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full fetch-score-filter sequence: term
// building, registry fetch, per-record normalization and scoring, an
// optional geographic filter, and a stable sort by score. One bad record
// never aborts the batch; it lands in the structured skip list.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prazg/brain-trials-finder/internal/normalize"
	"github.com/prazg/brain-trials-finder/internal/registry"
	"github.com/prazg/brain-trials-finder/internal/score"
	"github.com/prazg/brain-trials-finder/internal/terms"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// Fetcher fetches merged, deduplicated studies for a term list. The
// registry client implements it directly; the cache wraps one.
type Fetcher interface {
	FetchAllTerms(ctx context.Context, terms []string) registry.FetchResult
}

// Result is the outcome of one search.
type Result struct {
	// Rows is the full scored row set, sorted by score descending with
	// ties in merge order. Truncation to a top-N is a presentation
	// concern.
	Rows []types.Row `json:"rows" yaml:"rows"`

	// TotalRaw counts the deduplicated studies fetched before filters.
	TotalRaw int `json:"total_raw" yaml:"total_raw"`

	// Skipped lists the studies dropped for formatting problems.
	Skipped []types.SkipRecord `json:"skipped,omitempty" yaml:"skipped,omitempty"`

	// TermErrors lists the search terms whose fetch failed. When it is as
	// long as the term list, the empty Rows means outage rather than no
	// matches.
	TermErrors []registry.TermError `json:"term_errors,omitempty" yaml:"term_errors,omitempty"`
}

// FetchFiltered runs the whole pipeline for one intake: builds search
// terms from the diagnosis and keywords, fetches and merges registry
// records, then scores and projects each record, applying the intake's
// country filter. Rows come back sorted by score descending; the sort is
// stable so equal scores keep their merge order and identical runs produce
// identical output.
func FetchFiltered(ctx context.Context, f Fetcher, intake types.Intake, log zerolog.Logger) Result {
	searchTerms := terms.Build(intake.Diagnosis, intake.Keywords)
	fetched := f.FetchAllTerms(ctx, searchTerms)

	res := Result{
		TotalRaw:   len(fetched.Studies),
		TermErrors: fetched.TermErrors,
	}

	for _, s := range fetched.Studies {
		row, ok, err := processStudy(s, intake)
		if err != nil {
			res.Skipped = append(res.Skipped, types.SkipRecord{
				NCTID:  s.NCTID(),
				Reason: err.Error(),
			})
			continue
		}
		if !ok {
			continue
		}
		res.Rows = append(res.Rows, row)
	}

	sort.SliceStable(res.Rows, func(i, j int) bool {
		return res.Rows[i].Score > res.Rows[j].Score
	})

	log.Info().
		Int("terms", len(searchTerms)).
		Int("fetched", res.TotalRaw).
		Int("rows", len(res.Rows)).
		Int("skipped", len(res.Skipped)).
		Int("term_errors", len(res.TermErrors)).
		Msg("search complete")

	return res
}

// processStudy normalizes and scores one record. ok is false when the
// country filter dropped the record; err reports a record so malformed
// that scoring panicked. Normalization and scoring are total functions, so
// the recover is a last line of defense keeping the batch alive, matching
// the skip policy for registry data of unexpected shape.
func processStudy(s types.Study, intake types.Intake) (row types.Row, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed record: %v", r)
		}
	}()

	matched, keep := filterCountry(s, intake)
	if !keep {
		return types.Row{}, false, nil
	}

	row = normalize.ExtractRow(s)
	if matched != nil {
		row.Site = normalize.SiteLine(matched)
	}
	if intake.IncludeContacts {
		row.Contacts = normalize.ContactLines(s)
	}
	row.Score, row.Reasons = score.Trial(s, intake)
	return row, true, nil
}

// filterCountry applies the intake's country filter. It returns the first
// matching site (nil when the filter is off or nothing matched) and
// whether the record survives. With RequireCountry set, zero matching
// sites drops the record; otherwise the filter only picks the displayed
// site.
func filterCountry(s types.Study, intake types.Intake) (map[string]interface{}, bool) {
	if intake.Country == "" {
		return nil, true
	}
	needle := strings.ToLower(intake.Country)

	var matched map[string]interface{}
	for _, l := range normalize.EnsureList(s.Module("contactsLocationsModule")["locations"]) {
		loc, ok := l.(map[string]interface{})
		if !ok {
			continue
		}
		country := strings.ToLower(normalize.GetString(loc, "locationCountry"))
		if strings.Contains(country, needle) {
			matched = loc
			break
		}
	}

	if matched == nil && intake.RequireCountry {
		return nil, false
	}
	return matched, true
}
