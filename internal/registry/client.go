// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry fetches study records from the ClinicalTrials.gov v2
// API. Each search term is queried independently with token-based
// pagination, and per-term results are merged first-seen-wins by NCT
// identifier. A failing term contributes nothing; the other terms still
// count. Availability over completeness: a registry hiccup on one synonym
// must not blank the whole search.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/prazg/brain-trials-finder/internal/httputil"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// studiesBase is the ClinicalTrials.gov v2 study-search endpoint. Declared
// as a var so tests can substitute an httptest server.
var studiesBase = "https://clinicaltrials.gov/api/v2/studies"

const (
	defaultPageSize = 100
	defaultMaxPages = 5
	defaultTimeout  = 30 * time.Second
	defaultUA       = "brain-trials-finder/1.0 (+https://clinicaltrials.gov)"
)

// Client queries the study-search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	statuses   []string
	pageSize   int
	maxPages   int
	log        zerolog.Logger
}

// NewClient builds a Client from configuration, filling defaults for any
// zero field.
func NewClient(cfg types.RegistryConfig, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUA
	}
	statuses := cfg.Statuses
	if len(statuses) == 0 {
		statuses = types.DefaultStatuses
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > 1000 {
		pageSize = 1000
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    studiesBase,
		userAgent:  ua,
		statuses:   statuses,
		pageSize:   pageSize,
		maxPages:   maxPages,
		log:        log,
	}
}

// page is the registry's JSON page envelope. An absent nextPageToken
// signals the last page.
type page struct {
	Studies       []types.Study `json:"studies"`
	NextPageToken string        `json:"nextPageToken"`
}

// FetchTerm pages through the registry results for one search term. It
// stops when the registry returns no continuation token, no studies, or
// after maxPages page fetches, whichever comes first. The page bound
// protects against unbounded pagination loops on broad terms.
func (c *Client) FetchTerm(ctx context.Context, term string) ([]types.Study, error) {
	var all []types.Study
	pageToken := ""

	for fetched := 0; fetched < c.maxPages; fetched++ {
		params := url.Values{
			"query.term":           {term},
			"filter.overallStatus": {strings.Join(c.statuses, ",")},
			"pageSize":             {strconv.Itoa(c.pageSize)},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0, c.log)
		if err != nil {
			return nil, fmt.Errorf("registry request for %q: %w", term, err)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("registry returned HTTP %d for %q", resp.StatusCode, term)
		}

		var p page
		err = json.NewDecoder(resp.Body).Decode(&p)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing registry response for %q: %w", term, err)
		}

		if len(p.Studies) == 0 {
			break
		}
		all = append(all, p.Studies...)

		pageToken = p.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return all, nil
}

// TermError records one search term whose fetch failed entirely.
type TermError struct {
	Term string `json:"term" yaml:"term"`
	Err  string `json:"error" yaml:"error"`
}

// FetchResult holds the merged studies and per-term failure records.
// Callers needing to distinguish "no matches" from "total outage" compare
// len(TermErrors) against their term count; the merged set alone cannot
// tell the two apart.
type FetchResult struct {
	Studies    []types.Study
	TermErrors []TermError
}

// FetchAllTerms runs FetchTerm for each term in order and merges the
// results, keeping the first occurrence of each NCT identifier. Term order
// then page order makes the merge deterministic for a fixed sequence of
// registry pages. A term that fails is recorded in TermErrors and skipped.
func (c *Client) FetchAllTerms(ctx context.Context, terms []string) FetchResult {
	var out FetchResult
	seen := make(map[string]bool)
	anon := 0

	for _, term := range terms {
		studies, err := c.FetchTerm(ctx, term)
		if err != nil {
			c.log.Warn().Str("term", term).Err(err).Msg("term fetch failed, continuing")
			out.TermErrors = append(out.TermErrors, TermError{Term: term, Err: err.Error()})
			continue
		}
		c.log.Debug().Str("term", term).Int("studies", len(studies)).Msg("term fetched")

		for _, s := range studies {
			key := dedupKey(s)
			if key == "" {
				// No identifier and no title: synthesize a key so the
				// record survives without ever colliding.
				anon++
				key = fmt.Sprintf("anon:%d", anon)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Studies = append(out.Studies, s)
		}
	}

	return out
}

// dedupKey prefers the NCT identifier and falls back to the normalized
// brief title, so two served records never share an identifier.
func dedupKey(s types.Study) string {
	if id := s.NCTID(); id != "" {
		return "nct:" + id
	}
	if title := strings.ToLower(strings.TrimSpace(s.BriefTitle())); title != "" {
		return "title:" + title
	}
	return ""
}
