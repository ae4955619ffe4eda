// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package portal builds search URLs for UK trial portals that have no
// queryable API (NIHR Be Part of Research, ISRCTN, Cancer Research UK).
// Presentation layers open these in a browser alongside the registry
// results.
package portal

import "net/url"

const (
	nihrBase   = "https://www.bepartofresearch.nihr.ac.uk/results/search-results"
	isrctnBase = "https://www.isrctn.com/search"
	crukBase   = "https://find.cancerresearchuk.org/clinical-trials"
)

// Query derives the portal search text from the diagnosis, falling back
// to the first keyword and then a broad default. Portals take one phrase,
// not a synonym list.
func Query(diagnosis, keywords string) string {
	if diagnosis != "" && diagnosis != "Other" {
		return diagnosis
	}
	if keywords != "" {
		return keywords
	}
	return "brain tumour"
}

// NIHRURL returns the NIHR Be Part of Research search URL, with an
// optional location filter.
func NIHRURL(query, location string) string {
	v := url.Values{"query": {query}}
	if location != "" {
		v.Set("location", location)
	}
	return nihrBase + "?" + v.Encode()
}

// ISRCTNURL returns the ISRCTN registry search URL, restricted to the UK.
func ISRCTNURL(query string) string {
	v := url.Values{"q": {query}, "countries": {"United Kingdom"}}
	return isrctnBase + "?" + v.Encode()
}

// CRUKURL returns the Cancer Research UK trial finder URL.
func CRUKURL(query string) string {
	v := url.Values{"q": {query}}
	return crukBase + "?" + v.Encode()
}
