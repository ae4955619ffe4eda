// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/prazg/brain-trials-finder/pkg/types"
)

// studyURLBase is the public study page prefix.
const studyURLBase = "https://clinicaltrials.gov/study/"

// StudyURL returns the public page for an NCT identifier, or "" when the
// identifier is empty.
func StudyURL(nctID string) string {
	if nctID == "" {
		return ""
	}
	return studyURLBase + nctID
}

// ExtractRow projects a raw study record into a flat Row. Score and
// Reasons stay zero; the scorer fills them downstream. ExtractRow never
// fails: absent or malformed sub-fields become empty strings.
func ExtractRow(s types.Study) types.Row {
	idm := s.Module("identificationModule")
	scm := s.Module("statusModule")
	dsm := s.Module("designModule")
	cdm := s.Module("conditionsModule")
	spm := s.Module("sponsorCollaboratorsModule")
	clm := s.Module("contactsLocationsModule")

	title := GetString(idm, "officialTitle")
	if title == "" {
		title = GetString(idm, "briefTitle")
	}
	nct := GetString(idm, "nctId")

	var phases []string
	for _, p := range EnsureStrings(dsm["phases"]) {
		phases = append(phases, FormatPhase(p))
	}

	sponsor := ""
	if lead, ok := spm["leadSponsor"].(map[string]interface{}); ok {
		sponsor = GetString(lead, "name")
	}

	site := ""
	if locs := EnsureList(clm["locations"]); len(locs) > 0 {
		// Representative site only; the full list stays in the raw record.
		if first, ok := locs[0].(map[string]interface{}); ok {
			site = joinNonEmpty(", ",
				GetString(first, "locationCity"),
				GetString(first, "locationCountry"))
		}
	}

	return types.Row{
		Title:      title,
		NCTID:      nct,
		URL:        StudyURL(nct),
		Status:     FormatStatus(GetString(scm, "overallStatus")),
		Phases:     strings.Join(phases, ", "),
		Conditions: strings.Join(EnsureStrings(cdm["conditions"]), ", "),
		Sponsor:    sponsor,
		Site:       site,
	}
}

// FormatPhase renders a registry phase code for display: "PHASE2" becomes
// "Phase 2" and "PHASE1/2" keeps the embedded slash as "Phase 1/2".
// Codes outside the PHASE family ("NA", "EARLY_PHASE1") are titlecased.
func FormatPhase(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	up := strings.ToUpper(code)
	if rest := strings.TrimPrefix(up, "PHASE"); rest != up {
		return "Phase " + strings.TrimSpace(rest)
	}
	return titleWords(strings.ReplaceAll(up, "_", " "))
}

// FormatStatus renders a registry status code for display:
// "NOT_YET_RECRUITING" becomes "Not Yet Recruiting".
func FormatStatus(code string) string {
	if code == "" {
		return ""
	}
	return titleWords(strings.ReplaceAll(code, "_", " "))
}

// SiteLine renders one location object as "facility, city, country",
// omitting empty parts.
func SiteLine(loc map[string]interface{}) string {
	return joinNonEmpty(", ",
		GetString(loc, "locationFacility"),
		GetString(loc, "locationCity"),
		GetString(loc, "locationCountry"))
}

// titleWords lowercases a string and capitalizes the first letter of each
// space-separated word.
func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
