// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes a heuristic eligibility score for one trial
// against one patient intake. The matching is keyword and regex
// heuristics over the registry's structured and free-text fields, not
// clinical NLP; the score orders candidates for human review, it does not
// decide eligibility.
package score

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/prazg/brain-trials-finder/internal/normalize"
	"github.com/prazg/brain-trials-finder/internal/terms"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// Score deltas. Additive over all matching rules, clamped to [0, 100].
const (
	diagnosisBonus   = 30
	phase2Bonus      = 8
	phase3Bonus      = 12
	settingBonus     = 8
	keywordBonus     = 3
	agePenalty       = 30
	ecogPenalty      = 15
	kpsPenalty       = 10
	priorBevPenalty  = 25
	ecogKPSThreshold = 80
	kpsThreshold     = 70
)

// mentionPatterns caches compiled whole-word patterns; scoring reuses the
// same handful of terms across thousands of records.
var mentionPatterns sync.Map

// Mentions reports whether txt contains term as a case-insensitive whole
// word. Substring hits inside longer words do not count: "recurrent" does
// not match "nonrecurrent".
func Mentions(txt, term string) bool {
	if txt == "" || term == "" {
		return false
	}
	pat, ok := mentionPatterns.Load(term)
	if !ok {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if err != nil {
			return false
		}
		pat, _ = mentionPatterns.LoadOrStore(term, re)
	}
	return pat.(*regexp.Regexp).MatchString(txt)
}

// diagnosisTerms returns the synonym set the diagnosis-match rule uses:
// the curated list for a known category, the raw string for free text, and
// the broad CNS set otherwise.
func diagnosisTerms(diagnosis string) []string {
	if syns, ok := terms.DiagnosisTerms[diagnosis]; ok {
		return syns
	}
	if diagnosis != "" && diagnosis != "Other" {
		return []string{diagnosis}
	}
	return []string{"brain tumor", "CNS tumor", "spinal cord tumor"}
}

// Trial scores one study against an intake and returns the clamped score
// with the reasons list. Reasons are appended in fixed rule order;
// downstream consumers rely on that order and it is never re-sorted.
//
// Missing intake fields never satisfy a requirement: an unknown KPS takes
// the performance-status penalties, an unknown age takes neither age
// penalty (the registry bound cannot be compared against nothing).
func Trial(s types.Study, intake types.Intake) (int, []string) {
	diagTerms := diagnosisTerms(intake.Diagnosis)

	elig := normalize.ExtractEligibility(s)
	crit := elig.Criteria

	var phasesUp []string
	for _, p := range normalize.EnsureStrings(s.Module("designModule")["phases"]) {
		phasesUp = append(phasesUp, strings.ToUpper(p))
	}
	conditions := normalize.EnsureStrings(s.Module("conditionsModule")["conditions"])
	title := s.BriefTitle()

	total := 0
	var reasons []string

	if anyMentions(conditions, diagTerms) || mentionsAnyTerm(title, diagTerms) {
		total += diagnosisBonus
		name := intake.Diagnosis
		if name == "" {
			name = "neuro-oncology"
		}
		reasons = append(reasons, fmt.Sprintf("Matches diagnosis: %s", name))
	}

	if containsPhase(phasesUp, "2") {
		total += phase2Bonus
	}
	if containsPhase(phasesUp, "3") {
		total += phase3Bonus
	}

	if elig.MinAge != nil && intake.Age != nil && *intake.Age < *elig.MinAge {
		reasons = append(reasons, fmt.Sprintf("Age below minimum (%d)", *elig.MinAge))
		total -= agePenalty
	}
	if elig.MaxAge != nil && intake.Age != nil && *intake.Age > *elig.MaxAge {
		reasons = append(reasons, fmt.Sprintf("Age above maximum (%d)", *elig.MaxAge))
		total -= agePenalty
	}

	if Mentions(crit, "ECOG 0-1") && !kpsAtLeast(intake.KPS, ecogKPSThreshold) {
		total -= ecogPenalty
		reasons = append(reasons, "Requires ECOG 0–1 (KPS ~≥80)")
	}
	if Mentions(crit, "Karnofsky") && !kpsAtLeast(intake.KPS, kpsThreshold) {
		total -= kpsPenalty
		reasons = append(reasons, "Requires KPS ≥70")
	}

	if intake.PriorBevacizumab && Mentions(crit, "no prior bevacizumab") {
		total -= priorBevPenalty
		reasons = append(reasons, "Excludes prior bevacizumab")
	}

	if intake.Setting.Is(types.SettingRecurrent) && Mentions(crit, "recurrent") {
		total += settingBonus
	}
	if intake.Setting.Is(types.SettingNewlyDiagnosed) &&
		(Mentions(crit, "newly diagnosed") || Mentions(title, "adjuvant")) {
		total += settingBonus
	}

	for _, kw := range terms.SplitKeywords(intake.Keywords) {
		if Mentions(title, kw) || Mentions(crit, kw) {
			total += keywordBonus
		}
	}

	return clamp(total), reasons
}

// anyMentions reports whether any of the texts mentions any of the terms.
func anyMentions(texts, terms []string) bool {
	for _, txt := range texts {
		if mentionsAnyTerm(txt, terms) {
			return true
		}
	}
	return false
}

// mentionsAnyTerm reports whether txt mentions at least one of the terms.
func mentionsAnyTerm(txt string, terms []string) bool {
	for _, term := range terms {
		if Mentions(txt, term) {
			return true
		}
	}
	return false
}

// containsPhase matches the raw registry phase codes ("PHASE2" or
// "PHASE 2"), not the display rendering.
func containsPhase(phasesUp []string, digit string) bool {
	for _, p := range phasesUp {
		if strings.Contains(p, "PHASE "+digit) || strings.Contains(p, "PHASE"+digit) {
			return true
		}
	}
	return false
}

// kpsAtLeast reports whether a known KPS meets the threshold. Unknown
// never satisfies the requirement.
func kpsAtLeast(kps *int, threshold int) bool {
	return kps != nil && *kps >= threshold
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
