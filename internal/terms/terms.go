// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package terms turns a diagnosis selection and free-text keywords into the
// list of registry search terms. Each term is submitted to the registry as
// an independent query and the results merged, rather than as one
// OR-combined expression: the registry's free-text search does not reliably
// tokenize compound boolean queries, and separate queries maximize recall.
package terms

import (
	"sort"
	"strings"
)

// DiagnosisTerms maps each known diagnosis category to its curated synonym
// list. Synonyms double as registry search terms and as the scorer's
// diagnosis-match vocabulary.
var DiagnosisTerms = map[string][]string{
	"Glioblastoma":           {"glioblastoma", "GBM", "glioblastoma multiforme"},
	"Diffuse midline glioma": {"diffuse midline glioma", "DMG", "H3 K27M"},
	"Anaplastic astrocytoma": {"anaplastic astrocytoma", "grade 3 astrocytoma"},
	"Astrocytoma":            {"astrocytoma", "grade 2 astrocytoma", "grade 4 astrocytoma"},
	"Oligodendroglioma":      {"oligodendroglioma", "1p19q codeleted"},
	"Meningioma":             {"meningioma"},
	"Medulloblastoma":        {"medulloblastoma"},
	"Ependymoma":             {"ependymoma"},
	"Spinal cord tumor":      {"spinal cord tumor", "spinal cord neoplasm"},
}

// BroadTerms is the fallback set used when the diagnosis is unset, "Other",
// or not a known category.
var BroadTerms = []string{"brain tumor", "spinal cord tumor", "CNS tumor"}

// Categories returns the known diagnosis category names, sorted.
func Categories() []string {
	names := make([]string, 0, len(DiagnosisTerms))
	for name := range DiagnosisTerms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the ordered, distinct search terms for one query: the
// diagnosis category's synonyms (or the broad fallback set), followed by
// the comma-split user keywords in input order. Empty keywords are dropped.
func Build(diagnosis, keywords string) []string {
	var out []string
	if syns, ok := DiagnosisTerms[diagnosis]; ok {
		out = append(out, syns...)
	} else {
		out = append(out, BroadTerms...)
	}
	for _, kw := range SplitKeywords(keywords) {
		if !contains(out, kw) {
			out = append(out, kw)
		}
	}
	return out
}

// SplitKeywords splits a comma-separated keyword string, trimming
// whitespace and dropping empties, preserving input order.
func SplitKeywords(keywords string) []string {
	var out []string
	for _, k := range strings.Split(keywords, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
