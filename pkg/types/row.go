// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Row is the normalized, presentation-ready projection of one trial plus
// its eligibility score. One Row per surviving Study; consumed only by
// presentation layers (CLI table, CSV/JSON export, HTTP API).
type Row struct {
	// Score is the eligibility heuristic score in [0, 100].
	Score int `json:"score" yaml:"score"`

	// Title prefers the official title, falling back to the brief title.
	Title string `json:"title" yaml:"title"`

	// NCTID is the registry identifier, or "" when the record has none.
	NCTID string `json:"nct" yaml:"nct"`

	// URL is the study page on the registry, or "" without an NCTID.
	URL string `json:"url" yaml:"url"`

	// Status is the display lifecycle state (e.g. "Not Yet Recruiting").
	Status string `json:"status" yaml:"status"`

	// Phases is the joined display phase list (e.g. "Phase 1/2, Phase 2").
	Phases string `json:"phases" yaml:"phases"`

	// Conditions is the joined condition list.
	Conditions string `json:"conditions" yaml:"conditions"`

	// Sponsor is the lead sponsor name.
	Sponsor string `json:"sponsor" yaml:"sponsor"`

	// Site is a representative site ("facility, city, country" or
	// "city, country"), not the full location list.
	Site string `json:"site" yaml:"site"`

	// Reasons explains score penalties and the diagnosis match, in rule
	// order. Consumers rely on this ordering.
	Reasons []string `json:"reasons" yaml:"reasons"`

	// Contacts is the contacts/locations detail, populated only when the
	// intake asks for it.
	Contacts []string `json:"contacts,omitempty" yaml:"contacts,omitempty"`
}

// SkipRecord identifies one study dropped during normalization or scoring,
// with the reason it was dropped. A bad record never aborts the batch; it
// lands here instead.
type SkipRecord struct {
	NCTID  string `json:"nct" yaml:"nct"`
	Reason string `json:"reason" yaml:"reason"`
}
