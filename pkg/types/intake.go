// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Setting is the disease setting at the time of the search.
type Setting string

const (
	SettingNewlyDiagnosed Setting = "Newly Diagnosed"
	SettingRecurrent      Setting = "Recurrent"
)

// Is reports whether the setting equals other, ignoring case. Presentation
// layers have historically used both "Newly Diagnosed" and "Newly diagnosed".
func (s Setting) Is(other Setting) bool {
	return strings.EqualFold(string(s), string(other))
}

// Intake holds the patient-side query parameters for one search. It is
// built by a presentation layer at query time, passed explicitly through
// the pipeline, and never persisted. Scoring functions take an Intake
// parameter instead of reading ambient state.
type Intake struct {
	// Age is the patient age in years. Nil means unknown.
	Age *int `json:"age,omitempty" yaml:"age,omitempty"`

	// KPS is the Karnofsky Performance Status (40-100, steps of 10).
	// Nil means unknown; an unknown KPS never satisfies a trial's
	// performance-status requirement.
	KPS *int `json:"kps,omitempty" yaml:"kps,omitempty"`

	// Diagnosis is a known category name (see terms.DiagnosisTerms),
	// "Other", or free text.
	Diagnosis string `json:"diagnosis" yaml:"diagnosis"`

	// Setting is Newly Diagnosed or Recurrent.
	Setting Setting `json:"setting" yaml:"setting"`

	// PriorBevacizumab indicates prior bevacizumab exposure.
	PriorBevacizumab bool `json:"prior_bevacizumab" yaml:"prior_bevacizumab"`

	// Keywords is the comma-separated user keyword list.
	Keywords string `json:"keywords" yaml:"keywords"`

	// Country restricts displayed sites to countries containing this text
	// (case-insensitive). Empty disables the filter.
	Country string `json:"country,omitempty" yaml:"country,omitempty"`

	// RequireCountry drops trials with no site matching Country.
	RequireCountry bool `json:"require_country,omitempty" yaml:"require_country,omitempty"`

	// IncludeContacts populates each row's contacts/locations detail.
	IncludeContacts bool `json:"include_contacts,omitempty" yaml:"include_contacts,omitempty"`
}

// IntPtr is a convenience for building Intake literals.
func IntPtr(v int) *int { return &v }
