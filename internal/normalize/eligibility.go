// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "github.com/prazg/brain-trials-finder/pkg/types"

// Eligibility holds the coerced eligibility fields of one study.
type Eligibility struct {
	// Criteria is the free-text inclusion/exclusion criteria.
	Criteria string

	// MinAge and MaxAge are the stated age bounds in years; nil means no
	// extractable bound.
	MinAge *int
	MaxAge *int
}

// ExtractEligibility pulls the eligibility module out of a study. The
// module may be an object with an eligibilityCriteria or criteria field, a
// plain string, or missing entirely; all shapes coerce without failing.
func ExtractEligibility(s types.Study) Eligibility {
	var e Eligibility

	raw := s.Protocol()["eligibilityModule"]
	switch m := raw.(type) {
	case map[string]interface{}:
		e.Criteria = AsText(m["eligibilityCriteria"])
		if e.Criteria == "" {
			e.Criteria = AsText(m["criteria"])
		}
		if e.Criteria == "" {
			e.Criteria = AsText(m)
		}
		e.MinAge = ParseAge(m["minimumAge"])
		e.MaxAge = ParseAge(m["maximumAge"])
	case string:
		e.Criteria = m
	}

	return e
}
