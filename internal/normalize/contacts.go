// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// ContactLines renders the contacts/locations detail of one study as
// indented text lines: central contacts, overall officials, then every
// site with its per-site contacts. Presentation layers show this under a
// selected row. Like the rest of the package it tolerates any missing or
// malformed sub-field.
func ContactLines(s types.Study) []string {
	clm := s.Module("contactsLocationsModule")
	var lines []string

	if centrals := EnsureList(clm["centralContacts"]); len(centrals) > 0 {
		lines = append(lines, "Central Contacts:")
		for _, c := range centrals {
			m, _ := c.(map[string]interface{})
			if line := joinNonEmpty(" | ",
				GetString(m, "name"), GetString(m, "role"),
				GetString(m, "phone"), GetString(m, "email")); line != "" {
				lines = append(lines, "  - "+line)
			}
		}
	}

	if officials := EnsureList(clm["overallOfficials"]); len(officials) > 0 {
		lines = append(lines, "Overall Officials:")
		for _, o := range officials {
			m, _ := o.(map[string]interface{})
			if line := joinNonEmpty(" | ",
				GetString(m, "name"), GetString(m, "role"),
				GetString(m, "affiliation")); line != "" {
				lines = append(lines, "  - "+line)
			}
		}
	}

	if locs := EnsureList(clm["locations"]); len(locs) > 0 {
		lines = append(lines, "Locations:")
		for _, l := range locs {
			m, _ := l.(map[string]interface{})
			site := joinNonEmpty(", ",
				GetString(m, "locationFacility"), GetString(m, "locationCity"),
				GetString(m, "locationState"), GetString(m, "locationCountry"))
			if site != "" {
				if status := GetString(m, "status"); status != "" {
					lines = append(lines, "  - "+site+" (status: "+status+")")
				} else {
					lines = append(lines, "  - "+site)
				}
			}
			contacts := EnsureList(m["contacts"])
			if len(contacts) == 0 {
				contacts = EnsureList(m["locationContacts"])
			}
			for _, c := range contacts {
				cm, _ := c.(map[string]interface{})
				if line := joinNonEmpty(" | ",
					GetString(cm, "name"), GetString(cm, "role"),
					GetString(cm, "phone"), GetString(cm, "email")); line != "" {
					lines = append(lines, "      * "+line)
				}
			}
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "No contacts/locations provided by sponsor at this time.")
	}
	return lines
}
