// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders scored rows for files and terminals: CSV and
// JSON result exports, a YAML search snapshot that can be reloaded without
// re-querying the registry, and a width-aware text table.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/prazg/brain-trials-finder/pkg/types"
)

// csvHeader is the stable CSV column order.
var csvHeader = []string{
	"score", "title", "nct", "url", "status",
	"phases", "conditions", "sponsor", "site", "reasons",
}

// WriteCSV writes rows as CSV with a fixed header order. The reasons list
// is joined with "; " into one cell.
func WriteCSV(w io.Writer, rows []types.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Score),
			r.Title,
			r.NCTID,
			r.URL,
			r.Status,
			r.Phases,
			r.Conditions,
			r.Sponsor,
			r.Site,
			strings.Join(r.Reasons, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes rows as indented JSON.
func WriteJSON(w io.Writer, rows []types.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
