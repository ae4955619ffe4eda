// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/registry"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

func sampleRows() []types.Row {
	return []types.Row{
		{
			Score:      53,
			Title:      "A Vaccine Trial for Recurrent Glioblastoma",
			NCTID:      "NCT01234567",
			URL:        "https://clinicaltrials.gov/study/NCT01234567",
			Status:     "Recruiting",
			Phases:     "Phase 3",
			Conditions: "Glioblastoma",
			Sponsor:    "Example University",
			Site:       "London, United Kingdom",
			Reasons:    []string{"Matches diagnosis: Glioblastoma"},
		},
		{
			Score:  0,
			Title:  "Unrelated Study, With Comma",
			NCTID:  "NCT07654321",
			URL:    "https://clinicaltrials.gov/study/NCT07654321",
			Status: "Not Yet Recruiting",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "53", records[1][0])
	assert.Equal(t, "NCT01234567", records[1][2])
	assert.Equal(t, "Matches diagnosis: Glioblastoma", records[1][9])
	// Embedded commas survive the round trip.
	assert.Equal(t, "Unrelated Study, With Comma", records[2][1])
	assert.Equal(t, "", records[2][9])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRows()))

	var rows []types.Row
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, 53, rows[0].Score)
	assert.Equal(t, []string{"Matches diagnosis: Glioblastoma"}, rows[0].Reasons)
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	intake := types.Intake{
		Diagnosis: "Glioblastoma",
		Age:       types.IntPtr(55),
		KPS:       types.IntPtr(80),
		Setting:   types.SettingRecurrent,
		Keywords:  "vaccine",
	}
	cfg := types.RegistryConfig{Statuses: types.DefaultStatuses, PageSize: 100, MaxPages: 5}
	res := pipeline.Result{
		Rows:     sampleRows(),
		TotalRaw: 12,
		Skipped:  []types.SkipRecord{{NCTID: "NCT09999999", Reason: "malformed record: bad shape"}},
		TermErrors: []registry.TermError{
			{Term: "GBM", Err: "status 503"},
		},
	}

	require.NoError(t, WriteSnapshot(path, intake, cfg, res))

	snap, err := ReadSnapshot(path)
	require.NoError(t, err)

	assert.Equal(t, intake, snap.Intake)
	assert.Equal(t, cfg, snap.Config)
	require.Len(t, snap.Rows, 2)
	assert.Equal(t, res.Rows[0], snap.Rows[0])
	assert.Equal(t, 12, snap.Summary.TotalRaw)
	assert.Equal(t, 2, snap.Summary.Shown)
	require.Len(t, snap.Summary.Skipped, 1)
	assert.Equal(t, "NCT09999999", snap.Summary.Skipped[0].NCTID)
	require.Len(t, snap.Summary.TermErrors, 1)
	assert.False(t, snap.Summary.Timestamp.IsZero())
}

func TestReadSnapshotMissingFile(t *testing.T) {
	_, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading snapshot")
}

func TestFormatTable(t *testing.T) {
	res := pipeline.Result{Rows: sampleRows(), TotalRaw: 12}

	var buf bytes.Buffer
	FormatTable(res, &buf)
	out := buf.String()

	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "NCT01234567")
	assert.Contains(t, out, "- Matches diagnosis: Glioblastoma")
	assert.Contains(t, out, "Fetched 12 trials; showing 2 after filters.")
	assert.NotContains(t, out, "Skipped")
	assert.NotContains(t, out, "terms failed")
}

func TestFormatTableTruncatesByDisplayWidth(t *testing.T) {
	long := strings.Repeat("x", titleWidth+40)
	res := pipeline.Result{
		Rows:     []types.Row{{Score: 10, Title: long, NCTID: "NCT01234567"}},
		TotalRaw: 1,
	}

	var buf bytes.Buffer
	FormatTable(res, &buf)

	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "...")
}

func TestFormatTableEmpty(t *testing.T) {
	res := pipeline.Result{
		TotalRaw: 9,
		Skipped:  []types.SkipRecord{{NCTID: "NCT09999999", Reason: "malformed record"}},
		TermErrors: []registry.TermError{
			{Term: "GBM", Err: "status 503"},
			{Term: "glioblastoma", Err: "status 503"},
		},
	}

	var buf bytes.Buffer
	FormatTable(res, &buf)
	out := buf.String()

	assert.Contains(t, out, "No studies found.")
	assert.Contains(t, out, "Fetched 9 trials; showing 0 after filters.")
	assert.Contains(t, out, "Skipped 1.")
	assert.Contains(t, out, "2 search terms failed.")
}
