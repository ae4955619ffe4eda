// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/registry"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

// Snapshot is the on-disk representation of one search and its results.
// A search can be saved and reloaded later without re-querying the
// registry.
type Snapshot struct {
	Intake  types.Intake         `yaml:"intake"`
	Config  types.RegistryConfig `yaml:"config"`
	Rows    []types.Row          `yaml:"rows"`
	Summary Summary              `yaml:"summary"`
}

// Summary stores result statistics and a timestamp.
type Summary struct {
	TotalRaw   int                  `yaml:"total_raw"`
	Shown      int                  `yaml:"shown"`
	Skipped    []types.SkipRecord   `yaml:"skipped,omitempty"`
	TermErrors []registry.TermError `yaml:"term_errors,omitempty"`
	Timestamp  time.Time            `yaml:"timestamp"`
}

// WriteSnapshot saves a search result to a YAML file.
func WriteSnapshot(path string, intake types.Intake, cfg types.RegistryConfig, res pipeline.Result) error {
	snap := Snapshot{
		Intake: intake,
		Config: cfg,
		Rows:   res.Rows,
		Summary: Summary{
			TotalRaw:   res.TotalRaw,
			Shown:      len(res.Rows),
			Skipped:    res.Skipped,
			TermErrors: res.TermErrors,
			Timestamp:  time.Now(),
		},
	}

	data, err := yaml.Marshal(&snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", path, err)
	}
	return nil
}

// ReadSnapshot loads a previously saved search.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snap, nil
}
