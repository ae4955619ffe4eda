// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prazg/brain-trials-finder/internal/export"
	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/terms"
	"github.com/prazg/brain-trials-finder/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search ClinicalTrials.gov for scored neuro-oncology trials",
	Long: `Search queries ClinicalTrials.gov once per diagnosis synonym and keyword,
merges the results by NCT identifier, scores each trial against the patient
parameters, and prints the ranked list. Results can additionally be written
to CSV, JSON, or a YAML snapshot reloadable without re-querying.

Known diagnosis categories: ` + strings.Join(terms.Categories(), ", ") + `, Other.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd)
		cfg := registryConfig(cmd)
		intake := intakeFromFlags(cmd)

		fetcher, closeFetcher, err := newFetcher(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer closeFetcher()

		res := pipeline.FetchFiltered(cmd.Context(), fetcher, intake, log)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			if err := export.WriteJSON(os.Stdout, res.Rows); err != nil {
				return err
			}
		} else {
			export.FormatTable(res, os.Stdout)
		}

		return writeOutputs(cmd, intake, cfg, res)
	},
}

// intakeFromFlags assembles the patient intake from the search flags. The
// core takes this structure explicitly; nothing downstream reads flag
// state.
func intakeFromFlags(cmd *cobra.Command) types.Intake {
	diagnosis, _ := cmd.Flags().GetString("diagnosis")
	keywords, _ := cmd.Flags().GetString("keywords")
	setting, _ := cmd.Flags().GetString("setting")
	priorBev, _ := cmd.Flags().GetBool("prior-bev")
	country, _ := cmd.Flags().GetString("country")
	requireCountry, _ := cmd.Flags().GetBool("require-country")
	contacts, _ := cmd.Flags().GetBool("contacts")

	intake := types.Intake{
		Diagnosis:        diagnosis,
		Setting:          types.Setting(setting),
		PriorBevacizumab: priorBev,
		Keywords:         keywords,
		Country:          country,
		RequireCountry:   requireCountry,
		IncludeContacts:  contacts,
	}
	if cmd.Flags().Changed("age") {
		age, _ := cmd.Flags().GetInt("age")
		intake.Age = &age
	}
	if cmd.Flags().Changed("kps") {
		kps, _ := cmd.Flags().GetInt("kps")
		intake.KPS = &kps
	}
	return intake
}

// writeOutputs writes the optional CSV/JSON/snapshot files.
func writeOutputs(cmd *cobra.Command, intake types.Intake, cfg types.RegistryConfig, res pipeline.Result) error {
	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export.WriteCSV(f, res.Rows); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d studies to %s\n", len(res.Rows), path)
	}

	if path, _ := cmd.Flags().GetString("json-out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export.WriteJSON(f, res.Rows); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d studies to %s\n", len(res.Rows), path)
	}

	if path, _ := cmd.Flags().GetString("snapshot"); path != "" {
		if err := export.WriteSnapshot(path, intake, cfg, res); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote snapshot to %s\n", path)
	}

	return nil
}

// addIntakeFlags registers the patient/query flags shared by search and uk.
func addIntakeFlags(cmd *cobra.Command) {
	cmd.Flags().String("diagnosis", "Glioblastoma", "primary diagnosis category, or free text")
	cmd.Flags().String("keywords", "", "extra keywords (comma-separated) to refine the search")
	cmd.Flags().Int("age", 55, "patient age (years)")
	cmd.Flags().Int("kps", 80, "Karnofsky Performance Status (40-100)")
	cmd.Flags().Bool("prior-bev", false, "indicate prior bevacizumab exposure")
	cmd.Flags().String("setting", string(types.SettingRecurrent), "disease setting: \"Newly Diagnosed\" or \"Recurrent\"")
	cmd.Flags().Int("page-size", 100, "results per page per term (max 1000)")
	cmd.Flags().Int("pages", 5, "max pages to fetch per term")
	cmd.Flags().String("cache", "", "SQLite cache file for fetch results")
	cmd.Flags().String("csv", "", "CSV output path")
	cmd.Flags().String("json-out", "", "JSON output path")
	cmd.Flags().String("snapshot", "", "YAML search snapshot path")
	cmd.Flags().Bool("contacts", false, "show each trial's contacts and locations")
	cmd.Flags().Bool("json", false, "print results as JSON instead of a table")
}

func init() {
	addIntakeFlags(searchCmd)
	searchCmd.Flags().String("country", "", "restrict displayed site to countries containing this text")
	searchCmd.Flags().Bool("require-country", false, "drop trials with no site in the given country")

	rootCmd.AddCommand(searchCmd)
}
