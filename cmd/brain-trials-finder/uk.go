// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prazg/brain-trials-finder/internal/export"
	"github.com/prazg/brain-trials-finder/internal/pipeline"
	"github.com/prazg/brain-trials-finder/internal/portal"
)

var ukCmd = &cobra.Command{
	Use:   "uk",
	Short: "Search for trials with at least one United Kingdom site",
	Long: `UK runs the same scored search restricted to trials recruiting at a UK
site, showing the first UK site for each trial. It also prints search
shortcuts for the UK portals that have no queryable API (NIHR Be Part of
Research, ISRCTN, Cancer Research UK).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(cmd)
		cfg := registryConfig(cmd)
		intake := intakeFromFlags(cmd)

		fetcher, closeFetcher, err := newFetcher(cmd, cfg, log)
		if err != nil {
			return err
		}
		defer closeFetcher()

		res := pipeline.FetchUK(cmd.Context(), fetcher, intake, log)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			if err := export.WriteJSON(os.Stdout, res.Rows); err != nil {
				return err
			}
		} else {
			export.FormatTable(res, os.Stdout)
			printPortals(cmd)
		}

		return writeOutputs(cmd, intake, cfg, res)
	},
}

func printPortals(cmd *cobra.Command) {
	diagnosis, _ := cmd.Flags().GetString("diagnosis")
	keywords, _ := cmd.Flags().GetString("keywords")
	location, _ := cmd.Flags().GetString("uk-location")
	q := portal.Query(diagnosis, keywords)

	fmt.Println("\nUK portal shortcuts:")
	fmt.Println("  NIHR:   ", portal.NIHRURL(q, location))
	fmt.Println("  ISRCTN: ", portal.ISRCTNURL(q))
	fmt.Println("  CRUK:   ", portal.CRUKURL(q))
}

func init() {
	addIntakeFlags(ukCmd)
	ukCmd.Flags().String("uk-location", "", "town/postcode for the NIHR portal link")

	rootCmd.AddCommand(ukCmd)
}
