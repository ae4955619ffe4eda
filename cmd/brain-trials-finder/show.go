// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/prazg/brain-trials-finder/internal/export"
	"github.com/prazg/brain-trials-finder/internal/pipeline"
)

var showCmd = &cobra.Command{
	Use:   "show <snapshot.yaml>",
	Short: "Display a saved search snapshot without re-querying the registry",
	Long: `Show renders the results stored in a YAML snapshot written by
search --snapshot, exactly as the original search printed them. The
registry is never contacted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return runShow(args[0], asJSON, os.Stdout)
	},
}

// runShow loads a snapshot and renders it to w.
func runShow(path string, asJSON bool, w io.Writer) error {
	snap, err := export.ReadSnapshot(path)
	if err != nil {
		return err
	}

	if asJSON {
		return export.WriteJSON(w, snap.Rows)
	}

	fmt.Fprintf(w, "Snapshot saved %s (diagnosis: %s)\n\n",
		snap.Summary.Timestamp.Format("2006-01-02 15:04"), snap.Intake.Diagnosis)
	export.FormatTable(pipeline.Result{
		Rows:       snap.Rows,
		TotalRaw:   snap.Summary.TotalRaw,
		Skipped:    snap.Summary.Skipped,
		TermErrors: snap.Summary.TermErrors,
	}, w)
	return nil
}

func init() {
	showCmd.Flags().Bool("json", false, "print results as JSON instead of a table")

	rootCmd.AddCommand(showCmd)
}
