package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/screening-engine/internal/ingest"
	"github.com/pdiddy/screening-engine/internal/store"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import [files...]",
	Short: "Import citation export files into the review corpus",
	Long: `Import detects each file's format (MEDLINE, RIS, CSV, PubMed XML, or
EndNote XML), parses it, and stores the normalized citations. Files are
processed concurrently; a file with an unknown format fails alone and
the rest of the batch continues. Malformed records are skipped with
warnings, never aborting their file.

Re-importing a file is a no-op: citation identity is derived from the
record content, so identical records land on their existing rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = viper.GetInt("workers")
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	batch := ingest.ImportFiles(args, types.IngestConfig{Workers: workers})

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			return err
		}
	} else {
		for _, f := range batch.Files {
			if f.Err != nil {
				fmt.Fprintf(os.Stdout, "failed   %s: %v\n", f.Path, f.Err)
				continue
			}
			fmt.Fprintf(os.Stdout, "imported %s: %d citations (%s), %d warnings\n",
				f.Path, len(f.Citations), f.Format, len(f.Warnings))
			for _, w := range f.Warnings {
				fmt.Fprintf(os.Stdout, "  warning: %s\n", w)
			}
		}
	}

	if !dryRun && len(batch.Citations) > 0 {
		s, err := store.Open(storeConfig(cmd))
		if err != nil {
			return err
		}
		defer s.Close()

		summary, err := s.UpsertCitations(context.Background(), batch.Citations)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nstored: %d new, %d already present\n", summary.Inserted, summary.Existing)
	}

	if failed := batch.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d file(s) failed to import", len(failed))
	}
	return nil
}

func init() {
	importCmd.Flags().Int("workers", 0, "number of files parsed concurrently (default 4)")
	importCmd.Flags().Bool("dry-run", false, "parse and report without writing to the store")
	importCmd.Flags().Bool("json", false, "output the batch result as JSON")

	rootCmd.AddCommand(importCmd)
}
