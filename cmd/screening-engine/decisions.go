package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/screen"
	"github.com/pdiddy/screening-engine/internal/store"
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Import and inspect AI screening decisions",
	Long: `Decisions ingests the JSON results the screening model returns (one
verdict per citation with confidence, reasoning, and matched criteria)
and lists what has been recorded. Decisions referencing citations not
in the corpus are rejected individually; the rest of the batch still
lands.`,
}

var decisionsImportCmd = &cobra.Command{
	Use:   "import [results.json]",
	Short: "Import a screening-results JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecisionsImport,
}

func runDecisionsImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	decisions, warnings, err := screen.ParseResults(data)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stdout, "warning: %s\n", w)
	}

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.InsertDecisions(context.Background(), decisions)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "decisions: %d new, %d already present", summary.Inserted, summary.Existing)
	if len(summary.Rejected) > 0 {
		fmt.Fprintf(os.Stdout, ", %d rejected (unknown citations: %s)",
			len(summary.Rejected), strings.Join(summary.Rejected, ", "))
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

var decisionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored screening decisions",
	RunE:  runDecisionsList,
}

func runDecisionsList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	citationID, _ := cmd.Flags().GetString("citation")

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	var filter []string
	if citationID != "" {
		filter = []string{citationID}
	}
	decisions, err := s.ListDecisions(context.Background(), filter)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decisions)
	}

	if len(decisions) == 0 {
		fmt.Fprintln(os.Stdout, "No decisions recorded.")
		return nil
	}
	for _, d := range decisions {
		fmt.Fprintf(os.Stdout, "%-16s  %-16s  %-9s  %-6s  %s\n",
			d.ID, d.CitationID, d.Verdict, d.Confidence, truncate(d.Rationale, 60))
	}
	fmt.Fprintf(os.Stdout, "\n%d decisions\n", len(decisions))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	decisionsListCmd.Flags().Bool("json", false, "output decisions as JSON")
	decisionsListCmd.Flags().String("citation", "", "filter by citation ID")

	decisionsCmd.AddCommand(decisionsImportCmd)
	decisionsCmd.AddCommand(decisionsListCmd)
	rootCmd.AddCommand(decisionsCmd)
}
