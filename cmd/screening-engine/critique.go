package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/critic"
	"github.com/pdiddy/screening-engine/internal/store"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var critiqueCmd = &cobra.Command{
	Use:   "critique",
	Short: "Check screening decisions for internal consistency",
	Long: `Critique runs consistency checks over the recorded screening
decisions: conflicting verdicts on the same citation, inclusions that
do not cover the required criteria, unsupported exclusions, rationales
that barely touch the abstract, mismatched confidence, inconsistent
exclusion wording, and skewed inclusion rates across formats and
journals.

Findings are advisory. Nothing here changes a decision; the report
flags candidates for human review.`,
	RunE: runCritique,
}

func runCritique(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	cfg := criticConfigFromFlags(cmd)

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	criteria, _, err := s.GetCriteria(ctx)
	if err != nil {
		return err
	}
	decisions, err := s.ListDecisions(ctx, nil)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		return fmt.Errorf("no decisions recorded; use 'screening-engine decisions import'")
	}
	citations, err := s.ListCitations(ctx, 0)
	if err != nil {
		return err
	}

	findings := critic.New(cfg).Critique(criteria, decisions, citations)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	if len(findings) == 0 {
		fmt.Fprintln(os.Stdout, "No inconsistencies found.")
		return nil
	}
	for _, f := range findings {
		where := f.Stratum
		if where == "" && len(f.CitationIDs) > 0 {
			where = f.CitationIDs[0]
		}
		fmt.Fprintf(os.Stdout, "%-24s  %-24s  %s\n", f.Kind, where, f.Explanation)
	}
	fmt.Fprintf(os.Stdout, "\n%d findings over %d decisions\n", len(findings), len(decisions))
	return nil
}

func criticConfigFromFlags(cmd *cobra.Command) types.CriticConfig {
	similarity, _ := cmd.Flags().GetFloat64("similarity-threshold")
	skew, _ := cmd.Flags().GetFloat64("skew-threshold")
	minStratum, _ := cmd.Flags().GetInt("min-stratum-size")
	wording, _ := cmd.Flags().GetFloat64("wording-threshold")
	return types.CriticConfig{
		SimilarityThreshold: similarity,
		SkewThreshold:       skew,
		MinStratumSize:      minStratum,
		WordingThreshold:    wording,
	}
}

func init() {
	critiqueCmd.Flags().Float64("similarity-threshold", 0, "minimum rationale/abstract overlap before WEAK_EVIDENCE fires (default 0.1)")
	critiqueCmd.Flags().Float64("skew-threshold", 0, "maximum stratum inclusion-rate deviation (default 0.25)")
	critiqueCmd.Flags().Int("min-stratum-size", 0, "smallest stratum considered for skew analysis (default 5)")
	critiqueCmd.Flags().Float64("wording-threshold", 0, "similarity above which exclusion wording counts as drifted (default 0.7)")
	critiqueCmd.Flags().Bool("json", false, "output findings as JSON")

	rootCmd.AddCommand(critiqueCmd)
}
