package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/store"
	"github.com/pdiddy/screening-engine/internal/validate"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the stored corpus for data-quality problems",
	Long: `Validate runs data-quality checks over every stored citation: missing
titles or abstracts, implausible publication years, shared DOIs, and
likely duplicates by title, year, and first author. Issues are
reported, never fixed up; use the report to decide what to clean before
screening.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	citations, err := s.ListCitations(context.Background(), 0)
	if err != nil {
		return err
	}

	issues := validate.Check(citations)
	summary := validate.Summarize(citations, issues)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			Issues  []types.ValidationIssue `json:"issues"`
			Summary validate.Summary        `json:"summary"`
		}{issues, summary}); err != nil {
			return err
		}
	} else {
		for _, issue := range issues {
			fmt.Fprintf(os.Stdout, "%-8s %-18s %s  [%s]\n",
				issue.Severity, issue.Code, issue.Message, strings.Join(issue.CitationIDs, ", "))
		}
		fmt.Fprintf(os.Stdout, "\n%d citations, %d critical, %d warnings, quality %.2f\n",
			summary.Citations, summary.Critical, summary.Warnings, summary.QualityScore)
	}

	if strict && summary.Critical > 0 {
		return fmt.Errorf("%d critical issue(s)", summary.Critical)
	}
	return nil
}

func init() {
	validateCmd.Flags().Bool("json", false, "output issues and summary as JSON")
	validateCmd.Flags().Bool("strict", false, "exit nonzero when critical issues exist")

	rootCmd.AddCommand(validateCmd)
}
