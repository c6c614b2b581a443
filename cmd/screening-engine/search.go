package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over stored titles and abstracts",
	Long: `Search runs an FTS5 full-text query over the corpus and prints the
matching citations with snippets, ranked by relevance. Hits link to
PubMed when a PMID is known, or to the DOI resolver otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	results, err := s.Search(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(os.Stdout, "No results found.")
		return nil
	}
	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d %-16s  %s\n", i+1, r.ID, r.Title)
		fmt.Fprintf(os.Stdout, "     %s\n", r.Snippet)
		if r.URL != "" {
			fmt.Fprintf(os.Stdout, "     %s\n", r.URL)
		}
	}
	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
