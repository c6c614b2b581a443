package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/pdiddy/screening-engine/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus and screening statistics",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(os.Stdout, "citations: %d\n", stats.Citations)
	formats := make([]string, 0, len(stats.ByFormat))
	for format := range stats.ByFormat {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	for _, format := range formats {
		fmt.Fprintf(os.Stdout, "  %-12s %d\n", format, stats.ByFormat[format])
	}
	fmt.Fprintf(os.Stdout, "decisions: %d (%d included)\n", stats.Decisions, stats.Included)
	if len(stats.Years) > 0 {
		fmt.Fprintln(os.Stdout, "years:")
		for _, yc := range stats.Years {
			fmt.Fprintf(os.Stdout, "  %d  %d\n", yc.Year, yc.Count)
		}
	}
	return nil
}

func init() {
	statsCmd.Flags().Bool("json", false, "output statistics as JSON")

	rootCmd.AddCommand(statsCmd)
}
