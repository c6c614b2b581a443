package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/screening-engine/internal/store"
	"github.com/pdiddy/screening-engine/pkg/types"
)

var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Manage the review's PICOTT screening criteria",
	Long: `Criteria records the PICOTT schema (Population, Intervention,
Comparator, Outcome, Timeframe, study Type) plus any additional named
rules the review screens against. The critic uses the required
criteria to judge whether inclusions are fully justified.`,
}

var criteriaSetCmd = &cobra.Command{
	Use:   "set [criteria.yaml]",
	Short: "Set the screening criteria from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCriteriaSet,
}

func runCriteriaSet(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var criteria types.ScreeningCriteria
	if err := yaml.Unmarshal(data, &criteria); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if criteria.IsEmpty() {
		return fmt.Errorf("%s specifies no PICOTT elements and no rules", args[0])
	}

	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SetCriteria(context.Background(), criteria); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "criteria set: %d required criteria (%s)\n",
		len(criteria.RequiredNames()), strings.Join(criteria.RequiredNames(), ", "))
	return nil
}

var criteriaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored screening criteria as YAML",
	RunE:  runCriteriaShow,
}

func runCriteriaShow(cmd *cobra.Command, args []string) error {
	s, err := store.Open(storeConfig(cmd))
	if err != nil {
		return err
	}
	defer s.Close()

	criteria, ok, err := s.GetCriteria(context.Background())
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no criteria set; use 'screening-engine criteria set'")
	}

	out, err := yaml.Marshal(criteria)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(out))
	return nil
}

func init() {
	criteriaCmd.AddCommand(criteriaSetCmd)
	criteriaCmd.AddCommand(criteriaShowCmd)
	rootCmd.AddCommand(criteriaCmd)
}
