// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen ingests AI screening results. The screening model
// returns a JSON array of per-citation decisions; this package parses
// it into canonical ScreeningDecision values, tolerating individual
// malformed entries the same way the citation parsers tolerate
// malformed records.
package screen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// Warning records a result entry that was skipped or partially read.
type Warning struct {
	// Entry is the 1-based position in the results array.
	Entry int `json:"entry"`

	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("entry %d: %s", w.Entry, w.Message)
}

// resultEntry mirrors the JSON shape the screening model returns per
// citation. Picott quotes are folded into matched criteria; the rest
// of the entry (title echo, exclusion quotes) is informational only.
type resultEntry struct {
	ID                string            `json:"id"`
	Decision          string            `json:"decision"`
	Include           *bool             `json:"include"`
	Confidence        string            `json:"confidence"`
	Reasoning         string            `json:"reasoning"`
	InclusionCriteria []string          `json:"inclusionCriteria"`
	Picott            map[string]string `json:"picott"`
}

// ParseResults parses a screening-results JSON array into decisions.
// Entries without a citation id or a recognizable verdict are skipped
// with a warning; a malformed document fails as a whole.
func ParseResults(data []byte) ([]types.ScreeningDecision, []Warning, error) {
	var entries []resultEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, nil, fmt.Errorf("parsing screening results: %w", err)
	}

	var decisions []types.ScreeningDecision
	var warnings []Warning
	for i, e := range entries {
		num := i + 1
		if strings.TrimSpace(e.ID) == "" {
			warnings = append(warnings, Warning{Entry: num, Message: "result has no citation id, skipped"})
			continue
		}
		verdict, ok := parseVerdict(e)
		if !ok {
			warnings = append(warnings, Warning{Entry: num, Message: fmt.Sprintf("unrecognized decision %q, skipped", e.Decision)})
			continue
		}

		d := types.ScreeningDecision{
			CitationID:      strings.TrimSpace(e.ID),
			Verdict:         verdict,
			Rationale:       strings.TrimSpace(e.Reasoning),
			MatchedCriteria: matchedCriteria(e),
			Confidence:      parseConfidence(e.Confidence),
		}
		d.ID = decisionID(d)
		decisions = append(decisions, d)
	}
	return decisions, warnings, nil
}

func parseVerdict(e resultEntry) (types.Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(e.Decision)) {
	case "include":
		return types.VerdictInclude, true
	case "exclude":
		return types.VerdictExclude, true
	case "uncertain", "maybe", "unsure":
		return types.VerdictUncertain, true
	case "":
		// Older result payloads carry a boolean include flag instead.
		if e.Include != nil {
			if *e.Include {
				return types.VerdictInclude, true
			}
			return types.VerdictExclude, true
		}
	}
	return "", false
}

func parseConfidence(s string) types.Confidence {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return types.ConfidenceHigh
	case "medium":
		return types.ConfidenceMedium
	case "low":
		return types.ConfidenceLow
	}
	return ""
}

// matchedCriteria merges the explicit inclusion-criteria list with the
// PICOTT elements the model actually found quotes for.
func matchedCriteria(e resultEntry) []string {
	var matched []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			return
		}
		seen[key] = true
		matched = append(matched, name)
	}

	// PICOTT keys in the payload use camelCase for the study type.
	for _, key := range []string{"population", "intervention", "comparison", "outcome", "timeframe", "studyType"} {
		quote := strings.TrimSpace(e.Picott[key])
		if quote == "" || strings.EqualFold(quote, "Not found") {
			continue
		}
		switch key {
		case "comparison":
			add("comparator")
		case "studyType":
			add("study_type")
		default:
			add(key)
		}
	}
	for _, name := range e.InclusionCriteria {
		add(name)
	}
	return matched
}

// decisionID derives the decision identifier from its content, so
// re-importing the same results file inserts nothing new.
func decisionID(d types.ScreeningDecision) string {
	h := sha256.New()
	h.Write([]byte(d.CitationID))
	h.Write([]byte{0x1e})
	h.Write([]byte(d.Verdict))
	h.Write([]byte{0x1e})
	h.Write([]byte(d.Rationale))
	for _, name := range d.MatchedCriteria {
		h.Write([]byte{0x1f})
		h.Write([]byte(name))
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
