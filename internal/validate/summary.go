// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import "github.com/pdiddy/screening-engine/pkg/types"

// Summary is the corpus-level quality report derived from a validation
// run.
type Summary struct {
	Citations int `json:"citations" yaml:"citations"`
	Critical  int `json:"critical" yaml:"critical"`
	Warnings  int `json:"warnings" yaml:"warnings"`

	// ByCode counts issues per rule code.
	ByCode map[types.IssueCode]int `json:"by_code" yaml:"by_code"`

	// QualityScore is the fraction of citations untouched by any
	// critical issue, in [0, 1]. An empty corpus scores 1.
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`
}

// Summarize condenses a validation run into corpus-level counts.
func Summarize(citations []types.Citation, issues []types.ValidationIssue) Summary {
	s := Summary{
		Citations: len(citations),
		ByCode:    make(map[types.IssueCode]int),
	}

	flagged := make(map[string]bool)
	for _, is := range issues {
		s.ByCode[is.Code]++
		switch is.Severity {
		case types.SeverityCritical:
			s.Critical++
			for _, id := range is.CitationIDs {
				flagged[id] = true
			}
		default:
			s.Warnings++
		}
	}

	if len(citations) == 0 {
		s.QualityScore = 1
		return s
	}
	clean := 0
	for _, c := range citations {
		if !flagged[c.ID] {
			clean++
		}
	}
	s.QualityScore = float64(clean) / float64(len(citations))
	return s
}
