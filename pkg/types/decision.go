// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Verdict is the screening outcome for a single citation.
type Verdict string

const (
	VerdictInclude   Verdict = "Include"
	VerdictExclude   Verdict = "Exclude"
	VerdictUncertain Verdict = "Uncertain"
)

// Confidence is the model's self-reported certainty for a decision.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ScreeningDecision is one AI-produced include/exclude decision for a
// citation. Decisions are immutable inputs to the critic; the engine
// never corrects them, only flags them for human review.
type ScreeningDecision struct {
	// ID is a content-derived identifier (hash of citation ID, verdict,
	// and rationale) so re-importing the same results is idempotent.
	ID string `json:"id" yaml:"id"`

	// CitationID references the screened citation, which must exist in
	// the store.
	CitationID string `json:"citation_id" yaml:"citation_id"`

	// Verdict is Include, Exclude, or Uncertain.
	Verdict Verdict `json:"verdict" yaml:"verdict"`

	// Rationale is the model's free-text reasoning for the verdict.
	Rationale string `json:"rationale,omitempty" yaml:"rationale,omitempty"`

	// MatchedCriteria names the criteria the rationale claims are
	// satisfied (PICOTT element names and rule names).
	MatchedCriteria []string `json:"matched_criteria,omitempty" yaml:"matched_criteria,omitempty"`

	// Confidence is the model's self-reported certainty, if provided.
	Confidence Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Included reports whether the decision's verdict is Include.
func (d ScreeningDecision) Included() bool {
	return d.Verdict == VerdictInclude
}

// ClaimsCriteria reports whether the decision names at least one
// matched criterion.
func (d ScreeningDecision) ClaimsCriteria() bool {
	return len(d.MatchedCriteria) > 0
}
