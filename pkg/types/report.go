// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Severity classifies a data-quality problem.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// IssueCode identifies a data-quality rule.
type IssueCode string

const (
	IssueMissingAbstract IssueCode = "MISSING_ABSTRACT"
	IssueMissingTitle    IssueCode = "MISSING_TITLE"
	IssueInvalidYear     IssueCode = "INVALID_YEAR"
	IssueDuplicateDOI    IssueCode = "DUPLICATE_DOI"
	IssueLikelyDuplicate IssueCode = "LIKELY_DUPLICATE"
)

// ValidationIssue reports one data-quality problem. Duplicate-class
// issues reference every matching citation, not just a pair. Issues are
// informational: they are returned to the caller and never raised as
// errors or persisted as authoritative state.
type ValidationIssue struct {
	// CitationIDs references the affected citations, sorted.
	CitationIDs []string `json:"citation_ids" yaml:"citation_ids"`

	Severity Severity  `json:"severity" yaml:"severity"`
	Code     IssueCode `json:"code" yaml:"code"`
	Message  string    `json:"message" yaml:"message"`
}

// FindingKind identifies a consistency check in the critic.
type FindingKind string

const (
	// FindingVerdictDrift: multiple decisions on one citation disagree.
	FindingVerdictDrift FindingKind = "VERDICT_DRIFT"

	// FindingIncompleteJustification: an inclusion whose matched
	// criteria do not cover every required criterion.
	FindingIncompleteJustification FindingKind = "INCOMPLETE_JUSTIFICATION"

	// FindingUnsupportedExclusion: an exclusion with no rationale or no
	// matched criteria.
	FindingUnsupportedExclusion FindingKind = "UNSUPPORTED_EXCLUSION"

	// FindingWeakEvidence: rationale has little lexical overlap with the
	// abstract it claims to draw on. A heuristic signal, not proof.
	FindingWeakEvidence FindingKind = "WEAK_EVIDENCE"

	// FindingDistributionSkew: a stratum's inclusion rate deviates from
	// the overall rate beyond the configured threshold.
	FindingDistributionSkew FindingKind = "DISTRIBUTION_SKEW"

	// FindingConfidenceMismatch: verdict and self-reported confidence
	// point in opposite directions.
	FindingConfidenceMismatch FindingKind = "CONFIDENCE_MISMATCH"

	// FindingExclusionWordingDrift: near-identical exclusion rationales
	// worded differently across decisions.
	FindingExclusionWordingDrift FindingKind = "EXCLUSION_WORDING_DRIFT"

	// FindingInclusionRateExtreme: overall inclusion rate is
	// implausibly low or high for a screening batch.
	FindingInclusionRateExtreme FindingKind = "INCLUSION_RATE_EXTREME"
)

// InconsistencyFinding reports one candidate inconsistency among
// screening decisions. Findings are advisory: they flag items for human
// review and never mutate decisions.
type InconsistencyFinding struct {
	Kind FindingKind `json:"kind" yaml:"kind"`

	// CitationIDs references the citations involved, if any.
	CitationIDs []string `json:"citation_ids,omitempty" yaml:"citation_ids,omitempty"`

	// DecisionIDs references the decisions involved, if any.
	DecisionIDs []string `json:"decision_ids,omitempty" yaml:"decision_ids,omitempty"`

	// Stratum identifies the group a batch-level finding refers to,
	// e.g. "format:ris" or "journal:The Lancet"; empty for per-item
	// findings.
	Stratum string `json:"stratum,omitempty" yaml:"stratum,omitempty"`

	// Explanation is a human-readable account of the inconsistency.
	Explanation string `json:"explanation" yaml:"explanation"`
}
