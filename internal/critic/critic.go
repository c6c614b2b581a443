// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package critic runs internal-consistency checks over a batch of
// screening decisions. Every check is advisory: findings flag
// candidates for human review and never change a decision. The critic
// is stateless and side-effect-free, so it can be re-run on any subset
// of decisions at any time.
package critic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// Critic evaluates screening decisions against the criteria and the
// citations they screened.
type Critic struct {
	cfg types.CriticConfig
	sim Similarity
}

// New returns a Critic with defaults applied and the token-overlap
// similarity measure.
func New(cfg types.CriticConfig) *Critic {
	return &Critic{cfg: cfg.WithDefaults(), sim: TokenOverlap{}}
}

// WithSimilarity swaps the similarity measure.
func (c *Critic) WithSimilarity(sim Similarity) *Critic {
	c.sim = sim
	return c
}

// Critique runs every consistency check and returns the findings,
// per-decision checks first, batch-level checks after. The input
// slices are never modified.
func (c *Critic) Critique(criteria types.ScreeningCriteria, decisions []types.ScreeningDecision, citations []types.Citation) []types.InconsistencyFinding {
	byID := make(map[string]types.Citation, len(citations))
	for _, cit := range citations {
		byID[cit.ID] = cit
	}

	var findings []types.InconsistencyFinding
	findings = append(findings, c.verdictDrift(decisions)...)
	findings = append(findings, c.incompleteJustifications(criteria, decisions)...)
	findings = append(findings, c.unsupportedExclusions(decisions)...)
	findings = append(findings, c.weakEvidence(decisions, byID)...)
	findings = append(findings, c.confidenceMismatches(decisions)...)
	findings = append(findings, c.exclusionWordingDrift(decisions)...)
	findings = append(findings, c.distributionSkew(decisions, byID)...)
	findings = append(findings, c.inclusionRateExtreme(decisions)...)
	return findings
}

// verdictDrift reports citations screened more than once with
// disagreeing verdicts: exactly one finding per drifting citation,
// referencing every decision involved.
func (c *Critic) verdictDrift(decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	byCitation := make(map[string][]types.ScreeningDecision)
	for _, d := range decisions {
		byCitation[d.CitationID] = append(byCitation[d.CitationID], d)
	}

	cids := make([]string, 0, len(byCitation))
	for cid := range byCitation {
		cids = append(cids, cid)
	}
	sort.Strings(cids)

	var findings []types.InconsistencyFinding
	for _, cid := range cids {
		group := byCitation[cid]
		if len(group) < 2 {
			continue
		}
		verdicts := make(map[types.Verdict]bool)
		var ids []string
		for _, d := range group {
			verdicts[d.Verdict] = true
			ids = append(ids, d.ID)
		}
		if len(verdicts) < 2 {
			continue
		}
		sort.Strings(ids)
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingVerdictDrift,
			CitationIDs: []string{cid},
			DecisionIDs: ids,
			Explanation: fmt.Sprintf("%d decisions on the same citation disagree on the verdict", len(group)),
		})
	}
	return findings
}

// incompleteJustifications reports inclusions whose matched criteria do
// not cover every required criterion.
func (c *Critic) incompleteJustifications(criteria types.ScreeningCriteria, decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	required := criteria.RequiredNames()
	if len(required) == 0 {
		return nil
	}

	var findings []types.InconsistencyFinding
	for _, d := range decisions {
		if !d.Included() {
			continue
		}
		matched := make(map[string]bool, len(d.MatchedCriteria))
		for _, name := range d.MatchedCriteria {
			matched[strings.ToLower(strings.TrimSpace(name))] = true
		}
		var missing []string
		for _, name := range required {
			if !matched[strings.ToLower(name)] {
				missing = append(missing, name)
			}
		}
		if len(missing) == 0 {
			continue
		}
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingIncompleteJustification,
			CitationIDs: []string{d.CitationID},
			DecisionIDs: []string{d.ID},
			Explanation: "included without covering required criteria: " + strings.Join(missing, ", "),
		})
	}
	return findings
}

// unsupportedExclusions reports exclusions that carry neither a
// rationale nor any matched criteria to justify them.
func (c *Critic) unsupportedExclusions(decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	var findings []types.InconsistencyFinding
	for _, d := range decisions {
		if d.Verdict != types.VerdictExclude {
			continue
		}
		if strings.TrimSpace(d.Rationale) != "" && d.ClaimsCriteria() {
			continue
		}
		why := "no rationale given"
		if strings.TrimSpace(d.Rationale) != "" {
			why = "no criteria matched"
		}
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingUnsupportedExclusion,
			CitationIDs: []string{d.CitationID},
			DecisionIDs: []string{d.ID},
			Explanation: "exclusion is unsupported: " + why,
		})
	}
	return findings
}

// weakEvidence reports decisions whose rationale barely overlaps the
// abstract it claims to draw on. Citations without an abstract are
// skipped; there is nothing to compare against.
func (c *Critic) weakEvidence(decisions []types.ScreeningDecision, byID map[string]types.Citation) []types.InconsistencyFinding {
	var findings []types.InconsistencyFinding
	for _, d := range decisions {
		if !d.ClaimsCriteria() || strings.TrimSpace(d.Rationale) == "" {
			continue
		}
		cit, ok := byID[d.CitationID]
		if !ok || strings.TrimSpace(cit.Abstract) == "" {
			continue
		}
		score := c.sim.Score(d.Rationale, cit.Abstract)
		if score >= c.cfg.SimilarityThreshold {
			continue
		}
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingWeakEvidence,
			CitationIDs: []string{d.CitationID},
			DecisionIDs: []string{d.ID},
			Explanation: fmt.Sprintf("rationale overlaps the abstract at %.2f, below the %.2f threshold", score, c.cfg.SimilarityThreshold),
		})
	}
	return findings
}

// confidenceMismatches reports verdicts and self-reported confidence
// pointing in opposite directions: inclusion with low confidence, or
// exclusion with high confidence.
func (c *Critic) confidenceMismatches(decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	var findings []types.InconsistencyFinding
	for _, d := range decisions {
		var why string
		switch {
		case d.Included() && d.Confidence == types.ConfidenceLow:
			why = "included with low confidence; consider full-text review"
		case d.Verdict == types.VerdictExclude && d.Confidence == types.ConfidenceHigh:
			why = "excluded with high confidence; verify the exclusion reason"
		default:
			continue
		}
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingConfidenceMismatch,
			CitationIDs: []string{d.CitationID},
			DecisionIDs: []string{d.ID},
			Explanation: why,
		})
	}
	return findings
}

// exclusionWordingDrift reports groups of exclusion rationales that
// score as near-identical but are worded differently. Greedy grouping
// in first-seen order keeps the result deterministic.
func (c *Critic) exclusionWordingDrift(decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	var reasons []string
	byReason := make(map[string][]string)
	for _, d := range decisions {
		if d.Verdict != types.VerdictExclude {
			continue
		}
		reason := strings.TrimSpace(d.Rationale)
		if reason == "" {
			continue
		}
		if _, seen := byReason[reason]; !seen {
			reasons = append(reasons, reason)
		}
		byReason[reason] = append(byReason[reason], d.ID)
	}

	var findings []types.InconsistencyFinding
	used := make(map[string]bool)
	for i, r1 := range reasons {
		if used[r1] {
			continue
		}
		group := []string{r1}
		for _, r2 := range reasons[i+1:] {
			if used[r2] {
				continue
			}
			if c.sim.Score(r1, r2) > c.cfg.WordingThreshold {
				group = append(group, r2)
				used[r2] = true
			}
		}
		if len(group) < 2 {
			continue
		}
		var ids []string
		for _, r := range group {
			ids = append(ids, byReason[r]...)
		}
		sort.Strings(ids)
		findings = append(findings, types.InconsistencyFinding{
			Kind:        types.FindingExclusionWordingDrift,
			DecisionIDs: ids,
			Explanation: fmt.Sprintf("%d exclusion rationales look like the same reason worded differently; standardize the terminology", len(group)),
		})
	}
	return findings
}

// distributionSkew compares per-stratum inclusion rates against the
// overall rate. Strata are the citation's source format and journal;
// strata below the minimum size are skipped as noise. Findings
// reference the stratum, not individual citations.
func (c *Critic) distributionSkew(decisions []types.ScreeningDecision, byID map[string]types.Citation) []types.InconsistencyFinding {
	if len(decisions) == 0 {
		return nil
	}

	type tally struct{ total, included int }
	strata := make(map[string]*tally)
	overall := tally{}

	for _, d := range decisions {
		cit, ok := byID[d.CitationID]
		if !ok {
			continue
		}
		overall.total++
		if d.Included() {
			overall.included++
		}
		keys := []string{"format:" + string(cit.Format)}
		if j := strings.TrimSpace(cit.Journal); j != "" {
			keys = append(keys, "journal:"+j)
		}
		for _, key := range keys {
			t := strata[key]
			if t == nil {
				t = &tally{}
				strata[key] = t
			}
			t.total++
			if d.Included() {
				t.included++
			}
		}
	}
	if overall.total == 0 {
		return nil
	}
	overallRate := float64(overall.included) / float64(overall.total)

	keys := make([]string, 0, len(strata))
	for k := range strata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var findings []types.InconsistencyFinding
	for _, key := range keys {
		t := strata[key]
		if t.total < c.cfg.MinStratumSize {
			continue
		}
		rate := float64(t.included) / float64(t.total)
		dev := rate - overallRate
		if dev < 0 {
			dev = -dev
		}
		if dev <= c.cfg.SkewThreshold {
			continue
		}
		findings = append(findings, types.InconsistencyFinding{
			Kind:    types.FindingDistributionSkew,
			Stratum: key,
			Explanation: fmt.Sprintf("inclusion rate %.0f%% over %d decisions deviates from the overall %.0f%% by more than %.0f points",
				rate*100, t.total, overallRate*100, c.cfg.SkewThreshold*100),
		})
	}
	return findings
}

// inclusionRateExtreme reports an overall inclusion rate implausible
// for a screening batch: below 1% suggests over-restrictive criteria,
// above 50% suggests criteria that are not selective.
func (c *Critic) inclusionRateExtreme(decisions []types.ScreeningDecision) []types.InconsistencyFinding {
	if len(decisions) == 0 {
		return nil
	}
	included := 0
	for _, d := range decisions {
		if d.Included() {
			included++
		}
	}
	rate := float64(included) / float64(len(decisions))

	var why string
	switch {
	case rate < 0.01:
		why = fmt.Sprintf("inclusion rate is very low (%.1f%%); verify the criteria are not too restrictive", rate*100)
	case rate > 0.5:
		why = fmt.Sprintf("inclusion rate is high (%.1f%%); verify the criteria are sufficiently specific", rate*100)
	default:
		return nil
	}
	return []types.InconsistencyFinding{{
		Kind:        types.FindingInclusionRateExtreme,
		Stratum:     "overall",
		Explanation: why,
	}}
}
