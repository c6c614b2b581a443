package critic

import (
	"reflect"
	"testing"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func findingsByKind(findings []types.InconsistencyFinding, kind types.FindingKind) []types.InconsistencyFinding {
	var out []types.InconsistencyFinding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func testCriteria() types.ScreeningCriteria {
	return types.ScreeningCriteria{
		Population:   "Adults over 50",
		Intervention: "Daily aspirin",
		Comparator:   "Not specified",
	}
}

func TestVerdictDrift(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, Rationale: "fits", MatchedCriteria: []string{"population", "intervention"}},
		{ID: "d2", CitationID: "c1", Verdict: types.VerdictExclude, Rationale: "does not fit", MatchedCriteria: []string{"population"}},
		{ID: "d3", CitationID: "c2", Verdict: types.VerdictInclude, Rationale: "fits", MatchedCriteria: []string{"population", "intervention"}},
		{ID: "d4", CitationID: "c2", Verdict: types.VerdictInclude, Rationale: "fits too", MatchedCriteria: []string{"population", "intervention"}},
	}

	findings := New(types.CriticConfig{}).Critique(testCriteria(), decisions, nil)
	drift := findingsByKind(findings, types.FindingVerdictDrift)
	if len(drift) != 1 {
		t.Fatalf("got %d VERDICT_DRIFT findings, want exactly 1", len(drift))
	}
	if want := []string{"d1", "d2"}; !reflect.DeepEqual(drift[0].DecisionIDs, want) {
		t.Errorf("DecisionIDs = %v, want %v", drift[0].DecisionIDs, want)
	}
	if want := []string{"c1"}; !reflect.DeepEqual(drift[0].CitationIDs, want) {
		t.Errorf("CitationIDs = %v, want %v", drift[0].CitationIDs, want)
	}
}

func TestIncompleteJustification(t *testing.T) {
	// Criteria require population and intervention; the decision only
	// matches population.
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, Rationale: "fits", MatchedCriteria: []string{"Population"}},
	}

	findings := New(types.CriticConfig{}).Critique(testCriteria(), decisions, nil)
	got := findingsByKind(findings, types.FindingIncompleteJustification)
	if len(got) != 1 {
		t.Fatalf("got %d INCOMPLETE_JUSTIFICATION findings, want 1", len(got))
	}
	// The unspecified comparator must not be demanded.
	if want := "included without covering required criteria: intervention"; got[0].Explanation != want {
		t.Errorf("Explanation = %q, want %q", got[0].Explanation, want)
	}
}

func TestIncompleteJustificationCoveredInclusion(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, Rationale: "fits",
			MatchedCriteria: []string{"population", "intervention"}},
	}
	findings := New(types.CriticConfig{}).Critique(testCriteria(), decisions, nil)
	if got := findingsByKind(findings, types.FindingIncompleteJustification); len(got) != 0 {
		t.Errorf("got %d findings for a fully covered inclusion", len(got))
	}
}

func TestUnsupportedExclusion(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictExclude},
		{ID: "d2", CitationID: "c2", Verdict: types.VerdictExclude, Rationale: "wrong population"},
		{ID: "d3", CitationID: "c3", Verdict: types.VerdictExclude, Rationale: "wrong setting", MatchedCriteria: []string{"population"}},
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, nil)
	got := findingsByKind(findings, types.FindingUnsupportedExclusion)
	if len(got) != 2 {
		t.Fatalf("got %d UNSUPPORTED_EXCLUSION findings, want 2", len(got))
	}
}

func TestWeakEvidence(t *testing.T) {
	citations := []types.Citation{
		{ID: "c1", Abstract: "A randomized controlled trial of aspirin in older adults measuring cardiovascular outcomes."},
		{ID: "c2", Abstract: "A randomized controlled trial of aspirin in older adults measuring cardiovascular outcomes."},
	}
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, MatchedCriteria: []string{"population"},
			Rationale: "completely unrelated words about fish migration patterns"},
		{ID: "d2", CitationID: "c2", Verdict: types.VerdictInclude, MatchedCriteria: []string{"population"},
			Rationale: "randomized trial of aspirin in older adults with cardiovascular outcomes"},
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, citations)
	got := findingsByKind(findings, types.FindingWeakEvidence)
	if len(got) != 1 {
		t.Fatalf("got %d WEAK_EVIDENCE findings, want 1", len(got))
	}
	if want := []string{"d1"}; !reflect.DeepEqual(got[0].DecisionIDs, want) {
		t.Errorf("DecisionIDs = %v, want %v", got[0].DecisionIDs, want)
	}
}

func TestConfidenceMismatch(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, Rationale: "fits", Confidence: types.ConfidenceLow},
		{ID: "d2", CitationID: "c2", Verdict: types.VerdictExclude, Rationale: "off topic", MatchedCriteria: []string{"population"}, Confidence: types.ConfidenceHigh},
		{ID: "d3", CitationID: "c3", Verdict: types.VerdictInclude, Rationale: "fits", Confidence: types.ConfidenceHigh},
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, nil)
	got := findingsByKind(findings, types.FindingConfidenceMismatch)
	if len(got) != 2 {
		t.Fatalf("got %d CONFIDENCE_MISMATCH findings, want 2", len(got))
	}
}

func TestExclusionWordingDrift(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictExclude, MatchedCriteria: []string{"population"},
			Rationale: "wrong population age group studied"},
		{ID: "d2", CitationID: "c2", Verdict: types.VerdictExclude, MatchedCriteria: []string{"population"},
			Rationale: "the wrong population age group was studied"},
		{ID: "d3", CitationID: "c3", Verdict: types.VerdictExclude, MatchedCriteria: []string{"population"},
			Rationale: "conference abstract only"},
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, nil)
	got := findingsByKind(findings, types.FindingExclusionWordingDrift)
	if len(got) != 1 {
		t.Fatalf("got %d EXCLUSION_WORDING_DRIFT findings, want 1", len(got))
	}
	if want := []string{"d1", "d2"}; !reflect.DeepEqual(got[0].DecisionIDs, want) {
		t.Errorf("DecisionIDs = %v, want %v", got[0].DecisionIDs, want)
	}
}

func TestDistributionSkew(t *testing.T) {
	var citations []types.Citation
	var decisions []types.ScreeningDecision
	// Ten RIS citations all included, ten MEDLINE citations all
	// excluded: both strata deviate far from the 50% overall rate.
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		citations = append(citations, types.Citation{ID: "ris-" + id, Format: types.FormatRIS})
		decisions = append(decisions, types.ScreeningDecision{
			ID: "dr-" + id, CitationID: "ris-" + id, Verdict: types.VerdictInclude,
			Rationale: "fits", MatchedCriteria: []string{"population"},
		})
		citations = append(citations, types.Citation{ID: "med-" + id, Format: types.FormatMEDLINE})
		decisions = append(decisions, types.ScreeningDecision{
			ID: "dm-" + id, CitationID: "med-" + id, Verdict: types.VerdictExclude,
			Rationale: "reason " + id, MatchedCriteria: []string{"population"},
		})
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, citations)
	got := findingsByKind(findings, types.FindingDistributionSkew)
	if len(got) != 2 {
		t.Fatalf("got %d DISTRIBUTION_SKEW findings, want 2 (one per format stratum)", len(got))
	}
	if got[0].Stratum != "format:medline" || got[1].Stratum != "format:ris" {
		t.Errorf("strata = %q, %q", got[0].Stratum, got[1].Stratum)
	}
}

func TestDistributionSkewSmallStratumIgnored(t *testing.T) {
	citations := []types.Citation{
		{ID: "c1", Format: types.FormatRIS},
		{ID: "c2", Format: types.FormatRIS},
	}
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictInclude, Rationale: "fits", MatchedCriteria: []string{"population"}},
		{ID: "d2", CitationID: "c2", Verdict: types.VerdictExclude, Rationale: "off", MatchedCriteria: []string{"population"}},
	}

	findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, citations)
	if got := findingsByKind(findings, types.FindingDistributionSkew); len(got) != 0 {
		t.Errorf("got %d skew findings from a stratum below the minimum size", len(got))
	}
}

func TestInclusionRateExtreme(t *testing.T) {
	tests := []struct {
		name     string
		included int
		total    int
		want     int
	}{
		{"all excluded", 0, 10, 1},
		{"balanced", 3, 10, 0},
		{"mostly included", 8, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decisions []types.ScreeningDecision
			for i := 0; i < tt.total; i++ {
				verdict := types.VerdictExclude
				if i < tt.included {
					verdict = types.VerdictInclude
				}
				decisions = append(decisions, types.ScreeningDecision{
					ID: string(rune('a' + i)), CitationID: "c", Verdict: verdict,
					Rationale: "reason " + string(rune('a'+i)), MatchedCriteria: []string{"population"},
				})
			}
			findings := New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, nil)
			got := findingsByKind(findings, types.FindingInclusionRateExtreme)
			if len(got) != tt.want {
				t.Errorf("got %d INCLUSION_RATE_EXTREME findings, want %d", len(got), tt.want)
			}
			for _, f := range got {
				if f.Stratum != "overall" {
					t.Errorf("Stratum = %q, want overall", f.Stratum)
				}
			}
		})
	}
}

func TestCritiqueAdvisoryDoesNotMutate(t *testing.T) {
	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "c1", Verdict: types.VerdictExclude},
	}
	before := decisions[0]
	New(types.CriticConfig{}).Critique(types.ScreeningCriteria{}, decisions, nil)
	if !reflect.DeepEqual(before, decisions[0]) {
		t.Error("critique mutated its input")
	}
}
