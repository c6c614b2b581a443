package store

import (
	"context"
	"testing"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DataDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testCitations() []types.Citation {
	return []types.Citation{
		{
			ID:       "aaa111",
			Title:    "Aspirin for primary prevention",
			Authors:  []string{"Smith, Jane", "Doe, Alex"},
			Abstract: "A randomized trial of aspirin in older adults.",
			Year:     2020,
			Journal:  "The Journal of Trials",
			DOI:      "10.1000/trial.2020",
			Format:   types.FormatMEDLINE,
			Raw:      map[string][]string{"PMID": {"11111111"}},
		},
		{
			ID:       "bbb222",
			Title:    "Statins and cognition",
			Authors:  []string{"Lee, Kim"},
			Abstract: "An observational study of statins and memory.",
			Year:     2019,
			Journal:  "Neurology Letters",
			DOI:      "10.2000/stat.2019",
			Format:   types.FormatRIS,
		},
	}
}

func TestUpsertCitationsIdempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.UpsertCitations(ctx, testCitations())
	if err != nil {
		t.Fatal(err)
	}
	if first.Inserted != 2 || first.Existing != 0 {
		t.Errorf("first run: inserted %d, existing %d", first.Inserted, first.Existing)
	}

	second, err := s.UpsertCitations(ctx, testCitations())
	if err != nil {
		t.Fatal(err)
	}
	if second.Inserted != 0 || second.Existing != 2 {
		t.Errorf("second run: inserted %d, existing %d, want pure no-op", second.Inserted, second.Existing)
	}

	citations, err := s.ListCitations(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(citations) != 2 {
		t.Fatalf("got %d citations, want 2", len(citations))
	}
	if citations[0].ID != "aaa111" || citations[1].ID != "bbb222" {
		t.Errorf("citations not ordered by ID: %s, %s", citations[0].ID, citations[1].ID)
	}
	if got := citations[0]; got.Title != "Aspirin for primary prevention" ||
		len(got.Authors) != 2 || got.Raw["PMID"][0] != "11111111" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestGetCitation(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.UpsertCitations(ctx, testCitations()); err != nil {
		t.Fatal(err)
	}

	c, err := s.GetCitation(ctx, "aaa111")
	if err != nil {
		t.Fatal(err)
	}
	if c.Journal != "The Journal of Trials" {
		t.Errorf("Journal = %q", c.Journal)
	}

	if _, err := s.GetCitation(ctx, "nope"); err == nil {
		t.Error("expected error for unknown citation")
	}
}

func TestCriteriaRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, ok, err := s.GetCriteria(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("criteria reported present before any were set")
	}

	criteria := types.ScreeningCriteria{
		Population:   "Adults over 50",
		Intervention: "Daily aspirin",
		Comparator:   "Not specified",
		Rules: []types.CriterionRule{
			{Name: "English language", Requirement: types.RequirementRequired},
		},
	}
	if err := s.SetCriteria(ctx, criteria); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.GetCriteria(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("criteria missing after set")
	}
	if got.Population != criteria.Population || len(got.Rules) != 1 || got.Rules[0].Name != "English language" {
		t.Errorf("round-trip mismatch: %+v", got)
	}

	// Setting again replaces, never accumulates.
	criteria.Population = "Adults over 65"
	if err := s.SetCriteria(ctx, criteria); err != nil {
		t.Fatal(err)
	}
	got, _, err = s.GetCriteria(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Population != "Adults over 65" {
		t.Errorf("Population = %q after replace", got.Population)
	}
}

func TestInsertDecisions(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.UpsertCitations(ctx, testCitations()); err != nil {
		t.Fatal(err)
	}

	decisions := []types.ScreeningDecision{
		{ID: "d1", CitationID: "aaa111", Verdict: types.VerdictInclude, Rationale: "fits",
			MatchedCriteria: []string{"population"}, Confidence: types.ConfidenceHigh},
		{ID: "d2", CitationID: "bbb222", Verdict: types.VerdictExclude, Rationale: "off topic"},
		{ID: "d3", CitationID: "ghost", Verdict: types.VerdictInclude, Rationale: "fits"},
	}

	summary, err := s.InsertDecisions(ctx, decisions)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Inserted != 2 {
		t.Errorf("Inserted = %d, want 2", summary.Inserted)
	}
	if len(summary.Rejected) != 1 || summary.Rejected[0] != "ghost" {
		t.Errorf("Rejected = %v, want the unknown citation only", summary.Rejected)
	}

	// Re-import is idempotent.
	again, err := s.InsertDecisions(ctx, decisions[:2])
	if err != nil {
		t.Fatal(err)
	}
	if again.Inserted != 0 || again.Existing != 2 {
		t.Errorf("re-import: inserted %d, existing %d", again.Inserted, again.Existing)
	}

	all, err := s.ListDecisions(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d decisions, want 2", len(all))
	}
	if all[0].MatchedCriteria[0] != "population" || all[0].Confidence != types.ConfidenceHigh {
		t.Errorf("round-trip mismatch: %+v", all[0])
	}

	filtered, err := s.ListDecisions(ctx, []string{"bbb222"})
	if err != nil {
		t.Fatal(err)
	}
	if len(filtered) != 1 || filtered[0].ID != "d2" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestSearch(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.UpsertCitations(ctx, testCitations()); err != nil {
		t.Fatal(err)
	}

	results, err := s.Search(ctx, "aspirin", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ID != "aaa111" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.URL != "https://pubmed.ncbi.nlm.nih.gov/11111111/" {
		t.Errorf("URL = %q, PMID link not built", r.URL)
	}

	doiOnly, err := s.Search(ctx, "statins", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(doiOnly) != 1 || doiOnly[0].URL != "https://doi.org/10.2000/stat.2019" {
		t.Errorf("results = %+v, want DOI fallback link", doiOnly)
	}

	if _, err := s.Search(ctx, "   ", 10); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestStats(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.UpsertCitations(ctx, testCitations()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertDecisions(ctx, []types.ScreeningDecision{
		{ID: "d1", CitationID: "aaa111", Verdict: types.VerdictInclude},
		{ID: "d2", CitationID: "bbb222", Verdict: types.VerdictExclude},
	}); err != nil {
		t.Fatal(err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Citations != 2 || stats.Decisions != 2 || stats.Included != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.ByFormat["medline"] != 1 || stats.ByFormat["ris"] != 1 {
		t.Errorf("ByFormat = %v", stats.ByFormat)
	}
	if len(stats.Years) != 2 || stats.Years[0].Year != 2019 || stats.Years[1].Year != 2020 {
		t.Errorf("Years = %v, want ascending distribution", stats.Years)
	}
}
