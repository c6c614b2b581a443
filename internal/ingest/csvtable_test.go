// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	data := strings.Join([]string{
		`pmid,title,abstract,authors,year,doi`,
		`1,"Title A","An abstract, with a comma","Smith, Jane; Doe, Alex",2020,10.1/xyz`,
		`2,Title B,Another abstract,"Lee, Kim",2019,10.2/abc`,
	}, "\n")

	records, warnings := parseCSV([]byte(data))
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	rec := records[0]
	if got := rec.First("title"); got != "Title A" {
		t.Errorf("title = %q", got)
	}
	if got := rec.First("abstract"); got != "An abstract, with a comma" {
		t.Errorf("abstract = %q, quoting mishandled", got)
	}
	if got := rec.Values("authors"); len(got) != 2 || got[0] != "Smith, Jane" || got[1] != "Doe, Alex" {
		t.Errorf("authors = %v, want semicolon-split list", got)
	}
}

func TestParseCSVSemicolonDelimiter(t *testing.T) {
	data := "title;year;doi\nTitle A;2021;10.1/x\n"

	records, warnings := parseCSV([]byte(data))
	if len(warnings) != 0 {
		t.Fatalf("warnings = %v, want none", warnings)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].First("year"); got != "2021" {
		t.Errorf("year = %q", got)
	}
}

func TestParseCSVSkipsBadRows(t *testing.T) {
	data := strings.Join([]string{
		"title,year",
		"Title A,2020",
		"only-one-field",
		",",
		"Title B,2021",
	}, "\n")

	records, warnings := parseCSV([]byte(data))
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2 (field-count mismatch, empty row)", len(warnings))
	}
}
