// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"testing"

	"github.com/pdiddy/screening-engine/pkg/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		hint string
		want types.FormatKind
	}{
		{
			name: "medline",
			data: "PMID- 12345678\nTI  - A trial of something.\nAB  - Background text.\n",
			want: types.FormatMEDLINE,
		},
		{
			name: "medline without pmid",
			data: "TI  - A trial of something.\nAB  - Background text.\nFAU - Smith, Jane\n",
			want: types.FormatMEDLINE,
		},
		{
			name: "ris",
			data: "TY  - JOUR\nTI  - Title A\nAU  - Smith, J\nER  - \n",
			want: types.FormatRIS,
		},
		{
			name: "ris beats medline signature",
			data: "TY  - JOUR\nAB  - An abstract.\nER  - \n",
			want: types.FormatRIS,
		},
		{
			name: "csv comma",
			data: "pmid,title,abstract,year\n1,Title A,Some abstract,2020\n",
			want: types.FormatCSV,
		},
		{
			name: "csv semicolon",
			data: "Title;Authors;Journal;DOI\nA;Smith, J;Lancet;10.1/x\n",
			want: types.FormatCSV,
		},
		{
			name: "csv tab",
			data: "title\tabstract\tyear\nA\tB\t2019\n",
			want: types.FormatCSV,
		},
		{
			name: "pubmed xml",
			data: `<?xml version="1.0"?><PubmedArticleSet><PubmedArticle></PubmedArticle></PubmedArticleSet>`,
			want: types.FormatPubMedXML,
		},
		{
			name: "endnote xml",
			data: `<?xml version="1.0"?><xml><records><record></record></records></xml>`,
			want: types.FormatEndNoteXML,
		},
		{
			name: "sparse ris rescued by extension",
			data: "XX  - something\n",
			hint: "refs.ris",
			want: types.FormatRIS,
		},
		{
			name: "sparse medline rescued by extension",
			data: "XXXX- something\n",
			hint: "refs.nbib",
			want: types.FormatMEDLINE,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.data), tt.hint)
			if err != nil {
				t.Fatalf("Detect() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"prose", "This is just a paragraph of text with no structure.\n"},
		{"unrelated csv", "name,age,city\nAlice,30,Boston\n"},
		{"unrelated xml", `<?xml version="1.0"?><inventory><item/></inventory>`},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Detect([]byte(tt.data), "input.txt")
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("Detect() error = %v, want ErrUnknownFormat", err)
			}
		})
	}
}
