// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// PubMed XML export structures. Only the fields the normalizer consumes
// are mapped; everything else in the export is ignored.
type pubmedArticleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation pubmedCitation `xml:"MedlineCitation"`
}

type pubmedCitation struct {
	PMID     string          `xml:"PMID"`
	Article  *pubmedArticleE `xml:"Article"`
	Mesh     []string        `xml:"MeshHeadingList>MeshHeading>DescriptorName"`
	Keywords []string        `xml:"KeywordList>Keyword"`
}

type pubmedArticleE struct {
	Title       string           `xml:"ArticleTitle"`
	Abstract    []pubmedAbstract `xml:"Abstract>AbstractText"`
	Authors     []pubmedAuthor   `xml:"AuthorList>Author"`
	Journal     string           `xml:"Journal>Title"`
	PubDate     pubmedPubDate    `xml:"Journal>JournalIssue>PubDate"`
	ELocationID []pubmedELoc     `xml:"ELocationID"`
}

type pubmedAbstract struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type pubmedAuthor struct {
	LastName string `xml:"LastName"`
	ForeName string `xml:"ForeName"`
	Initials string `xml:"Initials"`
}

type pubmedPubDate struct {
	Year        string `xml:"Year"`
	MedlineDate string `xml:"MedlineDate"`
}

type pubmedELoc struct {
	EIdType string `xml:"EIdType,attr"`
	Value   string `xml:",chardata"`
}

// parsePubMedXML parses the PubMed XML export. Articles without a PMID
// or without an Article node are structurally incomplete and dropped
// with a warning; the rest of the batch continues.
func parsePubMedXML(data []byte) ([]*types.RawRecord, []Warning) {
	var set pubmedArticleSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, []Warning{{Message: "pubmed xml unparsable: " + err.Error()}}
	}

	var records []*types.RawRecord
	var warnings []Warning

	for i, article := range set.Articles {
		c := article.Citation
		if strings.TrimSpace(c.PMID) == "" {
			warnings = append(warnings, malformed(i+1, "pubmed article lacks a PMID node, dropped"))
			continue
		}
		if c.Article == nil {
			warnings = append(warnings, malformed(i+1, "pubmed article %s lacks an Article node, dropped", c.PMID))
			continue
		}

		rec := types.NewRawRecord()
		rec.Add("pmid", strings.TrimSpace(c.PMID))
		rec.Add("title", strings.TrimSpace(c.Article.Title))
		rec.Add("abstract", joinAbstract(c.Article.Abstract))

		for _, a := range c.Article.Authors {
			last := strings.TrimSpace(a.LastName)
			if last == "" {
				continue
			}
			given := strings.TrimSpace(a.ForeName)
			if given == "" {
				given = strings.TrimSpace(a.Initials)
			}
			if given != "" {
				rec.Add("authors", last+", "+given)
			} else {
				rec.Add("authors", last)
			}
		}

		rec.Add("journal", strings.TrimSpace(c.Article.Journal))

		year := strings.TrimSpace(c.Article.PubDate.Year)
		if year == "" {
			year = strings.TrimSpace(c.Article.PubDate.MedlineDate)
		}
		rec.Add("year", year)

		for _, el := range c.Article.ELocationID {
			if el.EIdType == "doi" {
				rec.Add("doi", strings.TrimSpace(el.Value))
				break
			}
		}

		for _, m := range c.Mesh {
			if m = strings.TrimSpace(m); m != "" {
				rec.Add("mesh_terms", m)
			}
		}
		for _, kw := range c.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				rec.Add("keywords", kw)
			}
		}

		records = append(records, rec)
	}

	return records, warnings
}

// joinAbstract concatenates structured abstract sections, prefixing
// each labelled section with its label ("METHODS: ...").
func joinAbstract(sections []pubmedAbstract) string {
	var parts []string
	for _, s := range sections {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if label := strings.TrimSpace(s.Label); label != "" {
			parts = append(parts, label+": "+text)
		} else {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
