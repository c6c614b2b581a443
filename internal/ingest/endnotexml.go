// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// EndNote wraps most text content in nested <style> elements, so plain
// chardata mapping loses it. innerText collects all character data in
// a subtree regardless of nesting.
type innerText string

func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tk := tok.(type) {
		case xml.CharData:
			b.Write(tk)
		case xml.EndElement:
			if tk.Name == start.Name {
				*t = innerText(strings.TrimSpace(b.String()))
				return nil
			}
		}
	}
}

// EndNote XML export structures.
type endnoteXML struct {
	Records []endnoteRecord `xml:"records>record"`
}

type endnoteRecord struct {
	RecNumber string      `xml:"rec-number"`
	Titles    *struct {
		Title          innerText `xml:"title"`
		SecondaryTitle innerText `xml:"secondary-title"`
	} `xml:"titles"`
	Abstract     innerText   `xml:"abstract"`
	Authors      []innerText `xml:"contributors>authors>author"`
	Year         innerText   `xml:"dates>year"`
	Periodical   innerText   `xml:"periodical>full-title"`
	ElectronicID innerText   `xml:"electronic-resource-num"`
	Keywords     []innerText `xml:"keywords>keyword"`
}

// parseEndNoteXML parses the EndNote XML export. A record without a
// title node is structurally incomplete and dropped with a warning.
func parseEndNoteXML(data []byte) ([]*types.RawRecord, []Warning) {
	var doc endnoteXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, []Warning{{Message: "endnote xml unparsable: " + err.Error()}}
	}

	// Some exports use <records> itself as the document root.
	if len(doc.Records) == 0 {
		var bare struct {
			Records []endnoteRecord `xml:"record"`
		}
		if err := xml.Unmarshal(data, &bare); err == nil {
			doc.Records = bare.Records
		}
	}

	var records []*types.RawRecord
	var warnings []Warning

	for i, r := range doc.Records {
		if r.Titles == nil || strings.TrimSpace(string(r.Titles.Title)) == "" {
			warnings = append(warnings, malformed(i+1, "endnote record lacks a title node, dropped"))
			continue
		}

		rec := types.NewRawRecord()
		rec.Add("rec-number", strings.TrimSpace(r.RecNumber))
		rec.Add("title", string(r.Titles.Title))
		rec.Add("abstract", string(r.Abstract))

		for _, a := range r.Authors {
			if name := strings.TrimSpace(string(a)); name != "" {
				rec.Add("authors", name)
			}
		}

		rec.Add("year", string(r.Year))

		// The journal lives in the periodical node, falling back to
		// the secondary title.
		journal := string(r.Periodical)
		if journal == "" {
			journal = string(r.Titles.SecondaryTitle)
		}
		rec.Add("journal", journal)

		rec.Add("doi", string(r.ElectronicID))

		for _, kw := range r.Keywords {
			if k := strings.TrimSpace(string(kw)); k != "" {
				rec.Add("keywords", k)
			}
		}

		records = append(records, rec)
	}

	return records, warnings
}
