// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared domain types for screening-engine:
// citations, screening criteria, screening decisions, and the report
// types produced by the validator and the consistency critic.
package types

// FormatKind identifies a supported citation export format. The set is
// closed: the detector resolves raw bytes to one of these tags and the
// parser registry dispatches on it.
type FormatKind string

const (
	// FormatMEDLINE is the line-oriented PubMed/MEDLINE text export
	// (.nbib), tag-value lines like "TI  - Title".
	FormatMEDLINE FormatKind = "medline"

	// FormatRIS is the reference-interchange format with TY/ER record
	// delimiters and repeatable AU tags.
	FormatRIS FormatKind = "ris"

	// FormatCSV is a delimited table with a header row drawn from a
	// known set of column aliases.
	FormatCSV FormatKind = "csv"

	// FormatPubMedXML is the PubMed XML export (PubmedArticleSet).
	FormatPubMedXML FormatKind = "pubmed-xml"

	// FormatEndNoteXML is the EndNote XML export (records/record).
	FormatEndNoteXML FormatKind = "endnote-xml"
)

// Citation is the canonical bibliographic record every export format
// normalizes into. Citations are immutable after import: the ID is a
// content hash of the raw source fields plus the detected format, so
// re-importing identical content produces the identical Citation.
type Citation struct {
	// ID is a deterministic content-derived identifier (truncated
	// SHA-256 of the raw fields and format tag).
	ID string `json:"id" yaml:"id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// Authors lists author names in source order, canonicalized to
	// "Family, Given" where the split is unambiguous.
	Authors []string `json:"authors" yaml:"authors"`

	// Abstract is the article abstract, empty if the export lacks one.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the 4-digit publication year, 0 if unknown.
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Journal is the journal or venue name.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty"`

	// DOI is the Digital Object Identifier, normalized (no URL prefix).
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Format records which export format the citation came from.
	Format FormatKind `json:"format" yaml:"format"`

	// Raw preserves the source field mapping for audit and traceability.
	// Keys are source field names; repeated fields keep their order.
	Raw map[string][]string `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// FirstAuthor returns the first author name, or "" if there are none.
func (c Citation) FirstAuthor() string {
	if len(c.Authors) == 0 {
		return ""
	}
	return c.Authors[0]
}
