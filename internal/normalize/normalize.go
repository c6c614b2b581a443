// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw parsed records onto the canonical
// Citation type. Normalization is pure: the same raw record and format
// always produce the same Citation, including its identifier.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// fieldAliases maps, per format, each canonical field to its candidate
// source keys in precedence order. The first key with a non-empty value
// wins; later candidates never overwrite it.
var fieldAliases = map[types.FormatKind]map[string][]string{
	types.FormatMEDLINE: {
		"title":    {"TI"},
		"abstract": {"AB"},
		"authors":  {"FAU", "AU"},
		"journal":  {"JT", "TA"},
		"year":     {"DP"},
	},
	types.FormatRIS: {
		"title":    {"TI", "T1"},
		"abstract": {"AB", "N2"},
		"authors":  {"AU", "A1", "A2"},
		"journal":  {"JO", "JF", "T2"},
		"year":     {"PY", "Y1"},
		"doi":      {"DO"},
	},
	types.FormatCSV: {
		"title":    {"title"},
		"abstract": {"abstract"},
		"authors":  {"authors", "author"},
		"journal":  {"journal", "journal/book"},
		"year":     {"year", "publication year"},
		"doi":      {"doi"},
	},
	types.FormatPubMedXML: {
		"title":    {"title"},
		"abstract": {"abstract"},
		"authors":  {"authors"},
		"journal":  {"journal"},
		"year":     {"year"},
		"doi":      {"doi"},
	},
	types.FormatEndNoteXML: {
		"title":    {"title"},
		"abstract": {"abstract"},
		"authors":  {"authors"},
		"journal":  {"journal"},
		"year":     {"year"},
		"doi":      {"doi"},
	},
}

// Normalize maps one raw record to the canonical Citation. The ID is
// derived solely from the raw content and the format tag.
func Normalize(rec *types.RawRecord, kind types.FormatKind) types.Citation {
	aliases := fieldAliases[kind]
	// CSV headers arrive verbatim from the file; match them
	// case-insensitively. Tag formats are matched exactly.
	fold := kind == types.FormatCSV

	c := types.Citation{
		ID:       contentID(rec, kind),
		Title:    strings.TrimSpace(first(rec, aliases["title"], fold)),
		Abstract: strings.TrimSpace(first(rec, aliases["abstract"], fold)),
		Journal:  strings.TrimSpace(first(rec, aliases["journal"], fold)),
		Format:   kind,
		Raw:      rec.Fields(),
	}

	c.Year = coerceYear(first(rec, aliases["year"], fold))

	for _, name := range all(rec, aliases["authors"], fold) {
		if a := canonicalAuthor(name); a != "" {
			c.Authors = append(c.Authors, a)
		}
	}

	if kind == types.FormatMEDLINE {
		c.DOI = medlineDOI(rec)
	} else {
		c.DOI = NormalizeDOI(first(rec, aliases["doi"], fold))
	}

	return c
}

// first returns the first non-empty value under the alias candidates.
func first(rec *types.RawRecord, candidates []string, fold bool) string {
	for _, key := range resolve(rec, candidates, fold) {
		for _, v := range rec.Values(key) {
			if strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	return ""
}

// all returns every value under the first alias candidate that has any,
// preserving source order.
func all(rec *types.RawRecord, candidates []string, fold bool) []string {
	for _, key := range resolve(rec, candidates, fold) {
		if vs := rec.Values(key); len(vs) > 0 {
			return vs
		}
	}
	return nil
}

// resolve maps alias candidates onto the record's actual keys,
// optionally case-insensitively.
func resolve(rec *types.RawRecord, candidates []string, fold bool) []string {
	if !fold {
		return candidates
	}
	var keys []string
	for _, want := range candidates {
		for _, have := range rec.Keys() {
			if strings.EqualFold(have, want) {
				keys = append(keys, have)
			}
		}
	}
	return keys
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// coerceYear extracts a plausible 4-digit publication year from a date
// field like "2021 Mar 15" or "2021/03/15". Returns 0 when no year in
// [1900, 2100] is present.
func coerceYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1900 && n <= 2100 {
			return n
		}
		return 0
	}
	m := yearPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, _ := strconv.Atoi(m)
	return n
}

// initialsToken matches a trailing block of author initials, as in the
// MEDLINE AU form "Smith JA".
var initialsToken = regexp.MustCompile(`^[A-Z]{1,3}$`)

// canonicalAuthor normalizes one author name to "Family, Given" when
// the split is unambiguous, and leaves it verbatim otherwise.
func canonicalAuthor(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}

	// Already "Family, Given": keep, with spacing tidied.
	if family, given, ok := strings.Cut(name, ","); ok {
		family = strings.TrimSpace(family)
		given = strings.TrimSpace(given)
		if given == "" {
			return family
		}
		return family + ", " + given
	}

	parts := strings.Fields(name)
	switch {
	case len(parts) == 1:
		return name
	case initialsToken.MatchString(parts[len(parts)-1]):
		// "Smith JA" and "van der Berg JA" both end in initials.
		return strings.Join(parts[:len(parts)-1], " ") + ", " + parts[len(parts)-1]
	case len(parts) == 2:
		// "Jane Smith": a clean given/family split.
		return parts[1] + ", " + parts[0]
	default:
		// Three or more words without initials is ambiguous; keep as is.
		return name
	}
}

// doiPrefixes are the URL and label wrappers stripped from DOI values.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI strips URL and label prefixes from a DOI so that the
// same identifier always compares equal regardless of how the export
// wrote it.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, p := range doiPrefixes {
		if len(doi) >= len(p) && strings.EqualFold(doi[:len(p)], p) {
			doi = doi[len(p):]
			break
		}
	}
	return strings.TrimSpace(doi)
}

// medlineDOI pulls the DOI out of the LID or AID fields, which carry
// several identifier kinds distinguished by a bracketed suffix, e.g.
// "10.1000/xyz123 [doi]".
func medlineDOI(rec *types.RawRecord) string {
	for _, key := range []string{"LID", "AID"} {
		for _, v := range rec.Values(key) {
			if doi, ok := strings.CutSuffix(strings.TrimSpace(v), "[doi]"); ok {
				return NormalizeDOI(doi)
			}
		}
	}
	return ""
}
