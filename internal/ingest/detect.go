// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// ErrUnknownFormat is returned when no structural signature matches.
// Unknown format is fatal for the file, not for the batch.
var ErrUnknownFormat = errors.New("unrecognized citation export format")

// detectWindow bounds how much of the file the detector inspects.
const detectWindow = 4096

// risTagLine matches a line-leading two-character tag followed by two
// spaces and a dash, e.g. "TY  - JOUR".
var risTagLine = regexp.MustCompile(`(?m)^[A-Z][A-Z0-9]  - `)

// medlineTagLine matches MEDLINE tag-value lines, whose tags are 1-4
// characters padded to width four before the dash, e.g. "PMID- 123"
// or "TI  - Title".
var medlineTagLine = regexp.MustCompile(`(?m)^[A-Z][A-Z0-9]{0,3}\s*- `)

// Detect classifies raw bytes into a citation export format. It is
// pure and side-effect-free. Structural signatures decide; the
// filename hint only breaks ties between plausible text formats.
func Detect(data []byte, filenameHint string) (types.FormatKind, error) {
	window := data
	if len(window) > detectWindow {
		window = window[:detectWindow]
	}
	head := strings.TrimLeft(string(window), " \t\r\n\uFEFF")
	lower := strings.ToLower(head)

	// XML: the root element distinguishes the biomedical schema from
	// the structured-records schema.
	if strings.HasPrefix(head, "<") {
		switch {
		case strings.Contains(lower, "<pubmedarticle"):
			return types.FormatPubMedXML, nil
		case strings.Contains(lower, "<records") || strings.Contains(lower, "<record"):
			return types.FormatEndNoteXML, nil
		}
		return "", fmt.Errorf("%w: unrecognized XML root element", ErrUnknownFormat)
	}

	// RIS: a TY record opener outweighs the looser MEDLINE signature,
	// since every RIS tag line also matches the MEDLINE pattern.
	if strings.Contains(head, "TY  - ") && risTagLine.MatchString(head) {
		return types.FormatRIS, nil
	}

	// MEDLINE text: PMID or the characteristic title/abstract tags.
	if medlineTagLine.MatchString(head) {
		for _, sig := range []string{"PMID- ", "TI  - ", "AB  - ", "FAU - "} {
			if strings.Contains(head, sig) {
				return types.FormatMEDLINE, nil
			}
		}
	}

	// Delimited table: a header row drawn from the known alias set.
	if headerLine, delim := sniffHeader(head); headerLine != "" {
		if headerMatchesAliases(headerLine, delim) {
			return types.FormatCSV, nil
		}
	}

	// Extension hint as a last resort for sparse files whose structure
	// alone was inconclusive.
	switch strings.ToLower(filepath.Ext(filenameHint)) {
	case ".ris":
		if risTagLine.MatchString(head) {
			return types.FormatRIS, nil
		}
	case ".nbib":
		if medlineTagLine.MatchString(head) {
			return types.FormatMEDLINE, nil
		}
	}

	return "", ErrUnknownFormat
}

// columnAliases maps known header cell names (lowercased) to canonical
// citation fields. Matching is case-insensitive and order-independent.
var columnAliases = map[string]string{
	"pmid":             "id",
	"id":               "id",
	"title":            "title",
	"abstract":         "abstract",
	"year":             "year",
	"publication year": "year",
	"authors":          "authors",
	"author":           "authors",
	"journal":          "journal",
	"journal/book":     "journal",
	"doi":              "doi",
	"keywords":         "keywords",
	"mesh terms":       "mesh_terms",
}

// sniffHeader extracts the first line and picks the delimiter that
// splits it into the most cells. Returns "" when there is no line.
func sniffHeader(head string) (string, rune) {
	line := head
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if line == "" {
		return "", 0
	}

	best := rune(',')
	bestCount := 0
	for _, delim := range []rune{',', ';', '\t', '|'} {
		if n := strings.Count(line, string(delim)); n > bestCount {
			best = delim
			bestCount = n
		}
	}
	if bestCount == 0 {
		return "", 0
	}
	return line, best
}

// headerMatchesAliases reports whether at least two header cells are
// known column aliases, one of which names the title. The title
// requirement keeps arbitrary tabular data from being claimed.
func headerMatchesAliases(line string, delim rune) bool {
	cells := strings.Split(line, string(delim))
	matched := 0
	hasTitle := false
	for _, cell := range cells {
		name := strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(cell), `"`)))
		canonical, ok := columnAliases[name]
		if !ok {
			continue
		}
		matched++
		if canonical == "title" {
			hasTitle = true
		}
	}
	return matched >= 2 && hasTitle
}
