// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"regexp"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// medlineTag matches one MEDLINE field line: a 1-4 character tag padded
// to width four, a dash, and the value.
var medlineTag = regexp.MustCompile(`^([A-Z][A-Z0-9]{0,3})\s*-\s?(.*)$`)

// parseMEDLINE parses the PubMed/MEDLINE text export (.nbib). Records
// are separated by blank lines or the next PMID line; continuation
// lines are indented and fold into the preceding field with a space.
func parseMEDLINE(data []byte) ([]*types.RawRecord, []Warning) {
	var records []*types.RawRecord
	var warnings []Warning

	recordNum := 0
	flush := func(rec *types.RawRecord) {
		if rec == nil || rec.Len() == 0 {
			return
		}
		recordNum++
		// PMID or a title is the minimum for a usable record.
		if rec.First("PMID") == "" && rec.First("TI") == "" {
			warnings = append(warnings, malformed(recordNum, "medline record has neither PMID nor TI, dropped"))
			return
		}
		records = append(records, rec)
	}

	var rec *types.RawRecord
	var lastTag string

	for _, line := range strings.Split(normalizeNewlines(string(data)), "\n") {
		if strings.TrimSpace(line) == "" {
			flush(rec)
			rec, lastTag = nil, ""
			continue
		}

		// Continuation lines are indented under the previous tag.
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && rec != nil && lastTag != "" {
			rec.ExtendLast(lastTag, strings.TrimSpace(line))
			continue
		}

		m := medlineTag.FindStringSubmatch(line)
		if m == nil {
			// A stray non-tag, non-indented line: fold it into the
			// previous field rather than lose the text.
			if rec != nil && lastTag != "" {
				rec.ExtendLast(lastTag, strings.TrimSpace(line))
			}
			continue
		}

		tag, value := m[1], strings.TrimSpace(m[2])

		// A new PMID starts a new record even without a blank line.
		if tag == "PMID" && rec != nil && rec.First("PMID") != "" {
			flush(rec)
			rec = nil
		}
		if rec == nil {
			rec = types.NewRawRecord()
		}
		rec.Add(tag, value)
		lastTag = tag
	}
	flush(rec)

	return records, warnings
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
