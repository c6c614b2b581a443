// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"regexp"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// risTag matches one RIS field line: a two-character tag, two spaces, a
// dash, and the value ("AU  - Smith, J").
var risTag = regexp.MustCompile(`^([A-Z][A-Z0-9])  -\s?(.*)$`)

// parseRIS parses the reference-interchange format. A record opens
// with "TY  -" and closes with "ER  -"; tags like AU and KW repeat.
// Unindented text between tags folds into the preceding field.
func parseRIS(data []byte) ([]*types.RawRecord, []Warning) {
	var records []*types.RawRecord
	var warnings []Warning

	recordNum := 0
	var rec *types.RawRecord
	var lastTag string

	flush := func(closed bool) {
		if rec == nil {
			return
		}
		recordNum++
		if !closed {
			warnings = append(warnings, malformed(recordNum, "ris record not terminated by ER tag"))
		}
		if rec.First("TI") == "" && rec.First("T1") == "" && rec.First("ID") == "" {
			warnings = append(warnings, malformed(recordNum, "ris record has no title or identifier, dropped"))
		} else {
			records = append(records, rec)
		}
		rec, lastTag = nil, ""
	}

	for _, line := range strings.Split(normalizeNewlines(string(data)), "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		m := risTag.FindStringSubmatch(trimmed)
		if m == nil {
			// Continuation of the previous field.
			if rec != nil && lastTag != "" {
				rec.ExtendLast(lastTag, strings.TrimSpace(trimmed))
			} else {
				warnings = append(warnings, Warning{Message: "ris content outside any record, skipped: " + strings.TrimSpace(trimmed)})
			}
			continue
		}

		tag, value := m[1], strings.TrimSpace(m[2])
		switch tag {
		case "TY":
			// A new TY without an ER closes the previous record.
			flush(false)
			rec = types.NewRawRecord()
			rec.Add(tag, value)
			lastTag = tag
		case "ER":
			if rec == nil {
				warnings = append(warnings, Warning{Message: "ris ER tag without an open record, skipped"})
				continue
			}
			flush(true)
		default:
			if rec == nil {
				warnings = append(warnings, Warning{Message: "ris field " + tag + " outside any record, skipped"})
				continue
			}
			rec.Add(tag, value)
			lastTag = tag
		}
	}
	// A record still open at EOF is unterminated but kept.
	flush(false)

	return records, warnings
}
