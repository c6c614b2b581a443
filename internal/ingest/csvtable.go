// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// parseCSV parses a delimited citation table. The delimiter is sniffed
// from the header row rather than assumed; quoting follows RFC 4180
// with lazy quotes so slightly sloppy exports still parse. Rows with a
// mismatched field count are skipped with a warning.
func parseCSV(data []byte) ([]*types.RawRecord, []Warning) {
	text := normalizeNewlines(strings.TrimPrefix(string(data), "\uFEFF"))

	_, delim := sniffHeader(text)
	if delim == 0 {
		return nil, []Warning{{Message: "csv file has no delimited header row"}}
	}

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // field-count mismatches handled per row

	header, err := r.Read()
	if err != nil {
		return nil, []Warning{{Message: "csv header unreadable: " + err.Error()}}
	}
	for i, cell := range header {
		header[i] = strings.TrimSpace(cell)
	}

	var records []*types.RawRecord
	var warnings []Warning

	rowNum := 0
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			warnings = append(warnings, malformed(rowNum, "csv row unparsable, skipped: %v", err))
			continue
		}
		if len(row) != len(header) {
			warnings = append(warnings, malformed(rowNum, "csv row has %d fields, header has %d, skipped", len(row), len(header)))
			continue
		}

		rec := types.NewRawRecord()
		empty := true
		for i, cell := range row {
			value := strings.TrimSpace(cell)
			if value != "" {
				empty = false
			}
			if canonical, ok := columnAliases[strings.ToLower(header[i])]; ok && canonical == "authors" {
				// Multi-author cells are semicolon-separated lists.
				for _, author := range strings.Split(value, ";") {
					if a := strings.TrimSpace(author); a != "" {
						rec.Add(header[i], a)
					}
				}
				continue
			}
			rec.Add(header[i], value)
		}
		if empty {
			warnings = append(warnings, malformed(rowNum, "csv row is empty, skipped"))
			continue
		}
		records = append(records, rec)
	}

	return records, warnings
}
