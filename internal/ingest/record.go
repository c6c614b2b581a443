// Package ingest detects citation export formats and parses them into
// raw field records. Parsing is tolerant of individual malformed
// records: a bad record is skipped with a warning and never aborts the
// rest of the batch.
package ingest

import "fmt"

// Warning records a recoverable parsing problem: a malformed or
// structurally incomplete record that was skipped.
type Warning struct {
	// Record is the 1-based position of the offending record in its
	// file, 0 when the problem is not tied to one record.
	Record int `json:"record,omitempty"`

	// Message describes what was skipped and why.
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Record > 0 {
		return fmt.Sprintf("record %d: %s", w.Record, w.Message)
	}
	return w.Message
}

// malformed builds the conventional warning for a dropped record.
func malformed(record int, format string, args ...any) Warning {
	return Warning{Record: record, Message: fmt.Sprintf(format, args...)}
}
