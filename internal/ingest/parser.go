// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// parseFunc is the shared capability every format parser implements.
type parseFunc func(data []byte) ([]*types.RawRecord, []Warning)

// parsers is the dispatch table keyed by format tag. The format set is
// closed; the detector only ever returns keys present here.
var parsers = map[types.FormatKind]parseFunc{
	types.FormatMEDLINE:    parseMEDLINE,
	types.FormatRIS:        parseRIS,
	types.FormatCSV:        parseCSV,
	types.FormatPubMedXML:  parsePubMedXML,
	types.FormatEndNoteXML: parseEndNoteXML,
}

// Parse extracts raw field records from data in the given format.
// Malformed individual records are skipped and reported as warnings;
// one bad record never aborts the rest.
func Parse(data []byte, kind types.FormatKind) ([]*types.RawRecord, []Warning, error) {
	parse, ok := parsers[kind]
	if !ok {
		return nil, nil, fmt.Errorf("no parser for format %q", kind)
	}
	records, warnings := parse(data)
	return records, warnings, nil
}
