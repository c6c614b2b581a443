// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pdiddy/screening-engine/pkg/types"
)

// idLength is the number of hex characters kept from the content hash.
// 16 characters (64 bits) keeps identifiers short enough to read in
// reports while making accidental collisions implausible at corpus
// scale.
const idLength = 16

// contentID derives the citation identifier from the format tag and
// the raw fields in source order. No clock and no randomness: the same
// record content always hashes to the same ID, which is what makes
// re-imports idempotent.
func contentID(rec *types.RawRecord, kind types.FormatKind) string {
	h := sha256.New()
	h.Write([]byte(kind))
	for _, key := range rec.Keys() {
		h.Write([]byte{0x1e})
		h.Write([]byte(key))
		for _, v := range rec.Values(key) {
			h.Write([]byte{0x1f})
			h.Write([]byte(v))
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:idLength]
}
