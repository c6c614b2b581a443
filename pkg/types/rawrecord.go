// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RawRecord is an order-preserving mapping from source field name to
// raw string values, as extracted by a format parser before
// normalization. Repeated fields (multiple authors, keywords)
// accumulate as ordered lists under one key.
type RawRecord struct {
	keys   []string
	values map[string][]string
}

// NewRawRecord returns an empty RawRecord.
func NewRawRecord() *RawRecord {
	return &RawRecord{values: make(map[string][]string)}
}

// Add appends a value under the given field name, preserving first-seen
// key order.
func (r *RawRecord) Add(key, value string) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = append(r.values[key], value)
}

// ExtendLast folds continuation text into the most recent value under
// key, joining with a single space. If the key has no values yet the
// text is added as the first one.
func (r *RawRecord) ExtendLast(key, text string) {
	vs := r.values[key]
	if len(vs) == 0 {
		r.Add(key, text)
		return
	}
	if vs[len(vs)-1] == "" {
		vs[len(vs)-1] = text
	} else {
		vs[len(vs)-1] += " " + text
	}
}

// First returns the first value recorded under key, or "".
func (r *RawRecord) First(key string) string {
	vs := r.values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns all values recorded under key in source order.
func (r *RawRecord) Values(key string) []string {
	return r.values[key]
}

// Keys returns the field names in first-seen order.
func (r *RawRecord) Keys() []string {
	return r.keys
}

// Len returns the number of distinct field names.
func (r *RawRecord) Len() int {
	return len(r.keys)
}

// Fields returns the record as a plain map for retention on the
// canonical Citation. The returned slices are copies.
func (r *RawRecord) Fields() map[string][]string {
	out := make(map[string][]string, len(r.keys))
	for k, vs := range r.values {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
