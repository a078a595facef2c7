package cafe

import (
	"bytes"
	"encoding/json"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// CanonicalVariants produces a deterministic serialization of a variant
// map, used as the merge key for cart lines alongside the item id.
//
// Two additions merge into one line iff their canonical forms are equal,
// so the encoding must be stable regardless of map iteration order or
// Unicode representation:
//
//  1. Keys sorted lexicographically by byte
//  2. Keys and values NFC normalized
//  3. JSON string escaping for unambiguous boundaries
//
// A nil map and an empty map canonicalize identically to "{}".
func CanonicalVariants(variants map[string]string) string {
	if len(variants) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(variants))
	for k := range variants {
		keys = append(keys, norm.NFC.String(k))
	}
	sort.Strings(keys)

	// Re-read values through normalized keys. If two raw keys normalize
	// to the same string, last write wins - acceptable, since such maps
	// are visually indistinguishable anyway.
	normalized := make(map[string]string, len(variants))
	for k, v := range variants {
		normalized[norm.NFC.String(k)] = norm.NFC.String(v)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeJSONString(&buf, k)
		buf.WriteByte(':')
		writeJSONString(&buf, normalized[k])
	}
	buf.WriteByte('}')
	return buf.String()
}

// writeJSONString appends s as a JSON string literal.
func writeJSONString(buf *bytes.Buffer, s string) {
	// json.Marshal on a string cannot fail.
	b, _ := json.Marshal(s)
	buf.Write(b)
}
