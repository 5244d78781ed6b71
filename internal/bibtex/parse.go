// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"io"
	"strings"

	"github.com/pdiddy/orgbib/pkg/types"
)

// Normalize converts a raw record into a BibEntry: field names are
// lower-cased, the "=type=" and "=key=" pseudo-fields become "type" and
// "key", one outer delimiter layer is stripped from each value, and
// whitespace runs (including newlines) collapse to single spaces.
func Normalize(rec RawRecord) types.BibEntry {
	var entry types.BibEntry
	for _, p := range rec.Pairs {
		name := strings.ToLower(p.Name)
		switch name {
		case PseudoType:
			name = types.FieldType
			p.Value = strings.ToLower(p.Value)
		case PseudoKey:
			name = types.FieldKey
		}
		entry.Set(name, collapseSpace(stripDelimiters(p.Value)))
	}
	return entry
}

// stripDelimiters removes exactly one outer layer of matching delimiters:
// a double-quote pair or a brace pair. The strip is not recursive.
func stripDelimiters(v string) string {
	if len(v) < 2 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	if (first == '"' && last == '"') || (first == '{' && last == '}') {
		return v[1 : len(v)-1]
	}
	return v
}

// collapseSpace reduces every whitespace run (spaces, tabs, newlines,
// carriage returns) to a single space and trims the ends.
func collapseSpace(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

// ParseInto scans bibliography text and stages every non-empty entry on
// the queue, most-recent-first. It returns the number of entries staged.
// Malformed records abort the scan with the error from the scanner;
// entries staged before the failure remain on the queue.
func ParseInto(r io.Reader, q *Queue) (int, error) {
	records, err := Scan(r)

	staged := 0
	for _, rec := range records {
		entry := Normalize(rec)
		if entry.IsEmpty() {
			continue
		}
		q.Push(entry)
		staged++
	}
	return staged, err
}

// Parse scans bibliography text and returns the entries in document
// order, without staging them.
func Parse(r io.Reader) ([]types.BibEntry, error) {
	records, err := Scan(r)
	if err != nil {
		return nil, err
	}
	entries := make([]types.BibEntry, 0, len(records))
	for _, rec := range records {
		entry := Normalize(rec)
		if entry.IsEmpty() {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
