// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared across orgbib stages:
// bibliography entries, field specs, outline headings, and configuration.
package types

import "strings"

// Reserved pseudo-field names. Every BibEntry carries exactly one of each;
// they are considered logically first regardless of insertion order.
const (
	FieldType = "type"
	FieldKey  = "key"
)

// EntryField is one named value of a bibliography entry. Names are
// lowercase identifiers; values have outer delimiters stripped and
// whitespace runs collapsed to single spaces (see bibtex.Normalize).
type EntryField struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// BibEntry is a normalized keyed mapping representing one bibliography
// record. Field order is insertion order; it is preserved for output
// stability but carries no meaning beyond the reserved "type" and "key"
// pseudo-fields. BibEntry is a value object: operations copy rather than
// share backing storage.
type BibEntry struct {
	fields []EntryField
}

// NewBibEntry returns an entry with the given type and citation key.
// Either may be empty and set later.
func NewBibEntry(entryType, key string) BibEntry {
	var e BibEntry
	if entryType != "" {
		e.Set(FieldType, strings.ToLower(entryType))
	}
	if key != "" {
		e.Set(FieldKey, key)
	}
	return e
}

// Set stores value under name, replacing any existing value in place.
// Names are lower-cased on insertion.
func (e *BibEntry) Set(name, value string) {
	name = strings.ToLower(name)
	for i := range e.fields {
		if e.fields[i].Name == name {
			e.fields[i].Value = value
			return
		}
	}
	e.fields = append(e.fields, EntryField{Name: name, Value: value})
}

// Get returns the value stored under name and whether it is present.
func (e BibEntry) Get(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, f := range e.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Has reports whether name is present with a non-empty value.
func (e BibEntry) Has(name string) bool {
	v, ok := e.Get(name)
	return ok && v != ""
}

// Delete removes name from the entry if present.
func (e *BibEntry) Delete(name string) {
	name = strings.ToLower(name)
	for i := range e.fields {
		if e.fields[i].Name == name {
			e.fields = append(e.fields[:i], e.fields[i+1:]...)
			return
		}
	}
}

// Type returns the entry type (lowercase), or "" if unset.
func (e BibEntry) Type() string {
	v, _ := e.Get(FieldType)
	return v
}

// Key returns the citation key, or "" if unset.
func (e BibEntry) Key() string {
	v, _ := e.Get(FieldKey)
	return v
}

// Len returns the number of fields, including the reserved pseudo-fields.
func (e BibEntry) Len() int { return len(e.fields) }

// IsEmpty reports whether the entry holds no fields at all.
func (e BibEntry) IsEmpty() bool { return len(e.fields) == 0 }

// Fields returns a copy of the fields in insertion order.
func (e BibEntry) Fields() []EntryField {
	out := make([]EntryField, len(e.fields))
	copy(out, e.fields)
	return out
}

// Clone returns a deep copy of the entry.
func (e BibEntry) Clone() BibEntry {
	return BibEntry{fields: e.Fields()}
}

// Equal compares two entries as unordered maps: same field set, same
// values. Insertion order is not significant.
func (e BibEntry) Equal(other BibEntry) bool {
	if len(e.fields) != len(other.fields) {
		return false
	}
	for _, f := range e.fields {
		v, ok := other.Get(f.Name)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}
