// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// FieldSpec is one slot in an entry type's required or optional field
// list. A spec is either a single field name or a group of alternative
// names of which exactly one must be present (e.g. {editor, author}).
type FieldSpec struct {
	names []string
}

// Field returns a spec satisfied only by the named field.
func Field(name string) FieldSpec {
	return FieldSpec{names: []string{strings.ToLower(name)}}
}

// OneOf returns a spec satisfied by any one of the named fields.
func OneOf(names ...string) FieldSpec {
	lower := make([]string, len(names))
	for i, n := range names {
		lower[i] = strings.ToLower(n)
	}
	return FieldSpec{names: lower}
}

// IsAlternative reports whether the spec is an alternative group.
func (s FieldSpec) IsAlternative() bool { return len(s.names) > 1 }

// Names returns the candidate field names in declaration order.
func (s FieldSpec) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// SatisfiedBy returns the first candidate name present with a non-empty
// value in the entry, or "" if the spec is unsatisfied.
func (s FieldSpec) SatisfiedBy(e BibEntry) string {
	for _, n := range s.names {
		if e.Has(n) {
			return n
		}
	}
	return ""
}

// String renders the spec for prompts and error messages:
// a bare name, or "editor|author" for alternative groups.
func (s FieldSpec) String() string {
	return strings.Join(s.names, "|")
}
