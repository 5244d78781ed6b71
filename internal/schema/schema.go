// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema holds the immutable registry of BibTeX entry types and
// the field catalog used for prompting and validation.
package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/orgbib/pkg/types"
)

// ErrUnknownType is returned when an entry type is not in the registry.
var ErrUnknownType = errors.New("unknown entry type")

// EntryType describes one bibliographic record category: its required
// field specs (possibly alternative groups) and its optional field specs,
// both in prompt/emission order.
type EntryType struct {
	Name        string
	Description string
	Required    []types.FieldSpec
	Optional    []types.FieldSpec
}

// entryTypes is the fixed enumeration of the 14 standard BibTeX entry
// types. The table is static configuration: no mutation operations exist.
var entryTypes = []EntryType{
	{
		Name:        "article",
		Description: "Article in a journal",
		Required:    specs("author", "title", "journal", "year"),
		Optional:    specs("volume", "number", "pages", "month", "note"),
	},
	{
		Name:        "book",
		Description: "Book with an explicit publisher",
		Required: []types.FieldSpec{
			types.OneOf("author", "editor"),
			types.Field("title"), types.Field("publisher"), types.Field("year"),
		},
		Optional: []types.FieldSpec{
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("address"), types.Field("edition"),
			types.Field("month"), types.Field("note"),
		},
	},
	{
		Name:        "booklet",
		Description: "Printed and bound work without a publisher",
		Required:    specs("title"),
		Optional:    specs("author", "howpublished", "address", "month", "year", "note"),
	},
	{
		Name:        "conference",
		Description: "Article in a conference proceedings (alias of inproceedings)",
		Required:    specs("author", "title", "booktitle", "year"),
		Optional: []types.FieldSpec{
			types.Field("editor"),
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("pages"), types.Field("address"),
			types.Field("month"), types.Field("organization"), types.Field("publisher"),
			types.Field("note"),
		},
	},
	{
		Name:        "inbook",
		Description: "Part of a book, a chapter or a page range",
		Required: []types.FieldSpec{
			types.OneOf("author", "editor"),
			types.Field("title"),
			types.OneOf("chapter", "pages"),
			types.Field("publisher"), types.Field("year"),
		},
		Optional: []types.FieldSpec{
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("address"),
			types.Field("edition"), types.Field("month"), types.Field("note"),
		},
	},
	{
		Name:        "incollection",
		Description: "Part of a book with its own title",
		Required:    specs("author", "title", "booktitle", "publisher", "year"),
		Optional: []types.FieldSpec{
			types.Field("editor"),
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("chapter"),
			types.Field("pages"), types.Field("address"), types.Field("edition"),
			types.Field("month"), types.Field("note"),
		},
	},
	{
		Name:        "inproceedings",
		Description: "Article in a conference proceedings",
		Required:    specs("author", "title", "booktitle", "year"),
		Optional: []types.FieldSpec{
			types.Field("editor"),
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("pages"), types.Field("address"),
			types.Field("month"), types.Field("organization"), types.Field("publisher"),
			types.Field("note"),
		},
	},
	{
		Name:        "manual",
		Description: "Technical documentation",
		Required:    specs("title"),
		Optional:    specs("author", "organization", "address", "edition", "month", "year", "note"),
	},
	{
		Name:        "mastersthesis",
		Description: "Master's thesis",
		Required:    specs("author", "title", "school", "year"),
		Optional:    specs("address", "month", "note"),
	},
	{
		Name:        "misc",
		Description: "Work that fits no other category",
		Required:    nil,
		Optional:    specs("author", "title", "howpublished", "month", "year", "note"),
	},
	{
		Name:        "phdthesis",
		Description: "PhD thesis",
		Required:    specs("author", "title", "school", "year"),
		Optional:    specs("address", "month", "note"),
	},
	{
		Name:        "proceedings",
		Description: "Conference proceedings as a whole",
		Required:    specs("title", "year"),
		Optional: []types.FieldSpec{
			types.Field("editor"),
			types.OneOf("volume", "number"),
			types.Field("series"), types.Field("address"), types.Field("month"),
			types.Field("organization"), types.Field("publisher"), types.Field("note"),
		},
	},
	{
		Name:        "techreport",
		Description: "Report published by a school or institution",
		Required:    specs("author", "title", "institution", "year"),
		Optional:    specs("number", "address", "month", "note"),
	},
	{
		Name:        "unpublished",
		Description: "Work with an author and title but not formally published",
		Required:    specs("author", "title", "note"),
		Optional:    specs("month", "year"),
	},
}

// typeIndex maps lowercase type names to their position in entryTypes.
var typeIndex = func() map[string]int {
	m := make(map[string]int, len(entryTypes))
	for i, t := range entryTypes {
		m[t.Name] = i
	}
	return m
}()

// specs builds a list of single-field specs from names.
func specs(names ...string) []types.FieldSpec {
	out := make([]types.FieldSpec, len(names))
	for i, n := range names {
		out[i] = types.Field(n)
	}
	return out
}

// Lookup returns the entry type for name (matched case-insensitively).
func Lookup(name string) (EntryType, error) {
	i, ok := typeIndex[strings.ToLower(name)]
	if !ok {
		return EntryType{}, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return entryTypes[i], nil
}

// RequiredFields returns the ordered required field specs for name.
func RequiredFields(name string) ([]types.FieldSpec, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return append([]types.FieldSpec(nil), t.Required...), nil
}

// OptionalFields returns the ordered optional field specs for name.
func OptionalFields(name string) ([]types.FieldSpec, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return append([]types.FieldSpec(nil), t.Optional...), nil
}

// Types returns every entry type in registry order.
func Types() []EntryType {
	return append([]EntryType(nil), entryTypes...)
}
