// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownField is returned when a field name is not in the catalog.
var ErrUnknownField = errors.New("unknown field")

// fieldCatalog maps lowercase field names to the prose descriptions shown
// in prompts and help output.
var fieldCatalog = map[string]string{
	"address":      "Address of the publisher or institution",
	"annote":       "Annotation for annotated bibliography styles",
	"author":       "Names of the authors, separated by \"and\"",
	"booktitle":    "Title of the book the work appears in",
	"chapter":      "Chapter or section number",
	"crossref":     "Key of a cross-referenced entry",
	"doi":          "Digital object identifier",
	"edition":      "Edition of the book (e.g. \"Second\")",
	"editor":       "Names of the editors, separated by \"and\"",
	"howpublished": "How the work was published, if nonstandard",
	"institution":  "Institution sponsoring a technical report",
	"journal":      "Name of the journal",
	"keywords":     "Comma-separated keywords describing the work",
	"month":        "Month of publication or writing",
	"note":         "Additional information for the reader",
	"number":       "Number of a journal, report, or work in a series",
	"organization": "Organization sponsoring a conference or publishing a manual",
	"pages":        "Page range, with -- between numbers (e.g. 198--208)",
	"publisher":    "Name of the publisher",
	"school":       "School where a thesis was written",
	"series":       "Name of a series or set of books",
	"title":        "Title of the work",
	"url":          "Address of a web resource",
	"volume":       "Volume of a journal or multi-volume book",
	"year":         "Year of publication or writing",
}

// FieldDescription returns the catalog description for name.
func FieldDescription(name string) (string, error) {
	desc, ok := fieldCatalog[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return desc, nil
}

// IsField reports whether name is a cataloged field.
func IsField(name string) bool {
	_, ok := fieldCatalog[strings.ToLower(name)]
	return ok
}

// Fields returns every cataloged field name in sorted order.
func Fields() []string {
	names := make([]string, 0, len(fieldCatalog))
	for n := range fieldCatalog {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
