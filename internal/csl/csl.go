// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csl renders bibliography entries as CSL (Citation Style
// Language) items. The field names and structure follow the
// CSL-JSON/CSL-YAML schema so that output is consumable by Pandoc and
// reference managers.
package csl

import (
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orgbib/pkg/types"
)

// Item represents one bibliographic entry in CSL format.
type Item struct {
	ID             string `yaml:"id"`
	Type           string `yaml:"type"`
	Title          string `yaml:"title,omitempty"`
	Author         []Name `yaml:"author,omitempty"`
	Editor         []Name `yaml:"editor,omitempty"`
	ContainerTitle string `yaml:"container-title,omitempty"`
	Publisher      string `yaml:"publisher,omitempty"`
	Volume         string `yaml:"volume,omitempty"`
	Issue          string `yaml:"issue,omitempty"`
	Page           string `yaml:"page,omitempty"`
	Issued         *Date  `yaml:"issued,omitempty"`
	DOI            string `yaml:"DOI,omitempty"`
	URL            string `yaml:"URL,omitempty"`
	Note           string `yaml:"note,omitempty"`
}

// Name represents a person's name in CSL format.
type Name struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// Date represents a date in CSL format using date-parts.
type Date struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps BibTeX entry types to CSL item types.
var cslTypes = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"booklet":       "pamphlet",
	"conference":    "paper-conference",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"inproceedings": "paper-conference",
	"manual":        "report",
	"mastersthesis": "thesis",
	"misc":          "document",
	"phdthesis":     "thesis",
	"proceedings":   "book",
	"techreport":    "report",
	"unpublished":   "manuscript",
}

// FromEntry converts a normalized entry to a CSL item.
func FromEntry(e types.BibEntry) Item {
	itemType, ok := cslTypes[e.Type()]
	if !ok {
		itemType = "document"
	}

	item := Item{
		ID:   e.Key(),
		Type: itemType,
	}
	item.Title, _ = e.Get("title")
	item.Publisher, _ = e.Get("publisher")
	item.Volume, _ = e.Get("volume")
	item.Issue, _ = e.Get("number")
	item.DOI, _ = e.Get("doi")
	item.URL, _ = e.Get("url")
	item.Note, _ = e.Get("note")

	if pages, ok := e.Get("pages"); ok {
		item.Page = strings.ReplaceAll(pages, "--", "-")
	}
	if journal, ok := e.Get("journal"); ok {
		item.ContainerTitle = journal
	} else if booktitle, ok := e.Get("booktitle"); ok {
		item.ContainerTitle = booktitle
	}

	if authors, ok := e.Get("author"); ok {
		item.Author = parseNames(authors)
	}
	if editors, ok := e.Get("editor"); ok {
		item.Editor = parseNames(editors)
	}

	if year, ok := e.Get("year"); ok {
		if y, err := strconv.Atoi(strings.TrimSpace(year)); err == nil {
			item.Issued = &Date{DateParts: [][]int{{y}}}
		}
	}

	return item
}

// WriteYAML writes entries as a CSL-YAML item list to w.
func WriteYAML(w io.Writer, entries []types.BibEntry) error {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = FromEntry(e)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// parseNames splits an "A and B and C" name list into CSL names.
func parseNames(list string) []Name {
	var names []Name
	for _, name := range strings.Split(list, " and ") {
		if n := parseName(name); n != (Name{}) {
			names = append(names, n)
		}
	}
	return names
}

// parseName splits a full name into CSL family/given parts. "Last, First"
// form splits on the comma; otherwise the last token is the family name.
// Single-token names use the literal field.
func parseName(name string) Name {
	name = strings.TrimSpace(name)
	if name == "" {
		return Name{}
	}
	if i := strings.Index(name, ","); i >= 0 {
		return Name{
			Family: strings.TrimSpace(name[:i]),
			Given:  strings.TrimSpace(name[i+1:]),
		}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return Name{Literal: name}
	}
	return Name{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
