// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package heading translates between normalized bibliography entries and
// outline headings with keyed metadata.
package heading

import (
	"strings"

	"github.com/pdiddy/orgbib/internal/bibtex"
	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

// TitleFunc selects a heading title for an entry.
type TitleFunc func(types.BibEntry) string

// defaultTitle uses the entry's title field.
func defaultTitle(e types.BibEntry) string {
	v, _ := e.Get("title")
	return v
}

// Mapper converts entries to headings and back under one configuration.
type Mapper struct {
	Config types.MapperConfig

	// Title overrides the heading title selection. Nil means the entry's
	// title field.
	Title TitleFunc
}

// NewMapper returns a mapper with the default title selection.
func NewMapper(cfg types.MapperConfig) Mapper {
	return Mapper{Config: cfg}
}

// propertyName applies the configured prefix and upper-cases the result.
// The key property is never prefixed.
func (m Mapper) propertyName(field string) string {
	return strings.ToUpper(m.Config.PropertyPrefix + field)
}

// ToHeading creates a heading from an entry. The type is stored as a
// property unconditionally and the title whenever non-empty; the key goes
// under the configured key property; every other field becomes a
// property, except keywords which
// become tags when tags-are-keywords conversion is on. Default tags are
// applied last.
func (m Mapper) ToHeading(e types.BibEntry) types.Heading {
	titleFn := m.Title
	if titleFn == nil {
		titleFn = defaultTitle
	}

	h := types.Heading{Level: 1, Title: titleFn(e)}

	if title, ok := e.Get("title"); ok && title != "" {
		h.SetProperty(m.propertyName("title"), title)
	}
	h.SetProperty(m.propertyName("type"), strings.ToLower(e.Type()))
	if key := e.Key(); key != "" {
		h.SetProperty(m.Config.KeyPropertyName(), key)
	}

	for _, f := range e.Fields() {
		switch f.Name {
		case types.FieldType, types.FieldKey, "title":
			continue
		case "keywords":
			if m.Config.TagsAsKeywords {
				for _, kw := range strings.Split(f.Value, ",") {
					h.AddTag(CleanTag(kw))
				}
				continue
			}
		}
		h.SetProperty(m.propertyName(f.Name), f.Value)
	}

	for _, tag := range m.Config.DefaultTags {
		h.AddTag(tag)
	}
	return h
}

// FromHeading reads an entry back out of a heading's properties. Only
// properties whose names match a cataloged field (under the configured
// prefix, anchored) are read, plus the reserved key and type properties.
// With arbitrary-field export enabled and a non-empty prefix, prefixed
// non-catalog properties are read as well.
func (m Mapper) FromHeading(h types.Heading) types.BibEntry {
	var e types.BibEntry

	if typ, ok := h.Property(m.propertyName("type")); ok && typ != "" {
		e.Set(types.FieldType, strings.ToLower(typ))
	}
	if key, ok := h.Property(m.Config.KeyPropertyName()); ok && key != "" {
		e.Set(types.FieldKey, key)
	}

	keyProp := strings.ToUpper(m.Config.KeyPropertyName())
	prefix := strings.ToUpper(m.Config.PropertyPrefix)
	arbitrary := m.Config.ExportArbitraryFields && prefix != ""

	for _, p := range h.Properties {
		if p.Name == keyProp || p.Value == "" {
			continue
		}
		// Anchored prefix match only; unrelated properties never become
		// fields, whatever the export mode.
		if !strings.HasPrefix(p.Name, prefix) {
			continue
		}
		field := strings.ToLower(strings.TrimPrefix(p.Name, prefix))
		if field == types.FieldType {
			continue
		}
		if schema.IsField(field) || arbitrary {
			e.Set(field, p.Value)
		}
	}

	if m.Config.TitleAsHeadline && !e.Has("title") && h.Title != "" {
		e.Set("title", h.Title)
	}

	return e
}

// UpdateHeading merges an entry's fields back into an existing heading.
// Entry-derived properties overwrite their previous values; drawer
// properties the mapper does not own are left in place, as are the
// heading's level, title, and tags. The input heading is not modified.
func (m Mapper) UpdateHeading(h types.Heading, e types.BibEntry) types.Heading {
	h.Properties = append([]types.Property(nil), h.Properties...)
	h.Tags = append([]string(nil), h.Tags...)

	fresh := m.ToHeading(e)
	for _, p := range fresh.Properties {
		h.SetProperty(p.Name, p.Value)
	}
	for _, tag := range fresh.Tags {
		h.AddTag(tag)
	}
	if h.Title == "" {
		h.Title = fresh.Title
	}
	return h
}

// ExportEntry reads an entry from a heading for bibliography output,
// folding the heading's tags into a synthesized keywords field when
// tags-are-keywords conversion is on. No-export and default tags are
// excluded; inherited tags are included only when configured.
func (m Mapper) ExportEntry(h types.Heading) types.BibEntry {
	e := m.FromHeading(h)
	if !m.Config.TagsAsKeywords {
		return e
	}

	tags := h.Tags
	if m.Config.InheritTagsOnExport {
		tags = h.AllTags()
	}

	excluded := make(map[string]bool, len(m.Config.NoExportTags)+len(m.Config.DefaultTags))
	for _, t := range m.Config.NoExportTags {
		excluded[t] = true
	}
	for _, t := range m.Config.DefaultTags {
		excluded[t] = true
	}

	var export []string
	for _, t := range tags {
		if !excluded[t] {
			export = append(export, t)
		}
	}
	bibtex.MergeKeywords(&e, export)
	return e
}

// CleanTag converts a keyword into a tag: surrounding space trimmed,
// internal spaces replaced with underscores, and characters outside
// [A-Za-z0-9_@#%] dropped.
func CleanTag(kw string) string {
	kw = strings.ReplaceAll(strings.TrimSpace(kw), " ", "_")
	var b strings.Builder
	for _, r := range kw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '@', r == '#', r == '%':
			b.WriteRune(r)
		}
	}
	return b.String()
}
