// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// Property is one entry of a heading's property drawer. Names are stored
// upper-cased; lookups are case-insensitive.
type Property struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Heading is an outline node: a title, a tag set, and an ordered property
// mapping. The surrounding document owns its lifecycle; the mapper only
// reads and writes its title, tags, and properties.
type Heading struct {
	// Level is the outline depth, 1 for top-level headings.
	Level int `json:"level" yaml:"level"`

	// Title is the headline text without stars or trailing tags.
	Title string `json:"title" yaml:"title"`

	// Tags holds the heading's own tags in document order.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// InheritedTags holds tags contributed by ancestor headings. Populated
	// by the document parser; consulted only when inherit-tags-on-export
	// is enabled.
	InheritedTags []string `json:"inherited_tags,omitempty" yaml:"inherited_tags,omitempty"`

	// Properties is the heading's property drawer in document order.
	Properties []Property `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// SetProperty stores value under name (upper-cased), replacing any
// existing property with the same name.
func (h *Heading) SetProperty(name, value string) {
	name = strings.ToUpper(name)
	for i := range h.Properties {
		if h.Properties[i].Name == name {
			h.Properties[i].Value = value
			return
		}
	}
	h.Properties = append(h.Properties, Property{Name: name, Value: value})
}

// Property returns the value stored under name, matched
// case-insensitively, and whether it is present.
func (h Heading) Property(name string) (string, bool) {
	for _, p := range h.Properties {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return "", false
}

// HasTag reports whether tag is among the heading's own tags.
func (h Heading) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends tag unless already present.
func (h *Heading) AddTag(tag string) {
	if tag == "" || h.HasTag(tag) {
		return
	}
	h.Tags = append(h.Tags, tag)
}

// AllTags returns the heading's own tags followed by inherited tags,
// deduplicated, preserving order.
func (h Heading) AllTags() []string {
	seen := make(map[string]bool, len(h.Tags)+len(h.InheritedTags))
	var out []string
	for _, t := range append(append([]string{}, h.Tags...), h.InheritedTags...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
