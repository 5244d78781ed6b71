// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outline reads and writes org-style outline documents: starred
// headlines with trailing tag lists and property drawers.
package outline

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/orgbib/pkg/types"
)

// Document is a parsed outline file: optional preamble text followed by
// headings in document order.
type Document struct {
	Preamble []string
	Headings []types.Heading

	// bodies holds the free text under each heading, parallel to Headings.
	bodies [][]string
}

// Append adds a heading with no body text.
func (d *Document) Append(h types.Heading) {
	d.Headings = append(d.Headings, h)
	d.bodies = append(d.bodies, nil)
}

// Body returns the free text lines under heading i.
func (d *Document) Body(i int) []string {
	if i < 0 || i >= len(d.bodies) {
		return nil
	}
	return d.bodies[i]
}

var (
	headlineRe = regexp.MustCompile(`^(\*+)\s+(.*?)(?:\s+(:[A-Za-z0-9_@#%:]+:))?\s*$`)
	propertyRe = regexp.MustCompile(`^\s*:([A-Za-z0-9_+-]+):\s*(.*?)\s*$`)
)

// Parse reads an outline document. Property drawers directly under a
// headline become that heading's properties; inherited tags are collected
// from ancestor headings.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// tagStack[level] holds the tags in scope at each outline depth.
	var tagStack [][]string
	inDrawer := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := sc.Text()

		if m := headlineRe.FindStringSubmatch(line); m != nil {
			level := len(m[1])
			h := types.Heading{Level: level, Title: strings.TrimSpace(m[2])}
			if m[3] != "" {
				for _, t := range strings.Split(strings.Trim(m[3], ":"), ":") {
					if t != "" {
						h.Tags = append(h.Tags, t)
					}
				}
			}

			if level-1 < len(tagStack) {
				tagStack = tagStack[:level-1]
			}
			for _, scope := range tagStack {
				h.InheritedTags = append(h.InheritedTags, scope...)
			}
			for len(tagStack) < level {
				tagStack = append(tagStack, nil)
			}
			tagStack[level-1] = h.Tags

			doc.Append(h)
			inDrawer = false
			continue
		}

		if len(doc.Headings) == 0 {
			doc.Preamble = append(doc.Preamble, line)
			continue
		}

		cur := len(doc.Headings) - 1
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.EqualFold(trimmed, ":PROPERTIES:"):
			inDrawer = true
		case strings.EqualFold(trimmed, ":END:"):
			if !inDrawer {
				doc.bodies[cur] = append(doc.bodies[cur], line)
			}
			inDrawer = false
		case inDrawer:
			m := propertyRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("line %d: malformed property drawer entry %q", lineNo, trimmed)
			}
			doc.Headings[cur].SetProperty(m[1], m[2])
		default:
			doc.bodies[cur] = append(doc.bodies[cur], line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	return doc, nil
}

// Write serializes the document back to outline text.
func Write(w io.Writer, doc *Document) error {
	for _, line := range doc.Preamble {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for i, h := range doc.Headings {
		stars := strings.Repeat("*", max(h.Level, 1))
		if len(h.Tags) > 0 {
			fmt.Fprintf(w, "%s %s :%s:\n", stars, h.Title, strings.Join(h.Tags, ":"))
		} else {
			fmt.Fprintf(w, "%s %s\n", stars, h.Title)
		}

		if len(h.Properties) > 0 {
			fmt.Fprintln(w, "  :PROPERTIES:")
			for _, p := range h.Properties {
				fmt.Fprintf(w, "  :%s: %s\n", p.Name, p.Value)
			}
			fmt.Fprintln(w, "  :END:")
		}

		for _, line := range doc.Body(i) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}
