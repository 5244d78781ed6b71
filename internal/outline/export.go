// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"fmt"
	"io"

	"github.com/pdiddy/orgbib/internal/bibtex"
	"github.com/pdiddy/orgbib/internal/heading"
	"github.com/pdiddy/orgbib/pkg/types"
)

// IsEntry reports whether h carries bibliography metadata under cfg: a
// type property or a citation key property.
func IsEntry(h types.Heading, cfg types.MapperConfig) bool {
	if _, ok := h.Property(cfg.KeyPropertyName()); ok {
		return true
	}
	typeProp := cfg.PropertyPrefix + "TYPE"
	_, ok := h.Property(typeProp)
	return ok
}

// ExportBibTeX writes every bibliography heading in the document as a
// BibTeX record. Export halts at the first heading that fails to
// translate: output written so far is preserved and the error reports the
// heading's position and title so the user can fix it and resume.
func ExportBibTeX(doc *Document, m heading.Mapper, w io.Writer) (int, error) {
	exported := 0
	for i, h := range doc.Headings {
		if !IsEntry(h, m.Config) {
			continue
		}
		entry := m.ExportEntry(h)
		record, err := bibtex.Format(entry, m.Config)
		if err != nil {
			return exported, fmt.Errorf("heading %d (%q): %w", i+1, h.Title, err)
		}
		if exported > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return exported, err
			}
		}
		if _, err := io.WriteString(w, record); err != nil {
			return exported, err
		}
		exported++
	}
	return exported, nil
}

// Entries reads every bibliography heading into a BibEntry, in document
// order. Headings that are not bibliography entries are skipped.
func Entries(doc *Document, m heading.Mapper) []types.BibEntry {
	var out []types.BibEntry
	for _, h := range doc.Headings {
		if IsEntry(h, m.Config) {
			out = append(out, m.ExportEntry(h))
		}
	}
	return out
}
