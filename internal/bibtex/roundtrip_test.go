// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

// TestRoundTripProperty verifies that any normalized entry survives
// format-then-reparse unchanged. Values are drawn without delimiter
// characters and pre-collapsed, matching what the parser itself produces.
func TestRoundTripProperty(t *testing.T) {
	typeNames := make([]string, 0, len(schema.Types()))
	for _, et := range schema.Types() {
		typeNames = append(typeNames, et.Name)
	}
	fieldNames := schema.Fields()

	rapid.Check(t, func(rt *rapid.T) {
		typeName := rapid.SampledFrom(typeNames).Draw(rt, "type")
		key := rapid.StringMatching(`[a-z][a-z0-9:-]{0,12}`).Draw(rt, "key")
		e := types.NewBibEntry(typeName, key)

		fields := rapid.SliceOfNDistinct(
			rapid.SampledFrom(fieldNames), 0, len(fieldNames),
			func(s string) string { return s },
		).Draw(rt, "fields")

		for _, name := range fields {
			raw := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 ,.:#&\-]{0,40}`).Draw(rt, "value")
			// The parser collapses whitespace; feed values already in
			// normalized form so equality is exact.
			value := strings.Join(strings.Fields(raw), " ")
			if value == "" {
				continue
			}
			e.Set(name, value)
		}

		cfg := types.MapperConfig{ExportArbitraryFields: true, TagsAsKeywords: true}
		text, err := Format(e, cfg)
		if err != nil {
			rt.Fatalf("Format failed: %v", err)
		}

		again, err := Parse(strings.NewReader(text))
		if err != nil {
			rt.Fatalf("Parse failed on formatted output:\n%s\nerror: %v", text, err)
		}
		if len(again) != 1 {
			rt.Fatalf("expected 1 entry, got %d from:\n%s", len(again), text)
		}
		if !e.Equal(again[0]) {
			rt.Fatalf("round trip mismatch:\noriginal: %v\nreparsed: %v\ntext:\n%s",
				e.Fields(), again[0].Fields(), text)
		}
	})
}
