// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

func TestFormatFieldOrder(t *testing.T) {
	e := types.NewBibEntry("article", "dolev83")
	// Insert out of schema order on purpose.
	e.Set("pages", "198--208")
	e.Set("year", "1983")
	e.Set("title", "On the security of public-key protocols")
	e.Set("author", "Danny Dolev and Andrew C. Yao")
	e.Set("journal", "IEEE Transaction on Information Theory")

	out, err := Format(e, types.MapperConfig{})
	require.NoError(t, err)

	want := `@ARTICLE{dolev83,
  author={Danny Dolev and Andrew C. Yao},
  title={On the security of public-key protocols},
  journal={IEEE Transaction on Information Theory},
  year={1983},
  pages={198--208}
}
`
	assert.Equal(t, want, out)
}

func TestFormatAlternativeResolution(t *testing.T) {
	e := types.NewBibEntry("book", "knuth97")
	e.Set("editor", "Donald E. Knuth")
	e.Set("title", "The Art of Computer Programming")
	e.Set("publisher", "Addison-Wesley")
	e.Set("year", "1997")

	out, err := Format(e, types.MapperConfig{})
	require.NoError(t, err)
	assert.Contains(t, out, "editor={Donald E. Knuth}")
	assert.NotContains(t, out, "author=")
}

func TestFormatUnknownType(t *testing.T) {
	e := types.NewBibEntry("webpage", "k")
	_, err := Format(e, types.MapperConfig{})
	assert.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestFormatMissingKey(t *testing.T) {
	e := types.NewBibEntry("misc", "")
	e.Set("title", "Untitled")
	_, err := Format(e, types.MapperConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no citation key")
}

func TestFormatNonSchemaFields(t *testing.T) {
	e := types.NewBibEntry("article", "k")
	e.Set("author", "A")
	e.Set("title", "T")
	e.Set("journal", "J")
	e.Set("year", "2000")
	e.Set("archiveprefix", "arXiv")

	// Silently omitted by default.
	out, err := Format(e, types.MapperConfig{})
	require.NoError(t, err)
	assert.NotContains(t, out, "archiveprefix")

	// Emitted in arbitrary-field-export mode.
	out, err = Format(e, types.MapperConfig{ExportArbitraryFields: true})
	require.NoError(t, err)
	assert.Contains(t, out, "archiveprefix={arXiv}")
}

func TestFormatSkipsEmptyValues(t *testing.T) {
	e := types.NewBibEntry("misc", "k")
	e.Set("title", "T")
	e.Set("eprint", "")

	out, err := Format(e, types.MapperConfig{ExportArbitraryFields: true})
	require.NoError(t, err)
	assert.Contains(t, out, "title={T}")
	assert.NotContains(t, out, "eprint")
}

func TestFormatKeywordsWithTagConversion(t *testing.T) {
	e := types.NewBibEntry("article", "k")
	e.Set("author", "A")
	e.Set("title", "T")
	e.Set("journal", "J")
	e.Set("year", "2000")
	e.Set("keywords", "security, protocols")

	// keywords is not in the article schema, so it needs the conversion
	// mode (or arbitrary export) to appear.
	out, err := Format(e, types.MapperConfig{})
	require.NoError(t, err)
	assert.NotContains(t, out, "keywords")

	out, err = Format(e, types.MapperConfig{TagsAsKeywords: true})
	require.NoError(t, err)
	assert.Contains(t, out, "keywords={security, protocols}")
}

func TestMergeKeywords(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		tags     []string
		want     string
	}{
		{
			name: "creates field from tags",
			tags: []string{"security", "protocols"},
			want: "security, protocols",
		},
		{
			name:     "merges with parsed value",
			existing: "security",
			tags:     []string{"protocols"},
			want:     "security, protocols",
		},
		{
			name:     "does not duplicate",
			existing: "security, protocols",
			tags:     []string{"protocols"},
			want:     "security, protocols",
		},
		{
			name:     "no tags leaves value alone",
			existing: "security",
			tags:     nil,
			want:     "security",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := types.NewBibEntry("article", "k")
			if tt.existing != "" {
				e.Set("keywords", tt.existing)
			}
			MergeKeywords(&e, tt.tags)
			got, _ := e.Get("keywords")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRecordIsScannable(t *testing.T) {
	e := types.NewBibEntry("unpublished", "draft1")
	e.Set("author", "B. Writer")
	e.Set("title", "Work in Progress")
	e.Set("note", "Submitted")

	out, err := Format(e, types.MapperConfig{})
	require.NoError(t, err)

	records, err := Scan(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "UNPUBLISHED", records[0].Get(PseudoType))
}
