// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `#+TITLE: Reading list

* Security :crypto:
  :PROPERTIES:
  :CATEGORY: papers
  :END:
Some notes about the area.
** On the security of public-key protocols
   :PROPERTIES:
   :TYPE: article
   :CUSTOM_ID: dolev83
   :AUTHOR: Danny Dolev and Andrew C. Yao
   :JOURNAL: IEEE Transaction on Information Theory
   :YEAR: 1983
   :PAGES: 198--208
   :END:
** Unrelated note
Just text, no drawer.
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, []string{"#+TITLE: Reading list", ""}, doc.Preamble)
	require.Len(t, doc.Headings, 3)

	top := doc.Headings[0]
	assert.Equal(t, 1, top.Level)
	assert.Equal(t, "Security", top.Title)
	assert.Equal(t, []string{"crypto"}, top.Tags)
	cat, ok := top.Property("CATEGORY")
	require.True(t, ok)
	assert.Equal(t, "papers", cat)
	assert.Equal(t, []string{"Some notes about the area."}, doc.Body(0))

	paper := doc.Headings[1]
	assert.Equal(t, 2, paper.Level)
	assert.Equal(t, "On the security of public-key protocols", paper.Title)
	key, ok := paper.Property("CUSTOM_ID")
	require.True(t, ok)
	assert.Equal(t, "dolev83", key)
	pages, _ := paper.Property("PAGES")
	assert.Equal(t, "198--208", pages)

	note := doc.Headings[2]
	assert.Empty(t, note.Properties)
	assert.Equal(t, []string{"Just text, no drawer."}, doc.Body(2))
}

func TestParseInheritedTags(t *testing.T) {
	src := `* Project :work:urgent:
** Papers :reading:
*** Deep item
** Sibling
* Other top
`
	doc, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, doc.Headings, 5)

	assert.Empty(t, doc.Headings[0].InheritedTags)
	assert.Equal(t, []string{"work", "urgent"}, doc.Headings[1].InheritedTags)
	assert.Equal(t, []string{"work", "urgent", "reading"}, doc.Headings[2].InheritedTags)
	assert.Equal(t, []string{"work", "urgent"}, doc.Headings[3].InheritedTags)
	assert.Empty(t, doc.Headings[4].InheritedTags)
}

func TestParseMultipleTags(t *testing.T) {
	doc, err := Parse(strings.NewReader("* Title with words :a:b_c:d@e:\n"))
	require.NoError(t, err)
	require.Len(t, doc.Headings, 1)
	assert.Equal(t, "Title with words", doc.Headings[0].Title)
	assert.Equal(t, []string{"a", "b_c", "d@e"}, doc.Headings[0].Tags)
}

func TestParseMalformedDrawer(t *testing.T) {
	src := "* H\n  :PROPERTIES:\n  not a property line\n  :END:\n"
	_, err := Parse(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestWriteRoundTrip(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, Write(&buf, doc))

	again, err := Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)

	assert.Equal(t, doc.Preamble, again.Preamble)
	require.Len(t, again.Headings, len(doc.Headings))
	for i := range doc.Headings {
		assert.Equal(t, doc.Headings[i].Title, again.Headings[i].Title)
		assert.Equal(t, doc.Headings[i].Level, again.Headings[i].Level)
		assert.Equal(t, doc.Headings[i].Tags, again.Headings[i].Tags)
		assert.Equal(t, doc.Headings[i].Properties, again.Headings[i].Properties)
	}
}
