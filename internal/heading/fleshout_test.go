// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heading

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

// scriptedPrompter answers every value prompt with a canned string and
// records which fields were asked for.
type scriptedPrompter struct {
	values  map[string]string // field -> answer; fallback synthesizes one
	choices map[string]string // prompt substring not needed; keyed on first option
	asked   []string
	err     error
}

func (p *scriptedPrompter) Value(field, description string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.asked = append(p.asked, field)
	if v, ok := p.values[field]; ok {
		return v, nil
	}
	return "v-" + field, nil
}

func (p *scriptedPrompter) Choose(prompt string, options []string) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	if p.choices != nil {
		if c, ok := p.choices[options[0]]; ok {
			return c, nil
		}
	}
	return options[0], nil
}

// fakeKeys is an in-memory KeyChecker.
type fakeKeys struct {
	taken map[string]bool
	err   error
}

func (f fakeKeys) Exists(_ context.Context, key string) (bool, error) {
	return f.taken[key], f.err
}

func TestFleshoutCompletesEveryType(t *testing.T) {
	ctx := context.Background()
	for _, et := range schema.Types() {
		name := et.Name
		t.Run(name, func(t *testing.T) {
			p := &scriptedPrompter{values: map[string]string{
				"year": "1999",
				"key":  "somekey",
			}}

			var e types.BibEntry
			out, err := Fleshout(ctx, e, name, types.MapperConfig{}, p, nil, false, io.Discard)
			require.NoError(t, err)

			typ, err := schema.Lookup(name)
			require.NoError(t, err)
			for _, spec := range typ.Required {
				assert.NotEmpty(t, spec.SatisfiedBy(out),
					"required %s unsatisfied after fleshout", spec)
			}
			assert.NotEmpty(t, out.Key())
			assert.Equal(t, name, out.Type())
		})
	}
}

func TestFleshoutAlternativeNotPromptedWhenSatisfied(t *testing.T) {
	// book requires one of {author, editor}; with editor present the
	// group is satisfied and author must not be asked for.
	e := types.NewBibEntry("book", "k")
	e.Set("editor", "E. Editor")
	e.Set("title", "T")
	e.Set("publisher", "P")
	e.Set("year", "2001")

	p := &scriptedPrompter{}
	out, err := Fleshout(context.Background(), e, "book", types.MapperConfig{}, p, nil, false, io.Discard)
	require.NoError(t, err)
	assert.NotContains(t, p.asked, "author")
	assert.False(t, out.Has("author"))
}

func TestFleshoutAlternativeChoice(t *testing.T) {
	// Nothing present: the user picks which member of {author, editor}
	// to supply, and only that member is prompted.
	p := &scriptedPrompter{choices: map[string]string{"author": "editor"}}
	out, err := Fleshout(context.Background(), types.BibEntry{}, "book", types.MapperConfig{}, p,
		nil, false, io.Discard)
	require.NoError(t, err)
	assert.True(t, out.Has("editor"))
	assert.False(t, out.Has("author"))
}

func TestFleshoutAbortLeavesEntryUnchanged(t *testing.T) {
	e := types.NewBibEntry("article", "")
	e.Set("author", "A")

	p := &scriptedPrompter{err: ErrAborted}
	out, err := Fleshout(context.Background(), e, "article", types.MapperConfig{}, p, nil, false, io.Discard)
	require.ErrorIs(t, err, ErrAborted)
	assert.True(t, e.Equal(out), "abort must not commit partial edits")
}

func TestFleshoutBlankValueOmitted(t *testing.T) {
	p := &scriptedPrompter{values: map[string]string{
		"note": "",
		"key":  "k",
	}}
	out, err := Fleshout(context.Background(), types.BibEntry{}, "misc", types.MapperConfig{}, p,
		nil, true, io.Discard)
	require.NoError(t, err)
	assert.False(t, out.Has("note"))
}

func TestFleshoutTitleAsHeadlineSkipsTitle(t *testing.T) {
	cfg := types.MapperConfig{TitleAsHeadline: true}
	p := &scriptedPrompter{values: map[string]string{"key": "k"}}
	out, err := Fleshout(context.Background(), types.BibEntry{}, "article", cfg, p, nil, false, io.Discard)
	require.NoError(t, err)
	assert.NotContains(t, p.asked, "title")
	assert.False(t, out.Has("title"))
}

func TestFleshoutAutoKey(t *testing.T) {
	e := types.BibEntry{}
	e.Set("author", "Danny Dolev and Andrew C. Yao")
	e.Set("title", "On the security of public-key protocols")
	e.Set("journal", "J")
	e.Set("year", "1983")

	cfg := types.MapperConfig{AutoKey: true}
	p := &scriptedPrompter{}
	out, err := Fleshout(context.Background(), e, "article", cfg, p, nil, false, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "dolev1983security", out.Key())
	assert.NotContains(t, p.asked, "key")
}

func TestFleshoutAutoKeyDuplicateWarning(t *testing.T) {
	e := types.BibEntry{}
	e.Set("author", "Dolev")
	e.Set("title", "Security")
	e.Set("journal", "J")
	e.Set("year", "1983")

	keys := fakeKeys{taken: map[string]bool{"dolev1983security": true}}
	var buf bytes.Buffer
	out, err := Fleshout(context.Background(), e, "article", types.MapperConfig{AutoKey: true},
		&scriptedPrompter{}, keys, false, &buf)
	require.NoError(t, err)
	assert.Equal(t, "dolev1983security", out.Key())
	assert.Contains(t, buf.String(), "already exists")
}

func TestFleshoutKeyIndexError(t *testing.T) {
	e := types.BibEntry{}
	e.Set("author", "A Author")
	e.Set("title", "Something")
	e.Set("journal", "J")
	e.Set("year", "2000")

	keys := fakeKeys{err: errors.New("database locked")}
	_, err := Fleshout(context.Background(), e, "article", types.MapperConfig{AutoKey: true},
		&scriptedPrompter{}, keys, false, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking key index")
}

func TestFleshoutUnknownType(t *testing.T) {
	_, err := Fleshout(context.Background(), types.BibEntry{}, "blogpost", types.MapperConfig{},
		&scriptedPrompter{}, nil, false, io.Discard)
	require.ErrorIs(t, err, schema.ErrUnknownType)
}

func TestStatus(t *testing.T) {
	complete := types.NewBibEntry("article", "k")
	complete.Set("author", "A")
	complete.Set("title", "T")
	complete.Set("journal", "J")
	complete.Set("year", "2000")

	missingKey := complete.Clone()
	missingKey.Delete(types.FieldKey)

	missingJournal := complete.Clone()
	missingJournal.Delete("journal")

	var untyped types.BibEntry
	untyped.Set("author", "A")

	headline := types.NewBibEntry("article", "k")
	headline.Set("author", "A")
	headline.Set("journal", "J")
	headline.Set("year", "2000")

	tests := []struct {
		name string
		e    types.BibEntry
		cfg  types.MapperConfig
		want State
	}{
		{name: "complete", e: complete, want: StateComplete},
		{name: "missing key", e: missingKey, want: StateMissingKey},
		{name: "missing required", e: missingJournal, want: StateMissingRequired},
		{name: "missing type", e: untyped, want: StateMissingType},
		{name: "missing title fails", e: headline, want: StateMissingRequired},
		{name: "headline stands in for title", e: headline,
			cfg: types.MapperConfig{TitleAsHeadline: true}, want: StateComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Status(tt.e, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateKey(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name: "author year title",
			fields: map[string]string{
				"author": "Danny Dolev and Andrew C. Yao",
				"year":   "1983",
				"title":  "On the security of public-key protocols",
			},
			want: "dolev1983security",
		},
		{
			name: "last-first author form",
			fields: map[string]string{
				"author": "Lamport, Leslie",
				"year":   "1978",
				"title":  "Time, clocks, and the ordering of events",
			},
			want: "lamport1978time",
		},
		{
			name: "editor fallback",
			fields: map[string]string{
				"editor": "Jane Doe",
				"year":   "2010",
				"title":  "Collected works",
			},
			want: "doe2010collected",
		},
		{
			name:   "year only",
			fields: map[string]string{"year": "1999"},
			want:   "1999",
		},
		{
			name: "stopwords and short words skipped",
			fields: map[string]string{
				"author": "A. B. Smith",
				"year":   "2005",
				"title":  "On the Art of War and Peace",
			},
			want: "smith2005peace",
		},
		{
			name:   "empty entry",
			fields: nil,
			want:   "",
		},
	}

	for i, tt := range tests {
		t.Run(strconv.Itoa(i)+" "+tt.name, func(t *testing.T) {
			var e types.BibEntry
			for k, v := range tt.fields {
				e.Set(k, v)
			}
			assert.Equal(t, tt.want, GenerateKey(e))
		})
	}
}
