// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"strings"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

// Format renders an entry as one bibliography record:
//
//	@TYPE{KEY,
//	  field={value},
//	  ...
//	}
//
// Fields are emitted in schema order, required before optional, with
// alternative groups resolved to whichever member is present. Fields
// absent from the schema are emitted only in arbitrary-field-export
// mode, except "keywords" which is also emitted when tags-are-keywords
// conversion is enabled. Values are always brace-delimited.
func Format(e types.BibEntry, cfg types.MapperConfig) (string, error) {
	t, err := schema.Lookup(e.Type())
	if err != nil {
		return "", err
	}
	key := e.Key()
	if key == "" {
		return "", fmt.Errorf("entry of type %s has no citation key", t.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "@%s{%s,\n", strings.ToUpper(t.Name), key)

	emitted := map[string]bool{types.FieldType: true, types.FieldKey: true}
	emit := func(name string) {
		v, ok := e.Get(name)
		if !ok || v == "" || emitted[name] {
			return
		}
		fmt.Fprintf(&b, "  %s={%s},\n", name, v)
		emitted[name] = true
	}

	for _, spec := range t.Required {
		if name := spec.SatisfiedBy(e); name != "" {
			emit(name)
		}
	}
	for _, spec := range t.Optional {
		if name := spec.SatisfiedBy(e); name != "" {
			emit(name)
		}
	}

	if cfg.TagsAsKeywords {
		emit("keywords")
	}

	if cfg.ExportArbitraryFields {
		for _, f := range e.Fields() {
			emit(f.Name)
		}
	}

	out := strings.TrimSuffix(b.String(), ",\n")
	return out + "\n}\n", nil
}

// MergeKeywords appends tags to the entry's keywords field,
// comma-separated, merging with any existing parsed keywords value
// rather than overwriting it. Tags already present are not duplicated.
func MergeKeywords(e *types.BibEntry, tags []string) {
	existing, _ := e.Get("keywords")

	seen := make(map[string]bool)
	var kws []string
	for _, kw := range strings.Split(existing, ",") {
		kw = strings.TrimSpace(kw)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		kws = append(kws, kw)
	}
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		kws = append(kws, tag)
	}

	if len(kws) == 0 {
		return
	}
	e.Set("keywords", strings.Join(kws, ", "))
}
