// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package heading

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/orgbib/internal/schema"
	"github.com/pdiddy/orgbib/pkg/types"
)

// ErrAborted is returned when the prompter cancels a fleshout pass. The
// input entry is left unmodified.
var ErrAborted = errors.New("aborted by user")

// Prompter supplies values for missing fields. Implementations block
// until the user responds; the terminal implementation lives in cmd.
type Prompter interface {
	// Value asks for a field value. An empty return means the user left
	// the field blank; it is then omitted, not stored.
	Value(field, description string) (string, error)

	// Choose asks the user to pick one of options.
	Choose(prompt string, options []string) (string, error)
}

// KeyChecker reports whether a citation key is already taken. Satisfied
// by keyindex.Index.
type KeyChecker interface {
	Exists(ctx context.Context, key string) (bool, error)
}

// State describes where an entry sits in the completeness check cycle.
type State string

const (
	StateMissingType     State = "missing-type"
	StateMissingRequired State = "missing-required"
	StateMissingKey      State = "missing-key"
	StateComplete        State = "complete"
)

// Status classifies an entry against its type's schema. TitleAsHeadline
// lets a missing title field pass the required check.
func Status(e types.BibEntry, cfg types.MapperConfig) (State, error) {
	if e.Type() == "" {
		return StateMissingType, nil
	}
	t, err := schema.Lookup(e.Type())
	if err != nil {
		return StateMissingType, err
	}
	for _, spec := range t.Required {
		if cfg.TitleAsHeadline && spec.String() == "title" {
			continue
		}
		if spec.SatisfiedBy(e) == "" {
			return StateMissingRequired, nil
		}
	}
	if e.Key() == "" {
		return StateMissingKey, nil
	}
	return StateComplete, nil
}

// Fleshout fills in an entry's missing required fields, optionally its
// optional fields, and its citation key, prompting through p. It returns
// a completed copy; on any prompter error the original entry is returned
// unchanged, so an abort never commits partial edits.
//
// Alternative groups are resolved by presence-checking each member in
// order; when none is present the user chooses which member to supply.
// Keys are derived by the auto-key policy when configured (with a
// duplicate warning against keys, written to w), otherwise prompted.
func Fleshout(ctx context.Context, e types.BibEntry, typeName string, cfg types.MapperConfig, p Prompter, keys KeyChecker, withOptional bool, w io.Writer) (types.BibEntry, error) {
	t, err := schema.Lookup(typeName)
	if err != nil {
		return e, err
	}

	work := e.Clone()
	work.Set(types.FieldType, t.Name)

	if err := promptSpecs(&work, t.Required, cfg, p, true); err != nil {
		return e, err
	}
	if withOptional {
		if err := promptSpecs(&work, t.Optional, cfg, p, false); err != nil {
			return e, err
		}
	}

	if work.Key() == "" {
		key, err := resolveKey(ctx, work, cfg, p, keys, w)
		if err != nil {
			return e, err
		}
		if key == "" {
			return e, fmt.Errorf("entry %q still has no citation key", headlineName(work))
		}
		work.Set(types.FieldKey, key)
	}

	return work, nil
}

// promptSpecs prompts for each unsatisfied spec. Required alternative
// groups ask the user to choose a member; optional ones use the first.
func promptSpecs(work *types.BibEntry, fieldSpecs []types.FieldSpec, cfg types.MapperConfig, p Prompter, required bool) error {
	for _, spec := range fieldSpecs {
		if spec.SatisfiedBy(*work) != "" {
			continue
		}

		name := spec.Names()[0]
		if spec.IsAlternative() && required {
			chosen, err := p.Choose(fmt.Sprintf("One of {%s} is required; which to set?", spec), spec.Names())
			if err != nil {
				return err
			}
			name = chosen
		}
		if cfg.TitleAsHeadline && name == "title" {
			continue
		}

		desc, err := schema.FieldDescription(name)
		if err != nil {
			return err
		}
		v, err := p.Value(name, desc)
		if err != nil {
			return err
		}
		if v != "" {
			work.Set(name, v)
		}
	}
	return nil
}

// resolveKey derives or prompts for a citation key.
func resolveKey(ctx context.Context, work types.BibEntry, cfg types.MapperConfig, p Prompter, keys KeyChecker, w io.Writer) (string, error) {
	if cfg.AutoKey {
		key := GenerateKey(work)
		if keys != nil && key != "" {
			taken, err := keys.Exists(ctx, key)
			if err != nil {
				return "", fmt.Errorf("checking key index: %w", err)
			}
			if taken {
				fmt.Fprintf(w, "warning: generated key %q already exists in the key index\n", key)
			}
		}
		return key, nil
	}
	return p.Value(types.FieldKey, "Citation key for the entry")
}

// GenerateKey derives a citation key from the entry's fields: the first
// author's last name, the year, and the first significant title word,
// lower-cased and stripped to alphanumerics (e.g. "dolev1983security").
func GenerateKey(e types.BibEntry) string {
	var parts []string

	author, _ := e.Get("author")
	if author == "" {
		author, _ = e.Get("editor")
	}
	if name := lastName(author); name != "" {
		parts = append(parts, name)
	}
	if year, ok := e.Get("year"); ok && year != "" {
		parts = append(parts, alnum(year))
	}
	if title, ok := e.Get("title"); ok {
		if word := significantWord(title); word != "" {
			parts = append(parts, word)
		}
	}

	return strings.Join(parts, "")
}

// lastName returns the lower-cased last token of the first author in an
// "A and B and C" author list.
func lastName(authors string) string {
	first := authors
	if i := strings.Index(authors, " and "); i >= 0 {
		first = authors[:i]
	}
	// "Last, First" form: the last name is before the comma.
	if i := strings.Index(first, ","); i >= 0 {
		first = first[:i]
	}
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return alnum(fields[len(fields)-1])
}

// keyStopwords are skipped when picking the title word for a key.
var keyStopwords = map[string]bool{
	"a": true, "an": true, "the": true, "on": true, "of": true,
	"in": true, "for": true, "and": true, "with": true, "to": true,
}

// significantWord returns the first title word longer than three letters
// that is not a stopword.
func significantWord(title string) string {
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = alnum(word)
		if len(word) > 3 && !keyStopwords[word] {
			return word
		}
	}
	return ""
}

// alnum lower-cases s and drops everything but letters and digits.
func alnum(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// headlineName names an entry for error messages: its key, else its
// title, else its type.
func headlineName(e types.BibEntry) string {
	if k := e.Key(); k != "" {
		return k
	}
	if t, ok := e.Get("title"); ok && t != "" {
		return t
	}
	return e.Type()
}
