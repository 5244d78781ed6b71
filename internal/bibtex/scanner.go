// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"fmt"
	"io"
	"strings"
)

// Pseudo-field names supplied by the scanner for the entry type and
// citation key, mirroring the conventions of BibTeX grammar parsers.
const (
	PseudoType = "=type="
	PseudoKey  = "=key="
)

// RawPair is one (name, value) pair as produced by the record scanner.
// Names keep their original case; values keep their original delimiters
// so normalization can strip exactly one outer layer.
type RawPair struct {
	Name  string
	Value string
}

// RawRecord is the token-level parse of one bibliography record. The
// pair list starts with the "=type=" and "=key=" pseudo-fields.
type RawRecord struct {
	Pairs []RawPair

	// Line is the 1-based source line of the record's "@".
	Line int
}

// Get returns the raw value for name, or "" if absent.
func (r RawRecord) Get(name string) string {
	for _, p := range r.Pairs {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// Scan segments bibliography text into raw records. Text between records
// is ignored; @comment, @string, and @preamble blocks are skipped.
func Scan(r io.Reader) ([]RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	s := &scanner{src: string(data), line: 1}
	var records []RawRecord
	for {
		rec, ok, err := s.nextRecord()
		if err != nil {
			return records, err
		}
		if !ok {
			return records, nil
		}
		records = append(records, rec)
	}
}

// scanner walks bibliography text tracking the current line for error
// reporting.
type scanner struct {
	src  string
	pos  int
	line int
}

// nextRecord advances to the next "@" and parses one record. ok is false
// at end of input.
func (s *scanner) nextRecord() (RawRecord, bool, error) {
	for {
		if !s.skipTo('@') {
			return RawRecord{}, false, nil
		}
		startLine := s.line
		s.pos++ // consume '@'

		name := s.readIdentifier()
		switch strings.ToLower(name) {
		case "comment", "string", "preamble":
			if err := s.skipGroup(startLine); err != nil {
				return RawRecord{}, false, err
			}
			continue
		case "":
			continue // stray '@' in prose between records
		}

		rec, err := s.readBody(name, startLine)
		if err != nil {
			return RawRecord{}, false, err
		}
		return rec, true, nil
	}
}

// readBody parses "{key, field = value, ...}" after the entry type.
// Parenthesized bodies are accepted as well.
func (s *scanner) readBody(entryType string, startLine int) (RawRecord, error) {
	s.skipSpace()
	opener, closer := byte('{'), byte('}')
	if s.peek() == '(' {
		opener, closer = '(', ')'
	}
	if s.peek() != opener {
		return RawRecord{}, fmt.Errorf("line %d: expected %q after @%s", s.line, string(opener), entryType)
	}
	s.pos++

	key := strings.TrimSpace(s.readUntilAny("," + string(closer)))
	if s.pos >= len(s.src) {
		return RawRecord{}, fmt.Errorf("line %d: unterminated record @%s", startLine, entryType)
	}

	rec := RawRecord{
		Line: startLine,
		Pairs: []RawPair{
			{Name: PseudoType, Value: entryType},
			{Name: PseudoKey, Value: key},
		},
	}

	// Record with a key and no fields.
	if s.peek() == closer {
		s.pos++
		return rec, nil
	}
	s.pos++ // consume ','

	for {
		s.skipSpace()
		if s.pos >= len(s.src) {
			return RawRecord{}, fmt.Errorf("line %d: unterminated record @%s{%s", startLine, entryType, key)
		}
		switch s.peek() {
		case closer:
			s.pos++
			return rec, nil
		case ',':
			s.pos++
			continue
		}

		name := strings.TrimSpace(s.readUntilAny("=," + string(closer)))
		if s.pos >= len(s.src) || s.peek() != '=' {
			return RawRecord{}, fmt.Errorf("line %d: field %q has no value in @%s{%s", s.line, name, entryType, key)
		}
		s.pos++ // consume '='
		s.skipSpace()

		value, err := s.readValue(closer)
		if err != nil {
			return RawRecord{}, fmt.Errorf("line %d: field %q in @%s{%s: %w", s.line, name, entryType, key, err)
		}
		if name != "" {
			rec.Pairs = append(rec.Pairs, RawPair{Name: name, Value: value})
		}
	}
}

// readValue reads one field value, keeping its delimiters: a balanced
// brace group, a quoted string, or a bare token up to the next comma or
// record closer.
func (s *scanner) readValue(closer byte) (string, error) {
	switch s.peek() {
	case '{':
		return s.readBraced()
	case '"':
		return s.readQuoted()
	default:
		return strings.TrimSpace(s.readUntilAny("," + string(closer))), nil
	}
}

// readBraced consumes a brace-balanced group including the outer braces.
func (s *scanner) readBraced() (string, error) {
	start := s.pos
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s.pos++
				return s.src[start:s.pos], nil
			}
		case '\n':
			s.line++
		}
		s.pos++
	}
	return "", fmt.Errorf("unbalanced braces")
}

// readQuoted consumes a quote-delimited value including the quotes.
// Braces inside quotes protect embedded quote characters.
func (s *scanner) readQuoted() (string, error) {
	start := s.pos
	s.pos++ // opening quote
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				s.pos++
				return s.src[start:s.pos], nil
			}
		case '\n':
			s.line++
		}
		s.pos++
	}
	return "", fmt.Errorf("unterminated quoted value")
}

// skipGroup consumes a brace- or paren-balanced block after @comment,
// @string, or @preamble.
func (s *scanner) skipGroup(startLine int) error {
	s.skipSpace()
	opener := s.peek()
	if opener != '{' && opener != '(' {
		return nil // bare @comment with no block
	}
	closer := byte('}')
	if opener == '(' {
		closer = ')'
	}
	depth := 0
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				s.pos++
				return nil
			}
		case '\n':
			s.line++
		}
		s.pos++
	}
	return fmt.Errorf("line %d: unterminated block", startLine)
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.src) {
		return 0
	}
	return s.src[s.pos]
}

// skipTo advances to the next occurrence of c, returning false at EOF.
func (s *scanner) skipTo(c byte) bool {
	for s.pos < len(s.src) {
		if s.src[s.pos] == c {
			return true
		}
		if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
	return false
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\n':
			s.line++
		case ' ', '\t', '\r':
		default:
			return
		}
		s.pos++
	}
}

// readIdentifier consumes letters and digits.
func (s *scanner) readIdentifier() string {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			s.pos++
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

// readUntilAny consumes up to (not including) the next byte in set.
func (s *scanner) readUntilAny(set string) string {
	start := s.pos
	for s.pos < len(s.src) {
		if strings.IndexByte(set, s.src[s.pos]) >= 0 {
			break
		}
		if s.src[s.pos] == '\n' {
			s.line++
		}
		s.pos++
	}
	return s.src[start:s.pos]
}
