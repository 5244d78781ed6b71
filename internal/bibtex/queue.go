// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex parses and formats BibTeX bibliography records,
// normalizing them to and from BibEntry values.
package bibtex

import (
	"errors"

	"github.com/pdiddy/orgbib/pkg/types"
)

// ErrEmptyQueue is returned when a pop is attempted on an empty staging
// queue, i.e. a write was requested with nothing parsed.
var ErrEmptyQueue = errors.New("staging queue is empty: nothing parsed")

// Queue stages parsed entries between read and write operations,
// most-recent-first. The zero value is ready to use. Lifecycle is owned
// by the caller; parse and write operations receive it as a parameter.
type Queue struct {
	entries []types.BibEntry
}

// Push stages an entry as the new most-recent element.
func (q *Queue) Push(e types.BibEntry) {
	q.entries = append(q.entries, e)
}

// Pop removes and returns the most recently staged entry. Ownership
// transfers to the caller.
func (q *Queue) Pop() (types.BibEntry, error) {
	if len(q.entries) == 0 {
		return types.BibEntry{}, ErrEmptyQueue
	}
	e := q.entries[len(q.entries)-1]
	q.entries = q.entries[:len(q.entries)-1]
	return e, nil
}

// Peek returns the most recently staged entry without removing it.
func (q *Queue) Peek() (types.BibEntry, error) {
	if len(q.entries) == 0 {
		return types.BibEntry{}, ErrEmptyQueue
	}
	return q.entries[len(q.entries)-1], nil
}

// Len returns the number of staged entries.
func (q *Queue) Len() int { return len(q.entries) }
