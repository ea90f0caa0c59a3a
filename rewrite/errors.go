// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoChange reports that no rule produced an edit: the source is to be
// left untouched. It is a sentinel, not a failure.
var ErrNoChange = errors.New("no applicable rewrite found")

// ErrSkip is returned by a planner that recognizes a site it is
// deliberately unwilling to rewrite (an ambiguous or unsafe match).
// The engine records a warning for the site and continues.
var ErrSkip = errors.New("rewrite skipped")

// A Position is a location in a source buffer.
type Position struct {
	Path   string
	Line   int // 1-based
	Col    int // 1-based byte column
	Offset int
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if p.Path == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Col)
}

// An Error is an error at a particular source position.
type Error struct {
	Pos Position
	Msg string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
	}
	return e.Msg
}

type errorKey struct {
	pos Position
	msg string
}

// An ErrorList is a set of Errors. It is also an error itself.
// The zero value is an empty list, ready to use.
type ErrorList struct {
	errs []*Error
	set  map[errorKey]bool
}

// Add adds err to l. If err is an *Error it keeps its position; if it is an
// *ErrorList, the lists are merged. Duplicates (same position and message)
// are suppressed.
func (l *ErrorList) Add(err error) {
	var e *Error

	switch err := err.(type) {
	case nil:
		return

	case *ErrorList:
		for _, e := range err.errs {
			l.Add(e)
		}
		return

	case *Error:
		e = err

	default:
		e = &Error{Position{}, err.Error()}
	}

	k := errorKey{e.Pos, e.Msg}
	if !l.set[k] {
		if l.set == nil {
			l.set = make(map[errorKey]bool)
		}
		l.errs = append(l.errs, e)
		l.set[k] = true
	}
}

// Error sorts, deduplicates, and returns a "\n" separated list of formatted
// errors. The result does not end in "\n"; the caller adds that.
func (l *ErrorList) Error() string {
	if len(l.errs) == 0 {
		return "no errors"
	}

	sort.Slice(l.errs, func(i, j int) bool {
		p1, p2 := l.errs[i].Pos, l.errs[j].Pos
		if p1.Path != p2.Path {
			return p1.Path < p2.Path
		}
		return p1.Offset < p2.Offset
	})

	buf := new(strings.Builder)
	for _, e := range l.errs {
		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.Error())
	}
	return buf.String()
}

// Err returns an error equivalent to this error list.
// If the list is empty, Err returns nil.
func (l *ErrorList) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}
