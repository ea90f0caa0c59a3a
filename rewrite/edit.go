// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"fmt"
	"sort"
)

// An Edit deletes the bytes in Span and inserts New in their place.
// An insert uses a zero-length span; a delete uses an empty New.
type Edit struct {
	Span Span
	New  string
}

func Replace(s Span, text string) Edit { return Edit{Span: s, New: text} }

func Insert(at int, text string) Edit { return Edit{Span: Span{at, at}, New: text} }

func Delete(s Span) Edit { return Edit{Span: s} }

// An EditSet is a queue of edits to apply to one source buffer.
// Edits may be added in any order; Apply sorts them by start offset.
type EditSet struct {
	edits []Edit
}

func (s *EditSet) Add(edits ...Edit) { s.edits = append(s.edits, edits...) }

func (s *EditSet) Len() int { return len(s.edits) }

func (s *EditSet) Empty() bool { return len(s.edits) == 0 }

// Apply commits the edit set against src, returning the rewritten text.
// If the set is empty, Apply returns ErrNoChange. An out-of-bounds or
// overlapping edit is a defect in the rule that produced it, reported as an
// error; colliding edits are never dropped or reordered, since offset math
// after suppression is unreliable.
//
// Apply is a pure function of its inputs: src and the tree the edits were
// planned against are never modified.
func (s *EditSet) Apply(src []byte) ([]byte, error) {
	if len(s.edits) == 0 {
		return nil, ErrNoChange
	}

	edits := make([]Edit, len(s.edits))
	copy(edits, s.edits)
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].Span.Start != edits[j].Span.Start {
			return edits[i].Span.Start < edits[j].Span.Start
		}
		return edits[i].Span.End < edits[j].Span.End
	})

	for i, e := range edits {
		if e.Span.Start < 0 || e.Span.End < e.Span.Start || e.Span.End > len(src) {
			return nil, fmt.Errorf("edit %s out of bounds for %d-byte buffer", e.Span, len(src))
		}
		if i > 0 && edits[i-1].Span.End > e.Span.Start {
			return nil, fmt.Errorf("overlapping edits %s and %s", edits[i-1].Span, e.Span)
		}
	}

	// Single linear pass: copy the gap before each edit, then its
	// replacement, then the tail after the last edit.
	out := make([]byte, 0, len(src))
	off := 0
	for _, e := range edits {
		out = append(out, src[off:e.Span.Start]...)
		out = append(out, e.New...)
		off = e.Span.End
	}
	out = append(out, src[off:]...)
	return out, nil
}
