// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import "fmt"

// A Span is a half-open byte range [Start, End) into one source buffer.
// Spans from different buffers must never be compared.
type Span struct {
	Start int
	End   int
}

func (s Span) Len() int { return s.End - s.Start }

func (s Span) Empty() bool { return s.Start == s.End }

func (s Span) Contains(off int) bool { return s.Start <= off && off < s.End }

// Covers reports whether t lies entirely within s.
func (s Span) Covers(t Span) bool { return s.Start <= t.Start && t.End <= s.End }

// Overlaps reports whether s and t share at least one byte.
// Two empty spans at the same offset do not overlap.
func (s Span) Overlaps(t Span) bool { return s.Start < t.End && t.Start < s.End }

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Start, s.End) }
