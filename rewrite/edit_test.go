// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"strings"
	"testing"
)

func TestApplyEdits(t *testing.T) {
	src := "hello, world"
	tests := []struct {
		name  string
		edits []Edit
		want  string
	}{
		{"replace", []Edit{Replace(Span{7, 12}, "gopher")}, "hello, gopher"},
		{"insert", []Edit{Insert(5, " there")}, "hello there, world"},
		{"delete", []Edit{Delete(Span{5, 7})}, "helloworld"},
		{"insert at start", []Edit{Insert(0, ">> ")}, ">> hello, world"},
		{"insert at end", []Edit{Insert(12, "!")}, "hello, world!"},
		{"replace all", []Edit{Replace(Span{0, 12}, "x")}, "x"},
		{
			"multiple out of order",
			[]Edit{Replace(Span{7, 12}, "gopher"), Replace(Span{0, 5}, "goodbye")},
			"goodbye, gopher",
		},
		{
			"adjacent edits",
			[]Edit{Delete(Span{0, 5}), Replace(Span{5, 7}, ";")},
			";world",
		},
		{
			"empty replacement and empty span",
			[]Edit{Insert(5, ""), Delete(Span{11, 12})},
			"hello, worl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set EditSet
			set.Add(tt.edits...)
			got, err := set.Apply([]byte(src))
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyEmptySet(t *testing.T) {
	var set EditSet
	if _, err := set.Apply([]byte("text")); !errors.Is(err, ErrNoChange) {
		t.Errorf("Apply on empty set = %v, want ErrNoChange", err)
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	var set EditSet
	set.Add(Replace(Span{0, 6}, "a"), Replace(Span{4, 8}, "b"))
	_, err := set.Apply([]byte("0123456789"))
	if err == nil || !strings.Contains(err.Error(), "overlapping") {
		t.Errorf("Apply = %v, want overlapping edits error", err)
	}
}

func TestApplyRejectsOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
	}{
		{"end past buffer", Replace(Span{0, 20}, "x")},
		{"negative start", Replace(Span{-1, 2}, "x")},
		{"inverted span", Edit{Span: Span{5, 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var set EditSet
			set.Add(tt.edit)
			_, err := set.Apply([]byte("0123456789"))
			if err == nil || !strings.Contains(err.Error(), "out of bounds") {
				t.Errorf("Apply = %v, want out of bounds error", err)
			}
		})
	}
}

// Commit order must not depend on discovery order: any permutation of the
// same disjoint edits yields the same text.
func TestApplyOrderIndependent(t *testing.T) {
	src := []byte("aa bb cc dd")
	edits := []Edit{
		Replace(Span{0, 2}, "AA"),
		Delete(Span{3, 5}),
		Insert(9, "x"),
	}
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}, {2, 0, 1}}
	var want string
	for i, perm := range perms {
		var set EditSet
		for _, j := range perm {
			set.Add(edits[j])
		}
		got, err := set.Apply(src)
		if err != nil {
			t.Fatalf("perm %v: %v", perm, err)
		}
		if i == 0 {
			want = string(got)
			continue
		}
		if string(got) != want {
			t.Errorf("perm %v = %q, want %q", perm, got, want)
		}
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		a, b Span
		want bool
	}{
		{Span{0, 5}, Span{5, 10}, false},
		{Span{0, 5}, Span{4, 10}, true},
		{Span{3, 3}, Span{3, 3}, false},
		{Span{0, 10}, Span{3, 4}, true},
	}
	for _, tt := range tests {
		if got := tt.a.Overlaps(tt.b); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Overlaps(tt.a); got != tt.want {
			t.Errorf("%v.Overlaps(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}
