// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrSoleElement is returned by RemoveElement when the element is the only
// item in its list. Removing it would leave an empty construct; the caller
// decides whether to escalate to removing the enclosing statement.
var ErrSoleElement = errors.New("sole element in list")

// ReplaceNode plans an in-place replacement of n's text.
func ReplaceNode(t *Tree, n *sitter.Node, text string) Edit {
	return Replace(t.SpanOf(n), text)
}

// WrapCall plans replacing n with a call to callee whose sole argument is
// n's current text.
func WrapCall(t *Tree, callee string, n *sitter.Node) Edit {
	return Replace(t.SpanOf(n), callee+"("+t.Text(n)+")")
}

// RemoveElement plans the removal of one element from a comma-delimited
// list (argument list, import-name list) without leaving a dangling or
// duplicated separator. An element with a following comma is removed
// through that comma and the whitespace up to the next element; a trailing
// element is removed back through its preceding comma. The sole element of
// a list yields ErrSoleElement.
func RemoveElement(t *Tree, elem *sitter.Node) (Edit, error) {
	src := t.Src()
	span := t.SpanOf(elem)

	if comma := adjacentComma(elem, +1); comma != nil {
		end := int(comma.EndByte())
		for end < len(src) && isSpace(src[end]) {
			end++
		}
		return Delete(Span{span.Start, end}), nil
	}

	if comma := adjacentComma(elem, -1); comma != nil {
		start := int(comma.StartByte())
		for start > 0 && isSpace(src[start-1]) {
			start--
		}
		return Delete(Span{start, span.End}), nil
	}

	return Edit{}, ErrSoleElement
}

// adjacentComma returns the "," token next to elem in direction dir
// (+1 forward, -1 backward), skipping comments, or nil.
func adjacentComma(elem *sitter.Node, dir int) *sitter.Node {
	next := func(n *sitter.Node) *sitter.Node {
		if dir > 0 {
			return n.NextSibling()
		}
		return n.PrevSibling()
	}
	for n := next(elem); n != nil; n = next(n) {
		switch n.Type() {
		case "comment":
			continue
		case ",":
			return n
		default:
			return nil
		}
	}
	return nil
}

// RemoveStatement plans the removal of a whole statement plus at most one
// line terminator immediately following it. The line collapses without
// introducing a blank line; a second terminator, if present in the
// original, is left alone.
func RemoveStatement(t *Tree, stmt *sitter.Node) Edit {
	src := t.Src()
	span := t.SpanOf(stmt)
	end := span.End
	if end < len(src) && src[end] == '\r' {
		end++
	}
	if end < len(src) && src[end] == '\n' {
		end++
	}
	return Delete(Span{span.Start, end})
}

// MergeIntoDict plans adding key: value to a mapping literal. If the
// mapping already contains the key the merge is declined with ErrSkip;
// existing semantics are never overwritten. An empty mapping becomes the
// single-entry literal; otherwise the new entry is prepended and the
// original entries keep their order and formatting.
func MergeIntoDict(t *Tree, dict *sitter.Node, key, value string) (Edit, error) {
	var pairs []*sitter.Node
	for _, kid := range NamedChildren(dict) {
		if kid.Type() == "pair" {
			pairs = append(pairs, kid)
		}
	}

	for _, pair := range pairs {
		k := Field(pair, "key")
		if k != nil && literalEq(t.Text(k), key) {
			return Edit{}, fmt.Errorf("key %s already present in mapping: %w", key, ErrSkip)
		}
	}

	if len(pairs) == 0 {
		return ReplaceNode(t, dict, "{"+key+": "+value+"}"), nil
	}
	first := int(pairs[0].StartByte())
	return Insert(first, key+": "+value+", "), nil
}

// literalEq compares two source literals, treating string literals that
// differ only in quote style as equal.
func literalEq(a, b string) bool {
	if a == b {
		return true
	}
	ua, oka := unquote(a)
	ub, okb := unquote(b)
	return oka && okb && ua == ub
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		q := s[0]
		if (q == '\'' || q == '"') && s[len(s)-1] == q {
			return s[1 : len(s)-1], true
		}
	}
	return "", false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
