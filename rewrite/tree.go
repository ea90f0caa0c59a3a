// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"bytes"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// A Tree is a read-only view over one parsed source buffer.
// It is constructed once per buffer and never mutated: detection reads the
// tree, planning reads node spans, and only the original text is rewritten,
// after all detection is complete. Query results are therefore always
// snapshot-consistent.
type Tree struct {
	path string
	src  []byte
	ts   *sitter.Tree
	root *sitter.Node
}

// NewTree wraps a parsed tree over src. The Tree takes ownership of ts;
// call Close when done with it.
func NewTree(path string, src []byte, ts *sitter.Tree) *Tree {
	return &Tree{path: path, src: src, ts: ts, root: ts.RootNode()}
}

func (t *Tree) Path() string { return t.path }

func (t *Tree) Src() []byte { return t.src }

func (t *Tree) Root() *sitter.Node { return t.root }

// Close releases the underlying parse tree.
func (t *Tree) Close() {
	if t.ts != nil {
		t.ts.Close()
		t.ts = nil
	}
}

// SpanOf returns the byte span of n in the source buffer.
func (t *Tree) SpanOf(n *sitter.Node) Span {
	return Span{int(n.StartByte()), int(n.EndByte())}
}

// Text returns the verbatim source slice for n's span.
func (t *Tree) Text(n *sitter.Node) string {
	return n.Content(t.src)
}

// Position converts a byte offset into a line/column position for error
// reporting.
func (t *Tree) Position(off int) Position {
	if off < 0 {
		off = 0
	}
	if off > len(t.src) {
		off = len(t.src)
	}
	line := 1 + bytes.Count(t.src[:off], nl)
	col := off - (bytes.LastIndexByte(t.src[:off], '\n') + 1) + 1
	return Position{Path: t.path, Line: line, Col: col, Offset: off}
}

var nl = []byte("\n")

// Errorf reports an error at the start of node n.
func (t *Tree) Errorf(n *sitter.Node, format string, args ...interface{}) error {
	pos := t.Position(int(n.StartByte()))
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// FindAll returns every node satisfying pred, in a depth-first pre-order
// traversal from root. A nil root means the whole tree.
func (t *Tree) FindAll(root *sitter.Node, pred Pred) []*sitter.Node {
	if root == nil {
		root = t.root
	}
	var found []*sitter.Node
	walk(root, func(n *sitter.Node) bool {
		if pred(t, n) {
			found = append(found, n)
		}
		return true
	})
	return found
}

// FindFirst is FindAll short-circuited on the first match.
func (t *Tree) FindFirst(root *sitter.Node, pred Pred) *sitter.Node {
	if root == nil {
		root = t.root
	}
	var found *sitter.Node
	walk(root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if pred(t, n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// Ancestors returns n's ancestors, innermost first, excluding n itself.
func (t *Tree) Ancestors(n *sitter.Node) []*sitter.Node {
	var up []*sitter.Node
	for p := n.Parent(); p != nil; p = p.Parent() {
		up = append(up, p)
	}
	return up
}

// walk visits n and its subtree in pre-order. If f returns false the
// subtree below n is skipped.
func walk(n *sitter.Node, f func(*sitter.Node) bool) {
	if !f(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), f)
	}
}

// Field returns n's child for the named field, or nil. Safe on nil n.
func Field(n *sitter.Node, name string) *sitter.Node {
	if n == nil {
		return nil
	}
	return n.ChildByFieldName(name)
}

// Children returns all of n's children, anonymous tokens included.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	kids := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		kids = append(kids, n.Child(i))
	}
	return kids
}

// NamedChildren returns n's named children, in source order.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	kids := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		kids = append(kids, n.NamedChild(i))
	}
	return kids
}
