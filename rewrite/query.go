// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rewrite

import (
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"
)

// A Pred is a structural predicate over tree nodes. Predicates compose
// with And, Or, Not, HasField, and HasDescendant to express the shape
// constraints a detector needs: node kind, field presence and text,
// and nested constraints on descendants.
type Pred func(t *Tree, n *sitter.Node) bool

// Kind matches nodes whose grammar kind equals kind.
func Kind(kind string) Pred {
	return func(t *Tree, n *sitter.Node) bool { return n.Type() == kind }
}

// AnyKind matches nodes whose grammar kind is one of kinds.
func AnyKind(kinds ...string) Pred {
	return func(t *Tree, n *sitter.Node) bool {
		for _, k := range kinds {
			if n.Type() == k {
				return true
			}
		}
		return false
	}
}

// TextIs matches nodes whose verbatim source text equals text.
func TextIs(text string) Pred {
	return func(t *Tree, n *sitter.Node) bool { return t.Text(n) == text }
}

// TextMatches matches nodes whose source text matches re.
func TextMatches(re *regexp.Regexp) Pred {
	return func(t *Tree, n *sitter.Node) bool { return re.MatchString(t.Text(n)) }
}

// HasField matches nodes with a child in the named field satisfying pred.
func HasField(name string, pred Pred) Pred {
	return func(t *Tree, n *sitter.Node) bool {
		f := n.ChildByFieldName(name)
		return f != nil && pred(t, f)
	}
}

// HasDescendant matches nodes with any descendant (the node itself
// excluded) satisfying pred.
func HasDescendant(pred Pred) Pred {
	return func(t *Tree, n *sitter.Node) bool {
		found := false
		for i := 0; i < int(n.ChildCount()) && !found; i++ {
			walk(n.Child(i), func(d *sitter.Node) bool {
				if found {
					return false
				}
				if pred(t, d) {
					found = true
					return false
				}
				return true
			})
		}
		return found
	}
}

func And(preds ...Pred) Pred {
	return func(t *Tree, n *sitter.Node) bool {
		for _, p := range preds {
			if !p(t, n) {
				return false
			}
		}
		return true
	}
}

func Or(preds ...Pred) Pred {
	return func(t *Tree, n *sitter.Node) bool {
		for _, p := range preds {
			if p(t, n) {
				return true
			}
		}
		return false
	}
}

func Not(pred Pred) Pred {
	return func(t *Tree, n *sitter.Node) bool { return !pred(t, n) }
}
