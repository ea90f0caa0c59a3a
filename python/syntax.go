// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package python

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

// CallName returns the name by which a call's function is referenced: a
// bare identifier, or the final attribute of a qualified path, so that
// f(...) and mod.f(...) compare equal when a rule asks for "f".
func CallName(t *rewrite.Tree, call *sitter.Node) string {
	n := FuncNode(call)
	if n == nil {
		return ""
	}
	return t.Text(n)
}

// FuncNode returns the node that carries a call's function name: the
// identifier itself, or the member identifier of an attribute access.
// This is the node a rule consumes when the call is rewritten away.
func FuncNode(call *sitter.Node) *sitter.Node {
	fn := rewrite.Field(call, "function")
	if fn == nil {
		return nil
	}
	switch fn.Type() {
	case "identifier":
		return fn
	case "attribute":
		return rewrite.Field(fn, "attribute")
	}
	return nil
}

// IsCallTo reports whether n is a call to one of the named functions,
// bare or module-qualified.
func IsCallTo(t *rewrite.Tree, n *sitter.Node, names ...string) bool {
	if n == nil || n.Type() != "call" {
		return false
	}
	name := CallName(t, n)
	for _, want := range names {
		if name == want {
			return true
		}
	}
	return false
}

// Arguments returns the arguments of a call, positional and keyword,
// in source order.
func Arguments(call *sitter.Node) []*sitter.Node {
	args := rewrite.Field(call, "arguments")
	var out []*sitter.Node
	for _, kid := range rewrite.NamedChildren(args) {
		if kid.Type() == "comment" {
			continue
		}
		out = append(out, kid)
	}
	return out
}

// Keyword returns the keyword_argument node for name in call, or nil.
func Keyword(t *rewrite.Tree, call *sitter.Node, name string) *sitter.Node {
	for _, arg := range Arguments(call) {
		if arg.Type() != "keyword_argument" {
			continue
		}
		if k := rewrite.Field(arg, "name"); k != nil && t.Text(k) == name {
			return arg
		}
	}
	return nil
}

// StringContent returns the inner text and quote character of a string
// literal node. Triple-quoted and prefixed strings report ok=false; the
// rules here only rewrite plain single- and double-quoted literals.
func StringContent(t *rewrite.Tree, n *sitter.Node) (content string, quote byte, ok bool) {
	if n == nil || n.Type() != "string" {
		return "", 0, false
	}
	text := t.Text(n)
	if len(text) < 2 {
		return "", 0, false
	}
	q := text[0]
	if q != '\'' && q != '"' {
		return "", 0, false
	}
	if text[len(text)-1] != q || len(text) >= 6 && text[1] == q && text[2] == q {
		return "", 0, false
	}
	return text[1 : len(text)-1], q, true
}
