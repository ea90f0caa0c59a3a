// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/alexbit-codemod/langchain-codemods/python"
	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

// streamEvent rewrites the stream-event name "agent" to "model" where it
// is compared against an event's name: event.get("name") == "agent",
// event["name"] != "agent", the reversed operand order, and membership
// tests like event.get("name") in ["agent", "tool"]. The string "agent"
// in any other position is left untouched.
type streamEvent struct{}

const (
	oldEventName = "agent"
	newEventName = "model"
)

func (streamEvent) Name() string { return "stream-event-agent-to-model" }

func (streamEvent) Detect(t *rewrite.Tree) []*rewrite.Match {
	var matches []*rewrite.Match
	for _, str := range t.FindAll(nil, rewrite.Kind("string")) {
		content, _, ok := python.StringContent(t, str)
		if !ok || content != oldEventName {
			continue
		}
		cmp := comparisonOf(str)
		if cmp == nil || !comparesEventName(t, cmp) {
			continue
		}
		matches = append(matches, &rewrite.Match{Nodes: map[string]*sitter.Node{
			"string":     str,
			"comparison": cmp,
		}})
	}
	return matches
}

func (streamEvent) Plan(t *rewrite.Tree, m *rewrite.Match) ([]rewrite.Edit, error) {
	str := m.Node("string")
	if str == nil {
		return nil, fmt.Errorf("detector recorded no string node")
	}
	_, quote, ok := python.StringContent(t, str)
	if !ok {
		return nil, t.Errorf(str, "matched string is not a plain literal")
	}
	q := string(quote)
	return []rewrite.Edit{rewrite.ReplaceNode(t, str, q+newEventName+q)}, nil
}

// comparisonOf returns the comparison the string participates in: either
// as a direct operand, or as an element of a collection literal operand
// (the membership-test case). Any deeper nesting is not a pattern this
// rule recognizes.
func comparisonOf(str *sitter.Node) *sitter.Node {
	p := str.Parent()
	if p == nil {
		return nil
	}
	switch p.Type() {
	case "comparison_operator":
		return p
	case "list", "tuple", "set", "parenthesized_expression":
		if gp := p.Parent(); gp != nil && gp.Type() == "comparison_operator" {
			return gp
		}
	}
	return nil
}

// comparesEventName reports whether any operand of cmp reads an event's
// name: a .get("name") call or a ["name"] subscript.
func comparesEventName(t *rewrite.Tree, cmp *sitter.Node) bool {
	for _, operand := range rewrite.NamedChildren(cmp) {
		switch operand.Type() {
		case "call":
			fn := rewrite.Field(operand, "function")
			if fn == nil || fn.Type() != "attribute" {
				continue
			}
			member := rewrite.Field(fn, "attribute")
			if member == nil || t.Text(member) != "get" {
				continue
			}
			args := python.Arguments(operand)
			if len(args) >= 1 && isNameString(t, args[0]) {
				return true
			}
		case "subscript":
			if isNameString(t, rewrite.Field(operand, "subscript")) {
				return true
			}
		}
	}
	return false
}

func isNameString(t *rewrite.Tree, n *sitter.Node) bool {
	content, _, ok := python.StringContent(t, n)
	return ok && content == "name"
}
