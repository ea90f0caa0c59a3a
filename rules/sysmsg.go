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

// systemMessage unwraps prompt values of the form SystemMessage(content=X)
// to plain X in agent constructor calls, renaming prompt= to
// system_prompt= along the way. When the unwrapped occurrence was the last
// use of SystemMessage, its import is pruned.
type systemMessage struct{}

func (systemMessage) Name() string { return "system-message-to-prompt" }

func (systemMessage) Detect(t *rewrite.Tree) []*rewrite.Match {
	var matches []*rewrite.Match
	for _, call := range agentCalls(t) {
		for _, kwName := range []string{"prompt", "system_prompt"} {
			kw := python.Keyword(t, call, kwName)
			if kw == nil {
				continue
			}
			value := rewrite.Field(kw, "value")
			if !python.IsCallTo(t, value, "SystemMessage") {
				continue
			}
			matches = append(matches, &rewrite.Match{Nodes: map[string]*sitter.Node{
				"call":    call,
				"keyword": kw,
				"wrapper": value,
			}})
		}
	}
	return matches
}

func (systemMessage) Plan(t *rewrite.Tree, m *rewrite.Match) ([]rewrite.Edit, error) {
	call, kw, wrapper := m.Node("call"), m.Node("keyword"), m.Node("wrapper")
	if call == nil || kw == nil || wrapper == nil {
		return nil, fmt.Errorf("detector recorded incomplete nodes")
	}

	content, err := messageContent(t, wrapper)
	if err != nil {
		return nil, err
	}

	var edits []rewrite.Edit
	name := rewrite.Field(kw, "name")
	if name == nil {
		return nil, t.Errorf(kw, "keyword argument has no name node")
	}
	if t.Text(name) == "prompt" {
		if python.Keyword(t, call, "system_prompt") != nil {
			return nil, fmt.Errorf("both prompt= and system_prompt= present: %w", rewrite.ErrSkip)
		}
		edits = append(edits, rewrite.ReplaceNode(t, name, "system_prompt"))
	}
	edits = append(edits, rewrite.ReplaceNode(t, wrapper, t.Text(content)))

	// The SystemMessage reference disappears with this edit.
	if fn := python.FuncNode(wrapper); fn != nil {
		m.Consume(t, fn)
	}
	return edits, nil
}

// messageContent extracts the value carried by a SystemMessage(...) call:
// a sole content= keyword or a sole positional argument. Anything else is
// a shape this rule declines.
func messageContent(t *rewrite.Tree, wrapper *sitter.Node) (*sitter.Node, error) {
	args := python.Arguments(wrapper)
	if len(args) != 1 {
		return nil, fmt.Errorf("SystemMessage with %d arguments: %w", len(args), rewrite.ErrSkip)
	}
	arg := args[0]
	if arg.Type() == "keyword_argument" {
		k := rewrite.Field(arg, "name")
		if k == nil || t.Text(k) != "content" {
			return nil, fmt.Errorf("SystemMessage without content=: %w", rewrite.ErrSkip)
		}
		v := rewrite.Field(arg, "value")
		if v == nil {
			return nil, t.Errorf(arg, "content= has no value node")
		}
		return v, nil
	}
	return arg, nil
}

func (systemMessage) Finish(t *rewrite.Tree, planned []*rewrite.Match) ([]rewrite.Edit, error) {
	var consumed []rewrite.Span
	for _, m := range planned {
		consumed = append(consumed, m.Consumed...)
	}
	edits, _ := python.Prune(t, "SystemMessage", consumed)
	return edits, nil
}
