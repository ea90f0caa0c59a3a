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

// promptKeyword renames the prompt= keyword to system_prompt= in
// create_agent and create_react_agent calls.
type promptKeyword struct{}

func (promptKeyword) Name() string { return "prompt-to-system-prompt" }

func (promptKeyword) Detect(t *rewrite.Tree) []*rewrite.Match {
	var matches []*rewrite.Match
	for _, call := range agentCalls(t) {
		kw := python.Keyword(t, call, "prompt")
		if kw == nil {
			continue
		}
		// A SystemMessage(...) value belongs to the unwrap rule, which
		// renames the keyword itself; claiming it here would produce
		// colliding edits when both rules run.
		if python.IsCallTo(t, rewrite.Field(kw, "value"), "SystemMessage") {
			continue
		}
		matches = append(matches, &rewrite.Match{Nodes: map[string]*sitter.Node{
			"call":    call,
			"keyword": kw,
		}})
	}
	return matches
}

func (promptKeyword) Plan(t *rewrite.Tree, m *rewrite.Match) ([]rewrite.Edit, error) {
	call, kw := m.Node("call"), m.Node("keyword")
	if call == nil || kw == nil {
		return nil, fmt.Errorf("detector recorded no call/keyword nodes")
	}

	// Both spellings present at once is a conflict the rule cannot
	// resolve; leave the call for a human.
	if python.Keyword(t, call, "system_prompt") != nil {
		return nil, fmt.Errorf("both prompt= and system_prompt= present: %w", rewrite.ErrSkip)
	}

	name := rewrite.Field(kw, "name")
	if name == nil {
		return nil, t.Errorf(kw, "keyword argument has no name node")
	}
	return []rewrite.Edit{rewrite.ReplaceNode(t, name, "system_prompt")}, nil
}
