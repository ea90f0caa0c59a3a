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

// toolNode unwraps tools=ToolNode(X) to tools=X in agent constructor
// calls. Agent constructors accept the plain tool sequence directly; a
// ToolNode carrying anything beyond the sequence (error handlers, custom
// config) is left alone. The ToolNode import is pruned when the unwrapped
// occurrence was its last use.
type toolNode struct{}

func (toolNode) Name() string { return "unwrap-tool-node-in-agent" }

func (toolNode) Detect(t *rewrite.Tree) []*rewrite.Match {
	var matches []*rewrite.Match
	for _, call := range agentCalls(t) {
		kw := python.Keyword(t, call, "tools")
		if kw == nil {
			continue
		}
		value := rewrite.Field(kw, "value")
		if !python.IsCallTo(t, value, "ToolNode") {
			continue
		}
		matches = append(matches, &rewrite.Match{Nodes: map[string]*sitter.Node{
			"call":    call,
			"wrapper": value,
		}})
	}
	return matches
}

func (toolNode) Plan(t *rewrite.Tree, m *rewrite.Match) ([]rewrite.Edit, error) {
	wrapper := m.Node("wrapper")
	if wrapper == nil {
		return nil, fmt.Errorf("detector recorded no wrapper node")
	}

	args := python.Arguments(wrapper)
	if len(args) != 1 || args[0].Type() == "keyword_argument" {
		return nil, fmt.Errorf("ToolNode with extra configuration: %w", rewrite.ErrSkip)
	}

	if fn := python.FuncNode(wrapper); fn != nil {
		m.Consume(t, fn)
	}
	return []rewrite.Edit{rewrite.ReplaceNode(t, wrapper, t.Text(args[0]))}, nil
}

func (toolNode) Finish(t *rewrite.Tree, planned []*rewrite.Match) ([]rewrite.Edit, error) {
	var consumed []rewrite.Span
	for _, m := range planned {
		consumed = append(consumed, m.Consumed...)
	}
	edits, _ := python.Prune(t, "ToolNode", consumed)
	return edits, nil
}
