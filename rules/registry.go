// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rules defines the LangChain migration codemods as pluggable
// rewrite rules. Each rule follows the same detector discipline: narrow
// the scope to the constructs it cares about, check the exact shape it
// can handle, and decline anything ambiguous rather than guess.
package rules

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/mod/semver"

	"github.com/alexbit-codemod/langchain-codemods/python"
	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

// Info describes a registered rule.
type Info struct {
	Rule    rewrite.Rule
	Target  string // release the rewrite migrates to
	Summary string
}

// All returns every registered rule, in a stable order.
func All() []Info {
	return []Info{
		{promptKeyword{}, "v1.0.0", "rename prompt= to system_prompt= in agent constructors"},
		{systemMessage{}, "v1.0.0", "unwrap SystemMessage(content=...) prompt values"},
		{toolNode{}, "v1.0.0", "unwrap ToolNode(...) wrappers in agent tools="},
		{streamEvent{}, "v1.0.0", `rewrite stream-event name checks from "agent" to "model"`},
	}
}

// Select resolves rule names against the registry and filters by the
// requested migration target: a rule applies when the release it migrates
// to is at or below target. Empty names selects every rule.
func Select(names []string, target string) ([]rewrite.Rule, error) {
	if target != "" && !semver.IsValid(target) {
		return nil, fmt.Errorf("invalid target version %q", target)
	}

	byName := make(map[string]Info)
	for _, info := range All() {
		byName[info.Rule.Name()] = info
	}

	if len(names) == 0 {
		for _, info := range All() {
			names = append(names, info.Rule.Name())
		}
	}

	var selected []rewrite.Rule
	for _, name := range names {
		info, ok := byName[strings.TrimSpace(name)]
		if !ok {
			return nil, fmt.Errorf("unknown rule %q", name)
		}
		if target != "" && semver.Compare(info.Target, target) > 0 {
			continue
		}
		selected = append(selected, info.Rule)
	}
	return selected, nil
}

// agentConstructors are the call targets the agent-keyword rules scope
// their searches to, matched bare or module-qualified.
var agentConstructors = []string{"create_agent", "create_react_agent"}

func agentCalls(t *rewrite.Tree) []*sitter.Node {
	return t.FindAll(nil, func(t *rewrite.Tree, n *sitter.Node) bool {
		return python.IsCallTo(t, n, agentConstructors...)
	})
}
