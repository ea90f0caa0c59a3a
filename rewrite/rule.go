// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rewrite implements a structural query, edit-planning, and
// edit-commit engine for mechanical source rewrites over tree-sitter
// parse trees.
//
// A transformation pass is: parse the source, run each Rule's detector to
// collect Matches, run each Match through the rule's planner to accumulate
// a flat EditSet, and commit the set against the original text. The tree
// is never mutated; every edit is a byte-range replacement of the original
// buffer, applied in one atomic pass.
package rewrite

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// A Match is the output of a rule's detector for one site: the nodes the
// rule cares about, by name. Matches hold node references, never raw
// offsets; offsets are read from node spans at planning time.
type Match struct {
	// Nodes maps rule-chosen names ("call", "value", ...) to the nodes
	// detected at this site.
	Nodes map[string]*sitter.Node

	// Consumed records the spans of symbol references this rewrite
	// eliminates. Import pruning subtracts exactly these occurrences
	// from its usage count, so a still-used symbol's import is never
	// deleted on the strength of a heuristic recount.
	Consumed []Span
}

// Node returns the named node, or nil if the detector did not record it.
func (m *Match) Node(name string) *sitter.Node {
	return m.Nodes[name]
}

// Consume records nodes as references eliminated by this rewrite.
func (m *Match) Consume(t *Tree, nodes ...*sitter.Node) {
	for _, n := range nodes {
		m.Consumed = append(m.Consumed, t.SpanOf(n))
	}
}

// A Rule is one mechanical transformation: a detector paired with a
// planner. Detectors never mutate anything; planners return the edits
// realizing the transformation at one matched site, or ErrSkip to decline
// an ambiguous site.
type Rule interface {
	Name() string
	Detect(t *Tree) []*Match
	Plan(t *Tree, m *Match) ([]Edit, error)
}

// A Finisher is implemented by rules that need a whole-pass step after all
// of their sites are planned. Import pruning, which must see the union of
// consumed spans, is the canonical case. Finish receives only the matches
// that planned successfully.
type Finisher interface {
	Finish(t *Tree, planned []*Match) ([]Edit, error)
}

// A Result is the outcome of one transformation pass over one buffer.
type Result struct {
	Text     []byte   // rewritten source
	Sites    int      // matched sites rewritten
	Warnings []string // ambiguous sites skipped, human-readable
}

// Apply runs rules against t and commits the accumulated edits.
//
// Error taxonomy: no detector matching anything is not an error; Apply
// returns ErrNoChange. A planner returning ErrSkip abandons that one site
// with a warning and the pass continues. Any other planner error is a
// defect in the rule's detector/planner pairing and fails the pass, as do
// overlapping or out-of-bounds edits at commit time. Callers can therefore
// tell "nothing to do" apart from "something went wrong".
func Apply(t *Tree, rules ...Rule) (*Result, error) {
	res := &Result{}
	var set EditSet

	for _, rule := range rules {
		matches := dedup(t, rule.Detect(t))
		var planned []*Match
		for _, m := range matches {
			edits, err := rule.Plan(t, m)
			if errors.Is(err, ErrSkip) {
				res.Warnings = append(res.Warnings, skipMessage(t, rule, m, err))
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.Name(), err)
			}
			set.Add(edits...)
			planned = append(planned, m)
			res.Sites++
		}
		if f, ok := rule.(Finisher); ok && len(planned) > 0 {
			edits, err := f.Finish(t, planned)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.Name(), err)
			}
			set.Add(edits...)
		}
	}

	if set.Empty() {
		// Warnings for skipped sites survive alongside the sentinel.
		return res, ErrNoChange
	}
	text, err := set.Apply(t.Src())
	if err != nil {
		return nil, err
	}
	res.Text = text
	return res, nil
}

// dedup drops matches whose span signature repeats an earlier match of the
// same rule. Detectors that reach one site along two query paths produce
// duplicate matches; keying on node spans gives them a stable identity.
func dedup(t *Tree, matches []*Match) []*Match {
	if len(matches) < 2 {
		return matches
	}
	seen := make(map[string]bool)
	var out []*Match
	for _, m := range matches {
		k := signature(t, m)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}

func signature(t *Tree, m *Match) string {
	keys := make([]string, 0, len(m.Nodes))
	for name := range m.Nodes {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, name := range keys {
		fmt.Fprintf(&b, "%s=%s;", name, t.SpanOf(m.Nodes[name]))
	}
	return b.String()
}

func skipMessage(t *Tree, rule Rule, m *Match, err error) string {
	pos := Position{}
	for _, n := range m.Nodes {
		p := t.Position(int(n.StartByte()))
		if !pos.IsValid() || p.Offset < pos.Offset {
			pos = p
		}
	}
	msg := err.Error()
	if pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", pos, rule.Name(), msg)
	}
	return fmt.Sprintf("%s: %s", rule.Name(), msg)
}
