// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package python

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

// A Binding is one bound name in a "from M import a, b" statement.
type Binding struct {
	Stmt   *sitter.Node // the import_from_statement
	Name   *sitter.Node // the name node binding the symbol
	Module string       // dotted module path
	Local  string       // name the statement binds, alias-aware
	Sole   bool         // the statement binds no other name
}

// FindBinding locates the from-import binding for symbol. If the symbol
// resolves to zero bindings, or ambiguously to more than one, it reports
// not found: shadowed and re-imported names are skipped rather than
// guessed at.
func FindBinding(t *rewrite.Tree, symbol string) (*Binding, bool) {
	var found []*Binding
	for _, stmt := range t.FindAll(nil, rewrite.Kind("import_from_statement")) {
		mod := rewrite.Field(stmt, "module_name")
		names := importedNames(stmt, mod)
		for _, name := range names {
			if localName(t, name) != symbol {
				continue
			}
			b := &Binding{
				Stmt: stmt,
				Name: name,
				Sole: len(names) == 1,
			}
			if mod != nil {
				b.Module = t.Text(mod)
			}
			b.Local = symbol
			found = append(found, b)
		}
	}
	if len(found) != 1 {
		return nil, false
	}
	return found[0], true
}

// importedNames returns the name nodes bound by a from-import, in source
// order. The module node is the first named child; everything after it
// that is a dotted_name or aliased_import is a bound name. A wildcard
// import binds no prunable name.
func importedNames(stmt, mod *sitter.Node) []*sitter.Node {
	var names []*sitter.Node
	past := mod == nil
	for _, kid := range rewrite.NamedChildren(stmt) {
		if !past {
			if kid.Equal(mod) {
				past = true
			}
			continue
		}
		switch kid.Type() {
		case "dotted_name", "aliased_import":
			names = append(names, kid)
		}
	}
	return names
}

func localName(t *rewrite.Tree, name *sitter.Node) string {
	if name.Type() == "aliased_import" {
		if alias := rewrite.Field(name, "alias"); alias != nil {
			return t.Text(alias)
		}
	}
	return t.Text(name)
}

// Uses counts references to symbol outside import statements and outside
// the consumed spans, the occurrences this pass is rewriting away.
// Consumed spans are tracked node identities recorded by the rules, not a
// recount: an overcount here would delete a used symbol's import, so the
// subtraction is exact by construction. Attribute members and other
// incidental identifiers still count, which errs toward keeping imports.
func Uses(t *rewrite.Tree, symbol string, consumed []rewrite.Span) int {
	n := 0
Ids:
	for _, id := range t.FindAll(nil, rewrite.And(rewrite.Kind("identifier"), rewrite.TextIs(symbol))) {
		span := t.SpanOf(id)
		for _, c := range consumed {
			if c.Covers(span) {
				continue Ids
			}
		}
		for p := id.Parent(); p != nil; p = p.Parent() {
			switch p.Type() {
			case "import_from_statement", "import_statement", "future_import_statement":
				continue Ids
			}
		}
		n++
	}
	return n
}

// Prune plans the removal of symbol from its declaring from-import,
// provided the adjusted usage count is zero and the symbol resolves to
// exactly one binding. The sole bound name takes the whole statement and
// its line with it; otherwise only the name and one separator go. When
// pruning is not clearly safe, Prune plans nothing.
func Prune(t *rewrite.Tree, symbol string, consumed []rewrite.Span) ([]rewrite.Edit, bool) {
	if Uses(t, symbol, consumed) > 0 {
		return nil, false
	}
	b, ok := FindBinding(t, symbol)
	if !ok {
		return nil, false
	}
	if b.Sole {
		return []rewrite.Edit{rewrite.RemoveStatement(t, b.Stmt)}, true
	}
	e, err := rewrite.RemoveElement(t, b.Name)
	if err != nil {
		return nil, false
	}
	return []rewrite.Edit{e}, true
}
