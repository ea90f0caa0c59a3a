// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package python

import (
	"context"
	"testing"

	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

func parse(t *testing.T, src string) *rewrite.Tree {
	t.Helper()
	tree, err := Parse(context.Background(), "test.py", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)
	return tree
}

func TestFindBinding(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		symbol string
		ok     bool
		sole   bool
	}{
		{"multi-name", "from mod import a, wrap, b\n", "wrap", true, false},
		{"sole name", "from mod import wrap\n", "wrap", true, true},
		{"absent", "from mod import a\n", "wrap", false, false},
		{
			"ambiguous re-import",
			"from mod import wrap\nfrom other import wrap\n",
			"wrap", false, false,
		},
		{"alias binds alias", "from mod import wrap as w\n", "w", true, true},
		{"alias hides source name", "from mod import wrap as w\n", "wrap", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := parse(t, tt.src)
			b, ok := FindBinding(tree, tt.symbol)
			if ok != tt.ok {
				t.Fatalf("FindBinding(%q) ok = %v, want %v", tt.symbol, ok, tt.ok)
			}
			if ok && b.Sole != tt.sole {
				t.Errorf("Sole = %v, want %v", b.Sole, tt.sole)
			}
			if ok && b.Module != "mod" {
				t.Errorf("Module = %q, want %q", b.Module, "mod")
			}
		})
	}
}

// consumedCalls returns the spans of the function-name nodes of every
// call to symbol, the way a rule records them while rewriting calls away.
func consumedCalls(t *testing.T, tree *rewrite.Tree, symbol string) []rewrite.Span {
	t.Helper()
	var spans []rewrite.Span
	for _, call := range tree.FindAll(nil, rewrite.Kind("call")) {
		if CallName(tree, call) != symbol {
			continue
		}
		spans = append(spans, tree.SpanOf(FuncNode(call)))
	}
	return spans
}

func TestUses(t *testing.T) {
	tree := parse(t, "from mod import wrap\ny = wrap(x)\nz = wrap(y)\n")

	if got := Uses(tree, "wrap", nil); got != 2 {
		t.Errorf("Uses with nothing consumed = %d, want 2", got)
	}

	consumed := consumedCalls(t, tree, "wrap")
	if len(consumed) != 2 {
		t.Fatalf("found %d wrap calls, want 2", len(consumed))
	}
	if got := Uses(tree, "wrap", consumed[:1]); got != 1 {
		t.Errorf("Uses with one consumed = %d, want 1", got)
	}
	if got := Uses(tree, "wrap", consumed); got != 0 {
		t.Errorf("Uses with all consumed = %d, want 0", got)
	}
}

func applyEdits(t *testing.T, tree *rewrite.Tree, edits []rewrite.Edit) string {
	t.Helper()
	var set rewrite.EditSet
	set.Add(edits...)
	out, err := set.Apply(tree.Src())
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestPrune(t *testing.T) {
	t.Run("sole name removes statement and line", func(t *testing.T) {
		tree := parse(t, "from mod import wrap\ny = wrap(x)\n")
		edits, ok := Prune(tree, "wrap", consumedCalls(t, tree, "wrap"))
		if !ok {
			t.Fatal("Prune declined")
		}
		if got, want := applyEdits(t, tree, edits), "y = wrap(x)\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("multi-name removes one element", func(t *testing.T) {
		tree := parse(t, "from mod import a, wrap, b\ny = wrap(x)\n")
		edits, ok := Prune(tree, "wrap", consumedCalls(t, tree, "wrap"))
		if !ok {
			t.Fatal("Prune declined")
		}
		want := "from mod import a, b\ny = wrap(x)\n"
		if got := applyEdits(t, tree, edits); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("remaining use keeps import intact", func(t *testing.T) {
		tree := parse(t, "from mod import wrap\ny = wrap(x)\nz = wrap(y)\n")
		consumed := consumedCalls(t, tree, "wrap")
		if _, ok := Prune(tree, "wrap", consumed[:1]); ok {
			t.Error("Prune removed the import of a still-used symbol")
		}
	})

	t.Run("ambiguous binding declines", func(t *testing.T) {
		tree := parse(t, "from mod import wrap\nfrom other import wrap\ny = wrap(x)\n")
		if _, ok := Prune(tree, "wrap", consumedCalls(t, tree, "wrap")); ok {
			t.Error("Prune acted on an ambiguous binding")
		}
	})
}
