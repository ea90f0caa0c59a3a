// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rules_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/alexbit-codemod/langchain-codemods/python"
	"github.com/alexbit-codemod/langchain-codemods/rewrite"
	"github.com/alexbit-codemod/langchain-codemods/rules"
)

// TestFixtures runs every archive under testdata: the comment names the
// rules to apply ("all" for the full set), input.py is rewritten, and the
// result must equal expected.py byte for byte. The result is then run
// through the same rules again and must come back unchanged.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txt"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}

			var input, expected []byte
			for _, f := range ar.Files {
				switch f.Name {
				case "input.py":
					input = f.Data
				case "expected.py":
					expected = f.Data
				}
			}
			if input == nil || expected == nil {
				t.Fatal("archive must contain input.py and expected.py")
			}

			selected, err := rules.Select(ruleNames(ar.Comment), "")
			if err != nil {
				t.Fatal(err)
			}

			got := applyAll(t, input, selected)
			if !bytes.Equal(got, expected) {
				t.Errorf("output:\n%s", got)
				t.Errorf("want:\n%s", expected)
			}

			// Second pass over the result must find nothing further.
			again := applyAll(t, got, selected)
			if !bytes.Equal(again, got) {
				t.Errorf("not idempotent; second pass produced:\n%s", again)
			}
		})
	}
}

func applyAll(t *testing.T, src []byte, selected []rewrite.Rule) []byte {
	t.Helper()
	tree, err := python.Parse(context.Background(), "input.py", src)
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	res, err := rewrite.Apply(tree, selected...)
	if errors.Is(err, rewrite.ErrNoChange) {
		return src
	}
	if err != nil {
		t.Fatal(err)
	}
	return res.Text
}

func ruleNames(comment []byte) []string {
	for _, line := range strings.Split(string(comment), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "all" {
			return nil
		}
		return strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
	}
	return nil
}

// Conflicting keyword spellings are skipped with a warning, never
// resolved by guesswork.
func TestConflictingKeywordsWarn(t *testing.T) {
	src := "agent = create_agent(model=\"gpt-4o\", prompt=\"a\", system_prompt=\"b\")\n"
	tree, err := python.Parse(context.Background(), "input.py", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	defer tree.Close()

	selected, err := rules.Select([]string{"prompt-to-system-prompt"}, "")
	if err != nil {
		t.Fatal(err)
	}
	res, err := rewrite.Apply(tree, selected...)
	if !errors.Is(err, rewrite.ErrNoChange) {
		t.Fatalf("Apply = %v, want ErrNoChange", err)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "system_prompt") {
		t.Errorf("Warnings = %v, want one conflict warning", res.Warnings)
	}
}

func TestSelect(t *testing.T) {
	if _, err := rules.Select([]string{"no-such-rule"}, ""); err == nil {
		t.Error("Select accepted an unknown rule name")
	}
	if _, err := rules.Select(nil, "1.0"); err == nil {
		t.Error("Select accepted a malformed target version")
	}

	all, err := rules.Select(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(rules.All()) {
		t.Errorf("Select(nil) = %d rules, want %d", len(all), len(rules.All()))
	}

	// Every registered rule targets v1; a v0 target selects nothing.
	none, err := rules.Select(nil, "v0.3.0")
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Errorf("Select(v0.3.0) = %d rules, want 0", len(none))
	}
}
