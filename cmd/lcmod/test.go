// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/alexbit-codemod/langchain-codemods/diff"
	"github.com/alexbit-codemod/langchain-codemods/python"
	"github.com/alexbit-codemod/langchain-codemods/rewrite"
	"github.com/alexbit-codemod/langchain-codemods/rules"
)

var testCmd = &cobra.Command{
	Use:   "test dir",
	Short: "Run fixture cases: apply rewrites to each input.py and compare against expected.py",
	Long: `Test walks dir for fixture cases, directories holding an input.py with a
sibling expected.py. Each input is rewritten and compared verbatim against
the expected output; an input without changes must match its expected file
byte for byte. When a path component names a registered rule, only that
rule runs for the case; otherwise all rules run.`,
	Args: cobra.ExactArgs(1),
	RunE: runTest,
}

var (
	passMark = color.New(color.FgGreen)
	failMark = color.New(color.FgRed)
)

func runTest(cmd *cobra.Command, args []string) error {
	root := args[0]
	out := cmd.OutOrStdout()

	var inputs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Name() == "input.py" {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no fixture cases under %s", root)
	}

	failures := 0
	for _, input := range inputs {
		caseDir := filepath.Dir(input)
		name, err := filepath.Rel(root, caseDir)
		if err != nil {
			name = caseDir
		}
		if err := runCase(cmd, input); err != nil {
			failures++
			failMark.Fprintf(out, "FAIL %s\n", name)
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
			continue
		}
		passMark.Fprintf(out, "ok   %s\n", name)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d cases failed", failures, len(inputs))
	}
	fmt.Fprintf(out, "%d cases passed\n", len(inputs))
	return nil
}

func runCase(cmd *cobra.Command, input string) error {
	caseDir := filepath.Dir(input)
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	want, err := os.ReadFile(filepath.Join(caseDir, "expected.py"))
	if err != nil {
		return err
	}

	selected, err := rules.Select(caseRules(input), "")
	if err != nil {
		return err
	}

	t, err := python.Parse(cmd.Context(), input, src)
	if err != nil {
		return err
	}
	defer t.Close()

	got := src
	res, err := rewrite.Apply(t, selected...)
	switch {
	case errors.Is(err, rewrite.ErrNoChange):
		// got stays equal to the input.
	case err != nil:
		return err
	default:
		got = res.Text
	}

	if !bytes.Equal(got, want) {
		d, derr := diff.Diff("expected.py", want, "got", got)
		if derr != nil {
			return fmt.Errorf("output does not match expected.py")
		}
		return fmt.Errorf("output does not match expected.py:\n%s", d)
	}
	return nil
}

// caseRules infers the rule under test from the fixture path: the
// original repository lays fixtures out as <rule>/tests/<case>/input.py.
// No matching component means every rule runs.
func caseRules(input string) []string {
	known := make(map[string]bool)
	for _, info := range rules.All() {
		known[info.Rule.Name()] = true
	}
	for _, part := range strings.Split(filepath.ToSlash(input), "/") {
		if known[part] {
			return []string{part}
		}
		// Fixture directories may carry an ecosystem prefix, as in
		// langchain-stream-event-agent-to-model.
		if i := strings.Index(part, "-"); i > 0 && known[part[i+1:]] {
			return []string{part[i+1:]}
		}
	}
	return nil
}
