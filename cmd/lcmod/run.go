// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexbit-codemod/langchain-codemods/diff"
	"github.com/alexbit-codemod/langchain-codemods/python"
	"github.com/alexbit-codemod/langchain-codemods/rewrite"
	"github.com/alexbit-codemod/langchain-codemods/rules"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] path...",
	Short: "Apply migration rewrites to Python files or directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().Bool("diff", true, "print a diff of the intended changes")
	runCmd.Flags().BoolP("write", "w", false, "write changes back to the files")
	runCmd.Flags().StringSlice("rules", nil, "comma-separated rule names (default: all)")
	runCmd.Flags().String("target", "", "migration target version, e.g. v1.0.0")
	runCmd.Flags().Int("jobs", runtime.GOMAXPROCS(0), "files to process in parallel")
}

// fileOutcome is the per-file pipeline result, collected so output stays
// in discovery order regardless of which file finishes first.
type fileOutcome struct {
	path   string
	result *rewrite.Result // nil when unchanged
	err    error
}

func runRun(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	showDiff, _ := cmd.Flags().GetBool("diff")
	ruleNames, _ := cmd.Flags().GetStringSlice("rules")
	target, _ := cmd.Flags().GetString("target")
	jobs, _ := cmd.Flags().GetInt("jobs")

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	if len(ruleNames) == 0 {
		ruleNames = cfg.Rules
	}
	if target == "" {
		target = cfg.Target
	}
	selected, err := rules.Select(ruleNames, target)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no rules selected for target %s", target)
	}

	files, err := discover(args, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Python files found under %s", strings.Join(args, " "))
	}

	// Each file's parse → detect → plan → commit pipeline is
	// independent; nothing is shared between files.
	outcomes := make([]fileOutcome, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = transformFile(ctx, path, selected)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return report(cmd, outcomes, write, showDiff)
}

func transformFile(ctx context.Context, path string, selected []rewrite.Rule) fileOutcome {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileOutcome{path: path, err: err}
	}
	t, err := python.Parse(ctx, path, src)
	if err != nil {
		return fileOutcome{path: path, err: err}
	}
	defer t.Close()

	res, err := rewrite.Apply(t, selected...)
	if errors.Is(err, rewrite.ErrNoChange) {
		return fileOutcome{path: path, result: res}
	}
	if err != nil {
		return fileOutcome{path: path, err: fmt.Errorf("%s: %w", path, err)}
	}
	return fileOutcome{path: path, result: res}
}

func report(cmd *cobra.Command, outcomes []fileOutcome, write, showDiff bool) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failed := false

	for _, o := range outcomes {
		if o.err != nil {
			fmt.Fprintln(errOut, o.err)
			failed = true
			continue
		}
		if o.result == nil {
			continue
		}
		for _, w := range o.result.Warnings {
			fmt.Fprintf(errOut, "warning: %s\n", w)
		}
		if o.result.Text == nil {
			// Nothing to do for this file.
			continue
		}
		if write {
			info, err := os.Stat(o.path)
			if err != nil {
				fmt.Fprintln(errOut, err)
				failed = true
				continue
			}
			if err := os.WriteFile(o.path, o.result.Text, info.Mode().Perm()); err != nil {
				fmt.Fprintln(errOut, err)
				failed = true
				continue
			}
			fmt.Fprintf(out, "%s: %d site(s) rewritten\n", o.path, o.result.Sites)
			continue
		}
		if !showDiff {
			fmt.Fprintf(out, "%s: %d site(s) would be rewritten\n", o.path, o.result.Sites)
			continue
		}
		old, err := os.ReadFile(o.path)
		if err != nil {
			fmt.Fprintln(errOut, err)
			failed = true
			continue
		}
		d, err := diff.Diff(o.path, old, o.path, o.result.Text)
		if err != nil {
			fmt.Fprintln(errOut, err)
			failed = true
			continue
		}
		if err := diff.Fprint(out, d, colorize()); err != nil {
			return err
		}
	}

	if failed {
		return fmt.Errorf("errors rewriting files")
	}
	return nil
}

// discover expands the argument paths into the list of .py files to
// process, honoring the config's exclude patterns.
func discover(args []string, cfg *Config) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(arg, path)
			if d.IsDir() {
				if cfg.excluded(rel) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".py" || cfg.excluded(rel) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
