// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package python layers Python-specific knowledge over the rewrite
// engine: parser construction, call-shape helpers, and the import model
// with its conservative pruner.
package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	tspython "github.com/smacker/go-tree-sitter/python"

	"github.com/alexbit-codemod/langchain-codemods/rewrite"
)

// Parse parses src as Python and returns a query view over the tree.
// The caller owns the returned tree and should Close it when done.
func Parse(ctx context.Context, path string, src []byte) (*rewrite.Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(tspython.GetLanguage())
	ts, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rewrite.NewTree(path, src, ts), nil
}
