// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexbit-codemod/langchain-codemods/rules"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered rewrite rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, info := range rules.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Rule.Name(), info.Target, info.Summary)
		}
		return w.Flush()
	},
}
