// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Lcmod applies mechanical LangChain v0 → v1 migration rewrites to
// Python sources.
//
// Usage:
//
//	lcmod run [--diff] [-w] [--rules a,b] [--target vX.Y.Z] path...
//	lcmod test dir
//	lcmod list
//
// By default, lcmod run prints a diff of the intended changes; the -w
// flag writes them back to disk instead.
package main

import (
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "devel"

var rootCmd = &cobra.Command{
	Use:     "lcmod",
	Short:   "Mechanical LangChain migration rewrites for Python sources",
	Version: version,
}

func main() {
	log.SetPrefix("lcmod: ")
	log.SetFlags(0)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	cobra.OnInitialize(func() {
		switch mode, _ := rootCmd.PersistentFlags().GetString("color"); mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		}
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func colorize() bool { return !color.NoColor }
