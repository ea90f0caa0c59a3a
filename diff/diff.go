// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diff renders before/after buffers as a unified diff using the
// 'diff' tool.
package diff

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/fatih/color"
)

// Diff returns the unified diff of two byte buffers, headed with the
// given names. A nil result with nil error means the buffers are equal.
func Diff(oldName string, old []byte, newName string, new []byte) ([]byte, error) {
	f1, err := writeTempFile(old)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f1)

	f2, err := writeTempFile(new)
	if err != nil {
		return nil, err
	}
	defer os.Remove(f2)

	data, err := exec.Command("diff", "-u", f1, f2).CombinedOutput()
	if err != nil && len(data) == 0 {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	// Replace the temp-file header lines with the caller's names.
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil
	}
	j := bytes.IndexByte(data[i+1:], '\n')
	if j < 0 {
		return data, nil
	}
	start := i + 1 + j + 1
	if start >= len(data) || data[start] != '@' {
		return data, nil
	}
	header := fmt.Sprintf("--- %s\n+++ %s\n", oldName, newName)
	return append([]byte(header), data[start:]...), nil
}

var (
	addLine = color.New(color.FgGreen)
	delLine = color.New(color.FgRed)
	hunk    = color.New(color.FgCyan)
)

// Fprint writes a diff to w, coloring added, removed, and hunk-header
// lines when colorize is set.
func Fprint(w io.Writer, data []byte, colorize bool) error {
	if !colorize {
		_, err := w.Write(data)
		return err
	}
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var err error
		switch {
		case line[0] == '+' && !bytes.HasPrefix(line, []byte("+++")):
			_, err = addLine.Fprint(w, string(line))
		case line[0] == '-' && !bytes.HasPrefix(line, []byte("---")):
			_, err = delLine.Fprint(w, string(line))
		case line[0] == '@':
			_, err = hunk.Fprint(w, string(line))
		default:
			_, err = w.Write(line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTempFile(data []byte) (string, error) {
	file, err := os.CreateTemp("", "lcmod-diff")
	if err != nil {
		return "", err
	}
	_, err = file.Write(data)
	if err1 := file.Close(); err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}
