// Copyright 2025 The LangChain Codemods Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diff

import (
	"bytes"
	"testing"
)

const (
	oldName = "a/b/c"
	newName = "d/e/f"
	oldText = "abc\ndef\nghi\n"
	newText = "ABC\ndef\nGHI\n"
	want    = "--- a/b/c\n+++ d/e/f\n@@ -1,3 +1,3 @@\n-abc\n+ABC\n def\n-ghi\n+GHI\n"
)

func TestDiff(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(newText))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != want {
		t.Errorf("Diff: have:\n%s", out)
		t.Errorf("Diff: want:\n%s", want)
	}
}

func TestDiffEqual(t *testing.T) {
	out, err := Diff(oldName, []byte(oldText), newName, []byte(oldText))
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("Diff of equal buffers: have %q, want nil", out)
	}
}

func TestFprintPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Fprint(&buf, []byte(want), false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != want {
		t.Errorf("Fprint without color altered the diff:\n%s", buf.String())
	}
}
