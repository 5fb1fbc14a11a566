// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package buffer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/AleutianAI/commentary/pkg/style"
)

func TestMemoryBuffer_Lines(t *testing.T) {
	buf := NewMemory("a\nb\nc\n", "go")
	if buf.LineCount() != 3 {
		t.Fatalf("expected 3 lines, got %d", buf.LineCount())
	}

	lines, err := buf.Lines(2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(lines, []string{"b", "c"}) {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestMemoryBuffer_RangeErrors(t *testing.T) {
	buf := NewMemory("a\nb\n", "go")
	for _, r := range [][2]int{{0, 1}, {2, 1}, {1, 3}, {-1, 2}} {
		if _, err := buf.Lines(r[0], r[1]); !errors.Is(err, ErrRange) {
			t.Errorf("Lines(%d, %d): expected ErrRange, got %v", r[0], r[1], err)
		}
		if err := buf.SetLines(r[0], r[1], nil); !errors.Is(err, ErrRange) {
			t.Errorf("SetLines(%d, %d): expected ErrRange, got %v", r[0], r[1], err)
		}
	}
}

func TestMemoryBuffer_SetLines_DifferentLength(t *testing.T) {
	buf := NewMemory("a\nb\nc\n", "go")
	if err := buf.SetLines(2, 2, []string{"x", "y"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines, _ := buf.Lines(1, buf.LineCount())
	if !reflect.DeepEqual(lines, []string{"a", "x", "y", "c"}) {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestMemoryBuffer_Group_SingleUndoUnit(t *testing.T) {
	buf := NewMemory("a\nb\nc\n", "go")

	err := buf.Group(func() error {
		if err := buf.SetLines(1, 1, []string{"A"}); err != nil {
			return err
		}
		return buf.SetLines(3, 3, []string{"C"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines, _ := buf.Lines(1, 3)
	if !reflect.DeepEqual(lines, []string{"A", "b", "C"}) {
		t.Fatalf("edits not applied: %v", lines)
	}

	// One undo reverses the whole group, never a partial subset.
	if !buf.Undo() {
		t.Fatal("expected an undoable group")
	}
	lines, _ = buf.Lines(1, 3)
	if !reflect.DeepEqual(lines, []string{"a", "b", "c"}) {
		t.Errorf("undo left partial state: %v", lines)
	}
}

func TestMemoryBuffer_Group_RollbackOnError(t *testing.T) {
	buf := NewMemory("a\nb\n", "go")
	boom := errors.New("boom")

	err := buf.Group(func() error {
		if err := buf.SetLines(1, 1, []string{"A"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	lines, _ := buf.Lines(1, 2)
	if !reflect.DeepEqual(lines, []string{"a", "b"}) {
		t.Errorf("failed group must leave no edits, got %v", lines)
	}
	if buf.Undo() {
		t.Error("rolled-back group must not be undoable")
	}
}

func TestMemoryBuffer_UngroupedEditIsOwnUnit(t *testing.T) {
	buf := NewMemory("a\n", "go")
	_ = buf.SetLines(1, 1, []string{"x"})
	_ = buf.SetLines(1, 1, []string{"y"})

	buf.Undo()
	lines, _ := buf.Lines(1, 1)
	if lines[0] != "x" {
		t.Errorf("expected one-step undo to x, got %q", lines[0])
	}
}

func TestMemoryBuffer_Bytes(t *testing.T) {
	buf := NewMemory("a\nb", "go")
	if string(buf.Bytes()) != "a\nb\n" {
		t.Errorf("unexpected content: %q", buf.Bytes())
	}
}

func TestMemoryBuffer_EmptyContent(t *testing.T) {
	buf := NewMemory("", "go")
	if buf.LineCount() != 1 {
		t.Errorf("empty content should yield a single empty line, got %d", buf.LineCount())
	}
}

func TestDetectFiletype(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"main.go", "go"},
		{"app.tsx", "typescriptreact"},
		{"component.jsx", "javascriptreact"},
		{"script.PY", "python"},
		{"Dockerfile", "dockerfile"},
		{"Makefile", "makefile"},
		{"notes.md", "markdown"},
		{"query.sql", "sql"},
		{"deploy.ps1", "powershell"},
		{"unknown.xyz", ""},
		{"README", ""},
	}
	for _, tt := range tests {
		if got := DetectFiletype(tt.path); got != tt.want {
			t.Errorf("DetectFiletype(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMemoryBuffer_LastGroupID(t *testing.T) {
	buf := NewMemory("a\nb\n", "go")
	if id := buf.LastGroupID(); id != "" {
		t.Fatalf("unedited buffer must have no group id, got %q", id)
	}

	_ = buf.SetLines(1, 1, []string{"x"})
	first := buf.LastGroupID()
	if first == "" {
		t.Fatal("ungrouped edit must carry a group id")
	}

	err := buf.Group(func() error {
		return buf.SetLines(2, 2, []string{"y"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := buf.LastGroupID()
	if second == "" || second == first {
		t.Errorf("each committed group needs a distinct id: %q then %q", first, second)
	}

	// Undo pops the journal, so the id rolls back with it.
	buf.Undo()
	if got := buf.LastGroupID(); got != first {
		t.Errorf("after undo expected id %q, got %q", first, got)
	}
	buf.Undo()
	if got := buf.LastGroupID(); got != "" {
		t.Errorf("empty journal must report no id, got %q", got)
	}
}

func TestDetectFiletype_AllResolvable(t *testing.T) {
	registry, err := style.New(nil)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	// Every filetype detection can emit must resolve to a style; a
	// detected-but-unstyled filetype would make whole files toggle-dead.
	seen := map[string]bool{}
	for _, ft := range extensionFiletypes {
		seen[ft] = true
	}
	for _, ft := range nameFiletypes {
		seen[ft] = true
	}
	for ft := range seen {
		if _, ok := registry.Resolve(ft); !ok {
			t.Errorf("detected filetype %q has no registry style", ft)
		}
	}
}
