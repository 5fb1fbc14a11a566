// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package buffer defines the text-buffer surface the engine mutates, plus
// an in-memory implementation with grouped (atomic-undo) edits.
//
// Line numbers are 1-indexed and ranges are inclusive, matching editor
// conventions. A grouped mutation collects every SetLines issued inside
// one Group call into a single undo unit: one Undo reverses the whole
// operation, never a partial subset.
package buffer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrRange indicates 1-indexed line bounds outside the buffer.
var ErrRange = errors.New("line range out of bounds")

// Buffer is the read/write surface the engine operates on.
type Buffer interface {
	// Lines returns lines start..end, 1-indexed inclusive.
	Lines(start, end int) ([]string, error)

	// SetLines replaces lines start..end with replacement lines. The
	// replacement may have a different length than the range.
	SetLines(start, end int, lines []string) error

	// LineCount returns the number of lines in the buffer.
	LineCount() int

	// Filetype returns the buffer's declared filetype ("go", "tsx", ...).
	Filetype() string

	// Bytes returns the full buffer content, for syntax parsing.
	Bytes() []byte

	// Group runs fn with every mutation it issues collected into one
	// atomic undo unit. A non-nil error from fn rolls the group back and
	// no edits survive.
	Group(fn func() error) error

	// LastGroupID identifies the most recent committed undo group, so
	// hosts can correlate an engine mutation with their own undo stack.
	// Empty when the journal is empty.
	LastGroupID() string
}

type edit struct {
	start int
	old   []string
	new   []string
}

type editGroup struct {
	id    string
	edits []edit
}

// MemoryBuffer is an in-memory Buffer with an undo journal.
//
// Thread Safety:
//
//	MemoryBuffer is not safe for concurrent use. The engine assumes
//	exclusive access for the duration of one operation, matching the host
//	editor's single-threaded mutation model.
type MemoryBuffer struct {
	lines    []string
	filetype string
	journal  []editGroup
	open     *editGroup
}

// NewMemory creates a buffer from full text content. A trailing newline
// does not produce a phantom empty last line. Empty content yields a
// single empty line, as editors do.
func NewMemory(content, filetype string) *MemoryBuffer {
	content = strings.TrimSuffix(content, "\n")
	return &MemoryBuffer{
		lines:    strings.Split(content, "\n"),
		filetype: filetype,
	}
}

// NewMemoryLines creates a buffer from pre-split lines. The slice is
// copied.
func NewMemoryLines(lines []string, filetype string) *MemoryBuffer {
	if len(lines) == 0 {
		lines = []string{""}
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return &MemoryBuffer{lines: out, filetype: filetype}
}

// Lines returns lines start..end, 1-indexed inclusive.
func (b *MemoryBuffer) Lines(start, end int) ([]string, error) {
	if err := b.check(start, end); err != nil {
		return nil, err
	}
	out := make([]string, end-start+1)
	copy(out, b.lines[start-1:end])
	return out, nil
}

// SetLines replaces lines start..end. Outside a Group the edit forms its
// own single-edit undo unit.
func (b *MemoryBuffer) SetLines(start, end int, lines []string) error {
	if err := b.check(start, end); err != nil {
		return err
	}

	old := make([]string, end-start+1)
	copy(old, b.lines[start-1:end])
	replacement := make([]string, len(lines))
	copy(replacement, lines)

	e := edit{start: start, old: old, new: replacement}
	rebuilt := make([]string, 0, len(b.lines)-len(old)+len(replacement))
	rebuilt = append(rebuilt, b.lines[:start-1]...)
	rebuilt = append(rebuilt, replacement...)
	rebuilt = append(rebuilt, b.lines[end:]...)
	b.lines = rebuilt

	if b.open != nil {
		b.open.edits = append(b.open.edits, e)
		return nil
	}
	b.journal = append(b.journal, editGroup{id: uuid.NewString(), edits: []edit{e}})
	return nil
}

// LineCount returns the number of lines.
func (b *MemoryBuffer) LineCount() int { return len(b.lines) }

// Filetype returns the declared filetype.
func (b *MemoryBuffer) Filetype() string { return b.filetype }

// Bytes returns the joined buffer content with trailing newline.
func (b *MemoryBuffer) Bytes() []byte {
	return []byte(strings.Join(b.lines, "\n") + "\n")
}

// Group collects every SetLines issued by fn into one undo unit. Nested
// groups fold into the outermost one. If fn returns an error the staged
// edits are rolled back and the error is returned.
func (b *MemoryBuffer) Group(fn func() error) error {
	if b.open != nil {
		return fn()
	}

	g := editGroup{id: uuid.NewString()}
	b.open = &g
	err := fn()
	b.open = nil

	if err != nil {
		b.revert(g)
		return err
	}
	if len(g.edits) > 0 {
		b.journal = append(b.journal, g)
	}
	return nil
}

// LastGroupID returns the id of the most recent committed undo group, or
// "" when nothing has been edited.
func (b *MemoryBuffer) LastGroupID() string {
	if len(b.journal) == 0 {
		return ""
	}
	return b.journal[len(b.journal)-1].id
}

// Undo reverses the most recent edit group in full. Returns false when the
// journal is empty.
func (b *MemoryBuffer) Undo() bool {
	if len(b.journal) == 0 {
		return false
	}
	g := b.journal[len(b.journal)-1]
	b.journal = b.journal[:len(b.journal)-1]
	b.revert(g)
	return true
}

// revert unapplies a group's edits in reverse order.
func (b *MemoryBuffer) revert(g editGroup) {
	for i := len(g.edits) - 1; i >= 0; i-- {
		e := g.edits[i]
		rebuilt := make([]string, 0, len(b.lines)-len(e.new)+len(e.old))
		rebuilt = append(rebuilt, b.lines[:e.start-1]...)
		rebuilt = append(rebuilt, e.old...)
		rebuilt = append(rebuilt, b.lines[e.start-1+len(e.new):]...)
		b.lines = rebuilt
	}
}

func (b *MemoryBuffer) check(start, end int) error {
	if start < 1 || end < start || end > len(b.lines) {
		return fmt.Errorf("%w: [%d, %d] in %d lines", ErrRange, start, end, len(b.lines))
	}
	return nil
}
