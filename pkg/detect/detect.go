// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package detect implements line-local comment detection and rewriting.
//
// Every operation takes a single line of text plus a resolved style and
// never inspects neighboring lines. Multi-line block comments are handled
// by the normalization feature's start/end line classifiers, not here.
//
// Detection is string-literal aware: a marker occurring inside a quoted
// literal (per textutil.InsideString) is not a comment marker.
package detect

import (
	"strings"

	"github.com/AleutianAI/commentary/pkg/style"
	"github.com/AleutianAI/commentary/pkg/textutil"
)

// Kind distinguishes which comment form matched a line.
type Kind int

const (
	// KindLine is a line-comment match.
	KindLine Kind = iota + 1

	// KindBlock is a complete single-line block pair match.
	KindBlock
)

// Marker locates comment markers on one line.
//
// For KindLine, Start is the byte offset of the line marker and End is the
// offset just past it. For KindBlock, Start is the offset of the open
// marker and End is the offset of the close marker.
type Marker struct {
	Start int
	End   int
	Kind  Kind
}

// IsCommented reports whether a line is commented under the given style.
//
// A line comment counts only when the marker follows nothing but leading
// whitespace and is not inside a string literal. A single-line block
// comment counts only when the open marker follows nothing but whitespace,
// the close marker is followed by nothing but whitespace, and both sit
// outside string literals. Block fragments (an open with no close on the
// same line) and mid-statement trailing comments do not count.
func IsCommented(line string, st style.Style) bool {
	_, ok := FindMarkers(line, st)
	return ok
}

// FindMarkers locates the comment markers on a line, or reports absence.
//
// Block is checked before line: some languages have a line marker that is a
// prefix of their block-open marker ("--" vs "--[[" in Lua), so trying the
// line form first would misclassify a block comment.
func FindMarkers(line string, st style.Style) (Marker, bool) {
	if m, ok := blockMarkers(line, st); ok {
		return m, true
	}
	if m, ok := lineMarker(line, st); ok {
		return m, true
	}
	return Marker{}, false
}

// Strip removes exactly one matched marker pair (or one line marker) plus
// at most one adjacent space on each side of the removed markers. Leading
// indentation is preserved exactly. A line that does not match the style is
// returned unchanged; no match is not an error.
func Strip(line string, st style.Style) string {
	m, ok := FindMarkers(line, st)
	if !ok {
		return line
	}

	switch m.Kind {
	case KindBlock:
		inner := line[m.Start+len(st.Block.Open) : m.End]
		inner = strings.TrimPrefix(inner, " ")
		inner = strings.TrimSuffix(inner, " ")
		return line[:m.Start] + inner + line[m.End+len(st.Block.Close):]
	default:
		rest := strings.TrimPrefix(line[m.End:], " ")
		return line[:m.Start] + rest
	}
}

// Add comments a line under the given style.
//
// For an empty or whitespace-only line the marker is inserted bare: the
// block open and close with a single space between them, or the line marker
// alone. Non-empty lines prefer the line form unless useBlock is set or no
// line form exists, in which case the content is wrapped in the block pair.
// A style with neither form returns the input unchanged.
func Add(line string, st style.Style, useBlock bool) string {
	block := st.HasBlock() && (useBlock || !st.HasLine())
	if !block && !st.HasLine() {
		return line
	}

	if strings.TrimSpace(line) == "" {
		if block {
			return line + st.Block.Open + " " + st.Block.Close
		}
		return line + st.Line
	}

	indent := leadingWhitespace(line)
	rest := line[indent:]
	if block {
		return line[:indent] + st.Block.Open + " " + rest + " " + st.Block.Close
	}
	return line[:indent] + st.Line + " " + rest
}

func lineMarker(line string, st style.Style) (Marker, bool) {
	if !st.HasLine() {
		return Marker{}, false
	}
	indent := leadingWhitespace(line)
	if !strings.HasPrefix(line[indent:], st.Line) {
		return Marker{}, false
	}
	if textutil.InsideString(line, indent) {
		return Marker{}, false
	}
	return Marker{Start: indent, End: indent + len(st.Line), Kind: KindLine}, true
}

func blockMarkers(line string, st style.Style) (Marker, bool) {
	if !st.HasBlock() {
		return Marker{}, false
	}
	indent := leadingWhitespace(line)
	if !strings.HasPrefix(line[indent:], st.Block.Open) {
		return Marker{}, false
	}

	trimmed := strings.TrimRight(line, " \t")
	closeStart := len(trimmed) - len(st.Block.Close)
	// The pair must be complete on this line and must not overlap.
	if closeStart < indent+len(st.Block.Open) || !strings.HasSuffix(trimmed, st.Block.Close) {
		return Marker{}, false
	}
	if textutil.InsideString(line, indent) || textutil.InsideString(line, closeStart) {
		return Marker{}, false
	}
	return Marker{Start: indent, End: closeStart, Kind: KindBlock}, true
}

func leadingWhitespace(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}
