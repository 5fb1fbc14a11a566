// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package style defines comment styles and the language registry that
// resolves them.
//
// A Style is plain immutable data: a line marker, an optional block marker
// pair, and capability flags. Behavior differences between languages are
// expressed as data in the builtin table, not as per-language types. The
// registry is populated once at startup (builtin table plus validated user
// overrides) and is read-only afterward.
//
// Design principles:
//   - Absence is a value: lookups return (Style, bool), never an error
//   - Callers receive copies; the shared table is never exposed
//   - No map[string]interface{} - concrete types only
package style

// BlockPair is an ordered open/close marker pair for block comments.
// Both markers must be non-empty; the registry rejects anything else at
// registration time.
type BlockPair struct {
	Open  string
	Close string
}

// Style describes how a language or context is commented.
//
// The zero value is the empty style: no line form, no block form. It means
// "this position supports no comments" (for example inside JSON) and every
// consumer must treat it as a missing capability rather than a default.
type Style struct {
	// Line is the line-comment marker (for example "//"). Empty if the
	// language has no line-comment form.
	Line string

	// Block is the block-comment marker pair, nil if the language has no
	// block form.
	Block *BlockPair

	// SupportsNesting reports whether nested block markers are valid for
	// this language (Rust, Haskell). Declared capability only; consumers
	// use it to avoid naive nested stripping.
	SupportsNesting bool

	// IsJSX marks a style produced specifically for JSX markup context
	// ({/* */}), distinct from the language's default style.
	IsJSX bool
}

// JSX is the fixed style for positions inside JSX markup. It has no line
// form on purpose: JSX elements only accept block-wrapped expression
// comments.
var JSX = Style{
	Block: &BlockPair{Open: "{/*", Close: "*/}"},
	IsJSX: true,
}

// HasLine reports whether the style has a line-comment form.
func (s Style) HasLine() bool { return s.Line != "" }

// HasBlock reports whether the style has a block-comment form.
func (s Style) HasBlock() bool { return s.Block != nil }

// Empty reports whether the style supports no comment form at all.
func (s Style) Empty() bool { return !s.HasLine() && !s.HasBlock() }

// Clone returns a defensive copy. The Block pointer is duplicated so the
// caller cannot reach back into shared registry state.
func (s Style) Clone() Style {
	out := s
	if s.Block != nil {
		b := *s.Block
		out.Block = &b
	}
	return out
}
