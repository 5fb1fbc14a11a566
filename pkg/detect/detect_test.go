// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package detect

import (
	"testing"

	"github.com/AleutianAI/commentary/pkg/style"
)

var (
	cStyle    = style.Style{Line: "//", Block: &style.BlockPair{Open: "/*", Close: "*/"}}
	hashStyle = style.Style{Line: "#"}
	luaStyle  = style.Style{Line: "--", Block: &style.BlockPair{Open: "--[[", Close: "]]"}}
	htmlStyle = style.Style{Block: &style.BlockPair{Open: "<!--", Close: "-->"}}
)

func TestIsCommented_LineForm(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"// x", true},
		{"//x", true},
		{"    // indented", true},
		{"\t// tab indented", true},
		{"x // trailing", false},
		{`s := "// not a comment"`, false},
		{"", false},
		{"   ", false},
		{"plain code", false},
	}
	for _, tt := range tests {
		if got := IsCommented(tt.line, cStyle); got != tt.want {
			t.Errorf("IsCommented(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestIsCommented_BlockForm(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"/* x */", true},
		{"  /* x */  ", true},
		{"/**/", true},
		{"/* open only", false},
		{"close only */", false},
		{"code(); /* trailing */", false},
		{"/* x */ code();", false},
	}
	// Block-only style so line-form matching cannot mask block results.
	st := style.Style{Block: &style.BlockPair{Open: "/*", Close: "*/"}}
	for _, tt := range tests {
		if got := IsCommented(tt.line, st); got != tt.want {
			t.Errorf("IsCommented(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestFindMarkers_BlockBeforeLine(t *testing.T) {
	// Lua's line marker is a prefix of its block-open marker; block must
	// win or "--[[x]]" would classify as a line comment.
	m, ok := FindMarkers("--[[ x ]]", luaStyle)
	if !ok {
		t.Fatal("expected markers")
	}
	if m.Kind != KindBlock {
		t.Errorf("expected block kind, got %v", m.Kind)
	}

	m, ok = FindMarkers("-- x", luaStyle)
	if !ok {
		t.Fatal("expected markers")
	}
	if m.Kind != KindLine {
		t.Errorf("expected line kind, got %v", m.Kind)
	}
}

func TestStrip_Line(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"// x", "x"},
		{"//x", "x"},
		{"  // x", "  x"},
		{"\t// x", "\tx"},
		{"//  double space", " double space"},
		{"no comment", "no comment"},
		{"//", ""},
	}
	for _, tt := range tests {
		if got := Strip(tt.line, cStyle); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestStrip_Block(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"/* x */", "x"},
		{"  /* x */", "  x"},
		{"/*x*/", "x"},
		{"/**/", ""},
		{"/* */", ""},
		{"/* open only", "/* open only"},
	}
	st := style.Style{Block: &style.BlockPair{Open: "/*", Close: "*/"}}
	for _, tt := range tests {
		if got := Strip(tt.line, st); got != tt.want {
			t.Errorf("Strip(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAdd_Line(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"x", "// x"},
		{"  x", "  // x"},
		{"\tx", "\t// x"},
		{"", "//"},
		{"   ", "   //"},
	}
	for _, tt := range tests {
		if got := Add(tt.line, cStyle, false); got != tt.want {
			t.Errorf("Add(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAdd_Block(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"x", "/* x */"},
		{"  x", "  /* x */"},
		{"", "/* */"},
	}
	for _, tt := range tests {
		if got := Add(tt.line, cStyle, true); got != tt.want {
			t.Errorf("Add(%q, block) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAdd_NoLineFallsBackToBlock(t *testing.T) {
	if got := Add("x", htmlStyle, false); got != "<!-- x -->" {
		t.Errorf("Add without line form = %q, want wrapped block", got)
	}
}

func TestAdd_EmptyStyle(t *testing.T) {
	if got := Add("x", style.Style{}, false); got != "x" {
		t.Errorf("Add with empty style should return input, got %q", got)
	}
}

func TestRoundTrip_LineLaw(t *testing.T) {
	lines := []string{"x", "  indented code", "\ttabbed", "a := b + c", ""}
	for _, line := range lines {
		if got := Strip(Add(line, cStyle, false), cStyle); got != line {
			t.Errorf("strip(add(%q)) = %q, want identity", line, got)
		}
	}
}

func TestRoundTrip_BlockLaw(t *testing.T) {
	lines := []string{"x", "  indented code", "a := b + c", ""}
	for _, line := range lines {
		if got := Strip(Add(line, cStyle, true), cStyle); got != line {
			t.Errorf("strip(add(%q, block)) = %q, want identity", line, got)
		}
	}
}

func TestRoundTrip_HashStyle(t *testing.T) {
	for _, line := range []string{"puts 1", "  nested", ""} {
		if got := Strip(Add(line, hashStyle, false), hashStyle); got != line {
			t.Errorf("strip(add(%q)) = %q, want identity", line, got)
		}
	}
}

func TestStrip_StringLiteralAware(t *testing.T) {
	line := `s := "// text"`
	if got := Strip(line, cStyle); got != line {
		t.Errorf("Strip must not touch a marker inside a string, got %q", got)
	}
}

func TestFindMarkers_Absent(t *testing.T) {
	if _, ok := FindMarkers("plain", cStyle); ok {
		t.Error("expected no markers on plain code")
	}
	if _, ok := FindMarkers("// x", style.Style{}); ok {
		t.Error("expected no markers with empty style")
	}
}
