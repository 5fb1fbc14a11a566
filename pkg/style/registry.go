// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package style

import (
	"errors"
	"fmt"
)

// ErrBadBlockPair indicates a user-supplied block pair that is not exactly
// two non-empty marker strings.
var ErrBadBlockPair = errors.New("block pair must be exactly two non-empty markers")

// aliases redirects alternate language ids to their canonical entry.
var aliases = map[string]string{
	"jsx":             "javascriptreact",
	"tsx":             "typescriptreact",
	"js":              "javascript",
	"ts":              "typescript",
	"golang":          "go",
	"shell":           "sh",
	"bash":            "sh",
	"zsh":             "sh",
	"py":              "python",
	"rb":              "ruby",
	"yml":             "yaml",
	"docker":          "dockerfile",
	"make":            "makefile",
	"md":              "markdown",
	"cpp":             "c",
	"objc":            "c",
	"cs":              "csharp",
	"tf":              "terraform",
	"hs":              "haskell",
	"plaintex":        "tex",
}

// builtin is the language table. Keyed by canonical language id.
//
// Sources follow common editor filetype conventions; entries whose block
// markers nest (rust, haskell, ocaml, nim, scheme-family) carry
// SupportsNesting.
var builtin = map[string]Style{
	"go":              {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"c":               {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"java":            {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"javascript":      {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"javascriptreact": {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"typescript":      {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"typescriptreact": {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"csharp":          {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"kotlin":          {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"scala":           {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"swift":           {Line: "//", Block: &BlockPair{"/*", "*/"}, SupportsNesting: true},
	"rust":            {Line: "//", Block: &BlockPair{"/*", "*/"}, SupportsNesting: true},
	"dart":            {Line: "//", Block: &BlockPair{"/*", "*/"}, SupportsNesting: true},
	"groovy":          {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"php":             {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"css":             {Block: &BlockPair{"/*", "*/"}},
	"scss":            {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"less":            {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"sql":             {Line: "--", Block: &BlockPair{"/*", "*/"}},
	"lua":             {Line: "--", Block: &BlockPair{"--[[", "]]"}},
	"haskell":         {Line: "--", Block: &BlockPair{"{-", "-}"}, SupportsNesting: true},
	"elm":             {Line: "--", Block: &BlockPair{"{-", "-}"}, SupportsNesting: true},
	"purescript":      {Line: "--", Block: &BlockPair{"{-", "-}"}, SupportsNesting: true},
	"ada":             {Line: "--"},
	"ocaml":           {Block: &BlockPair{"(*", "*)"}, SupportsNesting: true},
	"pascal":          {Block: &BlockPair{"(*", "*)"}},
	"fsharp":          {Line: "//", Block: &BlockPair{"(*", "*)"}},
	"python":          {Line: "#"},
	"ruby":            {Line: "#", Block: &BlockPair{"=begin", "=end"}},
	"perl":            {Line: "#"},
	"sh":              {Line: "#"},
	"fish":            {Line: "#"},
	"powershell":      {Line: "#", Block: &BlockPair{"<#", "#>"}},
	"makefile":        {Line: "#"},
	"cmake":           {Line: "#"},
	"dockerfile":      {Line: "#"},
	"yaml":            {Line: "#"},
	"toml":            {Line: "#"},
	"conf":            {Line: "#"},
	"gitconfig":       {Line: "#"},
	"gitignore":       {Line: "#"},
	"gitcommit":       {Line: "#"},
	"nim":             {Line: "#", Block: &BlockPair{"#[", "]#"}, SupportsNesting: true},
	"elixir":          {Line: "#"},
	"crystal":         {Line: "#"},
	"r":               {Line: "#"},
	"julia":           {Line: "#", Block: &BlockPair{"#=", "=#"}, SupportsNesting: true},
	"terraform":       {Line: "#", Block: &BlockPair{"/*", "*/"}},
	"hcl":             {Line: "#", Block: &BlockPair{"/*", "*/"}},
	"nix":             {Line: "#", Block: &BlockPair{"/*", "*/"}},
	"graphql":         {Line: "#"},
	"html":            {Block: &BlockPair{"<!--", "-->"}},
	"xml":             {Block: &BlockPair{"<!--", "-->"}},
	"markdown":        {Block: &BlockPair{"<!--", "-->"}},
	"svelte":          {Block: &BlockPair{"<!--", "-->"}},
	"vue":             {Block: &BlockPair{"<!--", "-->"}},
	"vim":             {Line: "\""},
	"tex":             {Line: "%"},
	"bibtex":          {Line: "%"},
	"erlang":          {Line: "%"},
	"prolog":          {Line: "%", Block: &BlockPair{"/*", "*/"}},
	"matlab":          {Line: "%", Block: &BlockPair{"%{", "%}"}},
	"clojure":         {Line: ";"},
	"lisp":            {Line: ";", Block: &BlockPair{"#|", "|#"}, SupportsNesting: true},
	"scheme":          {Line: ";", Block: &BlockPair{"#|", "|#"}, SupportsNesting: true},
	"racket":          {Line: ";", Block: &BlockPair{"#|", "|#"}, SupportsNesting: true},
	"ini":             {Line: ";"},
	"assembly":        {Line: ";"},
	"zig":             {Line: "//"},
	"odin":            {Line: "//", Block: &BlockPair{"/*", "*/"}, SupportsNesting: true},
	"v":               {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"sol":             {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"proto":           {Line: "//", Block: &BlockPair{"/*", "*/"}},
	"fortran":         {Line: "!"},
	"vhdl":            {Line: "--"},
	"basic":           {Line: "'"},
	"bat":             {Line: "REM"},
	"json":            {},
	"jsonc":           {Line: "//", Block: &BlockPair{"/*", "*/"}},
}

// Override customizes or adds one registry entry. Omitted fields inherit the
// builtin value for that language; present fields replace it. A Block slice
// must hold exactly two non-empty markers; an empty-but-present slice
// removes the builtin block form.
type Override struct {
	Line            *string  `yaml:"line"`
	Block           []string `yaml:"block"`
	SupportsNesting *bool    `yaml:"nesting"`
}

// Registry maps language ids to comment styles. Immutable after New.
type Registry struct {
	table map[string]Style
}

// New builds a registry from the builtin table merged with user overrides.
//
// Inputs:
//   - overrides: per-language customizations keyed by language id. May be
//     nil. Ids run through the alias table before merging, so overriding
//     "jsx" adjusts "javascriptreact".
//
// Outputs:
//   - *Registry: ready for lookups, never nil on success.
//   - error: wraps ErrBadBlockPair with the offending language id and field
//     path when an override's block pair is malformed. On error no registry
//     is returned; setup must abort rather than run with a partial table.
func New(overrides map[string]Override) (*Registry, error) {
	table := make(map[string]Style, len(builtin))
	for id, st := range builtin {
		table[id] = st.Clone()
	}

	for id, ov := range overrides {
		canonical := Canonical(id)
		base := table[canonical]
		merged, err := applyOverride(base, ov)
		if err != nil {
			return nil, fmt.Errorf("registry override %q: %w", canonical, err)
		}
		table[canonical] = merged
	}

	return &Registry{table: table}, nil
}

// Canonical resolves a language id through the alias table.
func Canonical(id string) string {
	if target, ok := aliases[id]; ok {
		return target
	}
	return id
}

// Resolve returns the style for a language id, applying alias resolution.
// The returned style is a copy; mutating it does not affect the registry.
// Unknown ids return (zero, false), never an error.
func (r *Registry) Resolve(id string) (Style, bool) {
	st, ok := r.table[Canonical(id)]
	if !ok {
		return Style{}, false
	}
	return st.Clone(), true
}

// Known reports whether the registry has an entry for the id.
func (r *Registry) Known(id string) bool {
	_, ok := r.table[Canonical(id)]
	return ok
}

// Apply merges the override onto a base style, returning the result.
// Omitted fields keep the base value. A malformed block pair wraps
// ErrBadBlockPair.
func (ov Override) Apply(base Style) (Style, error) {
	return applyOverride(base, ov)
}

func applyOverride(base Style, ov Override) (Style, error) {
	out := base.Clone()
	if ov.Line != nil {
		out.Line = *ov.Line
	}
	if ov.Block != nil {
		if len(ov.Block) == 0 {
			out.Block = nil
		} else {
			if len(ov.Block) != 2 || ov.Block[0] == "" || ov.Block[1] == "" {
				return Style{}, fmt.Errorf("field block: %w", ErrBadBlockPair)
			}
			out.Block = &BlockPair{Open: ov.Block[0], Close: ov.Block[1]}
		}
	}
	if ov.SupportsNesting != nil {
		out.SupportsNesting = *ov.SupportsNesting
	}
	return out, nil
}
