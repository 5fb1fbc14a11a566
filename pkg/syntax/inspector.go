// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package syntax resolves comment context through tree-sitter.
//
// An Inspector parses one buffer snapshot per call and answers position
// queries against the resulting tree: which sub-language governs a point
// (embedded scripts in HTML, fenced code in markdown), whether the point
// sits inside a comment node, and whether it sits in JSX markup as opposed
// to an embedded JavaScript expression.
//
// Tree nodes are borrowed from the externally owned tree for the duration
// of one query and never stored. A Snapshot must be closed when done.
//
// Thread Safety:
//
//	Inspector is safe for concurrent use; every Parse call creates its own
//	tree-sitter parser instance. A Snapshot is not safe for concurrent use.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/AleutianAI/commentary/pkg/style"
)

// DefaultMaxFileSize caps the content an Inspector will parse (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

var (
	// ErrNoParser indicates no tree-sitter grammar exists for a filetype.
	ErrNoParser = errors.New("no tree-sitter grammar for filetype")

	// ErrFileTooLarge indicates content exceeding the inspector's size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")

	// ErrInvalidContent indicates content that is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// InspectorOption configures an Inspector instance.
type InspectorOption func(*Inspector)

// WithMaxFileSize sets the maximum content size the inspector will parse.
func WithMaxFileSize(bytes int64) InspectorOption {
	return func(in *Inspector) {
		if bytes > 0 {
			in.maxFileSize = bytes
		}
	}
}

// Inspector builds syntax snapshots for comment-context queries.
type Inspector struct {
	registry    *style.Registry
	maxFileSize int64
}

// NewInspector creates an Inspector that resolves styles against the given
// registry.
func NewInspector(registry *style.Registry, opts ...InspectorOption) *Inspector {
	in := &Inspector{
		registry:    registry,
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Available reports whether a tree-sitter grammar exists for the filetype.
func Available(filetype string) bool {
	_, ok := grammars[style.Canonical(filetype)]
	return ok
}

// Snapshot is one parsed view of a buffer. Queries take 0-indexed rows and
// byte columns. Close releases the underlying tree.
type Snapshot struct {
	tree     *sitter.Tree
	content  []byte
	filetype string
	registry *style.Registry
}

// Parse builds a Snapshot of content under the grammar for filetype.
//
// Outputs:
//   - *Snapshot: parsed snapshot; the caller must Close it.
//   - error: ErrNoParser when the filetype has no grammar, ErrFileTooLarge
//     or ErrInvalidContent for unusable content, or a context error.
//
// Tree-sitter is error tolerant: syntactically invalid content still
// yields a usable tree, so callers should not treat parse success as a
// syntax check.
func (in *Inspector) Parse(ctx context.Context, content []byte, filetype string) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	canonical := style.Canonical(filetype)
	get, ok := grammars[canonical]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoParser, filetype)
	}

	if int64(len(content)) > in.maxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(content), in.maxFileSize)
	}
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(get())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}

	return &Snapshot{tree: tree, content: content, filetype: canonical, registry: in.registry}, nil
}

// Close releases the snapshot's tree. Safe on nil.
func (s *Snapshot) Close() {
	if s != nil && s.tree != nil {
		s.tree.Close()
	}
}

// Filetype returns the canonical filetype the snapshot was parsed as.
func (s *Snapshot) Filetype() string { return s.filetype }

// LanguageAt resolves the sub-language governing a position.
//
// For most buffers this is just the filetype, but two host grammars embed
// other languages: HTML script/style elements resolve to javascript/css,
// and markdown fenced code blocks resolve to the fence's info string. The
// walk trusts the innermost embedding ancestor.
func (s *Snapshot) LanguageAt(row, col int) (string, bool) {
	node := s.nodeAt(row, col)
	if node == nil {
		return "", false
	}

	for n := node; n != nil; n = n.Parent() {
		switch n.Type() {
		case "script_element":
			return "javascript", true
		case "style_element":
			return "css", true
		case "fenced_code_block":
			if lang := fenceLanguage(n, s.content); lang != "" {
				return lang, true
			}
			return s.filetype, true
		}
	}
	return s.filetype, true
}

// InComment reports whether the position sits inside a comment node: the
// smallest covering node or any of its ancestors has a comment node type.
func (s *Snapshot) InComment(row, col int) bool {
	for n := s.nodeAt(row, col); n != nil; n = n.Parent() {
		if commentNodeTypes[n.Type()] {
			return true
		}
	}
	return false
}

// InJSXContext reports whether the position sits in JSX markup rather than
// an embedded JavaScript expression.
//
// Nearest-ancestor-wins: walking outward from the covering node, the first
// ancestor in the JSX-expression set answers false and the first in the
// JSX-markup set answers true. Trusting the innermost determining ancestor
// resolves markup nested inside an expression nested inside outer markup.
func (s *Snapshot) InJSXContext(row, col int) bool {
	for n := s.nodeAt(row, col); n != nil; n = n.Parent() {
		t := n.Type()
		if jsxExpressionNodeTypes[t] {
			return false
		}
		if jsxMarkupNodeTypes[t] {
			return true
		}
	}
	return false
}

// Range is a node span in 0-indexed rows and byte columns, end exclusive.
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// CommentRange returns the span of the comment node enclosing the
// position, for semantic selection. Absent when the position is not inside
// a comment.
func (s *Snapshot) CommentRange(row, col int) (Range, bool) {
	for n := s.nodeAt(row, col); n != nil; n = n.Parent() {
		if commentNodeTypes[n.Type()] {
			return Range{
				StartRow: int(n.StartPoint().Row),
				StartCol: int(n.StartPoint().Column),
				EndRow:   int(n.EndPoint().Row),
				EndCol:   int(n.EndPoint().Column),
			}, true
		}
	}
	return Range{}, false
}

// ResolveStyle resolves the comment style governing a position.
//
// JSX wins first: in a react-flavored buffer whose position is in JSX
// markup, the fixed {/* */} style overrides whatever the sub-language
// would imply. Otherwise the sub-language's registry style applies,
// degrading to the filetype-level style when the sub-language is not
// registered. Absence means the registry knows neither.
func (s *Snapshot) ResolveStyle(row, col int) (style.Style, bool) {
	if jsxFiletypes[s.filetype] && s.InJSXContext(row, col) {
		return style.JSX.Clone(), true
	}

	if lang, ok := s.LanguageAt(row, col); ok {
		if st, ok := s.registryResolve(lang); ok {
			return st, true
		}
	}
	return s.registryResolve(s.filetype)
}

func (s *Snapshot) registryResolve(id string) (style.Style, bool) {
	if s.registry == nil {
		return style.Style{}, false
	}
	return s.registry.Resolve(id)
}

func (s *Snapshot) nodeAt(row, col int) *sitter.Node {
	if s == nil || s.tree == nil || row < 0 || col < 0 {
		return nil
	}
	root := s.tree.RootNode()
	if root == nil {
		return nil
	}
	pt := sitter.Point{Row: uint32(row), Column: uint32(col)}
	return root.NamedDescendantForPointRange(pt, pt)
}

// fenceLanguage extracts the language id from a fenced code block's info
// string ("```go" yields "go").
func fenceLanguage(fence *sitter.Node, content []byte) string {
	for i := 0; i < int(fence.NamedChildCount()); i++ {
		child := fence.NamedChild(i)
		if child != nil && child.Type() == "info_string" {
			info := strings.TrimSpace(child.Content(content))
			if fields := strings.Fields(info); len(fields) > 0 {
				return style.Canonical(fields[0])
			}
		}
	}
	return ""
}
