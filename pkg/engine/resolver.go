// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine composes detection into a single facade and drives
// range toggling.
//
// Style resolution runs an ordered fallback chain: tree-sitter inspection
// when a grammar exists for the buffer's filetype, then the language
// registry, then the generic comment-template parser, with explicit
// configuration overrides merged last. Overrides win unconditionally,
// regardless of which stage produced the base style.
//
// All configuration is threaded explicitly through constructors; nothing
// reads ambient global state, so every resolution is reproducible in
// isolation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/detect"
	"github.com/AleutianAI/commentary/pkg/style"
	"github.com/AleutianAI/commentary/pkg/syntax"
)

var (
	// ErrNoStyle indicates the position supports no comment form.
	ErrNoStyle = errors.New("no comment style available")

	// ErrInvalidRange indicates inverted or out-of-bounds line bounds.
	ErrInvalidRange = errors.New("invalid line range")
)

// Config is the explicit per-resolver configuration.
type Config struct {
	// Overrides are merged onto the resolved style as the final pass,
	// keyed by filetype. They always win, even over JSX detection.
	Overrides map[string]style.Override

	// Templates maps filetypes to generic editor comment templates
	// ("# %s"), consulted when neither tree-sitter nor the registry knows
	// the filetype.
	Templates map[string]string
}

// Resolver is the detection facade.
//
// Thread Safety:
//
//	Resolver is safe for concurrent use; per-operation state lives in the
//	Session each call creates.
type Resolver struct {
	registry  *style.Registry
	inspector *syntax.Inspector
	cfg       Config
	log       *slog.Logger
}

// NewResolver builds a facade over the registry and inspector.
//
// Outputs:
//   - *Resolver: ready for style queries.
//   - error: wraps style.ErrBadBlockPair when a configured override is
//     malformed; setup must abort rather than run with a corrupt chain.
func NewResolver(registry *style.Registry, inspector *syntax.Inspector, cfg Config, log *slog.Logger) (*Resolver, error) {
	// Override keys are canonicalized so an alias-keyed entry ("jsx",
	// "js") matches the canonical filetype the per-position lookup uses.
	if len(cfg.Overrides) > 0 {
		canonical := make(map[string]style.Override, len(cfg.Overrides))
		for id, ov := range cfg.Overrides {
			if _, err := ov.Apply(style.Style{}); err != nil {
				return nil, fmt.Errorf("override %q: %w", id, err)
			}
			canonical[style.Canonical(id)] = ov
		}
		cfg.Overrides = canonical
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{registry: registry, inspector: inspector, cfg: cfg, log: log}, nil
}

// Session is one operation's detection state. When the buffer's filetype
// has a grammar it holds a parsed snapshot; otherwise queries fall through
// to the registry. Close when the operation completes.
type Session struct {
	r    *Resolver
	buf  buffer.Buffer
	snap *syntax.Snapshot
}

// Session parses the buffer (when possible) for a run of related queries.
// Parse failures degrade to registry-only resolution rather than failing
// the operation; they are logged at debug level.
func (r *Resolver) Session(ctx context.Context, buf buffer.Buffer) *Session {
	s := &Session{r: r, buf: buf}
	if r.inspector != nil && syntax.Available(buf.Filetype()) {
		snap, err := r.inspector.Parse(ctx, buf.Bytes(), buf.Filetype())
		if err != nil {
			r.log.Debug("syntax parse unavailable, falling back to registry",
				slog.String("filetype", buf.Filetype()),
				slog.String("error", err.Error()))
		} else {
			s.snap = snap
		}
	}
	return s
}

// Close releases the session's snapshot, if any.
func (s *Session) Close() {
	if s.snap != nil {
		s.snap.Close()
	}
}

// StyleAt resolves the comment style at a position. row is 1-indexed, col
// is a 0-indexed byte offset. Absence means no stage of the chain produced
// a style; the empty style never escapes as a success.
func (s *Session) StyleAt(row, col int) (style.Style, bool) {
	base, ok := s.baseStyle(row, col)

	if ov, has := s.r.cfg.Overrides[style.Canonical(s.buf.Filetype())]; has {
		merged, err := ov.Apply(base)
		if err == nil {
			base = merged
			ok = true
		}
	}

	if !ok || base.Empty() {
		return style.Style{}, false
	}
	return base, true
}

// InComment reports whether the position sits inside a comment node.
// Without a snapshot it answers false; line-level classification is the
// detector's job.
func (s *Session) InComment(row, col int) bool {
	return s.snap != nil && s.snap.InComment(row-1, col)
}

// CommentRange returns the enclosing comment node's span in 1-indexed
// rows, for semantic selection.
func (s *Session) CommentRange(row, col int) (syntax.Range, bool) {
	if s.snap == nil {
		return syntax.Range{}, false
	}
	rng, ok := s.snap.CommentRange(row-1, col)
	if !ok {
		return syntax.Range{}, false
	}
	rng.StartRow++
	rng.EndRow++
	return rng, true
}

func (s *Session) baseStyle(row, col int) (style.Style, bool) {
	if s.snap != nil {
		if st, ok := s.snap.ResolveStyle(row-1, col); ok {
			return st, true
		}
	}
	if st, ok := s.r.registry.Resolve(s.buf.Filetype()); ok {
		return st, true
	}
	if tpl, has := s.r.cfg.Templates[style.Canonical(s.buf.Filetype())]; has {
		if st, ok := style.FromTemplate(tpl); ok {
			return st, true
		}
	}
	return style.Style{}, false
}

// StyleAt is the one-shot facade entry point: resolve the style at a
// position in one call. Prefer a Session for per-line loops.
func (r *Resolver) StyleAt(ctx context.Context, buf buffer.Buffer, row, col int) (style.Style, bool) {
	s := r.Session(ctx, buf)
	defer s.Close()
	return s.StyleAt(row, col)
}

// IsCommented reports whether a buffer line is commented: the style is
// resolved at column 0 of the line and handed to the line detector.
func (r *Resolver) IsCommented(ctx context.Context, buf buffer.Buffer, line int) (bool, error) {
	if line < 1 || line > buf.LineCount() {
		return false, fmt.Errorf("%w: line %d of %d", ErrInvalidRange, line, buf.LineCount())
	}

	s := r.Session(ctx, buf)
	defer s.Close()

	st, ok := s.StyleAt(line, 0)
	if !ok {
		return false, nil
	}
	text, err := buf.Lines(line, line)
	if err != nil {
		return false, err
	}
	return detect.IsCommented(text[0], st), nil
}
