// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package features

import (
	"context"
	"strings"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/style"
	"github.com/AleutianAI/commentary/pkg/textutil"
)

// AlignOptions tune trailing-comment alignment.
type AlignOptions struct {
	// Column caps the alignment column. Zero means 80.
	Column int

	// MinGap is the minimum spacing between code and marker. Zero means 2.
	MinGap int
}

// DefaultAlignOptions returns the standard alignment settings.
func DefaultAlignOptions() AlignOptions {
	return AlignOptions{Column: 80, MinGap: 2}
}

// Align lines up the trailing line comments in start..end at one column:
// the longest code segment plus MinGap, capped at Column. Lines without a
// trailing comment, and full-line comments, are untouched. The rewrite is
// one grouped mutation.
func Align(ctx context.Context, resolver *engine.Resolver, buf buffer.Buffer, start, end int, opts AlignOptions) error {
	if start < 1 || end < start || end > buf.LineCount() {
		return engine.ErrInvalidRange
	}
	if opts.Column <= 0 {
		opts.Column = 80
	}
	if opts.MinGap <= 0 {
		opts.MinGap = 2
	}

	s := resolver.Session(ctx, buf)
	defer s.Close()

	lines, err := buf.Lines(start, end)
	if err != nil {
		return err
	}

	type trailing struct {
		code    string
		comment string
	}
	parts := make([]*trailing, len(lines))
	maxCode := 0
	for i, line := range lines {
		st, ok := s.StyleAt(start+i, 0)
		if !ok || !st.HasLine() {
			continue
		}
		idx, ok := trailingMarker(line, st)
		if !ok {
			continue
		}
		code := strings.TrimRight(line[:idx], " \t")
		parts[i] = &trailing{code: code, comment: line[idx:]}
		if len(code) > maxCode {
			maxCode = len(code)
		}
	}

	target := maxCode + opts.MinGap
	if target > opts.Column {
		target = opts.Column
	}

	staged := make([]string, len(lines))
	changed := false
	for i, line := range lines {
		if parts[i] == nil {
			staged[i] = line
			continue
		}
		pad := target - len(parts[i].code)
		if pad < 1 {
			pad = 1
		}
		out := parts[i].code + strings.Repeat(" ", pad) + parts[i].comment
		staged[i] = out
		if out != line {
			changed = true
		}
	}

	if !changed {
		return nil
	}
	return buf.Group(func() error {
		return buf.SetLines(start, end, staged)
	})
}

// trailingMarker finds the first line-marker occurrence that trails code:
// after a non-blank code segment, outside any string literal.
func trailingMarker(line string, st style.Style) (int, bool) {
	from := 0
	for {
		rel := strings.Index(line[from:], st.Line)
		if rel < 0 {
			return 0, false
		}
		idx := from + rel
		if strings.TrimSpace(line[:idx]) == "" {
			// Full-line comment, not a trailing one.
			return 0, false
		}
		if !textutil.InsideString(line, idx) {
			return idx, true
		}
		from = idx + len(st.Line)
	}
}
