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
	"github.com/AleutianAI/commentary/pkg/detect"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/style"
)

// NormalizeLine normalizes marker spacing on one commented line.
//
// A line comment gets exactly one space between marker and content
// ("//foo" and "//   foo" both become "// foo"); a bare marker stays
// bare. A single-line block comment gets one space inside each marker
// ("/*   qux   */" becomes "/* qux */"). The fully collapsed empty block
// ("/**/") is left alone. Uncommented lines pass through unchanged.
func NormalizeLine(line string, st style.Style) string {
	m, ok := detect.FindMarkers(line, st)
	if !ok {
		return line
	}

	switch m.Kind {
	case detect.KindBlock:
		open := m.Start + len(st.Block.Open)
		inner := line[open:m.End]
		if inner == "" {
			return line
		}
		content := strings.TrimSpace(inner)
		if content == "" {
			return line[:open] + " " + line[m.End:]
		}
		return line[:open] + " " + content + " " + line[m.End:]
	default:
		rest := line[m.End:]
		if strings.TrimSpace(rest) == "" {
			return line[:m.End]
		}
		return line[:m.End] + " " + strings.TrimLeft(rest, " \t")
	}
}

// IsBlockStart reports whether the line opens a multi-line block comment:
// the open marker follows only whitespace and no close marker completes it
// on the same line.
func IsBlockStart(line string, st style.Style) bool {
	if !st.HasBlock() {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, st.Block.Open) {
		return false
	}
	return !strings.Contains(trimmed[len(st.Block.Open):], st.Block.Close)
}

// IsBlockEnd reports whether the line closes a multi-line block comment:
// the close marker is followed by nothing but whitespace and no open
// marker precedes it on the same line.
func IsBlockEnd(line string, st style.Style) bool {
	if !st.HasBlock() {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if !strings.HasSuffix(trimmed, st.Block.Close) {
		return false
	}
	return !strings.Contains(trimmed[:len(trimmed)-len(st.Block.Close)], st.Block.Open)
}

// Normalize rewrites lines start..end with normalized marker spacing,
// covering single-line comments plus the start and end lines of
// multi-line blocks. The rewrite is one grouped mutation.
func Normalize(ctx context.Context, resolver *engine.Resolver, buf buffer.Buffer, start, end int) error {
	if start < 1 || end < start || end > buf.LineCount() {
		return engine.ErrInvalidRange
	}

	s := resolver.Session(ctx, buf)
	defer s.Close()

	lines, err := buf.Lines(start, end)
	if err != nil {
		return err
	}

	staged := make([]string, len(lines))
	changed := false
	for i, line := range lines {
		st, ok := s.StyleAt(start+i, 0)
		if !ok {
			staged[i] = line
			continue
		}
		out := NormalizeLine(line, st)
		if out == line {
			out = normalizeBlockEdge(line, st)
		}
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

// normalizeBlockEdge fixes spacing on the start or end line of a
// multi-line block comment.
func normalizeBlockEdge(line string, st style.Style) string {
	switch {
	case IsBlockStart(line, st):
		open := strings.Index(line, st.Block.Open) + len(st.Block.Open)
		rest := line[open:]
		if strings.TrimSpace(rest) == "" {
			return line[:open]
		}
		return line[:open] + " " + strings.TrimLeft(rest, " \t")
	case IsBlockEnd(line, st):
		trimmed := strings.TrimRight(line, " \t")
		closeStart := len(trimmed) - len(st.Block.Close)
		body := strings.TrimRight(line[:closeStart], " \t")
		if strings.TrimSpace(body) == "" {
			return line
		}
		return body + " " + line[closeStart:]
	default:
		return line
	}
}
