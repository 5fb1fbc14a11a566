// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/detect"
)

// RangeState classifies the aggregate comment state of a line range,
// computed over its non-blank lines.
type RangeState int

const (
	// StateNoLines means the range holds only blank lines.
	StateNoLines RangeState = iota

	// StateAllCommented means every non-blank line is commented.
	StateAllCommented

	// StateNoneCommented means no non-blank line is commented.
	StateNoneCommented

	// StateMixed means the range mixes commented and uncommented lines.
	StateMixed
)

// String returns the state name for logs.
func (s RangeState) String() string {
	switch s {
	case StateAllCommented:
		return "all_commented"
	case StateNoneCommented:
		return "none_commented"
	case StateMixed:
		return "mixed"
	default:
		return "no_lines"
	}
}

// StyleType hints which comment form ToggleLines inserts.
type StyleType string

const (
	// StyleLine prefers the line-comment form.
	StyleLine StyleType = "line"

	// StyleBlock forces single-line block insertion when the resolved
	// style has a block form (visual-block and visual-line selections).
	StyleBlock StyleType = "block"
)

// ToggleOptions adjust one ToggleLines call.
type ToggleOptions struct {
	// ForceComment bypasses classification and comments every line.
	ForceComment bool

	// ForceUncomment bypasses classification and strips every line.
	ForceUncomment bool

	// StyleType hints line vs block insertion. Empty prefers line.
	StyleType StyleType
}

// Toggler applies comment toggles to buffer line ranges.
//
// Thread Safety:
//
//	Toggler is safe for concurrent use across distinct buffers. A single
//	buffer must not be toggled concurrently; the engine assumes the host
//	editor's single-threaded mutation model.
type Toggler struct {
	resolver *Resolver
}

// NewToggler creates a Toggler over the given resolver.
func NewToggler(resolver *Resolver) *Toggler {
	return &Toggler{resolver: resolver}
}

// Classify computes the aggregate comment state of lines start..end.
// Style is resolved per line, so embedded/mixed-language ranges classify
// under each line's own style.
func (t *Toggler) Classify(ctx context.Context, buf buffer.Buffer, start, end int) (RangeState, error) {
	if err := validateRange(buf, start, end); err != nil {
		return StateNoLines, err
	}

	s := t.resolver.Session(ctx, buf)
	defer s.Close()

	lines, err := buf.Lines(start, end)
	if err != nil {
		return StateNoLines, err
	}
	return classify(s, lines, start), nil
}

// ToggleLines toggles comments on lines start..end (1-indexed, inclusive).
//
// The decision policy: an all-commented range is uncommented; a range with
// none commented, or with mixed state, is commented in full. Commenting a
// mixed range wraps a second marker around lines that already carry one --
// "comment the whole range" semantics, not "fix up partial state". Force
// flags in opts bypass classification entirely.
//
// Every line's style is re-resolved independently before rewriting, so a
// JSX line and a plain JS line inside one range each get their own
// markers. All replacements are staged first and written back as one
// grouped mutation; a failure on any line means no write happens at all.
//
// Outputs:
//   - error: ErrInvalidRange before any read/write for bad bounds;
//     ErrNoStyle when a line to be rewritten supports no comment form.
func (t *Toggler) ToggleLines(ctx context.Context, buf buffer.Buffer, start, end int, opts ToggleOptions) error {
	ctx, span := startSpan(ctx, "engine.ToggleLines", buf.Filetype())
	defer span.End()
	began := time.Now()

	action, err := t.toggleLines(ctx, buf, start, end, opts)
	recordToggle(ctx, buf.Filetype(), action, end-start+1, began, err)
	return err
}

func (t *Toggler) toggleLines(ctx context.Context, buf buffer.Buffer, start, end int, opts ToggleOptions) (string, error) {
	if err := validateRange(buf, start, end); err != nil {
		return "invalid", err
	}

	s := t.resolver.Session(ctx, buf)
	defer s.Close()

	lines, err := buf.Lines(start, end)
	if err != nil {
		return "invalid", err
	}

	comment := true
	switch {
	case opts.ForceComment:
	case opts.ForceUncomment:
		comment = false
	default:
		comment = classify(s, lines, start) != StateAllCommented
	}

	action := "comment"
	if !comment {
		action = "uncomment"
	}

	// Stage every replacement before issuing any write.
	staged := make([]string, len(lines))
	for i, line := range lines {
		row := start + i
		st, ok := s.StyleAt(row, contentColumn(line))
		if !ok {
			if !comment && strings.TrimSpace(line) == "" {
				staged[i] = line
				continue
			}
			return action, fmt.Errorf("%w: line %d (filetype %q)", ErrNoStyle, row, buf.Filetype())
		}
		if comment {
			staged[i] = detect.Add(line, st, opts.StyleType == StyleBlock)
		} else {
			staged[i] = detect.Strip(line, st)
		}
	}

	err = buf.Group(func() error {
		return buf.SetLines(start, end, staged)
	})
	if err == nil {
		t.resolver.log.Debug("toggle applied",
			slog.String("edit_group", buf.LastGroupID()),
			slog.String("action", action),
			slog.Int("lines", len(staged)))
	}
	return action, err
}

func classify(s *Session, lines []string, start int) RangeState {
	total := 0
	commented := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		st, ok := s.StyleAt(start+i, contentColumn(line))
		if ok && detect.IsCommented(line, st) {
			commented++
		}
	}

	switch {
	case total == 0:
		return StateNoLines
	case commented == total:
		return StateAllCommented
	case commented == 0:
		return StateNoneCommented
	default:
		return StateMixed
	}
}

// contentColumn is the byte offset of the first non-whitespace character,
// where per-line style resolution is most faithful for embedded contexts.
func contentColumn(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func validateRange(buf buffer.Buffer, start, end int) error {
	if start < 1 || end < start || end > buf.LineCount() {
		return fmt.Errorf("%w: [%d, %d] in %d lines", ErrInvalidRange, start, end, buf.LineCount())
	}
	return nil
}
