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
	"fmt"
	"strings"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/detect"
	"github.com/AleutianAI/commentary/pkg/engine"
)

// Convert rewrites commented lines in start..end from one comment form to
// the other. Uncommented lines pass through unchanged.
//
// The target form must exist on each line's resolved style: converting to
// block without a block form fails with ErrNoBlockForm, and to line
// without a line form with ErrNoLineForm, before any write. Converting to
// block leaves a line alone when its content still carries block markers
// and the style does not support nesting; naive wrapping would corrupt
// the close marker.
func Convert(ctx context.Context, resolver *engine.Resolver, buf buffer.Buffer, start, end int, target engine.StyleType) error {
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

		m, commented := detect.FindMarkers(line, st)
		if !commented {
			staged[i] = line
			continue
		}

		switch target {
		case engine.StyleBlock:
			if !st.HasBlock() {
				return fmt.Errorf("line %d: %w", start+i, ErrNoBlockForm)
			}
			if m.Kind == detect.KindBlock {
				staged[i] = line
				continue
			}
			stripped := detect.Strip(line, st)
			if !st.SupportsNesting && strings.Contains(stripped, st.Block.Open) {
				staged[i] = line
				continue
			}
			staged[i] = detect.Add(stripped, st, true)
		case engine.StyleLine:
			if !st.HasLine() {
				return fmt.Errorf("line %d: %w", start+i, ErrNoLineForm)
			}
			if m.Kind == detect.KindLine {
				staged[i] = line
				continue
			}
			staged[i] = detect.Add(detect.Strip(line, st), st, false)
		default:
			return fmt.Errorf("unknown target style %q", target)
		}
		if staged[i] != line {
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
