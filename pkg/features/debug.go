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

// Debug-region markers, written as the content of a comment line.
const (
	RegionStartMarker = "#region"
	RegionEndMarker   = "#endregion"
)

// Region is a marker-delimited span meant to toggle as a unit. Lines are
// 1-indexed; StartLine and EndLine are the marker lines themselves and
// StartLine < EndLine always holds. Commented reports whether every
// non-blank interior line is currently commented.
type Region struct {
	StartLine int
	EndLine   int
	Commented bool
}

// FindRegions scans the whole buffer for debug regions: a comment line
// whose content starts with "#region", closed by a later comment line
// whose content starts with "#endregion".
//
// Malformed input resolves conservatively: a start marker followed by
// another start marker before any end discards the first start (the
// second, innermost one wins), and a trailing start with no end is no
// region at all. Regions are recomputed from the live buffer on every
// call; nothing is cached.
func FindRegions(ctx context.Context, resolver *engine.Resolver, buf buffer.Buffer) ([]Region, error) {
	s := resolver.Session(ctx, buf)
	defer s.Close()

	lines, err := buf.Lines(1, buf.LineCount())
	if err != nil {
		return nil, err
	}

	var regions []Region
	pendingStart := 0
	for i, line := range lines {
		row := i + 1
		st, ok := s.StyleAt(row, 0)
		if !ok {
			continue
		}
		content, isComment := commentContent(line, st)
		if !isComment {
			continue
		}
		switch {
		case strings.HasPrefix(content, RegionEndMarker):
			if pendingStart > 0 && pendingStart < row {
				regions = append(regions, Region{
					StartLine: pendingStart,
					EndLine:   row,
					Commented: interiorCommented(s, lines, pendingStart, row),
				})
			}
			pendingStart = 0
		case strings.HasPrefix(content, RegionStartMarker):
			pendingStart = row
		}
	}
	return regions, nil
}

// ToggleRegion comments or uncomments a region's interior lines as one
// grouped mutation. The marker lines themselves are never touched.
func ToggleRegion(ctx context.Context, toggler *engine.Toggler, buf buffer.Buffer, region Region) error {
	if region.EndLine-region.StartLine < 2 {
		// Nothing between the markers.
		return nil
	}
	opts := engine.ToggleOptions{ForceComment: !region.Commented, ForceUncomment: region.Commented}
	return toggler.ToggleLines(ctx, buf, region.StartLine+1, region.EndLine-1, opts)
}

// RegionAt returns the region containing the line, markers included.
func RegionAt(regions []Region, line int) (Region, bool) {
	for _, r := range regions {
		if line >= r.StartLine && line <= r.EndLine {
			return r, true
		}
	}
	return Region{}, false
}

// commentContent extracts the trimmed content of a commented line.
// "// #region debug" yields "#region debug".
func commentContent(line string, st style.Style) (string, bool) {
	if !detect.IsCommented(line, st) {
		return "", false
	}
	return strings.TrimSpace(detect.Strip(line, st)), true
}

// interiorCommented reports whether every non-blank line strictly between
// the marker lines is commented.
func interiorCommented(s *engine.Session, lines []string, startLine, endLine int) bool {
	any := false
	for row := startLine + 1; row < endLine; row++ {
		line := lines[row-1]
		if strings.TrimSpace(line) == "" {
			continue
		}
		st, ok := s.StyleAt(row, 0)
		if !ok || !detect.IsCommented(line, st) {
			return false
		}
		any = true
	}
	return any
}
