// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package textutil provides small string helpers shared by the comment
// detectors: literal pattern escaping and quote-state scanning.
package textutil

import "regexp"

// EscapeLiteral escapes regexp metacharacters so s matches as a literal
// substring inside a regex-capable search (including external tools that
// accept RE2-style patterns).
func EscapeLiteral(s string) string {
	return regexp.QuoteMeta(s)
}

// InsideString reports whether the byte at col sits inside a single- or
// double-quoted string literal on this line.
//
// The scan runs left to right from column 0, tracking single-quote and
// double-quote state independently: an unescaped quote toggles its own
// state only when the other kind is not open, and backslash escapes are
// honored. Used to suppress false-positive comment-marker detection inside
// string and char literals.
//
// Limitations:
//   - Multi-line strings are invisible to a single-line scan.
//   - Backtick and triple-quoted strings are not tracked.
//
// These are documented limitations of line-local detection, not defects.
func InsideString(line string, col int) bool {
	if col <= 0 || col > len(line) {
		return false
	}

	inSingle := false
	inDouble := false
	escaped := false

	for i := 0; i < col && i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inSingle || inDouble {
				escaped = true
			}
		case '\'':
			if !inDouble {
				inSingle = !inSingle
			}
		case '"':
			if !inSingle {
				inDouble = !inDouble
			}
		}
	}

	return inSingle || inDouble
}
