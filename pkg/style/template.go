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

import "strings"

// placeholders accepted inside a comment template, checked in order.
var placeholders = []string{"%s", "{}"}

// knownBlockPairs are symmetric block forms recognized when a template
// reduces to a single marker blob with no interior placeholder gap.
var knownBlockPairs = []BlockPair{
	{"/*", "*/"},
	{"<!--", "-->"},
	{"{-", "-}"},
	{"(*", "*)"},
	{"#[", "]#"},
	{"#|", "|#"},
}

// FromTemplate derives a style from a generic editor comment template, a
// string containing one placeholder for the code content ("# %s",
// "<!-- %s -->", "{/* %s */}").
//
// This is the heuristic fallback for filetypes absent from the builtin
// table. The algorithm: strip the placeholder, trim whitespace; if the
// remainder is one of a small set of known symmetric block pairs, return a
// block style; else if it splits into exactly two whitespace-separated
// tokens, treat them as an ad hoc block pair; else treat the whole
// remainder as a line marker.
//
// It never fails loudly: unusable input (empty template, no marker text
// left after stripping) returns (zero, false).
func FromTemplate(template string) (Style, bool) {
	trimmed := strings.TrimSpace(template)
	if trimmed == "" {
		return Style{}, false
	}

	var before, after string
	found := false
	for _, ph := range placeholders {
		if i := strings.Index(trimmed, ph); i >= 0 {
			before = strings.TrimSpace(trimmed[:i])
			after = strings.TrimSpace(trimmed[i+len(ph):])
			found = true
			break
		}
	}
	if !found {
		// No placeholder at all: the whole template is marker text.
		before = trimmed
	}

	if before == "" && after == "" {
		return Style{}, false
	}

	// Placeholder sat between two markers: an explicit block pair.
	if before != "" && after != "" {
		return Style{Block: &BlockPair{Open: before, Close: after}}, true
	}

	remainder := before + after
	for _, bp := range knownBlockPairs {
		if remainder == bp.Open+bp.Close || remainder == bp.Open+" "+bp.Close {
			b := bp
			return Style{Block: &b}, true
		}
	}

	if fields := strings.Fields(remainder); len(fields) == 2 {
		return Style{Block: &BlockPair{Open: fields[0], Close: fields[1]}}, true
	}

	return Style{Line: remainder}, true
}
