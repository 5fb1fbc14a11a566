// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package features implements the derived comment operations: alignment,
// normalization, style conversion, debug-region toggling, and semantic
// selection. Each consumes the detection facade and toggle engine; the
// per-line text transforms here are plain string formatting.
package features

import "errors"

var (
	// ErrNoLineForm indicates a conversion target needing a line-comment
	// form the style does not have.
	ErrNoLineForm = errors.New("style has no line-comment form")

	// ErrNoBlockForm indicates a conversion target needing a block form
	// the style does not have.
	ErrNoBlockForm = errors.New("style has no block-comment form")
)
