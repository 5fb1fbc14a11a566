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

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/syntax"
)

// SelectComment returns the span of the comment node enclosing the
// position, for semantic text objects (select-around-comment). Rows are
// 1-indexed, columns are 0-indexed byte offsets, end exclusive. Absent
// when the position is not inside a comment or no parser covers the
// buffer.
func SelectComment(ctx context.Context, resolver *engine.Resolver, buf buffer.Buffer, row, col int) (syntax.Range, bool) {
	s := resolver.Session(ctx, buf)
	defer s.Close()
	return s.CommentRange(row, col)
}
