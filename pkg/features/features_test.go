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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/style"
	"github.com/AleutianAI/commentary/pkg/syntax"
)

// newTestResolver builds a resolver over the builtin registry without a
// syntax inspector, so style resolution stays on the registry chain.
func newTestResolver(t *testing.T) *engine.Resolver {
	t.Helper()
	registry, err := style.New(nil)
	require.NoError(t, err)
	r, err := engine.NewResolver(registry, nil, engine.Config{}, nil)
	require.NoError(t, err)
	return r
}

// newSyntaxResolver wires in a tree-sitter inspector for the features
// that need node spans.
func newSyntaxResolver(t *testing.T) *engine.Resolver {
	t.Helper()
	registry, err := style.New(nil)
	require.NoError(t, err)
	r, err := engine.NewResolver(registry, syntax.NewInspector(registry), engine.Config{}, nil)
	require.NoError(t, err)
	return r
}

func bufferLines(t *testing.T, buf buffer.Buffer) []string {
	t.Helper()
	lines, err := buf.Lines(1, buf.LineCount())
	require.NoError(t, err)
	return lines
}
