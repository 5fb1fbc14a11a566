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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/engine"
)

func findRegions(t *testing.T, r *engine.Resolver, buf buffer.Buffer) []Region {
	t.Helper()
	regions, err := FindRegions(context.Background(), r, buf)
	require.NoError(t, err)
	return regions
}

func TestFindRegions_Basic(t *testing.T) {
	r := newTestResolver(t)
	buf := buffer.NewMemoryLines([]string{
		"# #region debug",
		"print(x)",
		"# #endregion",
		"print(y)",
	}, "python")

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 1)
	assert.Equal(t, Region{StartLine: 1, EndLine: 3, Commented: false}, regions[0])
}

func TestFindRegions_CommentedInterior(t *testing.T) {
	r := newTestResolver(t)
	buf := buffer.NewMemoryLines([]string{
		"# #region dbg",
		"# print(x)",
		"",
		"# print(y)",
		"# #endregion",
	}, "python")

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].Commented, "blank lines must not break a commented interior")
}

func TestFindRegions_SecondStartWins(t *testing.T) {
	r := newTestResolver(t)
	buf := buffer.NewMemoryLines([]string{
		"# #region first",
		"print(a)",
		"# #region second",
		"print(b)",
		"# #endregion",
	}, "python")

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 1)
	assert.Equal(t, 3, regions[0].StartLine)
	assert.Equal(t, 5, regions[0].EndLine)
}

func TestFindRegions_Malformed(t *testing.T) {
	r := newTestResolver(t)

	// An end with no start is no region.
	buf := buffer.NewMemoryLines([]string{"print(a)", "# #endregion"}, "python")
	assert.Empty(t, findRegions(t, r, buf))

	// A trailing start with no end is no region.
	buf = buffer.NewMemoryLines([]string{"# #region dangling", "print(a)"}, "python")
	assert.Empty(t, findRegions(t, r, buf))

	// Markers only count inside comments.
	buf = buffer.NewMemoryLines([]string{
		`s = "#region fake"`,
		"print(a)",
		"# #endregion",
	}, "python")
	assert.Empty(t, findRegions(t, r, buf))
}

func TestFindRegions_Multiple(t *testing.T) {
	r := newTestResolver(t)
	buf := buffer.NewMemoryLines([]string{
		"# #region one",
		"print(a)",
		"# #endregion",
		"print(b)",
		"# #region two",
		"# print(c)",
		"# #endregion",
	}, "python")

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 2)
	assert.Equal(t, Region{StartLine: 1, EndLine: 3, Commented: false}, regions[0])
	assert.Equal(t, Region{StartLine: 5, EndLine: 7, Commented: true}, regions[1])
}

func TestToggleRegion_RoundTrip(t *testing.T) {
	r := newTestResolver(t)
	tog := engine.NewToggler(r)
	buf := buffer.NewMemoryLines([]string{
		"# #region debug",
		"print(x)",
		"print(y)",
		"# #endregion",
	}, "python")

	ctx := context.Background()

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 1)
	require.NoError(t, ToggleRegion(ctx, tog, buf, regions[0]))

	got := bufferLines(t, buf)
	assert.Equal(t, "# #region debug", got[0], "marker lines stay untouched")
	assert.Equal(t, "# print(x)", got[1])
	assert.Equal(t, "# print(y)", got[2])
	assert.Equal(t, "# #endregion", got[3])

	// The region now reads as commented; toggling again restores it.
	regions = findRegions(t, r, buf)
	require.Len(t, regions, 1)
	assert.True(t, regions[0].Commented)

	require.NoError(t, ToggleRegion(ctx, tog, buf, regions[0]))
	assert.Equal(t, []string{
		"# #region debug",
		"print(x)",
		"print(y)",
		"# #endregion",
	}, bufferLines(t, buf))
}

func TestToggleRegion_EmptyInterior(t *testing.T) {
	r := newTestResolver(t)
	tog := engine.NewToggler(r)
	buf := buffer.NewMemoryLines([]string{
		"# #region empty",
		"# #endregion",
	}, "python")

	regions := findRegions(t, r, buf)
	require.Len(t, regions, 1)
	require.NoError(t, ToggleRegion(context.Background(), tog, buf, regions[0]))

	// Nothing between the markers, nothing to do.
	assert.Equal(t, []string{"# #region empty", "# #endregion"}, bufferLines(t, buf))
}

func TestRegionAt(t *testing.T) {
	regions := []Region{
		{StartLine: 1, EndLine: 3},
		{StartLine: 7, EndLine: 9},
	}

	got, ok := RegionAt(regions, 2)
	require.True(t, ok)
	assert.Equal(t, 1, got.StartLine)

	got, ok = RegionAt(regions, 7)
	require.True(t, ok)
	assert.Equal(t, 7, got.StartLine)

	_, ok = RegionAt(regions, 5)
	assert.False(t, ok)
}
