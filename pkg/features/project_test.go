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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProjectScan_WalkFallback(t *testing.T) {
	dir := t.TempDir()
	withRegion := writeFile(t, dir, "app.py", strings.Join([]string{
		"# #region dbg",
		"print(1)",
		"# #endregion",
		"print(2)",
	}, "\n")+"\n")
	writeFile(t, dir, "clean.go", "package main\n")
	writeFile(t, dir, "node_modules/dep.py", "# #region vendored\nx = 1\n# #endregion\n")

	r := newTestResolver(t)
	// Empty tool name forces the capped walk.
	scanner := NewProjectScanner(r, dir, nil, WithSearchTool(""))

	report, err := scanner.Scan(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Scanned)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Files, 1)
	assert.Equal(t, withRegion, report.Files[0].Path)
	require.Len(t, report.Files[0].Regions, 1)
	assert.Equal(t, Region{StartLine: 1, EndLine: 3, Commented: false}, report.Files[0].Regions[0])
}

func TestProjectScan_EmptyTree(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.go", "package main\n")

	r := newTestResolver(t)
	scanner := NewProjectScanner(r, dir, nil, WithSearchTool(""))

	report, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Scanned)
	assert.Empty(t, report.Files)
}

func TestProjectScan_SizeCap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.py", "# #region dbg\n"+strings.Repeat("x = 1\n", 100)+"# #endregion\n")

	r := newTestResolver(t)
	scanner := NewProjectScanner(r, dir, nil, WithSearchTool(""), WithScanCaps(10, 32))

	report, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	// The oversized file never becomes a candidate.
	assert.Zero(t, report.Scanned)
	assert.Empty(t, report.Files)
}

func TestProjectScan_UnknownExtensionIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.unknownext", "# #region dbg\ntext\n# #endregion\n")

	r := newTestResolver(t)
	scanner := NewProjectScanner(r, dir, nil, WithSearchTool(""))

	report, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.Scanned)
	assert.Empty(t, report.Files)
}
