// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/commentary/pkg/style"
)

const sampleConfig = `
languages:
  mylang:
    line: ";;"
    template: ";; %s"
  c:
    nesting: true
  velvet:
    block: ["%[", "]%"]
align:
  column: 100
  min_gap: 4
scan:
  search_tool: rg
  max_files: 200
log_level: debug
`

func TestParse_Valid(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	require.Contains(t, cfg.Languages, "mylang")
	require.NotNil(t, cfg.Languages["mylang"].Line)
	assert.Equal(t, ";;", *cfg.Languages["mylang"].Line)
	assert.Equal(t, ";; %s", cfg.Languages["mylang"].Template)

	require.NotNil(t, cfg.Languages["c"].Nesting)
	assert.True(t, *cfg.Languages["c"].Nesting)

	assert.Equal(t, []string{"%[", "]%"}, cfg.Languages["velvet"].Block)
	assert.Equal(t, 100, cfg.Align.Column)
	assert.Equal(t, 4, cfg.Align.MinGap)
	assert.Equal(t, "rg", cfg.Scan.SearchTool)
	assert.Equal(t, 200, cfg.Scan.MaxFiles)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParse_BadBlockPair(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"one marker", "languages:\n  badlang:\n    block: [\"/*\"]\n"},
		{"three markers", "languages:\n  badlang:\n    block: [\"a\", \"b\", \"c\"]\n"},
		{"empty marker", "languages:\n  badlang:\n    block: [\"/*\", \"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			// The offending language is named in the error.
			assert.Contains(t, err.Error(), "badlang")
		})
	}
}

func TestParse_BadLogLevel(t *testing.T) {
	_, err := Parse([]byte("log_level: verbose\n"))
	assert.Error(t, err)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := Parse([]byte("languages: [not a map"))
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
	assert.Zero(t, cfg.Align.Column)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commentary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Align.Column)
}

func TestOverrides(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	ov := cfg.Overrides()
	require.Contains(t, ov, "mylang")
	require.NotNil(t, ov["mylang"].Line)
	assert.Equal(t, ";;", *ov["mylang"].Line)
	assert.Equal(t, []string{"%[", "]%"}, ov["velvet"].Block)
	require.NotNil(t, ov["c"].SupportsNesting)
	assert.True(t, *ov["c"].SupportsNesting)

	// Overrides from the config must apply cleanly to registry styles.
	st, err := ov["velvet"].Apply(style.Style{})
	require.NoError(t, err)
	require.True(t, st.HasBlock())
	assert.Equal(t, "%[", st.Block.Open)
}

func TestOverrides_Empty(t *testing.T) {
	cfg := &Config{}
	assert.Nil(t, cfg.Overrides())
}

func TestTemplates(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	tpl := cfg.Templates()
	assert.Equal(t, ";; %s", tpl["mylang"])
	// Languages without a template stay out of the map.
	assert.NotContains(t, tpl, "c")
	assert.NotContains(t, tpl, "velvet")
}
