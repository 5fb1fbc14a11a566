// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the YAML configuration: language
// registry overrides, comment-template fallbacks, and feature defaults.
//
// Validation is strict and happens once at load time: a malformed block
// pair aborts setup with a field-path-qualified error rather than running
// with a partial registry. After a successful load the configuration is
// treated as immutable.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/commentary/pkg/style"
)

// LanguageConfig customizes one language's registry entry. Block must be
// absent or exactly two non-empty markers.
type LanguageConfig struct {
	Line    *string  `yaml:"line"`
	Block   []string `yaml:"block" validate:"omitempty,len=2,dive,required"`
	Nesting *bool    `yaml:"nesting"`

	// Template is a generic comment template ("# %s") used as a fallback
	// when the language has no registry entry.
	Template string `yaml:"template"`
}

// AlignConfig carries trailing-comment alignment defaults.
type AlignConfig struct {
	Column int `yaml:"column" validate:"omitempty,gte=1,lte=500"`
	MinGap int `yaml:"min_gap" validate:"omitempty,gte=1,lte=32"`
}

// ScanConfig bounds the project-wide debug-region scan.
type ScanConfig struct {
	SearchTool  string `yaml:"search_tool"`
	MaxFiles    int    `yaml:"max_files" validate:"omitempty,gte=1"`
	MaxFileSize int64  `yaml:"max_file_size" validate:"omitempty,gte=1"`
}

// Config is the full configuration document.
type Config struct {
	Languages map[string]LanguageConfig `yaml:"languages" validate:"dive"`
	Align     AlignConfig               `yaml:"align"`
	Scan      ScanConfig                `yaml:"scan"`
	LogLevel  string                    `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads and validates a YAML config file. A missing path returns the
// zero config: every field has a working default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw YAML configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// The struct validator cannot name the offending map key, so block
	// pairs are re-checked per language for a field-qualified message.
	for id, lc := range cfg.Languages {
		if len(lc.Block) != 0 && (len(lc.Block) != 2 || lc.Block[0] == "" || lc.Block[1] == "") {
			return nil, fmt.Errorf("languages.%s.block: %w", id, style.ErrBadBlockPair)
		}
	}
	return &cfg, nil
}

// Overrides converts the language section into registry overrides.
func (c *Config) Overrides() map[string]style.Override {
	if len(c.Languages) == 0 {
		return nil
	}
	out := make(map[string]style.Override, len(c.Languages))
	for id, lc := range c.Languages {
		out[id] = style.Override{
			Line:            lc.Line,
			Block:           lc.Block,
			SupportsNesting: lc.Nesting,
		}
	}
	return out
}

// Templates collects the per-language comment-template fallbacks.
func (c *Config) Templates() map[string]string {
	out := make(map[string]string)
	for id, lc := range c.Languages {
		if lc.Template != "" {
			out[style.Canonical(id)] = lc.Template
		}
	}
	return out
}
