// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/config"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/features"
	"github.com/AleutianAI/commentary/pkg/logging"
	"github.com/AleutianAI/commentary/pkg/style"
	"github.com/AleutianAI/commentary/pkg/syntax"
)

// app bundles the wired-up services one command invocation needs.
type app struct {
	cfg      *config.Config
	log      *logging.Logger
	resolver *engine.Resolver
	toggler  *engine.Toggler
}

// newApp loads config, builds the registry, inspector, and facade. Any
// configuration problem aborts here, before a buffer is touched.
func newApp() (*app, error) {
	cfg := &config.Config{}
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	log, err := logging.New(logging.Config{
		Level:   logging.ParseLevel(level),
		Service: "cli",
	})
	if err != nil {
		return nil, err
	}

	registry, err := style.New(cfg.Overrides())
	if err != nil {
		return nil, err
	}
	inspector := syntax.NewInspector(registry)
	resolver, err := engine.NewResolver(registry, inspector, engine.Config{
		Overrides: cfg.Overrides(),
		Templates: cfg.Templates(),
	}, log.Logger)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		log:      log,
		resolver: resolver,
		toggler:  engine.NewToggler(resolver),
	}, nil
}

// readBuffer loads a file into a memory buffer with a detected filetype.
func readBuffer(path string) (*buffer.MemoryBuffer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ft := buffer.DetectFiletype(path)
	if ft == "" {
		return nil, fmt.Errorf("cannot detect filetype of %s", path)
	}
	return buffer.NewMemory(string(content), ft), nil
}

// emitBuffer writes the buffer back to the file, or prints it to stdout
// when --write is off.
func emitBuffer(path string, buf *buffer.MemoryBuffer) error {
	if writeBack {
		return os.WriteFile(path, buf.Bytes(), 0o644)
	}
	lines, err := buf.Lines(1, buf.LineCount())
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

// lineRange resolves the --start/--end flags against the buffer, clamping
// end to the last line. An empty clamped range is reported as (0, 0).
func lineRange(buf *buffer.MemoryBuffer) (int, int) {
	start, end := startLine, endLine
	if end == 0 || end > buf.LineCount() {
		end = buf.LineCount()
	}
	if start < 1 {
		start = 1
	}
	if start > end {
		return 0, 0
	}
	return start, end
}

// alignOptions merges config defaults under the CLI flags.
func (a *app) alignOptions() features.AlignOptions {
	opts := features.DefaultAlignOptions()
	if a.cfg.Align.Column > 0 {
		opts.Column = a.cfg.Align.Column
	}
	if a.cfg.Align.MinGap > 0 {
		opts.MinGap = a.cfg.Align.MinGap
	}
	if alignColumn > 0 {
		opts.Column = alignColumn
	}
	if alignMinGap > 0 {
		opts.MinGap = alignMinGap
	}
	return opts
}
