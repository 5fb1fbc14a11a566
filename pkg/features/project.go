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
	"bufio"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/AleutianAI/commentary/pkg/buffer"
	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/textutil"
)

// Scanner caps. The walk fallback is bounded hard: once either ceiling is
// hit, the remaining tree is reported as skipped, never silently read.
const (
	DefaultMaxScanFiles    = 5000
	DefaultMaxScanFileSize = 1 << 20 // 1MB per file
)

// skipDirs are tree roots the walk fallback never descends into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".idea":        true,
	"dist":         true,
	"target":       true,
}

// ScannerOption configures a ProjectScanner.
type ScannerOption func(*ProjectScanner)

// WithSearchTool sets the external search binary (default "rg"). An empty
// name disables the external tool and goes straight to the walk.
func WithSearchTool(name string) ScannerOption {
	return func(p *ProjectScanner) { p.searchTool = name }
}

// WithScanCaps sets the walk fallback's file-count and per-file byte
// ceilings.
func WithScanCaps(maxFiles int, maxFileSize int64) ScannerOption {
	return func(p *ProjectScanner) {
		if maxFiles > 0 {
			p.maxFiles = maxFiles
		}
		if maxFileSize > 0 {
			p.maxFileSize = maxFileSize
		}
	}
}

// ProjectScanner locates debug regions across a project tree.
//
// It prefers a one-shot external search tool invocation (ripgrep); when
// the tool is missing or fails, it degrades to a capped filesystem walk.
// Per-file problems are warnings, not failures: scanning is a batch of
// independent files and one unreadable file must not abort the rest.
type ProjectScanner struct {
	resolver    *engine.Resolver
	root        string
	searchTool  string
	maxFiles    int
	maxFileSize int64
	log         *slog.Logger
}

// NewProjectScanner creates a scanner rooted at root.
func NewProjectScanner(resolver *engine.Resolver, root string, log *slog.Logger, opts ...ScannerOption) *ProjectScanner {
	if log == nil {
		log = slog.Default()
	}
	p := &ProjectScanner{
		resolver:    resolver,
		root:        root,
		searchTool:  "rg",
		maxFiles:    DefaultMaxScanFiles,
		maxFileSize: DefaultMaxScanFileSize,
		log:         log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FileRegions are the debug regions found in one file.
type FileRegions struct {
	Path    string
	Regions []Region
}

// Report is the outcome of one project scan. Skipped lists files that
// could not be processed (unreadable, oversized, undetectable filetype);
// their presence does not fail the scan.
type Report struct {
	Files   []FileRegions
	Scanned int
	Skipped []string
}

// Scan finds debug regions in every file under the scanner's root.
//
// The candidate set comes from one external search invocation when the
// tool is available, else from the capped walk. Candidates are then parsed
// individually; a candidate that fails moves to Report.Skipped with a
// warning and the batch continues.
func (p *ProjectScanner) Scan(ctx context.Context) (*Report, error) {
	candidates, err := p.searchCandidates(ctx)
	if err != nil {
		p.log.Warn("external search unavailable, using capped walk",
			slog.String("tool", p.searchTool),
			slog.String("error", err.Error()))
		candidates, err = p.walkCandidates(ctx)
		if err != nil {
			return nil, err
		}
	}

	report := &Report{}
	for _, path := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		regions, err := p.fileRegions(ctx, path)
		if err != nil {
			p.log.Warn("skipping file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			report.Skipped = append(report.Skipped, path)
			continue
		}
		report.Scanned++
		if len(regions) > 0 {
			report.Files = append(report.Files, FileRegions{Path: path, Regions: regions})
		}
	}
	return report, nil
}

// searchCandidates runs the external search tool once, collecting files
// that mention the region start marker.
func (p *ProjectScanner) searchCandidates(ctx context.Context) ([]string, error) {
	if p.searchTool == "" {
		return nil, exec.ErrNotFound
	}

	cmd := exec.CommandContext(ctx, p.searchTool,
		"--files-with-matches",
		"--no-messages",
		"-e", textutil.EscapeLiteral(RegionStartMarker),
		p.root,
	)
	out, err := cmd.Output()
	if err != nil {
		// Exit code 1 is "no matches", a valid empty result for ripgrep.
		if ee, ok := err.(*exec.ExitError); ok && ee.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	sc := bufio.NewScanner(strings.NewReader(string(out)))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files, nil
}

// walkCandidates is the bounded filesystem fallback: walk the root,
// honoring the file-count and per-file size ceilings, keeping files whose
// content mentions the region start marker.
func (p *ProjectScanner) walkCandidates(ctx context.Context) ([]string, error) {
	var files []string
	seen := 0

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			p.log.Warn("walk error", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if seen >= p.maxFiles {
			return filepath.SkipAll
		}
		seen++

		if buffer.DetectFiletype(path) == "" {
			return nil
		}
		info, ierr := d.Info()
		if ierr != nil || info.Size() > p.maxFileSize {
			return nil
		}
		content, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil
		}
		if strings.Contains(string(content), RegionStartMarker) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

var (
	errOversized       = errors.New("file exceeds scan size limit")
	errUnknownFiletype = errors.New("filetype not detectable")
)

func (p *ProjectScanner) fileRegions(ctx context.Context, path string) ([]Region, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > p.maxFileSize {
		return nil, errOversized
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ft := buffer.DetectFiletype(path)
	if ft == "" {
		return nil, errUnknownFiletype
	}
	buf := buffer.NewMemory(string(content), ft)
	return FindRegions(ctx, p.resolver, buf)
}
