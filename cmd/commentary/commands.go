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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath  string
	logLevel    string
	startLine   int
	endLine     int
	forceMode   string // comment/uncomment ("" = toggle)
	styleType   string // line/block ("" = prefer line)
	alignColumn int
	alignMinGap int
	scanRoot    string
	regionLine  int
	writeBack   bool

	rootCmd = &cobra.Command{
		Use:   "commentary",
		Short: "Toggle, align, normalize, and convert source-code comments",
		Long: `Commentary is the comment engine behind the editor integration:
it resolves the comment style at any buffer position (tree-sitter first,
registry and template fallbacks after) and rewrites line ranges as atomic
grouped edits.`,
	}

	toggleCmd = &cobra.Command{
		Use:   "toggle [file]",
		Short: "Toggle comments on a line range",
		Args:  cobra.ExactArgs(1),
		RunE:  runToggle, // Defined in cmd_toggle.go
	}

	alignCmd = &cobra.Command{
		Use:   "align [file]",
		Short: "Align trailing line comments in a range to one column",
		Args:  cobra.ExactArgs(1),
		RunE:  runAlign, // Defined in cmd_transform.go
	}

	normalizeCmd = &cobra.Command{
		Use:   "normalize [file]",
		Short: "Normalize comment marker spacing in a range",
		Args:  cobra.ExactArgs(1),
		RunE:  runNormalize, // Defined in cmd_transform.go
	}

	convertCmd = &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert commented lines between line and block form",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert, // Defined in cmd_transform.go
	}

	regionsCmd = &cobra.Command{
		Use:   "regions",
		Short: "Find and toggle debug regions",
	}

	regionsListCmd = &cobra.Command{
		Use:   "list [file]",
		Short: "List debug regions in a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegionsList, // Defined in cmd_regions.go
	}

	regionsToggleCmd = &cobra.Command{
		Use:   "toggle [file]",
		Short: "Toggle the debug region containing a line",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegionsToggle, // Defined in cmd_regions.go
	}

	regionsScanCmd = &cobra.Command{
		Use:   "scan [root]",
		Short: "Scan a project tree for debug regions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRegionsScan, // Defined in cmd_regions.go
	}

	styleCmd = &cobra.Command{
		Use:   "style [file]",
		Short: "Show the resolved comment style at a position",
		Args:  cobra.ExactArgs(1),
		RunE:  runStyle, // Defined in cmd_style.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn, or error")

	for _, c := range []*cobra.Command{toggleCmd, alignCmd, normalizeCmd, convertCmd} {
		c.Flags().IntVar(&startLine, "start", 1, "first line (1-indexed, inclusive)")
		c.Flags().IntVar(&endLine, "end", 0, "last line (inclusive, 0 = last line of file)")
		c.Flags().BoolVarP(&writeBack, "write", "w", false, "write the result back to the file")
	}
	toggleCmd.Flags().StringVar(&forceMode, "force", "", "force 'comment' or 'uncomment' instead of toggling")
	toggleCmd.Flags().StringVar(&styleType, "style", "", "marker form: 'line' or 'block'")
	convertCmd.Flags().StringVar(&styleType, "to", "line", "target form: 'line' or 'block'")
	alignCmd.Flags().IntVar(&alignColumn, "column", 80, "alignment column cap")
	alignCmd.Flags().IntVar(&alignMinGap, "min-gap", 2, "minimum spacing between code and marker")

	regionsToggleCmd.Flags().IntVar(&regionLine, "line", 1, "a line inside the region to toggle")
	regionsScanCmd.Flags().StringVar(&scanRoot, "root", "", "project root to scan (overridden by a positional argument)")
	regionsToggleCmd.Flags().BoolVarP(&writeBack, "write", "w", false, "write the result back to the file")

	regionsCmd.AddCommand(regionsListCmd, regionsToggleCmd, regionsScanCmd)
	rootCmd.AddCommand(toggleCmd, alignCmd, normalizeCmd, convertCmd, regionsCmd, styleCmd)
}
