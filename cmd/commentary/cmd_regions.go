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

	"github.com/spf13/cobra"

	"github.com/AleutianAI/commentary/pkg/features"
)

func runRegionsList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}
	regions, err := features.FindRegions(cmd.Context(), a.resolver, buf)
	if err != nil {
		return err
	}
	for _, r := range regions {
		state := "active"
		if r.Commented {
			state = "commented"
		}
		fmt.Printf("%s:%d-%d\t%s\n", args[0], r.StartLine, r.EndLine, state)
	}
	return nil
}

func runRegionsToggle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}
	regions, err := features.FindRegions(cmd.Context(), a.resolver, buf)
	if err != nil {
		return err
	}
	region, ok := features.RegionAt(regions, regionLine)
	if !ok {
		return fmt.Errorf("no debug region contains line %d", regionLine)
	}
	if err := features.ToggleRegion(cmd.Context(), a.toggler, buf, region); err != nil {
		return err
	}
	return emitBuffer(args[0], buf)
}

func runRegionsScan(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	root := scanRoot
	if len(args) > 0 {
		root = args[0]
	}
	if root == "" {
		root = "."
	}

	var opts []features.ScannerOption
	if a.cfg.Scan.SearchTool != "" {
		opts = append(opts, features.WithSearchTool(a.cfg.Scan.SearchTool))
	}
	if a.cfg.Scan.MaxFiles > 0 || a.cfg.Scan.MaxFileSize > 0 {
		opts = append(opts, features.WithScanCaps(a.cfg.Scan.MaxFiles, a.cfg.Scan.MaxFileSize))
	}

	scanner := features.NewProjectScanner(a.resolver, root, a.log.Logger, opts...)
	report, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}

	for _, fr := range report.Files {
		for _, r := range fr.Regions {
			state := "active"
			if r.Commented {
				state = "commented"
			}
			fmt.Printf("%s:%d-%d\t%s\n", fr.Path, r.StartLine, r.EndLine, state)
		}
	}
	fmt.Printf("scanned %d files, %d skipped\n", report.Scanned, len(report.Skipped))
	return nil
}
