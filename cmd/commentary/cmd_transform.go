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

	"github.com/AleutianAI/commentary/pkg/engine"
	"github.com/AleutianAI/commentary/pkg/features"
)

func runAlign(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}
	start, end := lineRange(buf)
	if start == 0 {
		return nil
	}

	if err := features.Align(cmd.Context(), a.resolver, buf, start, end, a.alignOptions()); err != nil {
		return err
	}
	return emitBuffer(args[0], buf)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}
	start, end := lineRange(buf)
	if start == 0 {
		return nil
	}

	if err := features.Normalize(cmd.Context(), a.resolver, buf, start, end); err != nil {
		return err
	}
	return emitBuffer(args[0], buf)
}

func runConvert(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	var target engine.StyleType
	switch styleType {
	case "line":
		target = engine.StyleLine
	case "block":
		target = engine.StyleBlock
	default:
		return fmt.Errorf("--to must be 'line' or 'block', got %q", styleType)
	}

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}
	start, end := lineRange(buf)
	if start == 0 {
		return nil
	}

	if err := features.Convert(cmd.Context(), a.resolver, buf, start, end, target); err != nil {
		return err
	}
	return emitBuffer(args[0], buf)
}
