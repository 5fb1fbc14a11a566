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
)

func runToggle(cmd *cobra.Command, args []string) error {
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
		// Empty range after clamping: nothing to change.
		return nil
	}

	opts := engine.ToggleOptions{StyleType: engine.StyleType(styleType)}
	switch forceMode {
	case "comment":
		opts.ForceComment = true
	case "uncomment":
		opts.ForceUncomment = true
	case "":
	default:
		return fmt.Errorf("unknown --force mode %q", forceMode)
	}

	if err := a.toggler.ToggleLines(cmd.Context(), buf, start, end, opts); err != nil {
		return err
	}
	return emitBuffer(args[0], buf)
}
