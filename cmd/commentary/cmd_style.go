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
)

var (
	styleRow int
	styleCol int
)

func init() {
	styleCmd.Flags().IntVar(&styleRow, "line", 1, "line (1-indexed)")
	styleCmd.Flags().IntVar(&styleCol, "col", 0, "byte column (0-indexed)")
}

func runStyle(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Close()

	buf, err := readBuffer(args[0])
	if err != nil {
		return err
	}

	st, ok := a.resolver.StyleAt(cmd.Context(), buf, styleRow, styleCol)
	if !ok {
		fmt.Println("no comment style available")
		return nil
	}

	if st.HasLine() {
		fmt.Printf("line:  %s\n", st.Line)
	}
	if st.HasBlock() {
		fmt.Printf("block: %s %s\n", st.Block.Open, st.Block.Close)
	}
	if st.SupportsNesting {
		fmt.Println("nesting: supported")
	}
	if st.IsJSX {
		fmt.Println("context: jsx markup")
	}

	commented, err := a.resolver.IsCommented(cmd.Context(), buf, styleRow)
	if err != nil {
		return err
	}
	fmt.Printf("line %d commented: %v\n", styleRow, commented)
	return nil
}
