// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/javascript"
	tree_sitter_markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/sql"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// grammars maps canonical filetype ids to tree-sitter grammars.
//
// The javascript grammar parses JSX, so javascriptreact shares it;
// typescriptreact needs the distinct tsx grammar (TS type assertions and
// JSX tags are ambiguous otherwise).
var grammars = map[string]func() *sitter.Language{
	"go":              golang.GetLanguage,
	"javascript":      javascript.GetLanguage,
	"javascriptreact": javascript.GetLanguage,
	"typescript":      typescript.GetLanguage,
	"typescriptreact": tsx.GetLanguage,
	"python":          python.GetLanguage,
	"rust":            rust.GetLanguage,
	"css":             css.GetLanguage,
	"html":            html.GetLanguage,
	"sh":              bash.GetLanguage,
	"yaml":            yaml.GetLanguage,
	"sql":             sql.GetLanguage,
	"dockerfile":      dockerfile.GetLanguage,
	"markdown":        tree_sitter_markdown.GetLanguage,
}

// commentNodeTypes is the set of node type names classified as comments
// across the supported grammars.
var commentNodeTypes = map[string]bool{
	"comment":       true,
	"line_comment":  true,
	"block_comment": true,
	"html_comment":  true,
	"doc_comment":   true,
}

// jsxMarkupNodeTypes mark positions inside JSX element/fragment/tag syntax.
var jsxMarkupNodeTypes = map[string]bool{
	"jsx_element":              true,
	"jsx_fragment":             true,
	"jsx_opening_element":      true,
	"jsx_closing_element":      true,
	"jsx_self_closing_element": true,
}

// jsxExpressionNodeTypes mark {...} JavaScript expression containers
// embedded in JSX, where standard JS comment style applies.
var jsxExpressionNodeTypes = map[string]bool{
	"jsx_expression": true,
}

// jsxFiletypes are the react-flavored filetypes whose buffers can contain
// JSX markup positions.
var jsxFiletypes = map[string]bool{
	"javascript":      true,
	"javascriptreact": true,
	"typescriptreact": true,
}
