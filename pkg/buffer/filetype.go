// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package buffer

import (
	"path/filepath"
	"strings"
)

var extensionFiletypes = map[string]string{
	".go":     "go",
	".c":      "c",
	".h":      "c",
	".cc":     "c",
	".cpp":    "c",
	".hpp":    "c",
	".java":   "java",
	".js":     "javascript",
	".mjs":    "javascript",
	".cjs":    "javascript",
	".jsx":    "javascriptreact",
	".ts":     "typescript",
	".mts":    "typescript",
	".tsx":    "typescriptreact",
	".py":     "python",
	".rb":     "ruby",
	".rs":     "rust",
	".swift":  "swift",
	".kt":     "kotlin",
	".scala":  "scala",
	".php":    "php",
	".lua":    "lua",
	".hs":     "haskell",
	".elm":    "elm",
	".ml":     "ocaml",
	".fs":     "fsharp",
	".nim":    "nim",
	".ex":     "elixir",
	".exs":    "elixir",
	".erl":    "erlang",
	".jl":     "julia",
	".r":      "r",
	".sh":     "sh",
	".bash":   "sh",
	".zsh":    "sh",
	".fish":   "fish",
	".css":    "css",
	".scss":   "scss",
	".less":   "less",
	".html":   "html",
	".htm":    "html",
	".xml":    "xml",
	".vue":    "vue",
	".svelte": "svelte",
	".md":     "markdown",
	".yaml":   "yaml",
	".yml":    "yaml",
	".toml":   "toml",
	".ini":    "ini",
	".json":   "json",
	".jsonc":  "jsonc",
	".sql":    "sql",
	".tf":     "terraform",
	".hcl":    "hcl",
	".nix":    "nix",
	".zig":    "zig",
	".vim":    "vim",
	".tex":    "tex",
	".proto":  "proto",
	".sol":    "sol",
	".cmake":  "cmake",
	".mk":     "make",
	".bat":    "bat",
	".ps1":    "powershell",
	".gql":    "graphql",
	".dart":   "dart",
	".groovy": "groovy",
	".clj":    "clojure",
	".lisp":   "lisp",
	".scm":    "scheme",
	".rkt":    "racket",
	".pl":     "perl",
	".vhd":    "vhdl",
	".f90":    "fortran",
	".cs":     "csharp",
}

var nameFiletypes = map[string]string{
	"Dockerfile":     "dockerfile",
	"Makefile":       "makefile",
	"GNUmakefile":    "makefile",
	"CMakeLists.txt": "cmake",
	".gitignore":     "gitignore",
	".gitconfig":     "gitconfig",
}

// DetectFiletype maps a file path to a filetype id by exact filename first,
// then by extension. Unknown paths return "".
func DetectFiletype(path string) string {
	base := filepath.Base(path)
	if ft, ok := nameFiletypes[base]; ok {
		return ft
	}
	ext := strings.ToLower(filepath.Ext(base))
	return extensionFiletypes[ext]
}
