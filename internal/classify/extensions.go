// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

// role is a capability implied by a file's extension.
type role uint8

const (
	roleFrontend role = 1 << iota
	roleBackend
	roleWeb
	roleMobile
	roleDatabase
	roleDocs
)

// extEntry is one row of the extension table.
type extEntry struct {
	language string
	roles    role
}

// extensions maps a lowercase extension (with the dot) to its language and
// implied roles. Extensions absent from this table are ignored entirely by
// extension classification.
var extensions = map[string]extEntry{
	// Source
	".py":    {"Python", roleBackend},
	".js":    {"JavaScript", 0},
	".mjs":   {"JavaScript", 0},
	".cjs":   {"JavaScript", 0},
	".jsx":   {"JavaScript", roleFrontend},
	".ts":    {"TypeScript", 0},
	".tsx":   {"TypeScript", roleFrontend},
	".java":  {"Java", roleBackend},
	".kt":    {"Kotlin", roleBackend | roleMobile},
	".kts":   {"Kotlin", 0},
	".go":    {"Go", roleBackend},
	".rs":    {"Rust", roleBackend},
	".rb":    {"Ruby", roleBackend},
	".php":   {"PHP", roleBackend},
	".cs":    {"C#", roleBackend},
	".cpp":   {"C++", 0},
	".cc":    {"C++", 0},
	".cxx":   {"C++", 0},
	".hpp":   {"C++", 0},
	".c":     {"C", 0},
	".h":     {"C", 0},
	".swift": {"Swift", roleMobile},
	".m":     {"Objective-C", roleMobile},
	".dart":  {"Dart", roleMobile},
	".scala": {"Scala", roleBackend},
	".ex":    {"Elixir", roleBackend},
	".exs":   {"Elixir", roleBackend},
	".erl":   {"Erlang", roleBackend},
	".hs":    {"Haskell", 0},
	".clj":   {"Clojure", 0},
	".lua":   {"Lua", 0},
	".pl":    {"Perl", roleBackend},
	".r":     {"R", 0},
	".jl":    {"Julia", 0},
	".ipynb": {"Jupyter Notebook", 0},

	// Markup and styles
	".html":   {"HTML", roleFrontend | roleWeb},
	".htm":    {"HTML", roleFrontend | roleWeb},
	".css":    {"CSS", roleFrontend | roleWeb},
	".scss":   {"SCSS", roleFrontend | roleWeb},
	".sass":   {"Sass", roleFrontend | roleWeb},
	".less":   {"Less", roleFrontend | roleWeb},
	".vue":    {"Vue", roleFrontend},
	".svelte": {"Svelte", roleFrontend},
	".md":     {"Markdown", 0},
	".rst":    {"reStructuredText", roleDocs},

	// Data
	".json":    {"JSON", 0},
	".yaml":    {"YAML", 0},
	".yml":     {"YAML", 0},
	".toml":    {"TOML", 0},
	".xml":     {"XML", 0},
	".sql":     {"SQL", roleDatabase},
	".graphql": {"GraphQL", 0},
	".proto":   {"Protocol Buffers", 0},

	// Infra and scripts
	".sh":         {"Shell", 0},
	".bash":       {"Shell", 0},
	".ps1":        {"PowerShell", 0},
	".dockerfile": {"Dockerfile", 0},
	".tf":         {"HCL", 0},
}

// nonProgramming lists table languages that are not programming languages.
var nonProgramming = map[string]bool{
	"HTML":             true,
	"CSS":              true,
	"SCSS":             true,
	"Sass":             true,
	"Less":             true,
	"Markdown":         true,
	"reStructuredText": true,
	"JSON":             true,
	"YAML":             true,
	"TOML":             true,
	"XML":              true,
	"Protocol Buffers": true,
	"Dockerfile":       true,
}
