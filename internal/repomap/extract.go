// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package repomap finds the key components of a checkout: it extracts
// definitions and references with tree-sitter, ranks files over the
// cross-file reference graph, and names the top definitions of each.
package repomap

import (
	"context"
	"fmt"
	"path"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petar-djukic/go-readme/pkg/types"
)

const (
	maxFileBytes   = 256 << 10
	maxParsedFiles = 400
)

// Source lists and reads repository files.
type Source interface {
	ListFiles() []string
	ReadTextFile(relPath string) string
}

// langSpec holds the tree-sitter language and query patterns for a file
// type.
type langSpec struct {
	lang *sitter.Language
	defQ string // definitions, captured as @name
	refQ string // references, captured as @ref
}

var (
	goSpec = &langSpec{
		lang: golang.GetLanguage(),
		defQ: `
			(function_declaration name: (identifier) @name)
			(method_declaration name: (field_identifier) @name)
			(type_declaration (type_spec name: (type_identifier) @name))
		`,
		refQ: `
			(identifier) @ref
			(field_identifier) @ref
			(type_identifier) @ref
		`,
	}
	pythonSpec = &langSpec{
		lang: python.GetLanguage(),
		defQ: `
			(function_definition name: (identifier) @name)
			(class_definition name: (identifier) @name)
		`,
		refQ: `(identifier) @ref`,
	}
	javascriptSpec = &langSpec{
		lang: javascript.GetLanguage(),
		defQ: `
			(function_declaration name: (identifier) @name)
			(class_declaration name: (identifier) @name)
			(variable_declarator name: (identifier) @name)
		`,
		refQ: `(identifier) @ref`,
	}
	typescriptDefs = `
			(function_declaration name: (identifier) @name)
			(class_declaration name: (type_identifier) @name)
			(variable_declarator name: (identifier) @name)
			(interface_declaration name: (type_identifier) @name)
		`
	typescriptRefs = `
			(identifier) @ref
			(type_identifier) @ref
		`
)

// supportedLangs maps file extensions to their langSpec.
var supportedLangs = map[string]*langSpec{
	".go":  goSpec,
	".py":  pythonSpec,
	".js":  javascriptSpec,
	".jsx": javascriptSpec,
	".mjs": javascriptSpec,
	".ts":  {lang: typescript.GetLanguage(), defQ: typescriptDefs, refQ: typescriptRefs},
	".tsx": {lang: tsx.GetLanguage(), defQ: typescriptDefs, refQ: typescriptRefs},
}

// ExtractStats tracks extraction statistics.
type ExtractStats struct {
	FilesProcessed int
	FilesSkipped   int
}

// Extract parses every supported file of src and returns its definitions
// and references. Files that are too large or fail to parse are skipped.
func Extract(ctx context.Context, src Source) ([]types.SymbolRef, ExtractStats, error) {
	var (
		symbols []types.SymbolRef
		stats   ExtractStats
	)

	for _, relPath := range src.ListFiles() {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}
		spec, ok := supportedLangs[path.Ext(relPath)]
		if !ok || stats.FilesProcessed == maxParsedFiles {
			stats.FilesSkipped++
			continue
		}

		content := src.ReadTextFile(relPath)
		if content == "" || len(content) > maxFileBytes {
			stats.FilesSkipped++
			continue
		}

		fileSyms, err := parseSymbols(ctx, []byte(content), relPath, spec)
		if err != nil {
			stats.FilesSkipped++
			continue
		}
		stats.FilesProcessed++
		symbols = append(symbols, fileSyms...)
	}
	return symbols, stats, nil
}

// parseSymbols runs the definition and reference queries over one file.
func parseSymbols(ctx context.Context, content []byte, relPath string, spec *langSpec) ([]types.SymbolRef, error) {
	root, err := sitter.ParseCtx(ctx, content, spec.lang)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, fmt.Errorf("no syntax tree for %s", relPath)
	}

	var symbols []types.SymbolRef
	defSet := make(map[string]bool)
	for _, d := range runQuery(spec.defQ, spec.lang, root, content) {
		defSet[d.name] = true
		symbols = append(symbols, types.SymbolRef{
			Name:     d.name,
			FilePath: relPath,
			Line:     d.line,
			Kind:     types.Definition,
		})
	}

	for _, r := range runQuery(spec.refQ, spec.lang, root, content) {
		if defSet[r.name] {
			continue
		}
		symbols = append(symbols, types.SymbolRef{
			Name:     r.name,
			FilePath: relPath,
			Line:     r.line,
			Kind:     types.Reference,
		})
	}
	return symbols, nil
}

// queryResult holds a captured symbol name and its location.
type queryResult struct {
	name string
	line int
}

// runQuery executes a tree-sitter query and returns captured names with
// their 1-based lines, deduplicated by name and line.
func runQuery(pattern string, lang *sitter.Language, root *sitter.Node, content []byte) []queryResult {
	q, err := sitter.NewQuery([]byte(pattern), lang)
	if err != nil {
		return nil
	}
	defer q.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(q, root)

	seen := make(map[queryResult]bool)
	var results []queryResult
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, c := range m.Captures {
			r := queryResult{
				name: c.Node.Content(content),
				line: int(c.Node.StartPoint().Row) + 1,
			}
			if r.name == "" || seen[r] {
				continue
			}
			seen[r] = true
			results = append(results, r)
		}
	}
	return results
}
