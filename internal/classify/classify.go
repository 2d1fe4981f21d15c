// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package classify maps file paths to languages and capability flags.
// Classification has no side effects; callers own every counter.
package classify

import (
	"path"
	"strings"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// keywordRule sets a flag when any of its substrings occurs in the
// lowercased path. Paths are matched with a leading slash, so a keyword
// like "/cli/" is anchored to a directory boundary even at the root.
type keywordRule struct {
	keywords []string
	set      func(*types.Flags)
}

var keywordRules = []keywordRule{
	{[]string{"frontend", "client/", "components/", "pages/", "views/", "public/index.html"}, func(f *types.Flags) { f.HasFrontend = true }},
	{[]string{"backend", "server", "api/", "routes/", "controllers/", "handlers/", "services/", "manage.py", "wsgi", "asgi"}, func(f *types.Flags) { f.HasBackend = true }},
	{[]string{"database", "db/", "models", "migrations", "schema", "prisma", "sqlite", "mongo", "redis", "postgres", "mysql"}, func(f *types.Flags) { f.HasDatabase = true }},
	{[]string{"api", "routes", "endpoint", "controller", "graphql", "openapi", "swagger"}, func(f *types.Flags) { f.HasAPI = true }},
	{[]string{"/cli/", "/cli.", "/cmd/", "/bin/", "/commands/", "/command/", "__main__", "console"}, func(f *types.Flags) { f.HasCLI = true }},
	{[]string{"web", "www", "static/", "templates/", "public/"}, func(f *types.Flags) { f.HasWeb = true }},
	{[]string{"android", "ios/", "mobile", "flutter", "react-native", "expo"}, func(f *types.Flags) { f.HasMobile = true }},
	{[]string{"docker"}, func(f *types.Flags) { f.HasDocker = true }},
	{[]string{"test", "spec"}, func(f *types.Flags) { f.HasTests = true }},
	{[]string{"docs/", "doc/", "documentation", "mkdocs", "sphinx", "wiki"}, func(f *types.Flags) { f.HasDocs = true }},
}

// Result is the classification of a single path.
type Result struct {
	Language string      // Empty when the extension is not recognized
	Flags    types.Flags // Union of extension roles and keyword matches
}

// Classify classifies one path by extension lookup and keyword matching.
// Both are non-exclusive.
func Classify(relPath string) Result {
	lower := strings.ToLower(relPath)

	var res Result
	if entry, ok := lookup(lower); ok {
		res.Language = entry.language
		res.Flags = entry.roles.flags()
	}
	res.Flags = res.Flags.Merge(KeywordFlags(lower))
	return res
}

// Language returns the language of a path by extension, if recognized.
func Language(relPath string) (string, bool) {
	entry, ok := lookup(strings.ToLower(relPath))
	if !ok {
		return "", false
	}
	return entry.language, true
}

// ProgrammingLanguage is like Language but ignores markup, styling and
// data formats, so a README or config file never becomes the primary
// language.
func ProgrammingLanguage(relPath string) (string, bool) {
	lang, ok := Language(relPath)
	if !ok || nonProgramming[lang] {
		return "", false
	}
	return lang, true
}

// KeywordFlags applies only the keyword substring rules to a path.
func KeywordFlags(relPath string) types.Flags {
	lower := "/" + strings.ToLower(relPath)
	var f types.Flags
	for _, rule := range keywordRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				rule.set(&f)
				break
			}
		}
	}
	return f
}

// Extension returns the lowercase extension of a path including the dot,
// or "" when the base name has none.
func Extension(relPath string) string {
	return strings.ToLower(path.Ext(path.Base(relPath)))
}

func lookup(lowerPath string) (extEntry, bool) {
	ext := Extension(lowerPath)
	if ext == "" {
		return extEntry{}, false
	}
	entry, ok := extensions[ext]
	return entry, ok
}

func (r role) flags() types.Flags {
	return types.Flags{
		HasFrontend: r&roleFrontend != 0,
		HasBackend:  r&roleBackend != 0,
		HasWeb:      r&roleWeb != 0,
		HasMobile:   r&roleMobile != 0,
		HasDatabase: r&roleDatabase != 0,
		HasDocs:     r&roleDocs != 0,
	}
}
