// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package archetype

import (
	"path"
	"strings"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// nameRule matches a lowercased path by substring and yields a name.
type nameRule struct {
	substrings []string
	name       string
}

func (r nameRule) matches(lowerPath string) bool {
	for _, s := range r.substrings {
		if strings.Contains(lowerPath, s) {
			return true
		}
	}
	return false
}

// Framework rules are evaluated in order; the first rule that matches the
// first matching file wins. Go frameworks come from go.mod, not paths,
// because short names like "gin" collide with ordinary words.
var frameworkRules = []nameRule{
	{[]string{"next.config"}, "Next.js"},
	{[]string{"nuxt.config"}, "Nuxt.js"},
	{[]string{"angular.json"}, "Angular"},
	{[]string{"svelte.config", ".svelte"}, "Svelte"},
	{[]string{"vue.config", ".vue"}, "Vue.js"},
	{[]string{".jsx", ".tsx"}, "React"},
	{[]string{"manage.py", "django"}, "Django"},
	{[]string{"flask"}, "Flask"},
	{[]string{"fastapi"}, "FastAPI"},
	{[]string{"streamlit"}, "Streamlit"},
	{[]string{"express"}, "Express"},
	{[]string{"spring", "application.properties"}, "Spring Boot"},
	{[]string{"artisan", "laravel"}, "Laravel"},
	{[]string{"gemfile.lock", "config/routes.rb"}, "Ruby on Rails"},
	{[]string{"pubspec.yaml"}, "Flutter"},
}

var databaseRules = []nameRule{
	{[]string{"postgres", "psql"}, "PostgreSQL"},
	{[]string{"mysql", "mariadb"}, "MySQL"},
	{[]string{"mongo"}, "MongoDB"},
	{[]string{"redis"}, "Redis"},
	{[]string{"sqlite", ".db"}, "SQLite"},
	{[]string{"firebase", "firestore"}, "Firebase"},
	{[]string{"supabase"}, "Supabase"},
	{[]string{"dynamo"}, "DynamoDB"},
	{[]string{"prisma"}, "Prisma"},
}

// keyFileNames are base names that mark an entry point or a manifest.
var keyFileNames = map[string]bool{
	"main.py":             true,
	"app.py":              true,
	"manage.py":           true,
	"setup.py":            true,
	"pyproject.toml":      true,
	"requirements.txt":    true,
	"index.js":            true,
	"server.js":           true,
	"app.js":              true,
	"index.ts":            true,
	"main.ts":             true,
	"package.json":        true,
	"main.go":             true,
	"go.mod":              true,
	"cargo.toml":          true,
	"main.rs":             true,
	"pom.xml":             true,
	"build.gradle":        true,
	"gemfile":             true,
	"composer.json":       true,
	"dockerfile":          true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
	"makefile":            true,
}

func matchFirst(rules []nameRule, lowerPath string) string {
	for _, r := range rules {
		if r.matches(lowerPath) {
			return r.name
		}
	}
	return ""
}

func isKeyFile(lowerPath string) bool {
	return keyFileNames[path.Base(lowerPath)]
}

// purposes maps each archetype to its one-line purpose.
var purposes = map[types.ProjectType]string{
	types.FullstackWebapp: "A full-stack web application with both client and server components",
	types.APIService:      "A backend service exposing an API for other applications",
	types.CLITool:         "A command-line tool for terminal workflows",
	types.FrontendApp:     "A frontend application delivering an interactive user interface",
	types.Bot:             "An automated bot that responds to events and commands",
	types.Library:         "A reusable library for other projects to build on",
	types.Unknown:         "A software project",
}

// PrimaryPurpose returns the one-line purpose for an archetype.
func PrimaryPurpose(t types.ProjectType) string {
	if p, ok := purposes[t]; ok {
		return p
	}
	return purposes[types.Unknown]
}
