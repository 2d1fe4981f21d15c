// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package techstack turns a project profile into labeled tech-stack lines
// and a deduplicated list of shields.io badges.
package techstack

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-readme/internal/classify"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// Line labels, in rendering order.
const (
	LabelPrimaryLanguage = "Primary Language"
	LabelFramework       = "Framework"
	LabelFrontend        = "Frontend"
	LabelBackend         = "Backend"
	LabelDatabase        = "Database"
	LabelTools           = "Tools & Libraries"
	LabelDeployment      = "Deployment"
	LabelDevelopment     = "Development"
)

const maxLibraries = 5

var (
	frontendLangs = map[string]bool{
		"HTML": true, "CSS": true, "SCSS": true, "Sass": true, "Less": true,
		"JavaScript": true, "TypeScript": true, "Vue": true, "Svelte": true,
	}
	backendLangs = map[string]bool{
		"Python": true, "Go": true, "Java": true, "Kotlin": true, "Ruby": true,
		"PHP": true, "C#": true, "Rust": true, "Scala": true, "Elixir": true,
		"Erlang": true, "Perl": true,
	}
)

// packageManagers maps a root manifest to the tool it implies.
var packageManagers = []struct {
	file string
	name string
}{
	{"package.json", "npm"},
	{"requirements.txt", "pip"},
	{"pyproject.toml", "pip"},
	{"pom.xml", "Maven"},
	{"build.gradle", "Gradle"},
	{"go.mod", "Go Modules"},
	{"Cargo.toml", "Cargo"},
	{"Gemfile", "Bundler"},
	{"composer.json", "Composer"},
}

var deployTargets = []struct {
	files []string
	name  string
}{
	{[]string{"Dockerfile"}, "Docker"},
	{[]string{"docker-compose.yml", "docker-compose.yaml", "compose.yaml"}, "Docker Compose"},
	{[]string{".github/workflows"}, "GitHub Actions"},
	{[]string{"vercel.json"}, "Vercel"},
	{[]string{"netlify.toml"}, "Netlify"},
	{[]string{"Procfile"}, "Heroku"},
}

// Line is one labeled tech-stack entry.
type Line struct {
	Label  string
	Values []string
}

// String renders the line as a Markdown list item.
func (l Line) String() string {
	return fmt.Sprintf("- **%s:** %s", l.Label, strings.Join(l.Values, ", "))
}

// Input is everything the composer reads.
type Input struct {
	Profile types.ProjectProfile
	Files   []string
	// Source answers file-existence checks; nil means none exist.
	Source Source
	// Language is the hosting-reported primary language, used when no
	// file in Files has a recognized programming extension.
	Language string
}

// Stack is the composed tech stack.
type Stack struct {
	PrimaryLanguage string
	Lines           []Line
	Badges          []Badge
	Manifests       Manifests
}

// Text renders the lines, one per row. Omitted categories leave no gap.
func (s Stack) Text() string {
	rows := make([]string, len(s.Lines))
	for i, l := range s.Lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// Line returns the line with the given label, if present.
func (s Stack) Line(label string) (Line, bool) {
	for _, l := range s.Lines {
		if l.Label == label {
			return l, true
		}
	}
	return Line{}, false
}

// Compose builds the tech-stack lines and badge list. Each line appears
// only when there is evidence for it.
func Compose(in Input) Stack {
	src := in.Source
	if src == nil {
		src = emptySource{}
	}
	p := in.Profile
	man := ReadManifests(src)

	primary := FirstLanguage(in.Files)
	if primary == "" {
		primary = in.Language
	}

	seen := languagesInOrder(in.Files)

	var frameworks []string
	if p.FrameworkDetected != "" {
		frameworks = append(frameworks, p.FrameworkDetected)
	}
	for _, f := range man.Frameworks {
		frameworks = appendUnique(frameworks, f)
	}

	var frontend []string
	if p.Flags.HasFrontend {
		frontend = filter(seen, frontendLangs)
	}

	var backend []string
	if p.Flags.HasBackend {
		backend = filter(seen, backendLangs)
		if src.FileExists("package.json") {
			backend = append(backend, "Node.js")
		}
	}

	var databases []string
	if p.DatabaseDetected != "" {
		databases = append(databases, p.DatabaseDetected)
	}
	for _, d := range man.Databases {
		databases = appendUnique(databases, d)
	}

	var tools []string
	for _, pm := range packageManagers {
		if src.FileExists(pm.file) {
			tools = appendUnique(tools, pm.name)
		}
	}
	libs := man.Libraries
	if len(libs) > maxLibraries {
		libs = libs[:maxLibraries]
	}
	for _, l := range libs {
		tools = appendUnique(tools, l)
	}

	var deploy []string
	if p.Flags.HasDocker {
		deploy = append(deploy, "Docker")
	}
	for _, d := range deployTargets {
		for _, f := range d.files {
			if src.FileExists(f) {
				deploy = appendUnique(deploy, d.name)
				break
			}
		}
	}

	var dev []string
	if p.Flags.HasTests {
		dev = append(dev, "Testing")
	}
	if p.Flags.HasDocs {
		dev = append(dev, "Documentation")
	}

	s := Stack{PrimaryLanguage: primary, Manifests: man}
	s.addLine(LabelPrimaryLanguage, nonEmpty(primary))
	s.addLine(LabelFramework, frameworks)
	s.addLine(LabelFrontend, frontend)
	s.addLine(LabelBackend, backend)
	s.addLine(LabelDatabase, databases)
	s.addLine(LabelTools, tools)
	s.addLine(LabelDeployment, deploy)
	s.addLine(LabelDevelopment, dev)

	var badges BadgeSet
	for _, group := range [][]string{nonEmpty(primary), frameworks, frontend, backend, databases, deploy} {
		for _, name := range group {
			badges.Add(name)
		}
	}
	s.Badges = badges.Badges()
	return s
}

// FirstLanguage returns the programming language of the first file, in
// list order, whose extension is recognized. It stops at the first match.
// Markup, styling and data extensions are skipped on purpose, so
// ["index.html", "app.py"] yields Python rather than HTML, unlike a plain
// first-recognized-extension scan.
func FirstLanguage(files []string) string {
	for _, f := range files {
		if lang, ok := classify.ProgrammingLanguage(f); ok {
			return lang
		}
	}
	return ""
}

func (s *Stack) addLine(label string, values []string) {
	if len(values) == 0 {
		return
	}
	s.Lines = append(s.Lines, Line{Label: label, Values: values})
}

func languagesInOrder(files []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range files {
		lang, ok := classify.Language(f)
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

func filter(langs []string, keep map[string]bool) []string {
	var out []string
	for _, l := range langs {
		if keep[l] {
			out = append(out, l)
		}
	}
	return out
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

type emptySource struct{}

func (emptySource) FileExists(string) bool     { return false }
func (emptySource) ReadTextFile(string) string { return "" }
