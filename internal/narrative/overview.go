// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package narrative produces the overview paragraph and feature bullets
// of a README. The deterministic stage depends only on the project
// profile; the optional augmentation stage asks a text generator to
// improve it and falls back to the deterministic output on any failure.
package narrative

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// Input is what the deterministic stage reads.
type Input struct {
	Name        string
	Description string // Hosting-provided description; may be empty
	Language    string // Primary language; may be empty
	Profile     types.ProjectProfile
	Files       []string
	Topics      []string
}

// Narrative is the prose portion of a README.
type Narrative struct {
	Overview string
	Features []string // "Label: description" or free text
}

func (n Narrative) clone() Narrative {
	out := Narrative{Overview: n.Overview, Features: make([]string, len(n.Features))}
	copy(out.Features, n.Features)
	return out
}

// Generate runs the deterministic stage.
func Generate(in Input) Narrative {
	return Narrative{
		Overview: Overview(in),
		Features: Features(in),
	}
}

// overviewTemplate holds the fixed phrases for one archetype. The four
// clauses are describe, stack, capability and closing.
type overviewTemplate struct {
	describe     string // %s is the project name
	stackDefault string
	capDefault   string
	closing      string
}

var overviewTemplates = map[types.ProjectType]overviewTemplate{
	types.FullstackWebapp: {
		describe:     "%s is a full-stack web application that combines a browser interface with a server backend in a single codebase.",
		stackDefault: "It pairs a client-side interface with server-side logic.",
		capDefault:   "It covers the full request path from the user interface to the data it serves.",
		closing:      "The result is a complete product that can be run, extended and deployed as one unit.",
	},
	types.APIService: {
		describe:     "%s is a backend service that exposes its functionality through an API.",
		stackDefault: "It runs as a standalone server process.",
		capDefault:   "It handles incoming requests and returns structured responses.",
		closing:      "It is a dependable foundation for clients and integrations that need programmatic access.",
	},
	types.CLITool: {
		describe:     "%s is a command-line tool designed to be run from the terminal.",
		stackDefault: "It ships as a self-contained executable.",
		capDefault:   "It accepts commands and flags and reports results directly in the shell.",
		closing:      "It fits naturally into scripts, automation and everyday developer workflows.",
	},
	types.FrontendApp: {
		describe:     "%s is a frontend application focused on delivering an interactive user interface.",
		stackDefault: "It runs entirely in the browser.",
		capDefault:   "It organizes the interface into views that respond to user input.",
		closing:      "It aims to give users a fast and polished experience.",
	},
	types.Bot: {
		describe:     "%s is an automated bot that listens for events and responds to commands.",
		stackDefault: "It runs as a long-lived process connected to its platform.",
		capDefault:   "It reacts to messages and triggers actions on behalf of its users.",
		closing:      "It takes repetitive work off people's hands.",
	},
	types.Library: {
		describe:     "%s is a reusable library intended to be imported by other projects.",
		stackDefault: "It exposes a focused public API.",
		capDefault:   "It packages common functionality behind a small surface.",
		closing:      "It lets other projects build on tested building blocks instead of starting from scratch.",
	},
	types.Unknown: {
		describe:     "%s is a software project.",
		stackDefault: "Its source is organized as a conventional repository.",
		capDefault:   "It contains the code and assets needed to build and run it.",
		closing:      "Contributions and feedback are welcome as the project evolves.",
	},
}

// Overview builds the four-clause overview paragraph. The clauses are
// joined with single spaces.
func Overview(in Input) string {
	tmpl, ok := overviewTemplates[in.Profile.ProjectType]
	if !ok {
		tmpl = overviewTemplates[types.Unknown]
	}

	describe := fmt.Sprintf(tmpl.describe, displayName(in.Name))
	if d := strings.TrimSpace(in.Description); d != "" && d != "No description provided" {
		describe = sentence(d)
	}

	stack := tmpl.stackDefault
	if phrase := stackPhrase(in.Language, in.Profile); phrase != "" {
		stack = "It is built with " + phrase + "."
	}

	capability := tmpl.capDefault
	if caps := capabilities(in.Profile.Flags); len(caps) > 0 {
		capability = "It includes " + joinList(caps) + "."
	}

	return strings.Join([]string{describe, stack, capability, tmpl.closing}, " ")
}

func stackPhrase(language string, p types.ProjectProfile) string {
	var parts []string
	switch {
	case p.FrameworkDetected != "" && language != "":
		parts = append(parts, p.FrameworkDetected+" on "+language)
	case p.FrameworkDetected != "":
		parts = append(parts, p.FrameworkDetected)
	case language != "":
		parts = append(parts, language)
	}
	if p.DatabaseDetected != "" {
		if len(parts) == 0 {
			return p.DatabaseDetected + " for persistence"
		}
		parts = append(parts, p.DatabaseDetected+" for persistence")
	}
	return strings.Join(parts, " and ")
}

func capabilities(f types.Flags) []string {
	var caps []string
	if f.HasAPI {
		caps = append(caps, "an API layer")
	}
	if f.HasDatabase {
		caps = append(caps, "a data storage layer")
	}
	if f.HasCLI {
		caps = append(caps, "a command-line interface")
	}
	if f.HasMobile {
		caps = append(caps, "mobile platform support")
	}
	if f.HasDocker {
		caps = append(caps, "containerized deployment")
	}
	if f.HasTests {
		caps = append(caps, "an automated test suite")
	}
	if f.HasDocs {
		caps = append(caps, "project documentation")
	}
	return caps
}

// joinList joins items as "a", "a and b" or "a, b and c".
func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "This project"
	}
	return name
}

func sentence(s string) string {
	if strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") || strings.HasSuffix(s, "?") {
		return s
	}
	return s + "."
}
