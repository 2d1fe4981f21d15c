// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package narrative

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/petar-djukic/go-readme/pkg/types"
)

const maxTopicFeatures = 5

var archetypeFeatures = map[types.ProjectType][]string{
	types.FullstackWebapp: {
		"Integrated Frontend and Backend: Client and server live in one repository and evolve together.",
		"Responsive Interface: Works across desktop and mobile screen sizes.",
		"Server-Side Logic: Business rules run on the backend, keeping the client lean.",
		"End-to-End Workflow: Data flows from the interface to storage and back without extra glue.",
	},
	types.APIService: {
		"RESTful Endpoints: Resources are exposed through predictable HTTP routes.",
		"Structured Responses: Consistent, machine-readable payloads for every request.",
		"Error Handling: Clear status codes and messages when something goes wrong.",
		"Scalable Design: Stateless request handling that scales horizontally.",
		"Easy Integration: Any HTTP client can consume the service.",
	},
	types.CLITool: {
		"Simple Commands: A small set of memorable commands and flags.",
		"Scriptable: Plays well with shell pipelines and automation.",
		"Fast Startup: Runs instantly with no server to manage.",
		"Helpful Output: Readable results and meaningful exit codes.",
	},
	types.FrontendApp: {
		"Modern UI: Clean and intuitive user interface.",
		"Responsive Design: Works on all devices and screen sizes.",
		"Component-Based: The interface is composed of reusable pieces.",
		"Fast Interactions: Updates happen in the browser without full page reloads.",
	},
	types.Bot: {
		"Command Handling: Responds to user commands with useful actions.",
		"Event Driven: Reacts automatically to platform events.",
		"Always On: Designed to run continuously in the background.",
		"Configurable: Behavior can be tuned without code changes.",
	},
	types.Library: {
		"Reusable API: A focused set of functions for other projects to import.",
		"Lightweight: Minimal dependencies and a small footprint.",
		"Well Structured: Clear module boundaries that are easy to navigate.",
		"Easy to Adopt: Drop it into an existing codebase with little setup.",
	},
	types.Unknown: {
		"Modern UI: Clean and intuitive user interface.",
		"Responsive Design: Works on all devices and screen sizes.",
		"Easy Setup: Simple installation and configuration process.",
		"Open Source: Free to use, study and improve.",
	},
}

// scanCategory emits its bullet when any path contains one of its
// substrings, or has a path token (a run of letters and digits) equal to
// one of its words. Short or ambiguous triggers are words so "assets" does
// not read as "sse" and "author" does not read as "auth".
type scanCategory struct {
	substrings []string
	words      []string
	bullet     string
}

var scanCatalog = []scanCategory{
	{
		[]string{"login", "signup", "sign-up", "oauth", "jwt", "authentication", "authorization", "passport"},
		[]string{"auth", "authn", "authz", "session", "sessions"},
		"Authentication: Secure sign-up, login and session handling.",
	},
	{
		[]string{"model", "schema", "entity", "entities", "migration"},
		nil,
		"Data Modeling: Structured models describing the core entities.",
	},
	{
		[]string{"route", "endpoint", "controller", "handler", "graphql", "openapi"},
		[]string{"api", "apis"},
		"API Endpoints: Well-defined endpoints for programmatic access.",
	},
	{
		[]string{"component", "widget", "views/", "ui/"},
		nil,
		"UI Components: Reusable interface building blocks.",
	},
	{
		[]string{"websocket", "realtime", "real-time", "pubsub", "socket.io"},
		[]string{"socket", "sockets", "sse"},
		"Real-Time Updates: Live data pushed to connected clients.",
	},
	{
		[]string{"upload", "storage", "media/", "files/", "attachment"},
		nil,
		"File Handling: Upload, store and serve files.",
	},
	{
		[]string{"search", "filter", "elastic", "algolia"},
		nil,
		"Search: Find and filter content quickly.",
	},
	{
		[]string{"notification", "notifier", "notify", "mailer", "newsletter"},
		[]string{"email", "emails", "mail", "sms", "push"},
		"Notifications: Keep users informed by email or in-app alerts.",
	},
	{
		[]string{"payment", "stripe", "checkout", "billing", "paypal", "invoice"},
		nil,
		"Payments: Accept and track payments securely.",
	},
	{
		[]string{"analytics", "metric", "dashboard", "tracking"},
		[]string{"stats"},
		"Analytics: Insight into usage through metrics and dashboards.",
	},
	{
		[]string{"security", "crypto", "encrypt", "permission", "rbac", "csrf"},
		nil,
		"Security: Protection for data and access control.",
	},
	{
		[]string{"cache", "redis", "memcache"},
		nil,
		"Caching: Faster responses by caching frequently used data.",
	},
	{
		[]string{"__tests__", "pytest", "jest.config"},
		[]string{"test", "tests", "testing", "spec", "specs", "e2e"},
		"Testing: Automated tests guard against regressions.",
	},
	{
		[]string{"docs/", "doc/", "documentation", "mkdocs", "sphinx"},
		nil,
		"Documentation: Guides and references for users and contributors.",
	},
}

// Features merges the archetype catalog, the content-scan catalog and the
// topic bullets, dropping repeated labels. First occurrence wins.
func Features(in Input) []string {
	base, ok := archetypeFeatures[in.Profile.ProjectType]
	if !ok {
		base = archetypeFeatures[types.Unknown]
	}

	var out []string
	seen := make(map[string]bool)
	add := func(b string) {
		key := strings.ToLower(Label(b))
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, b)
	}

	for _, b := range base {
		add(b)
	}
	for _, b := range ScanFeatures(in.Files) {
		add(b)
	}
	for _, b := range TopicFeatures(in.Topics) {
		add(b)
	}
	return out
}

// ScanFeatures returns the content-scan bullets triggered by the paths,
// in catalog order.
func ScanFeatures(files []string) []string {
	lower := make([]string, len(files))
	tokens := make(map[string]bool)
	for i, f := range files {
		lower[i] = strings.ToLower(f)
		for _, tok := range pathTokens(lower[i]) {
			tokens[tok] = true
		}
	}

	var out []string
	for _, cat := range scanCatalog {
		if anyContains(lower, cat.substrings) || anyWord(tokens, cat.words) {
			out = append(out, cat.bullet)
		}
	}
	return out
}

// pathTokens splits a path into runs of letters and digits.
func pathTokens(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func anyWord(tokens map[string]bool, words []string) bool {
	for _, w := range words {
		if tokens[w] {
			return true
		}
	}
	return false
}

// TopicFeatures turns up to five repository topics into bullets, e.g.
// "machine-learning" becomes "Machine Learning: Core functionality for
// machine learning."
func TopicFeatures(topics []string) []string {
	if len(topics) > maxTopicFeatures {
		topics = topics[:maxTopicFeatures]
	}
	caser := cases.Title(language.English)

	var out []string
	for _, t := range topics {
		words := strings.TrimSpace(strings.ReplaceAll(t, "-", " "))
		if words == "" {
			continue
		}
		label := caser.String(words)
		out = append(out, label+": Core functionality for "+strings.ToLower(words)+".")
	}
	return out
}

// Label returns the part of a bullet before the first colon, or the whole
// bullet when it has none.
func Label(bullet string) string {
	if i := strings.Index(bullet, ":"); i >= 0 {
		return strings.TrimSpace(bullet[:i])
	}
	return strings.TrimSpace(bullet)
}

func anyContains(paths, triggers []string) bool {
	for _, p := range paths {
		for _, t := range triggers {
			if strings.Contains(p, t) {
				return true
			}
		}
	}
	return false
}
