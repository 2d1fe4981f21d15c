// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package document assembles README fragments into one Markdown document.
// Each section is a pure function of Data; the assembler runs them in a
// fixed order and applies a final normalization pass.
package document

import (
	"regexp"
	"strings"

	"github.com/petar-djukic/go-readme/internal/narrative"
	"github.com/petar-djukic/go-readme/internal/techstack"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// Social holds optional social profile handles.
type Social struct {
	Twitter  string
	LinkedIn string
}

// Contact identifies the project author.
type Contact struct {
	Name      string
	Email     string
	Portfolio string
}

// Data is everything the sections render from.
type Data struct {
	Name          string // Repository name
	URL           string // Repository web URL, used for cloning and links
	Profile       types.ProjectProfile
	Stack         techstack.Stack
	Narrative     narrative.Narrative
	Languages     []types.LanguageStat
	Inventory     types.FileInventory
	Instructions  techstack.Instructions
	License       string // License sentence; see LicenseText
	Metadata      *types.RemoteRepoMetadata
	KeyComponents []types.KeyComponent
	Social        Social
	Coffee        string // Buy Me a Coffee handle
	Contact       Contact
}

// Section is one fragment of the document. Heading is empty for
// fragments that are not listed in the table of contents. Build returns
// "" to omit the section.
type Section struct {
	Heading string
	Build   func(Data) string
}

// Sections returns the section builders in document order.
func Sections() []Section {
	return []Section{
		{"", buildTitle},
		{"", buildBadges},
		{"", buildTOC},
		{headingOverview, buildOverview},
		{headingSocial, buildSocial},
		{headingFeatures, buildFeatures},
		{headingTechStack, buildTechStack},
		{headingLanguages, buildLanguages},
		{headingInstallation, buildInstallation},
		{headingUsage, buildUsage},
		{headingStructure, buildStructure},
		{headingComponents, buildKeyComponents},
		{headingLicense, buildLicense},
		{headingReleases, buildReleases},
		{headingContributors, buildContributors},
		{headingContributing, buildContributing},
		{headingContact, buildContact},
		{headingSupport, buildSupport},
		{"", buildClosing},
	}
}

// Assemble renders every section in order and normalizes the result.
func Assemble(d Data) string {
	var parts []string
	for _, s := range Sections() {
		if out := s.Build(d); out != "" {
			parts = append(parts, out)
		}
	}
	return Normalize(strings.Join(parts, "\n\n"))
}

var leadingSpaces = regexp.MustCompile(`(?m)^ {2,}`)

// Normalize strips runs of two or more spaces at line starts, trims the
// document, then collapses a placeholder line directly before a heading.
// The order of these steps matters.
func Normalize(doc string) string {
	doc = leadingSpaces.ReplaceAllString(doc, "")
	doc = strings.TrimSpace(doc)
	return strings.ReplaceAll(doc, "...\n##", "##")
}
