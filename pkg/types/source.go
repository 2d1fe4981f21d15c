// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "time"

// FileSource is the repository source collaborator: a local checkout or a
// remote tree. Paths are POSIX-style and relative to the repository root.
type FileSource interface {
	// ListFiles returns every file, skipping dot-prefixed directories and
	// dependency/build directories.
	ListFiles() []string
	// FileExists reports whether a file or directory exists.
	FileExists(relPath string) bool
	// ReadTextFile returns the file content, or "" when it cannot be read.
	ReadTextFile(relPath string) string
	// Root returns the local directory backing the source, or "" for
	// remote sources.
	Root() string
}

// RemoteRepoMetadata is the metadata record fetched from the hosting API.
// Every field except the core ones may be empty when its sub-fetch failed.
type RemoteRepoMetadata struct {
	Name            string         `json:"name"`
	FullName        string         `json:"full_name"`
	Description     string         `json:"description"`
	URL             string         `json:"url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	Language        string         `json:"language"`
	DefaultBranch   string         `json:"default_branch,omitempty"`
	ForksCount      int            `json:"forks_count"`
	StargazersCount int            `json:"stargazers_count"`
	OpenIssuesCount int            `json:"open_issues_count"`
	License         string         `json:"license,omitempty"`
	Topics          []string       `json:"topics"`
	Readme          string         `json:"readme,omitempty"`
	ReadmeHTML      string         `json:"readme_html,omitempty"`
	Contributors    []Contributor  `json:"contributors"`
	Languages       map[string]int `json:"languages"`
	Releases        []Release      `json:"releases"`
	// Partial names the sub-fetches that failed and were defaulted.
	Partial []string `json:"partial,omitempty"`
}

// Contributor is one of the top repository contributors.
type Contributor struct {
	Login         string `json:"login"`
	URL           string `json:"url"`
	Contributions int    `json:"contributions"`
}

// Release is one of the latest repository releases.
type Release struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	Body        string    `json:"body"`
}
