// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across go-readme packages.
package types

// ProjectType is the inferred archetype of a codebase.
type ProjectType string

const (
	FullstackWebapp ProjectType = "fullstack_webapp"
	APIService      ProjectType = "api_service"
	CLITool         ProjectType = "cli_tool"
	FrontendApp     ProjectType = "frontend_app"
	Bot             ProjectType = "bot"
	Library         ProjectType = "library"
	Unknown         ProjectType = "unknown"
)

// String returns the wire name of the archetype.
func (t ProjectType) String() string {
	return string(t)
}

// Flags are the capability flags accumulated while scanning a file list.
// A single file may set several flags.
type Flags struct {
	HasFrontend bool `json:"has_frontend"`
	HasBackend  bool `json:"has_backend"`
	HasDatabase bool `json:"has_database"`
	HasAPI      bool `json:"has_api"`
	HasCLI      bool `json:"has_cli"`
	HasWeb      bool `json:"has_web"`
	HasMobile   bool `json:"has_mobile"`
	HasDocker   bool `json:"has_docker"`
	HasTests    bool `json:"has_tests"`
	HasDocs     bool `json:"has_docs"`
}

// Merge returns the union of two flag sets.
func (f Flags) Merge(o Flags) Flags {
	return Flags{
		HasFrontend: f.HasFrontend || o.HasFrontend,
		HasBackend:  f.HasBackend || o.HasBackend,
		HasDatabase: f.HasDatabase || o.HasDatabase,
		HasAPI:      f.HasAPI || o.HasAPI,
		HasCLI:      f.HasCLI || o.HasCLI,
		HasWeb:      f.HasWeb || o.HasWeb,
		HasMobile:   f.HasMobile || o.HasMobile,
		HasDocker:   f.HasDocker || o.HasDocker,
		HasTests:    f.HasTests || o.HasTests,
		HasDocs:     f.HasDocs || o.HasDocs,
	}
}

// ProjectProfile is the structured result of archetype analysis. It is a
// value type; callers receive copies and never share mutable state.
type ProjectProfile struct {
	ProjectType       ProjectType `json:"project_type"`
	Flags             Flags       `json:"flags"`
	FrameworkDetected string      `json:"framework_detected,omitempty"` // Empty when none matched
	DatabaseDetected  string      `json:"database_detected,omitempty"`  // Empty when none matched
	KeyFiles          []string    `json:"key_files,omitempty"`
	PrimaryPurpose    string      `json:"primary_purpose"`
}

// LanguageStat is one entry of the per-language file-count breakdown.
type LanguageStat struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"` // Rounded to one decimal
}

// FileInventory is the display-limited file listing shown in the project
// structure section. Classification always uses the full listing.
type FileInventory []string
