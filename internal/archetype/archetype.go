// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package archetype infers a ProjectProfile from a repository's file list
// and name. Analysis is a fold over the file list: each step returns a new
// accumulator, and the final accumulator is frozen into the profile.
package archetype

import (
	"strings"

	"github.com/petar-djukic/go-readme/internal/classify"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// accumulator is the fold state. It is passed and returned by value.
type accumulator struct {
	flags     types.Flags
	framework string
	database  string
	keyFiles  []string
}

// step folds one path into the accumulator. Framework and database
// detections are first-match-wins: once set they are never overwritten.
func (a accumulator) step(relPath string) accumulator {
	lower := strings.ToLower(relPath)

	a.flags = a.flags.Merge(classify.Classify(relPath).Flags)
	if a.framework == "" {
		a.framework = matchFirst(frameworkRules, lower)
	}
	if a.database == "" {
		a.database = matchFirst(databaseRules, lower)
	}
	if isKeyFile(lower) {
		a.keyFiles = append(a.keyFiles[:len(a.keyFiles):len(a.keyFiles)], relPath)
	}
	return a
}

// Analyze derives the profile for a repository. files is the full
// recursive listing; name is the repository name. The result depends only
// on its inputs.
func Analyze(files []string, name string) types.ProjectProfile {
	var acc accumulator
	for _, f := range files {
		acc = acc.step(f)
	}

	pt := Decide(acc.flags, name)
	return types.ProjectProfile{
		ProjectType:       pt,
		Flags:             acc.flags,
		FrameworkDetected: acc.framework,
		DatabaseDetected:  acc.database,
		KeyFiles:          acc.keyFiles,
		PrimaryPurpose:    PrimaryPurpose(pt),
	}
}

// Decide picks the archetype from flags and the repository name using a
// fixed priority order.
func Decide(f types.Flags, name string) types.ProjectType {
	lowerName := strings.ToLower(name)
	switch {
	case f.HasFrontend && f.HasBackend:
		return types.FullstackWebapp
	case f.HasAPI && !f.HasFrontend:
		return types.APIService
	case f.HasCLI:
		return types.CLITool
	case f.HasFrontend && !f.HasBackend:
		return types.FrontendApp
	case strings.Contains(lowerName, "bot"):
		return types.Bot
	case strings.Contains(lowerName, "lib") || strings.Contains(lowerName, "package"):
		return types.Library
	default:
		return types.Unknown
	}
}
