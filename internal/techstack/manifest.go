// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package techstack

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/mod/modfile"
)

// Source is the part of the repository source that manifest detection
// needs.
type Source interface {
	FileExists(relPath string) bool
	ReadTextFile(relPath string) string
}

// PackageJSON is the subset of package.json the composer reads.
type PackageJSON struct {
	Name            string            `json:"name"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// ParsePackageJSON decodes package.json content.
func ParsePackageJSON(content string) (PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return PackageJSON{}, fmt.Errorf("parsing package.json: %w", err)
	}
	return pkg, nil
}

// HasScript reports whether the named npm script is defined.
func (p PackageJSON) HasScript(name string) bool {
	_, ok := p.Scripts[name]
	return ok
}

func (p PackageJSON) deps() map[string]bool {
	out := make(map[string]bool, len(p.Dependencies)+len(p.DevDependencies))
	for d := range p.Dependencies {
		out[d] = true
	}
	for d := range p.DevDependencies {
		out[d] = true
	}
	return out
}

// ParseGoMod returns the direct requirements of a go.mod file.
func ParseGoMod(content string) ([]string, error) {
	f, err := modfile.ParseLax("go.mod", []byte(content), nil)
	if err != nil {
		return nil, fmt.Errorf("parsing go.mod: %w", err)
	}
	var paths []string
	for _, r := range f.Require {
		if r.Indirect {
			continue
		}
		paths = append(paths, r.Mod.Path)
	}
	return paths, nil
}

// ParseRequirements returns the lowercase package names listed in a
// requirements.txt file. Options, includes and comments are skipped.
func ParseRequirements(content string) []string {
	var names []string
	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "-") {
			continue
		}
		if i := strings.IndexAny(line, "=<>!~[;@ "); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			names = append(names, strings.ToLower(line))
		}
	}
	return names
}

// Manifests is what the composer learned from dependency manifests.
type Manifests struct {
	Frameworks []string
	Databases  []string
	Libraries  []string
	NPMStart   bool // package.json defines scripts.start
}

// ReadManifests inspects go.mod, package.json and requirements.txt at the
// repository root. Missing or malformed manifests are skipped.
func ReadManifests(src Source) Manifests {
	var m Manifests
	cat := loadCatalogs().manifests

	if src.FileExists("go.mod") {
		if paths, err := ParseGoMod(src.ReadTextFile("go.mod")); err == nil {
			set := make(map[string]bool, len(paths))
			for _, p := range paths {
				set[p] = true
			}
			m.add(cat.Go, func(match string) bool {
				for p := range set {
					if p == match || strings.HasPrefix(p, match+"/") {
						return true
					}
				}
				return false
			})
		}
	}

	if src.FileExists("package.json") {
		if pkg, err := ParsePackageJSON(src.ReadTextFile("package.json")); err == nil {
			deps := pkg.deps()
			m.add(cat.NPM, func(match string) bool { return deps[match] })
			m.NPMStart = pkg.HasScript("start")
		}
	}

	if src.FileExists("requirements.txt") {
		set := make(map[string]bool)
		for _, n := range ParseRequirements(src.ReadTextFile("requirements.txt")) {
			set[n] = true
		}
		m.add(cat.Pip, func(match string) bool { return set[match] })
	}

	return m
}

// add appends catalog entries accepted by present, in catalog order and
// without repeats.
func (m *Manifests) add(entries []knownDep, present func(string) bool) {
	for _, e := range entries {
		if !present(e.Match) {
			continue
		}
		switch e.Kind {
		case kindFramework:
			m.Frameworks = appendUnique(m.Frameworks, e.Name)
		case kindDatabase:
			m.Databases = appendUnique(m.Databases, e.Name)
		default:
			m.Libraries = appendUnique(m.Libraries, e.Name)
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if NormalizeName(x) == NormalizeName(v) {
			return list
		}
	}
	return append(list, v)
}
