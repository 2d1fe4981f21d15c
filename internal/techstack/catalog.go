// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package techstack

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/*.yaml
var catalogFS embed.FS

// badgeStyle is a catalog row: the simple-icons slug and the badge color.
type badgeStyle struct {
	Logo  string `yaml:"logo"`
	Color string `yaml:"color"`
}

// Dependency kinds in the manifest catalog.
const (
	kindFramework = "framework"
	kindDatabase  = "database"
	kindLibrary   = "library"
)

// knownDep maps a manifest dependency to a display name.
type knownDep struct {
	Match string `yaml:"match"`
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
}

type manifestCatalog struct {
	Go  []knownDep `yaml:"go"`
	NPM []knownDep `yaml:"npm"`
	Pip []knownDep `yaml:"pip"`
}

type catalogs struct {
	badges    map[string]badgeStyle
	manifests manifestCatalog
}

// loadCatalogs parses the embedded catalogs once. A parse failure is a
// build defect, so it panics.
var loadCatalogs = sync.OnceValue(func() catalogs {
	var c catalogs
	if err := decodeCatalog("catalog/badges.yaml", &c.badges); err != nil {
		panic(err)
	}
	if err := decodeCatalog("catalog/manifests.yaml", &c.manifests); err != nil {
		panic(err)
	}
	return c
})

func decodeCatalog(name string, out any) error {
	data, err := catalogFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
