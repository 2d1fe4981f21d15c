// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package repomap

import (
	"sort"

	"github.com/petar-djukic/go-readme/pkg/types"
)

const (
	longNameThreshold = 8
	longNameWeight    = 1.0
	shortNameWeight   = 0.5
	underscoreWeight  = 0.1
	commonThreshold   = 5
	commonFactor      = 0.1
)

// Edge is a weighted reference from one file to a file defining the
// referenced symbol.
type Edge struct {
	From      string
	To        string
	Reference string
	Weight    float64
}

// Graph is a directed multigraph where nodes are files and edges
// represent cross-file symbol references.
type Graph struct {
	Nodes []string // sorted file paths
	Edges []Edge
	defs  map[string][]string // symbol name to defining files
}

// BuildGraph constructs the reference graph from extracted symbols. Node
// and edge order is deterministic.
func BuildGraph(symbols []types.SymbolRef) *Graph {
	g := &Graph{defs: make(map[string][]string)}

	nodeSet := make(map[string]bool)
	for _, s := range symbols {
		nodeSet[s.FilePath] = true
		if s.Kind == types.Definition && !contains(g.defs[s.Name], s.FilePath) {
			g.defs[s.Name] = append(g.defs[s.Name], s.FilePath)
		}
	}
	for f := range nodeSet {
		g.Nodes = append(g.Nodes, f)
	}
	sort.Strings(g.Nodes)

	type edgeKey struct {
		from, to, ref string
	}
	edgeCounts := make(map[edgeKey]int)
	for _, s := range symbols {
		if s.Kind != types.Reference {
			continue
		}
		for _, defFile := range g.defs[s.Name] {
			if defFile == s.FilePath {
				continue
			}
			edgeCounts[edgeKey{from: s.FilePath, to: defFile, ref: s.Name}]++
		}
	}

	for key, count := range edgeCounts {
		g.Edges = append(g.Edges, Edge{
			From:      key.from,
			To:        key.to,
			Reference: key.ref,
			Weight:    float64(count) * identifierWeight(key.ref) * commonWeight(key.ref, g.defs),
		})
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		a, b := g.Edges[i], g.Edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Reference < b.Reference
	})
	return g
}

// identifierWeight favors long names and discounts private-looking ones.
func identifierWeight(name string) float64 {
	if len(name) > 0 && name[0] == '_' {
		return underscoreWeight
	}
	if len(name) >= longNameThreshold {
		return longNameWeight
	}
	return shortNameWeight
}

// commonWeight discounts symbols defined in many files.
func commonWeight(name string, defs map[string][]string) float64 {
	if len(defs[name]) >= commonThreshold {
		return commonFactor
	}
	return 1.0
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
