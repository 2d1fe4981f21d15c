// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package repomap

import "math"

const (
	defaultDamping   = 0.85
	defaultMaxIter   = 100
	defaultTolerance = 1e-6
)

// RankConfig configures PageRank computation.
type RankConfig struct {
	Damping       float64 // default 0.85
	MaxIterations int     // default 100
	Tolerance     float64 // default 1e-6
}

// Rank runs PageRank over g and returns a score per file. Files that many
// other files reference score highest.
func Rank(g *Graph, cfg RankConfig) map[string]float64 {
	damping := cfg.Damping
	if damping == 0 {
		damping = defaultDamping
	}
	maxIter := cfg.MaxIterations
	if maxIter == 0 {
		maxIter = defaultMaxIter
	}
	tolerance := cfg.Tolerance
	if tolerance == 0 {
		tolerance = defaultTolerance
	}

	n := len(g.Nodes)
	if n == 0 {
		return map[string]float64{}
	}

	idx := make(map[string]int, n)
	for i, node := range g.Nodes {
		idx[node] = i
	}

	type outEdge struct {
		to     int
		weight float64
	}
	outEdges := make([][]outEdge, n)
	outWeight := make([]float64, n)
	for _, e := range g.Edges {
		from, okF := idx[e.From]
		to, okT := idx[e.To]
		if !okF || !okT {
			continue
		}
		outEdges[from] = append(outEdges[from], outEdge{to: to, weight: e.Weight})
		outWeight[from] += e.Weight
	}

	uniform := 1.0 / float64(n)
	rank := make([]float64, n)
	for i := range rank {
		rank[i] = uniform
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIter; iter++ {
		for i := range next {
			next[i] = (1.0 - damping) * uniform
		}
		for i := 0; i < n; i++ {
			if outWeight[i] == 0 {
				// Dangling node: spread its rank evenly.
				for j := range next {
					next[j] += damping * rank[i] * uniform
				}
				continue
			}
			for _, e := range outEdges[i] {
				next[e.to] += damping * rank[i] * (e.weight / outWeight[i])
			}
		}

		diff := 0.0
		for i := range rank {
			diff += math.Abs(next[i] - rank[i])
		}
		copy(rank, next)
		if diff < tolerance {
			break
		}
	}

	scores := make(map[string]float64, n)
	for i, node := range g.Nodes {
		scores[node] = rank[i]
	}
	return scores
}
