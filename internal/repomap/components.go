// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package repomap

import (
	"context"
	"fmt"
	"sort"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// Limits of the key components listing.
const (
	MaxComponents     = 8
	MaxSymbolsPerFile = 3
)

// KeyComponents extracts symbols from src and returns the highest-ranked
// files that define something, each with its first definitions in
// source order. It returns an empty slice when nothing was extracted.
func KeyComponents(ctx context.Context, src Source) ([]types.KeyComponent, error) {
	symbols, _, err := Extract(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("extracting symbols: %w", err)
	}
	return Select(symbols, Rank(BuildGraph(symbols), RankConfig{})), nil
}

// Select picks the components from ranked symbols. Ties break on path.
func Select(symbols []types.SymbolRef, scores map[string]float64) []types.KeyComponent {
	defsByFile := make(map[string][]types.SymbolRef)
	for _, s := range symbols {
		if s.Kind == types.Definition {
			defsByFile[s.FilePath] = append(defsByFile[s.FilePath], s)
		}
	}

	out := make([]types.KeyComponent, 0, len(defsByFile))
	for file, defs := range defsByFile {
		sort.SliceStable(defs, func(i, j int) bool { return defs[i].Line < defs[j].Line })
		var names []string
		seen := make(map[string]bool)
		for _, d := range defs {
			if len(names) == MaxSymbolsPerFile {
				break
			}
			if seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			names = append(names, d.Name)
		}
		out = append(out, types.KeyComponent{FilePath: file, Symbols: names, Score: scores[file]})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].FilePath < out[j].FilePath
	})
	if len(out) > MaxComponents {
		out = out[:MaxComponents]
	}
	return out
}
