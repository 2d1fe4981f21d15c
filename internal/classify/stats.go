// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/petar-djukic/go-readme/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// LanguageStats computes the per-language share of recognized files.
// Only files with a recognized extension count toward the total. Entries
// are ordered by percentage, descending; ties keep first-encountered order.
func LanguageStats(paths []string) []types.LanguageStat {
	counts := make(map[string]int)
	var order []string
	total := 0

	for _, p := range paths {
		lang, ok := Language(p)
		if !ok {
			continue
		}
		if _, seen := counts[lang]; !seen {
			order = append(order, lang)
		}
		counts[lang]++
		total++
	}

	if total == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	denom := decimal.NewFromInt(int64(total))
	stats := make([]types.LanguageStat, 0, len(order))
	for _, lang := range order {
		pct, _ := decimal.NewFromInt(int64(counts[lang])).
			Mul(hundred).
			DivRound(denom, 4).
			Round(1).
			Float64()
		stats = append(stats, types.LanguageStat{Name: lang, Percentage: pct})
	}
	return stats
}
