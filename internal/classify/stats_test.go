// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguageStats_Empty(t *testing.T) {
	assert.Empty(t, LanguageStats(nil))
	assert.Empty(t, LanguageStats([]string{"LICENSE", "Makefile"}))
}

func TestLanguageStats_Percentages(t *testing.T) {
	stats := LanguageStats([]string{"a.py", "b.py", "c.js", "README"})
	require.Len(t, stats, 2)
	assert.Equal(t, "Python", stats[0].Name)
	assert.Equal(t, 66.7, stats[0].Percentage)
	assert.Equal(t, "JavaScript", stats[1].Name)
	assert.Equal(t, 33.3, stats[1].Percentage)
}

func TestLanguageStats_TiesKeepFirstSeenOrder(t *testing.T) {
	stats := LanguageStats([]string{"a.go", "b.rs", "c.rb"})
	require.Len(t, stats, 3)
	assert.Equal(t, "Go", stats[0].Name)
	assert.Equal(t, "Rust", stats[1].Name)
	assert.Equal(t, "Ruby", stats[2].Name)
	for _, s := range stats {
		assert.Equal(t, 33.3, s.Percentage)
	}
}

func TestLanguageStats_SumsToAboutHundred(t *testing.T) {
	paths := []string{"a.py", "b.py", "c.py", "d.js", "e.js", "f.css", "g.html"}
	var sum float64
	for _, s := range LanguageStats(paths) {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 0.5)
}

func TestLanguageStats_SortedDescending(t *testing.T) {
	stats := LanguageStats([]string{"a.js", "b.py", "c.py", "d.py", "e.js", "f.go"})
	require.Len(t, stats, 3)
	for i := 1; i < len(stats); i++ {
		assert.GreaterOrEqual(t, stats[i-1].Percentage, stats[i].Percentage)
	}
	assert.Equal(t, 50.0, stats[0].Percentage)
}
