// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package techstack

import (
	"fmt"
	"strings"
)

const (
	shieldsBase  = "https://img.shields.io/badge/"
	neutralColor = "gray"
)

// Badge is a shields.io badge reference for one technology.
type Badge struct {
	Label string
	Logo  string
	Color string
}

// NormalizeName lowercases a technology name and strips spaces and
// periods. It is the catalog key.
func NormalizeName(name string) string {
	r := strings.NewReplacer(" ", "", ".", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// LookupBadge returns the badge for a technology name. Unknown names get
// a slug derived from the name and the neutral color.
func LookupBadge(name string) Badge {
	key := NormalizeName(name)
	if style, ok := loadCatalogs().badges[key]; ok {
		return Badge{Label: name, Logo: style.Logo, Color: style.Color}
	}
	return Badge{Label: name, Logo: slugify(key), Color: neutralColor}
}

// URL returns the badge image URL.
func (b Badge) URL() string {
	return fmt.Sprintf("%s%s-%s?style=for-the-badge&logo=%s&logoColor=white",
		shieldsBase, EscapeBadgeText(b.Label), b.Color, b.Logo)
}

// Markdown renders the badge as a Markdown image.
func (b Badge) Markdown() string {
	return fmt.Sprintf("![%s](%s)", b.Label, b.URL())
}

// EscapeBadgeText escapes a label or message for the shields.io path
// syntax, where '-' and '_' are separators.
func EscapeBadgeText(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		"-", "--",
		"_", "__",
		" ", "%20",
		"#", "%23",
		"+", "%2B",
		"/", "%2F",
	)
	return r.Replace(s)
}

// slugify keeps only lowercase letters and digits.
func slugify(key string) string {
	var b strings.Builder
	for _, r := range key {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// BadgeSet collects badges in insertion order, dropping repeats of the
// same normalized name.
type BadgeSet struct {
	seen   map[string]bool
	badges []Badge
}

// Add appends the badge for name unless an equivalent one is present.
func (s *BadgeSet) Add(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	key := NormalizeName(name)
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.badges = append(s.badges, LookupBadge(name))
}

// Badges returns a copy of the collected badges.
func (s *BadgeSet) Badges() []Badge {
	out := make([]Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

// Dedupe returns the badges for names with repeats removed, keeping the
// first occurrence of each.
func Dedupe(names []string) []Badge {
	var s BadgeSet
	for _, n := range names {
		s.Add(n)
	}
	return s.Badges()
}
