// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package narrative

import (
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when the generated text is blank.
var ErrEmptyResponse = errors.New("empty response")

// ErrUnusableResponse is returned when the generated text has neither a
// long enough overview nor any bullets.
var ErrUnusableResponse = errors.New("unusable response")

// minOverviewLen is the length an overview must exceed to be used.
const minOverviewLen = 50

// bulletMarkers are the line prefixes recognized as list items.
var bulletMarkers = []string{"- ", "* ", "• "}

// Response is the parsed form of generated text.
type Response struct {
	Overview string   // Prose before the first bullet
	Bullets  []string // Bullet text with markers and emphasis stripped
}

// ParseResponse splits generated text into a leading overview and a list
// of bullets. Headings and code fences are ignored. Prose after the first
// bullet is not part of the overview.
func ParseResponse(text string) (*Response, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}

	res := &Response{}
	var overview []string
	inBullets := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isFence(line) || strings.HasPrefix(line, "#") {
			continue
		}
		if item, ok := bulletText(line); ok {
			inBullets = true
			if item != "" {
				res.Bullets = append(res.Bullets, item)
			}
			continue
		}
		if !inBullets {
			overview = append(overview, line)
		}
	}

	res.Overview = strings.Join(overview, " ")
	if len(res.Overview) <= minOverviewLen && len(res.Bullets) == 0 {
		return nil, ErrUnusableResponse
	}
	return res, nil
}

// bulletText strips a bullet marker and emphasis from a list line.
func bulletText(line string) (string, bool) {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			item := strings.TrimSpace(strings.TrimPrefix(line, m))
			item = strings.TrimSpace(strings.TrimPrefix(item, "✅"))
			item = strings.ReplaceAll(item, "**", "")
			return strings.TrimSpace(item), true
		}
	}
	return "", false
}

func isFence(line string) bool {
	return strings.HasPrefix(line, "```")
}
