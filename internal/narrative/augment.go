// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package narrative

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxAugmentBullets  = 5
	duplicateThreshold = 0.8
)

// ErrNoGenerator is returned by Augment when no generator is configured.
var ErrNoGenerator = errors.New("no text generator configured")

// Generator produces text for a prompt.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Augment asks gen to improve base. A long enough prose response replaces
// the overview, and up to five new bullets are appended. Bullets that are
// near-duplicates of existing ones are dropped.
//
// On any failure Augment returns base unchanged together with the error;
// callers treat the error as informational.
func Augment(ctx context.Context, gen Generator, prompt string, base Narrative) (Narrative, error) {
	if gen == nil {
		return base, ErrNoGenerator
	}

	text, err := gen.GenerateText(ctx, prompt)
	if err != nil {
		return base, fmt.Errorf("generating text: %w", err)
	}

	resp, err := ParseResponse(text)
	if err != nil {
		return base, fmt.Errorf("parsing generated text: %w", err)
	}

	out := base.clone()
	if len(resp.Overview) > minOverviewLen {
		out.Overview = resp.Overview
	}

	added := 0
	for _, b := range resp.Bullets {
		if added == maxAugmentBullets {
			break
		}
		if isNearDuplicate(b, out.Features) {
			continue
		}
		out.Features = append(out.Features, b)
		added++
	}
	return out, nil
}

func isNearDuplicate(bullet string, existing []string) bool {
	b := strings.ToLower(bullet)
	label := strings.ToLower(Label(bullet))
	for _, e := range existing {
		if strings.ToLower(Label(e)) == label {
			return true
		}
		if similarity(strings.ToLower(e), b) >= duplicateThreshold {
			return true
		}
	}
	return false
}

// similarity computes a Levenshtein-based ratio between 0.0 and 1.0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	distance := dmp.DiffLevenshtein(diffs)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1.0 - float64(distance)/float64(maxLen)
}
