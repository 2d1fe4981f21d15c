// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-readme/pkg/types"
)

func fullstackInput() Input {
	return Input{
		Name:     "my-project",
		Language: "Python",
		Profile: types.ProjectProfile{
			ProjectType:       types.FullstackWebapp,
			Flags:             types.Flags{HasFrontend: true, HasBackend: true, HasDocker: true, HasTests: true},
			FrameworkDetected: "React",
		},
		Files: []string{"backend/app.py", "frontend/index.html", "frontend/App.jsx", "Dockerfile", "tests/test_app.py"},
	}
}

func TestOverview_FourClauses(t *testing.T) {
	got := Overview(fullstackInput())
	assert.True(t, strings.HasPrefix(got, "my-project is a full-stack web application"))
	assert.Contains(t, got, " It is built with React on Python. ")
	assert.Contains(t, got, " It includes containerized deployment and an automated test suite. ")
	assert.NotContains(t, got, "  ")
}

func TestOverview_DescriptionReplacesFirstClause(t *testing.T) {
	in := fullstackInput()
	in.Description = "A todo tracker for teams"
	got := Overview(in)
	assert.True(t, strings.HasPrefix(got, "A todo tracker for teams. It is built with"))
}

func TestOverview_UnknownDefaults(t *testing.T) {
	got := Overview(Input{})
	assert.Equal(t, "This project is a software project. Its source is organized as a conventional repository. "+
		"It contains the code and assets needed to build and run it. Contributions and feedback are welcome as the project evolves.", got)
}

func TestOverview_DatabaseOnlyStack(t *testing.T) {
	in := Input{Name: "x", Profile: types.ProjectProfile{ProjectType: types.APIService, DatabaseDetected: "Redis"}}
	assert.Contains(t, Overview(in), "It is built with Redis for persistence.")
}

func TestOverview_Deterministic(t *testing.T) {
	in := fullstackInput()
	assert.Equal(t, Generate(in), Generate(in))
}

func TestFeatures_MergedAndDeduplicated(t *testing.T) {
	in := fullstackInput()
	in.Topics = []string{"machine-learning", "testing"}
	got := Features(in)

	assert.Equal(t, archetypeFeatures[types.FullstackWebapp][0], got[0])
	assert.Contains(t, got, "Testing: Automated tests guard against regressions.")
	assert.Contains(t, got, "Machine Learning: Core functionality for machine learning.")
	assert.NotContains(t, got, "Testing: Core functionality for testing.")

	seen := map[string]bool{}
	for _, f := range got {
		key := strings.ToLower(Label(f))
		assert.False(t, seen[key], "duplicate %q", f)
		seen[key] = true
	}
}

func TestScanFeatures(t *testing.T) {
	got := ScanFeatures([]string{"src/auth/login.go", "internal/cache/lru.go", "README.md"})
	assert.Equal(t, []string{
		"Authentication: Secure sign-up, login and session handling.",
		"Caching: Faster responses by caching frequently used data.",
	}, got)
	assert.Empty(t, ScanFeatures(nil))
}

func TestScanFeatures_ShortTriggersNeedWholeTokens(t *testing.T) {
	tests := []struct {
		name  string
		files []string
	}{
		{"sse inside words", []string{"src/assets/logo.png", "src/classes/user.py", "lib/processes.go"}},
		{"auth inside author", []string{"AUTHORS", "docs_author.txt"}},
		{"push prefix", []string{"pushpin/map.go"}},
		{"api inside words", []string{"rapid/capital.go"}},
		{"spec inside words", []string{"pubspec.yaml", "inspector/main.go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ScanFeatures(tt.files))
		})
	}
}

func TestScanFeatures_WholeTokenTriggers(t *testing.T) {
	tests := []struct {
		file  string
		label string
	}{
		{"server/sse.go", "Real-Time Updates"},
		{"src/auth.ts", "Authentication"},
		{"workers/push/sender.py", "Notifications"},
		{"api/v1/users.go", "API Endpoints"},
		{"store/cart_test.go", "Testing"},
		{"spec/user_spec.rb", "Testing"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			var labels []string
			for _, b := range ScanFeatures([]string{tt.file}) {
				labels = append(labels, Label(b))
			}
			assert.Contains(t, labels, tt.label)
		})
	}
}

func TestTopicFeatures_LimitedToFive(t *testing.T) {
	got := TopicFeatures([]string{"a", "b", "c", "d", "e", "f", ""})
	assert.Len(t, got, 5)
	assert.Equal(t, "A: Core functionality for a.", got[0])
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Search", Label("Search: Find things."))
	assert.Equal(t, "free text", Label(" free text "))
}

func TestParseResponse(t *testing.T) {
	text := "## Overview\n\nThis service turns repository metadata into polished documentation for developers.\n\n" +
		"- **Fast**: Generates in seconds.\n* Offline mode\n• ✅ Caching layer\n\nTrailing prose is ignored."
	res, err := ParseResponse(text)
	require.NoError(t, err)
	assert.Equal(t, "This service turns repository metadata into polished documentation for developers.", res.Overview)
	assert.Equal(t, []string{"Fast: Generates in seconds.", "Offline mode", "Caching layer"}, res.Bullets)
}

func TestParseResponse_Errors(t *testing.T) {
	_, err := ParseResponse("   \n ")
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = ParseResponse("too short")
	assert.ErrorIs(t, err, ErrUnusableResponse)
}

func TestParseResponse_BulletsOnly(t *testing.T) {
	res, err := ParseResponse("- One\n- Two")
	require.NoError(t, err)
	assert.Empty(t, res.Overview)
	assert.Len(t, res.Bullets, 2)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("abc", "abc"))
	assert.Equal(t, 0.0, similarity("", "abc"))
	assert.Greater(t, similarity("caching layer", "caching layers"), 0.9)
	assert.Less(t, similarity("caching", "payments"), 0.5)
}
