// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-readme/pkg/types"
)

func TestAnalyze_FullstackScenario(t *testing.T) {
	files := []string{
		"backend/app.py",
		"frontend/index.html",
		"frontend/App.jsx",
		"Dockerfile",
		"tests/test_app.py",
	}
	p := Analyze(files, "my-project")

	assert.True(t, p.Flags.HasFrontend)
	assert.True(t, p.Flags.HasBackend)
	assert.True(t, p.Flags.HasDocker)
	assert.True(t, p.Flags.HasTests)
	assert.Equal(t, types.FullstackWebapp, p.ProjectType)
	assert.Equal(t, "React", p.FrameworkDetected)
	assert.Equal(t, PrimaryPurpose(types.FullstackWebapp), p.PrimaryPurpose)
	assert.Equal(t, []string{"backend/app.py", "Dockerfile"}, p.KeyFiles)
}

func TestAnalyze_ClientDirectoryIsFrontend(t *testing.T) {
	files := []string{"client/src/App.jsx", "client/public/index.html", "client/package.json"}
	p := Analyze(files, "photo-gallery")

	assert.False(t, p.Flags.HasCLI)
	assert.True(t, p.Flags.HasFrontend)
	assert.Equal(t, types.FrontendApp, p.ProjectType)
}

func TestAnalyze_CLIEntryPoint(t *testing.T) {
	p := Analyze([]string{"cmd/tool/main.go", "go.mod"}, "tool")
	assert.True(t, p.Flags.HasCLI)
	assert.Equal(t, types.CLITool, p.ProjectType)
}

func TestAnalyze_Idempotent(t *testing.T) {
	files := []string{"cmd/tool/main.go", "go.mod", "internal/db/store.go"}
	first := Analyze(files, "tool")
	second := Analyze(files, "tool")
	assert.Equal(t, first, second)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	p := Analyze(nil, "")
	assert.Equal(t, types.Unknown, p.ProjectType)
	assert.Equal(t, types.Flags{}, p.Flags)
	assert.Empty(t, p.FrameworkDetected)
	assert.Empty(t, p.DatabaseDetected)
	assert.Empty(t, p.KeyFiles)
	assert.NotEmpty(t, p.PrimaryPurpose)
}

func TestAnalyze_FirstFrameworkMatchWins(t *testing.T) {
	files := []string{"manage.py", "frontend/App.jsx", "flask_app/run.py"}
	p := Analyze(files, "site")
	assert.Equal(t, "Django", p.FrameworkDetected)
}

func TestAnalyze_FirstDatabaseMatchWins(t *testing.T) {
	files := []string{"config/redis.conf", "db/postgres/init.sql"}
	p := Analyze(files, "svc")
	assert.Equal(t, "Redis", p.DatabaseDetected)
}

func TestAnalyze_DoesNotShareKeyFiles(t *testing.T) {
	files := []string{"main.py", "app.py"}
	a := Analyze(files, "x")
	require.Len(t, a.KeyFiles, 2)
	a.KeyFiles[0] = "changed"

	b := Analyze(files, "x")
	assert.Equal(t, "main.py", b.KeyFiles[0])
}

func TestDecide_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		flags types.Flags
		repo  string
		want  types.ProjectType
	}{
		{"fullstack", types.Flags{HasFrontend: true, HasBackend: true, HasAPI: true, HasCLI: true}, "bot", types.FullstackWebapp},
		{"api over cli", types.Flags{HasAPI: true, HasCLI: true}, "", types.APIService},
		{"api with frontend only", types.Flags{HasAPI: true, HasFrontend: true}, "", types.FrontendApp},
		{"cli", types.Flags{HasCLI: true, HasBackend: true}, "", types.CLITool},
		{"frontend only", types.Flags{HasFrontend: true}, "", types.FrontendApp},
		{"bot by name", types.Flags{HasBackend: true}, "Discord-Bot", types.Bot},
		{"library by lib", types.Flags{}, "mylib", types.Library},
		{"library by package", types.Flags{}, "some-package", types.Library},
		{"fallback", types.Flags{HasBackend: true}, "thing", types.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.flags, tt.repo))
		})
	}
}

func TestPrimaryPurpose_UnknownType(t *testing.T) {
	assert.Equal(t, PrimaryPurpose(types.Unknown), PrimaryPurpose(types.ProjectType("other")))
}

func TestInventory_DepthAndCount(t *testing.T) {
	files := []string{
		".env",
		"README.md",
		"a/b/c/shallow.go",
		"a/b/c/d/deep.go",
		"src/.hidden",
	}
	assert.Equal(t, types.FileInventory{"README.md", "a/b/c/shallow.go"}, Inventory(files))

	var many []string
	for i := 0; i < 40; i++ {
		many = append(many, "f"+string(rune('a'+i%26))+".txt")
	}
	inv := Inventory(many)
	assert.Len(t, inv, MaxInventoryFiles)
	assert.Equal(t, many[:MaxInventoryFiles], []string(inv))
}

func TestInventory_Empty(t *testing.T) {
	assert.Empty(t, Inventory(nil))
}
