// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package readme is the public interface of go-readme: it turns a GitHub
// repository URL into a generated README.md.
package readme

import (
	"context"
	"errors"
	"time"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// Errors returned by Generate. Fatal source errors are shared with the
// internal providers.
var (
	ErrInvalidConfig      = errors.New("invalid config")
	ErrInvalidRepoRef     = types.ErrInvalidRepoRef
	ErrRepoNotFound       = types.ErrRepoNotFound
	ErrAuthRequired       = types.ErrAuthRequired
	ErrSourceUnavailable  = types.ErrSourceUnavailable
	ErrCredentialRequired = errors.New("credential required for AI generation")
	ErrAINotConfigured    = errors.New("AI generation is not configured")
)

// Source modes.
const (
	ModeClone = "clone"
	ModeAPI   = "api"
)

// Config configures a Generator. It is read once; Generate never changes
// it.
type Config struct {
	GitHubToken  string        // Default token for clones and API calls
	Mode         string        // clone or api (default clone)
	CloneDepth   int           // default 1
	CloneTimeout time.Duration // default 2m
	TempDir      string        // Parent of checkout directories (default os.TempDir)

	Model      string        // Bedrock model ID (default Claude 3.5 Haiku)
	Region     string        // AWS region (default us-east-1)
	Profile    string        // AWS shared config profile
	Credential string        // Default "ACCESS_KEY_ID:SECRET_ACCESS_KEY"
	MaxTokens  int           // default 1024
	LLMTimeout time.Duration // default 60s

	ListenAddr string // HTTP listen address (default :8080)
	LogLevel   string // trace, debug, info, warn, error (default info)
	LogFormat  string // text or json (default text)
}

// Request is one README generation request.
type Request struct {
	RepoURL    string // https://github.com/<owner>/<repo> (required)
	Mode       string // overrides Config.Mode
	Token      string // overrides Config.GitHubToken
	AI         bool   // augment the prose with the generative-text backend
	Credential string // overrides Config.Credential

	Twitter   string
	LinkedIn  string
	Coffee    string // Buy Me a Coffee handle
	Name      string // contact name
	Email     string
	Portfolio string
}

// Result holds the outcome of a generation.
type Result struct {
	Markdown    string                    `json:"readme"`
	Name        string                    `json:"name"`
	URL         string                    `json:"url"`
	ProjectType string                    `json:"project_type"`
	Profile     types.ProjectProfile      `json:"profile"`
	Languages   []types.LanguageStat      `json:"languages"`
	Metadata    *types.RemoteRepoMetadata `json:"repo_data,omitempty"`
	Partial     []string                  `json:"partial,omitempty"`
	Augmented   bool                      `json:"augmented"`
	TokensUsed  types.TokenUsage          `json:"tokens_used"`
	Commit      string                    `json:"commit,omitempty"`
	Elapsed     time.Duration             `json:"elapsed"`
}

// Generator produces READMEs. Implementations are safe for concurrent
// use; requests share no state.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
