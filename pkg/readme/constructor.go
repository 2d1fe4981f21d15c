// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package readme

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pterm/pterm"

	"github.com/petar-djukic/go-readme/internal/document"
	"github.com/petar-djukic/go-readme/internal/llm"
	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/internal/pipeline"
)

const (
	defaultCloneDepth   = 1
	defaultCloneTimeout = 2 * time.Minute
	defaultModel        = "anthropic.claude-3-5-haiku-20241022-v1:0"
	defaultRegion       = "us-east-1"
	defaultMaxTokens    = 1024
	defaultLLMTimeout   = 60 * time.Second
	defaultListenAddr   = ":8080"
)

// Option customizes New.
type Option func(*options)

type options struct {
	logger     *pterm.Logger
	httpClient *http.Client
	deps       *pipeline.Deps
}

// WithLogger sets the logger instead of building one from Config.
func WithLogger(l *pterm.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient sets the HTTP client used for GitHub API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// withDeps replaces the pipeline collaborators. Tests use it.
func withDeps(d pipeline.Deps) Option {
	return func(o *options) { o.deps = &d }
}

// New validates cfg, applies defaults and returns a ready Generator. It
// does not contact any service.
func New(cfg Config, opts ...Option) (Generator, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		l, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		o.logger = l
	}

	deps := pipeline.Deps{
		Cloner:   pipeline.GitCloner{},
		Metadata: pipeline.GitHubMetadata(o.httpClient, o.logger),
	}
	deps.Generator = pipeline.BedrockGenerator(llm.ClientConfig{
		ModelID:    cfg.Model,
		Region:     cfg.Region,
		Profile:    cfg.Profile,
		Credential: cfg.Credential,
		Timeout:    cfg.LLMTimeout,
		MaxTokens:  cfg.MaxTokens,
	})
	if o.deps != nil {
		deps = *o.deps
	}
	deps.Token = cfg.GitHubToken
	deps.CloneDepth = cfg.CloneDepth
	deps.CloneTimeout = cfg.CloneTimeout
	deps.TempDir = cfg.TempDir
	deps.Logger = o.logger

	return &generator{
		cfg:       cfg,
		runner:    pipeline.NewRunner(deps),
		aiEnabled: deps.Generator != nil,
	}, nil
}

// generator adapts pipeline.Runner to the public Generator interface.
type generator struct {
	cfg       Config
	runner    *pipeline.Runner
	aiEnabled bool
}

func (g *generator) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.RepoURL == "" {
		return nil, fmt.Errorf("%w: repository URL is required", ErrInvalidRepoRef)
	}
	mode := req.Mode
	if mode == "" {
		mode = g.cfg.Mode
	}
	if !validMode(mode) {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, mode)
	}
	if req.AI && !g.aiEnabled {
		return nil, ErrAINotConfigured
	}

	pr, err := g.runner.Run(ctx, pipeline.Request{
		RepoURL:    req.RepoURL,
		Mode:       pipeline.Mode(mode),
		Token:      req.Token,
		Augment:    req.AI,
		Credential: req.Credential,
		Social:     document.Social{Twitter: req.Twitter, LinkedIn: req.LinkedIn},
		Coffee:     req.Coffee,
		Contact:    document.Contact{Name: req.Name, Email: req.Email, Portfolio: req.Portfolio},
	})
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownMode) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return nil, err
	}

	res := &Result{
		Markdown:    pr.Markdown,
		Name:        pr.Name,
		URL:         pr.URL,
		ProjectType: pr.Profile.ProjectType.String(),
		Profile:     pr.Profile,
		Languages:   pr.Languages,
		Metadata:    pr.Metadata,
		Partial:     pr.Partial,
		Augmented:   pr.Augmented,
		TokensUsed:  pr.Usage,
		Elapsed:     pr.Elapsed,
	}
	if pr.Revision != nil {
		res.Commit = pr.Revision.Hash
	}
	return res, nil
}

// validateConfig checks field values. Every field is optional.
func validateConfig(cfg Config) error {
	if cfg.Mode != "" && !validMode(cfg.Mode) {
		return fmt.Errorf("Mode must be %q or %q, got %q", ModeClone, ModeAPI, cfg.Mode)
	}
	if cfg.CloneDepth < 0 {
		return fmt.Errorf("CloneDepth must not be negative")
	}
	if cfg.CloneTimeout < 0 || cfg.LLMTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if cfg.MaxTokens < 0 {
		return fmt.Errorf("MaxTokens must not be negative")
	}
	if cfg.Credential != "" {
		if _, err := llm.ParseCredential(cfg.Credential); err != nil {
			return err
		}
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = ModeClone
	}
	if cfg.CloneDepth == 0 {
		cfg.CloneDepth = defaultCloneDepth
	}
	if cfg.CloneTimeout == 0 {
		cfg.CloneTimeout = defaultCloneTimeout
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.LLMTimeout == 0 {
		cfg.LLMTimeout = defaultLLMTimeout
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
}

// ApplyDefaults returns cfg with defaults filled in, for callers that
// need the effective values, such as the listen address.
func ApplyDefaults(cfg Config) Config {
	applyDefaults(&cfg)
	return cfg
}

func validMode(m string) bool {
	return m == ModeClone || m == ModeAPI
}
