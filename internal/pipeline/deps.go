// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"net/http"

	"github.com/pterm/pterm"

	"github.com/petar-djukic/go-readme/internal/git"
	"github.com/petar-djukic/go-readme/internal/github"
	"github.com/petar-djukic/go-readme/internal/llm"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// Checkout is a local repository copy that must be closed.
type Checkout interface {
	types.FileSource
	Head() (git.Revision, error)
	Close() error
}

// Cloner obtains a checkout.
type Cloner interface {
	Clone(ctx context.Context, opts git.CloneOptions) (Checkout, error)
}

// MetadataSource fetches repository metadata and the remote file tree.
type MetadataSource interface {
	FetchMetadata(ctx context.Context, ref github.RepoRef) (*types.RemoteRepoMetadata, error)
	FetchTree(ctx context.Context, ref github.RepoRef, branch string) (types.FileSource, error)
}

// MetadataFactory builds a metadata source for a GitHub token, which may
// be empty.
type MetadataFactory func(token string) MetadataSource

// Completer sends one prompt to the generative-text backend.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*types.StreamResponse, error)
}

// GeneratorFactory builds a completer for a credential. An empty
// credential means the process-wide default.
type GeneratorFactory func(ctx context.Context, credential string) (Completer, error)

// GitCloner clones with go-git.
type GitCloner struct{}

// Clone implements Cloner.
func (GitCloner) Clone(ctx context.Context, opts git.CloneOptions) (Checkout, error) {
	c, err := git.Clone(ctx, opts)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GitHubMetadata returns a MetadataFactory over the public GitHub API.
func GitHubMetadata(httpClient *http.Client, logger *pterm.Logger) MetadataFactory {
	return func(token string) MetadataSource {
		return githubSource{github.NewClient(token, httpClient, logger)}
	}
}

type githubSource struct {
	client *github.Client
}

func (s githubSource) FetchMetadata(ctx context.Context, ref github.RepoRef) (*types.RemoteRepoMetadata, error) {
	return s.client.FetchMetadata(ctx, ref)
}

func (s githubSource) FetchTree(ctx context.Context, ref github.RepoRef, branch string) (types.FileSource, error) {
	tree, err := s.client.Tree(ctx, ref, branch)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// BedrockGenerator returns a GeneratorFactory over Bedrock. A request
// credential replaces the configured one.
func BedrockGenerator(cfg llm.ClientConfig) GeneratorFactory {
	return func(ctx context.Context, credential string) (Completer, error) {
		c := cfg
		if credential != "" {
			c.Credential = credential
		}
		return llm.NewClient(ctx, c)
	}
}

// usageRecorder adapts a Completer to narrative.Generator and sums the
// tokens of one request.
type usageRecorder struct {
	c     Completer
	usage types.TokenUsage
}

func (u *usageRecorder) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := u.c.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	u.usage.InputTokens += resp.Usage.InputTokens
	u.usage.OutputTokens += resp.Usage.OutputTokens
	return resp.FullText, nil
}
