// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package github fetches repository metadata and file trees from the
// GitHub REST API. The core repository lookup is fatal on failure; every
// other sub-fetch degrades to an empty value on its own.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v66/github"
	"github.com/pterm/pterm"

	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// RepositoriesAPI is the subset of the repositories service the client
// uses. *gh.RepositoriesService implements it.
type RepositoriesAPI interface {
	Get(ctx context.Context, owner, repo string) (*gh.Repository, *gh.Response, error)
	License(ctx context.Context, owner, repo string) (*gh.RepositoryLicense, *gh.Response, error)
	ListAllTopics(ctx context.Context, owner, repo string) ([]string, *gh.Response, error)
	GetReadme(ctx context.Context, owner, repo string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, *gh.Response, error)
	ListContributors(ctx context.Context, owner, repo string, opts *gh.ListContributorsOptions) ([]*gh.Contributor, *gh.Response, error)
	ListLanguages(ctx context.Context, owner, repo string) (map[string]int, *gh.Response, error)
	ListReleases(ctx context.Context, owner, repo string, opts *gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *gh.RepositoryContentGetOptions) (*gh.RepositoryContent, []*gh.RepositoryContent, *gh.Response, error)
}

// GitAPI is the subset of the git data service the client uses.
type GitAPI interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*gh.Tree, *gh.Response, error)
}

// Client fetches repository data.
type Client struct {
	repos  RepositoriesAPI
	git    GitAPI
	logger *pterm.Logger
}

// NewClient creates a client for the public GitHub API. An empty token
// makes unauthenticated requests, which are rate limited.
func NewClient(token string, httpClient *http.Client, logger *pterm.Logger) *Client {
	c := gh.NewClient(httpClient)
	if token != "" {
		c = c.WithAuthToken(token)
	}
	return NewClientWithAPI(c.Repositories, c.Git, logger)
}

// NewClientWithAPI creates a client over the given services. Tests use it
// to inject fakes.
func NewClientWithAPI(repos RepositoriesAPI, git GitAPI, logger *pterm.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{repos: repos, git: git, logger: logger}
}

// classifyAPIError maps a failed core request to a source error.
func classifyAPIError(err error) error {
	var rle *gh.RateLimitError
	if errors.As(err, &rle) {
		return fmt.Errorf("%w: GitHub API rate limit exceeded, provide a token: %v", types.ErrSourceUnavailable, err)
	}
	var ere *gh.ErrorResponse
	if errors.As(err, &ere) && ere.Response != nil {
		switch ere.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %v", types.ErrRepoNotFound, err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %v", types.ErrAuthRequired, err)
		}
	}
	return fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
}
