// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package git provides the local checkout source: a shallow clone of a
// remote repository into a per-request temporary directory, or an
// existing directory on disk.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/google/uuid"

	"github.com/petar-djukic/go-readme/pkg/types"
)

const (
	defaultDepth  = 1
	tempDirPrefix = "go-readme-"
	tokenUsername = "x-access-token"
)

// CloneOptions configures a shallow clone.
type CloneOptions struct {
	URL     string        // Remote URL (required)
	Token   string        // Optional token for private repositories
	Depth   int           // History depth (default 1)
	Timeout time.Duration // Zero means no timeout beyond ctx
	TempDir string        // Parent of the checkout directory (default os.TempDir)
}

// Checkout is a repository on local disk. It implements types.FileSource.
type Checkout struct {
	root  string
	repo  *gogit.Repository // nil when the directory is not a git repository
	owned bool              // Close removes root
}

// Revision identifies the checked-out commit.
type Revision struct {
	Hash    string
	Subject string
	Author  string
	When    time.Time
}

// Clone shallow-clones opts.URL into a fresh directory. The caller must
// Close the checkout on every path; Close removes the directory. Clone
// errors are classified into types.ErrRepoNotFound, types.ErrAuthRequired
// or types.ErrSourceUnavailable.
func Clone(ctx context.Context, opts CloneOptions) (*Checkout, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("%w: empty clone URL", types.ErrInvalidRepoRef)
	}
	if opts.Depth <= 0 {
		opts.Depth = defaultDepth
	}
	parent := opts.TempDir
	if parent == "" {
		parent = os.TempDir()
	}

	dir := filepath.Join(parent, tempDirPrefix+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: creating checkout directory: %v", types.ErrSourceUnavailable, err)
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cloneOpts := &gogit.CloneOptions{
		URL:          opts.URL,
		Depth:        opts.Depth,
		SingleBranch: true,
		Tags:         gogit.NoTags,
	}
	if opts.Token != "" {
		cloneOpts.Auth = &http.BasicAuth{Username: tokenUsername, Password: opts.Token}
	}

	repo, err := gogit.PlainCloneContext(ctx, dir, false, cloneOpts)
	if err != nil {
		os.RemoveAll(dir)
		return nil, classifyCloneError(err)
	}
	return &Checkout{root: dir, repo: repo, owned: true}, nil
}

// Open wraps an existing directory. Close leaves it in place. The
// directory does not need to be a git repository.
func Open(dir string) (*Checkout, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", types.ErrRepoNotFound, dir)
	}
	c := &Checkout{root: dir}
	if repo, err := gogit.PlainOpen(dir); err == nil {
		c.repo = repo
	}
	return c, nil
}

// Root returns the checkout directory.
func (c *Checkout) Root() string {
	return c.root
}

// Close releases the checkout. It is safe to call more than once.
func (c *Checkout) Close() error {
	if !c.owned || c.root == "" {
		return nil
	}
	root := c.root
	c.root = ""
	if err := os.RemoveAll(root); err != nil {
		return fmt.Errorf("removing checkout: %w", err)
	}
	return nil
}

// ErrNoRepository is returned by Head when the checkout has no git data.
var ErrNoRepository = errors.New("not a git repository")

// Head returns the checked-out commit.
func (c *Checkout) Head() (Revision, error) {
	if c.repo == nil {
		return Revision{}, ErrNoRepository
	}
	head, err := c.repo.Head()
	if err != nil {
		return Revision{}, fmt.Errorf("getting HEAD: %w", err)
	}
	commit, err := c.repo.CommitObject(head.Hash())
	if err != nil {
		return Revision{}, fmt.Errorf("getting commit: %w", err)
	}
	subject, _, _ := strings.Cut(commit.Message, "\n")
	return Revision{
		Hash:    head.Hash().String(),
		Subject: strings.TrimSpace(subject),
		Author:  commit.Author.Name,
		When:    commit.Author.When,
	}, nil
}

// classifyCloneError maps go-git errors to source errors. Typed transport
// errors are checked first, then the error text.
func classifyCloneError(err error) error {
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound):
		return fmt.Errorf("%w: %v", types.ErrRepoNotFound, err)
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed):
		return fmt.Errorf("%w: %v", types.ErrAuthRequired, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "repository not found"):
		return fmt.Errorf("%w: %v", types.ErrRepoNotFound, err)
	case strings.Contains(msg, "authentication failed"),
		strings.Contains(msg, "authentication required"),
		strings.Contains(msg, "authorization failed"):
		return fmt.Errorf("%w: %v", types.ErrAuthRequired, err)
	default:
		return fmt.Errorf("%w: %v", types.ErrSourceUnavailable, err)
	}
}
