// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"context"
	"path"
	"strings"
	"sync"

	gh "github.com/google/go-github/v66/github"

	"github.com/petar-djukic/go-readme/internal/git"
)

// TreeSource is a file source backed by the GitHub trees and contents
// APIs. It reads files lazily and remembers what it read.
type TreeSource struct {
	client *Client
	ref    RepoRef
	branch string
	ctx    context.Context

	files []string
	dirs  map[string]bool
	all   map[string]bool

	mu    sync.Mutex
	cache map[string]string
}

// Tree fetches the recursive tree of branch. An empty branch uses the
// repository default (HEAD).
func (c *Client) Tree(ctx context.Context, ref RepoRef, branch string) (*TreeSource, error) {
	sha := branch
	if sha == "" {
		sha = "HEAD"
	}
	tree, _, err := c.git.GetTree(ctx, ref.Owner, ref.Name, sha, true)
	if err != nil {
		return nil, classifyAPIError(err)
	}
	if tree.GetTruncated() {
		c.logger.Warn("repository tree truncated", c.logger.Args("repo", ref.FullName(), "entries", len(tree.Entries)))
	}

	s := &TreeSource{
		client: c,
		ref:    ref,
		branch: branch,
		ctx:    ctx,
		dirs:   map[string]bool{},
		all:    map[string]bool{},
		cache:  map[string]string{},
	}
	var blobs []string
	for _, e := range tree.Entries {
		p := e.GetPath()
		switch e.GetType() {
		case "blob":
			blobs = append(blobs, p)
			s.all[p] = true
		case "tree":
			s.dirs[p] = true
		}
	}
	s.files = git.OrderTopDown(blobs)
	return s, nil
}

// ListFiles returns blobs in the same order a local checkout walk would.
func (s *TreeSource) ListFiles() []string {
	out := make([]string, len(s.files))
	copy(out, s.files)
	return out
}

// FileExists reports whether relPath names a file or a directory,
// including entries under skipped directories.
func (s *TreeSource) FileExists(relPath string) bool {
	p := cleanPath(relPath)
	return s.all[p] || s.dirs[p]
}

// ReadTextFile fetches the file content, or returns "" when the file does
// not exist or cannot be decoded.
func (s *TreeSource) ReadTextFile(relPath string) string {
	p := cleanPath(relPath)
	if !s.all[p] {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if text, ok := s.cache[p]; ok {
		return text
	}

	var opts *gh.RepositoryContentGetOptions
	if s.branch != "" {
		opts = &gh.RepositoryContentGetOptions{Ref: s.branch}
	}
	text := ""
	file, _, _, err := s.client.repos.GetContents(s.ctx, s.ref.Owner, s.ref.Name, p, opts)
	if err == nil && file != nil {
		if decoded, derr := file.GetContent(); derr == nil {
			text = decoded
		}
	} else if err != nil {
		s.client.logger.Debug("read remote file failed", s.client.logger.Args("path", p, "error", err.Error()))
	}
	s.cache[p] = text
	return text
}

// Root returns "" because the source has no local directory.
func (s *TreeSource) Root() string { return "" }

func cleanPath(p string) string {
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}
