// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// RepoRef names a repository on GitHub.
type RepoRef struct {
	Owner string
	Name  string
}

// FullName returns "owner/name".
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// URL returns the repository web URL.
func (r RepoRef) URL() string {
	return "https://github.com/" + r.FullName()
}

// CloneURL returns the HTTPS clone URL.
func (r RepoRef) CloneURL() string {
	return r.URL() + ".git"
}

// ParseRepoURL extracts owner and name from a GitHub repository URL. The
// host must be github.com and the path must have at least two segments.
// A trailing ".git", the query and the fragment are ignored.
func ParseRepoURL(raw string) (RepoRef, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return RepoRef{}, fmt.Errorf("%w: %v", types.ErrInvalidRepoRef, err)
	}
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return RepoRef{}, fmt.Errorf("%w: only GitHub repository URLs are supported", types.ErrInvalidRepoRef)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return RepoRef{}, fmt.Errorf("%w: expected https://github.com/<owner>/<repo>", types.ErrInvalidRepoRef)
	}

	name := strings.TrimSuffix(parts[1], ".git")
	if name == "" {
		return RepoRef{}, fmt.Errorf("%w: empty repository name", types.ErrInvalidRepoRef)
	}
	return RepoRef{Owner: parts[0], Name: name}, nil
}
