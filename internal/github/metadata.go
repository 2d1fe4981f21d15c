// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	gh "github.com/google/go-github/v66/github"

	"github.com/petar-djukic/go-readme/internal/markdown"
	"github.com/petar-djukic/go-readme/pkg/types"
)

// Sub-fetch limits.
const (
	MaxContributors    = 5
	MaxReleases        = 3
	MaxReleaseBodyLen  = 200
	releaseEllipsis    = "..."
	noDescriptionLabel = "No description provided"
)

// Field names used in FieldError and RemoteRepoMetadata.Partial.
const (
	FieldLicense      = "license"
	FieldTopics       = "topics"
	FieldReadme       = "readme"
	FieldContributors = "contributors"
	FieldLanguages    = "languages"
	FieldReleases     = "releases"
)

// FieldError reports a failed optional sub-fetch.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Result is the outcome of one sub-fetch: a value, or an error and the
// zero value.
type Result[T any] struct {
	Value T
	Err   error
}

func fetch[T any](field string, fn func() (T, error)) Result[T] {
	v, err := fn()
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: &FieldError{Field: field, Err: err}}
	}
	return Result[T]{Value: v}
}

// FetchMetadata fetches the metadata record for a repository. Only the
// core lookup can fail the call; sub-fetch failures are logged, recorded
// in Partial and leave their fields empty.
func (c *Client) FetchMetadata(ctx context.Context, ref RepoRef) (*types.RemoteRepoMetadata, error) {
	repo, _, err := c.repos.Get(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, classifyAPIError(err)
	}

	md := &types.RemoteRepoMetadata{
		Name:            repo.GetName(),
		FullName:        repo.GetFullName(),
		Description:     repo.GetDescription(),
		URL:             repo.GetHTMLURL(),
		CreatedAt:       repo.GetCreatedAt().Time,
		UpdatedAt:       repo.GetUpdatedAt().Time,
		Language:        repo.GetLanguage(),
		DefaultBranch:   repo.GetDefaultBranch(),
		ForksCount:      repo.GetForksCount(),
		StargazersCount: repo.GetStargazersCount(),
		OpenIssuesCount: repo.GetOpenIssuesCount(),
		Topics:          []string{},
		Contributors:    []types.Contributor{},
		Languages:       map[string]int{},
		Releases:        []types.Release{},
	}
	if md.Description == "" {
		md.Description = noDescriptionLabel
	}

	if repo.License != nil {
		license := fetch(FieldLicense, func() (string, error) { return c.license(ctx, ref) })
		c.apply(md, license.Err, func() { md.License = license.Value })
	}

	topics := fetch(FieldTopics, func() ([]string, error) {
		t, _, err := c.repos.ListAllTopics(ctx, ref.Owner, ref.Name)
		return t, err
	})
	c.apply(md, topics.Err, func() {
		if topics.Value != nil {
			md.Topics = topics.Value
		}
	})

	readme := fetch(FieldReadme, func() (string, error) { return c.readme(ctx, ref) })
	c.apply(md, readme.Err, func() {
		md.Readme = readme.Value
		if html, err := markdown.ToHTML(readme.Value); err == nil {
			md.ReadmeHTML = html
		}
	})

	contributors := fetch(FieldContributors, func() ([]types.Contributor, error) { return c.contributors(ctx, ref) })
	c.apply(md, contributors.Err, func() { md.Contributors = contributors.Value })

	languages := fetch(FieldLanguages, func() (map[string]int, error) {
		l, _, err := c.repos.ListLanguages(ctx, ref.Owner, ref.Name)
		return l, err
	})
	c.apply(md, languages.Err, func() {
		if languages.Value != nil {
			md.Languages = languages.Value
		}
	})

	releases := fetch(FieldReleases, func() ([]types.Release, error) { return c.releases(ctx, ref) })
	c.apply(md, releases.Err, func() { md.Releases = releases.Value })

	return md, nil
}

// apply runs set when err is nil; otherwise it logs and records the
// failed field.
func (c *Client) apply(md *types.RemoteRepoMetadata, err error, set func()) {
	if err == nil {
		set()
		return
	}
	field := err.Error()
	var fe *FieldError
	if errors.As(err, &fe) {
		field = fe.Field
	}
	md.Partial = append(md.Partial, field)
	c.logger.Warn("metadata sub-fetch failed", c.logger.Args("repo", md.FullName, "field", field, "error", err.Error()))
}

func (c *Client) license(ctx context.Context, ref RepoRef) (string, error) {
	rl, _, err := c.repos.License(ctx, ref.Owner, ref.Name)
	if err != nil {
		return "", err
	}
	l := rl.GetLicense()
	if id := l.GetSPDXID(); id != "" && id != "NOASSERTION" {
		return id, nil
	}
	return l.GetName(), nil
}

func (c *Client) readme(ctx context.Context, ref RepoRef) (string, error) {
	content, _, err := c.repos.GetReadme(ctx, ref.Owner, ref.Name, nil)
	if err != nil {
		return "", err
	}
	return content.GetContent()
}

func (c *Client) contributors(ctx context.Context, ref RepoRef) ([]types.Contributor, error) {
	opts := &gh.ListContributorsOptions{ListOptions: gh.ListOptions{PerPage: MaxContributors}}
	list, _, err := c.repos.ListContributors(ctx, ref.Owner, ref.Name, opts)
	if err != nil {
		return nil, err
	}
	if len(list) > MaxContributors {
		list = list[:MaxContributors]
	}
	out := make([]types.Contributor, 0, len(list))
	for _, ct := range list {
		out = append(out, types.Contributor{
			Login:         ct.GetLogin(),
			URL:           ct.GetHTMLURL(),
			Contributions: ct.GetContributions(),
		})
	}
	return out, nil
}

func (c *Client) releases(ctx context.Context, ref RepoRef) ([]types.Release, error) {
	list, _, err := c.repos.ListReleases(ctx, ref.Owner, ref.Name, &gh.ListOptions{PerPage: MaxReleases})
	if err != nil {
		return nil, err
	}
	if len(list) > MaxReleases {
		list = list[:MaxReleases]
	}
	out := make([]types.Release, 0, len(list))
	for _, r := range list {
		name := r.GetName()
		if name == "" {
			name = r.GetTagName()
		}
		published := r.GetPublishedAt().Time
		if published.IsZero() {
			published = r.GetCreatedAt().Time
		}
		out = append(out, types.Release{
			TagName:     r.GetTagName(),
			Name:        name,
			PublishedAt: published.In(time.UTC),
			Body:        truncateBody(r.GetBody()),
		})
	}
	return out, nil
}

// truncateBody cuts a release body to MaxReleaseBodyLen runes and marks
// the cut with an ellipsis.
func truncateBody(body string) string {
	runes := []rune(body)
	if len(runes) <= MaxReleaseBodyLen {
		return body
	}
	return string(runes[:MaxReleaseBodyLen]) + releaseEllipsis
}
