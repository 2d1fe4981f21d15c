// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package readme

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-readme/internal/git"
	"github.com/petar-djukic/go-readme/internal/github"
	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/internal/pipeline"
	"github.com/petar-djukic/go-readme/pkg/types"
)

type stubCheckout struct{ closed bool }

func (s *stubCheckout) ListFiles() []string { return []string{"main.go", "go.mod", "cmd/root.go"} }
func (s *stubCheckout) FileExists(p string) bool {
	return p == "main.go" || p == "go.mod" || p == "cmd/root.go" || p == "cmd"
}
func (s *stubCheckout) ReadTextFile(p string) string {
	if p == "go.mod" {
		return "module example.com/tool\n\ngo 1.22\n\nrequire github.com/spf13/cobra v1.8.0\n"
	}
	return ""
}
func (s *stubCheckout) Root() string                { return "" }
func (s *stubCheckout) Close() error                { s.closed = true; return nil }
func (s *stubCheckout) Head() (git.Revision, error) { return git.Revision{Hash: "deadbeef"}, nil }

type stubCloner struct {
	co   *stubCheckout
	err  error
	opts git.CloneOptions
}

func (s *stubCloner) Clone(_ context.Context, opts git.CloneOptions) (pipeline.Checkout, error) {
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.co, nil
}

type stubMetadata struct{ err error }

func (s stubMetadata) FetchMetadata(context.Context, github.RepoRef) (*types.RemoteRepoMetadata, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &types.RemoteRepoMetadata{Name: "tool", FullName: "acme/tool", Description: "A handy tool."}, nil
}

func (s stubMetadata) FetchTree(context.Context, github.RepoRef, string) (types.FileSource, error) {
	return nil, errors.New("no tree")
}

func newTestGenerator(t *testing.T, cfg Config, cloner *stubCloner, meta stubMetadata) Generator {
	t.Helper()
	g, err := New(cfg,
		WithLogger(logging.Discard()),
		withDeps(pipeline.Deps{
			Cloner:   cloner,
			Metadata: func(string) pipeline.MetadataSource { return meta },
		}),
	)
	require.NoError(t, err)
	return g
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"bad mode", Config{Mode: "ftp"}},
		{"negative depth", Config{CloneDepth: -1}},
		{"negative timeout", Config{CloneTimeout: -time.Second}},
		{"negative tokens", Config{MaxTokens: -5}},
		{"bad credential", Config{Credential: "nocolon"}},
		{"bad log level", Config{LogLevel: "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cfg)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

// recordingCompleter records the credential and prompts it receives.
type recordingCompleter struct {
	credential string
	prompts    []string
}

func (r *recordingCompleter) factory(_ context.Context, credential string) (pipeline.Completer, error) {
	r.credential = credential
	return r, nil
}

func (r *recordingCompleter) Complete(_ context.Context, prompt string) (*types.StreamResponse, error) {
	r.prompts = append(r.prompts, prompt)
	return &types.StreamResponse{FullText: "not a usable answer"}, nil
}

func TestNew_DefaultConfigEnablesAI(t *testing.T) {
	g, err := New(Config{}, WithLogger(logging.Discard()))
	require.NoError(t, err)

	gen, ok := g.(*generator)
	require.True(t, ok)
	assert.True(t, gen.aiEnabled)
	assert.Equal(t, defaultModel, gen.cfg.Model)
}

func TestGenerate_AICredentialReachesBackend(t *testing.T) {
	rec := &recordingCompleter{}
	g, err := New(Config{},
		WithLogger(logging.Discard()),
		withDeps(pipeline.Deps{
			Cloner:    &stubCloner{co: &stubCheckout{}},
			Metadata:  func(string) pipeline.MetadataSource { return stubMetadata{} },
			Generator: rec.factory,
		}),
	)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), Request{
		RepoURL:    "https://github.com/acme/tool",
		AI:         true,
		Credential: "AKID:SECRET",
	})
	require.NoError(t, err)

	assert.Equal(t, "AKID:SECRET", rec.credential)
	require.Len(t, rec.prompts, 1)
	assert.Contains(t, rec.prompts[0], "tool")
}

func TestGenerate_AIWithoutBackendIsInputError(t *testing.T) {
	cloner := &stubCloner{co: &stubCheckout{}}
	g := newTestGenerator(t, Config{}, cloner, stubMetadata{})

	_, err := g.Generate(context.Background(), Request{RepoURL: "https://github.com/acme/tool", AI: true})

	require.ErrorIs(t, err, ErrAINotConfigured)
	assert.True(t, IsInputError(err))
	assert.Equal(t, MsgAINotConfigured, UserMessage(err))
	assert.Zero(t, cloner.opts, "clone must not start")
}

func TestNew_BadLogFormat(t *testing.T) {
	_, err := New(Config{LogFormat: "xml"})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyDefaults(t *testing.T) {
	cfg := ApplyDefaults(Config{})
	assert.Equal(t, ModeClone, cfg.Mode)
	assert.Equal(t, 1, cfg.CloneDepth)
	assert.Equal(t, 2*time.Minute, cfg.CloneTimeout)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Equal(t, 1024, cfg.MaxTokens)
	assert.Equal(t, ":8080", cfg.ListenAddr)

	kept := ApplyDefaults(Config{Mode: ModeAPI, CloneDepth: 5, ListenAddr: ":9000"})
	assert.Equal(t, ModeAPI, kept.Mode)
	assert.Equal(t, 5, kept.CloneDepth)
	assert.Equal(t, ":9000", kept.ListenAddr)
}

func TestGenerate_Success(t *testing.T) {
	cloner := &stubCloner{co: &stubCheckout{}}
	g := newTestGenerator(t, Config{GitHubToken: "tok"}, cloner, stubMetadata{})

	res, err := g.Generate(context.Background(), Request{RepoURL: "https://github.com/acme/tool", Twitter: "acme"})
	require.NoError(t, err)

	assert.Equal(t, "tok", cloner.opts.Token)
	assert.Equal(t, 1, cloner.opts.Depth)
	assert.True(t, cloner.co.closed)
	assert.Equal(t, "tool", res.Name)
	assert.Equal(t, "deadbeef", res.Commit)
	assert.Equal(t, string(types.CLITool), res.ProjectType)
	assert.Contains(t, res.Markdown, "# Tool")
	assert.Contains(t, res.Markdown, "A handy tool.")
	assert.Contains(t, res.Markdown, "twitter.com/acme")
}

func TestGenerate_Errors(t *testing.T) {
	g := newTestGenerator(t, Config{}, &stubCloner{err: ErrRepoNotFound}, stubMetadata{})

	_, err := g.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrInvalidRepoRef)

	_, err = g.Generate(context.Background(), Request{RepoURL: "https://github.com/acme/tool", Mode: "ftp"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = g.Generate(context.Background(), Request{RepoURL: "https://github.com/acme/tool"})
	assert.ErrorIs(t, err, ErrRepoNotFound)
}

func TestGenerate_APIModeNeedsMetadata(t *testing.T) {
	g := newTestGenerator(t, Config{Mode: ModeAPI}, &stubCloner{}, stubMetadata{err: ErrAuthRequired})
	_, err := g.Generate(context.Background(), Request{RepoURL: "https://github.com/acme/private"})
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, MsgAuthRequired, UserMessage(err))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("%w: bad host", ErrInvalidRepoRef), MsgInvalidURL},
		{fmt.Errorf("%w: 404", ErrRepoNotFound), MsgNotFound},
		{fmt.Errorf("%w: 401", ErrAuthRequired), MsgAuthRequired},
		{ErrCredentialRequired, MsgCredentialRequired},
		{ErrAINotConfigured, MsgAINotConfigured},
		{errors.New("disk full"), "An unexpected error occurred: disk full"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UserMessage(tt.err))
	}
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(fmt.Errorf("%w: x", ErrInvalidRepoRef)))
	assert.True(t, IsInputError(ErrCredentialRequired))
	assert.True(t, IsInputError(ErrAINotConfigured))
	assert.False(t, IsInputError(ErrRepoNotFound))
	assert.False(t, IsInputError(errors.New("other")))
}
