// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-readme/pkg/readme"
	"github.com/petar-djukic/go-readme/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeGenerator records requests and returns a canned result or error.
type fakeGenerator struct {
	mu   sync.Mutex
	reqs []readme.Request
	res  *readme.Result
	err  error
}

func (f *fakeGenerator) Generate(_ context.Context, req readme.Request) (*readme.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func (f *fakeGenerator) last(t *testing.T) readme.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.reqs, "generator was not called")
	return f.reqs[len(f.reqs)-1]
}

func sampleResult() *readme.Result {
	return &readme.Result{
		Markdown:    "# demo\n\nA demo project.\n",
		Name:        "demo",
		URL:         "https://github.com/octo/demo",
		ProjectType: "CLI Tool",
		Metadata: &types.RemoteRepoMetadata{
			Name:            "demo",
			Description:     "A demo project.",
			StargazersCount: 42,
			ForksCount:      7,
		},
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postForm(t *testing.T, h http.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	srv := New(&fakeGenerator{}, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestRequestID(t *testing.T) {
	srv := New(&fakeGenerator{}, nil)

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		_, err := uuid.Parse(rec.Header().Get(headerRequestID))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(headerRequestID, id)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(headerRequestID))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(headerRequestID, "not-a-uuid")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(headerRequestID))
	})
}

func TestIndex(t *testing.T) {
	srv := New(&fakeGenerator{}, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="repo_url"`)
	assert.Contains(t, rec.Body.String(), `name="user_email"`)
}

func TestAPIGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	rec := postJSON(t, srv.Handler(), "/api/generate", map[string]string{
		"repo_url": "https://github.com/octo/demo",
		"token":    "ghp_x",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "# demo\n\nA demo project.\n", body["readme"])
	repoData, ok := body["repo_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(42), repoData["stargazers_count"])
	assert.Equal(t, ETag(sampleResult().Markdown), rec.Header().Get("ETag"))

	req := gen.last(t)
	assert.Equal(t, readme.ModeAPI, req.Mode)
	assert.Equal(t, "ghp_x", req.Token)
}

func TestAPIGenerate_ModeOverride(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	rec := postJSON(t, srv.Handler(), "/api/generate", map[string]any{
		"repo_url": "https://github.com/octo/demo",
		"mode":     "clone",
		"ai":       true,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	req := gen.last(t)
	assert.Equal(t, readme.ModeClone, req.Mode)
	assert.True(t, req.AI)
}

func TestAPIGenerate_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		genErr     error
		wantStatus int
		wantError  string
	}{
		{"missing url", `{}`, nil, http.StatusBadRequest, msgMissingURL},
		{"malformed json", `{`, nil, http.StatusBadRequest, msgMissingURL},
		{"invalid url", `{"repo_url":"https://example.com/x"}`, fmt.Errorf("%w: host", readme.ErrInvalidRepoRef), http.StatusBadRequest, readme.MsgInvalidURL},
		{"not found", `{"repo_url":"https://github.com/octo/nope"}`, readme.ErrRepoNotFound, http.StatusInternalServerError, readme.MsgNotFound},
		{"auth", `{"repo_url":"https://github.com/octo/secret"}`, readme.ErrAuthRequired, http.StatusInternalServerError, readme.MsgAuthRequired},
		{"unavailable", `{"repo_url":"https://github.com/octo/demo"}`, fmt.Errorf("%w: rate limit", readme.ErrSourceUnavailable), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&fakeGenerator{err: tt.genErr}, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			msg, _ := decode(t, rec)["error"].(string)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, msg)
			} else {
				assert.True(t, strings.HasPrefix(msg, "An unexpected error occurred: "), msg)
			}
			assert.Empty(t, rec.Header().Get("ETag"))
		})
	}
}

func TestCompatGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	rec := postJSON(t, srv.Handler(), "/generate-readme/", map[string]string{
		"repo_url":             "https://github.com/octo/demo",
		"generation_method":    "ai",
		"api_key":              "AKID:SECRET",
		"buy_me_a_coffee_user": "octocoffee",
		"twitter_user":         "octo",
		"linkedin_user":        "octo-in",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sampleResult().Markdown, decode(t, rec)["readme"])

	req := gen.last(t)
	assert.Equal(t, readme.ModeClone, req.Mode)
	assert.True(t, req.AI)
	assert.Equal(t, "AKID:SECRET", req.Credential)
	assert.Equal(t, "octocoffee", req.Coffee)
	assert.Equal(t, "octo", req.Twitter)
	assert.Equal(t, "octo-in", req.LinkedIn)
}

func TestCompatGenerate_Template(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	rec := postJSON(t, srv.Handler(), "/generate-readme/", map[string]string{
		"repo_url":          "https://github.com/octo/demo",
		"generation_method": "template",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gen.last(t).AI)
}

func TestCompatGenerate_ErrorsAsReadme(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]string
		genErr error
		want   string
	}{
		{
			name: "ai without key",
			body: map[string]string{"repo_url": "https://github.com/octo/demo", "generation_method": "ai"},
			want: readme.MsgCredentialRequired,
		},
		{
			name: "missing url",
			body: map[string]string{"generation_method": "template"},
			want: readme.MsgInvalidURL,
		},
		{
			name:   "not found",
			body:   map[string]string{"repo_url": "https://github.com/octo/nope"},
			genErr: readme.ErrRepoNotFound,
			want:   readme.MsgNotFound,
		},
		{
			name:   "private",
			body:   map[string]string{"repo_url": "https://github.com/octo/secret"},
			genErr: readme.ErrAuthRequired,
			want:   readme.MsgAuthRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{err: tt.genErr, res: sampleResult()}
			srv := New(gen, nil)

			rec := postJSON(t, srv.Handler(), "/generate-readme/", tt.body)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, decode(t, rec)["readme"])
		})
	}
}

func TestCompatGenerate_AIWithoutKeySkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	postJSON(t, srv.Handler(), "/generate-readme/", map[string]string{
		"repo_url":          "https://github.com/octo/demo",
		"generation_method": "AI",
		"api_key":           "   ",
	})

	assert.Empty(t, gen.reqs)
}

func TestForm_Success(t *testing.T) {
	gen := &fakeGenerator{res: sampleResult()}
	srv := New(gen, nil)

	rec := postForm(t, srv.Handler(), url.Values{
		"repo_url":      {"https://github.com/octo/demo"},
		"user_name":     {"Ada"},
		"user_email":    {"ada@example.com"},
		"portfolio_url": {"https://ada.dev"},
		"github_token":  {" ghp_x "},
		"ai":            {"on"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "<h1>demo</h1>")
	assert.Contains(t, page, "CLI Tool")
	assert.Contains(t, page, "A demo project.")
	assert.Contains(t, page, "★ 42")
	assert.NotEmpty(t, rec.Header().Get("ETag"))

	req := gen.last(t)
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "https://ada.dev", req.Portfolio)
	assert.Equal(t, "ghp_x", req.Token)
	assert.True(t, req.AI)
}

func TestForm_Validation(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want string
	}{
		{"missing url", url.Values{"user_name": {"Ada"}, "user_email": {"a@b.c"}}, "Please enter a GitHub repository URL"},
		{"missing name", url.Values{"repo_url": {"https://github.com/o/r"}, "user_email": {"a@b.c"}}, msgMissingName},
		{"missing email", url.Values{"repo_url": {"https://github.com/o/r"}, "user_name": {"Ada"}}, msgMissingEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{res: sampleResult()}
			srv := New(gen, nil)

			rec := postForm(t, srv.Handler(), tt.form)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Empty(t, gen.reqs)
		})
	}
}

func TestForm_GenerationError(t *testing.T) {
	gen := &fakeGenerator{err: readme.ErrRepoNotFound}
	srv := New(gen, nil)

	rec := postForm(t, srv.Handler(), url.Values{
		"repo_url":     {"https://github.com/octo/nope"},
		"user_name":    {"Ada"},
		"user_email":   {"ada@example.com"},
		"github_token": {"ghp_secret"},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	page := rec.Body.String()
	assert.Contains(t, page, "Repository not found")
	assert.Contains(t, page, "https://github.com/octo/nope")
	assert.NotContains(t, page, "ghp_secret")
}

func TestETag(t *testing.T) {
	a := ETag("# one")
	assert.Equal(t, a, ETag("# one"))
	assert.NotEqual(t, a, ETag("# two"))
	assert.True(t, strings.HasPrefix(a, `"`) && strings.HasSuffix(a, `"`))
	assert.Len(t, a, 18)
}
