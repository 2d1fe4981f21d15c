// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zeebo/xxh3"

	"github.com/petar-djukic/go-readme/internal/markdown"
	"github.com/petar-djukic/go-readme/pkg/readme"
)

const (
	msgMissingURL   = "Missing repository URL"
	msgMissingName  = "Please enter your name"
	msgMissingEmail = "Please enter your email"
	methodAI        = "ai"
)

// formInput is the web form.
type formInput struct {
	RepoURL      string `form:"repo_url"`
	UserName     string `form:"user_name"`
	UserEmail    string `form:"user_email"`
	PortfolioURL string `form:"portfolio_url"`
	Twitter      string `form:"twitter_user"`
	LinkedIn     string `form:"linkedin_user"`
	Coffee       string `form:"buy_me_a_coffee_user"`
	Token        string `form:"github_token"`
	AI           string `form:"ai"`
}

// WantsAI reports whether the AI checkbox was ticked. Browsers send "on".
func (f formInput) WantsAI() bool {
	switch strings.ToLower(f.AI) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

type indexPage struct {
	Error string
	Form  formInput
}

type resultPage struct {
	Name        string
	ProjectType string
	Stars       int
	Forks       int
	Partial     []string
	HTML        template.HTML
	Markdown    string
}

// apiRequest is the JSON API body.
type apiRequest struct {
	RepoURL string `json:"repo_url"`
	Token   string `json:"token"`
	Mode    string `json:"mode"`
	AI      bool   `json:"ai"`
}

// compatRequest is the body of the generate-readme endpoint.
type compatRequest struct {
	RepoURL          string `json:"repo_url"`
	GenerationMethod string `json:"generation_method"`
	APIKey           string `json:"api_key"`
	Coffee           string `json:"buy_me_a_coffee_user"`
	Twitter          string `json:"twitter_user"`
	LinkedIn         string `json:"linkedin_user"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", indexPage{})
}

// handleForm generates from the web form and renders the result page.
// Errors re-render the form with a message.
func (s *Server) handleForm(c *gin.Context) {
	var in formInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "index.html", indexPage{Error: err.Error(), Form: in})
		return
	}
	in.Token = strings.TrimSpace(in.Token)

	switch {
	case strings.TrimSpace(in.RepoURL) == "":
		c.HTML(http.StatusBadRequest, "index.html", indexPage{Error: "Please enter a GitHub repository URL", Form: in})
		return
	case strings.TrimSpace(in.UserName) == "":
		c.HTML(http.StatusBadRequest, "index.html", indexPage{Error: msgMissingName, Form: in})
		return
	case strings.TrimSpace(in.UserEmail) == "":
		c.HTML(http.StatusBadRequest, "index.html", indexPage{Error: msgMissingEmail, Form: in})
		return
	}

	res, err := s.gen.Generate(c.Request.Context(), readme.Request{
		RepoURL:   in.RepoURL,
		Mode:      readme.ModeAPI,
		Token:     in.Token,
		AI:        in.WantsAI(),
		Twitter:   in.Twitter,
		LinkedIn:  in.LinkedIn,
		Coffee:    in.Coffee,
		Name:      in.UserName,
		Email:     in.UserEmail,
		Portfolio: in.PortfolioURL,
	})
	if err != nil {
		s.logFailure(c, in.RepoURL, err)
		in.Token = ""
		c.HTML(statusFor(err), "index.html", indexPage{Error: readme.UserMessage(err), Form: in})
		return
	}

	html, err := markdown.ToHTML(res.Markdown)
	if err != nil {
		s.logFailure(c, in.RepoURL, err)
		html = "<pre>" + template.HTMLEscapeString(res.Markdown) + "</pre>"
	}
	page := resultPage{
		Name:        res.Name,
		ProjectType: res.ProjectType,
		Partial:     res.Partial,
		HTML:        template.HTML(html),
		Markdown:    res.Markdown,
	}
	if res.Metadata != nil {
		page.Stars = res.Metadata.StargazersCount
		page.Forks = res.Metadata.ForksCount
	}
	setETag(c, res.Markdown)
	c.HTML(http.StatusOK, "result.html", page)
}

// handleAPIGenerate serves the JSON API. Input errors are 400, everything
// else 500.
func (s *Server) handleAPIGenerate(c *gin.Context) {
	var body apiRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.RepoURL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingURL})
		return
	}
	mode := body.Mode
	if mode == "" {
		mode = readme.ModeAPI
	}

	res, err := s.gen.Generate(c.Request.Context(), readme.Request{
		RepoURL: body.RepoURL,
		Mode:    mode,
		Token:   body.Token,
		AI:      body.AI,
	})
	if err != nil {
		s.logFailure(c, body.RepoURL, err)
		c.JSON(statusFor(err), gin.H{"error": readme.UserMessage(err)})
		return
	}

	setETag(c, res.Markdown)
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"readme":    res.Markdown,
		"repo_data": res.Metadata,
		"profile":   res.Profile,
		"languages": res.Languages,
		"partial":   res.Partial,
	})
}

// handleCompatGenerate always answers 200 with a readme field; failures
// carry the user message in place of the document.
func (s *Server) handleCompatGenerate(c *gin.Context) {
	var body compatRequest
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.RepoURL) == "" {
		c.JSON(http.StatusOK, gin.H{"readme": readme.UserMessage(readme.ErrInvalidRepoRef)})
		return
	}

	ai := strings.EqualFold(body.GenerationMethod, methodAI)
	if ai && strings.TrimSpace(body.APIKey) == "" {
		c.JSON(http.StatusOK, gin.H{"readme": readme.UserMessage(readme.ErrCredentialRequired)})
		return
	}

	res, err := s.gen.Generate(c.Request.Context(), readme.Request{
		RepoURL:    body.RepoURL,
		Mode:       readme.ModeClone,
		AI:         ai,
		Credential: strings.TrimSpace(body.APIKey),
		Twitter:    body.Twitter,
		LinkedIn:   body.LinkedIn,
		Coffee:     body.Coffee,
	})
	if err != nil {
		s.logFailure(c, body.RepoURL, err)
		c.JSON(http.StatusOK, gin.H{"readme": readme.UserMessage(err)})
		return
	}
	setETag(c, res.Markdown)
	c.JSON(http.StatusOK, gin.H{"readme": res.Markdown})
}

func (s *Server) logFailure(c *gin.Context, repoURL string, err error) {
	s.logger.Error("generation failed", s.logger.Args(
		"request_id", c.GetString(ctxRequestID),
		"repo_url", repoURL,
		"error", err.Error(),
	))
}

// statusFor maps a generation error to an HTTP status.
func statusFor(err error) int {
	if readme.IsInputError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// setETag labels a generated document with its content hash.
func setETag(c *gin.Context, doc string) {
	c.Header("ETag", ETag(doc))
}

// ETag returns the quoted entity tag of a document.
func ETag(doc string) string {
	return fmt.Sprintf(`"%016x"`, xxh3.HashString(doc))
}
