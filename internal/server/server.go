// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package server is the HTTP transport: a web form, a JSON API and a
// compatibility endpoint, all backed by one readme.Generator.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/pkg/readme"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	headerRequestID = "X-Request-ID"
	ctxRequestID    = "request_id"
	shutdownTimeout = 10 * time.Second
	maxBodyBytes    = 1 << 20
)

// Server serves README generation over HTTP.
type Server struct {
	gen    readme.Generator
	logger *pterm.Logger
	router *gin.Engine
}

// New creates a server around gen. A nil logger discards output.
func New(gen readme.Generator, logger *pterm.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{gen: gen, logger: logger}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog(), limitBody(maxBodyBytes))
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.handleIndex)
	r.POST("/", s.handleForm)
	r.POST("/api/generate", s.handleAPIGenerate)
	r.POST("/generate-readme/", s.handleCompatGenerate)
	r.GET("/healthz", s.handleHealth)

	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", s.logger.Args("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down", s.logger.Args("addr", addr))
		return srv.Shutdown(shutdownCtx)
	}
}

// requestID tags each request with an ID, reusing the caller's header
// when present.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request", s.logger.Args(
			"request_id", c.GetString(ctxRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start).String(),
		))
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
