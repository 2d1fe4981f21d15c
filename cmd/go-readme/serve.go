// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-readme/internal/logging"
	"github.com/petar-djukic/go-readme/internal/server"
	"github.com/petar-djukic/go-readme/pkg/readme"
)

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web form and JSON API",
		RunE:  runServe,
	}
	cmd.Flags().String("listen", ":8080", "HTTP listen address")
	viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := readme.ApplyDefaults(configFromViper(viper.GetViper()))

	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	gen, err := readme.New(cfg, readme.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.New(gen, logger).ListenAndServe(ctx, cfg.ListenAddr)
}
