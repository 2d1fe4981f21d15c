// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command go-readme generates a README.md for a GitHub repository, either
// once from the command line or as an HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "go-readme",
		Short:         "Generate README.md files for GitHub repositories",
		Long:          "go-readme inspects a GitHub repository, infers what kind of project it is and writes a structured README.md for it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("token", "", "GitHub token for private repositories and higher rate limits")
	flags.String("mode", "clone", "Source mode: clone or api")
	flags.Int("clone-depth", 1, "History depth of the temporary clone")
	flags.Duration("clone-timeout", 0, "Timeout of the clone (default 2m)")
	flags.String("temp-dir", "", "Parent directory of temporary checkouts")
	flags.String("model", "", "Bedrock model ID (default anthropic.claude-3-5-haiku-20241022-v1:0)")
	flags.String("region", "", "AWS region for Bedrock")
	flags.String("profile", "", "AWS shared config profile")
	flags.String("credential", "", "Static AWS credential ACCESS_KEY_ID:SECRET_ACCESS_KEY[:SESSION_TOKEN]")
	flags.Int("max-tokens", 0, "Maximum tokens of an AI response (default 1024)")
	flags.Duration("llm-timeout", 0, "Timeout of one AI call (default 60s)")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "text", "Log format: text or json")

	for _, name := range []string{
		"token", "mode", "clone-depth", "clone-timeout", "temp-dir",
		"model", "region", "profile", "credential", "max-tokens", "llm-timeout",
		"log-level", "log-format",
	} {
		viper.BindPFlag(name, flags.Lookup(name))
	}

	// Env vars: GO_README_MODEL, GO_README_REGION, etc. GITHUB_TOKEN is
	// honored as well.
	viper.SetEnvPrefix("GO_README")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	viper.BindEnv("token", "GO_README_TOKEN", "GITHUB_TOKEN")

	// Config file.
	viper.SetConfigName(".go-readme")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print go-readme version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "go-readme %s\n", version)
		},
	}
}
