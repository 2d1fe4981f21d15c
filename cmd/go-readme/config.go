// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/petar-djukic/go-readme/pkg/readme"
)

// envKeyReplacer maps flag names to env suffixes (clone-depth ->
// CLONE_DEPTH).
var envKeyReplacer = strings.NewReplacer("-", "_")

// configFromViper collects the library configuration from flags, env and
// the config file.
func configFromViper(v *viper.Viper) readme.Config {
	return readme.Config{
		GitHubToken:  v.GetString("token"),
		Mode:         v.GetString("mode"),
		CloneDepth:   v.GetInt("clone-depth"),
		CloneTimeout: v.GetDuration("clone-timeout"),
		TempDir:      v.GetString("temp-dir"),
		Model:        v.GetString("model"),
		Region:       v.GetString("region"),
		Profile:      v.GetString("profile"),
		Credential:   v.GetString("credential"),
		MaxTokens:    v.GetInt("max-tokens"),
		LLMTimeout:   v.GetDuration("llm-timeout"),
		ListenAddr:   v.GetString("listen"),
		LogLevel:     v.GetString("log-level"),
		LogFormat:    v.GetString("log-format"),
	}
}
