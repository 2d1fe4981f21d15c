// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llm wraps the AWS Bedrock ConverseStream API for generative
// text and renders the prompts sent to it.
package llm

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// AugmentData holds the analysis results injected into the augmentation
// prompt.
type AugmentData struct {
	Name        string
	Description string
	ProjectType string
	Purpose     string
	Language    string
	Framework   string
	Database    string
	Files       []string
	Topics      []string
	Overview    string
	Features    []string
}

// RenderSystemPrompt renders the system prompt.
func RenderSystemPrompt() (string, error) {
	return render("system.tmpl", nil)
}

// RenderAugmentPrompt renders the prompt asking the model to improve a
// deterministic overview and feature list.
func RenderAugmentPrompt(data AugmentData) (string, error) {
	return render("augment.tmpl", data)
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s: %w", name, err)
	}
	return buf.String(), nil
}

// ConstructMessages builds the Bedrock system block and the single user
// message carrying prompt.
func ConstructMessages(systemPrompt, prompt string) ([]brtypes.SystemContentBlock, []brtypes.Message) {
	system := []brtypes.SystemContentBlock{
		&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
	}
	messages := []brtypes.Message{{
		Role: brtypes.ConversationRoleUser,
		Content: []brtypes.ContentBlock{
			&brtypes.ContentBlockMemberText{Value: prompt},
		},
	}}
	return system, messages
}
