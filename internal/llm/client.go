// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"

	"github.com/petar-djukic/go-readme/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultMaxTokens = 1024
	maxRetryAttempts = 3
	baseRetryDelay   = 1 * time.Second
)

// Error kinds returned by the client.
var (
	// ErrAuthentication means the credential was rejected or missing.
	ErrAuthentication = errors.New("generative-text authentication failed")
	// ErrService covers every other failure: network, throttling, bad model.
	ErrService = errors.New("generative-text service failed")
)

// authErrorCodes are the API error codes reported for bad credentials.
var authErrorCodes = map[string]bool{
	"AccessDeniedException":       true,
	"UnrecognizedClientException": true,
	"InvalidSignatureException":   true,
	"ExpiredTokenException":       true,
	"IncompleteSignature":         true,
	"MissingAuthenticationToken":  true,
}

// ClientConfig configures the Bedrock client.
type ClientConfig struct {
	ModelID    string        // Bedrock model ID (required)
	Region     string        // AWS region (required)
	Profile    string        // Shared config profile; empty uses the default chain
	Credential string        // Static "ACCESS_KEY_ID:SECRET_ACCESS_KEY[:SESSION_TOKEN]"; overrides Profile
	Timeout    time.Duration // Per-call timeout (default 60s)
	MaxTokens  int           // Response token limit (default 1024)
}

// BedrockAPI abstracts the Bedrock ConverseStream call for testing.
type BedrockAPI interface {
	ConverseStream(ctx context.Context, params *bedrockruntime.ConverseStreamInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseStreamOutput, error)
}

// opener starts a response stream. The Bedrock adapter wraps BedrockAPI;
// tests substitute their own.
type opener func(ctx context.Context, input *bedrockruntime.ConverseStreamInput) (EventStream, error)

// Client sends prompts to a Bedrock model. A Client holds no per-call
// state and is safe for concurrent use.
type Client struct {
	open      opener
	modelID   string
	system    string
	timeout   time.Duration
	maxTokens int
}

// NewClient loads AWS configuration and creates a Bedrock client.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.ModelID == "" {
		return nil, fmt.Errorf("%w: model ID is required", ErrService)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: region is required", ErrService)
	}

	opts, err := loadOptions(cfg)
	if err != nil {
		return nil, err
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading AWS config: %v", ErrAuthentication, err)
	}

	return NewClientWithAPI(bedrockruntime.NewFromConfig(awsCfg), cfg), nil
}

// NewClientWithAPI creates a client with a pre-configured API
// implementation.
func NewClientWithAPI(api BedrockAPI, cfg ClientConfig) *Client {
	c := newClient(cfg)
	c.open = func(ctx context.Context, input *bedrockruntime.ConverseStreamInput) (EventStream, error) {
		out, err := api.ConverseStream(ctx, input)
		if err != nil {
			return nil, err
		}
		return out.GetStream(), nil
	}
	return c
}

func newClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	system, err := RenderSystemPrompt()
	if err != nil {
		// Embedded template; a failure here is a build defect.
		panic(err)
	}
	return &Client{
		modelID:   cfg.ModelID,
		system:    system,
		timeout:   timeout,
		maxTokens: maxTokens,
	}
}

// GenerateText sends prompt and returns the full response text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	return resp.FullText, nil
}

// Complete sends prompt and returns the response with its token usage.
func (c *Client) Complete(ctx context.Context, prompt string) (*types.StreamResponse, error) {
	system, messages := ConstructMessages(c.system, prompt)
	return c.sendWithRetry(ctx, system, messages)
}

// sendWithRetry calls ConverseStream with exponential backoff on
// throttling.
func (c *Client) sendWithRetry(ctx context.Context, system []brtypes.SystemContentBlock, messages []brtypes.Message) (*types.StreamResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetryAttempts; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(math.Pow(2, float64(attempt-1)))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: context cancelled during retry: %v", ErrService, ctx.Err())
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		input := &bedrockruntime.ConverseStreamInput{
			ModelId:  aws.String(c.modelID),
			System:   system,
			Messages: messages,
			InferenceConfig: &brtypes.InferenceConfiguration{
				MaxTokens: aws.Int32(int32(c.maxTokens)),
			},
		}

		stream, err := c.open(callCtx, input)
		if err != nil {
			cancel()
			var throttle *brtypes.ThrottlingException
			if errors.As(err, &throttle) {
				lastErr = err
				continue
			}
			return nil, c.classifyError(err)
		}

		response := consumeStream(callCtx, stream, nil)
		cancel()
		if response.Err != nil {
			return nil, c.classifyError(response.Err)
		}
		response.Retries = attempt
		return response, nil
	}

	return nil, fmt.Errorf("%w: rate limited after %d retries: %v", ErrService, maxRetryAttempts, lastErr)
}

// classifyError sorts a failure into ErrAuthentication or ErrService.
func (c *Client) classifyError(err error) error {
	var accessDenied *brtypes.AccessDeniedException
	if errors.As(err, &accessDenied) {
		return fmt.Errorf("%w: credential or permission issue: %v", ErrAuthentication, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && authErrorCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%w: %s: %s", ErrAuthentication, apiErr.ErrorCode(), apiErr.ErrorMessage())
	}

	var notFound *brtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: model not found: %s", ErrService, c.modelID)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out after %s", ErrService, c.timeout)
	}

	return fmt.Errorf("%w: %v", ErrService, err)
}
