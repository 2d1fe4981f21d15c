// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEventStream implements EventStream for testing.
type mockEventStream struct {
	ch     chan brtypes.ConverseStreamOutput
	err    error
	closed bool
}

func (m *mockEventStream) Events() <-chan brtypes.ConverseStreamOutput { return m.ch }
func (m *mockEventStream) Close() error                                { m.closed = true; return nil }
func (m *mockEventStream) Err() error                                  { return m.err }

func textEvent(s string) brtypes.ConverseStreamOutput {
	return &brtypes.ConverseStreamOutputMemberContentBlockDelta{
		Value: brtypes.ContentBlockDeltaEvent{
			ContentBlockIndex: aws.Int32(0),
			Delta:             &brtypes.ContentBlockDeltaMemberText{Value: s},
		},
	}
}

func usageEvent(in, out int32) brtypes.ConverseStreamOutput {
	return &brtypes.ConverseStreamOutputMemberMetadata{
		Value: brtypes.ConverseStreamMetadataEvent{
			Usage: &brtypes.TokenUsage{
				InputTokens:  aws.Int32(in),
				OutputTokens: aws.Int32(out),
				TotalTokens:  aws.Int32(in + out),
			},
		},
	}
}

func newStream(events ...brtypes.ConverseStreamOutput) *mockEventStream {
	ch := make(chan brtypes.ConverseStreamOutput, len(events))
	for _, e := range events {
		ch <- e
	}
	close(ch)
	return &mockEventStream{ch: ch}
}

// scriptedOpener fails with errs in order, then returns a stream of tokens.
type scriptedOpener struct {
	errs   []error
	tokens []string
	calls  int
	inputs []*bedrockruntime.ConverseStreamInput
}

func (s *scriptedOpener) open(_ context.Context, input *bedrockruntime.ConverseStreamInput) (EventStream, error) {
	s.calls++
	s.inputs = append(s.inputs, input)
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	var events []brtypes.ConverseStreamOutput
	for _, tok := range s.tokens {
		events = append(events, textEvent(tok))
	}
	events = append(events, usageEvent(120, 30))
	return newStream(events...), nil
}

func testClient(o *scriptedOpener) *Client {
	c := newClient(ClientConfig{ModelID: "test-model", Region: "us-east-1"})
	c.open = o.open
	return c
}

// --- stream ---

func TestConsumeStream_AccumulatesTextAndUsage(t *testing.T) {
	stream := newStream(textEvent("Here"), textEvent(" is"), textEvent(" text"), usageEvent(150, 42))

	var seen []string
	resp := consumeStream(context.Background(), stream, func(s string) { seen = append(seen, s) })

	require.NoError(t, resp.Err)
	assert.Equal(t, "Here is text", resp.FullText)
	assert.Equal(t, []string{"Here", " is", " text"}, seen)
	assert.Equal(t, 150, resp.Usage.InputTokens)
	assert.Equal(t, 42, resp.Usage.OutputTokens)
	assert.True(t, stream.closed)
}

func TestConsumeStream_StreamError(t *testing.T) {
	stream := newStream(textEvent("partial"))
	stream.err = errors.New("connection reset")

	resp := consumeStream(context.Background(), stream, nil)
	assert.Equal(t, "partial", resp.FullText)
	assert.EqualError(t, resp.Err, "connection reset")
}

func TestConsumeStream_ContextCancelled(t *testing.T) {
	stream := &mockEventStream{ch: make(chan brtypes.ConverseStreamOutput)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := consumeStream(ctx, stream, nil)
	assert.ErrorIs(t, resp.Err, context.Canceled)
	assert.True(t, stream.closed)
}

// --- client ---

func TestGenerateText(t *testing.T) {
	o := &scriptedOpener{tokens: []string{"An ", "overview."}}
	c := testClient(o)

	text, err := c.GenerateText(context.Background(), "describe the repo")
	require.NoError(t, err)
	assert.Equal(t, "An overview.", text)
	require.Len(t, o.inputs, 1)
	assert.Equal(t, "test-model", aws.ToString(o.inputs[0].ModelId))
	assert.Equal(t, int32(defaultMaxTokens), aws.ToInt32(o.inputs[0].InferenceConfig.MaxTokens))
	require.Len(t, o.inputs[0].Messages, 1)
}

func TestComplete_ReportsUsage(t *testing.T) {
	c := testClient(&scriptedOpener{tokens: []string{"ok"}})
	resp, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, 150, resp.Usage.Total())
}

func TestComplete_RetriesThrottling(t *testing.T) {
	throttle := &brtypes.ThrottlingException{Message: aws.String("Rate exceeded")}
	o := &scriptedOpener{errs: []error{throttle}, tokens: []string{"done"}}
	c := testClient(o)

	resp, err := c.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "done", resp.FullText)
	assert.Equal(t, 1, resp.Retries)
	assert.Equal(t, 2, o.calls)
}

func TestComplete_AuthenticationFailure(t *testing.T) {
	o := &scriptedOpener{errs: []error{&brtypes.AccessDeniedException{Message: aws.String("denied")}}}
	_, err := testClient(o).GenerateText(context.Background(), "p")
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, 1, o.calls, "auth failures are not retried")
}

func TestClassifyError(t *testing.T) {
	c := &Client{modelID: "missing-model", timeout: 30 * time.Second}
	tests := []struct {
		name     string
		err      error
		want     error
		contains string
	}{
		{"access denied", &brtypes.AccessDeniedException{Message: aws.String("no")}, ErrAuthentication, "credential"},
		{"unrecognized client", &smithy.GenericAPIError{Code: "UnrecognizedClientException", Message: "bad key"}, ErrAuthentication, "bad key"},
		{"expired token", &smithy.GenericAPIError{Code: "ExpiredTokenException", Message: "expired"}, ErrAuthentication, "expired"},
		{"model not found", &brtypes.ResourceNotFoundException{Message: aws.String("no model")}, ErrService, "missing-model"},
		{"timeout", context.DeadlineExceeded, ErrService, "timed out"},
		{"other", errors.New("boom"), ErrService, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.classifyError(tt.err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestNewClientWithAPI_Defaults(t *testing.T) {
	c := NewClientWithAPI(nil, ClientConfig{ModelID: "m", Region: "us-west-2", MaxTokens: 2048})
	assert.Equal(t, "m", c.modelID)
	assert.Equal(t, 2048, c.maxTokens)
	assert.Equal(t, defaultTimeout, c.timeout)
	assert.NotEmpty(t, c.system)
}

func TestNewClient_RequiresModelAndRegion(t *testing.T) {
	_, err := NewClient(context.Background(), ClientConfig{Region: "us-east-1"})
	assert.ErrorIs(t, err, ErrService)
	_, err = NewClient(context.Background(), ClientConfig{ModelID: "m"})
	assert.ErrorIs(t, err, ErrService)
}

// --- credentials ---

func TestParseCredential(t *testing.T) {
	cred, err := ParseCredential("AKID:SECRET")
	require.NoError(t, err)
	assert.Equal(t, StaticCredential{AccessKeyID: "AKID", SecretAccessKey: "SECRET"}, cred)

	cred, err = ParseCredential("AKID:SECRET:TOKEN:WITH:COLONS")
	require.NoError(t, err)
	assert.Equal(t, "TOKEN:WITH:COLONS", cred.SessionToken)

	for _, bad := range []string{"", "AKID", "AKID:", ":SECRET"} {
		_, err := ParseCredential(bad)
		assert.ErrorIs(t, err, ErrAuthentication, bad)
	}
}

func TestLoadOptions(t *testing.T) {
	opts, err := loadOptions(ClientConfig{Region: "us-east-1"})
	require.NoError(t, err)
	assert.Len(t, opts, 1)

	opts, err = loadOptions(ClientConfig{Region: "us-east-1", Profile: "dev"})
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	opts, err = loadOptions(ClientConfig{Region: "us-east-1", Profile: "dev", Credential: "A:B"})
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = loadOptions(ClientConfig{Region: "us-east-1", Credential: "garbage"})
	assert.ErrorIs(t, err, ErrAuthentication)
}

// --- prompts ---

func TestRenderSystemPrompt(t *testing.T) {
	out, err := RenderSystemPrompt()
	require.NoError(t, err)
	assert.Contains(t, out, "README.md")
}

func TestRenderAugmentPrompt(t *testing.T) {
	out, err := RenderAugmentPrompt(AugmentData{
		Name:        "shop",
		ProjectType: "fullstack",
		Purpose:     "a complete web application",
		Language:    "Python",
		Framework:   "React",
		Database:    "PostgreSQL",
		Files:       []string{"app.py", "frontend/src/App.jsx"},
		Topics:      []string{"ecommerce", "payments"},
		Overview:    "Shop is a full-stack application.",
		Features:    []string{"Authentication: Sign in.", "Payments: Checkout."},
	})
	require.NoError(t, err)

	for _, want := range []string{
		"Project name: shop",
		"Project type: fullstack (a complete web application)",
		"Framework: React",
		"Topics: ecommerce, payments",
		"  - frontend/src/App.jsx",
		"Shop is a full-stack application.",
		"- Payments: Checkout.",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Description:")
}

func TestConstructMessages(t *testing.T) {
	system, messages := ConstructMessages("sys", "user prompt")
	require.Len(t, system, 1)
	assert.Equal(t, "sys", system[0].(*brtypes.SystemContentBlockMemberText).Value)
	require.Len(t, messages, 1)
	assert.Equal(t, brtypes.ConversationRoleUser, messages[0].Role)
	assert.Equal(t, "user prompt", messages[0].Content[0].(*brtypes.ContentBlockMemberText).Value)
}
