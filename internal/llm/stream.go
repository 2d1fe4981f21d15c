// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"strings"

	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/petar-djukic/go-readme/pkg/types"
)

// EventStream abstracts the Bedrock ConverseStream event stream for
// testing.
type EventStream interface {
	Events() <-chan brtypes.ConverseStreamOutput
	Close() error
	Err() error
}

// consumeStream reads events until the stream ends, accumulating text and
// token usage. onToken, when set, sees each text delta as it arrives. A
// cancelled context or a stream error is reported in the response's Err.
func consumeStream(ctx context.Context, stream EventStream, onToken func(string)) *types.StreamResponse {
	defer stream.Close()

	var text strings.Builder
	response := &types.StreamResponse{}

	events := stream.Events()
	for {
		select {
		case <-ctx.Done():
			response.FullText = text.String()
			response.Err = ctx.Err()
			return response

		case event, ok := <-events:
			if !ok {
				response.FullText = text.String()
				response.Err = stream.Err()
				return response
			}

			switch v := event.(type) {
			case *brtypes.ConverseStreamOutputMemberContentBlockDelta:
				if delta, ok := v.Value.Delta.(*brtypes.ContentBlockDeltaMemberText); ok {
					text.WriteString(delta.Value)
					if onToken != nil {
						onToken(delta.Value)
					}
				}

			case *brtypes.ConverseStreamOutputMemberMetadata:
				if u := v.Value.Usage; u != nil {
					if u.InputTokens != nil {
						response.Usage.InputTokens = int(*u.InputTokens)
					}
					if u.OutputTokens != nil {
						response.Usage.OutputTokens = int(*u.OutputTokens)
					}
				}
			}
		}
	}
}
