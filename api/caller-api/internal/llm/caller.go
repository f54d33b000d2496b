// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package internal_llm streams chat completions for the caller agent. Text
// arrives as deltas so speech synthesis can start before the turn is
// complete; the end_call tool is surfaced as its own chunk.
package internal_llm

import (
	"context"
	"fmt"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	internal_chatcontext "github.com/rapidaai/api/caller-api/internal/chatcontext"
	internal_type "github.com/rapidaai/api/caller-api/internal/type"
	"github.com/rapidaai/pkg/commons"
)

// EndCallTool is the function the model calls to hang up.
const EndCallTool = "end_call"

// Caller streams one model turn. onChunk receives DeltaChunk for text and
// ToolCallChunk for tool invocations; returning an error aborts the stream.
type Caller interface {
	StreamChatCompletion(
		ctx context.Context,
		contextId string,
		history internal_chatcontext.History,
		onChunk func(internal_type.Chunk) error,
	) error
}

type openaiCaller struct {
	logger commons.Logger
	client oai.Client
	model  string
}

// NewOpenAICaller creates a streaming chat caller against any
// OpenAI-compatible endpoint. baseUrl is optional.
func NewOpenAICaller(logger commons.Logger, apiKey, baseUrl, model string) (Caller, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm: api key must not be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("llm: model must not be empty")
	}

	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseUrl != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseUrl))
	}

	return &openaiCaller{
		logger: logger,
		client: oai.NewClient(reqOpts...),
		model:  model,
	}, nil
}

func (c *openaiCaller) StreamChatCompletion(
	ctx context.Context,
	contextId string,
	history internal_chatcontext.History,
	onChunk func(internal_type.Chunk) error,
) error {
	params := c.buildParams(history)
	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	// tool call fragments accumulate across deltas, keyed by index
	type toolCall struct {
		name      string
		arguments string
	}
	accum := map[int]*toolCall{}

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]

		if choice.Delta.Content != "" {
			err := onChunk(internal_type.DeltaChunk{
				ContextId: contextId,
				Delta:     choice.Delta.Content,
			})
			if err != nil {
				return err
			}
		}

		for _, tc := range choice.Delta.ToolCalls {
			idx := int(tc.Index)
			if _, ok := accum[idx]; !ok {
				accum[idx] = &toolCall{}
			}
			if tc.Function.Name != "" {
				accum[idx].name = tc.Function.Name
			}
			accum[idx].arguments += tc.Function.Arguments
		}

		if choice.FinishReason != "" && len(accum) > 0 {
			for i := 0; i < len(accum); i++ {
				tc, ok := accum[i]
				if !ok {
					continue
				}
				c.logger.Infof("model invoked tool %s: contextId=%s", tc.name, contextId)
				err := onChunk(internal_type.ToolCallChunk{
					Name:      tc.name,
					Arguments: tc.arguments,
				})
				if err != nil {
					return err
				}
			}
			accum = map[int]*toolCall{}
		}
	}

	if err := stream.Err(); err != nil {
		c.logger.Errorf("chat completion stream failed: contextId=%s, %v", contextId, err)
		return fmt.Errorf("llm: stream chat completion: %w", err)
	}
	return nil
}

func (c *openaiCaller) buildParams(history internal_chatcontext.History) oai.ChatCompletionNewParams {
	var messages []oai.ChatCompletionMessageParamUnion
	for _, turn := range history {
		text := turn.Text
		if turn.Interrupted {
			text += " [interrupted]"
		}
		switch turn.Role {
		case internal_chatcontext.RoleSystem:
			messages = append(messages, oai.SystemMessage(text))
		case internal_chatcontext.RoleAgent:
			messages = append(messages, oai.AssistantMessage(text))
		default:
			messages = append(messages, oai.UserMessage(text))
		}
	}

	return oai.ChatCompletionNewParams{
		Model:    shared.ChatModel(c.model),
		Messages: messages,
		Tools: []oai.ChatCompletionToolParam{{
			Function: shared.FunctionDefinitionParam{
				Name:        EndCallTool,
				Description: param.NewOpt("End the phone call once enough information has been gathered."),
				Parameters:  shared.FunctionParameters{"type": "object", "properties": map[string]interface{}{}},
			},
		}},
	}
}
