package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
)

// Compile-time interface check
var _ Generator = (*OpenAI)(nil)

// systemMessage frames every completion request.
const systemMessage = "You are a product recommendation assistant for an online storefront."

// ChatService defines the interface for streaming chat completion calls.
// This abstraction enables testing without calling the real OpenAI API.
type ChatService interface {
	NewStreaming(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) *ssestream.Stream[openai.ChatCompletionChunk]
}

// OpenAI implements the completion service using OpenAI's chat API.
type OpenAI struct {
	chat  ChatService
	model openai.ChatModel
}

// NewOpenAI creates a new OpenAI completion service.
// An empty baseURL targets the OpenAI platform; set it to point at any
// OpenAI-compatible endpoint instead.
func NewOpenAI(apiKey, baseURL, model string) *OpenAI {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAI{
		chat:  client.Chat.Completions,
		model: openai.ChatModel(model),
	}
}

// Complete generates a completion for the prompt. Tokens are streamed from
// the provider and joined in arrival order into the final text.
func (o *OpenAI) Complete(ctx context.Context, prompt string, maxNewTokens int64) (string, error) {
	stream := o.chat.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemMessage),
			openai.UserMessage(prompt),
		}),
		Model:     openai.F(o.model),
		MaxTokens: openai.F(maxNewTokens),
	})
	defer stream.Close()

	var sb strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		sb.WriteString(chunk.Choices[0].Delta.Content)
	}

	if err := stream.Err(); err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	return sb.String(), nil
}

// ModelName returns the completion model name.
func (o *OpenAI) ModelName() string {
	return string(o.model)
}
