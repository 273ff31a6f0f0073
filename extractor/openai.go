package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Completer is the slice of the chat completion service the extractor needs.
// *OpenAIClient implements it; tests substitute stubs.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error)
}

// OpenAIClient talks to the OpenAI chat API through langchaingo. The JSON
// response format is requested up front so the model is less tempted to wrap
// its answer in prose.
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient() (*OpenAIClient, error) {
	llm, err := openai.New(
		openai.WithModel("gpt-4o-mini"),
		openai.WithResponseFormat(&openai.ResponseFormat{Type: "json_object"}),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing openai client: %w", err)
	}
	return &OpenAIClient{llm: llm}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	response, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, system),
			llms.TextParts(schema.ChatMessageTypeHuman, user),
		},
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from model")
	}
	return strings.TrimSpace(response.Choices[0].Content), nil
}
