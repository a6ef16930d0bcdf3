package ai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// SystemPrompt frames the assistant as an SRE analyst for every narrative
// call
const SystemPrompt = "You are an expert SRE analyzing system incidents. Provide clear, actionable analysis."

// Client is the narrative generator collaborator: free-text completion with
// a session identifier scoped per incident and per call purpose.
type Client interface {
	Complete(ctx context.Context, sessionID, prompt string) (string, error)
}

// OpenAIClient implements Client against the OpenAI chat completion API
type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient creates a narrative generator client. Every call carries a
// bounded timeout so a hung completion can never block the caller forever.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Complete sends a prompt and returns the first choice's content
func (c *OpenAIClient) Complete(ctx context.Context, sessionID, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		User:  sessionID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
