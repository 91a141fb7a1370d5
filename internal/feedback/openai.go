// Package feedback calls the AI collaborator that grades free-text answers.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when no API key is configured.
var ErrUnavailable = errors.New("feedback service is not configured")

// systemPrompt is a fixed configuration constant, not re-derived per call.
const systemPrompt = "You are an expert senior engineer and interviewer. " +
	"Given a technical question and a user's answer, do the following:\n" +
	"1. Evaluate the user's answer and give constructive feedback.\n" +
	"2. Provide the correct answer or explanation, only if the user's answer was incorrect.\n" +
	"3. Format your response clearly with Markdown (bold for emphasis, code blocks for examples).\n" +
	"4. Be detailed but concise, suitable for an engineer learning the material deeply."

const noAnswerPlaceholder = "(No answer provided)"

// OpenAIEvaluator grades answers with a single chat-completion call, bounded
// by a timeout. No retries, no caching.
type OpenAIEvaluator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIEvaluator(apiKey, baseURL, model string, timeout time.Duration) *OpenAIEvaluator {
	if apiKey == "" {
		return &OpenAIEvaluator{}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OpenAIEvaluator{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
	}
}

func (e *OpenAIEvaluator) Evaluate(ctx context.Context, question, answer string) (string, error) {
	if e.client == nil {
		return "", ErrUnavailable
	}
	if answer == "" {
		answer = noAnswerPlaceholder
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Question: %s\nUser's answer: %s", question, answer),
			},
		},
		MaxTokens:   350,
		Temperature: 0.2, // low randomness for more precise grading
	})
	if err != nil {
		return "", fmt.Errorf("request feedback: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("feedback service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
