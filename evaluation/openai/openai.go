// Package openai provides an evaluation.Evaluator backed by the OpenAI Chat
// Completions API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/evaluation"
)

// Options configure the OpenAI judge. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Judge evaluates conversations with the OpenAI Chat Completions API behind
// the generic evaluation.Evaluator interface.
type Judge struct {
	client *openai.Client
	opts   Options
}

var _ evaluation.Evaluator = (*Judge)(nil)

// NewJudge creates a new OpenAI judge using the official client.
func NewJudge(optFns ...func(o *Options)) *Judge {
	client := openai.NewClient()
	return NewJudgeFromClient(&client, optFns...)
}

// NewJudgeFromClient creates a new OpenAI judge from an existing client.
func NewJudgeFromClient(client *openai.Client, optFns ...func(o *Options)) *Judge {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.0,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Judge{client: client, opts: opts}
}

// Evaluate implements evaluation.Evaluator by asking the model for a verdict
// on the recorded conversation.
func (j *Judge) Evaluate(ctx context.Context, transcript *core.Transcript, expectedResults []string) (*core.Verdict, error) {
	prompt := evaluation.BuildPrompt(transcript, expectedResults)

	resp, err := j.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               j.opts.Model,
		Temperature:         openai.Float(j.opts.Temperature),
		MaxCompletionTokens: openai.Int(j.opts.MaxCompletionTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(evaluation.SystemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai api returned no choices")
	}

	return evaluation.ParseVerdict(resp.Choices[0].Message.Content)
}
