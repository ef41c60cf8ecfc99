// Package anthropic provides an evaluation.Evaluator backed by the Anthropic
// Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/evaluation"
)

// Options configure the Anthropic judge (model id, temperature, max tokens,
// API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Judge evaluates conversations with the Anthropic Messages API behind the
// generic evaluation.Evaluator interface.
type Judge struct {
	client *anthropic.Client
	opts   Options
}

var _ evaluation.Evaluator = (*Judge)(nil)

// NewJudge creates a new Anthropic judge using the official client.
func NewJudge(optFns ...func(o *Options)) *Judge {
	opts := defaultOptions(optFns)

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Judge{
		client: &client,
		opts:   opts,
	}
}

// NewJudgeFromClient creates a new Anthropic judge from an existing client.
func NewJudgeFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Judge {
	return &Judge{client: client, opts: defaultOptions(optFns)}
}

func defaultOptions(optFns []func(o *Options)) Options {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.0,
		MaxTokens:   1024,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return opts
}

// Evaluate implements evaluation.Evaluator by asking Claude for a verdict on
// the recorded conversation.
func (j *Judge) Evaluate(ctx context.Context, transcript *core.Transcript, expectedResults []string) (*core.Verdict, error) {
	prompt := evaluation.BuildPrompt(transcript, expectedResults)

	resp, err := j.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       j.opts.Model,
		MaxTokens:   j.opts.MaxTokens,
		Temperature: anthropic.Float(j.opts.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: evaluation.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.AsText().Text)
		}
	}

	return evaluation.ParseVerdict(text.String())
}
