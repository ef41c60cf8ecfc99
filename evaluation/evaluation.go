// Package evaluation judges completed conversations against a test's
// expected results. An Evaluator receives the recorded transcript plus the
// declared expected results and returns a pass/fail verdict with reasoning.
// LLM-backed judges live in sub-packages (anthropic, openai); any
// implementation of the one-method interface can be plugged into the runner.
package evaluation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hupe1980/agentcheck/core"
)

// Evaluator scores a finished conversation against expected results.
type Evaluator interface {
	Evaluate(ctx context.Context, transcript *core.Transcript, expectedResults []string) (*core.Verdict, error)
}

// SystemPrompt instructs an LLM judge how to score a conversation.
const SystemPrompt = `You are evaluating a conversation between a user and an AI agent against a list of expected results.
Judge only whether the agent's replies satisfy every expected result. Substituted tool results are test fixtures; treat their content as ground truth.
Respond with a single JSON object: {"passed": true|false, "reasoning": "<one short paragraph>"}.`

// BuildPrompt renders the judge prompt from a transcript and expected results.
func BuildPrompt(transcript *core.Transcript, expectedResults []string) string {
	var b strings.Builder

	b.WriteString("Conversation:\n")
	b.WriteString(RenderTranscript(transcript))
	b.WriteString("\nExpected results:\n")
	for i, r := range expectedResults {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	return b.String()
}

// RenderTranscript formats a transcript for inclusion in a judge prompt.
func RenderTranscript(transcript *core.Transcript) string {
	var b strings.Builder

	for _, entry := range transcript.Entries() {
		switch entry.Role {
		case "tool":
			fmt.Fprintf(&b, "[tool %s] %s\n", core.InvocationString(entry.Invocation), entry.Text)
		default:
			fmt.Fprintf(&b, "[%s] %s\n", entry.Role, entry.Text)
		}
	}

	return b.String()
}

// ParseVerdict decodes a judge reply. It expects the JSON shape requested by
// SystemPrompt but tolerates surrounding prose by scanning for the first JSON
// object.
func ParseVerdict(reply string) (*core.Verdict, error) {
	var parsed struct {
		Passed    bool   `json:"passed"`
		Reasoning string `json:"reasoning"`
	}

	raw := reply
	if start := strings.Index(raw, "{"); start >= 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse evaluator verdict %q: %w", reply, err)
	}

	return &core.Verdict{Passed: parsed.Passed, Reasoning: parsed.Reasoning}, nil
}
