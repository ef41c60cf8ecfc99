package testutil

import (
	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/target"
)

// StepBuilder helps construct test steps with fluent chaining.
// Example:
//
//	step := NewStep("What is the weather?").
//		Expect(inv, "weather.json").
//		Build()
type StepBuilder struct {
	step core.Step
}

// NewStep creates a new builder for a step sending the given user message.
func NewStep(message string) *StepBuilder {
	return &StepBuilder{step: core.Step{Message: message}}
}

// Expect appends an expectation backed by a mock response file (chainable).
func (b *StepBuilder) Expect(inv core.Invocation, responseFile string) *StepBuilder {
	b.step.Expected = append(b.step.Expected, core.ExpectedInvocation{
		Invocation:   inv,
		ResponseFile: responseFile,
	})
	return b
}

// ExpectInline appends an expectation backed by an inline mock payload (chainable).
func (b *StepBuilder) ExpectInline(inv core.Invocation, raw string) *StepBuilder {
	b.step.Expected = append(b.step.Expected, core.ExpectedInvocation{
		Invocation: inv,
		Response:   &core.MockResponse{Raw: raw},
	})
	return b
}

// Build returns the assembled step.
func (b *StepBuilder) Build() core.Step {
	return b.step
}

// TestBuilder helps construct test cases with fluent chaining.
type TestBuilder struct {
	test core.Test
}

// NewTest creates a new builder for a named test case.
func NewTest(name string) *TestBuilder {
	return &TestBuilder{test: core.Test{Name: name}}
}

// Step appends a step (chainable).
func (b *TestBuilder) Step(step core.Step) *TestBuilder {
	b.test.Steps = append(b.test.Steps, step)
	return b
}

// ExpectedResults sets the declarative outcomes judged by an evaluator (chainable).
func (b *TestBuilder) ExpectedResults(results ...string) *TestBuilder {
	b.test.ExpectedResults = append(b.test.ExpectedResults, results...)
	return b
}

// MaxTurns overrides the per-step turn budget (chainable).
func (b *TestBuilder) MaxTurns(n int) *TestBuilder {
	b.test.MaxTurns = n
	return b
}

// Build returns the assembled test case.
func (b *TestBuilder) Build() core.Test {
	return b.test
}

// TextReply returns a scripted final text reply.
func TextReply(text string) *target.Reply {
	return &target.Reply{Text: text}
}

// ReturnControlReply returns a scripted return-control reply surfacing the
// given invocations.
func ReturnControlReply(invocationID string, invocations ...core.Invocation) *target.Reply {
	return &target.Reply{
		ReturnControl: &target.ReturnControl{
			InvocationID: invocationID,
			Inputs:       invocations,
		},
	}
}
