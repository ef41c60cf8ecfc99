package runner

import (
	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/target"
)

// StepContext carries the state of one conversation turn to a TurnHook.
type StepContext struct {
	// TestName is the name of the test case being executed.
	TestName string
	// StepIndex is the zero-based index of the current step.
	StepIndex int
	// Step is the step declaration driving this turn.
	Step core.Step
	// Reply is the agent reply produced by this turn.
	Reply *target.Reply
	// Turns is the number of agent exchanges the step has consumed so far.
	Turns int
}

// TurnHook observes every agent exchange and may override the reply before
// the runner inspects it. Returning a nil reply keeps the original. Hooks run
// concurrently when tests run in parallel and must be safe for concurrent use.
type TurnHook interface {
	OnTurn(sc *StepContext) (*target.Reply, error)
}

// TurnHookFunc adapts an ordinary function to the TurnHook interface.
type TurnHookFunc func(sc *StepContext) (*target.Reply, error)

// OnTurn implements TurnHook.
func (f TurnHookFunc) OnTurn(sc *StepContext) (*target.Reply, error) {
	return f(sc)
}
