package core

// Outcome enumerates the validation verdict for a single observed or declared
// invocation within a step.
type Outcome int

const (
	// OutcomeMatched indicates the observed invocation matched exactly one
	// declared expectation.
	OutcomeMatched Outcome = iota
	// OutcomeUnexpectedInvocation indicates an observed invocation with no
	// declared counterpart (closed-world matching).
	OutcomeUnexpectedInvocation
	// OutcomeMissingInvocation indicates a declared expectation that was
	// never observed before the step's turns were exhausted.
	OutcomeMissingInvocation
	// OutcomeParameterMismatch indicates an invocation whose identity matched
	// an expectation but whose parameter name/value pairs disagreed.
	OutcomeParameterMismatch
)

// String returns the canonical upper-snake name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "MATCHED"
	case OutcomeUnexpectedInvocation:
		return "UNEXPECTED_INVOCATION"
	case OutcomeMissingInvocation:
		return "MISSING_INVOCATION"
	case OutcomeParameterMismatch:
		return "PARAMETER_MISMATCH"
	default:
		return "UNKNOWN"
	}
}

// ValidationResult records the verdict for one invocation comparison along
// with the structured context needed for diagnostics.
type ValidationResult struct {
	Outcome Outcome
	// Detail is a human-readable explanation including the expected/observed
	// diff where applicable.
	Detail string
	// Observed is the invocation the agent surfaced (nil for MISSING_INVOCATION).
	Observed Invocation
	// Expected is the declared expectation involved (nil for UNEXPECTED_INVOCATION).
	Expected *ExpectedInvocation
}

// StepState enumerates the states of the per-step conversation machine.
type StepState int

const (
	// StateAwaitingAgentResponse: a message or mock result has been sent and
	// the agent's reply is pending.
	StateAwaitingAgentResponse StepState = iota
	// StateInvocationDetected: the agent paused with a return-control request.
	StateInvocationDetected
	// StateMockSubstituted: a matched mock response has been fed back.
	StateMockSubstituted
	// StateTurnComplete: terminal success; final reply received and every
	// declared expectation observed exactly once.
	StateTurnComplete
	// StateStepFailed: terminal failure.
	StateStepFailed
)

// String returns the canonical upper-snake name of the state.
func (s StepState) String() string {
	switch s {
	case StateAwaitingAgentResponse:
		return "AWAITING_AGENT_RESPONSE"
	case StateInvocationDetected:
		return "INVOCATION_DETECTED"
	case StateMockSubstituted:
		return "MOCK_SUBSTITUTED"
	case StateTurnComplete:
		return "TURN_COMPLETE"
	case StateStepFailed:
		return "STEP_FAILED"
	default:
		return "UNKNOWN"
	}
}

// StepResult captures the terminal state of one executed step.
type StepResult struct {
	// Index is the zero-based position of the step within the test script.
	Index int
	// State is the terminal state reached (TURN_COMPLETE or STEP_FAILED).
	State StepState
	// Validations lists the per-invocation verdicts recorded during the step.
	Validations []ValidationResult
	// FinalReply is the agent's closing natural-language reply, if any.
	FinalReply string
	// Turns is the number of agent exchanges consumed (including mock
	// substitution round-trips).
	Turns int
	// Err holds a fatal error (missing response file, turn budget exceeded,
	// transport failure, ambiguous expectation).
	Err error
}

// Passed reports whether the step reached TURN_COMPLETE.
func (r StepResult) Passed() bool { return r.State == StateTurnComplete }

// Verdict is an evaluator's judgement of a finished conversation against a
// test's expected results.
type Verdict struct {
	Passed    bool
	Reasoning string
}

// TestResult aggregates per-step results into an overall test verdict.
type TestResult struct {
	Name string
	// Passed is true only if every executed step reached TURN_COMPLETE and
	// the evaluator verdict, when present, passed.
	Passed bool
	Steps  []StepResult
	// Reason describes the first failure (offending descriptor plus
	// expected/observed diff) or the evaluator's reasoning.
	Reason string
	// Evaluation holds the optional LLM judge verdict.
	Evaluation *Verdict
}
