package core

import "testing"

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeMatched:              "MATCHED",
		OutcomeUnexpectedInvocation: "UNEXPECTED_INVOCATION",
		OutcomeMissingInvocation:    "MISSING_INVOCATION",
		OutcomeParameterMismatch:    "PARAMETER_MISMATCH",
		Outcome(99):                 "UNKNOWN",
	}

	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Errorf("outcome %d: expected %q, got %q", outcome, want, got)
		}
	}
}

func TestStepStateString(t *testing.T) {
	cases := map[StepState]string{
		StateAwaitingAgentResponse: "AWAITING_AGENT_RESPONSE",
		StateInvocationDetected:    "INVOCATION_DETECTED",
		StateMockSubstituted:       "MOCK_SUBSTITUTED",
		StateTurnComplete:          "TURN_COMPLETE",
		StateStepFailed:            "STEP_FAILED",
		StepState(99):              "UNKNOWN",
	}

	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("state %d: expected %q, got %q", state, want, got)
		}
	}
}

func TestStepResult_Passed(t *testing.T) {
	if !(StepResult{State: StateTurnComplete}).Passed() {
		t.Error("TURN_COMPLETE should pass")
	}
	if (StepResult{State: StateStepFailed}).Passed() {
		t.Error("STEP_FAILED should not pass")
	}
}
