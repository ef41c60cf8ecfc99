package report

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentcheck/core"
)

func passedStep(index int) core.StepResult {
	return core.StepResult{Index: index, State: core.StateTurnComplete, Turns: 1}
}

func TestBuildTestResult_AllStepsPassed(t *testing.T) {
	r := New()

	result := r.BuildTestResult("t1", []core.StepResult{passedStep(0), passedStep(1)}, nil)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Reason)
	assert.Len(t, result.Steps, 2)
}

func TestBuildTestResult_FailedValidation(t *testing.T) {
	r := New()

	failed := core.StepResult{
		Index: 1,
		State: core.StateStepFailed,
		Validations: []core.ValidationResult{
			{Outcome: core.OutcomeMatched, Detail: "first call matched"},
			{Outcome: core.OutcomeUnexpectedInvocation, Detail: "no expectation declared for get_forecast"},
		},
	}

	result := r.BuildTestResult("t1", []core.StepResult{passedStep(0), failed}, nil)

	assert.False(t, result.Passed)
	assert.Equal(t, "step 1: no expectation declared for get_forecast", result.Reason)
}

func TestBuildTestResult_FatalStepError(t *testing.T) {
	r := New()

	failed := core.StepResult{
		Index: 0,
		State: core.StateStepFailed,
		Err:   fmt.Errorf("response file not found: weather.json"),
	}

	result := r.BuildTestResult("t1", []core.StepResult{failed}, nil)

	assert.False(t, result.Passed)
	assert.Contains(t, result.Reason, "weather.json")
}

func TestBuildTestResult_VerdictOverrides(t *testing.T) {
	r := New()

	verdict := &core.Verdict{Passed: false, Reasoning: "agent never mentioned the temperature"}

	result := r.BuildTestResult("t1", []core.StepResult{passedStep(0)}, verdict)

	assert.False(t, result.Passed)
	assert.Equal(t, "agent never mentioned the temperature", result.Reason)
	require.NotNil(t, result.Evaluation)
}

func TestBuildTestResult_PositiveVerdict(t *testing.T) {
	r := New()

	verdict := &core.Verdict{Passed: true, Reasoning: "all expectations satisfied"}

	result := r.BuildTestResult("t1", []core.StepResult{passedStep(0)}, verdict)

	assert.True(t, result.Passed)
	assert.Empty(t, result.Reason)
}

func TestBuildTestResult_NoSteps(t *testing.T) {
	r := New()

	result := r.BuildTestResult("t1", nil, nil)

	assert.False(t, result.Passed)
}

func TestSummarize(t *testing.T) {
	r := New()

	results := []core.TestResult{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Reason: "step 0: no expectation declared"},
		{Name: "c", Passed: true},
	}

	s := r.Summarize(results)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Passed)
	assert.Equal(t, 1, s.Failed)
	assert.False(t, s.AllPassed())

	out := s.String()
	assert.Contains(t, out, "2/3 tests passed")
	assert.Contains(t, out, "[PASS] a")
	assert.Contains(t, out, "[FAIL] b: step 0: no expectation declared")
}

func TestSummary_AllPassedRequiresTests(t *testing.T) {
	r := New()

	s := r.Summarize(nil)

	assert.False(t, s.AllPassed())
}
