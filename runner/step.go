package runner

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/target"
)

// pendingExpectation tracks one declared expectation through a step: its
// preloaded mock payload and whether it has been consumed. Closed-world
// matching requires each expectation to be observed exactly once.
type pendingExpectation struct {
	expectation core.ExpectedInvocation
	response    core.MockResponse
	observed    bool
}

// stepRun carries the mutable state of one executing step.
type stepRun struct {
	testName     string
	transcriptID string
	index        int
	step         core.Step
	target       target.Target
	limiter      *core.TurnLimiter
	pending      []*pendingExpectation

	state       core.StepState
	validations []core.ValidationResult
}

// runStep drives the per-step conversation machine:
//
//	AWAITING_AGENT_RESPONSE -> INVOCATION_DETECTED -> MOCK_SUBSTITUTED
//	  -> (loop on chained invocations) -> TURN_COMPLETE | STEP_FAILED
//
// Each agent exchange (initial invoke and every mock-result continuation)
// consumes one turn of the step's budget.
func (r *Runner) runStep(ctx context.Context, tgt target.Target, testName, transcriptID string, index int, step core.Step, maxTurns int) core.StepResult {
	start := time.Now()

	run := &stepRun{
		testName:     testName,
		transcriptID: transcriptID,
		index:        index,
		step:         step,
		target:       tgt,
		limiter:      core.NewTurnLimiter(maxTurns),
		state:        core.StateAwaitingAgentResponse,
	}

	res := r.executeStep(ctx, run)

	r.logger.Debug("step finished",
		"test", testName, "step", index, "state", res.State.String(), "turns", res.Turns, "duration", time.Since(start))

	return res
}

func (r *Runner) executeStep(ctx context.Context, run *stepRun) core.StepResult {
	// Preload every mock payload so missing or unreadable artifacts fail the
	// step before the agent is contacted.
	for _, exp := range run.step.Expected {
		resp := exp.Response
		if resp == nil {
			loaded, err := r.loader.Load(exp.ResponseFile)
			if err != nil {
				return run.fail(err)
			}
			resp = loaded
		}
		run.pending = append(run.pending, &pendingExpectation{expectation: exp, response: *resp})
	}

	r.record(run.transcriptID, core.TranscriptEntry{Role: "user", Text: run.step.Message})

	reply, err := r.exchange(ctx, run, func() (*target.Reply, error) {
		return run.target.Invoke(ctx, run.step.Message)
	})
	if err != nil {
		return run.fail(err)
	}

	for reply.IsReturnControl() {
		run.state = core.StateInvocationDetected

		results, failure, err := r.substitute(run, reply.ReturnControl)
		if err != nil {
			return run.fail(err)
		}
		if failure != nil {
			run.state = core.StateStepFailed
			return run.result("", nil)
		}

		run.state = core.StateMockSubstituted

		invocationID := reply.ReturnControl.InvocationID
		reply, err = r.exchange(ctx, run, func() (*target.Reply, error) {
			return run.target.ContinueWithResult(ctx, invocationID, results)
		})
		if err != nil {
			return run.fail(err)
		}
	}

	r.record(run.transcriptID, core.TranscriptEntry{Role: "agent", Text: reply.Text})

	// Final reply received; every declared expectation must have been observed.
	var missing []core.ValidationResult
	for _, p := range run.pending {
		if !p.observed {
			exp := p.expectation
			missing = append(missing, core.ValidationResult{
				Outcome:  core.OutcomeMissingInvocation,
				Detail:   fmt.Sprintf("expected invocation %s was never observed", core.InvocationString(exp.Invocation)),
				Expected: &exp,
			})
		}
	}
	if len(missing) > 0 {
		run.validations = append(run.validations, missing...)
		run.state = core.StateStepFailed
		return run.result(reply.Text, nil)
	}

	run.state = core.StateTurnComplete
	return run.result(reply.Text, nil)
}

// substitute matches every invocation of a return-control request against the
// step's unconsumed expectations and assembles their mock results. It returns
// a validation failure (not an error) when an invocation is unexpected or
// mismatched.
func (r *Runner) substitute(run *stepRun, rc *target.ReturnControl) ([]target.InvocationResult, *core.ValidationResult, error) {
	var results []target.InvocationResult

	for _, observed := range rc.Inputs {
		// Matching runs against every declared expectation, consumed or not, so
		// a repeated call is reported as a repeat rather than as unknown.
		outcome, err := r.matcher.Match(observed, run.declared())
		if err != nil {
			return nil, nil, err
		}

		if outcome.Result != core.OutcomeMatched {
			validation := core.ValidationResult{
				Outcome:  outcome.Result,
				Detail:   outcome.Detail,
				Observed: observed,
				Expected: outcome.Expected,
			}
			run.validations = append(run.validations, validation)
			r.logger.Warn("invocation validation failed",
				"test", run.testName, "step", run.index, "outcome", outcome.Result.String(), "detail", outcome.Detail)
			return nil, &validation, nil
		}

		pending := run.consume(outcome.Expected)
		if pending == nil {
			// Matched an already-consumed expectation: the agent repeated a
			// call that must be observed exactly once.
			repeat := core.ValidationResult{
				Outcome:  core.OutcomeUnexpectedInvocation,
				Detail:   fmt.Sprintf("invocation %s was observed more than once", core.InvocationString(observed)),
				Observed: observed,
			}
			run.validations = append(run.validations, repeat)
			return nil, &repeat, nil
		}

		run.validations = append(run.validations, core.ValidationResult{
			Outcome:  core.OutcomeMatched,
			Detail:   outcome.Detail,
			Observed: observed,
			Expected: outcome.Expected,
		})

		r.logger.Debug("invocation matched",
			"test", run.testName, "step", run.index, "invocation", core.InvocationString(observed))

		r.record(run.transcriptID, core.TranscriptEntry{
			Role:       "tool",
			Text:       pending.response.Body(),
			Invocation: observed,
		})

		results = append(results, target.InvocationResult{
			Invocation: observed,
			Response:   pending.response,
		})
	}

	return results, nil, nil
}

// exchange performs one agent round-trip, charging it against the turn budget
// and applying the turn hook's optional override.
func (r *Runner) exchange(ctx context.Context, run *stepRun, call func() (*target.Reply, error)) (*target.Reply, error) {
	if err := run.limiter.Increment(); err != nil {
		return nil, fmt.Errorf("%w: step %d used %d turns", ErrMaxTurnsExceeded, run.index, run.limiter.Count())
	}

	run.state = core.StateAwaitingAgentResponse

	reply, err := call()
	if err != nil {
		return nil, fmt.Errorf("agent exchange failed: %w", err)
	}

	if r.hook != nil {
		override, err := r.hook.OnTurn(&StepContext{
			TestName:  run.testName,
			StepIndex: run.index,
			Step:      run.step,
			Reply:     reply,
			Turns:     run.limiter.Count(),
		})
		if err != nil {
			return nil, fmt.Errorf("turn hook failed: %w", err)
		}
		if override != nil {
			reply = override
		}
	}

	return reply, nil
}

// declared returns every expectation of the step in declaration order.
func (s *stepRun) declared() []core.ExpectedInvocation {
	out := make([]core.ExpectedInvocation, 0, len(s.pending))
	for _, p := range s.pending {
		out = append(out, p.expectation)
	}
	return out
}

// consume marks the pending expectation corresponding to the matched
// candidate as observed and returns it; nil if already consumed.
func (s *stepRun) consume(matched *core.ExpectedInvocation) *pendingExpectation {
	if matched == nil {
		return nil
	}
	for _, p := range s.pending {
		if p.observed {
			continue
		}
		if p.expectation.ResponseFile == matched.ResponseFile && identical(p.expectation.Invocation, matched.Invocation) {
			p.observed = true
			return p
		}
	}
	return nil
}

// identical compares two descriptors for full structural equality.
func identical(a, b core.Invocation) bool {
	return reflect.DeepEqual(a, b)
}

func (s *stepRun) fail(err error) core.StepResult {
	s.state = core.StateStepFailed
	return s.result("", err)
}

func (s *stepRun) result(finalReply string, err error) core.StepResult {
	return core.StepResult{
		Index:       s.index,
		State:       s.state,
		Validations: s.validations,
		FinalReply:  finalReply,
		Turns:       s.limiter.Count(),
		Err:         err,
	}
}

// record appends a transcript entry, logging persistence failures instead of
// failing the step (the transcript is diagnostic, not load-bearing).
func (r *Runner) record(transcriptID string, entry core.TranscriptEntry) {
	if entry.Role == "user" && entry.Text == "" {
		return
	}
	if err := r.transcripts.Append(transcriptID, entry); err != nil {
		r.logger.Warn("failed to append transcript entry", "error", err)
	}
}
