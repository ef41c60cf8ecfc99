// Package report aggregates step and test outcomes into result records and
// suite summaries.
package report

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/logging"
)

// Options holds reporter configuration.
type Options struct {
	// Logger receives per-test result logs.
	Logger logging.Logger
}

// Reporter turns raw step outcomes into test results and suite summaries.
type Reporter struct {
	logger logging.Logger
}

// New constructs a Reporter with optional overrides.
func New(optFns ...func(o *Options)) *Reporter {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Reporter{logger: opts.Logger}
}

// BuildTestResult folds step results and the optional evaluator verdict into
// a single test result. A test passes when every step completed and the
// verdict, if present, is positive.
func (r *Reporter) BuildTestResult(name string, steps []core.StepResult, verdict *core.Verdict) core.TestResult {
	passed := len(steps) > 0
	reason := ""

	for _, s := range steps {
		if s.Passed() {
			continue
		}

		passed = false
		reason = failureReason(s)

		break
	}

	if passed && verdict != nil && !verdict.Passed {
		passed = false
		reason = verdict.Reasoning
	}

	result := core.TestResult{
		Name:       name,
		Passed:     passed,
		Steps:      steps,
		Reason:     reason,
		Evaluation: verdict,
	}

	if passed {
		r.logger.Info("test passed", "test", name, "steps", len(steps))
	} else {
		r.logger.Warn("test failed", "test", name, "reason", reason)
	}

	return result
}

// failureReason extracts the most specific explanation from a failed step.
func failureReason(s core.StepResult) string {
	if s.Err != nil {
		return fmt.Sprintf("step %d: %v", s.Index, s.Err)
	}

	for _, v := range s.Validations {
		if v.Outcome != core.OutcomeMatched {
			return fmt.Sprintf("step %d: %s", s.Index, v.Detail)
		}
	}

	return fmt.Sprintf("step %d failed in state %s", s.Index, s.State)
}

// Summary aggregates the results of one suite run.
type Summary struct {
	Total   int
	Passed  int
	Failed  int
	Results []core.TestResult
}

// Summarize counts passed and failed tests across a suite run.
func (r *Reporter) Summarize(results []core.TestResult) *Summary {
	s := &Summary{
		Total:   len(results),
		Results: results,
	}

	for _, res := range results {
		if res.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
	}

	return s
}

// AllPassed reports whether every test of the run passed.
func (s *Summary) AllPassed() bool {
	return s.Failed == 0 && s.Total > 0
}

// String renders a short human readable summary, one line per test.
func (s *Summary) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d/%d tests passed\n", s.Passed, s.Total)

	for _, res := range s.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}

		fmt.Fprintf(&b, "  [%s] %s", status, res.Name)

		if res.Reason != "" {
			fmt.Fprintf(&b, ": %s", res.Reason)
		}

		b.WriteString("\n")
	}

	return b.String()
}
