package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/evaluation"
	"github.com/hupe1980/agentcheck/logging"
	"github.com/hupe1980/agentcheck/matcher"
	"github.com/hupe1980/agentcheck/report"
	"github.com/hupe1980/agentcheck/response"
	"github.com/hupe1980/agentcheck/session"
	"github.com/hupe1980/agentcheck/target"
)

// ErrMaxTurnsExceeded is returned when a step consumes more agent exchanges
// than its turn budget allows. Fatal and non-retryable: the step fails
// regardless of eventual matches.
var ErrMaxTurnsExceeded = fmt.Errorf("max turns exceeded")

// DefaultMaxTurns is the per-step turn budget applied when neither the test
// nor the runner overrides it.
const DefaultMaxTurns = 2

// TargetFactory creates a fresh collaborator session for one test case.
// Conversation state is session-bound, so factories must return a new Target
// per call; test cases run against independent sessions.
type TargetFactory func(ctx context.Context) (target.Target, error)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// MaxTurns bounds agent exchanges per step (per-test override via Test.MaxTurns).
	MaxTurns int
	// ContinueOnFailure keeps executing the remaining steps of a test after a
	// step fails, for diagnostic purposes. Default is to short-circuit.
	ContinueOnFailure bool
	// MaxConcurrentTests limits suite-level parallelism. Steps within a test
	// are always strictly sequential.
	MaxConcurrentTests int
	// BaseDir resolves relative mock-response file paths.
	BaseDir string
	// Loader overrides the response artifact loader (BaseDir is ignored then).
	Loader *response.Loader
	// Matcher overrides invocation matching strictness.
	Matcher *matcher.Matcher
	// Transcripts persists per-test conversation transcripts.
	Transcripts core.TranscriptStore
	// Evaluator optionally judges finished conversations against each test's
	// expected results.
	Evaluator evaluation.Evaluator
	// Hook optionally observes / overrides each conversation turn.
	Hook TurnHook
	// Logger receives structured execution logs.
	Logger logging.Logger
}

// Runner drives conversation tests against an agent target: it sends step
// messages, intercepts return-control events, matches observed invocations
// against declared expectations, substitutes mock responses and resolves each
// step as TURN_COMPLETE or STEP_FAILED. Public methods are safe for
// concurrent use.
type Runner struct {
	newTarget TargetFactory

	maxTurns           int
	continueOnFailure  bool
	maxConcurrentTests int

	loader      *response.Loader
	matcher     *matcher.Matcher
	transcripts core.TranscriptStore
	evaluator   evaluation.Evaluator
	hook        TurnHook
	reporter    *report.Reporter
	logger      logging.Logger
}

// New constructs a Runner with optional overrides.
func New(newTarget TargetFactory, optFns ...func(o *Options)) *Runner {
	opts := Options{
		MaxTurns:           DefaultMaxTurns,
		MaxConcurrentTests: 10,
		Transcripts:        session.NewInMemoryStore(),
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Loader == nil {
		opts.Loader = response.NewLoader(func(o *response.Options) { o.BaseDir = opts.BaseDir })
	}
	if opts.Matcher == nil {
		opts.Matcher = matcher.New()
	}

	return &Runner{
		newTarget:          newTarget,
		maxTurns:           opts.MaxTurns,
		continueOnFailure:  opts.ContinueOnFailure,
		maxConcurrentTests: opts.MaxConcurrentTests,
		loader:             opts.Loader,
		matcher:            opts.Matcher,
		transcripts:        opts.Transcripts,
		evaluator:          opts.Evaluator,
		hook:               opts.Hook,
		reporter:           report.New(func(o *report.Options) { o.Logger = opts.Logger }),
		logger:             opts.Logger,
	}
}

// RunSuite executes every test of the suite, each against an independent
// target session. Tests run concurrently up to MaxConcurrentTests; results
// are returned in suite order.
func (r *Runner) RunSuite(ctx context.Context, suite *core.Suite) (*report.Summary, error) {
	results := make([]core.TestResult, len(suite.Tests))

	sem := make(chan struct{}, r.maxConcurrentTests)
	var wg sync.WaitGroup

	for i, tc := range suite.Tests {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, tc core.Test) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.RunTest(ctx, tc)
		}(i, tc)
	}

	wg.Wait()

	return r.reporter.Summarize(results), nil
}

// RunTest executes a single test case against a fresh target session.
func (r *Runner) RunTest(ctx context.Context, tc core.Test) core.TestResult {
	if err := tc.Validate(); err != nil {
		return core.TestResult{Name: tc.Name, Reason: err.Error()}
	}

	tgt, err := r.newTarget(ctx)
	if err != nil {
		return core.TestResult{Name: tc.Name, Reason: fmt.Sprintf("failed to create target: %v", err)}
	}

	transcriptID := core.NewID()
	if _, err := r.transcripts.Create(transcriptID); err != nil {
		return core.TestResult{Name: tc.Name, Reason: fmt.Sprintf("failed to create transcript: %v", err)}
	}

	maxTurns := tc.MaxTurns
	if maxTurns == 0 {
		maxTurns = r.maxTurns
	}

	steps := tc.Steps
	if tc.InitialPrompt != "" {
		// The initial prompt runs as a leading step without expectations.
		steps = append([]core.Step{{Message: tc.InitialPrompt}}, steps...)
	}

	var stepResults []core.StepResult

	for i, step := range steps {
		res := r.runStep(ctx, tgt, tc.Name, transcriptID, i, step, maxTurns)
		stepResults = append(stepResults, res)

		if !res.Passed() && !r.continueOnFailure {
			break
		}
	}

	verdict := r.evaluate(ctx, tc, transcriptID, stepResults)

	return r.reporter.BuildTestResult(tc.Name, stepResults, verdict)
}

// evaluate runs the optional evaluator once every step has passed.
func (r *Runner) evaluate(ctx context.Context, tc core.Test, transcriptID string, stepResults []core.StepResult) *core.Verdict {
	if r.evaluator == nil || len(tc.ExpectedResults) == 0 {
		return nil
	}
	for _, res := range stepResults {
		if !res.Passed() {
			return nil
		}
	}

	transcript, err := r.transcripts.Get(transcriptID)
	if err != nil {
		r.logger.Error("failed to load transcript for evaluation", "test", tc.Name, "error", err)
		return &core.Verdict{Passed: false, Reasoning: fmt.Sprintf("transcript unavailable: %v", err)}
	}

	start := time.Now()
	verdict, err := r.evaluator.Evaluate(ctx, transcript, tc.ExpectedResults)
	if err != nil {
		r.logger.Error("evaluator failed", "test", tc.Name, "duration", time.Since(start), "error", err)
		return &core.Verdict{Passed: false, Reasoning: fmt.Sprintf("evaluator error: %v", err)}
	}

	r.logger.Debug("evaluator verdict", "test", tc.Name, "passed", verdict.Passed, "duration", time.Since(start))

	return verdict
}
