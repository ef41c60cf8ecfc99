// Package agentcheck provides a high-level façade over the runner and its
// collaborators (matching, mock substitution, transcripts & logging) for
// testing conversational agents that surface tool calls through
// return-control events. Most applications interact with this package by:
//  1. Creating an AgentCheck via New() with a target factory
//  2. Declaring tests as steps with expected invocations and mock responses
//  3. Running a single test (RunTest) or a whole suite (RunSuite)
//
// The façade delegates execution to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; real agent integrations supply a concrete target such as
// target/bedrockagent and typically a structured logger.
package agentcheck

import (
	"context"

	"github.com/hupe1980/agentcheck/core"
	"github.com/hupe1980/agentcheck/evaluation"
	"github.com/hupe1980/agentcheck/logging"
	"github.com/hupe1980/agentcheck/matcher"
	"github.com/hupe1980/agentcheck/report"
	"github.com/hupe1980/agentcheck/runner"
	"github.com/hupe1980/agentcheck/session"
)

// Options configures the AgentCheck instance.
type Options struct {
	// MaxTurns bounds agent exchanges per step. Individual tests may override
	// it via Test.MaxTurns. Zero keeps the runner default.
	MaxTurns int

	// ContinueOnFailure keeps executing the remaining steps of a test after a
	// step fails, for diagnostic purposes. Default is to short-circuit.
	ContinueOnFailure bool

	// MaxConcurrentTests limits suite-level parallelism. This prevents
	// resource exhaustion against rate-limited agent backends. Steps within a
	// test always run sequentially.
	MaxConcurrentTests int

	// BaseDir resolves relative mock-response file paths.
	BaseDir string

	// MatcherOptions tune invocation matching strictness.
	MatcherOptions []func(o *matcher.Options)

	// Transcripts persists per-test conversation transcripts (defaults to an
	// in-memory implementation if not provided).
	Transcripts core.TranscriptStore

	// Evaluator optionally judges finished conversations against each test's
	// expected results.
	Evaluator evaluation.Evaluator

	// Hook optionally observes / overrides each conversation turn.
	Hook runner.TurnHook

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentCheck is the high-level façade aggregating the underlying runner and
// services.
type AgentCheck struct {
	opts   Options
	runner *runner.Runner
}

// New creates a new AgentCheck instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(newTarget runner.TargetFactory, optFns ...func(o *Options)) *AgentCheck {
	opts := Options{
		MaxTurns:           runner.DefaultMaxTurns,
		MaxConcurrentTests: 10,
		Transcripts:        session.NewInMemoryStore(),
		Logger:             logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	r := runner.New(newTarget, func(o *runner.Options) {
		o.MaxTurns = opts.MaxTurns
		o.ContinueOnFailure = opts.ContinueOnFailure
		o.MaxConcurrentTests = opts.MaxConcurrentTests
		o.BaseDir = opts.BaseDir
		o.Matcher = matcher.New(opts.MatcherOptions...)
		o.Transcripts = opts.Transcripts
		o.Evaluator = opts.Evaluator
		o.Hook = opts.Hook
		o.Logger = opts.Logger
	})

	return &AgentCheck{opts: opts, runner: r}
}

// RunTest executes a single test case against a fresh target session.
func (a *AgentCheck) RunTest(ctx context.Context, tc core.Test) core.TestResult {
	return a.runner.RunTest(ctx, tc)
}

// RunSuite executes every test of the suite concurrently up to
// MaxConcurrentTests, each against an independent target session.
func (a *AgentCheck) RunSuite(ctx context.Context, suite *core.Suite) (*report.Summary, error) {
	return a.runner.RunSuite(ctx, suite)
}
