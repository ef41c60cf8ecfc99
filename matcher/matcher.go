// Package matcher implements exact-field matching of observed return-control
// invocations against the expectations declared for a conversation step. The
// matcher is a pure function over its inputs: it never advances a session or
// loads a response itself.
package matcher

import (
	"fmt"
	"strings"

	"github.com/hupe1980/agentcheck/core"
)

// ErrAmbiguousExpectation is returned when more than one declared expectation
// fully matches the observed invocation. This is a test-authoring defect, not
// an agent behavior defect: action/path/function combinations should be
// unique within a step.
var ErrAmbiguousExpectation = fmt.Errorf("ambiguous expectation")

// Options configure matching strictness.
type Options struct {
	// StrictTypes additionally requires the Type field of each expected
	// parameter to equal the observed one. By default type is metadata only.
	StrictTypes bool
	// StrictParameters requires the observed parameter name set to equal the
	// expected set exactly, rejecting extra observed names. By default extra
	// observed parameters with non-colliding names are tolerated.
	StrictParameters bool
}

// Outcome is the result of matching one observed invocation against a
// candidate set.
type Outcome struct {
	// Result is MATCHED, UNEXPECTED_INVOCATION or PARAMETER_MISMATCH.
	Result core.Outcome
	// Expected is the surviving candidate on a match, or the nearest
	// identity-matched candidate on a parameter mismatch.
	Expected *core.ExpectedInvocation
	// Detail explains the verdict including the expected/observed diff.
	Detail string
}

// Matcher compares observed invocation descriptors against declared
// expectations. It has no mutable state after construction and is safe for
// concurrent use.
type Matcher struct {
	opts Options
}

// New constructs a Matcher with optional strictness overrides.
func New(optFns ...func(o *Options)) *Matcher {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Matcher{opts: opts}
}

// Match compares an observed invocation against the candidate expectations.
//
// Candidates are filtered in stages: invocation kind (API vs function style),
// then identity (action group plus apiPath+httpMethod or function), then
// parameters (name→value pairing, order-independent). Exactly one survivor
// yields MATCHED with that candidate. Zero survivors yield
// PARAMETER_MISMATCH when at least one candidate matched on identity, and
// UNEXPECTED_INVOCATION otherwise. More than one survivor is a configuration
// error surfaced as ErrAmbiguousExpectation.
func (m *Matcher) Match(observed core.Invocation, candidates []core.ExpectedInvocation) (Outcome, error) {
	var (
		matched  []*core.ExpectedInvocation
		nearMiss *core.ExpectedInvocation
		nearDiff string
	)

	for i := range candidates {
		cand := &candidates[i]
		if !identityEqual(observed, cand.Invocation) {
			continue
		}
		if diff := m.parameterDiff(core.InvocationParameters(cand.Invocation), core.InvocationParameters(observed)); diff != "" {
			if nearMiss == nil {
				nearMiss, nearDiff = cand, diff
			}
			continue
		}
		matched = append(matched, cand)
	}

	switch {
	case len(matched) == 1:
		return Outcome{
			Result:   core.OutcomeMatched,
			Expected: matched[0],
			Detail:   fmt.Sprintf("invocation %s matched declared expectation", core.InvocationString(observed)),
		}, nil
	case len(matched) > 1:
		return Outcome{}, fmt.Errorf("%w: %d expectations match invocation %s", ErrAmbiguousExpectation, len(matched), core.InvocationString(observed))
	case nearMiss != nil:
		return Outcome{
			Result:   core.OutcomeParameterMismatch,
			Expected: nearMiss,
			Detail:   fmt.Sprintf("invocation %s matched on identity but not parameters: %s", core.InvocationString(observed), nearDiff),
		}, nil
	default:
		return Outcome{
			Result: core.OutcomeUnexpectedInvocation,
			Detail: fmt.Sprintf("no expectation declared for observed invocation %s %s", core.InvocationString(observed), formatParameters(core.InvocationParameters(observed))),
		}, nil
	}
}

// identityEqual reports whether observed and expected agree on kind, action
// group and apiPath+httpMethod (API style) or function (function style).
func identityEqual(observed, expected core.Invocation) bool {
	switch exp := expected.(type) {
	case core.APIInvocation:
		obs, ok := observed.(core.APIInvocation)
		return ok && obs.ActionGroup == exp.ActionGroup && obs.APIPath == exp.APIPath && obs.HTTPMethod == exp.HTTPMethod
	case core.FunctionInvocation:
		obs, ok := observed.(core.FunctionInvocation)
		return ok && obs.ActionGroup == exp.ActionGroup && obs.Function == exp.Function
	default:
		return false
	}
}

// parameterDiff returns "" when the observed parameters satisfy the expected
// ones, otherwise a human-readable description of every disagreement.
// Ordering is irrelevant on both sides.
func (m *Matcher) parameterDiff(expected, observed []core.Parameter) string {
	observedByName := make(map[string]core.Parameter, len(observed))
	for _, p := range observed {
		observedByName[p.Name] = p
	}

	var diffs []string

	for _, want := range expected {
		got, ok := observedByName[want.Name]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("parameter %q: expected %q, not observed", want.Name, want.Value))
			continue
		}
		if got.Value != want.Value {
			diffs = append(diffs, fmt.Sprintf("parameter %q: expected %q, observed %q", want.Name, want.Value, got.Value))
			continue
		}
		if m.opts.StrictTypes && got.Type != want.Type {
			diffs = append(diffs, fmt.Sprintf("parameter %q: expected type %q, observed type %q", want.Name, want.Type, got.Type))
		}
	}

	if m.opts.StrictParameters {
		expectedNames := make(map[string]struct{}, len(expected))
		for _, p := range expected {
			expectedNames[p.Name] = struct{}{}
		}
		for _, p := range observed {
			if _, ok := expectedNames[p.Name]; !ok {
				diffs = append(diffs, fmt.Sprintf("parameter %q: observed %q, not expected", p.Name, p.Value))
			}
		}
	}

	return strings.Join(diffs, "; ")
}

// formatParameters renders a parameter sequence for diagnostics.
func formatParameters(params []core.Parameter) string {
	if len(params) == 0 {
		return "(no parameters)"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%s=%q", p.Name, p.Value)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
