package core

import "fmt"

// Step is one unit of a test script: a user message (possibly blank when the
// turn is driven purely by mock results) plus the invocations the agent is
// expected to surface during that turn. Typically a step declares zero or one
// expectation; multiple are supported for turns with chained tool calls.
type Step struct {
	Message  string
	Expected []ExpectedInvocation
}

// Test is a single test case: an ordered step script, the results an
// evaluator should check the final conversation against, and a per-step turn
// budget.
type Test struct {
	Name            string
	Steps           []Step
	ExpectedResults []string
	// InitialPrompt seeds the conversation before the first step. It runs as
	// a plain exchange with no declared expectations.
	InitialPrompt string
	// MaxTurns bounds agent exchanges per step (0 = runner default).
	MaxTurns int
}

// Validate checks structural soundness of a single test.
func (t Test) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("test name must not be empty")
	}
	if len(t.Steps) == 0 {
		return fmt.Errorf("test %q has no steps", t.Name)
	}
	if t.MaxTurns < 0 {
		return fmt.Errorf("test %q has negative max turns", t.Name)
	}
	for i, st := range t.Steps {
		for _, exp := range st.Expected {
			if exp.Invocation == nil {
				return fmt.Errorf("test %q step %d declares an expectation without an invocation", t.Name, i)
			}
			if exp.ResponseFile == "" && exp.Response == nil {
				return fmt.Errorf("test %q step %d declares an expectation without a mock response", t.Name, i)
			}
		}
	}
	return nil
}

// Suite is a named collection of tests executed against independent sessions.
type Suite struct {
	Tests []Test
}

// NewSuite assembles a suite, validating each test and enforcing unique names.
func NewSuite(tests ...Test) (*Suite, error) {
	seen := make(map[string]struct{}, len(tests))
	for _, t := range tests {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seen[t.Name]; ok {
			return nil, fmt.Errorf("test names must be unique: %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return &Suite{Tests: tests}, nil
}

// NumTests returns the number of tests in the suite.
func (s *Suite) NumTests() int { return len(s.Tests) }
