// Package runner executes conversation tests against an agent target. It
// sends each step's message, intercepts return-control events, matches the
// observed tool invocations against the step's declared expectations,
// substitutes the configured mock responses and hands them back to the agent
// until a final reply arrives. Steps run strictly in order within a test;
// tests of a suite run concurrently against independent target sessions.
package runner
