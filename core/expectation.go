package core

// MockResponse is a precomputed payload substituted for a real external call
// during testing. It is either a structured value (successful JSON parse) or
// opaque text. The raw form is always preserved so the payload can be handed
// back to the agent byte-for-byte.
type MockResponse struct {
	Raw  string // exact artifact contents
	Data any    // parsed JSON value; nil when the payload is plain text
}

// IsJSON reports whether the payload parsed as JSON.
func (m MockResponse) IsJSON() bool { return m.Data != nil }

// Body returns the payload exactly as it should be fed back to the agent.
func (m MockResponse) Body() string { return m.Raw }

// ExpectedInvocation binds a declared invocation descriptor to the mock
// response substituted when the agent issues a matching call. Exactly one of
// ResponseFile or Response should be set; an inline Response takes precedence
// over the file path. Declared per conversation step; the mock payload's
// lifetime is that step's evaluation.
type ExpectedInvocation struct {
	// Invocation is the descriptor an observed call must match exactly.
	Invocation Invocation
	// ResponseFile is the path to the mock payload, resolved against the
	// runner's base directory when relative.
	ResponseFile string
	// Response is an inline mock payload bypassing the file system.
	Response *MockResponse
}
