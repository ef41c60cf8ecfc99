// Package core provides the foundational domain types used by agentcheck. It
// defines the core abstractions for:
//
//   - Invocations (structured descriptors of tool/action calls surfaced by an
//     agent through return-control events)
//   - Expectations (declared invocations bound to mock responses)
//   - Tests, steps and their validation results
//   - Conversation transcripts and the pluggable store persisting them
//
// The package intentionally keeps implementation concerns (matching, step
// orchestration, concrete agent targets) out of scope, exposing small types
// and interfaces so that sibling packages can be composed or replaced
// independently.
package core
