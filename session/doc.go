// Package session provides transcript persistence implementations. The
// in-memory store suits tests and one-shot evaluation runs; durable backends
// can implement core.TranscriptStore for long-lived result archives.
package session
