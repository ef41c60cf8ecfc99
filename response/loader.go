// Package response loads mock-response artifacts from the filesystem. A
// payload is parsed as JSON when possible and otherwise treated as opaque
// text. Loads are independent and idempotent; files are read-only shared
// resources so concurrent test cases may load the same artifact safely.
package response

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/hupe1980/agentcheck/core"
)

var (
	// ErrNotFound is returned when the response file path does not resolve.
	ErrNotFound = fmt.Errorf("response file not found")

	// ErrUnreadable is returned when the response file content cannot be
	// decoded as text.
	ErrUnreadable = fmt.Errorf("response content is not valid text")
)

// Options configure the Loader.
type Options struct {
	// BaseDir resolves relative response file paths. Empty means paths are
	// taken relative to the process working directory.
	BaseDir string
}

// Loader reads mock-response artifacts. It holds no mutable state and is safe
// for concurrent use.
type Loader struct {
	baseDir string
}

// NewLoader constructs a Loader with optional overrides.
func NewLoader(optFns ...func(o *Options)) *Loader {
	opts := Options{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Loader{baseDir: opts.BaseDir}
}

// Load reads the artifact at path and parses it into a MockResponse. On JSON
// parse failure the content is kept as opaque text. The raw content is always
// preserved byte-for-byte.
func (l *Loader) Load(path string) (*core.MockResponse, error) {
	full := path
	if l.baseDir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(l.baseDir, path)
	}

	raw, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, full)
		}
		return nil, fmt.Errorf("failed to read response file %s: %w", full, err)
	}

	if !utf8.Valid(raw) {
		return nil, fmt.Errorf("%w: %s", ErrUnreadable, full)
	}

	resp := &core.MockResponse{Raw: string(raw)}

	if json.Valid(raw) {
		var data any
		if err := json.Unmarshal(raw, &data); err == nil {
			resp.Data = data
		}
	}

	return resp, nil
}
