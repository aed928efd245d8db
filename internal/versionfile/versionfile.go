// Package versionfile reads and writes the version field embedded in project
// metadata files. Each supported file format implements the same two-operation
// capability (get version, set version); a registry keyed by file name decides
// which implementation owns a given path. Adapters preserve the surrounding
// structure of the file — only the version value changes.
package versionfile

import (
	"fmt"

	"github.com/dthorpe/relcraft/internal/state"
)

// Format is implemented once per supported file kind. SetVersion must route
// the rewritten content through the sink; adapters never write to disk
// directly.
type Format interface {
	// Name identifies the format in diagnostics (e.g. "package.json").
	Name() string
	// GetVersion extracts the version string from content. Failures name
	// path and describe the expected shape.
	GetVersion(content []byte, path string) (string, error)
	// SetVersion replaces the version field, leaving every unrelated
	// property and its ordering intact, and passes the result through the
	// sink. It returns the rewritten content.
	SetVersion(sink *state.Sink, content []byte, newVersion, path string) ([]byte, error)
}

// DeserializeError reports content that did not parse as the expected
// structure. This is a user-fixable problem.
type DeserializeError struct {
	Path string
	Hint string
	Err  error
}

func (e *DeserializeError) Error() string {
	return fmt.Sprintf("versionfile: deserialize %s: %v", e.Path, e.Err)
}

func (e *DeserializeError) Unwrap() error { return e.Err }

// SerializeError reports a failure to re-encode content after a successful
// version bump. User input cannot cause this; it is treated as a bug.
type SerializeError struct {
	Path string
	Err  error
}

func (e *SerializeError) Error() string {
	return fmt.Sprintf("versionfile: serialize %s with new version: %v", e.Path, e.Err)
}

func (e *SerializeError) Unwrap() error { return e.Err }
