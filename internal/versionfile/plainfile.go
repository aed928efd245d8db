package versionfile

import (
	"fmt"
	"strings"

	"github.com/dthorpe/relcraft/internal/state"
)

// PlainVersion handles VERSION files whose entire content is the version
// string.
type PlainVersion struct{}

// Name implements Format.
func (PlainVersion) Name() string { return "VERSION" }

// GetVersion implements Format.
func (PlainVersion) GetVersion(content []byte, path string) (string, error) {
	version := strings.TrimSpace(string(content))
	if version == "" {
		return "", &DeserializeError{
			Path: path,
			Hint: "expected the file to contain a version string",
			Err:  fmt.Errorf("file is empty"),
		}
	}
	return version, nil
}

// SetVersion implements Format.
func (PlainVersion) SetVersion(sink *state.Sink, content []byte, newVersion, path string) ([]byte, error) {
	out := []byte(newVersion + "\n")
	if err := sink.WriteFile(path, newVersion, out); err != nil {
		return nil, err
	}
	return out, nil
}
