package versionfile

import (
	"encoding/json"
	"fmt"

	"github.com/iancoleman/orderedmap"

	"github.com/dthorpe/relcraft/internal/state"
)

const packageJSONHint = "expected a JSON object with a top level string `version` property"

// PackageJSON handles npm package.json files. The object is decoded into an
// order-preserving map so sibling keys round-trip in their original order.
type PackageJSON struct{}

// Name implements Format.
func (PackageJSON) Name() string { return "package.json" }

// GetVersion implements Format.
func (PackageJSON) GetVersion(content []byte, path string) (string, error) {
	obj := orderedmap.New()
	if err := json.Unmarshal(content, obj); err != nil {
		return "", &DeserializeError{Path: path, Hint: packageJSONHint, Err: err}
	}
	value, ok := obj.Get("version")
	if !ok {
		return "", &DeserializeError{Path: path, Hint: packageJSONHint, Err: fmt.Errorf("no top level version property")}
	}
	version, ok := value.(string)
	if !ok {
		return "", &DeserializeError{Path: path, Hint: packageJSONHint, Err: fmt.Errorf("version property is not a string")}
	}
	return version, nil
}

// SetVersion implements Format. The object is re-encoded with two-space
// indentation so repeated bumps produce minimal diffs.
func (PackageJSON) SetVersion(sink *state.Sink, content []byte, newVersion, path string) ([]byte, error) {
	obj := orderedmap.New()
	if err := json.Unmarshal(content, obj); err != nil {
		return nil, &DeserializeError{Path: path, Hint: packageJSONHint, Err: err}
	}
	obj.Set("version", newVersion)
	out, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return nil, &SerializeError{Path: path, Err: err}
	}
	out = append(out, '\n')
	if err := sink.WriteFile(path, newVersion, out); err != nil {
		return nil, err
	}
	return out, nil
}
