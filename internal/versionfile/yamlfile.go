package versionfile

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/dthorpe/relcraft/internal/state"
)

const yamlHint = "expected a YAML mapping with a top level string `version` key"

// YAMLFile handles YAML manifests with a top-level version key (pubspec.yaml,
// Chart.yaml). The document is edited through the yaml.Node tree so key
// order and comments round-trip.
type YAMLFile struct {
	name string
}

// Name implements Format.
func (f YAMLFile) Name() string { return f.name }

// GetVersion implements Format.
func (f YAMLFile) GetVersion(content []byte, path string) (string, error) {
	_, value, err := f.parse(content, path)
	if err != nil {
		return "", err
	}
	return value.Value, nil
}

// SetVersion implements Format.
func (f YAMLFile) SetVersion(sink *state.Sink, content []byte, newVersion, path string) ([]byte, error) {
	doc, value, err := f.parse(content, path)
	if err != nil {
		return nil, err
	}
	value.SetString(newVersion)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Content[0]); err != nil {
		return nil, &SerializeError{Path: path, Err: err}
	}
	if err := enc.Close(); err != nil {
		return nil, &SerializeError{Path: path, Err: err}
	}
	out := buf.Bytes()
	if err := sink.WriteFile(path, newVersion, out); err != nil {
		return nil, err
	}
	return out, nil
}

// parse returns the document node and the scalar node holding the version
// value.
func (f YAMLFile) parse(content []byte, path string) (*yaml.Node, *yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, nil, &DeserializeError{Path: path, Hint: yamlHint, Err: err}
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, nil, &DeserializeError{Path: path, Hint: yamlHint, Err: fmt.Errorf("document is not a mapping")}
	}
	mapping := doc.Content[0]
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i]
		if key.Value != "version" {
			continue
		}
		value := mapping.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return nil, nil, &DeserializeError{Path: path, Hint: yamlHint, Err: fmt.Errorf("version key is not a scalar")}
		}
		return &doc, value, nil
	}
	return nil, nil, &DeserializeError{Path: path, Hint: yamlHint, Err: fmt.Errorf("no top level version key")}
}
