package versionfile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dthorpe/relcraft/internal/state"
)

const cargoTOMLHint = "expected a [package] table with a string `version` key"

var (
	tomlTableRe   = regexp.MustCompile(`^\s*\[\s*([^\]]+?)\s*\]\s*(?:#.*)?$`)
	tomlVersionRe = regexp.MustCompile(`^(\s*version\s*=\s*)"[^"]*"(.*)$`)
)

// CargoTOML handles Cargo.toml files. Reading goes through a real TOML parse;
// writing replaces only the version line inside [package], so comments,
// formatting, and every other table survive untouched.
type CargoTOML struct{}

type cargoManifest struct {
	Package struct {
		Version string `toml:"version"`
	} `toml:"package"`
}

// Name implements Format.
func (CargoTOML) Name() string { return "Cargo.toml" }

// GetVersion implements Format.
func (CargoTOML) GetVersion(content []byte, path string) (string, error) {
	var manifest cargoManifest
	if err := toml.Unmarshal(content, &manifest); err != nil {
		return "", &DeserializeError{Path: path, Hint: cargoTOMLHint, Err: err}
	}
	if manifest.Package.Version == "" {
		return "", &DeserializeError{Path: path, Hint: cargoTOMLHint, Err: fmt.Errorf("no version key in [package]")}
	}
	return manifest.Package.Version, nil
}

// SetVersion implements Format.
func (c CargoTOML) SetVersion(sink *state.Sink, content []byte, newVersion, path string) ([]byte, error) {
	// Parse first so malformed input fails as a deserialize error rather
	// than a silent no-match below.
	if _, err := c.GetVersion(content, path); err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	inPackage := false
	replaced := false
	for i, line := range lines {
		if m := tomlTableRe.FindStringSubmatch(line); m != nil {
			inPackage = m[1] == "package"
			continue
		}
		if !inPackage || replaced {
			continue
		}
		if m := tomlVersionRe.FindStringSubmatch(line); m != nil {
			lines[i] = fmt.Sprintf(`%s"%s"%s`, m[1], newVersion, m[2])
			replaced = true
		}
	}
	if !replaced {
		return nil, &SerializeError{Path: path, Err: fmt.Errorf("could not locate the version line in [package]")}
	}
	out := []byte(strings.Join(lines, "\n"))
	if err := sink.WriteFile(path, newVersion, out); err != nil {
		return nil, err
	}
	return out, nil
}
