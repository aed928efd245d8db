// internal/config/config.go
//
// This package loads .relcraft.yaml from the project root. The file declares
// which packages exist (their versioned files and changelog) and which named
// workflows the CLI can run.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file relcraft looks for in the project root.
const FileName = ".relcraft.yaml"

// ErrNotFound indicates the project has no .relcraft.yaml.
var ErrNotFound = errors.New("config: " + FileName + " not found")

// Package declares one releasable unit: the set of files that record its
// version plus an optional changelog document.
type Package struct {
	Name           string   `yaml:"name"`
	VersionedFiles []string `yaml:"versioned_files"`
	Changelog      string   `yaml:"changelog,omitempty"`
}

// StepRef declares one workflow step. Rule is only read for BumpVersion.
type StepRef struct {
	Type string `yaml:"type"`
	Rule string `yaml:"rule,omitempty"`
}

// Workflow is a named, ordered list of steps.
type Workflow struct {
	Name  string    `yaml:"name"`
	Steps []StepRef `yaml:"steps"`
}

// Config holds the parsed project configuration.
type Config struct {
	// ProjectDir is the directory where the user ran `relcraft` from.
	ProjectDir string `yaml:"-"`

	Packages  []Package  `yaml:"packages"`
	Workflows []Workflow `yaml:"workflows"`
}

// Load reads and validates .relcraft.yaml in projectDir. A missing file
// returns ErrNotFound so callers can suggest a starting configuration.
func Load(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.ProjectDir = projectDir
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &parsed, nil
}

// Workflow returns the named workflow, if declared.
func (c *Config) Workflow(name string) (Workflow, bool) {
	for _, wf := range c.Workflows {
		if wf.Name == name {
			return wf, true
		}
	}
	return Workflow{}, false
}

// WorkflowNames returns the declared workflow names in file order.
func (c *Config) WorkflowNames() []string {
	names := make([]string, 0, len(c.Workflows))
	for _, wf := range c.Workflows {
		names = append(names, wf.Name)
	}
	return names
}

func (c *Config) normalize() {
	for i := range c.Packages {
		c.Packages[i].normalize()
	}
	for i := range c.Workflows {
		c.Workflows[i].normalize()
	}
}

func (c *Config) validate() error {
	seen := map[string]struct{}{}
	for i := range c.Packages {
		if err := c.Packages[i].validate(); err != nil {
			return fmt.Errorf("packages[%d]: %w", i, err)
		}
		if _, exists := seen[c.Packages[i].Name]; exists {
			return fmt.Errorf("packages[%d]: duplicate package name %s", i, c.Packages[i].Name)
		}
		seen[c.Packages[i].Name] = struct{}{}
	}
	wfSeen := map[string]struct{}{}
	for i := range c.Workflows {
		if err := c.Workflows[i].validate(); err != nil {
			return fmt.Errorf("workflows[%d]: %w", i, err)
		}
		if _, exists := wfSeen[c.Workflows[i].Name]; exists {
			return fmt.Errorf("workflows[%d]: duplicate workflow name %s", i, c.Workflows[i].Name)
		}
		wfSeen[c.Workflows[i].Name] = struct{}{}
	}
	return nil
}

func (p *Package) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Changelog = strings.TrimSpace(p.Changelog)
	files := make([]string, 0, len(p.VersionedFiles))
	for _, f := range p.VersionedFiles {
		f = strings.TrimSpace(f)
		if f != "" {
			files = append(files, filepath.Clean(f))
		}
	}
	p.VersionedFiles = files
}

func (p Package) validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(p.VersionedFiles) == 0 {
		return fmt.Errorf("package %s: at least one versioned file is required", p.Name)
	}
	for _, f := range p.VersionedFiles {
		if filepath.IsAbs(f) {
			return fmt.Errorf("package %s: versioned file %s must be relative to the project root", p.Name, f)
		}
	}
	return nil
}

func (w *Workflow) normalize() {
	w.Name = strings.TrimSpace(w.Name)
	for i := range w.Steps {
		w.Steps[i].Type = strings.TrimSpace(w.Steps[i].Type)
		w.Steps[i].Rule = strings.TrimSpace(w.Steps[i].Rule)
	}
}

func (w Workflow) validate() error {
	if w.Name == "" {
		return fmt.Errorf("workflow name is required")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("workflow %s: at least one step is required", w.Name)
	}
	for i, step := range w.Steps {
		if step.Type == "" {
			return fmt.Errorf("workflow %s step[%d]: type is required", w.Name, i)
		}
	}
	return nil
}
