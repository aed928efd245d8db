// Package step executes workflows: ordered sequences of fallible steps, each
// consuming and producing an execution context. Execution is strictly
// sequential and halts on the first failure; effects already committed by
// earlier steps are not rolled back.
package step

import (
	"fmt"

	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/release"
	"github.com/dthorpe/relcraft/internal/semver"
	"github.com/dthorpe/relcraft/internal/state"
)

// Kind enumerates the supported step types.
type Kind string

const (
	// KindBumpVersion bumps the package version with an explicit rule.
	KindBumpVersion Kind = "BumpVersion"
	// KindPrepareRelease classifies changes since the last release, bumps
	// the version accordingly, and updates the changelog.
	KindPrepareRelease Kind = "PrepareRelease"
)

// Step is one action in a workflow. Rule is only meaningful for BumpVersion.
type Step struct {
	Kind Kind
	Rule semver.Rule
}

// Run executes the step against the context and returns the updated context.
func (s Step) Run(run *state.RunType) (*state.RunType, error) {
	switch s.Kind {
	case KindBumpVersion:
		return release.BumpVersion(run, s.Rule)
	case KindPrepareRelease:
		return release.PrepareRelease(run)
	default:
		return run, fmt.Errorf("step: unknown step type %q", s.Kind)
	}
}

// Workflow is a named, ordered step sequence.
type Workflow struct {
	Name  string
	Steps []Step
}

// FromConfig converts a declared workflow into an executable one, parsing
// bump rules up front so misconfigurations fail before anything runs.
func FromConfig(wf config.Workflow) (Workflow, error) {
	out := Workflow{Name: wf.Name}
	for i, ref := range wf.Steps {
		switch Kind(ref.Type) {
		case KindBumpVersion:
			rule, err := semver.ParseRule(ref.Rule)
			if err != nil {
				return Workflow{}, fmt.Errorf("step: workflow %s step[%d]: %w", wf.Name, i, err)
			}
			out.Steps = append(out.Steps, Step{Kind: KindBumpVersion, Rule: rule})
		case KindPrepareRelease:
			out.Steps = append(out.Steps, Step{Kind: KindPrepareRelease})
		default:
			return Workflow{}, fmt.Errorf("step: workflow %s step[%d]: unknown step type %q", wf.Name, i, ref.Type)
		}
	}
	return out, nil
}

// Execute runs the workflow as a linear fold over its steps. The first
// failure wins: it is classified into a terminal diagnostic and no later
// step executes.
func Execute(wf Workflow, run *state.RunType) (*state.RunType, *Error) {
	for i, s := range wf.Steps {
		run.Logger.Printf("workflow %s: step %d/%d %s", wf.Name, i+1, len(wf.Steps), s.Kind)
		next, err := s.Run(run)
		if err != nil {
			wrapped := Wrap(err, run.Config.ProjectDir)
			run.Logger.Printf("workflow %s: step %s failed: %v", wf.Name, s.Kind, wrapped)
			return run, wrapped
		}
		run = next
	}
	return run, nil
}
