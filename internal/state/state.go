package state

import (
	"github.com/dthorpe/relcraft/internal/config"
	"github.com/dthorpe/relcraft/internal/logging"
)

// RunType is the context threaded through every workflow step. Steps receive
// it, may return an updated copy, and never share it through globals.
type RunType struct {
	Config *config.Config
	Sink   *Sink
	Logger *logging.Logger

	// PrereleaseLabel overrides the pre-release label for PrepareRelease
	// steps (set by the --prerelease-label flag).
	PrereleaseLabel string

	// PreparedVersion is the version produced by the most recent
	// BumpVersion or PrepareRelease step, as a string.
	PreparedVersion string
}

// New builds the initial context for a workflow run.
func New(cfg *config.Config, sink *Sink, logger *logging.Logger) *RunType {
	return &RunType{Config: cfg, Sink: sink, Logger: logger}
}

// WithPreparedVersion returns a copy of the context recording the version a
// step resolved.
func (r *RunType) WithPreparedVersion(version string) *RunType {
	clone := *r
	clone.PreparedVersion = version
	return &clone
}

// WithPrereleaseLabel returns a copy of the context carrying a pre-release
// label override.
func (r *RunType) WithPrereleaseLabel(label string) *RunType {
	clone := *r
	clone.PrereleaseLabel = label
	return &clone
}
