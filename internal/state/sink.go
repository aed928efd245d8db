// Package state carries the execution context for a workflow run: whether
// mutations are real or dry-run, and the sink every file write must pass
// through. Adapters never touch the filesystem directly; routing everything
// through one sink is what makes dry-run mode leak-proof.
package state

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink is the single choke point for destructive writes. In dry-run mode it
// records a human-readable description of each intended change instead of
// touching disk.
type Sink struct {
	dryRun bool
	out    io.Writer
}

// NewSink builds a sink. out receives the dry-run descriptions; it is ignored
// when dryRun is false.
func NewSink(dryRun bool, out io.Writer) *Sink {
	return &Sink{dryRun: dryRun, out: out}
}

// DryRun reports whether the sink suppresses writes.
func (s *Sink) DryRun() bool {
	return s.dryRun
}

// WriteFile persists content to path, or records the intent when in dry-run
// mode. Real writes go through a temp file and rename so a failure never
// leaves a partially written file behind.
func (s *Sink) WriteFile(path, version string, content []byte) error {
	if s.dryRun {
		fmt.Fprintf(s.out, "Would change %s to version %s\n", path, version)
		return nil
	}
	return atomicWrite(path, content)
}

// RemoveFile deletes path, or records the intent when in dry-run mode.
func (s *Sink) RemoveFile(path string) error {
	if s.dryRun {
		fmt.Fprintf(s.out, "Would remove %s\n", path)
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("state: remove %s: %w", path, err)
	}
	return nil
}

func atomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("state: create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("state: write %s: %w", path, err)
	}
	return nil
}
