// Package gitrepo answers the two VCS questions the release engine needs:
// what the last release tag is, and which commits landed since. It shells out
// to the git binary rather than linking a git implementation.
package gitrepo

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrGit marks failures from the git collaborator so the pipeline can report
// them as an external error category.
var ErrGit = errors.New("gitrepo: git command failed")

// ErrNotARepo indicates the project directory is not inside a git work tree.
var ErrNotARepo = errors.New("gitrepo: not a git repository")

// Repo runs git commands inside one repository directory.
type Repo struct {
	dir string
}

// New creates a handle for the repository at dir.
func New(dir string) *Repo {
	return &Repo{dir: dir}
}

// Validate verifies dir is a git repository.
func (r *Repo) Validate() error {
	if _, err := r.run("rev-parse", "--git-dir"); err != nil {
		return fmt.Errorf("%w: %s", ErrNotARepo, r.dir)
	}
	return nil
}

// LatestTag returns the most recent tag reachable from HEAD, or "" when the
// repository has no tags yet.
func (r *Repo) LatestTag() (string, error) {
	out, err := r.run("describe", "--tags", "--abbrev=0")
	if err != nil {
		if isNoTags(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: describe: %v", ErrGit, err)
	}
	return strings.TrimSpace(out), nil
}

// isNoTags recognizes the describe failures that mean "no tags reachable from
// HEAD" rather than a broken repository. Any other exit is a real error.
func isNoTags(err error) bool {
	var exit *exec.ExitError
	if !errors.As(err, &exit) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "cannot describe") ||
		strings.Contains(msg, "No tags can describe") ||
		strings.Contains(msg, "No names found")
}

// CommitsSince returns the full messages of commits after tag, oldest first
// so classified entries stay chronological. Full bodies matter: footers like
// BREAKING CHANGE live below the subject line. An empty tag means the whole
// history.
func (r *Repo) CommitsSince(tag string) ([]string, error) {
	// %x1e separates records so multi-line messages survive intact.
	args := []string{"log", "--format=%B%x1e", "--reverse"}
	if tag != "" {
		args = append(args, tag+"..HEAD")
	}
	out, err := r.run(args...)
	if err != nil {
		return nil, fmt.Errorf("%w: log: %v", ErrGit, err)
	}
	var messages []string
	for _, record := range strings.Split(out, "\x1e") {
		if record = strings.TrimSpace(record); record != "" {
			messages = append(messages, record)
		}
	}
	return messages, nil
}

func (r *Repo) run(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return "", err
	}
	return string(out), nil
}
