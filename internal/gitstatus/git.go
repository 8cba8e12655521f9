package gitstatus

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Commit describes the most recent commit of a repository.
type Commit struct {
	Hash      string
	Message   string
	Author    string
	Timestamp time.Time
}

// Status is a point-in-time snapshot of a repository's state.
type Status struct {
	CurrentBranch  string
	HasUncommitted bool
	Ahead          int
	Behind         int
	LastCommit     *Commit
}

// Provider answers repository state queries for a directory. Implementations
// are synchronous and may fail; sub-queries that fail independently (no
// upstream, no commits yet) degrade to zero values instead of failing the
// whole Status call.
type Provider interface {
	IsRepo(dir string) bool
	Status(dir string) (Status, error)
}

// CLI is a Provider that shells out to the git executable.
type CLI struct{}

// NewCLI returns a Provider backed by the git command line tool.
func NewCLI() *CLI {
	return &CLI{}
}

// IsRepo reports whether dir is the working tree of a git repository.
func (c *CLI) IsRepo(dir string) bool {
	_, err := gitOutput(dir, "rev-parse", "--git-dir")
	return err == nil
}

// Status queries branch, dirtiness, ahead/behind counts and the last commit.
func (c *CLI) Status(dir string) (Status, error) {
	if !c.IsRepo(dir) {
		return Status{}, fmt.Errorf("%s is not a git repository", dir)
	}

	st := Status{
		CurrentBranch:  c.currentBranch(dir),
		HasUncommitted: c.hasUncommitted(dir),
	}
	st.Ahead, st.Behind = c.aheadBehind(dir)
	st.LastCommit = c.lastCommit(dir)
	return st, nil
}

// currentBranch returns the checked-out branch name, or "(detached)" when
// HEAD is not on a branch or the query fails.
func (c *CLI) currentBranch(dir string) string {
	out, err := gitOutput(dir, "branch", "--show-current")
	if err != nil {
		return "(detached)"
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "(detached)"
	}
	return branch
}

// hasUncommitted reports whether the working tree has modified, staged, or
// untracked files.
func (c *CLI) hasUncommitted(dir string) bool {
	out, err := gitOutput(dir, "status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}

// aheadBehind returns the commit counts relative to the upstream branch.
// No upstream, or any git failure, yields (0, 0).
func (c *CLI) aheadBehind(dir string) (int, int) {
	out, err := gitOutput(dir, "rev-list", "--left-right", "--count", "HEAD...@{u}")
	if err != nil {
		return 0, 0
	}
	parts := strings.Fields(strings.TrimSpace(out))
	if len(parts) != 2 {
		return 0, 0
	}
	ahead, _ := strconv.Atoi(parts[0])
	behind, _ := strconv.Atoi(parts[1])
	return ahead, behind
}

// lastCommit returns the most recent commit, or nil when the repository has
// no commits yet. The subject goes last in the format so a "|" inside the
// commit message cannot shift the fixed fields.
func (c *CLI) lastCommit(dir string) *Commit {
	out, err := gitOutput(dir, "log", "-1", "--format=%h|%an|%at|%s")
	if err != nil {
		return nil
	}
	parts := strings.SplitN(strings.TrimSpace(out), "|", 4)
	if len(parts) < 4 {
		return nil
	}
	secs, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil
	}
	return &Commit{
		Hash:      parts[0],
		Author:    parts[1],
		Timestamp: time.Unix(secs, 0).UTC(),
		Message:   parts[3],
	}
}

// gitOutput runs a git sub-command in dir and returns its stdout. A non-zero
// exit status is reported as an error carrying stderr.
func gitOutput(dir string, args ...string) (string, error) {
	fullArgs := append([]string{"-C", dir}, args...)
	cmd := exec.Command("git", fullArgs...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", err
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}
