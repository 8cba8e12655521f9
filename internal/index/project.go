package index

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"px/internal/gitstatus"
)

// Project is one indexed repository and its cached metadata. Path is the
// identity key; Name is derived from the final path component at creation
// time and never re-derived. Timestamps are whole-second epoch values on the
// wire, with optional ones omitted (zero) when absent.
type Project struct {
	Path         string    `json:"path"`
	Name         string    `json:"name"`
	LastModified int64     `json:"last_modified"`
	GitStatus    GitStatus `json:"git_status"`

	// FrecencyScore is always the output of Score applied to the current
	// AccessCount/LastAccessed pair; nothing else writes it.
	FrecencyScore float64 `json:"frecency_score"`
	LastAccessed  int64   `json:"last_accessed,omitempty"`
	AccessCount   int     `json:"access_count"`

	ReadmeExcerpt string `json:"readme_excerpt,omitempty"`
}

// GitStatus is the repository state snapshot taken when the project was
// built during a sync.
type GitStatus struct {
	CurrentBranch  string      `json:"current_branch"`
	HasUncommitted bool        `json:"has_uncommitted"`
	Ahead          int         `json:"ahead"`
	Behind         int         `json:"behind"`
	LastCommit     *CommitInfo `json:"last_commit,omitempty"`
}

// CommitInfo describes the most recent commit.
type CommitInfo struct {
	Hash      string `json:"hash"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	Timestamp int64  `json:"timestamp"`
}

// readmeNames are the conventional README filenames checked in order; only
// the first one found is read.
var readmeNames = []string{"README.md", "README.MD", "readme.md", "README", "Readme.md"}

// BuildProject constructs a fresh Project for a repository root. Frecency
// fields are zero-initialized; the caller carries them forward from a prior
// index generation. The path must be a directory and a valid repository;
// individual status sub-queries degrade gracefully inside the provider.
func BuildProject(path string, git gitstatus.Provider) (*Project, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", path)
	}
	if !git.IsRepo(path) {
		return nil, fmt.Errorf("%s is not a repository", path)
	}

	st, err := git.Status(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read repository status for %s: %w", path, err)
	}

	p := &Project{
		Path:      path,
		Name:      filepath.Base(path),
		GitStatus: newGitStatus(st),
	}

	if st.LastCommit != nil {
		p.LastModified = st.LastCommit.Timestamp.Unix()
	} else {
		p.LastModified = info.ModTime().Unix()
	}

	p.ReadmeExcerpt = readmeExcerpt(path)
	return p, nil
}

func newGitStatus(st gitstatus.Status) GitStatus {
	out := GitStatus{
		CurrentBranch:  st.CurrentBranch,
		HasUncommitted: st.HasUncommitted,
		Ahead:          st.Ahead,
		Behind:         st.Behind,
	}
	if st.LastCommit != nil {
		out.LastCommit = &CommitInfo{
			Hash:      st.LastCommit.Hash,
			Message:   st.LastCommit.Message,
			Author:    st.LastCommit.Author,
			Timestamp: st.LastCommit.Timestamp.Unix(),
		}
	}
	return out
}

// readmeExcerpt returns the first non-empty line of the repository's README,
// with leading markdown heading markers stripped. Empty string means no
// README, or no usable line in it.
func readmeExcerpt(dir string) string {
	for _, name := range readmeNames {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			line = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if line != "" {
				return line
			}
		}
		return ""
	}
	return ""
}

// updateFrecency recomputes the frecency score from the current access
// fields. Call after every mutation of AccessCount or LastAccessed.
func (p *Project) updateFrecency() {
	p.FrecencyScore = Score(p.AccessCount, p.lastAccessedTime())
}

func (p *Project) lastAccessedTime() time.Time {
	if p.LastAccessed == 0 {
		return time.Time{}
	}
	return time.Unix(p.LastAccessed, 0)
}
