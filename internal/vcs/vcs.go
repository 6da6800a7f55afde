// Package vcs resolves last-modified timestamps from version-control
// history. Lookup failures are never surfaced as errors: a file with no
// history simply has no timestamp.
package vcs

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Source yields the last-commit timestamp for a path relative to the
// content root. The second return is false when no timestamp is known.
type Source interface {
	LastModified(rel string) (int64, bool)
}

// Null is a Source with no history. Used when lookup is disabled.
type Null struct{}

// LastModified always reports no timestamp.
func (Null) LastModified(string) (int64, bool) { return 0, false }

// GitSource resolves timestamps from the git repository enclosing the
// content root. It prefers go-git and falls back to the git CLI; when
// neither can answer, every lookup reports no timestamp.
type GitSource struct {
	root    string
	repo    *git.Repository
	repoDir string
	cli     bool
}

// NewGitSource prepares a source for paths under contentRoot. It never
// fails: a missing repository or git binary yields a source whose lookups
// all miss.
func NewGitSource(contentRoot string) *GitSource {
	s := &GitSource{root: contentRoot}
	if repo, err := git.PlainOpenWithOptions(contentRoot, &git.PlainOpenOptions{DetectDotGit: true}); err == nil {
		s.repo = repo
		if wt, err := repo.Worktree(); err == nil {
			s.repoDir = wt.Filesystem.Root()
		}
	}
	if _, err := exec.LookPath("git"); err == nil {
		s.cli = true
	}
	return s
}

// LastModified returns the committer timestamp of the last commit touching
// the file at rel (slash-separated, relative to the content root).
func (s *GitSource) LastModified(rel string) (int64, bool) {
	if ts, ok := s.lookupGoGit(rel); ok {
		return ts, true
	}
	return s.lookupCLI(rel)
}

func (s *GitSource) lookupGoGit(rel string) (int64, bool) {
	if s.repo == nil || s.repoDir == "" {
		return 0, false
	}
	abs, err := filepath.Abs(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return 0, false
	}
	repoRel, err := filepath.Rel(s.repoDir, abs)
	if err != nil || strings.HasPrefix(repoRel, "..") {
		return 0, false
	}
	repoRel = filepath.ToSlash(repoRel)

	iter, err := s.repo.Log(&git.LogOptions{FileName: &repoRel})
	if err != nil {
		return 0, false
	}
	defer iter.Close()
	commit, err := iter.Next()
	if err != nil {
		return 0, false
	}
	return commit.Committer.When.Unix(), true
}

// lookupCLI shells out to `git log -1 --format=%ct -- <path>`. Non-zero
// exit or non-numeric output means no timestamp.
func (s *GitSource) lookupCLI(rel string) (int64, bool) {
	if !s.cli {
		return 0, false
	}
	cmd := exec.Command("git", "log", "-1", "--format=%ct", "--", filepath.FromSlash(rel))
	cmd.Dir = s.root
	out, err := cmd.Output()
	if err != nil {
		return 0, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
