package git

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// Repo represents the git repository a catalog lives in, if any
type Repo struct {
	Path string
	repo *git.Repository
}

// NewRepo opens the repository containing path. The catalog root may be a
// subdirectory of the work tree.
func NewRepo(path string) *Repo {
	r := &Repo{Path: path}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		r.repo = repo
	}
	return r
}

// IsRepo checks if the path is inside a git repository
func (r *Repo) IsRepo() bool {
	return r.repo != nil
}

// Revision describes the checked-out state of the catalog
type Revision struct {
	Branch string // Empty when HEAD is detached
	Hash   string // Abbreviated commit hash
	Dirty  bool   // Work tree has uncommitted changes
}

// String renders the revision as branch@hash with a * when dirty
func (rev Revision) String() string {
	s := rev.Hash
	if rev.Branch != "" {
		s = rev.Branch + "@" + rev.Hash
	}
	if rev.Dirty {
		s += "*"
	}
	return s
}

// Revision returns the current revision of the catalog
func (r *Repo) Revision() (*Revision, error) {
	if r.repo == nil {
		return nil, fmt.Errorf("not a git repository")
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}

	rev := &Revision{Hash: head.Hash().String()[:7]}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		// Bare repositories have no work tree to be dirty
		return rev, nil
	}
	status, err := worktree.Status()
	if err != nil {
		return rev, err
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}
