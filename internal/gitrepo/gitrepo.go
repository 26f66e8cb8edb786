package gitrepo

import (
	"fmt"
	"os"
	"path/filepath"

	"axsync/internal/color"
	"axsync/internal/gitremote"
	logger "axsync/internal/log"
	"axsync/internal/sh"

	"github.com/cenkalti/backoff/v4"
)

// fetch is a network operation and may be retried; the revision sync itself
// never is.
const fetchRetries = 2

// Repository is a local working copy of an external source dependency,
// pinned to either a commit or a branch.
type Repository struct {
	Name   string
	URL    string
	Path   string // target directory, relative to the working directory
	Commit string
	Branch string
}

func CreateFromDepConfig(dep gitremote.DepConfig) *Repository {
	return &Repository{
		Name:   dep.Name,
		URL:    dep.URL,
		Path:   dep.Path,
		Commit: dep.Commit,
		Branch: dep.Branch,
	}
}

func (r *Repository) GetName() string {
	return r.Name
}

// TargetDir resolves the target directory to an absolute path.
func (r *Repository) TargetDir() string {
	abs, err := filepath.Abs(r.Path)
	if err != nil {
		return r.Path
	}
	return abs
}

// IsCloned reports whether the target directory holds a git working copy.
func (r *Repository) IsCloned() bool {
	info, err := os.Stat(filepath.Join(r.TargetDir(), ".git"))
	return err == nil && info.IsDir()
}

// NeedsSync reports whether Sync would change anything. Branch-pinned
// dependencies always re-sync since the remote head may have moved.
func (r *Repository) NeedsSync() (bool, error) {
	if !r.IsCloned() {
		return true, nil
	}
	if r.Commit != "" {
		at, err := r.AtCommit(r.Commit)
		if err != nil {
			return false, err
		}
		return !at, nil
	}
	return true, nil
}

// Sync ensures the target directory is a clone of the remote and forces its
// working tree to the pinned revision.
func (r *Repository) Sync() error {
	if !r.IsCloned() {
		if err := r.Clone(); err != nil {
			return fmt.Errorf("failed to clone %s: %w", r.Name, err)
		}
	}
	if err := r.SyncRevision(); err != nil {
		return fmt.Errorf("failed to sync %s to %s: %w", r.Name, r.revision(), err)
	}
	return nil
}

// Clone creates the target directory and clones the remote into it.
func (r *Repository) Clone() error {
	targetDir := r.TargetDir()
	logger.Log.Infof("Cloning %s to %s", color.FgMagenta(r.Name), color.FgMagenta(targetDir))

	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", targetDir, err)
	}
	if _, err := sh.ExecuteGitCommand(sh.DirectoryPath(targetDir), "clone", r.URL, "."); err != nil {
		return err
	}
	return nil
}

// SyncRevision forces the working tree to the pinned revision: a hard reset
// for commit selectors, a checkout fast-forwarded to the remote head for
// branch selectors. Already-pinned commits skip the fetch entirely.
func (r *Repository) SyncRevision() error {
	targetDir := sh.DirectoryPath(r.TargetDir())

	if r.Commit != "" {
		if at, err := r.AtCommit(r.Commit); err == nil && at {
			logger.Log.Debugf("%s already at %s", r.Name, r.Commit)
			return nil
		}
		if err := r.fetch(); err != nil {
			return err
		}
		_, err := sh.ExecuteGitCommand(targetDir, "reset", "--hard", r.Commit)
		return err
	}

	if err := r.fetch(); err != nil {
		return err
	}
	if _, err := sh.ExecuteGitCommand(targetDir, "checkout", r.Branch); err != nil {
		return err
	}
	if r.remoteBranchExists() {
		if _, err := sh.ExecuteGitCommand(targetDir, "merge", "--ff-only", "origin/"+r.Branch); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) fetch() error {
	operation := func() error {
		_, err := sh.ExecuteGitCommand(sh.DirectoryPath(r.TargetDir()), "fetch", "--prune", "origin")
		if err != nil {
			logger.Log.Debugf("Fetch of %s failed, may retry: %v", r.Name, err)
		}
		return err
	}
	return backoff.Retry(operation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries))
}

func (r *Repository) remoteBranchExists() bool {
	_, err := sh.ExecuteGitCommand(sh.DirectoryPath(r.TargetDir()),
		"show-ref", "--verify", "--quiet", "refs/remotes/origin/"+r.Branch)
	return err == nil
}

func (r *Repository) revision() string {
	if r.Commit != "" {
		return r.Commit
	}
	return r.Branch
}
