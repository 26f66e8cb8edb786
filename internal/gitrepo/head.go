package gitrepo

import (
	"strings"

	"github.com/go-git/go-git/v5"
)

// Read-side inspection goes through go-git; only mutations shell out.

// Git refuses abbreviations under 4 characters; so do we, otherwise a
// pathologically short pin could prefix-match HEAD and skip the reset.
const minCommitAbbrevLen = 4

// Head returns the full hash of the working copy's HEAD.
func (r *Repository) Head() (string, error) {
	repo, err := git.PlainOpen(r.TargetDir())
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// AtCommit reports whether HEAD matches commit, which may be abbreviated
// the way manifests usually pin it. Abbreviations shorter than git's
// minimum never match.
func (r *Repository) AtCommit(commit string) (bool, error) {
	if len(commit) < minCommitAbbrevLen {
		return false, nil
	}
	head, err := r.Head()
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(head, commit), nil
}

// CurrentBranch returns the checked-out branch name, or "" when detached.
func (r *Repository) CurrentBranch() (string, error) {
	repo, err := git.PlainOpen(r.TargetDir())
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", nil
	}
	return head.Name().Short(), nil
}
