package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	"axsync/internal/testutil"
)

func TestSync_FreshClone(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: commits[1][:7],
	}

	if repo.IsCloned() {
		t.Fatal("expected fresh target directory to not be cloned")
	}
	if err := repo.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !repo.IsCloned() {
		t.Error("expected target directory to be a clone after sync")
	}

	head, err := repo.Head()
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	if head != commits[1] {
		t.Errorf("expected HEAD %s, got %s", commits[1], head)
	}
}

func TestSync_ResetsToPinnedCommit(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	// Pin to the older commit; the clone arrives at the newer one.
	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: commits[0],
	}

	if err := repo.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	at, err := repo.AtCommit(commits[0])
	if err != nil {
		t.Fatalf("checking HEAD: %v", err)
	}
	if !at {
		head, _ := repo.Head()
		t.Errorf("expected HEAD at %s after reset, got %s", commits[0], head)
	}
}

func TestSync_Idempotent(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: commits[0],
	}

	if err := repo.Sync(); err != nil {
		t.Fatalf("first sync failed: %v", err)
	}
	needsSync, err := repo.NeedsSync()
	if err != nil {
		t.Fatalf("checking sync status: %v", err)
	}
	if needsSync {
		t.Error("expected synced dependency to not need syncing")
	}
	if err := repo.Sync(); err != nil {
		t.Errorf("second sync must be a no-op, got %v", err)
	}
}

func TestSync_InvalidCommitKeepsPriorState(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: commits[1],
	}
	if err := repo.Sync(); err != nil {
		t.Fatalf("initial sync failed: %v", err)
	}

	repo.Commit = "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef"
	if err := repo.Sync(); err == nil {
		t.Fatal("expected sync to a nonexistent commit to fail")
	}

	// The clone survives at its prior valid revision.
	if !repo.IsCloned() {
		t.Error("expected clone to survive a failed revision sync")
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	if head != commits[1] {
		t.Errorf("expected HEAD to stay at %s, got %s", commits[1], head)
	}
}

func TestAtCommit_ShortAbbreviationNeverMatches(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: commits[1],
	}
	if err := repo.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	// commits[1][:2] is a true prefix of HEAD, but it is too short to be a
	// trustworthy pin and must force a re-sync rather than match.
	at, err := repo.AtCommit(commits[1][:2])
	if err != nil {
		t.Fatalf("checking short abbreviation: %v", err)
	}
	if at {
		t.Error("expected a 2-character abbreviation to never match")
	}

	at, err = repo.AtCommit(commits[1][:7])
	if err != nil {
		t.Fatalf("checking abbreviated commit: %v", err)
	}
	if !at {
		t.Error("expected a 7-character abbreviation of HEAD to match")
	}
}

func TestSync_Branch(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Branch: "main",
	}

	if err := repo.Sync(); err != nil {
		t.Fatalf("branch sync failed: %v", err)
	}
	branch, err := repo.CurrentBranch()
	if err != nil {
		t.Fatalf("reading branch: %v", err)
	}
	if branch != "main" {
		t.Errorf("expected branch main, got %q", branch)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("reading HEAD: %v", err)
	}
	if head != commits[1] {
		t.Errorf("expected branch head %s, got %s", commits[1], head)
	}
}

func TestSync_MissingBranchFails(t *testing.T) {
	testutil.RequireGit(t)
	bare, _ := testutil.CreateBareRepo(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Branch: "no-such-branch",
	}
	if err := repo.Sync(); err == nil {
		t.Fatal("expected sync to a nonexistent branch to fail")
	}
}

func TestClone_FailsOnBadRemote(t *testing.T) {
	testutil.RequireGit(t)

	repo := &Repository{
		Name:   "arceos",
		URL:    filepath.Join(t.TempDir(), "does-not-exist.git"),
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: "a59b6b8",
	}
	if err := repo.Sync(); err == nil {
		t.Fatal("expected clone of a missing remote to fail")
	}
}

func TestIsCloned(t *testing.T) {
	target := filepath.Join(t.TempDir(), "deps", "ax")
	repo := &Repository{Name: "arceos", Path: target}

	if repo.IsCloned() {
		t.Error("expected missing directory to not count as cloned")
	}

	// A plain directory, even with a .git file in it, is not a working copy.
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if repo.IsCloned() {
		t.Error("expected plain directory to not count as cloned")
	}
	if err := os.WriteFile(filepath.Join(target, ".git"), []byte("gitdir: elsewhere\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if repo.IsCloned() {
		t.Error("expected a .git file to not count as cloned")
	}
}

func TestNeedsSync_NotCloned(t *testing.T) {
	repo := &Repository{
		Name:   "arceos",
		URL:    "https://github.com/arceos-org/arceos.git",
		Path:   filepath.Join(t.TempDir(), "deps", "ax"),
		Commit: "a59b6b8",
	}
	needsSync, err := repo.NeedsSync()
	if err != nil {
		t.Fatalf("checking sync status: %v", err)
	}
	if !needsSync {
		t.Error("expected an uncloned dependency to need syncing")
	}
}

func TestTargetDir_IsAbsolute(t *testing.T) {
	repo := &Repository{Name: "arceos", Path: "deps/ax"}
	if !filepath.IsAbs(repo.TargetDir()) {
		t.Errorf("expected absolute target dir, got %s", repo.TargetDir())
	}
	wd, _ := os.Getwd()
	if want := filepath.Join(wd, "deps", "ax"); repo.TargetDir() != want {
		t.Errorf("expected %s, got %s", want, repo.TargetDir())
	}
}
