package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"axsync/internal/sh"
)

// RequireGit skips the test when the git binary is unavailable.
func RequireGit(t *testing.T) {
	t.Helper()
	if !sh.IsGitInstalled() {
		t.Skip("git binary not installed")
	}
}

// CreateBareRepo creates a bare repository with two commits on main and
// returns its path plus both commit hashes, oldest first. Tests pin to the
// first commit to exercise a real hard reset.
func CreateBareRepo(t *testing.T) (bareDir string, commits []string) {
	t.Helper()
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	bareDir = filepath.Join(dir, "repo.git")

	run(t, dir, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	commits = append(commits, commitFile(t, work, "kernel.rs", "// v1\n"))
	commits = append(commits, commitFile(t, work, "kernel.rs", "// v2\n"))

	run(t, dir, "git", "clone", "--bare", work, bareDir)
	return bareDir, commits
}

func commitFile(t *testing.T, work, name, content string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(work, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "update "+name)
	return strings.TrimSpace(run(t, work, "git", "rev-parse", "HEAD"))
}

func run(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %s: %v\n%s", name, strings.Join(args, " "), err, out)
	}
	return string(out)
}
