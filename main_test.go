package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"axsync/internal/appConfig"
	"axsync/internal/gitremote"
	"axsync/internal/gitrepo"
	"axsync/internal/lockfile"
	"axsync/internal/testutil"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestRunPin(t *testing.T) {
	testutil.RequireGit(t)
	bare, commits := testutil.CreateBareRepo(t)

	workDir := t.TempDir()
	chdir(t, workDir) // the lock file lands in the working directory

	synced := gitremote.DepConfig{
		Name:   "arceos",
		URL:    bare,
		Path:   filepath.Join(workDir, "deps", "ax"),
		Commit: commits[0],
	}
	if err := gitrepo.CreateFromDepConfig(synced).Sync(); err != nil {
		t.Fatalf("preparing synced dep: %v", err)
	}

	config := &appConfig.AppConfig{
		Deps: []gitremote.DepConfig{
			synced,
			{Name: "axhal", URL: bare, Path: filepath.Join(workDir, "deps", "axhal"), Commit: commits[0]},
		},
	}

	var buf bytes.Buffer
	if err := runPin(config, &buf); err != nil {
		t.Fatalf("pin failed: %v", err)
	}

	if !strings.Contains(buf.String(), "Pinned arceos @ "+commits[0][:7]) {
		t.Errorf("expected pin line for arceos, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Skipping axhal") {
		t.Errorf("expected skip line for uncloned axhal, got %q", buf.String())
	}

	lf, err := lockfile.Load(filepath.Join(workDir, lockfile.DefaultLockFileName))
	if err != nil {
		t.Fatalf("loading lock file: %v", err)
	}
	if lf.Deps["arceos"].Commit != commits[0] {
		t.Errorf("expected locked commit %s, got %s", commits[0], lf.Deps["arceos"].Commit)
	}
	if _, ok := lf.Deps["axhal"]; ok {
		t.Error("uncloned deps must not be pinned")
	}
}

func TestRunDoctor(t *testing.T) {
	testutil.RequireGit(t)

	workDir := t.TempDir()
	chdir(t, workDir)
	t.Setenv("HOME", t.TempDir()) // no stray manifest from the home directory

	var buf bytes.Buffer
	// No manifest: built-in defaults apply, hook script is missing.
	if err := runDoctor("deps.yml", &buf); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}
	if !strings.Contains(buf.String(), "git binary found") {
		t.Errorf("expected git check, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "hook for arceos missing") {
		t.Errorf("expected missing hook warning, got %q", buf.String())
	}
}

func TestNewRootCmd_HasSubcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"sync", "status", "pin", "doctor"} {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}
}
