package sh

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type DirectoryPath string
type ShellCommand string

// ExecuteShellCommand runs command through `sh -c` in cwd. Stderr of a failed
// command is folded into the returned error so callers can surface it as-is.
func ExecuteShellCommand(cwd DirectoryPath, command ShellCommand) (string, error) {
	cmd := exec.Command("sh", "-c", string(command))
	cmd.Dir = string(cwd)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", command, err, msg)
		}
		return "", fmt.Errorf("%s: %w", command, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// ExecuteGitCommand runs git with args in cwd, bypassing the shell.
func ExecuteGitCommand(cwd DirectoryPath, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = string(cwd)
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsGitInstalled reports whether the git binary is on PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}
