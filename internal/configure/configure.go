package configure

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"axsync/internal/color"
	logger "axsync/internal/log"
)

// Runner invokes the downstream configuration script after a dependency has
// been synced. The script receives exactly one argument: the resolved
// absolute path of the dependency.
type Runner struct {
	Script string
}

func NewRunner(script string) *Runner {
	return &Runner{Script: script}
}

// Exists reports whether the hook script is present and runnable.
func (r *Runner) Exists() bool {
	if r.Script == "" {
		return false
	}
	info, err := os.Stat(r.Script)
	return err == nil && !info.IsDir()
}

// Run invokes the hook with depPath as its sole argument. The caller decides
// what to do with a failure; the sync result never depends on it.
func (r *Runner) Run(depPath string) error {
	if r.Script == "" {
		return nil
	}
	script, err := filepath.Abs(r.Script)
	if err != nil {
		return fmt.Errorf("resolving hook script %s: %w", r.Script, err)
	}

	logger.Log.Infof("Running configuration hook %s for %s", color.FgCyan(r.Script), color.FgCyan(depPath))
	cmd := exec.Command(script, depPath)
	cmd.Env = os.Environ()

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hook %s: %w: %s", r.Script, err, strings.TrimSpace(output.String()))
	}
	if out := strings.TrimSpace(output.String()); out != "" {
		logger.Log.Debugf("Hook output: %s", out)
	}
	return nil
}
