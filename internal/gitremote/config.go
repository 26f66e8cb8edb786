package gitremote

import (
	"fmt"
	"net/url"
	"strings"
)

// DepConfig points at a remote source tree and the revision it is pinned to.
// Exactly one of Commit or Branch selects the revision.
type DepConfig struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Path   string `yaml:"path"`
	Commit string `yaml:"commit,omitempty"`
	Branch string `yaml:"branch,omitempty"`
	// Hook overrides the global downstream configuration script for this dependency.
	Hook string `yaml:"hook,omitempty"`
}

// Revision returns the revision selector, commit taking precedence.
func (d DepConfig) Revision() string {
	if d.Commit != "" {
		return d.Commit
	}
	return d.Branch
}

// IsCommitPinned reports whether the selector is a commit rather than a branch.
func (d DepConfig) IsCommitPinned() bool {
	return d.Commit != ""
}

// RemoteHost extracts the host part of the remote URL, handling both
// https://host/org/repo and git@host:org/repo forms. Used to group
// dependencies so each remote host gets its own rate limit.
func (d DepConfig) RemoteHost() string {
	if at := strings.Index(d.URL, "@"); at >= 0 && !strings.Contains(d.URL, "://") {
		rest := d.URL[at+1:]
		if colon := strings.Index(rest, ":"); colon >= 0 {
			return rest[:colon]
		}
		return rest
	}
	if u, err := url.Parse(d.URL); err == nil && u.Host != "" {
		return u.Host
	}
	return d.URL
}

func (d DepConfig) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("dependency has no name")
	}
	if d.URL == "" {
		return fmt.Errorf("dependency %s has no url", d.Name)
	}
	if d.Path == "" {
		return fmt.Errorf("dependency %s has no path", d.Name)
	}
	if d.Commit == "" && d.Branch == "" {
		return fmt.Errorf("dependency %s needs a commit or a branch", d.Name)
	}
	if d.Commit != "" && d.Branch != "" {
		return fmt.Errorf("dependency %s has both a commit and a branch; pick one", d.Name)
	}
	return nil
}
