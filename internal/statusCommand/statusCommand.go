package statusCommand

import (
	"fmt"
	"io"

	"axsync/internal/appConfig"
	"axsync/internal/color"
	"axsync/internal/ext"
	"axsync/internal/gitrepo"
)

const shortHashLen = 12

// ExecuteStatusCommand reports, without touching anything, whether each
// dependency's working tree matches the manifest.
func ExecuteStatusCommand(config *appConfig.AppConfig, out io.Writer) error {
	for _, dep := range config.Deps {
		repo := gitrepo.CreateFromDepConfig(dep)
		target := ext.ReplaceHomeDirWithTilde(repo.TargetDir())

		if !repo.IsCloned() {
			fmt.Fprintf(out, "%s  %s %s (wants %s)\n", color.FgRed("missing"), dep.Name, target, dep.Revision())
			continue
		}

		head, err := repo.Head()
		if err != nil {
			fmt.Fprintf(out, "%s  %s %s: %v\n", color.FgRed("broken"), dep.Name, target, err)
			continue
		}

		if dep.IsCommitPinned() {
			at, err := repo.AtCommit(dep.Commit)
			if err != nil {
				fmt.Fprintf(out, "%s  %s %s: %v\n", color.FgRed("broken"), dep.Name, target, err)
				continue
			}
			if at {
				fmt.Fprintf(out, "%s       %s @ %s\n", color.FgGreen("ok"), dep.Name, shorten(head))
			} else {
				fmt.Fprintf(out, "%s    %s @ %s (wants %s)\n", color.FgYellow("drift"), dep.Name, shorten(head), dep.Commit)
			}
			continue
		}

		branch, err := repo.CurrentBranch()
		if err != nil {
			fmt.Fprintf(out, "%s  %s %s: %v\n", color.FgRed("broken"), dep.Name, target, err)
			continue
		}
		if branch == dep.Branch {
			fmt.Fprintf(out, "%s       %s on %s @ %s\n", color.FgGreen("ok"), dep.Name, branch, shorten(head))
		} else {
			fmt.Fprintf(out, "%s    %s on %s (wants %s)\n", color.FgYellow("drift"), dep.Name, ext.DefaultValue(branch, "detached HEAD"), dep.Branch)
		}
	}
	return nil
}

func shorten(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
