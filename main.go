package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"axsync/internal/appConfig"
	"axsync/internal/color"
	"axsync/internal/configure"
	"axsync/internal/gitrepo"
	"axsync/internal/lockfile"
	logger "axsync/internal/log"
	"axsync/internal/sh"
	"axsync/internal/statusCommand"
	"axsync/internal/syncCommand"

	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	var configFile string

	cmd := &cobra.Command{
		Use:     "axsync",
		Short:   "Keep external source dependencies cloned at pinned revisions",
		Version: version,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.InitLogger(verbose)
		},
		// Bare `axsync` syncs everything, like the scripts it replaced.
		RunE: func(*cobra.Command, []string) error {
			return runSync(configFile, nil)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print verbose output")
	cmd.PersistentFlags().StringVar(&configFile, "config", appConfig.DefaultConfigFileName, "Dependency manifest file")

	cmd.AddCommand(
		newSyncCmd(&configFile),
		newStatusCmd(&configFile),
		newPinCmd(&configFile),
		newDoctorCmd(&configFile),
	)
	return cmd
}

func newSyncCmd(configFile *string) *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Clone missing dependencies and force them to their pinned revisions",
		RunE: func(*cobra.Command, []string) error {
			return runSync(*configFile, only)
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Sync only these dependency names")
	return cmd
}

func newStatusCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report each dependency's working tree against the manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := appConfig.Load(*configFile)
			if err != nil {
				return err
			}
			return statusCommand.ExecuteStatusCommand(config, cmd.OutOrStdout())
		},
	}
}

func newPinCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "pin",
		Short: "Write resolved HEAD commits to the lock file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := appConfig.Load(*configFile)
			if err != nil {
				return err
			}
			return runPin(config, cmd.OutOrStdout())
		},
	}
}

func newDoctorCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the environment can sync dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(*configFile, cmd.OutOrStdout())
		},
	}
}

func runSync(configFile string, only []string) error {
	config, err := appConfig.Load(configFile)
	if err != nil {
		return err
	}
	return syncCommand.ExecuteSyncCommand(config, only)
}

func runPin(config *appConfig.AppConfig, out io.Writer) error {
	lf := lockfile.New(time.Now().Format(time.RFC3339))
	for _, dep := range config.Deps {
		repo := gitrepo.CreateFromDepConfig(dep)
		if !repo.IsCloned() {
			fmt.Fprintf(out, "Skipping %s (not cloned)\n", dep.Name)
			continue
		}
		commit, err := repo.Head()
		if err != nil {
			return fmt.Errorf("reading HEAD for %s: %w", dep.Name, err)
		}
		lf.Pin(dep.Name, lockfile.Dep{URL: dep.URL, Path: dep.Path, Commit: commit})
		fmt.Fprintf(out, "Pinned %s @ %s\n", dep.Name, commit[:7])
	}
	if err := lockfile.Save(lockfile.DefaultLockFileName, lf); err != nil {
		return err
	}
	fmt.Fprintf(out, "Lock file written to %s\n", lockfile.DefaultLockFileName)
	return nil
}

func runDoctor(configFile string, out io.Writer) error {
	healthy := true

	if sh.IsGitInstalled() {
		fmt.Fprintf(out, "%s git binary found\n", color.FgGreen("ok"))
	} else {
		fmt.Fprintf(out, "%s git binary not on PATH\n", color.FgRed("fail"))
		healthy = false
	}

	config, err := appConfig.Load(configFile)
	if err != nil {
		fmt.Fprintf(out, "%s manifest: %v\n", color.FgRed("fail"), err)
		return fmt.Errorf("environment is not ready")
	}
	fmt.Fprintf(out, "%s manifest lists %d dependencies\n", color.FgGreen("ok"), len(config.Deps))

	for _, dep := range config.Deps {
		runner := configure.NewRunner(config.HookFor(dep))
		if runner.Exists() {
			fmt.Fprintf(out, "%s hook for %s: %s\n", color.FgGreen("ok"), dep.Name, runner.Script)
		} else {
			fmt.Fprintf(out, "%s hook for %s missing: %s\n", color.FgYellow("warn"), dep.Name, runner.Script)
		}
	}

	if !healthy {
		return fmt.Errorf("environment is not ready")
	}
	return nil
}
