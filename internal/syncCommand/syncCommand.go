package syncCommand

import (
	"context"
	"fmt"
	"os"
	"time"

	"axsync/internal/appConfig"
	"axsync/internal/color"
	"axsync/internal/configure"
	"axsync/internal/gitremote"
	"axsync/internal/gitrepo"
	logger "axsync/internal/log"
	"axsync/internal/pipe"
	"axsync/internal/syncCommand/terminalView"
	"axsync/internal/view"

	"github.com/samber/lo"
	"golang.org/x/term"
)

// ExecuteSyncCommand syncs every manifest dependency (optionally narrowed to
// the names in only) and returns an error when any of them failed, so the
// process exits non-zero.
func ExecuteSyncCommand(config *appConfig.AppConfig, only []string) error {
	startTime := time.Now()

	deps := filterDeps(config.Deps, only)
	if len(deps) == 0 {
		return fmt.Errorf("no dependencies matched %v", only)
	}

	viewModel := terminalView.NewSyncViewModel()
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	compositeView := view.NewCompositeView([]view.View{
		terminalView.NewSyncView(viewModel, os.Stdout),
		view.NewErrorView(viewModel.ErrorViewModel, os.Stdout),
		view.NewTimeElapsedView(startTime, os.Stdout, time.Since),
	})

	ctx, stopRenderLoop := context.WithCancel(context.Background())
	defer stopRenderLoop()
	renderLoopDone := make(chan struct{})
	if isTTY {
		go func() {
			defer close(renderLoopDone)
			view.StartTTYRenderLoop(ctx, compositeView, os.Stdout, os.Stdout)
		}()
	} else {
		close(renderLoopDone)
	}

	errorChannel := viewModel.ErrorViewModel.ErrorChannel

	// Each remote host gets its own pipeline so the rate limit throttles
	// per host, then everything fans in for the sync stage.
	var syncChannelsRateLimited []<-chan gitrepo.DepRepo
	for host, hostDeps := range lo.GroupBy(deps, func(dep gitremote.DepConfig) string { return dep.RemoteHost() }) {
		logger.Log.Infof("Syncing %s dependencies from %s", color.FgMagenta(fmt.Sprintf("%d", len(hostDeps))), color.FgCyan(host))

		checkChannel := make(chan gitrepo.DepRepo, appConfig.DefaultChannelBufferLength)
		go func(hostDeps []gitremote.DepConfig) {
			for _, dep := range hostDeps {
				checkChannel <- gitrepo.CreateFromDepConfig(dep)
			}
			close(checkChannel)
		}(hostDeps)

		syncChannel := gitrepo.FilterSyncNeeded(checkChannel, viewModel.DepCount, viewModel.UpToDateCount, errorChannel)
		syncChannelsRateLimited = append(syncChannelsRateLimited,
			pipe.RateLimit[gitrepo.DepRepo](ctx, syncChannel, config.RatePerSecond, appConfig.DefaultChannelBufferLength))
	}

	hookRunners := make(map[string]*configure.Runner, len(deps))
	for _, dep := range deps {
		hookRunners[dep.Name] = configure.NewRunner(config.HookFor(dep))
	}

	gitrepo.SyncRepositories(
		lo.FanIn(appConfig.DefaultChannelBufferLength, syncChannelsRateLimited...),
		viewModel.SyncedCount, viewModel.ClonedNowCount, viewModel.FailedCount,
		errorChannel,
		func(repo gitrepo.DepRepo) {
			runner := hookRunners[repo.GetName()]
			if runner == nil {
				return
			}
			// The sync result never depends on the hook; failures only land
			// in the log.
			if err := runner.Run(repo.TargetDir()); err != nil {
				logger.Log.Warnf("Configuration hook failed for %s: %v", color.FgYellow(repo.GetName()), err)
			}
		})

	// The loop paints one final frame on cancellation; wait for it so the
	// closing counts are on screen before we return.
	stopRenderLoop()
	<-renderLoopDone
	if !isTTY {
		compositeView.Render(80)
	}

	if failed := viewModel.FailedCount.Count(); failed > 0 {
		return fmt.Errorf("%d of %d dependencies failed to sync, see %s", failed, viewModel.DepCount.Count(), logger.GetLogFilePath())
	}
	return nil
}

func filterDeps(deps []gitremote.DepConfig, only []string) []gitremote.DepConfig {
	if len(only) == 0 {
		return deps
	}
	return lo.Filter(deps, func(dep gitremote.DepConfig, _ int) bool {
		return lo.Contains(only, dep.Name)
	})
}
