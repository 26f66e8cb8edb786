package gitrepo

import (
	"fmt"
	"sync"

	"axsync/internal/color"
	"axsync/internal/counter"
	logger "axsync/internal/log"
)

// FilterSyncNeeded passes through the dependencies whose working tree does
// not already match the manifest. Check failures go to the error channel and
// drop the dependency from the pipeline.
func FilterSyncNeeded(checkChannel <-chan DepRepo, checkedCounter *counter.Counter, upToDateCounter *counter.Counter, errorChannel chan<- error) chan DepRepo {
	syncChannel := make(chan DepRepo, 20)
	checkWaitGroup := sync.WaitGroup{}
	go func() {
		for receivedRepo := range checkChannel {
			checkedCounter.Add(1)
			needsSync, err := receivedRepo.NeedsSync()
			if err != nil {
				errorChannel <- fmt.Errorf("error checking sync status of %s: %w", receivedRepo.GetName(), err)
				continue
			}
			if !needsSync {
				upToDateCounter.Add(1)
				logger.Log.Debugf("%s already in sync, skipping", receivedRepo.GetName())
				continue
			}
			checkWaitGroup.Add(1)
			go func(repo DepRepo) {
				defer checkWaitGroup.Done()
				logger.Log.Debugf("Adding %s to sync queue", repo.GetName())
				syncChannel <- repo
			}(receivedRepo)
		}
		checkWaitGroup.Wait()
		close(syncChannel)
	}()
	return syncChannel
}

// SyncRepositories drains the rate-limited channel, syncing each dependency
// concurrently. onSynced runs once per successful sync, after the working
// tree matches the manifest.
func SyncRepositories(repos <-chan DepRepo, syncedCounter *counter.Counter, clonedNowCounter *counter.Counter, failedCounter *counter.Counter, errorChannel chan<- error, onSynced func(DepRepo)) {
	syncWaitGroup := sync.WaitGroup{}
	for receivedRepo := range repos {
		syncWaitGroup.Add(1)
		go func(repo DepRepo) {
			defer syncWaitGroup.Done()
			cloning := !repo.IsCloned()
			if err := repo.Sync(); err != nil {
				failedCounter.Add(1)
				logger.Log.Errorf("Failed to sync dependency %s: %v", color.FgRed(repo.GetName()), err)
				errorChannel <- err
				return
			}
			if cloning {
				clonedNowCounter.Add(1)
			}
			syncedCounter.Add(1)
			if onSynced != nil {
				onSynced(repo)
			}
		}(receivedRepo)
	}
	syncWaitGroup.Wait()
}
