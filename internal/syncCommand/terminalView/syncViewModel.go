package terminalView

import (
	"axsync/internal/counter"
	logger "axsync/internal/log"
	"axsync/internal/view"
)

type SyncViewModel struct {
	DepCount       *counter.Counter
	UpToDateCount  *counter.Counter
	ClonedNowCount *counter.Counter
	SyncedCount    *counter.Counter
	FailedCount    *counter.Counter
	ErrorViewModel *view.ErrorViewModel
}

func NewSyncViewModel() *SyncViewModel {
	return &SyncViewModel{
		DepCount:       counter.NewCounter(),
		UpToDateCount:  counter.NewCounter(),
		ClonedNowCount: counter.NewCounter(),
		SyncedCount:    counter.NewCounter(),
		FailedCount:    counter.NewCounter(),
		ErrorViewModel: view.NewErrorViewModel(logger.GetLogFilePath()),
	}
}
