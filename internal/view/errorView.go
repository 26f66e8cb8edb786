package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"axsync/internal/color"
	"axsync/internal/counter"
	"axsync/internal/ext"
)

// ErrorViewModel accumulates sync failures from the pipeline's error channel.
// The render loop reads while the channel consumer writes, so latestError is
// guarded by a mutex.
type ErrorViewModel struct {
	errorCount   *counter.Counter
	mu           sync.Mutex
	latestError  string
	ErrorChannel chan error
	logFilePath  string
}

func NewErrorViewModel(logFilePath string) *ErrorViewModel {
	viewModel := ErrorViewModel{
		errorCount:   counter.NewCounter(),
		ErrorChannel: make(chan error, 10),
		logFilePath:  logFilePath,
	}
	go func() {
		for err := range viewModel.ErrorChannel {
			viewModel.errorCount.Add(1)
			viewModel.mu.Lock()
			viewModel.latestError = err.Error()
			viewModel.mu.Unlock()
		}
	}()
	return &viewModel
}

// Count returns how many failures have been reported so far.
func (vm *ErrorViewModel) Count() int {
	return vm.errorCount.Count()
}

// LatestError returns the most recently reported failure message.
func (vm *ErrorViewModel) LatestError() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.latestError
}

type ErrorView struct {
	viewModel *ErrorViewModel
	stdout    io.Writer
}

func NewErrorView(vm *ErrorViewModel, stdout io.Writer) *ErrorView {
	return &ErrorView{
		viewModel: vm,
		stdout:    stdout,
	}
}

func (v ErrorView) Render(width int) int {
	if v.viewModel.errorCount.Count() == 0 {
		return 0
	}
	out := fmt.Sprintf("--- %s sync failures ---\n%s\nSee log file: %s\n",
		color.FgRed(fmt.Sprintf("%d", v.viewModel.errorCount.Count())),
		TrimTextToWidth(ext.Max(width, 1), v.viewModel.LatestError()),
		color.FgMagenta(ext.ReplaceHomeDirWithTilde(v.viewModel.logFilePath)))

	if _, err := fmt.Fprint(v.stdout, out); err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}
