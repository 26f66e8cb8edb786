package terminalView

import (
	"fmt"
	"io"
	"strings"

	"axsync/internal/color"
)

// SyncView renders the pipeline counters while dependencies sync.
type SyncView struct {
	viewModel *SyncViewModel
	stdout    io.Writer
}

func NewSyncView(viewModel *SyncViewModel, stdout io.Writer) *SyncView {
	return &SyncView{
		viewModel: viewModel,
		stdout:    stdout,
	}
}

func (v *SyncView) Render(int) int {
	out := fmt.Sprintf("%s deps checked (%s already in sync)\n%s cloned now, %s synced, %s failed\n",
		color.FgMagenta(fmt.Sprintf("%d", v.viewModel.DepCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", v.viewModel.UpToDateCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", v.viewModel.ClonedNowCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", v.viewModel.SyncedCount.Count())),
		color.FgMagenta(fmt.Sprintf("%d", v.viewModel.FailedCount.Count())))
	if _, err := fmt.Fprint(v.stdout, out); err != nil {
		return 0
	}
	return strings.Count(out, "\n")
}
