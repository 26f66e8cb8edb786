package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const renderInterval = 100 * time.Millisecond

// StartTTYRenderLoop repaints r in place until ctx is canceled. file must be
// a terminal; callers check with term.IsTerminal before starting the loop.
func StartTTYRenderLoop(ctx context.Context, r View, out io.Writer, file *os.File) {
	if !term.IsTerminal(int(file.Fd())) {
		panic(fmt.Errorf("cannot start a TTY render loop on a non-terminal file"))
	}
	renderLoop(ctx, r, out, func() int { return terminalWidth(file) })
}

// renderLoop paints one final frame after cancellation so the closing counts
// reach the screen even when the loop was mid-sleep.
func renderLoop(ctx context.Context, r View, out io.Writer, width func() int) {
	lineCount := r.Render(width())
	for {
		select {
		case <-ctx.Done():
			fmt.Fprint(out, ansiLineOffset(lineCount))
			r.Render(width())
			return
		default:
			if _, err := fmt.Fprint(out, ansiLineOffset(lineCount)); err != nil {
				return
			}
			lineCount = r.Render(width())
			time.Sleep(renderInterval)
		}
	}
}

func terminalWidth(file *os.File) int {
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return 80
	}
	return width
}
