package view

import (
	"fmt"
)

// View renders itself to a fixed width and reports how many lines it wrote,
// so the TTY render loop knows how far to move the cursor back up.
type View interface {
	Render(width int) (lines int)
}

type CompositeView struct {
	views []View
}

func NewCompositeView(views []View) *CompositeView {
	return &CompositeView{views: views}
}

func (cv *CompositeView) Render(w int) int {
	totalLines := 0
	for _, view := range cv.views {
		totalLines += view.Render(w)
	}
	return totalLines
}

func ansiLineOffset(lines int) string {
	return fmt.Sprintf("\033[%dA", lines)
}
