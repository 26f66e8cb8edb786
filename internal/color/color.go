package color

import "github.com/fatih/color"

// Sprint wrappers so call sites stay short: color.FgCyan(path).
var (
	FgRed     = color.New(color.FgRed).SprintFunc()
	FgGreen   = color.New(color.FgGreen).SprintFunc()
	FgYellow  = color.New(color.FgYellow).SprintFunc()
	FgCyan    = color.New(color.FgCyan).SprintFunc()
	FgMagenta = color.New(color.FgMagenta).SprintFunc()
)
