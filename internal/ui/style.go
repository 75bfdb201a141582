package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// PrintLogo renders the colored slackline logo to stderr.
func PrintLogo() {
	w := os.Stderr
	frame := color.New(color.FgCyan)
	bars := color.New(color.FgYellow)
	brand := color.New(color.Bold, color.FgMagenta)
	tag := color.New(color.Faint)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +---------------------------+")
	bars.Fprintln(w, "   |  ▆▆▆▆▆░░                  |")
	bars.Fprintln(w, "   |     ▆▆▆▆▆▆▆░              |")
	bars.Fprintln(w, "   |          ▆▆▆▆▆▆▆▆▆        |")
	frame.Fprintln(w, "   +---------------------------+")
	brand.Fprintln(w, "    S L A C K L I N E")
	tag.Fprintln(w, "    Critical path timelines")
	fmt.Fprintln(w)
}

// CriticalMark returns the highlighted marker used next to critical tasks.
func CriticalMark() string {
	return BoldYellow("⚡")
}

// SlackBadge renders a task's total slack: green zero on the critical
// path, plain day count otherwise.
func SlackBadge(days int, critical bool) string {
	if critical {
		return BoldYellow("0d")
	}
	return Dim(fmt.Sprintf("%dd", days))
}
