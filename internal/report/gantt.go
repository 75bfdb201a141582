package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jdelaney/slackline/internal/ui"
)

// ganttWidth is the maximum number of columns for the bar area.
const ganttWidth = 60

// PrintGantt writes an ASCII Gantt chart on the day axis: one bar per
// task at its earliest-start position, slack rendered as a trailing run
// of dots, critical bars highlighted.
func (s *Schedule) PrintGantt(w io.Writer) {
	if len(s.Rows) == 0 {
		fmt.Fprintln(w, ui.Dim("no tasks"))
		return
	}

	// Scale day offsets down to the terminal width if the project is long.
	scale := 1
	for s.DurationDays/scale > ganttWidth {
		scale++
	}

	fmt.Fprintf(w, "📊 %s %s\n", ui.BoldCyan("Timeline"),
		ui.Dim(fmt.Sprintf("(%s → %s, 1 col = %dd)", s.ProjectStart, s.ProjectEnd, scale)))
	fmt.Fprintln(w)

	for _, row := range s.Rows {
		lead := row.EarliestStart / scale
		width := row.Duration / scale
		if width < 1 {
			width = 1
		}
		slack := row.TotalSlack / scale

		bar := strings.Repeat("█", width)
		if row.IsCritical {
			bar = ui.BoldYellow(bar)
		} else {
			bar = ui.Cyan(bar)
		}
		trail := ""
		if slack > 0 {
			trail = ui.Dim(strings.Repeat("·", slack))
		}

		crit := " "
		if row.IsCritical {
			crit = ui.CriticalMark()
		}
		fmt.Fprintf(w, " %s %-9s %s%s%s\n",
			crit, ui.BoldMagenta(row.TaskID), strings.Repeat(" ", lead), bar, trail)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, " %s bar at earliest start, %s = total slack\n",
		ui.Dim("█"), ui.Dim("·"))
}
