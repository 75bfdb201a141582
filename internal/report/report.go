package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jdelaney/slackline/internal/cpm"
	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/timeline"
	"github.com/jdelaney/slackline/internal/ui"
)

// Schedule is the renderable view of one analysis: what the terminal
// table, the Gantt chart, and the HTTP feed all consume.
type Schedule struct {
	ProjectName  string    `json:"project_name"`
	GeneratedAt  time.Time `json:"generated_at"`
	ProjectStart string    `json:"project_start"`
	ProjectEnd   string    `json:"project_end"`
	DurationDays int       `json:"duration_days"`
	CriticalPath []string  `json:"critical_path"`
	Rows         []Row     `json:"tasks"`
}

// Row is one task's line in the schedule, in topological order.
type Row struct {
	TaskID         string `json:"task_id"`
	Name           string `json:"name"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Duration       int    `json:"duration_days"`
	EarliestStart  int    `json:"earliest_start"`
	EarliestFinish int    `json:"earliest_finish"`
	LatestStart    int    `json:"latest_start"`
	LatestFinish   int    `json:"latest_finish"`
	TotalSlack     int    `json:"total_slack"`
	FreeSlack      int    `json:"free_slack"`
	IsCritical     bool   `json:"is_critical"`
}

// Build assembles a Schedule from the graph and analysis result.
func Build(name string, g *graph.ProjectGraph, result *cpm.Result) *Schedule {
	s := &Schedule{
		ProjectName:  name,
		GeneratedAt:  time.Now(),
		DurationDays: result.ProjectEnd,
		CriticalPath: result.CriticalPath,
	}
	if g.TaskCount() == 0 {
		return s
	}

	s.ProjectStart = g.ProjectStart.Format(timeline.DateLayout)
	// ProjectEnd is the last working day, hence the -1 on the exclusive
	// finish offset.
	s.ProjectEnd = g.DateAt(result.ProjectEnd - 1).Format(timeline.DateLayout)

	for _, id := range result.TopoOrder {
		n := g.Nodes[id]
		rec := result.Slack[id]
		s.Rows = append(s.Rows, Row{
			TaskID:         id,
			Name:           n.Task.Name,
			StartDate:      n.Task.Start.Format(timeline.DateLayout),
			EndDate:        n.Task.End.Format(timeline.DateLayout),
			Duration:       n.Duration,
			EarliestStart:  n.EarliestStart,
			EarliestFinish: n.EarliestFinish,
			LatestStart:    n.LatestStart,
			LatestFinish:   n.LatestFinish,
			TotalSlack:     rec.TotalSlack,
			FreeSlack:      rec.FreeSlack,
			IsCritical:     rec.IsCritical,
		})
	}
	return s
}

// JSON returns the indented machine-readable schedule.
func (s *Schedule) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// PrintSchedule writes the colored terminal schedule table.
func (s *Schedule) PrintSchedule(w io.Writer) {
	title := s.ProjectName
	if title == "" {
		title = "Project Schedule"
	}
	fmt.Fprintf(w, "📅 %s\n", ui.BoldCyan(title))
	fmt.Fprintln(w, ui.Cyan(strings.Repeat("═", len(title)+3)))
	fmt.Fprintln(w)

	if len(s.Rows) == 0 {
		fmt.Fprintln(w, ui.Dim("no tasks"))
		return
	}

	fmt.Fprintf(w, "Span:     %s → %s (%s days)\n",
		ui.Bold(s.ProjectStart), ui.Bold(s.ProjectEnd), ui.Bold(s.DurationDays))
	fmt.Fprintf(w, "%s Critical path: %s (%d tasks)\n",
		ui.CriticalMark(),
		ui.BoldYellow(strings.Join(s.CriticalPath, " → ")), len(s.CriticalPath))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", ui.Dim("   id        task                      ES  EF  LS  LF  slack free"))
	for _, row := range s.Rows {
		crit := " "
		if row.IsCritical {
			crit = ui.CriticalMark()
		}
		name := row.Name
		if name == "" {
			name = row.TaskID
		}
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Fprintf(w, "  %s %-9s %-24s %3d %3d %3d %3d  %4s %4s\n",
			crit,
			ui.BoldMagenta(row.TaskID),
			name,
			row.EarliestStart, row.EarliestFinish,
			row.LatestStart, row.LatestFinish,
			ui.SlackBadge(row.TotalSlack, row.IsCritical),
			ui.Dim(fmt.Sprintf("%dd", row.FreeSlack)))
	}
	fmt.Fprintln(w)
}
