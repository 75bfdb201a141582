package cpm

import (
	"fmt"
	"strings"
)

// Result holds the complete critical path analysis for one project snapshot.
type Result struct {
	Slack        map[string]SlackRecord `json:"slack"`
	Critical     map[string]bool        `json:"critical"`
	CriticalPath []string               `json:"critical_path"` // critical ids in topological order
	TopoOrder    []string               `json:"topo_order"`
	ProjectEnd   int                    `json:"project_end"` // day offset of the latest finish
}

// SlackRecord is the per-task schedule-timing output.
type SlackRecord struct {
	TaskID        string `json:"task_id"`
	TotalSlack    int    `json:"total_slack"`
	FreeSlack     int    `json:"free_slack"`
	EarliestStart int    `json:"earliest_start"`
	LatestStart   int    `json:"latest_start"`
	IsCritical    bool   `json:"is_critical"`
}

// CycleError reports a cyclic dependency chain. Path lists task ids in
// dependency direction; the first and last entries are the same task.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency: %s", strings.Join(e.Path, " -> "))
}

// InconsistentScheduleError reports a task whose latest start came out
// earlier than its earliest start. On an acyclic graph this indicates
// corrupted pass state rather than bad input.
type InconsistentScheduleError struct {
	TaskID string
	Slack  int
}

func (e *InconsistentScheduleError) Error() string {
	return fmt.Sprintf("inconsistent schedule: task %s has negative slack %d", e.TaskID, e.Slack)
}
