package graph

import (
	"time"

	"github.com/jdelaney/slackline/internal/timeline"
)

// TaskNode is the per-task scheduling record built fresh for each analysis.
// Offset and the four pass fields are integer day offsets from the earliest
// start date across the whole project.
type TaskNode struct {
	Task     timeline.Task
	Duration int // inclusive days, minimum 1
	Offset   int // planned calendar position

	EarliestStart  int
	EarliestFinish int
	LatestStart    int
	LatestFinish   int

	Predecessors []string // task ids, sorted
	Successors   []string // task ids, sorted
}

// ProjectGraph is the dependency DAG over one snapshot of tasks.
type ProjectGraph struct {
	Nodes map[string]*TaskNode

	// ProjectStart is the earliest start date across all tasks; every day
	// offset in the graph is relative to it. Zero when the graph is empty.
	ProjectStart time.Time

	// Dropped counts dependencies discarded because an endpoint did not
	// resolve to a known task.
	Dropped int
}

// TaskCount returns the number of tasks in the graph.
func (g *ProjectGraph) TaskCount() int {
	return len(g.Nodes)
}

// DateAt converts a day offset back to a calendar date.
func (g *ProjectGraph) DateAt(offset int) time.Time {
	return g.ProjectStart.AddDate(0, 0, offset)
}
