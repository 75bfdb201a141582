package graph

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/jdelaney/slackline/internal/timeline"
)

// Build constructs a ProjectGraph from flat task and dependency lists.
// Dependencies whose predecessor or successor id does not resolve to a
// known task are dropped; they are counted in Dropped and logged, never
// surfaced as errors. Duplicate edges between the same pair collapse to
// one.
func Build(tasks []timeline.Task, deps []timeline.Dependency) *ProjectGraph {
	g := &ProjectGraph{
		Nodes: make(map[string]*TaskNode, len(tasks)),
	}
	if len(tasks) == 0 {
		return g
	}

	// Project start anchors every day offset.
	g.ProjectStart = tasks[0].Start
	for _, t := range tasks[1:] {
		if t.Start.Before(g.ProjectStart) {
			g.ProjectStart = t.Start
		}
	}

	for _, t := range tasks {
		g.Nodes[t.ID] = &TaskNode{
			Task:     t,
			Duration: t.DurationDays(),
			Offset:   timeline.DaysBetween(g.ProjectStart, t.Start),
		}
	}

	edgeSet := make(map[[2]string]bool)
	for _, d := range deps {
		pred, okPred := g.Nodes[d.PredecessorID]
		succ, okSucc := g.Nodes[d.SuccessorID]
		if !okPred || !okSucc {
			g.Dropped++
			log.Warn("dropping dependency with unknown endpoint",
				"dep", d.ID, "predecessor", d.PredecessorID, "successor", d.SuccessorID)
			continue
		}
		key := [2]string{d.PredecessorID, d.SuccessorID}
		if edgeSet[key] {
			continue
		}
		edgeSet[key] = true
		pred.Successors = append(pred.Successors, d.SuccessorID)
		succ.Predecessors = append(succ.Predecessors, d.PredecessorID)
	}

	// Sorted adjacency keeps traversal and min/max tie-breaks deterministic.
	for _, n := range g.Nodes {
		sort.Strings(n.Predecessors)
		sort.Strings(n.Successors)
	}

	return g
}

// Sinks returns ids of tasks with no successors, sorted.
func (g *ProjectGraph) Sinks() []string {
	var sinks []string
	for id, n := range g.Nodes {
		if len(n.Successors) == 0 {
			sinks = append(sinks, id)
		}
	}
	sort.Strings(sinks)
	return sinks
}

// Sources returns ids of tasks with no predecessors, sorted.
func (g *ProjectGraph) Sources() []string {
	var sources []string
	for id, n := range g.Nodes {
		if len(n.Predecessors) == 0 {
			sources = append(sources, id)
		}
	}
	sort.Strings(sources)
	return sources
}

// EdgeCount returns the number of distinct dependency edges.
func (g *ProjectGraph) EdgeCount() int {
	n := 0
	for _, node := range g.Nodes {
		n += len(node.Successors)
	}
	return n
}
