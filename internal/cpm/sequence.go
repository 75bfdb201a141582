package cpm

import (
	"sort"

	"github.com/jdelaney/slackline/internal/graph"
)

// Traversal colors for the iterative DFS.
const (
	unvisited = iota
	onStack
	finished
)

// Sequence produces a topological ordering of the graph's task ids: every
// predecessor appears before its dependents. Seeds are taken in ascending
// start-date order (ties broken by id) so disconnected components and ties
// come out deterministic and in intuitive calendar order.
//
// The traversal is an explicit-stack post-order DFS over predecessor edges
// with three-state coloring. Revisiting a task already on the current path
// means the dependency graph is cyclic; Sequence fails fast with a
// CycleError instead of recursing.
func Sequence(g *graph.ProjectGraph) ([]string, error) {
	seeds := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		seeds = append(seeds, id)
	}
	sort.Slice(seeds, func(i, j int) bool {
		a, b := g.Nodes[seeds[i]], g.Nodes[seeds[j]]
		if !a.Task.Start.Equal(b.Task.Start) {
			return a.Task.Start.Before(b.Task.Start)
		}
		return seeds[i] < seeds[j]
	})

	color := make(map[string]int, len(g.Nodes))
	order := make([]string, 0, len(g.Nodes))
	var stack []frame

	for _, seed := range seeds {
		if color[seed] != unvisited {
			continue
		}
		color[seed] = onStack
		stack = append(stack[:0], frame{id: seed})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			preds := g.Nodes[f.id].Predecessors

			if f.next < len(preds) {
				pred := preds[f.next]
				f.next++
				switch color[pred] {
				case unvisited:
					color[pred] = onStack
					stack = append(stack, frame{id: pred})
				case onStack:
					return nil, &CycleError{Path: cyclePath(stack, pred)}
				}
				continue
			}

			color[f.id] = finished
			order = append(order, f.id)
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}

// frame is one level of the explicit DFS stack.
type frame struct {
	id   string
	next int // index of the next predecessor to visit
}

// cyclePath reconstructs the cycle in dependency direction from the DFS
// stack. Each stack entry is a predecessor of the entry below it, so the
// dependency edges run from the top of the stack downward; the closing
// edge runs from the revisited task to the stack top.
func cyclePath(stack []frame, revisited string) []string {
	at := 0
	for i, f := range stack {
		if f.id == revisited {
			at = i
			break
		}
	}
	path := []string{revisited}
	for i := len(stack) - 1; i >= at; i-- {
		path = append(path, stack[i].id)
	}
	return path
}
