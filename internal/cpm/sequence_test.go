package cpm

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/timeline"
)

func assertTopological(t *testing.T, g *graph.ProjectGraph, order []string) {
	t.Helper()
	if len(order) != g.TaskCount() {
		t.Fatalf("expected %d tasks in order, got %d", g.TaskCount(), len(order))
	}
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for id, n := range g.Nodes {
		for _, pred := range n.Predecessors {
			if pos[pred] >= pos[id] {
				t.Errorf("predecessor %s appears after %s in %v", pred, id, order)
			}
		}
	}
}

func TestSequence_Diamond(t *testing.T) {
	tasks := []timeline.Task{
		task("a", "2026-01-01", "2026-01-05"),
		task("b", "2026-01-06", "2026-01-08"),
		task("c", "2026-01-06", "2026-01-10"),
		task("d", "2026-01-11", "2026-01-12"),
	}
	deps := []timeline.Dependency{
		dep("d1", "a", "b"),
		dep("d2", "a", "c"),
		dep("d3", "b", "d"),
		dep("d4", "c", "d"),
	}
	g := graph.Build(tasks, deps)

	order, err := Sequence(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTopological(t, g, order)
}

func TestSequence_SeededByStartDate(t *testing.T) {
	// Disconnected tasks come out in calendar order, ties broken by id.
	tasks := []timeline.Task{
		task("z", "2026-01-01", "2026-01-02"),
		task("m", "2026-01-05", "2026-01-06"),
		task("a", "2026-01-05", "2026-01-06"),
	}
	g := graph.Build(tasks, nil)

	order, err := Sequence(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"z", "a", "m"}; !reflect.DeepEqual(order, want) {
		t.Errorf("expected order %v, got %v", want, order)
	}
}

func TestSequence_TwoNodeCycle(t *testing.T) {
	tasks := []timeline.Task{
		task("a", "2026-01-01", "2026-01-02"),
		task("b", "2026-01-03", "2026-01-04"),
	}
	deps := []timeline.Dependency{
		dep("d1", "a", "b"),
		dep("d2", "b", "a"),
	}
	g := graph.Build(tasks, deps)

	_, err := Sequence(g)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	t.Logf("cycle error (expected): %v", err)
}

func TestSequence_SelfCycle(t *testing.T) {
	tasks := []timeline.Task{task("a", "2026-01-01", "2026-01-02")}
	deps := []timeline.Dependency{dep("d1", "a", "a")}
	g := graph.Build(tasks, deps)

	_, err := Sequence(g)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
}

func TestSequence_DeepChainNoRecursion(t *testing.T) {
	// A chain long enough to blow a goroutine stack under naive
	// recursion sequences fine with the explicit stack.
	const n = 50000
	tasks := make([]timeline.Task, 0, n)
	deps := make([]timeline.Dependency, 0, n-1)
	day := timeline.MustDate("2026-01-01")
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("t%06d", i)
		tasks = append(tasks, timeline.Task{ID: id, Start: day, End: day})
		if i > 0 {
			deps = append(deps, dep(fmt.Sprintf("d%06d", i), fmt.Sprintf("t%06d", i-1), id))
		}
	}
	g := graph.Build(tasks, deps)

	order, err := Sequence(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertTopological(t, g, order)
	if order[0] != "t000000" || order[n-1] != fmt.Sprintf("t%06d", n-1) {
		t.Errorf("chain out of order: first=%s last=%s", order[0], order[n-1])
	}
}
