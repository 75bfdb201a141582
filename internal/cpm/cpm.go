package cpm

import (
	"github.com/jdelaney/slackline/internal/graph"
)

// Analyze runs the full critical path computation over a project graph:
// topological sequencing, forward pass, backward pass, slack calculation,
// and — for graphs where no zero-slack chain exists — a longest-chain
// fallback trace. The graph's nodes are mutated in place with the computed
// day offsets; everything else about the computation is pure, so concurrent
// calls over separate graphs are safe.
//
// An empty graph yields an empty result, not an error.
func Analyze(g *graph.ProjectGraph) (*Result, error) {
	result := &Result{
		Slack:    make(map[string]SlackRecord, len(g.Nodes)),
		Critical: make(map[string]bool),
	}
	if g.TaskCount() == 0 {
		return result, nil
	}

	order, err := Sequence(g)
	if err != nil {
		return nil, err
	}
	result.TopoOrder = order

	result.ProjectEnd = forwardPass(g, order)
	backwardPass(g, order, result.ProjectEnd)

	if err := computeSlack(g, order, result); err != nil {
		return nil, err
	}

	if len(result.Critical) == 0 {
		traceLongestChain(g, result)
	}

	// Critical path listed in topological order.
	for _, id := range order {
		if result.Critical[id] {
			result.CriticalPath = append(result.CriticalPath, id)
		}
	}

	return result, nil
}

// forwardPass computes earliest start/finish in topological order and
// returns the project end offset. An unconstrained task starts at its own
// planned calendar position, not at day zero: the model is "proceed as
// planned unless a dependency forces a later start".
func forwardPass(g *graph.ProjectGraph, order []string) int {
	projectEnd := 0
	for _, id := range order {
		n := g.Nodes[id]
		es := n.Offset
		for _, pred := range n.Predecessors {
			if ef := g.Nodes[pred].EarliestFinish; ef > es {
				es = ef
			}
		}
		n.EarliestStart = es
		n.EarliestFinish = es + n.Duration
		if n.EarliestFinish > projectEnd {
			projectEnd = n.EarliestFinish
		}
	}
	return projectEnd
}

// backwardPass computes latest start/finish in reverse topological order,
// anchored at the project end. projectEnd is threaded explicitly so the
// pass stays a pure function of its inputs.
func backwardPass(g *graph.ProjectGraph, order []string, projectEnd int) {
	for i := len(order) - 1; i >= 0; i-- {
		n := g.Nodes[order[i]]
		lf := projectEnd
		for j, succ := range n.Successors {
			ls := g.Nodes[succ].LatestStart
			if j == 0 || ls < lf {
				lf = ls
			}
		}
		n.LatestFinish = lf
		n.LatestStart = lf - n.Duration
	}
}

// computeSlack derives total and free slack per task and flags zero-slack
// tasks as critical. A task whose latest start precedes its earliest start
// indicates corrupted pass state and fails the computation.
func computeSlack(g *graph.ProjectGraph, order []string, result *Result) error {
	for _, id := range order {
		n := g.Nodes[id]

		raw := n.LatestStart - n.EarliestStart
		if raw < 0 {
			return &InconsistentScheduleError{TaskID: id, Slack: raw}
		}
		total := raw

		free := total
		for j, succ := range n.Successors {
			gap := g.Nodes[succ].EarliestStart - n.EarliestFinish
			if gap < 0 {
				gap = 0
			}
			if j == 0 || gap < free {
				free = gap
			}
		}

		critical := total == 0
		result.Slack[id] = SlackRecord{
			TaskID:        id,
			TotalSlack:    total,
			FreeSlack:     free,
			EarliestStart: n.EarliestStart,
			LatestStart:   n.LatestStart,
			IsCritical:    critical,
		}
		if critical {
			result.Critical[id] = true
		}
	}
	return nil
}

// traceLongestChain greedily marks a longest-duration chain critical when
// the slack calculation produced no critical tasks. It starts from the
// latest-finishing sink and repeatedly steps to the latest-finishing
// predecessor, so at least one task is always critical whenever any task
// exists. For a fully disconnected project this marks only the single
// latest-finishing task.
func traceLongestChain(g *graph.ProjectGraph, result *Result) {
	start := ""
	for _, id := range g.Sinks() {
		if start == "" || laterFinish(g, id, start) {
			start = id
		}
	}
	if start == "" {
		return
	}

	for id := start; ; {
		result.Critical[id] = true
		rec := result.Slack[id]
		rec.IsCritical = true
		result.Slack[id] = rec

		n := g.Nodes[id]
		if len(n.Predecessors) == 0 {
			break
		}
		next := n.Predecessors[0]
		for _, pred := range n.Predecessors[1:] {
			if laterFinish(g, pred, next) {
				next = pred
			}
		}
		id = next
	}
}

// laterFinish reports whether task a finishes strictly later than task b.
// Ties keep the incumbent, which is the lexicographically smaller id since
// candidates are scanned in sorted order.
func laterFinish(g *graph.ProjectGraph, a, b string) bool {
	return g.Nodes[a].EarliestFinish > g.Nodes[b].EarliestFinish
}
