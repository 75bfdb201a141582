package report

import (
	"fmt"
	"io"

	"github.com/jdelaney/slackline/internal/cpm"
	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/ui"
)

// WriteDOT emits a Graphviz digraph of the dependency DAG with critical
// tasks and critical edges highlighted.
func WriteDOT(w io.Writer, g *graph.ProjectGraph, result *cpm.Result) {
	fmt.Fprintln(w, "digraph slackline {")
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	for _, id := range result.TopoOrder {
		n := g.Nodes[id]
		label := id
		if n.Task.Name != "" {
			label = fmt.Sprintf("%s\\n%s", id, n.Task.Name)
		}
		attrs := fmt.Sprintf(`label="%s"`, label)
		if result.Critical[id] {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(w, "  %q [%s];\n", id, attrs)
	}

	fmt.Fprintln(w)

	for _, id := range result.TopoOrder {
		for _, succ := range g.Nodes[id].Successors {
			style := ""
			if result.Critical[id] && result.Critical[succ] {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Fprintf(w, "  %q -> %q%s;\n", id, succ, style)
		}
	}

	fmt.Fprintln(w, "}")
}

// PrintASCIIDAG writes an indented dependency listing: each task followed
// by the tasks it unblocks.
func PrintASCIIDAG(w io.Writer, g *graph.ProjectGraph, result *cpm.Result) {
	fmt.Fprintf(w, "🔗 %s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Fprintln(w, ui.Cyan("═══════════════════════"))
	fmt.Fprintln(w)

	for _, id := range result.TopoOrder {
		n := g.Nodes[id]
		crit := " "
		if result.Critical[id] {
			crit = ui.CriticalMark()
		}
		fmt.Fprintf(w, "  %s [%s] %s\n", crit, ui.BoldMagenta(id), n.Task.Name)
		for _, succ := range n.Successors {
			fmt.Fprintf(w, "      %s %s\n", ui.Dim("└──→"), ui.Magenta(succ))
		}
	}
	fmt.Fprintln(w)
}
