package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jdelaney/slackline/internal/cpm"
	"github.com/jdelaney/slackline/internal/graph"
	"github.com/jdelaney/slackline/internal/timeline"
)

func fixture(t *testing.T) (*graph.ProjectGraph, *cpm.Result) {
	t.Helper()
	tasks := []timeline.Task{
		{ID: "a", Name: "Design", Start: timeline.MustDate("2026-01-05"), End: timeline.MustDate("2026-01-09")},
		{ID: "b", Name: "Review", Start: timeline.MustDate("2026-01-10"), End: timeline.MustDate("2026-01-11")},
		{ID: "c", Name: "Build", Start: timeline.MustDate("2026-01-10"), End: timeline.MustDate("2026-01-17")},
	}
	deps := []timeline.Dependency{
		{ID: "d1", PredecessorID: "a", SuccessorID: "b", Type: timeline.FinishToStart},
		{ID: "d2", PredecessorID: "a", SuccessorID: "c", Type: timeline.FinishToStart},
	}
	g := graph.Build(tasks, deps)
	result, err := cpm.Analyze(g)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	return g, result
}

func TestBuildSchedule(t *testing.T) {
	g, result := fixture(t)
	s := Build("demo", g, result)

	if s.ProjectName != "demo" {
		t.Errorf("expected project name demo, got %q", s.ProjectName)
	}
	if len(s.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(s.Rows))
	}
	// Rows follow topological order, so "a" leads.
	if s.Rows[0].TaskID != "a" {
		t.Errorf("expected first row a, got %s", s.Rows[0].TaskID)
	}
	if s.ProjectStart != "2026-01-05" || s.ProjectEnd != "2026-01-17" {
		t.Errorf("unexpected span %s -> %s", s.ProjectStart, s.ProjectEnd)
	}
	if s.DurationDays != 13 {
		t.Errorf("expected 13 days, got %d", s.DurationDays)
	}

	byID := make(map[string]Row)
	for _, r := range s.Rows {
		byID[r.TaskID] = r
	}
	if !byID["c"].IsCritical || byID["b"].IsCritical {
		t.Errorf("expected c critical and b not: %+v", byID)
	}
	if byID["b"].TotalSlack != 6 {
		t.Errorf("expected b slack 6, got %d", byID["b"].TotalSlack)
	}
}

func TestScheduleJSONRoundTrip(t *testing.T) {
	g, result := fixture(t)
	s := Build("demo", g, result)

	data, err := s.JSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out Schedule
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Rows) != 3 || out.DurationDays != 13 {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestPrintSchedule(t *testing.T) {
	g, result := fixture(t)
	s := Build("demo", g, result)

	var buf bytes.Buffer
	s.PrintSchedule(&buf)
	out := buf.String()

	for _, want := range []string{"demo", "Critical path", "a", "b", "c", "2026-01-05"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestPrintScheduleEmpty(t *testing.T) {
	g := graph.Build(nil, nil)
	result, err := cpm.Analyze(g)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var buf bytes.Buffer
	Build("", g, result).PrintSchedule(&buf)
	if !strings.Contains(buf.String(), "no tasks") {
		t.Errorf("expected empty notice, got:\n%s", buf.String())
	}
}

func TestPrintGantt(t *testing.T) {
	g, result := fixture(t)
	s := Build("demo", g, result)

	var buf bytes.Buffer
	s.PrintGantt(&buf)
	out := buf.String()

	if !strings.Contains(out, "█") {
		t.Errorf("expected bars in gantt output:\n%s", out)
	}
	for _, id := range []string{"a", "b", "c"} {
		if !strings.Contains(out, id) {
			t.Errorf("expected task %s in gantt output:\n%s", id, out)
		}
	}
}

func TestWriteDOT(t *testing.T) {
	g, result := fixture(t)

	var buf bytes.Buffer
	WriteDOT(&buf, g, result)
	out := buf.String()

	if !strings.Contains(out, "digraph slackline {") {
		t.Errorf("expected digraph header:\n%s", out)
	}
	if !strings.Contains(out, `"a" -> "c" [color=red, penwidth=2]`) {
		t.Errorf("expected critical edge highlighted:\n%s", out)
	}
	if !strings.Contains(out, `"a" -> "b";`) {
		t.Errorf("expected plain edge:\n%s", out)
	}
}

func TestPrintASCIIDAG(t *testing.T) {
	g, result := fixture(t)

	var buf bytes.Buffer
	PrintASCIIDAG(&buf, g, result)
	out := buf.String()

	if !strings.Contains(out, "└──→") {
		t.Errorf("expected edge arrows in output:\n%s", out)
	}
}
