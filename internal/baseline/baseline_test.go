package baseline

import (
	"testing"

	"github.com/jdelaney/slackline/internal/cpm"
)

func result(slacks map[string]int, criticals map[string]bool, end int) *cpm.Result {
	r := &cpm.Result{
		Slack:      make(map[string]cpm.SlackRecord),
		Critical:   make(map[string]bool),
		ProjectEnd: end,
	}
	for id, s := range slacks {
		r.Slack[id] = cpm.SlackRecord{
			TaskID:     id,
			TotalSlack: s,
			IsCritical: criticals[id],
		}
		if criticals[id] {
			r.Critical[id] = true
		}
	}
	return r
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := result(map[string]int{"a": 0, "b": 4}, map[string]bool{"a": true}, 10)

	if Exists(dir) {
		t.Fatal("expected no baseline before save")
	}

	b := New(dir, "demo", r)
	if err := b.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !Exists(dir) {
		t.Fatal("expected baseline after save")
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ProjectName != "demo" || loaded.DurationDays != 10 {
		t.Errorf("unexpected baseline: %+v", loaded)
	}
	if loaded.Slack["b"].TotalSlack != 4 {
		t.Errorf("expected b slack 4, got %d", loaded.Slack["b"].TotalSlack)
	}
}

func TestCompare(t *testing.T) {
	before := result(map[string]int{"a": 0, "b": 4, "gone": 2}, map[string]bool{"a": true}, 10)
	after := result(map[string]int{"a": 0, "b": 0, "new": 3}, map[string]bool{"a": true, "b": true}, 12)

	b := New(t.TempDir(), "demo", before)
	deltas := b.Compare(after)

	byID := make(map[string]Delta)
	for _, d := range deltas {
		byID[d.TaskID] = d
	}

	if d := byID["a"]; d.Changed() {
		t.Errorf("expected a unchanged, got %+v", d)
	}
	if d := byID["b"]; !d.Changed() || d.SlackBefore != 4 || d.SlackAfter != 0 || !d.IsCritical || d.WasCritical {
		t.Errorf("expected b to go critical, got %+v", d)
	}
	if d := byID["gone"]; !d.Removed {
		t.Errorf("expected gone removed, got %+v", d)
	}
	if d := byID["new"]; !d.Added || d.SlackAfter != 3 {
		t.Errorf("expected new added with slack 3, got %+v", d)
	}

	// Sorted by task id.
	for i := 1; i < len(deltas); i++ {
		if deltas[i-1].TaskID >= deltas[i].TaskID {
			t.Fatalf("deltas not sorted: %v", deltas)
		}
	}
}
