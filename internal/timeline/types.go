package timeline

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar date format used in project files.
const DateLayout = "2006-01-02"

// DependencyType is the scheduling relation between two tasks.
type DependencyType string

const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

// ParseDependencyType validates a dependency type string.
// An empty string defaults to finish_to_start.
func ParseDependencyType(s string) (DependencyType, error) {
	switch DependencyType(s) {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return DependencyType(s), nil
	case "":
		return FinishToStart, nil
	}
	return "", fmt.Errorf("unknown dependency type %q", s)
}

// Task is a single scheduled activity with inclusive calendar dates.
type Task struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Dependency is a directed edge from a predecessor task to a successor task.
// Only finish_to_start affects schedule arithmetic; the other three kinds are
// carried for rendering and round-tripping.
type Dependency struct {
	ID            string         `json:"id"`
	PredecessorID string         `json:"predecessor_id"`
	SuccessorID   string         `json:"successor_id"`
	Type          DependencyType `json:"dependency_type"`
}

// taskJSON is the wire form of Task with string dates.
type taskJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// MarshalJSON emits dates in DateLayout form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:    t.ID,
		Name:  t.Name,
		Start: t.Start.Format(DateLayout),
		End:   t.End.Format(DateLayout),
	})
}

// UnmarshalJSON parses dates in DateLayout form.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(DateLayout, raw.Start)
	if err != nil {
		return fmt.Errorf("task %s: parse start date: %w", raw.ID, err)
	}
	end, err := time.Parse(DateLayout, raw.End)
	if err != nil {
		return fmt.Errorf("task %s: parse end date: %w", raw.ID, err)
	}
	t.ID = raw.ID
	t.Name = raw.Name
	t.Start = start
	t.End = end
	return nil
}

// DurationDays returns the inclusive span of the task in whole days,
// clamped to a minimum of 1. An inverted date range also clamps to 1.
func (t Task) DurationDays() int {
	d := int(t.End.Sub(t.Start).Hours()/24) + 1
	if d < 1 {
		return 1
	}
	return d
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MustDate parses a DateLayout string or panics. Intended for tests and
// fixtures.
func MustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}
