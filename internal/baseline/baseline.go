package baseline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jdelaney/slackline/internal/cpm"
)

const baselineDir = ".slackline"
const baselineFile = "baseline.json"

// Baseline is a saved analysis snapshot used to spot schedule drift.
type Baseline struct {
	ProjectName  string                     `json:"project_name"`
	SavedAt      time.Time                  `json:"saved_at"`
	DurationDays int                        `json:"duration_days"`
	Slack        map[string]cpm.SlackRecord `json:"slack"`

	path string
}

// New creates a Baseline from an analysis result, rooted at dir (the
// working directory when empty).
func New(dir, projectName string, result *cpm.Result) *Baseline {
	return &Baseline{
		ProjectName:  projectName,
		SavedAt:      time.Now(),
		DurationDays: result.ProjectEnd,
		Slack:        result.Slack,
		path:         filepath.Join(dir, baselineDir, baselineFile),
	}
}

// Save persists the baseline to disk.
func (b *Baseline) Save() error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("create baseline dir: %w", err)
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	return os.WriteFile(b.path, data, 0644)
}

// Load reads an existing baseline from dir.
func Load(dir string) (*Baseline, error) {
	path := filepath.Join(dir, baselineDir, baselineFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read baseline: %w", err)
	}
	var b Baseline
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse baseline: %w", err)
	}
	b.path = path
	return &b, nil
}

// Exists checks whether a baseline file is present under dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, baselineDir, baselineFile))
	return err == nil
}

// Delta is the change of one task between the baseline and a fresh
// analysis.
type Delta struct {
	TaskID      string `json:"task_id"`
	Added       bool   `json:"added,omitempty"`   // task not in baseline
	Removed     bool   `json:"removed,omitempty"` // task no longer present
	SlackBefore int    `json:"slack_before"`
	SlackAfter  int    `json:"slack_after"`
	WasCritical bool   `json:"was_critical"`
	IsCritical  bool   `json:"is_critical"`
}

// Changed reports whether the delta is worth showing.
func (d Delta) Changed() bool {
	return d.Added || d.Removed || d.SlackBefore != d.SlackAfter || d.WasCritical != d.IsCritical
}

// Compare diffs a fresh analysis against the baseline. All deltas are
// returned, sorted by task id; callers filter on Changed.
func (b *Baseline) Compare(result *cpm.Result) []Delta {
	ids := make(map[string]bool, len(b.Slack))
	for id := range b.Slack {
		ids[id] = true
	}
	for id := range result.Slack {
		ids[id] = true
	}

	deltas := make([]Delta, 0, len(ids))
	for id := range ids {
		d := Delta{TaskID: id}
		before, inBase := b.Slack[id]
		after, inResult := result.Slack[id]
		switch {
		case !inBase:
			d.Added = true
			d.SlackAfter = after.TotalSlack
			d.IsCritical = after.IsCritical
		case !inResult:
			d.Removed = true
			d.SlackBefore = before.TotalSlack
			d.WasCritical = before.IsCritical
		default:
			d.SlackBefore = before.TotalSlack
			d.SlackAfter = after.TotalSlack
			d.WasCritical = before.IsCritical
			d.IsCritical = after.IsCritical
		}
		deltas = append(deltas, d)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].TaskID < deltas[j].TaskID })
	return deltas
}
