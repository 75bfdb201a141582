package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/jdelaney/slackline/internal/timeline"
)

// Project is one loaded snapshot of tasks and dependencies.
type Project struct {
	Name         string                `json:"name"`
	Tasks        []timeline.Task       `json:"tasks"`
	Dependencies []timeline.Dependency `json:"dependencies"`
}

// Load reads a project file, picking the decoder from the file extension.
// Files with an unknown extension are sniffed: valid JSON is decoded as
// JSON, anything else is tried as TOML.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(data)
	case ".toml":
		return LoadTOML(data)
	}
	if gjson.ValidBytes(data) {
		return LoadJSON(data)
	}
	return LoadTOML(data)
}

// LoadJSON decodes and validates a JSON project file. The document is
// checked against the embedded schema before decoding so errors carry a
// schema location.
func LoadJSON(data []byte) (*Project, error) {
	if err := ValidateJSON(data); err != nil {
		return nil, err
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}
	return &p, nil
}

// ValidateJSON checks a JSON document against the project schema without
// building a Project.
func ValidateJSON(data []byte) error {
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse project: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("project file invalid: %w", err)
	}
	return nil
}

// tomlProject is the TOML wire form. Tasks may carry an "after" shorthand
// naming predecessor ids; each entry expands to a finish_to_start
// dependency with a generated id.
type tomlProject struct {
	Name         string           `toml:"name"`
	Tasks        []tomlTask       `toml:"task"`
	Dependencies []tomlDependency `toml:"dependency"`
}

type tomlTask struct {
	ID    string   `toml:"id"`
	Name  string   `toml:"name"`
	Start string   `toml:"start"`
	End   string   `toml:"end"`
	After []string `toml:"after"`
}

type tomlDependency struct {
	ID          string `toml:"id"`
	Predecessor string `toml:"predecessor"`
	Successor   string `toml:"successor"`
	Type        string `toml:"type"`
}

// LoadTOML decodes a TOML project file.
func LoadTOML(data []byte) (*Project, error) {
	var raw tomlProject
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}

	p := &Project{Name: raw.Name}
	for _, rt := range raw.Tasks {
		start, err := time.Parse(timeline.DateLayout, rt.Start)
		if err != nil {
			return nil, fmt.Errorf("task %s: parse start date: %w", rt.ID, err)
		}
		end, err := time.Parse(timeline.DateLayout, rt.End)
		if err != nil {
			return nil, fmt.Errorf("task %s: parse end date: %w", rt.ID, err)
		}
		p.Tasks = append(p.Tasks, timeline.Task{
			ID:    rt.ID,
			Name:  rt.Name,
			Start: start,
			End:   end,
		})
		for _, pred := range rt.After {
			p.Dependencies = append(p.Dependencies, timeline.Dependency{
				ID:            uuid.NewString(),
				PredecessorID: pred,
				SuccessorID:   rt.ID,
				Type:          timeline.FinishToStart,
			})
		}
	}
	for _, rd := range raw.Dependencies {
		dt, err := timeline.ParseDependencyType(rd.Type)
		if err != nil {
			return nil, fmt.Errorf("dependency %s: %w", rd.ID, err)
		}
		id := rd.ID
		if id == "" {
			id = uuid.NewString()
		}
		p.Dependencies = append(p.Dependencies, timeline.Dependency{
			ID:            id,
			PredecessorID: rd.Predecessor,
			SuccessorID:   rd.Successor,
			Type:          dt,
		})
	}

	if err := p.normalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// normalize rejects duplicate task ids and fills defaulted dependency
// fields. Unknown dependency endpoints are left alone here; the graph
// builder drops them.
func (p *Project) normalize() error {
	seen := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
	}
	for i, d := range p.Dependencies {
		dt, err := timeline.ParseDependencyType(string(d.Type))
		if err != nil {
			return fmt.Errorf("dependency %s: %w", d.ID, err)
		}
		p.Dependencies[i].Type = dt
		if d.ID == "" {
			p.Dependencies[i].ID = uuid.NewString()
		}
	}
	return nil
}
