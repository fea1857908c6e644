// Package template loads declarative YAML project templates and task
// requirements, validating them before they reach the engine.
// Validation failures here are fatal configuration errors: nothing is
// sent to the tracker until the whole file is well-formed.
package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

// Load reads and validates a project template file.
func Load(path string) (schema.ProjectTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.ProjectTemplate{}, fmt.Errorf("template: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw YAML template bytes.
func Parse(data []byte) (schema.ProjectTemplate, error) {
	var p schema.ProjectTemplate
	if err := yaml.Unmarshal(data, &p); err != nil {
		return schema.ProjectTemplate{}, fmt.Errorf("template: parse: %w", err)
	}
	if err := Validate(p); err != nil {
		return schema.ProjectTemplate{}, err
	}
	return p, nil
}

// Validate checks the structural invariants of a template tree.
func Validate(p schema.ProjectTemplate) error {
	if p.Name == "" {
		return fmt.Errorf("template: project name is required")
	}
	if len(p.Milestones) == 0 {
		return fmt.Errorf("template: project %q has no milestones", p.Name)
	}
	for mi, m := range p.Milestones {
		if m.Name == "" {
			return fmt.Errorf("template: milestone %d has no name", mi+1)
		}
		if len(m.Tasks) == 0 {
			return fmt.Errorf("template: milestone %q has no tasks", m.Name)
		}
		for ti, t := range m.Tasks {
			if err := validateTask(m.Name, ti, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateTask(milestone string, ti int, t schema.TaskTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("template: task %d in milestone %q has no name", ti+1, milestone)
	}
	if t.EstimatedHours < 0 {
		return fmt.Errorf("template: task %q has negative estimate %g", t.Name, t.EstimatedHours)
	}
	if t.Week < 0 {
		return fmt.Errorf("template: task %q has negative week %d", t.Name, t.Week)
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return fmt.Errorf("template: task %q has unknown priority %q", t.Name, t.Priority)
	}
	for _, s := range t.Subtasks {
		if s == "" {
			return fmt.Errorf("template: task %q has an empty subtask name", t.Name)
		}
	}
	for _, d := range t.Dependencies {
		if d == "" {
			return fmt.Errorf("template: task %q has an empty dependency name", t.Name)
		}
	}
	return nil
}

// LoadRequirement reads and validates a task-requirement file used by
// the assign command.
func LoadRequirement(path string) (schema.TaskRequirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.TaskRequirement{}, fmt.Errorf("requirement: read %s: %w", path, err)
	}
	var r schema.TaskRequirement
	if err := yaml.Unmarshal(data, &r); err != nil {
		return schema.TaskRequirement{}, fmt.Errorf("requirement: parse: %w", err)
	}
	if r.EstimatedHours < 0 {
		return schema.TaskRequirement{}, fmt.Errorf("requirement: negative estimate %g", r.EstimatedHours)
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return schema.TaskRequirement{}, fmt.Errorf("requirement: unknown priority %q", r.Priority)
	}
	return r, nil
}
