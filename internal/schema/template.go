package schema

// TaskTemplate is one task in a declarative project template.
// Its name is the identity key for dependency resolution, so names
// must be unique within a single materialization run.
type TaskTemplate struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description,omitempty" yaml:"description,omitempty"`
	RequiredSkills []string `json:"requiredSkills,omitempty" yaml:"required_skills,omitempty"`
	EstimatedHours float64  `json:"estimatedHours" yaml:"estimated_hours"`
	Priority       Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Week is the 1-based schedule week within the project. Zero means
	// unscheduled: no due date is derived.
	Week         int      `json:"week,omitempty" yaml:"week,omitempty"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Subtasks     []string `json:"subtasks,omitempty" yaml:"subtasks,omitempty"`
	Assignee     string   `json:"assignee,omitempty" yaml:"assignee,omitempty"`
}

// MilestoneTemplate groups the tasks of one project phase.
type MilestoneTemplate struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Tasks       []TaskTemplate `json:"tasks" yaml:"tasks"`
}

// ProjectTemplate is the root of the declarative hierarchy handed to
// the materializer. The tree is owned by the caller; the materializer
// only reads it.
type ProjectTemplate struct {
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Milestones  []MilestoneTemplate `json:"milestones" yaml:"milestones"`
}

// TaskCount returns the total number of tasks across all milestones.
// Subtasks are not counted; they are tracked separately.
func (p ProjectTemplate) TaskCount() int {
	n := 0
	for _, m := range p.Milestones {
		n += len(m.Tasks)
	}
	return n
}
