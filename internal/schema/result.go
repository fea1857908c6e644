package schema

// CreatedTask records one entity created in the external tracker.
type CreatedTask struct {
	TaskName   string `json:"taskName"`
	ExternalID string `json:"externalId"`
	URL        string `json:"url,omitempty"`
	// FromLedger marks a task whose ID was reused from the idempotency
	// ledger instead of a fresh create call.
	FromLedger bool `json:"fromLedger,omitempty"`
}

// TaskFailure records one task whose creation attempt failed.
type TaskFailure struct {
	TaskName string `json:"taskName"`
	Err      string `json:"error"`
}

// UnresolvedDependency records a dependency link that could not be
// annotated: the referenced name was never created, either because its
// creation failed or because no task in the template carries it.
// These are visibility entries, not failures. Links declared by a task
// whose own creation failed are not listed: that task's TaskFailure
// entry already accounts for everything it declared.
type UnresolvedDependency struct {
	TaskName  string `json:"taskName"`
	DependsOn string `json:"dependsOn"`
	KnownName bool   `json:"knownName"` // false: name absent from the template entirely
}

// MilestoneResult accumulates the outcome of one milestone.
// Created+Failed always equals the milestone's task count; subtask
// outcomes are tracked separately and never folded in.
type MilestoneResult struct {
	Name            string                 `json:"name"`
	Created         int                    `json:"created"`
	Failed          int                    `json:"failed"`
	SubtasksCreated int                    `json:"subtasksCreated"`
	SubtasksFailed  int                    `json:"subtasksFailed"`
	Tasks           []CreatedTask          `json:"tasks"`
	Failures        []TaskFailure          `json:"failures"`
	Unresolved      []UnresolvedDependency `json:"unresolved,omitempty"`
}

// MaterializationResult is the project-level aggregate returned to the
// caller after one run. It is built incrementally during the run and
// never persisted by this core.
type MaterializationResult struct {
	RunID       string            `json:"runId"`
	ProjectName string            `json:"projectName"`
	StartDate   string            `json:"startDate"` // ISO date used for due-date derivation
	Created     int               `json:"created"`
	Failed      int               `json:"failed"`
	Milestones  []MilestoneResult `json:"milestones"`
}

// Aggregate recomputes the project-level counters from the milestone
// results.
func (r *MaterializationResult) Aggregate() {
	r.Created, r.Failed = 0, 0
	for _, m := range r.Milestones {
		r.Created += m.Created
		r.Failed += m.Failed
	}
}

// Failures returns all per-task failures across milestones.
func (r *MaterializationResult) Failures() []TaskFailure {
	var out []TaskFailure
	for _, m := range r.Milestones {
		out = append(out, m.Failures...)
	}
	return out
}

// Unresolved returns all unresolved dependency links across milestones.
func (r *MaterializationResult) Unresolved() []UnresolvedDependency {
	var out []UnresolvedDependency
	for _, m := range r.Milestones {
		out = append(out, m.Unresolved...)
	}
	return out
}
