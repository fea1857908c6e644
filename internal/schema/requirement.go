package schema

import (
	"strings"
	"time"
)

// Priority is a task urgency level. The numeric mapping follows the
// tracker's convention: lower number means higher priority.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

var priorityNumbers = map[Priority]int{
	PriorityUrgent: 1,
	PriorityHigh:   2,
	PriorityNormal: 3,
	PriorityLow:    4,
}

// Number returns the tracker's numeric code for the priority.
// Unknown priorities fall back to normal.
func (p Priority) Number() int {
	if n, ok := priorityNumbers[p]; ok {
		return n
	}
	return priorityNumbers[PriorityNormal]
}

// Valid reports whether p is one of the four known priorities.
func (p Priority) Valid() bool {
	_, ok := priorityNumbers[p]
	return ok
}

// ParsePriority normalizes a raw string to a Priority.
// The empty string parses to normal.
func ParsePriority(s string) (Priority, bool) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return PriorityNormal, true
	}
	p := Priority(t)
	return p, p.Valid()
}

// TaskRequirement describes the skills and effort a task demands.
type TaskRequirement struct {
	RequiredSkills    []string   `json:"requiredSkills" yaml:"required_skills"`
	EstimatedHours    float64    `json:"estimatedHours" yaml:"estimated_hours"`
	Priority          Priority   `json:"priority,omitempty" yaml:"priority,omitempty"`
	DueDate           *time.Time `json:"dueDate,omitempty" yaml:"due_date,omitempty"`
	PreferredAssignee string     `json:"preferredAssignee,omitempty" yaml:"preferred_assignee,omitempty"`
}
