// Package tracker defines the boundary to the external task-tracking
// system and its ClickUp-style HTTP adapter.
package tracker

import (
	"context"
	"time"
)

// CreateTaskRequest carries everything needed to create one task.
// DueDate and TimeEstimate follow the tracker's conventions:
// millisecond epoch timestamps and millisecond durations.
type CreateTaskRequest struct {
	Name         string
	Description  string
	Assignees    []string
	Priority     int // 1=urgent … 4=low
	DueDateMs    int64
	TimeEstimate int64 // milliseconds
	Tags         []string
	ListID       string
}

// Task is the tracker's view of one created or fetched task.
type Task struct {
	ID            string
	Name          string
	URL           string
	Status        string
	EstimateHours float64
	DueDateMs     int64
}

// Client is the set of tracker operations the engine consumes. Every
// call can fail with a generic request failure; callers do not
// distinguish auth errors from rate limits from network errors.
type Client interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)
	AddComment(ctx context.Context, taskID, text string) error
	TasksForUser(ctx context.Context, userID string, listIDs []string) ([]Task, error)
	WorkloadHours(ctx context.Context, userID string) (float64, error)
}

// HoursToEstimate converts an hour figure to the tracker's millisecond
// duration convention.
func HoursToEstimate(hours float64) int64 {
	return int64(hours * 3_600_000)
}

// ToEpochMs converts a time to the tracker's millisecond epoch
// timestamp convention.
func ToEpochMs(t time.Time) int64 { return t.UnixMilli() }
