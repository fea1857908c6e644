// Package materialize turns a declarative project template into real
// entities in the external tracker.
//
// Materialization runs two passes per milestone: a creation pass that
// makes every task (and its subtasks), then a link pass that annotates
// dependencies once every creation attempt in the milestone has
// finished. A single task failure never aborts its milestone; the
// caller gets a full accounting of what was created, what failed and
// which dependency links could not be resolved.
package materialize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ashwin2912/alfred-sub000/internal/ledger"
	"github.com/ashwin2912/alfred-sub000/internal/schema"
	"github.com/ashwin2912/alfred-sub000/internal/tracker"
)

const subtaskPrefix = "↳ "

// Option configures a Materializer.
type Option func(*Materializer)

// WithParallelism enables parallel task creation within a milestone.
// n is the number of concurrent create calls; n <= 1 keeps the default
// strictly sequential behaviour. Milestones themselves always run in
// template order, and the link pass never starts before every creation
// attempt in the milestone has finished.
func WithParallelism(n int) Option {
	return func(m *Materializer) {
		if n > 1 {
			m.parallelism = n
		}
	}
}

// WithLedger attaches an idempotency ledger. Before each create the
// materializer consults the ledger by template-node fingerprint; a hit
// reuses the recorded external ID without calling the tracker.
func WithLedger(l *ledger.Ledger) Option {
	return func(m *Materializer) { m.ledger = l }
}

// Materializer creates tracker entities from project templates.
// It holds no cross-run state; each Materialize call owns its own
// arena and result tree.
type Materializer struct {
	client      tracker.Client
	ledger      *ledger.Ledger
	parallelism int
}

// New builds a Materializer on top of a tracker client.
func New(client tracker.Client, opts ...Option) *Materializer {
	m := &Materializer{client: client, parallelism: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize creates every task of every milestone, then links
// dependencies. The template is never mutated; all outcomes land in
// the returned result. Context cancellation aborts remaining
// milestones but keeps already-created work and its accounting: the
// partial result is returned alongside ctx.Err().
func (m *Materializer) Materialize(ctx context.Context, project schema.ProjectTemplate, startDate time.Time) (*schema.MaterializationResult, error) {
	a, err := buildArena(project)
	if err != nil {
		return nil, err
	}

	result := &schema.MaterializationResult{
		RunID:       uuid.NewString(),
		ProjectName: project.Name,
		StartDate:   startDate.Format("2006-01-02"),
	}

	slog.Info("materialize: starting run",
		"run", result.RunID, "project", project.Name,
		"milestones", len(project.Milestones), "tasks", project.TaskCount())

	for mi, ms := range project.Milestones {
		if ctx.Err() != nil {
			result.Aggregate()
			return result, ctx.Err()
		}

		mres := schema.MilestoneResult{Name: ms.Name}
		m.createPass(ctx, a, mi, project.Name, ms.Name, startDate, &mres)
		m.linkPass(ctx, a, mi, &mres)
		result.Milestones = append(result.Milestones, mres)

		slog.Info("materialize: milestone done",
			"milestone", ms.Name, "created", mres.Created, "failed", mres.Failed,
			"unresolved", len(mres.Unresolved))
	}

	result.Aggregate()
	return result, nil
}

// taskOutcome is the creation-pass result for one arena node.
type taskOutcome struct {
	created         *schema.CreatedTask
	failure         *schema.TaskFailure
	subtasksCreated int
	subtasksFailed  int
}

// createPass attempts creation of every task in the milestone, in
// template order. With parallelism enabled the attempts run
// concurrently, but outcomes are folded into the result in template
// order so accounting stays deterministic.
func (m *Materializer) createPass(ctx context.Context, a *arena, mi int, project, milestone string, startDate time.Time, mres *schema.MilestoneResult) {
	indexes := a.milestones[mi]
	outcomes := make([]taskOutcome, len(indexes))

	if m.parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(m.parallelism)
		for pos, idx := range indexes {
			pos, idx := pos, idx
			g.Go(func() error {
				outcomes[pos] = m.createOne(gctx, a.nodes[idx], project, milestone, startDate)
				return nil // per-task failures never cancel siblings
			})
		}
		g.Wait() //nolint:errcheck // workers never return errors
	} else {
		for pos, idx := range indexes {
			outcomes[pos] = m.createOne(ctx, a.nodes[idx], project, milestone, startDate)
		}
	}

	for _, out := range outcomes {
		switch {
		case out.created != nil:
			mres.Created++
			mres.Tasks = append(mres.Tasks, *out.created)
		case out.failure != nil:
			mres.Failed++
			mres.Failures = append(mres.Failures, *out.failure)
		}
		mres.SubtasksCreated += out.subtasksCreated
		mres.SubtasksFailed += out.subtasksFailed
	}
}

// createOne creates a single task and its subtasks, consulting the
// ledger first when one is attached. On success the node's externalID
// is filled in for the link pass.
func (m *Materializer) createOne(ctx context.Context, n *node, project, milestone string, startDate time.Time) taskOutcome {
	t := n.task

	var fingerprint string
	if m.ledger != nil {
		fingerprint = ledger.Fingerprint(project, milestone, t)
		if id, ok := m.ledger.Lookup(fingerprint); ok {
			n.externalID = id
			slog.Info("materialize: reusing ledger entry", "task", t.Name, "id", id)
			return taskOutcome{created: &schema.CreatedTask{TaskName: t.Name, ExternalID: id, FromLedger: true}}
		}
	}

	req := tracker.CreateTaskRequest{
		Name:         t.Name,
		Description:  buildDescription(t),
		Priority:     t.Priority.Number(),
		TimeEstimate: tracker.HoursToEstimate(t.EstimatedHours),
		Tags:         t.Tags,
	}
	if t.Assignee != "" {
		req.Assignees = []string{t.Assignee}
	}
	if t.Week > 0 {
		req.DueDateMs = tracker.ToEpochMs(dueDateFor(startDate, t.Week))
	}

	created, err := m.client.CreateTask(ctx, req)
	if err != nil {
		slog.Warn("materialize: create failed", "task", t.Name, "err", err)
		return taskOutcome{failure: &schema.TaskFailure{TaskName: t.Name, Err: err.Error()}}
	}
	n.externalID = created.ID
	slog.Info("materialize: created task", "task", t.Name, "id", created.ID)

	if m.ledger != nil {
		m.ledger.Record(fingerprint, t.Name, created.ID)
	}

	out := taskOutcome{created: &schema.CreatedTask{TaskName: t.Name, ExternalID: created.ID, URL: created.URL}}
	out.subtasksCreated, out.subtasksFailed = m.createSubtasks(ctx, t, created.ID, fingerprint)
	return out
}

// createSubtasks creates each declared subtask as a lightweight child
// entity tagged back to the parent. Subtask failures are logged and
// counted apart; they never change the parent's accounting.
func (m *Materializer) createSubtasks(ctx context.Context, t schema.TaskTemplate, parentID, parentFingerprint string) (created, failed int) {
	for _, name := range t.Subtasks {
		req := tracker.CreateTaskRequest{
			Name: subtaskPrefix + name,
			Tags: []string{"parent:" + parentID},
		}
		sub, err := m.client.CreateTask(ctx, req)
		if err != nil {
			slog.Warn("materialize: subtask create failed", "parent", t.Name, "subtask", name, "err", err)
			failed++
			continue
		}
		created++
		if m.ledger != nil {
			m.ledger.Record(ledger.SubtaskFingerprint(parentFingerprint, name), name, sub.ID)
		}
	}
	return created, failed
}

// linkPass annotates dependency relationships after every creation
// attempt in the milestone has completed. Links whose target was never
// created are skipped, not failed: the tracker has no native blocking
// relationship, so annotations are best effort. Skipped links are
// still surfaced in the result for visibility. A task that itself
// failed creation is skipped wholesale: its failure record already
// covers every link it declared. With a ledger attached, each posted
// annotation is recorded per edge so re-runs do not repeat it.
func (m *Materializer) linkPass(ctx context.Context, a *arena, mi int, mres *schema.MilestoneResult) {
	for _, idx := range a.milestones[mi] {
		n := a.nodes[idx]
		if len(n.deps) == 0 || n.externalID == "" {
			continue
		}
		for _, e := range n.deps {
			if e.index < 0 {
				mres.Unresolved = append(mres.Unresolved, schema.UnresolvedDependency{
					TaskName: n.task.Name, DependsOn: e.name, KnownName: false,
				})
				continue
			}
			target := a.nodes[e.index]
			if target.externalID == "" {
				mres.Unresolved = append(mres.Unresolved, schema.UnresolvedDependency{
					TaskName: n.task.Name, DependsOn: e.name, KnownName: true,
				})
				continue
			}
			var lfp string
			if m.ledger != nil {
				lfp = ledger.LinkFingerprint(n.externalID, target.externalID)
				if _, ok := m.ledger.Lookup(lfp); ok {
					continue
				}
			}
			text := fmt.Sprintf("⛓ Depends on: %s (%s)", e.name, target.externalID)
			if err := m.client.AddComment(ctx, n.externalID, text); err != nil {
				slog.Warn("materialize: dependency annotation failed",
					"task", n.task.Name, "dependsOn", e.name, "err", err)
				continue
			}
			if m.ledger != nil {
				m.ledger.Record(lfp, n.task.Name, target.externalID)
			}
		}
	}
}

// dueDateFor maps a 1-based schedule week onto the end of that week.
// Every task in the same week shares the same due date.
func dueDateFor(start time.Time, week int) time.Time {
	return start.AddDate(0, 0, (week-1)*7+6)
}

// buildDescription embeds the task's skills, estimate and subtask
// checklist as structured text for the tracker.
func buildDescription(t schema.TaskTemplate) string {
	var b strings.Builder
	if t.Description != "" {
		b.WriteString(t.Description)
		b.WriteString("\n\n")
	}
	if len(t.RequiredSkills) > 0 {
		fmt.Fprintf(&b, "**Required skills:** %s\n", strings.Join(t.RequiredSkills, ", "))
	}
	if t.EstimatedHours > 0 {
		fmt.Fprintf(&b, "**Estimate:** %gh\n", t.EstimatedHours)
	}
	if t.Priority != "" {
		fmt.Fprintf(&b, "**Priority:** %s\n", t.Priority)
	}
	if len(t.Subtasks) > 0 {
		b.WriteString("\n**Subtasks:**\n")
		for _, s := range t.Subtasks {
			fmt.Fprintf(&b, "- [ ] %s\n", s)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
