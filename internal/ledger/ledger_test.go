package ledger

import (
	"path/filepath"
	"testing"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.json")
	return New(path), path
}

func TestLookup_Empty(t *testing.T) {
	l, _ := newTestLedger(t)
	if _, ok := l.Lookup("missing"); ok {
		t.Fatal("expected miss on empty ledger")
	}
}

func TestRecordAndLookup(t *testing.T) {
	l, _ := newTestLedger(t)
	l.Record("fp1", "Design schema", "task-1")

	id, ok := l.Lookup("fp1")
	if !ok {
		t.Fatal("expected hit after Record")
	}
	if id != "task-1" {
		t.Errorf("id = %q, want %q", id, "task-1")
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	l, path := newTestLedger(t)
	l.Record("fp1", "Design schema", "task-1")

	reloaded := New(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	id, ok := reloaded.Lookup("fp1")
	if !ok || id != "task-1" {
		t.Errorf("reloaded lookup = %q, %v; want task-1, true", id, ok)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope", "ledger.json"))
	if err := l.Load(); err != nil {
		t.Fatalf("missing file should not error, got: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d entries", l.Len())
	}
}

func TestFingerprint_Stable(t *testing.T) {
	task := schema.TaskTemplate{Name: "Build API", EstimatedHours: 8, Week: 2}
	a := Fingerprint("proj", "m1", task)
	b := Fingerprint("proj", "m1", task)
	if a != b {
		t.Error("fingerprint must be deterministic")
	}
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	base := schema.TaskTemplate{
		Name:           "Build API",
		EstimatedHours: 8,
		RequiredSkills: []string{"go"},
		Tags:           []string{"backend"},
		Assignee:       "u1",
		Subtasks:       []string{"Write handler"},
	}
	cases := []struct {
		name   string
		mutate func(*schema.TaskTemplate)
	}{
		{"estimate", func(task *schema.TaskTemplate) { task.EstimatedHours = 12 }},
		{"description", func(task *schema.TaskTemplate) { task.Description = "rest layer" }},
		{"priority", func(task *schema.TaskTemplate) { task.Priority = schema.PriorityHigh }},
		{"week", func(task *schema.TaskTemplate) { task.Week = 3 }},
		{"required skills", func(task *schema.TaskTemplate) { task.RequiredSkills = []string{"rust"} }},
		{"tags", func(task *schema.TaskTemplate) { task.Tags = []string{"frontend"} }},
		{"assignee", func(task *schema.TaskTemplate) { task.Assignee = "u2" }},
		{"subtasks", func(task *schema.TaskTemplate) { task.Subtasks = []string{"Write tests"} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed := base
			tc.mutate(&changed)
			if Fingerprint("proj", "m1", base) == Fingerprint("proj", "m1", changed) {
				t.Errorf("changing %s must change the fingerprint", tc.name)
			}
		})
	}
	if Fingerprint("proj", "m1", base) == Fingerprint("proj", "m2", base) {
		t.Error("changing the milestone must change the fingerprint")
	}
}

func TestLinkFingerprint(t *testing.T) {
	a := LinkFingerprint("task-2", "task-1")
	if a != LinkFingerprint("task-2", "task-1") {
		t.Error("link fingerprint must be deterministic")
	}
	if a == LinkFingerprint("task-1", "task-2") {
		t.Error("link fingerprint must be directional")
	}
	if a == LinkFingerprint("task-2", "task-3") {
		t.Error("different targets must yield different fingerprints")
	}
}

func TestSubtaskFingerprint_DistinctFromParent(t *testing.T) {
	task := schema.TaskTemplate{Name: "Build API"}
	parent := Fingerprint("proj", "m1", task)
	sub := SubtaskFingerprint(parent, "Write handler")
	if sub == parent {
		t.Error("subtask fingerprint must differ from parent")
	}
	if sub != SubtaskFingerprint(parent, "Write handler") {
		t.Error("subtask fingerprint must be deterministic")
	}
}
