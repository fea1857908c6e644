// Package ledger persists a map of template-node fingerprints to
// external tracker IDs, so that re-running a materialization does not
// create duplicate entities.
//
// JSON layout on disk:
//
//	{ "version": 1, "entries": { "<fingerprint>": {
//	    "externalId":"…", "taskName":"…", "createdAtMs":… } } }
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

// Entry records one created entity.
type Entry struct {
	ExternalID  string `json:"externalId"`
	TaskName    string `json:"taskName"`
	CreatedAtMs int64  `json:"createdAtMs"`
}

type store struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Ledger is a file-backed fingerprint → external-ID map. Safe for
// concurrent use.
type Ledger struct {
	path string

	mu    sync.Mutex
	store store
}

// New creates a ledger backed by the file at path. The file is loaded
// lazily on first access; a missing file means an empty ledger.
func New(path string) *Ledger {
	return &Ledger{path: path, store: store{Version: 1, Entries: map[string]Entry{}}}
}

// Load reads the ledger file. Missing files are not an error.
func (l *Ledger) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

// Lookup returns the external ID recorded for a fingerprint.
func (l *Ledger) Lookup(fingerprint string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.store.Entries[fingerprint]
	return e.ExternalID, ok
}

// Record stores a fingerprint → ID mapping and saves immediately.
func (l *Ledger) Record(fingerprint, taskName, externalID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Entries[fingerprint] = Entry{
		ExternalID:  externalID,
		TaskName:    taskName,
		CreatedAtMs: time.Now().UnixMilli(),
	}
	l.saveLocked()
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.store.Entries)
}

func (l *Ledger) loadLocked() error {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("ledger: read %s: %w", l.path, err)
	}
	var st store
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("ledger: parse %s: %w", l.path, err)
	}
	if st.Version == 0 {
		st.Version = 1
	}
	if st.Entries == nil {
		st.Entries = map[string]Entry{}
	}
	l.store = st
	return nil
}

func (l *Ledger) saveLocked() {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		slog.Warn("ledger: mkdir failed", "err", err)
		return
	}
	data, err := json.MarshalIndent(l.store, "", "  ")
	if err != nil {
		slog.Warn("ledger: marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		slog.Warn("ledger: write failed", "err", err)
	}
}

// Fingerprint derives a stable content hash for one task template
// within a project/milestone. The hash covers every field that shapes
// the created entity, so any content change yields a new fingerprint
// and therefore a fresh create on the next run. Dependency names are
// not included: they drive annotations, which are deduplicated per
// edge via LinkFingerprint.
func Fingerprint(project, milestone string, t schema.TaskTemplate) string {
	h := sha256.New()
	for _, part := range []string{
		project, milestone, t.Name, t.Description,
		strconv.FormatFloat(t.EstimatedHours, 'g', -1, 64),
		string(t.Priority),
		strconv.Itoa(t.Week),
		t.Assignee,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	for _, s := range t.RequiredSkills {
		h.Write([]byte(s))
		h.Write([]byte{1})
	}
	for _, s := range t.Tags {
		h.Write([]byte(s))
		h.Write([]byte{2})
	}
	for _, s := range t.Subtasks {
		h.Write([]byte(s))
		h.Write([]byte{3})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LinkFingerprint identifies one posted dependency annotation, keyed
// by the two external IDs it connects. Recording it lets re-runs skip
// comments that are already on the tracker task.
func LinkFingerprint(taskID, dependsOnID string) string {
	h := sha256.New()
	h.Write([]byte("link"))
	h.Write([]byte{0})
	h.Write([]byte(taskID))
	h.Write([]byte{0})
	h.Write([]byte(dependsOnID))
	return hex.EncodeToString(h.Sum(nil))
}

// SubtaskFingerprint derives the fingerprint for one subtask under an
// already-fingerprinted parent.
func SubtaskFingerprint(parentFingerprint, name string) string {
	h := sha256.New()
	h.Write([]byte(parentFingerprint))
	h.Write([]byte{0})
	h.Write([]byte(name))
	return hex.EncodeToString(h.Sum(nil))
}
