// Package workload refreshes per-member committed hours from the
// tracker on a cron schedule and caches the snapshot for the assign
// and workload commands.
//
// Snapshot JSON layout:
//
//	{ "version": 1, "takenAtMs": …, "hours": { "<memberId>": … } }
package workload

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/ashwin2912/alfred-sub000/internal/roster"
	"github.com/ashwin2912/alfred-sub000/internal/schema"
	"github.com/ashwin2912/alfred-sub000/internal/tracker"
)

// Snapshot is one cached workload reading.
type Snapshot struct {
	Version   int                `json:"version"`
	TakenAtMs int64              `json:"takenAtMs"`
	Hours     map[string]float64 `json:"hours"`
}

// Age returns how old the snapshot is.
func (s Snapshot) Age() time.Duration {
	return time.Since(time.UnixMilli(s.TakenAtMs))
}

// Service periodically refreshes the workload snapshot.
type Service struct {
	client       tracker.Client
	members      []schema.SkillProfile
	snapshotPath string
	schedule     string
}

// NewService builds a workload refresher. schedule is a standard
// 5-field cron expression.
func NewService(client tracker.Client, members []schema.SkillProfile, snapshotPath, schedule string) *Service {
	return &Service{
		client:       client,
		members:      members,
		snapshotPath: snapshotPath,
		schedule:     schedule,
	}
}

// Start refreshes once immediately, then on every schedule tick.
// Blocks until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if _, err := s.RefreshOnce(ctx); err != nil {
		slog.Warn("workload: initial refresh failed", "err", err)
	}

	c := robfigcron.New()
	if _, err := c.AddFunc(s.schedule, func() {
		if _, err := s.RefreshOnce(ctx); err != nil {
			slog.Warn("workload: refresh failed", "err", err)
		}
	}); err != nil {
		return fmt.Errorf("workload: invalid schedule %q: %w", s.schedule, err)
	}

	c.Start()
	slog.Info("workload: started", "schedule", s.schedule, "members", len(s.members))

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

// RefreshOnce queries the tracker for every member and writes the
// snapshot file.
func (s *Service) RefreshOnce(ctx context.Context) (Snapshot, error) {
	hours, err := roster.CommittedHours(ctx, s.client, s.members)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Version: 1, TakenAtMs: time.Now().UnixMilli(), Hours: hours}
	if err := s.save(snap); err != nil {
		return Snapshot{}, err
	}
	slog.Info("workload: snapshot written", "members", len(hours), "path", s.snapshotPath)
	return snap, nil
}

func (s *Service) save(snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.snapshotPath), 0o755); err != nil {
		return fmt.Errorf("workload: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("workload: marshal: %w", err)
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		return fmt.Errorf("workload: write %s: %w", s.snapshotPath, err)
	}
	return nil
}

// LoadSnapshot reads a cached snapshot. A missing file returns an
// empty snapshot and no error so callers can fall back to live
// queries.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Snapshot{Version: 1, Hours: map[string]float64{}}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("workload: read %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("workload: parse %s: %w", path, err)
	}
	if snap.Hours == nil {
		snap.Hours = map[string]float64{}
	}
	return snap, nil
}
