// Package roster loads the team roster and derives each member's
// committed hours from the tracker.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
	"github.com/ashwin2912/alfred-sub000/internal/tracker"
)

type rosterFile struct {
	Members []schema.SkillProfile `yaml:"members"`
}

// Load reads and validates a YAML roster file.
func Load(path string) ([]schema.SkillProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("roster: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates raw roster YAML.
func Parse(data []byte) ([]schema.SkillProfile, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("roster: parse: %w", err)
	}
	if len(f.Members) == 0 {
		return nil, fmt.Errorf("roster: no members")
	}
	for i, m := range f.Members {
		if m.MemberID == "" {
			return nil, fmt.Errorf("roster: member %d has no member_id", i+1)
		}
		if m.WeeklyCapacityHours < 0 {
			return nil, fmt.Errorf("roster: member %q has negative capacity %g", m.MemberID, m.WeeklyCapacityHours)
		}
		for _, s := range m.Skills {
			if s.Name == "" {
				return nil, fmt.Errorf("roster: member %q has a skill with no name", m.MemberID)
			}
			if !s.Proficiency.Valid() {
				return nil, fmt.Errorf("roster: member %q skill %q has unknown proficiency %q",
					m.MemberID, s.Name, s.Proficiency)
			}
		}
	}
	return f.Members, nil
}

// CommittedHours queries the tracker for each member's open-task
// workload. The result maps member ID to hours. A failed query for one
// member fails the whole call: committed hours are an input to
// scoring, and a silent zero would rank an overloaded member as free.
func CommittedHours(ctx context.Context, client tracker.Client, members []schema.SkillProfile) (map[string]float64, error) {
	committed := make(map[string]float64, len(members))
	for _, m := range members {
		hours, err := client.WorkloadHours(ctx, m.MemberID)
		if err != nil {
			return nil, fmt.Errorf("roster: workload for %s: %w", m.MemberID, err)
		}
		committed[m.MemberID] = hours
		slog.Debug("roster: workload", "member", m.MemberID, "hours", hours)
	}
	return committed, nil
}
