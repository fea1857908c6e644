package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashwin2912/alfred-sub000/internal/assign"
	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/dependency"
	"github.com/ashwin2912/alfred-sub000/internal/roster"
	"github.com/ashwin2912/alfred-sub000/internal/schema"
	"github.com/ashwin2912/alfred-sub000/internal/shared/cmdutils"
	"github.com/ashwin2912/alfred-sub000/internal/template"
	"github.com/ashwin2912/alfred-sub000/internal/workload"
)

var (
	assignFile   string
	assignRoster string
	assignTop    int
	assignCached bool
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Rank candidates for a task requirement",
	RunE:  runAssign,
}

func init() {
	assignCmd.Flags().StringVarP(&assignFile, "file", "f", "", "Task requirement YAML (required)")
	assignCmd.Flags().StringVar(&assignRoster, "roster", "", "Roster YAML (default: rosterPath from config)")
	assignCmd.Flags().IntVar(&assignTop, "top", 3, "Show the top N candidates (0 = all)")
	assignCmd.Flags().BoolVar(&assignCached, "cached", false, "Use the workload snapshot instead of live queries")
	assignCmd.MarkFlagRequired("file") //nolint:errcheck
}

func runAssign(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rosterPath := assignRoster
	if rosterPath == "" {
		rosterPath = cfg.RosterPath
	}
	if rosterPath == "" {
		return fmt.Errorf("no roster: pass --roster or set rosterPath in %s", config.ConfigPath())
	}

	members, err := roster.Load(rosterPath)
	if err != nil {
		return err
	}
	req, err := template.LoadRequirement(assignFile)
	if err != nil {
		return err
	}

	committed, err := committedHours(cfg, members)
	if err != nil {
		return err
	}

	scores := assign.Rank(members, committed, req, assignTop)
	cmdutils.PrintScores(scores)
	return nil
}

// committedHours reads the cached snapshot when asked, otherwise
// queries the tracker live.
func committedHours(cfg *config.Config, members []schema.SkillProfile) (map[string]float64, error) {
	if assignCached {
		snap, err := workload.LoadSnapshot(cfg.WorkloadSnapshotPath())
		if err != nil {
			return nil, err
		}
		if snap.TakenAtMs > 0 {
			fmt.Printf("Using workload snapshot from %s ago.\n", snap.Age().Round(time.Minute))
		}
		return snap.Hours, nil
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return nil, err
	}
	return roster.CommittedHours(context.Background(), container.Tracker(), members)
}
