package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/dependency"
	"github.com/ashwin2912/alfred-sub000/internal/roster"
	"github.com/ashwin2912/alfred-sub000/internal/workload"
)

var (
	workloadRoster string
	workloadCached bool
)

var workloadCmd = &cobra.Command{
	Use:   "workload",
	Short: "Show each member's committed vs available hours",
	RunE:  runWorkload,
}

func init() {
	workloadCmd.Flags().StringVar(&workloadRoster, "roster", "", "Roster YAML (default: rosterPath from config)")
	workloadCmd.Flags().BoolVar(&workloadCached, "cached", false, "Use the workload snapshot instead of live queries")
}

func runWorkload(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rosterPath := workloadRoster
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

	var hours map[string]float64
	if workloadCached {
		snap, err := workload.LoadSnapshot(cfg.WorkloadSnapshotPath())
		if err != nil {
			return err
		}
		if snap.TakenAtMs > 0 {
			fmt.Printf("Snapshot taken %s ago.\n", snap.Age().Round(time.Minute))
		}
		hours = snap.Hours
	} else {
		container, err := dependency.New(cfg)
		if err != nil {
			return err
		}
		hours, err = roster.CommittedHours(context.Background(), container.Tracker(), members)
		if err != nil {
			return err
		}
	}

	fmt.Printf("\n%-20s %10s %10s %10s\n", "Member", "Capacity", "Committed", "Available")
	for _, m := range members {
		if !m.IsActive {
			continue
		}
		committed := hours[m.MemberID]
		fmt.Printf("%-20s %10.1f %10.1f %10.1f\n",
			m.Name, m.WeeklyCapacityHours, committed, m.AvailableHours(committed))
	}
	fmt.Println()
	return nil
}
