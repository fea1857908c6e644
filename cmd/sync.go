package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/dependency"
	"github.com/ashwin2912/alfred-sub000/internal/roster"
	"github.com/ashwin2912/alfred-sub000/internal/workload"
)

var (
	syncRoster   string
	syncSchedule string
	syncOnce     bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Keep the workload snapshot fresh on a schedule",
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncRoster, "roster", "", "Roster YAML (default: rosterPath from config)")
	syncCmd.Flags().StringVar(&syncSchedule, "schedule", "", "Cron expression (overrides config)")
	syncCmd.Flags().BoolVar(&syncOnce, "once", false, "Refresh once and exit")
}

func runSync(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	rosterPath := syncRoster
	if rosterPath == "" {
		rosterPath = cfg.RosterPath
	}
	if rosterPath == "" {
		return fmt.Errorf("no roster: pass --roster or set rosterPath in %s", config.ConfigPath())
	}
	schedule := syncSchedule
	if schedule == "" {
		schedule = cfg.Sync.Schedule
	}

	members, err := roster.Load(rosterPath)
	if err != nil {
		return err
	}
	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	svc := workload.NewService(container.Tracker(), members, cfg.WorkloadSnapshotPath(), schedule)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if syncOnce {
		snap, err := svc.RefreshOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Snapshot written (%d members) to %s\n", len(snap.Hours), cfg.WorkloadSnapshotPath())
		return nil
	}

	fmt.Printf("%s Syncing workload on schedule %q — Ctrl+C to stop\n", logo, schedule)
	err = svc.Start(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}
