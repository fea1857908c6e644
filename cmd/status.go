package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/ledger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show alfred status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s alfred Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	trackerMark := "✗ token/list not set"
	if cfg.Tracker.Token != "" && cfg.Tracker.ListID != "" {
		trackerMark = "✓ list " + cfg.Tracker.ListID
	}
	fmt.Printf("Tracker:   %s\n", trackerMark)

	if cfg.Materialize.Ledger {
		l := ledger.New(cfg.LedgerPath())
		if err := l.Load(); err != nil {
			fmt.Printf("Ledger:    ✗ %v\n", err)
		} else {
			fmt.Printf("Ledger:    ✓ %d entries at %s\n", l.Len(), cfg.LedgerPath())
		}
	} else {
		fmt.Println("Ledger:    disabled")
	}

	slackMark := "disabled"
	if cfg.Slack.Enabled && cfg.Slack.BotToken != "" {
		slackMark = "✓ " + cfg.Slack.Channel
	}
	fmt.Printf("Slack:     %s\n", slackMark)

	rosterMark := "not set"
	if cfg.RosterPath != "" {
		rosterMark = cfg.RosterPath
		if _, err := os.Stat(cfg.RosterPath); err != nil {
			rosterMark += " ✗"
		} else {
			rosterMark += " ✓"
		}
	}
	fmt.Printf("Roster:    %s\n", rosterMark)
	fmt.Printf("Parallel:  %d  Sync: %q\n", cfg.Materialize.Parallelism, cfg.Sync.Schedule)
	return nil
}
