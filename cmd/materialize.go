package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/dependency"
	"github.com/ashwin2912/alfred-sub000/internal/shared/cmdutils"
	"github.com/ashwin2912/alfred-sub000/internal/template"
)

var (
	matFile     string
	matStart    string
	matParallel int
	matNoLedger bool
)

var materializeCmd = &cobra.Command{
	Use:   "materialize",
	Short: "Create a project template's tasks in the tracker",
	RunE:  runMaterialize,
}

func init() {
	materializeCmd.Flags().StringVarP(&matFile, "file", "f", "", "Project template YAML (required)")
	materializeCmd.Flags().StringVar(&matStart, "start", "", "Project start date YYYY-MM-DD (default: today)")
	materializeCmd.Flags().IntVar(&matParallel, "parallel", 0, "Concurrent creates per milestone (overrides config)")
	materializeCmd.Flags().BoolVar(&matNoLedger, "no-ledger", false, "Skip the idempotency ledger for this run")
	materializeCmd.MarkFlagRequired("file") //nolint:errcheck
}

func runMaterialize(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(config.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if matParallel > 0 {
		cfg.Materialize.Parallelism = matParallel
	}
	if matNoLedger {
		cfg.Materialize.Ledger = false
	}

	project, err := template.Load(matFile)
	if err != nil {
		return err
	}

	startDate := time.Now()
	if matStart != "" {
		startDate, err = time.Parse("2006-01-02", matStart)
		if err != nil {
			return fmt.Errorf("parse start date %q: %w", matStart, err)
		}
	}

	container, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, runErr := container.Materializer().Materialize(ctx, project, startDate)
	if res != nil {
		cmdutils.PrintReport(res)
		container.Notifier().MaterializationSummary(context.Background(), res)
	}
	if runErr != nil {
		return fmt.Errorf("materialization aborted: %w", runErr)
	}
	return nil
}
