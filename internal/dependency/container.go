// Package dependency wires core alfred services using go.uber.org/dig.
package dependency

import (
	"time"

	"go.uber.org/dig"

	"github.com/ashwin2912/alfred-sub000/internal/config"
	"github.com/ashwin2912/alfred-sub000/internal/ledger"
	"github.com/ashwin2912/alfred-sub000/internal/materialize"
	"github.com/ashwin2912/alfred-sub000/internal/notify"
	"github.com/ashwin2912/alfred-sub000/internal/tracker"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig
// directly.
type Container struct {
	client       tracker.Client
	led          *ledger.Ledger
	materializer *materialize.Materializer
	notifier     *notify.SlackNotifier
}

func (c *Container) Tracker() tracker.Client                 { return c.client }
func (c *Container) Ledger() *ledger.Ledger                  { return c.led }
func (c *Container) Materializer() *materialize.Materializer { return c.materializer }
func (c *Container) Notifier() *notify.SlackNotifier         { return c.notifier }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newTrackerClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newLedger); err != nil {
		return nil, err
	}
	if err := d.Provide(newMaterializer); err != nil {
		return nil, err
	}
	if err := d.Provide(newNotifier); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		client tracker.Client,
		led *ledger.Ledger,
		m *materialize.Materializer,
		n *notify.SlackNotifier,
	) {
		result = &Container{client: client, led: led, materializer: m, notifier: n}
	})
	return result, err
}

func newTrackerClient(cfg *config.Config) (tracker.Client, error) {
	return tracker.NewClickUpClient(tracker.ClickUpParams{
		Token:   cfg.Tracker.Token,
		ListID:  cfg.Tracker.ListID,
		APIBase: cfg.Tracker.APIBase,
		Timeout: time.Duration(cfg.Tracker.TimeoutSeconds) * time.Second,
	})
}

func newLedger(cfg *config.Config) (*ledger.Ledger, error) {
	if !cfg.Materialize.Ledger {
		return nil, nil
	}
	l := ledger.New(cfg.LedgerPath())
	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

func newMaterializer(cfg *config.Config, client tracker.Client, l *ledger.Ledger) *materialize.Materializer {
	opts := []materialize.Option{materialize.WithParallelism(cfg.Materialize.Parallelism)}
	if l != nil {
		opts = append(opts, materialize.WithLedger(l))
	}
	return materialize.New(client, opts...)
}

func newNotifier(cfg *config.Config) *notify.SlackNotifier {
	if !cfg.Slack.Enabled {
		return notify.NewSlackNotifier("", "")
	}
	return notify.NewSlackNotifier(cfg.Slack.BotToken, cfg.Slack.Channel)
}
