// Package config defines the alfred configuration schema and its JSON
// loader. The file lives at ~/.alfred/config.json; JSON keys use
// camelCase.
package config

import "path/filepath"

// TrackerConfig holds credentials and defaults for the external
// tracker API.
type TrackerConfig struct {
	Token          string `json:"token"`
	ListID         string `json:"listId"`
	APIBase        string `json:"apiBase,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// SlackConfig configures the optional materialization-report notifier.
type SlackConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"botToken"`
	Channel  string `json:"channel"`
}

// MaterializeConfig holds engine-level knobs.
type MaterializeConfig struct {
	// Parallelism is the number of concurrent create calls within a
	// milestone. 1 means strictly sequential.
	Parallelism int `json:"parallelism"`
	// Ledger toggles the idempotency ledger consulted before creates.
	Ledger bool `json:"ledger"`
}

// SyncConfig configures the scheduled workload refresh.
type SyncConfig struct {
	// Schedule is a standard 5-field cron expression.
	Schedule string `json:"schedule"`
}

// Config is the root configuration object.
type Config struct {
	Tracker     TrackerConfig     `json:"tracker"`
	Slack       SlackConfig       `json:"slack"`
	Materialize MaterializeConfig `json:"materialize"`
	Sync        SyncConfig        `json:"sync"`
	RosterPath  string            `json:"rosterPath,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Tracker:     TrackerConfig{TimeoutSeconds: 30},
		Materialize: MaterializeConfig{Parallelism: 1, Ledger: true},
		Sync:        SyncConfig{Schedule: "0 */6 * * *"},
	}
}

// LedgerPath returns the idempotency ledger location under DataDir.
func (c *Config) LedgerPath() string {
	return filepath.Join(DataDir(), "ledger.json")
}

// WorkloadSnapshotPath returns where the sync service caches workload
// snapshots.
func (c *Config) WorkloadSnapshotPath() string {
	return filepath.Join(DataDir(), "workload.json")
}
