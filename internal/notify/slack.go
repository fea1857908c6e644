// Package notify posts materialization summaries to Slack. This is an
// outbound report only; alfred never reads or handles chat traffic.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	slackgo "github.com/slack-go/slack"

	"github.com/ashwin2912/alfred-sub000/internal/schema"
)

// SlackNotifier posts run summaries to one channel. A notifier built
// without a token is disabled and silently drops messages, so callers
// never need to branch on configuration.
type SlackNotifier struct {
	client  *slackgo.Client
	channel string
}

// NewSlackNotifier builds a notifier. An empty token or channel yields
// a disabled notifier.
func NewSlackNotifier(botToken, channel string) *SlackNotifier {
	n := &SlackNotifier{channel: channel}
	if botToken != "" && channel != "" {
		n.client = slackgo.New(botToken)
	}
	return n
}

// Enabled reports whether the notifier will actually post.
func (n *SlackNotifier) Enabled() bool { return n.client != nil }

// MaterializationSummary posts a one-message report for a finished
// run. Notification failures are logged, never fatal: the run already
// happened and its result is in the caller's hands.
func (n *SlackNotifier) MaterializationSummary(ctx context.Context, res *schema.MaterializationResult) {
	if n.client == nil {
		return
	}
	text := FormatSummary(res)
	if _, _, err := n.client.PostMessageContext(ctx, n.channel,
		slackgo.MsgOptionText(text, false)); err != nil {
		slog.Warn("notify: slack post failed", "channel", n.channel, "err", err)
		return
	}
	slog.Info("notify: summary posted", "channel", n.channel, "run", res.RunID)
}

// FormatSummary renders the run report as Slack-flavoured text.
func FormatSummary(res *schema.MaterializationResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s* materialized (start %s)\n", res.ProjectName, res.StartDate)
	fmt.Fprintf(&b, "Created: %d  Failed: %d\n", res.Created, res.Failed)

	if failures := res.Failures(); len(failures) > 0 {
		b.WriteString("\nFailures:\n")
		for _, f := range failures {
			fmt.Fprintf(&b, "• %s — %s\n", f.TaskName, f.Err)
		}
	}
	if unresolved := res.Unresolved(); len(unresolved) > 0 {
		b.WriteString("\nUnlinked dependencies:\n")
		for _, u := range unresolved {
			fmt.Fprintf(&b, "• %s → %s\n", u.TaskName, u.DependsOn)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
