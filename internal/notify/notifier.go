// Package notify announces completed audits to a Slack channel so the sales
// team can follow up on fresh leads.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	slacklib "github.com/slack-go/slack"

	"github.com/leadai/readiness/internal/domain"
)

// SlackAPI abstracts the subset of the Slack client used by Notifier.
// This allows testing without real HTTP calls.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slacklib.MsgOption) (string, string, error)
}

// Notifier posts audit-completion messages to a Slack channel. A nil client
// (no bot token configured) makes every call a no-op.
type Notifier struct {
	api     SlackAPI
	channel string
}

// New creates a Notifier. An empty botToken disables notifications.
func New(botToken, channel string) *Notifier {
	if botToken == "" {
		return &Notifier{channel: channel}
	}
	return &Notifier{api: slacklib.New(botToken), channel: channel}
}

// NewWithAPI creates a Notifier with a custom Slack client, for tests.
func NewWithAPI(api SlackAPI, channel string) *Notifier {
	return &Notifier{api: api, channel: channel}
}

// AuditCompleted posts a summary of the finished audit. Delivery failures
// are logged, never returned; notification is a side channel.
func (n *Notifier) AuditCompleted(ctx context.Context, a *domain.Audit) {
	if n.api == nil {
		return
	}

	score := 0
	if a.OverallScore != nil {
		score = *a.OverallScore
	}

	text := fmt.Sprintf("New AI readiness audit completed\n> Domain: %s\n> Lead: %s\n> Overall score: %d/100\n> Analyses: %d",
		a.Domain, a.BusinessEmail, score, len(a.Categories))

	_, _, err := n.api.PostMessageContext(ctx, n.channel, slacklib.MsgOptionText(text, false))
	if err != nil {
		log.Warn().Err(err).Str("channel", n.channel).Msg("slack notification failed")
	}
}
