// Package slack delivers roster messages to a Slack channel.
package slack

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// Notifier posts messages through the Slack Web API.
type Notifier struct {
	client *slack.Client
	dryRun bool
	log    zerolog.Logger
}

// New creates a Notifier with the given bot token.
func New(token string, dryRun bool, log zerolog.Logger) *Notifier {
	return &Notifier{
		client: slack.New(token),
		dryRun: dryRun,
		log:    log.With().Str("component", "slack").Logger(),
	}
}

// PostMessage sends text to the channel as the bot user. Skipped in
// dry-run mode.
func (n *Notifier) PostMessage(ctx context.Context, channel, text string) error {
	if n.dryRun {
		n.log.Info().Str("channel", channel).Str("text", text).Msg("dry-run: skipping slack message")
		return nil
	}

	_, _, err := n.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("post message to %s: %w", channel, err)
	}
	return nil
}
