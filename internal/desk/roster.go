package desk

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/storydesk/deskbot/internal/core/config"
	"github.com/storydesk/deskbot/internal/core/editorial"
)

// Feedback group names, in roster order.
const (
	FeedbackPitch    = "Pitch Feedback"
	FeedbackDraft    = "Draft Feedback"
	FeedbackRevision = "Revision Feedback"
)

var feedbackOrder = []string{FeedbackPitch, FeedbackDraft, FeedbackRevision}

// Notifier delivers a composed message to a chat channel.
type Notifier interface {
	PostMessage(ctx context.Context, channel, text string) error
}

// RosterService composes the feedback roll call from open items and sends
// it to the configured channel.
type RosterService struct {
	tracker    editorial.Tracker
	notifier   Notifier
	repository string
	channel    string
	now        func() time.Time
	log        zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(tracker editorial.Tracker, notifier Notifier, cfg *config.Config, log zerolog.Logger) *RosterService {
	return &RosterService{
		tracker:    tracker,
		notifier:   notifier,
		repository: cfg.Repository,
		channel:    cfg.Channel,
		now:        time.Now,
		log:        log.With().Str("component", "roster").Logger(),
	}
}

// Notify composes the roster over currently open items and posts it.
func (s *RosterService) Notify(ctx context.Context) error {
	items, err := s.tracker.ListOpenItems(ctx)
	if err != nil {
		return fmt.Errorf("list open items: %w", err)
	}

	msg := s.Message(items, s.now())
	s.log.Info().Str("channel", s.channel).Int("items", len(items)).Msg("posting feedback roster")

	if err := s.notifier.PostMessage(ctx, s.channel, msg); err != nil {
		return fmt.Errorf("post roster: %w", err)
	}
	return nil
}

// FeedbackType returns the roster group an item belongs to, or "" when the
// item needs no feedback. Pitches awaiting peer review get their own group;
// everything else awaiting peer review is a draft.
func FeedbackType(it editorial.Item) string {
	switch {
	case it.Category() == editorial.CategoryPitch && it.HasLabel(editorial.CmdPeerReview):
		return FeedbackPitch
	case it.HasLabel(editorial.CmdPeerReview):
		return FeedbackDraft
	case it.HasLabel(editorial.CmdPeerReviewRevision):
		return FeedbackRevision
	default:
		return ""
	}
}

// Message renders the full roll-call text: items grouped by feedback type,
// sorted by number within each group, one "<link|title> / author" line per
// item.
func (s *RosterService) Message(items []editorial.Item, now time.Time) string {
	groups := map[string][]editorial.Item{}
	for _, it := range items {
		if ft := FeedbackType(it); ft != "" {
			groups[ft] = append(groups[ft], it)
		}
	}

	var b strings.Builder
	b.WriteString("*FEEDBACK ROLL CALL!*\n\n")
	b.WriteString("*Who needs feedback?* Don't fret, buddies, I'll tell ya. As of ")
	b.WriteString(now.Format("Monday, January 2 at around 3PM"))
	b.WriteString(", it looks something like...\n")

	for _, group := range feedbackOrder {
		members := groups[group]
		if len(members) == 0 {
			continue
		}
		sort.Slice(members, func(i, j int) bool {
			return members[i].Number < members[j].Number
		})

		b.WriteString("\n*" + group + " Needed*:\n")
		for _, it := range members {
			fmt.Fprintf(&b, "<%s|%s> / %s\n", it.URL(s.repository), it.Title, it.Author)
		}
	}

	b.WriteString("\nAnd remember, pitches and stories both need *two comments of feedback* (not counting bots or editors!). Click a few, add your thoughts, and help your classmates out!")
	return b.String()
}
