package desk

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storydesk/deskbot/internal/core/editorial"
)

type fakeNotifier struct {
	channel string
	text    string
	calls   int
}

func (n *fakeNotifier) PostMessage(_ context.Context, channel, text string) error {
	n.channel = channel
	n.text = text
	n.calls++
	return nil
}

func TestFeedbackType(t *testing.T) {
	cases := []struct {
		name   string
		labels []string
		want   string
	}{
		{"pitch awaiting peers", []string{"Type: Pitch", "Peer: Feedback Required"}, FeedbackPitch},
		{"story awaiting peers", []string{"Type: Story", "Peer: Feedback Required"}, FeedbackDraft},
		{"story awaiting revision feedback", []string{"Type: Story", "Peer: Revision Feedback Required"}, FeedbackRevision},
		{"nothing outstanding", []string{"Type: Story"}, ""},
		{"pitch without flags", []string{"Type: Pitch"}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := editorial.Item{Labels: tc.labels}
			assert.Equal(t, tc.want, FeedbackType(it))
		})
	}
}

func TestRosterMessage(t *testing.T) {
	items := []editorial.Item{
		{Number: 12, Title: "Bike lanes", Author: "carol", Labels: []string{"Type: Story", "Peer: Feedback Required"}},
		{Number: 3, Title: "Subway pitch", Author: "alice", Labels: []string{"Type: Pitch", "Peer: Feedback Required"}},
		{Number: 5, Title: "Rats of NYC", Author: "bob", Labels: []string{"Type: Story", "Peer: Revision Feedback Required"}},
		{Number: 4, Title: "Ferry pitch", Author: "dan", Labels: []string{"Type: Pitch", "Peer: Feedback Required"}},
		{Number: 9, Title: "All quiet", Author: "eve", Labels: []string{"Type: Meta"}},
	}

	svc := NewRosterService(newFakeTracker(), &fakeNotifier{}, testConfig(), zerolog.Nop())
	// 2026-03-02 is a Monday.
	now := time.Date(2026, time.March, 2, 15, 0, 0, 0, time.UTC)

	msg := svc.Message(items, now)

	want := "*FEEDBACK ROLL CALL!*\n\n" +
		"*Who needs feedback?* Don't fret, buddies, I'll tell ya. As of Monday, March 2 at around 3PM, it looks something like...\n" +
		"\n*Pitch Feedback Needed*:\n" +
		"<https://github.com/storydesk/projects/issues/3|Subway pitch> / alice\n" +
		"<https://github.com/storydesk/projects/issues/4|Ferry pitch> / dan\n" +
		"\n*Draft Feedback Needed*:\n" +
		"<https://github.com/storydesk/projects/issues/12|Bike lanes> / carol\n" +
		"\n*Revision Feedback Needed*:\n" +
		"<https://github.com/storydesk/projects/issues/5|Rats of NYC> / bob\n" +
		"\nAnd remember, pitches and stories both need *two comments of feedback* (not counting bots or editors!). Click a few, add your thoughts, and help your classmates out!"

	assert.Equal(t, want, msg)
}

func TestRosterNotify(t *testing.T) {
	ctx := context.Background()

	ft := newFakeTracker(
		editorial.Item{
			Number: 3,
			Title:  "Subway pitch",
			Author: "alice",
			State:  editorial.StateOpen,
			Labels: []string{"Type: Pitch", "Peer: Feedback Required"},
		},
		editorial.Item{
			Number: 4,
			Title:  "Closed out",
			Author: "bob",
			State:  editorial.StateClosed,
			Labels: []string{"Type: Pitch", "Peer: Feedback Required"},
		},
	)

	notifier := &fakeNotifier{}
	svc := NewRosterService(ft, notifier, testConfig(), zerolog.Nop())

	require.NoError(t, svc.Notify(ctx))

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "#story-critique", notifier.channel)
	assert.Contains(t, notifier.text, "Subway pitch")
	assert.NotContains(t, notifier.text, "Closed out", "closed items stay off the roster")
}
