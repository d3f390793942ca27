package editorial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The display strings are persisted workflow state on the tracker. If one
// of these assertions fails, existing items need a label migration first.
func TestCommandDisplay_FrozenContract(t *testing.T) {
	cases := map[Command]string{
		CmdPitch:                "Type: Pitch",
		CmdStory:                "Type: Story",
		CmdMeta:                 "Type: Meta",
		CmdPullRequest:          "Type: Pull Request",
		CmdPeerReview:           "Peer: Feedback Required",
		CmdEditorReview:         "Editor: Feedback Required",
		CmdPeerReviewRevision:   "Peer: Revision Feedback Required",
		CmdEditorReviewRevision: "Editor: Revision Feedback Required",
		CmdUpdate:               "Update Requested",
		CmdRequestChecklist:     "Bot Request: Checklist",
		CmdRequestImage:         "Bot Request: Image",
		CmdRequestCategory:      "Bot Request: Category",
		CmdRequestPitchLink:     "Bot Request: Link Pitch Issue",
		CmdRequestStoryLink:     "Bot Request: Link Story Issue",
		CmdDataRequest:          "Request: Data",
		"project 3":             "Project 3",
	}

	for cmd, want := range cases {
		assert.Equal(t, want, cmd.Display(), "display for %q", cmd)
	}
}

func TestCommandForTag(t *testing.T) {
	t.Run("recognizes known tags case-insensitively", func(t *testing.T) {
		for _, tag := range []string{"Pitch", "pitch", "PITCH"} {
			cmd, ok := CommandForTag(tag)
			assert.True(t, ok, "tag %q", tag)
			assert.Equal(t, CmdPitch, cmd)
		}
	})

	t.Run("recognizes multi-word tags", func(t *testing.T) {
		cmd, ok := CommandForTag("Project 2")
		assert.True(t, ok)
		assert.Equal(t, "Project 2", cmd.Display())
	})

	t.Run("rejects unknown tags", func(t *testing.T) {
		_, ok := CommandForTag("WIP")
		assert.False(t, ok)
	})
}

func TestCategoryOf(t *testing.T) {
	t.Run("single category labels", func(t *testing.T) {
		assert.Equal(t, CategoryPitch, CategoryOf([]string{"Type: Pitch"}))
		assert.Equal(t, CategoryStory, CategoryOf([]string{"Type: Story"}))
		assert.Equal(t, CategoryPullRequest, CategoryOf([]string{"Type: Pull Request"}))
		assert.Equal(t, CategoryMeta, CategoryOf([]string{"Type: Meta"}))
	})

	t.Run("story wins over pitch", func(t *testing.T) {
		got := CategoryOf([]string{"Type: Pitch", "Type: Story"})
		assert.Equal(t, CategoryStory, got)
	})

	t.Run("non-category labels are ignored", func(t *testing.T) {
		got := CategoryOf([]string{"Peer: Feedback Required", "Project 1"})
		assert.Equal(t, CategoryNone, got)
	})

	t.Run("empty set has no category", func(t *testing.T) {
		assert.Equal(t, CategoryNone, CategoryOf(nil))
	})
}
