package editorial

import "strings"

// Command is the symbolic name of a workflow label. Commands double as the
// recognized title tags ("[Pitch]" lowercases to CmdPitch).
type Command string

// Workflow label commands.
const (
	CmdPitch                Command = "pitch"
	CmdStory                Command = "story"
	CmdMeta                 Command = "meta"
	CmdPullRequest          Command = "pull_request"
	CmdPeerReview           Command = "peer_review"
	CmdEditorReview         Command = "editor_review"
	CmdPeerReviewRevision   Command = "peer_review_revision"
	CmdEditorReviewRevision Command = "editor_review_revision"
	CmdUpdate               Command = "update"
	CmdRequestChecklist     Command = "bot_request_checklist"
	CmdRequestImage         Command = "bot_request_image"
	CmdRequestCategory      Command = "bot_request_category"
	CmdRequestPitchLink     Command = "bot_request_pitch_link"
	CmdRequestStoryLink     Command = "bot_request_story_link"
	CmdDataRequest          Command = "data request"
	CmdUnknown              Command = "unknown"
)

// displayNames maps commands to the canonical label strings visible on the
// tracker. These strings double as persisted workflow state read back from
// existing items, so they must never change without a label migration.
var displayNames = map[Command]string{
	CmdPitch:                "Type: Pitch",
	CmdStory:                "Type: Story",
	CmdMeta:                 "Type: Meta",
	CmdPullRequest:          "Type: Pull Request",
	CmdUnknown:              "Type: Unknown",
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
	"project 1":             "Project 1",
	"project 2":             "Project 2",
	"project 3":             "Project 3",
	"project 4":             "Project 4",
	"project 5":             "Project 5",
	"project 6":             "Project 6",
	"project 7":             "Project 7",
	"project 8":             "Project 8",
	"project 9":             "Project 9",
}

// Display returns the canonical label string for the command, or the
// command itself if it has no mapping.
func (c Command) Display() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// CommandForTag maps bracket-tag content from an item title to a command.
// Matching is case-insensitive; unrecognized content reports ok=false.
func CommandForTag(tag string) (Command, bool) {
	c := Command(strings.ToLower(tag))
	_, ok := displayNames[c]
	return c, ok
}

// CategoryOf derives the category from a label set. Story wins over pitch,
// which wins over pull request, which wins over meta, mirroring the label
// precedence items accumulate as they move through the workflow.
func CategoryOf(labels []string) Category {
	has := func(c Command) bool {
		display := c.Display()
		for _, l := range labels {
			if l == display {
				return true
			}
		}
		return false
	}

	switch {
	case has(CmdStory):
		return CategoryStory
	case has(CmdPitch):
		return CategoryPitch
	case has(CmdPullRequest):
		return CategoryPullRequest
	case has(CmdMeta):
		return CategoryMeta
	default:
		return CategoryNone
	}
}
