package desk

import (
	"context"
	"fmt"

	"github.com/storydesk/deskbot/internal/core/editorial"
)

// check pairs a flag label with the predicate that clears it and the
// comment posted when the predicate first fails. A check leaves at most one
// nag comment outstanding per item and self-clears once the underlying
// condition is fixed.
type check struct {
	flag    editorial.Command
	test    func(w *workItem) bool
	comment string
}

var (
	checkChecklist = check{
		flag:    editorial.CmdRequestChecklist,
		test:    func(w *workItem) bool { return editorial.HasChecklist(w.item.Body) },
		comment: "Hi there, I'm the Desk Bot!\n\nWould you mind **posting the appropriate checklist** in the main body of your issue? You might have posted it as the first comment, but it turns out it works *way better* in the actual body of the issue - just go up to the veeery top right and click the **pencil icon** to edit. You'll probably want to edit the comment to copy the checklist, then edit the original issue to paste it in.\n\nThanks! :pray:",
	}

	checkImage = check{
		flag:    editorial.CmdRequestImage,
		test:    func(w *workItem) bool { return editorial.HasImage(w.item.Body) },
		comment: "Hi there, I'm the Desk Bot!\n\nThanks for posting your story issue, but would you mind editing the original issue to **add the first draft of your image?** You have my sincere apologies, but it's easier for dumb robots like me when the comments are only used for updates.\n\nThanks! :pray:",
	}

	checkCategory = check{
		flag:    editorial.CmdRequestCategory,
		test:    func(w *workItem) bool { return w.category() != editorial.CategoryNone },
		comment: "Hi there, I'm the Desk Bot!\n\nWould you mind **adding a category to your issue title?** Something like [Pitch] or [Story], or maybe [Meta] if it happens to be a bug. That way we can organize things nice and neat.\n\nThanks! :pray:",
	}

	checkPitchLink = check{
		flag:    editorial.CmdRequestPitchLink,
		test:    func(w *workItem) bool { return editorial.HasIssueLink(w.item.Body) },
		comment: "Hi there, I'm the Desk Bot!\n\nWould you mind **linking to your pitch issue** by using the '#1' method (but with your actual pitch issue number)? It'll hopefully help us keep things neat and organized.\n\nThanks a zillion! :pray:",
	}

	checkStoryLink = check{
		flag:    editorial.CmdRequestStoryLink,
		test:    func(w *workItem) bool { return editorial.HasIssueLink(w.item.Body) },
		comment: "Hi there, I'm the Desk Bot!\n\nWould you mind **linking to your story issue** by using the '#1' method (but with your actual story issue number)? It'll hopefully help us keep things neat and organized.\n\nThanks a zillion! :pray:",
	}
)

// runCheck reconciles a single check against the item's current state:
//
//   - flag present, predicate holds  -> remove the flag (problem resolved)
//   - flag present, predicate fails  -> leave it; no repeated comment
//   - flag absent, predicate fails   -> post the comment, then add the flag
//   - flag absent, predicate holds   -> nothing to do
func (s *WorkflowService) runCheck(ctx context.Context, w *workItem, c check) error {
	if w.hasLabel(c.flag) {
		if c.test(w) {
			w.log.Debug().Str("check", string(c.flag)).Msg("check passes now, clearing flag")
			return w.removeLabel(ctx, c.flag)
		}
		w.log.Debug().Str("check", string(c.flag)).Msg("check already flagged, still failing")
		return nil
	}

	if c.test(w) {
		return nil
	}

	w.log.Debug().Str("check", string(c.flag)).Msg("check fails, commenting and flagging")
	if err := w.addComment(ctx, c.comment); err != nil {
		return fmt.Errorf("post %s comment: %w", c.flag, err)
	}
	return w.addLabel(ctx, c.flag)
}
