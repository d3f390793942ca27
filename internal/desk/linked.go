package desk

import (
	"context"
	"fmt"

	"github.com/storydesk/deskbot/internal/core/editorial"
)

// closeLinked scans the item body for "#N" references and closes each
// referenced item that the closure rules apply to. Failures on a single
// reference are logged and skipped; they never abort the current item or
// the other references.
func (s *WorkflowService) closeLinked(ctx context.Context, w *workItem) {
	for _, number := range editorial.LinkedNumbers(w.item.Body) {
		if ctx.Err() != nil {
			return
		}
		s.closeLinkedItem(ctx, w, number)
	}
}

func (s *WorkflowService) closeLinkedItem(ctx context.Context, w *workItem, number int) {
	unlock := s.locks.lock(number)
	defer unlock()

	linked, err := s.tracker.GetItem(ctx, number)
	if err != nil {
		w.log.Warn().Err(err).Int("linked", number).Msg("could not resolve linked item, skipping")
		return
	}

	linkedCat := linked.Category()

	// A freshly opened story supersedes its pitch.
	if w.category() == editorial.CategoryStory &&
		linkedCat == editorial.CategoryPitch &&
		linked.State == editorial.StateOpen {
		w.log.Info().Int("linked", number).Msg("story opened, closing the associated pitch")

		body := fmt.Sprintf("Closing pitch since story has been opened at #%d", w.item.Number)
		if err := s.closeWithComment(ctx, number, body); err != nil {
			w.log.Warn().Err(err).Int("linked", number).Msg("could not close linked pitch")
		}
		return
	}

	// An accepted pull request closes out the story or pitch it delivered.
	if w.category() == editorial.CategoryPullRequest &&
		w.item.State == editorial.StateClosed &&
		(linkedCat == editorial.CategoryStory || linkedCat == editorial.CategoryPitch) &&
		linked.State == editorial.StateOpen {
		w.log.Info().Int("linked", number).Msg("pull request accepted, closing the associated item")

		body := fmt.Sprintf("Closing since pull request #%d has been accepted", w.item.Number)
		if err := s.closeWithComment(ctx, number, body); err != nil {
			w.log.Warn().Err(err).Int("linked", number).Msg("could not close linked item")
		}
	}
}

func (s *WorkflowService) closeWithComment(ctx context.Context, number int, body string) error {
	if err := s.tracker.AddComment(ctx, number, body); err != nil {
		return fmt.Errorf("comment on item #%d: %w", number, err)
	}

	closed := editorial.StateClosed
	if _, err := s.tracker.UpdateItem(ctx, number, editorial.ItemUpdate{State: &closed}); err != nil {
		return fmt.Errorf("close item #%d: %w", number, err)
	}
	return nil
}
