// Package desk implements the editorial workflow services: the per-item
// review workflow engine and the Slack feedback roster.
package desk

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/storydesk/deskbot/internal/core/config"
	"github.com/storydesk/deskbot/internal/core/editorial"
)

// WorkflowService reconciles every tracked item against the editorial
// workflow rules. All decisions are recomputed from current tracker state
// on each run, so re-running on unchanged input is a no-op.
type WorkflowService struct {
	tracker         editorial.Tracker
	roles           editorial.Roles
	peerApprovals   int
	editorApprovals int
	workers         int
	locks           *itemLocks
	log             zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(tracker editorial.Tracker, cfg *config.Config, log zerolog.Logger) *WorkflowService {
	return &WorkflowService{
		tracker: tracker,
		roles: editorial.Roles{
			Editors: cfg.Editors,
			Bot:     cfg.BotLogin,
		},
		peerApprovals:   cfg.Review.PeerApprovals,
		editorApprovals: cfg.Review.EditorApprovals,
		workers:         cfg.Workers,
		locks:           newItemLocks(),
		log:             log.With().Str("component", "workflow").Logger(),
	}
}

// ProcessAll fetches every item (all states) and processes each on a
// bounded worker pool. The first per-item failure cancels the remaining
// work and is returned; items already in flight finish their current step.
func (s *WorkflowService) ProcessAll(ctx context.Context) error {
	items, err := s.tracker.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("list items: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		pool     = newWorkerPool(s.workers)
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for _, it := range items {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		go func(it editorial.Item) {
			defer wg.Done()
			pool.run(func() {
				if ctx.Err() != nil {
					return
				}
				if err := s.Process(ctx, it); err != nil {
					s.log.Error().Err(err).Int("item", it.Number).Msg("item processing failed")
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("process item #%d: %w", it.Number, err)
						cancel()
					}
					mu.Unlock()
				}
			})
		}(it)
	}

	wg.Wait()
	return firstErr
}

// Process runs the full workflow for one item: title-tag extraction,
// pull-request auto-labeling, checks, review-state reconciliation, and
// finally linked-item closures. The item's own lock is held for everything
// except the closer, which only ever mutates other items.
func (s *WorkflowService) Process(ctx context.Context, it editorial.Item) error {
	w := s.newWorkItem(it)

	unlock := s.locks.lock(it.Number)
	err := s.reconcile(ctx, w)
	unlock()
	if err != nil {
		return err
	}

	s.closeLinked(ctx, w)
	return nil
}

func (s *WorkflowService) reconcile(ctx context.Context, w *workItem) error {
	w.log.Info().
		Str("author", w.item.Author).
		Str("category", string(w.category())).
		Str("title", w.item.Title).
		Msg("processing item")

	if err := s.applyTitleTags(ctx, w); err != nil {
		return err
	}

	if w.item.PullRequest && !w.hasLabel(editorial.CmdPullRequest) {
		if err := w.addLabel(ctx, editorial.CmdPullRequest); err != nil {
			return err
		}
	}

	// Closed items get no further label or comment churn; only their
	// linked-item closures still apply.
	if w.item.State == editorial.StateClosed {
		return nil
	}

	if err := s.runCheck(ctx, w, checkCategory); err != nil {
		return err
	}

	switch w.category() {
	case editorial.CategoryPitch:
		return s.reconcilePitch(ctx, w)
	case editorial.CategoryStory:
		return s.reconcileStory(ctx, w)
	case editorial.CategoryPullRequest:
		if err := s.runCheck(ctx, w, checkChecklist); err != nil {
			return err
		}
		return s.runCheck(ctx, w, checkStoryLink)
	case editorial.CategoryMeta:
		w.log.Debug().Msg("meta item, nothing to reconcile")
	}

	// CategoryNone: the category check above already asked for a tag.
	return nil
}

// applyTitleTags turns recognized bracket tags in the title into labels and
// strips them from the title in a single update.
func (s *WorkflowService) applyTitleTags(ctx context.Context, w *workItem) error {
	newLabels, clean := editorial.ExtractTags(w.item.Title)
	if len(newLabels) == 0 {
		return nil
	}

	merged := slices.Clone(w.item.Labels)
	for _, l := range newLabels {
		if !slices.Contains(merged, l) {
			merged = append(merged, l)
		}
	}

	if clean == "" {
		clean = editorial.PlaceholderTitle
	}

	return w.update(ctx, editorial.ItemUpdate{Title: &clean, Labels: &merged})
}

func (s *WorkflowService) reconcilePitch(ctx context.Context, w *workItem) error {
	if err := s.runCheck(ctx, w, checkChecklist); err != nil {
		return err
	}

	t, err := w.thread(ctx)
	if err != nil {
		return err
	}

	hasPeer := t.PeerCount(0) >= s.peerApprovals
	hasEditor := t.EditorCount(0) >= s.editorApprovals

	if !hasPeer {
		if err := w.addLabel(ctx, editorial.CmdPeerReview); err != nil {
			return err
		}
	} else if err := w.removeLabel(ctx, editorial.CmdPeerReview); err != nil {
		return err
	}

	if hasPeer && !hasEditor {
		if err := w.addLabel(ctx, editorial.CmdEditorReview); err != nil {
			return err
		}
	}
	if hasEditor {
		if err := w.removeLabel(ctx, editorial.CmdEditorReview); err != nil {
			return err
		}
	}

	return nil
}

func (s *WorkflowService) reconcileStory(ctx context.Context, w *workItem) error {
	for _, c := range []check{checkChecklist, checkImage, checkPitchLink} {
		if err := s.runCheck(ctx, w, c); err != nil {
			return err
		}
	}

	t, err := w.thread(ctx)
	if err != nil {
		return err
	}

	var (
		hasPeer   = t.PeerCount(0) >= s.peerApprovals
		hasEditor = t.EditorCount(0) >= s.editorApprovals
		cut       = t.UpdateIndex()
		cutUsable = t.RevisionCutUsable()

		hasPeerAfter   = cutUsable && t.PeerCount(cut) >= s.peerApprovals
		hasEditorAfter = cutUsable && t.EditorCount(cut) >= s.editorApprovals
	)

	// Clear whatever is now satisfied before adding new flags, so a story
	// never briefly carries both a met and an unmet version of a flag.
	type clear struct {
		met  bool
		flag editorial.Command
	}
	for _, c := range []clear{
		{hasPeer, editorial.CmdPeerReview},
		{hasEditor, editorial.CmdEditorReview},
		{hasPeerAfter, editorial.CmdPeerReviewRevision},
		{hasEditorAfter, editorial.CmdEditorReviewRevision},
	} {
		if !c.met {
			continue
		}
		if err := w.removeLabel(ctx, c.flag); err != nil {
			return err
		}
	}

	if !hasPeer {
		return w.addLabel(ctx, editorial.CmdPeerReview)
	}

	if !hasEditor {
		if err := w.addLabel(ctx, editorial.CmdEditorReview); err != nil {
			return err
		}
	}

	if !t.HasUpdate() {
		return w.addLabel(ctx, editorial.CmdUpdate)
	}

	if !hasPeerAfter {
		if err := w.addLabel(ctx, editorial.CmdPeerReviewRevision); err != nil {
			return err
		}
	}
	if !hasEditorAfter {
		if err := w.addLabel(ctx, editorial.CmdEditorReviewRevision); err != nil {
			return err
		}
	}

	return nil
}

// workItem carries an item's progressively-updated in-memory state through
// one workflow run. Label and title mutations are applied locally and
// pushed through the tracker immediately; the comment list is cached until
// the bot itself posts, which invalidates it.
type workItem struct {
	svc            *WorkflowService
	item           editorial.Item
	comments       []editorial.Comment
	commentsLoaded bool
	log            zerolog.Logger
}

func (s *WorkflowService) newWorkItem(it editorial.Item) *workItem {
	return &workItem{
		svc:  s,
		item: it,
		log:  s.log.With().Int("item", it.Number).Logger(),
	}
}

func (w *workItem) category() editorial.Category {
	return w.item.Category()
}

func (w *workItem) hasLabel(cmd editorial.Command) bool {
	return w.item.HasLabel(cmd)
}

func (w *workItem) addLabel(ctx context.Context, cmd editorial.Command) error {
	if w.hasLabel(cmd) {
		return nil
	}
	w.log.Info().Str("label", string(cmd)).Msg("+label")

	labels := append(slices.Clone(w.item.Labels), cmd.Display())
	return w.update(ctx, editorial.ItemUpdate{Labels: &labels})
}

func (w *workItem) removeLabel(ctx context.Context, cmd editorial.Command) error {
	if !w.hasLabel(cmd) {
		return nil
	}
	w.log.Info().Str("label", string(cmd)).Msg("-label")

	display := cmd.Display()
	labels := slices.DeleteFunc(slices.Clone(w.item.Labels), func(l string) bool {
		return l == display
	})
	return w.update(ctx, editorial.ItemUpdate{Labels: &labels})
}

// update pushes a partial update through the tracker and mirrors it into
// the in-memory snapshot so later steps in the same run see it without a
// re-fetch.
func (w *workItem) update(ctx context.Context, upd editorial.ItemUpdate) error {
	if _, err := w.svc.tracker.UpdateItem(ctx, w.item.Number, upd); err != nil {
		return fmt.Errorf("update item #%d: %w", w.item.Number, err)
	}

	if upd.Title != nil {
		w.item.Title = *upd.Title
	}
	if upd.Labels != nil {
		w.item.Labels = *upd.Labels
	}
	if upd.State != nil {
		w.item.State = *upd.State
	}
	return nil
}

func (w *workItem) addComment(ctx context.Context, body string) error {
	if err := w.svc.tracker.AddComment(ctx, w.item.Number, body); err != nil {
		return fmt.Errorf("comment on item #%d: %w", w.item.Number, err)
	}
	// Comment-dependent predicates need a live list after a post.
	w.commentsLoaded = false
	return nil
}

// thread returns the item's comment history for review counting, fetching
// lazily and re-fetching after the bot posts.
func (w *workItem) thread(ctx context.Context) (editorial.Thread, error) {
	if !w.commentsLoaded {
		comments, err := w.svc.tracker.ListComments(ctx, w.item.Number)
		if err != nil {
			return editorial.Thread{}, fmt.Errorf("list comments for item #%d: %w", w.item.Number, err)
		}
		w.comments = comments
		w.commentsLoaded = true
	}

	return editorial.Thread{
		Author:   w.item.Author,
		Comments: w.comments,
		Roles:    w.svc.roles,
	}, nil
}
