// Package editorial defines the domain model for tracked editorial work
// items (pitches, stories, pull requests) and the derived queries the
// workflow engine runs against them. Everything in this package is pure;
// remote access goes through the Tracker interface.
package editorial

import (
	"context"
	"fmt"
)

// PlaceholderTitle is substituted when stripping category tags would leave
// an item with an empty title.
const PlaceholderTitle = "Untitled"

// State is the lifecycle state of an item on the tracker.
type State string

// Item states.
const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Category classifies an item by its label set.
type Category string

// Item categories. CategoryNone means no category label is present yet.
const (
	CategoryPitch       Category = "pitch"
	CategoryStory       Category = "story"
	CategoryPullRequest Category = "pull_request"
	CategoryMeta        Category = "meta"
	CategoryNone        Category = ""
)

// Item is a snapshot of a tracked work item. It is fetched fresh each run;
// the labels on the tracker are the only durable workflow state.
type Item struct {
	Number int
	Title  string
	Body   string
	State  State
	Author string
	Labels []string
	// PullRequest reports whether the tracker payload marks this item as a
	// pull request, independent of any category label.
	PullRequest bool
}

// HasLabel reports whether the item carries the display label for cmd.
func (it Item) HasLabel(cmd Command) bool {
	display := cmd.Display()
	for _, l := range it.Labels {
		if l == display {
			return true
		}
	}
	return false
}

// Category derives the item's category from its current label set.
func (it Item) Category() Category {
	return CategoryOf(it.Labels)
}

// URL returns the web address of the item within the given repository
// ("owner/name").
func (it Item) URL(repository string) string {
	return fmt.Sprintf("https://github.com/%s/issues/%d", repository, it.Number)
}

// Comment is a single comment on an item, in chronological position.
type Comment struct {
	Author string
	Body   string
}

// ItemUpdate describes a partial mutation of an item. Nil fields are left
// unchanged.
type ItemUpdate struct {
	Title  *string
	Labels *[]string
	State  *State
}

// Tracker is the gateway to the remote issue tracker. Implementations must
// return items and comments as typed snapshots; comments are returned in
// chronological order.
type Tracker interface {
	// ListItems returns every item in the repository, all states.
	ListItems(ctx context.Context) ([]Item, error)
	// ListOpenItems returns only open items.
	ListOpenItems(ctx context.Context) ([]Item, error)
	// GetItem fetches a single item fresh.
	GetItem(ctx context.Context, number int) (Item, error)
	// ListComments returns an item's comments in chronological order.
	ListComments(ctx context.Context, number int) ([]Comment, error)
	// UpdateItem applies a partial update and returns the updated item.
	UpdateItem(ctx context.Context, number int, upd ItemUpdate) (Item, error)
	// AddComment posts a new comment on the item.
	AddComment(ctx context.Context, number int, body string) error
}
