// Package github implements the editorial Tracker over the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gh "github.com/google/go-github/v68/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/storydesk/deskbot/internal/core/editorial"
)

// Config configures the tracker gateway.
type Config struct {
	// Token is a GitHub access token.
	Token string
	// Repository is "owner/name".
	Repository string
	// Timeout bounds each remote call.
	Timeout time.Duration
	// MaxRetries bounds retries per call on transient failures.
	MaxRetries uint64
	// DryRun logs mutations instead of applying them.
	DryRun bool
}

// Tracker talks to a single GitHub repository. Every call is bounded by a
// timeout and retried with exponential backoff on transient failures.
type Tracker struct {
	client     *gh.Client
	owner      string
	name       string
	timeout    time.Duration
	maxRetries uint64
	dryRun     bool
	log        zerolog.Logger
}

// New creates a Tracker for the configured repository.
func New(cfg Config, log zerolog.Logger) (*Tracker, error) {
	owner, name, ok := strings.Cut(cfg.Repository, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("repository must be \"owner/name\", got %q", cfg.Repository)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	httpClient := oauth2.NewClient(context.Background(), ts)

	return &Tracker{
		client:     gh.NewClient(httpClient),
		owner:      owner,
		name:       name,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		dryRun:     cfg.DryRun,
		log:        log.With().Str("component", "github").Logger(),
	}, nil
}

// ListItems returns every item in the repository, all states.
func (t *Tracker) ListItems(ctx context.Context) ([]editorial.Item, error) {
	return t.listItems(ctx, "all")
}

// ListOpenItems returns only open items.
func (t *Tracker) ListOpenItems(ctx context.Context) ([]editorial.Item, error) {
	return t.listItems(ctx, "open")
}

func (t *Tracker) listItems(ctx context.Context, state string) ([]editorial.Item, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var items []editorial.Item
	for {
		var (
			issues []*gh.Issue
			resp   *gh.Response
		)
		err := t.withRetry(ctx, func(ctx context.Context) error {
			var err error
			issues, resp, err = t.client.Issues.ListByRepo(ctx, t.owner, t.name, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list %s issues: %w", state, err)
		}

		for _, issue := range issues {
			items = append(items, convertIssue(issue))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return items, nil
}

// GetItem fetches a single item fresh.
func (t *Tracker) GetItem(ctx context.Context, number int) (editorial.Item, error) {
	var issue *gh.Issue
	err := t.withRetry(ctx, func(ctx context.Context) error {
		var err error
		issue, _, err = t.client.Issues.Get(ctx, t.owner, t.name, number)
		return err
	})
	if err != nil {
		return editorial.Item{}, fmt.Errorf("get issue #%d: %w", number, err)
	}
	return convertIssue(issue), nil
}

// ListComments returns an item's comments in chronological order.
func (t *Tracker) ListComments(ctx context.Context, number int) ([]editorial.Comment, error) {
	opts := &gh.IssueListCommentsOptions{
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	var comments []editorial.Comment
	for {
		var (
			ghComments []*gh.IssueComment
			resp       *gh.Response
		)
		err := t.withRetry(ctx, func(ctx context.Context) error {
			var err error
			ghComments, resp, err = t.client.Issues.ListComments(ctx, t.owner, t.name, number, opts)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("list comments for #%d: %w", number, err)
		}

		for _, c := range ghComments {
			comments = append(comments, convertComment(c))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return comments, nil
}

// UpdateItem applies a partial update. In dry-run mode the mutation is
// logged and skipped, and the returned item is zero apart from its number.
func (t *Tracker) UpdateItem(ctx context.Context, number int, upd editorial.ItemUpdate) (editorial.Item, error) {
	if t.dryRun {
		t.log.Info().Int("item", number).Interface("update", upd).Msg("dry-run: skipping item update")
		return editorial.Item{Number: number}, nil
	}

	req := &gh.IssueRequest{
		Title:  upd.Title,
		Labels: upd.Labels,
	}
	if upd.State != nil {
		req.State = gh.String(string(*upd.State))
	}

	var issue *gh.Issue
	err := t.withRetry(ctx, func(ctx context.Context) error {
		var err error
		issue, _, err = t.client.Issues.Edit(ctx, t.owner, t.name, number, req)
		return err
	})
	if err != nil {
		return editorial.Item{}, fmt.Errorf("update issue #%d: %w", number, err)
	}
	return convertIssue(issue), nil
}

// AddComment posts a new comment on the item. Skipped in dry-run mode.
func (t *Tracker) AddComment(ctx context.Context, number int, body string) error {
	if t.dryRun {
		t.log.Info().Int("item", number).Str("body", body).Msg("dry-run: skipping comment")
		return nil
	}

	err := t.withRetry(ctx, func(ctx context.Context) error {
		_, _, err := t.client.Issues.CreateComment(ctx, t.owner, t.name, number, &gh.IssueComment{
			Body: gh.String(body),
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("comment on issue #%d: %w", number, err)
	}
	return nil
}

// withRetry runs op under the per-call timeout, retrying transient failures
// with exponential backoff up to maxRetries. Client errors other than rate
// limiting are permanent.
func (t *Tracker) withRetry(ctx context.Context, op func(context.Context) error) error {
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), t.maxRetries), ctx)

	return backoff.Retry(func() error {
		callCtx := ctx
		if t.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, t.timeout)
			defer cancel()
		}

		err := op(callCtx)
		if err == nil {
			return nil
		}
		t.log.Debug().Err(err).Msg("remote call failed")
		return classifyError(err)
	}, bo)
}

func classifyError(err error) error {
	var rateLimit *gh.RateLimitError
	var abuse *gh.AbuseRateLimitError
	if errors.As(err, &rateLimit) || errors.As(err, &abuse) {
		return err
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode < 500 {
		// 4xx responses won't get better on retry.
		return backoff.Permanent(err)
	}
	return err
}
