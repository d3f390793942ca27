package github

import (
	gh "github.com/google/go-github/v68/github"

	"github.com/storydesk/deskbot/internal/core/editorial"
)

// convertIssue maps a raw API issue into the typed editorial model. All
// downstream logic works on these named fields, never on the payload.
func convertIssue(issue *gh.Issue) editorial.Item {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	return editorial.Item{
		Number:      issue.GetNumber(),
		Title:       issue.GetTitle(),
		Body:        issue.GetBody(),
		State:       editorial.State(issue.GetState()),
		Author:      issue.GetUser().GetLogin(),
		Labels:      labels,
		PullRequest: issue.IsPullRequest(),
	}
}

func convertComment(c *gh.IssueComment) editorial.Comment {
	return editorial.Comment{
		Author: c.GetUser().GetLogin(),
		Body:   c.GetBody(),
	}
}
