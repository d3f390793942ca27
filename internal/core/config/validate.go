package config

import (
	"fmt"
	"regexp"

	"github.com/hay-kot/criterio"
)

var repoPathRe = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)

// Validate checks structural configuration problems that would break every
// run. Credential checks are separate because each surface (tracker, Slack)
// only needs its own token.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("repository", c.Repository, repositoryPath),
		criterio.Run("bot_login", c.BotLogin, nonEmpty),
		criterio.Run("workers", c.Workers, positive),
		criterio.Run("review.peer_approvals", c.Review.PeerApprovals, positive),
		criterio.Run("review.editor_approvals", c.Review.EditorApprovals, positive),
		criterio.Run("remote.timeout_seconds", c.Remote.TimeoutSeconds, positive),
	)
}

// RequireGitHub checks the credentials needed to talk to the tracker.
func (c *Config) RequireGitHub() error {
	if c.GitHubToken == "" {
		return fmt.Errorf("github token missing: set github_token or GITHUB_TOKEN")
	}
	return nil
}

// RequireSlack checks the credentials and channel needed for the roster.
func (c *Config) RequireSlack() error {
	return criterio.ValidateStruct(
		criterio.Run("slack_token", c.SlackToken, nonEmpty),
		criterio.Run("channel", c.Channel, nonEmpty),
	)
}

func repositoryPath(path string) error {
	if !repoPathRe.MatchString(path) {
		return fmt.Errorf("must be \"owner/name\", got %q", path)
	}
	return nil
}

func nonEmpty(s string) error {
	if s == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

func positive(n int) error {
	if n <= 0 {
		return fmt.Errorf("must be positive, got %d", n)
	}
	return nil
}
