package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Repository = "storydesk/projects"
	cfg.GitHubToken = "gh-token"
	return &cfg
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		require.NoError(t, err)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, 2, cfg.Review.PeerApprovals)
		assert.Equal(t, 1, cfg.Review.EditorApprovals)
		assert.Equal(t, "deskbot", cfg.BotLogin)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		body := `
repository: storydesk/projects
channel: "#story-critique"
editors:
  - editor1
  - editor2
review:
  peer_approvals: 3
workers: 2
`
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "storydesk/projects", cfg.Repository)
		assert.Equal(t, "#story-critique", cfg.Channel)
		assert.Equal(t, []string{"editor1", "editor2"}, cfg.Editors)
		assert.Equal(t, 3, cfg.Review.PeerApprovals)
		assert.Equal(t, 1, cfg.Review.EditorApprovals, "untouched defaults survive")
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("tokens fall back to environment", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "env-gh")
		t.Setenv("SLACK_TOKEN", "env-slack")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "env-gh", cfg.GitHubToken)
		assert.Equal(t, "env-slack", cfg.SlackToken)
	})

	t.Run("malformed yaml is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [nope"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("rejects bad repository path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Repository = "just-a-name"
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects non-positive workers", func(t *testing.T) {
		cfg := validConfig()
		cfg.Workers = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects zero review thresholds", func(t *testing.T) {
		cfg := validConfig()
		cfg.Review.PeerApprovals = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestRequireCredentials(t *testing.T) {
	t.Run("github token required", func(t *testing.T) {
		cfg := validConfig()
		assert.NoError(t, cfg.RequireGitHub())
		cfg.GitHubToken = ""
		assert.Error(t, cfg.RequireGitHub())
	})

	t.Run("slack needs token and channel", func(t *testing.T) {
		cfg := validConfig()
		cfg.SlackToken = "xoxb-123"
		cfg.Channel = "#story-critique"
		assert.NoError(t, cfg.RequireSlack())

		cfg.Channel = ""
		assert.Error(t, cfg.RequireSlack())
	})
}
