// Package config handles configuration loading and validation for deskbot.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	// Repository is the tracked repository as "owner/name".
	Repository string `yaml:"repository"`

	// GitHubToken authenticates tracker calls. Falls back to the
	// GITHUB_TOKEN environment variable when empty.
	GitHubToken string `yaml:"github_token"`

	// SlackToken authenticates roster delivery. Falls back to the
	// SLACK_TOKEN environment variable when empty.
	SlackToken string `yaml:"slack_token"`

	// Channel is the Slack channel the feedback roster is posted to.
	Channel string `yaml:"channel"`

	// BotLogin is the bot's own tracker login, used to classify its
	// comments as automation rather than peer feedback.
	BotLogin string `yaml:"bot_login"`

	// Editors lists tracker logins whose comments count as editor reviews.
	Editors []string `yaml:"editors"`

	Review ReviewConfig `yaml:"review"`
	Remote RemoteConfig `yaml:"remote"`

	// Workers bounds how many items are processed concurrently.
	Workers int `yaml:"workers"`

	// DryRun logs every mutation instead of applying it.
	DryRun bool `yaml:"dry_run"`
}

// ReviewConfig sets the review thresholds for pitches and stories.
type ReviewConfig struct {
	PeerApprovals   int `yaml:"peer_approvals"`
	EditorApprovals int `yaml:"editor_approvals"`
}

// RemoteConfig bounds each remote call to the tracker.
type RemoteConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     uint64 `yaml:"max_retries"`
}

// Timeout returns the per-call timeout as a duration.
func (r RemoteConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BotLogin: "deskbot",
		Review: ReviewConfig{
			PeerApprovals:   2,
			EditorApprovals: 1,
		},
		Remote: RemoteConfig{
			TimeoutSeconds: 30,
			MaxRetries:     3,
		},
		Workers: 4,
	}
}

// Load reads configuration from the given path. A missing file is fine and
// yields defaults; tokens left empty by the file are pulled from the
// environment.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if cfg.GitHubToken == "" {
		cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.SlackToken == "" {
		cfg.SlackToken = os.Getenv("SLACK_TOKEN")
	}

	return &cfg, nil
}
