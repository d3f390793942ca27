package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/storydesk/deskbot/internal/core/config"
	"github.com/storydesk/deskbot/internal/desk"
	ghgateway "github.com/storydesk/deskbot/internal/gateway/github"
	slacknotify "github.com/storydesk/deskbot/internal/notify/slack"
)

// RunCmd runs the editorial workflow over the tracked repository and/or
// posts the feedback roster to Slack.
type RunCmd struct {
	flags *Flags

	github bool
	slack  bool
	dryRun bool
}

// NewRunCmd creates a new run command.
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Flags returns the run command's flags, so they can also be registered on
// the root command for flag-only invocations like `deskbot --github`.
func (cmd *RunCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "github",
			Usage:       "process every tracked item and reconcile its workflow state",
			Destination: &cmd.github,
		},
		&cli.BoolFlag{
			Name:        "slack",
			Usage:       "post the feedback roster to the configured Slack channel",
			Destination: &cmd.slack,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "log mutations instead of applying them",
			Sources:     cli.EnvVars("DESKBOT_DRY_RUN"),
			Destination: &cmd.dryRun,
		},
	}
}

// Register adds the run command to the application.
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run the workflow engine and/or the Slack roster",
		UsageText: "deskbot run --github --slack",
		Description: `Reconciles every tracked item against the editorial workflow rules
(--github) and posts the feedback roll call for open items (--slack).
Both surfaces can run in one invocation; the roster always runs after
the workflow so it reflects the labels just applied.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})
	return app
}

// Run executes the requested surfaces.
func (cmd *RunCmd) Run(ctx context.Context, _ *cli.Command) error {
	if !cmd.github && !cmd.slack {
		return fmt.Errorf("nothing to do: pass --github and/or --slack")
	}

	cfg, err := config.Load(cmd.flags.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.dryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Both surfaces read from the tracker, so tracker credentials are
	// always required; check everything up front before touching an item.
	if err := cfg.RequireGitHub(); err != nil {
		return err
	}
	if cmd.slack {
		if err := cfg.RequireSlack(); err != nil {
			return err
		}
	}

	tracker, err := ghgateway.New(ghgateway.Config{
		Token:      cfg.GitHubToken,
		Repository: cfg.Repository,
		Timeout:    cfg.Remote.Timeout(),
		MaxRetries: cfg.Remote.MaxRetries,
		DryRun:     cfg.DryRun,
	}, log.Logger)
	if err != nil {
		return fmt.Errorf("create tracker: %w", err)
	}

	if cmd.github {
		workflow := desk.NewWorkflowService(tracker, cfg, log.Logger)
		if err := workflow.ProcessAll(ctx); err != nil {
			return fmt.Errorf("workflow run: %w", err)
		}
	}

	if cmd.slack {
		notifier := slacknotify.New(cfg.SlackToken, cfg.DryRun, log.Logger)
		roster := desk.NewRosterService(tracker, notifier, cfg, log.Logger)
		if err := roster.Notify(ctx); err != nil {
			return fmt.Errorf("roster run: %w", err)
		}
	}

	return nil
}
