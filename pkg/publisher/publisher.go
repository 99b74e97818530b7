// Package publisher drives one publish run: read the repository config,
// format the current tokens and hand the result to the repository client.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"orbital/pkg/config"
	"orbital/pkg/document"
	"orbital/pkg/github"
	"orbital/pkg/style"
)

// Messages shown to the user
const (
	MsgConfigNotFound = "No config file was found at the root of the repo! Make sure to add a file called " + github.ConfigFileName + "."
	MsgPublished      = "Pull request created!"
)

// RemoteClient is the part of the repository client a run needs
type RemoteClient interface {
	FetchConfig(ctx context.Context, ref github.RepoRef) (*github.RepoConfig, error)
	Publish(ctx context.Context, ref github.RepoRef, content, baseBranch, destPath string) (*github.PublishResult, error)
}

// Notifier is the user-facing message channel
type Notifier interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Fail(format string, args ...interface{})
}

// Result describes a completed run
type Result struct {
	Repo    github.RepoRef
	Config  github.RepoConfig
	Dialect style.Dialect
	Publish *github.PublishResult
}

// Publisher runs the publish flow with explicitly supplied settings
type Publisher struct {
	settings config.Settings
	client   RemoteClient
	tokens   document.Provider
	notifier Notifier
	logger   *slog.Logger
}

// New creates a publisher
func New(settings config.Settings, client RemoteClient, tokens document.Provider, notifier Notifier) *Publisher {
	return &Publisher{
		settings: settings,
		client:   client,
		tokens:   tokens,
		notifier: notifier,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger used for tracing
func (p *Publisher) WithLogger(logger *slog.Logger) *Publisher {
	p.logger = logger
	return p
}

// Run publishes the current tokens. Failures before the remote mutation
// sequence starts leave the repository untouched. Every outcome is reported
// to the notifier and failures are also returned.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	ref, err := github.ParseRepoURL(p.settings.RepoURL)
	if err != nil {
		p.notifier.Fail("%v", err)
		return nil, err
	}

	p.notifier.Info("Reading %s from %s", github.ConfigFileName, ref)
	rc, err := p.client.FetchConfig(ctx, ref)
	if err != nil {
		p.logger.Debug("config fetch failed", "repo", ref.String(), "error", err)
		p.notifier.Fail(MsgConfigNotFound)
		return nil, err
	}

	dialect, err := rc.Dialect()
	if err != nil {
		p.notifier.Fail("%v", err)
		return nil, err
	}

	tokens, err := p.tokens.Tokens(ctx)
	if err != nil {
		p.notifier.Fail("Failed to read design tokens: %v", err)
		return nil, fmt.Errorf("failed to read design tokens: %w", err)
	}

	content, err := style.Format(tokens, dialect)
	if err != nil {
		p.notifier.Fail("Failed to format styles: %v", err)
		return nil, fmt.Errorf("failed to format styles: %w", err)
	}

	p.notifier.Info("Publishing %d colors and %d gradients to %s on %s", len(tokens.Colors), len(tokens.Gradients), rc.GlobalStylesFilePath, rc.BaseBranch)
	published, err := p.client.Publish(ctx, ref, content, rc.BaseBranch, rc.GlobalStylesFilePath)
	if err != nil {
		p.reportPublishFailure(err)
		return nil, err
	}

	p.notifier.Success(MsgPublished)
	p.notifier.Info("%s", published.PullRequestURL)

	return &Result{
		Repo:    ref,
		Config:  *rc,
		Dialect: dialect,
		Publish: published,
	}, nil
}

func (p *Publisher) reportPublishFailure(err error) {
	var failed *github.PublishFailedError
	if !errors.As(err, &failed) {
		p.notifier.Fail("Publishing failed: %v", err)
		return
	}

	var notFound *github.BaseBranchNotFoundError
	if errors.As(err, &notFound) {
		p.notifier.Fail("The base branch '%s' from %s does not exist", notFound.Branch, github.ConfigFileName)
		return
	}

	p.notifier.Fail("Publishing failed at step %d (%s): %v", failed.StepIndex(), failed.Name, failed.Cause)

	var remoteErr *github.RemoteRequestError
	if errors.As(err, &remoteErr) && remoteErr.Guidance() != "" {
		p.notifier.Info("%s", remoteErr.Guidance())
	}

	if failed.LeftBranch() {
		p.notifier.Warn("Branch '%s' was created and left in place; delete it once you have checked it", failed.Branch)
	}
}
