package github

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

const (
	msgTokenRequired    = "access token is required"
	msgRepoNotFound     = "repo not found or inaccessible"
	msgNoPushPermission = "no push permission"
	msgMissingConfig    = "missing config file at " + ConfigFileName
)

// ValidationResult is the outcome of a settings check
type ValidationResult struct {
	OK           bool
	ErrorMessage string
}

// Err returns nil for a successful result and a *ValidationFailure otherwise
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return &ValidationFailure{Reason: r.ErrorMessage}
}

// ClientFactory builds a Client for a token
type ClientFactory func(token string) (*Client, error)

// Validator checks that a repository URL and token can be used for publishing.
// It only performs reads.
type Validator struct {
	newClient ClientFactory
	logger    *slog.Logger
}

// NewValidator creates a validator. Clients are built with the given options.
func NewValidator(opts ...Option) *Validator {
	o := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Validator{
		newClient: func(token string) (*Client, error) {
			return NewClient(token, opts...)
		},
		logger: o.logger,
	}
}

// NewValidatorWithFactory creates a validator that obtains clients from factory
func NewValidatorWithFactory(factory ClientFactory) *Validator {
	return &Validator{newClient: factory, logger: slog.Default()}
}

// Validate runs the checks in order: URL shape, repository access, push
// permission, config file presence. It never returns an error; every failure
// is reported in the result.
func (v *Validator) Validate(ctx context.Context, repoURL, token string) ValidationResult {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return fail(err.Error())
	}

	if strings.TrimSpace(token) == "" {
		return fail(msgTokenRequired)
	}

	client, err := v.newClient(token)
	if err != nil {
		return fail(err.Error())
	}

	repo, status, err := client.GetRepository(ctx, ref)
	if err != nil || repo == nil {
		v.logger.Debug("repository probe failed", "repo", ref.String(), "status", status, "error", err)
		return fail(msgRepoNotFound)
	}

	if !repo.Permissions.Push {
		return fail(msgNoPushPermission)
	}

	if _, err := client.FetchConfig(ctx, ref); err != nil {
		var notFound *ConfigNotFoundError
		if errors.As(err, &notFound) {
			v.logger.Debug("config probe failed", "repo", ref.String(), "error", notFound.Cause)
		}
		return fail(msgMissingConfig)
	}

	return ValidationResult{OK: true}
}

func fail(msg string) ValidationResult {
	return ValidationResult{OK: false, ErrorMessage: msg}
}
