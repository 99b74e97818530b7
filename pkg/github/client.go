package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
)

// DefaultAPIURL is the public GitHub REST endpoint
const DefaultAPIURL = "https://api.github.com/"

// Client wraps the GitHub REST API. Every request carries the token as a
// bearer credential and go-github's v3 JSON Accept header.
type Client struct {
	client        *github.Client
	logger        *slog.Logger
	budget        *RateBudget
	newBranchName func() string
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// WithBaseURL points the client at another API root, e.g. GitHub Enterprise
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient sets the client the bearer token transport is layered on
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// NewClient creates a new GitHub API client with the provided token
func NewClient(token string, opts ...Option) (*Client, error) {
	o := clientOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	budget := &RateBudget{}
	gh := github.NewClient(newTokenHTTPClient(token, withRateBudget(o.httpClient, budget)))

	if o.baseURL != "" {
		base := o.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", o.baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		client:        gh,
		logger:        o.logger,
		budget:        budget,
		newBranchName: randomBranchName,
	}, nil
}

// RateLimit returns the rate limit seen on the most recent response
func (c *Client) RateLimit() RateBudgetStats {
	return c.budget.Stats()
}

// BaseURL returns the API root requests are sent to
func (c *Client) BaseURL() string {
	return c.client.BaseURL.String()
}

// ResolveAPIEndpoint returns the API URL of the repository a github.com URL
// points at, e.g. https://github.com/acme/widgets ->
// https://api.github.com/repos/acme/widgets.
func (c *Client) ResolveAPIEndpoint(repoURL string) (string, error) {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return "", err
	}
	return c.endpoint(ref), nil
}

// RequestOption adjusts a single Request call
type RequestOption func(*requestOptions)

type requestOptions struct {
	translateErrors bool
}

// WithoutErrorTranslation makes Request return non-2xx responses with a nil
// error so the caller can inspect the status itself. Transport failures are
// still returned as errors.
func WithoutErrorTranslation() RequestOption {
	return func(o *requestOptions) {
		o.translateErrors = false
	}
}

// Request sends an authenticated request to path, relative to the API root.
// A non-nil body is encoded as JSON and a 2xx response body is decoded into v
// when v is non-nil. Failed responses become *RemoteRequestError.
func (c *Client) Request(ctx context.Context, method, path string, body, v interface{}, opts ...RequestOption) (*github.Response, error) {
	o := requestOptions{translateErrors: true}
	for _, opt := range opts {
		opt(&o)
	}

	req, err := c.client.NewRequest(method, path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}

	c.logger.Debug("github request", "method", method, "url", req.URL.String())

	resp, err := c.client.Do(ctx, req, v)
	if err != nil {
		if !o.translateErrors && resp != nil && resp.Response != nil {
			return resp, nil
		}
		return resp, wrapRemoteError(err, method, req.URL.String())
	}

	return resp, nil
}

// GetRepository fetches the repository resource. The response is returned
// untranslated: a non-2xx status is reported through the returned status code
// with a nil Repository.
func (c *Client) GetRepository(ctx context.Context, ref RepoRef) (*Repository, int, error) {
	var repo Repository
	resp, err := c.Request(ctx, http.MethodGet, ref.path(), nil, &repo, WithoutErrorTranslation())
	if err != nil {
		return nil, 0, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, nil
	}
	return &repo, resp.StatusCode, nil
}

// ListPushableRepositories lists the repositories the token can push to,
// following pagination.
func (c *Client) ListPushableRepositories(ctx context.Context) ([]Repository, error) {
	var pushable []Repository

	page := 1
	for page != 0 {
		var repos []Repository
		path := fmt.Sprintf("user/repos?per_page=100&sort=full_name&page=%d", page)
		resp, err := c.Request(ctx, http.MethodGet, path, nil, &repos)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}

		for _, repo := range repos {
			if repo.Permissions.Push {
				pushable = append(pushable, repo)
			}
		}
		page = resp.NextPage
	}

	return pushable, nil
}
