package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// newTokenHTTPClient returns an HTTP client that sends token as a bearer
// credential. base, when set, provides the underlying transport.
func newTokenHTTPClient(token string, base *http.Client) *http.Client {
	ctx := context.Background()
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: strings.TrimSpace(token), TokenType: "Bearer"},
	)
	return oauth2.NewClient(ctx, ts)
}

// CurrentUser validates the token and returns the user it belongs to together
// with its OAuth scopes. Fine-grained tokens report no scopes.
func (c *Client) CurrentUser(ctx context.Context) (*TokenInfo, error) {
	var user struct {
		Login string `json:"login"`
	}

	resp, err := c.Request(ctx, http.MethodGet, "user", nil, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to validate GitHub token: %w", err)
	}

	scopes := []string{}
	if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
		scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
	}

	return &TokenInfo{
		User:   user.Login,
		Scopes: scopes,
	}, nil
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `A GitHub access token is required. Provide it in one of the following ways:

1. Environment variable (recommended for CI):
   export ORBITAL_GITHUB_TOKEN="your_personal_access_token"
   (GITHUB_TOKEN is used when ORBITAL_GITHUB_TOKEN is not set)

2. Credentials file, written by 'orbital configure':
   ~/.orbital/credentials

   [default]
   token = your_personal_access_token

3. Configuration file:
   ~/.orbital/config.yaml

   github:
     token: "your_personal_access_token"

The token must be able to push branches and open pull requests in the target
repository: the classic 'repo' scope, or fine-grained Contents and Pull
requests write access.`
}
