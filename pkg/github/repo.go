package github

import (
	"strings"
)

// hostMarker is the literal every repository URL has to contain
const hostMarker = "github.com/"

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string
	Name  string
}

// String returns owner/name
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepoURL extracts owner and name from a URL of the form
// .../github.com/<owner>/<name>. Anything after the name segment is ignored,
// as is a trailing ".git".
func ParseRepoURL(repoURL string) (RepoRef, error) {
	trimmed := strings.TrimSpace(repoURL)

	idx := strings.Index(asciiLower(trimmed), hostMarker)
	if idx < 0 {
		return RepoRef{}, &MalformedRepoURLError{URL: repoURL, Reason: "expected a github.com/<owner>/<name> URL"}
	}

	rest := trimmed[idx+len(hostMarker):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}

	segments := strings.Split(strings.Trim(rest, "/"), "/")
	if len(segments) < 2 {
		return RepoRef{}, &MalformedRepoURLError{URL: repoURL, Reason: "missing owner or repository name"}
	}

	ref := RepoRef{
		Owner: segments[0],
		Name:  strings.TrimSuffix(segments[1], ".git"),
	}
	if ref.Owner == "" || ref.Name == "" {
		return RepoRef{}, &MalformedRepoURLError{URL: repoURL, Reason: "missing owner or repository name"}
	}

	return ref, nil
}

// asciiLower lower-cases A-Z only, so byte offsets into the result are valid
// offsets into s
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}

// path joins the repository API path with the given elements,
// e.g. path("git", "refs") -> repos/<owner>/<name>/git/refs
func (r RepoRef) path(elem ...string) string {
	parts := append([]string{"repos", r.Owner, r.Name}, elem...)
	return strings.Join(parts, "/")
}

// endpoint is the absolute API URL of a repository path, used in error
// messages when there is no response to take the URL from
func (c *Client) endpoint(ref RepoRef, elem ...string) string {
	return c.BaseURL() + ref.path(elem...)
}
