package github

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// MalformedRepoURLError is returned when a repository URL does not point at
// github.com/<owner>/<name>.
type MalformedRepoURLError struct {
	URL    string
	Reason string
}

// Error implements the error interface
func (e *MalformedRepoURLError) Error() string {
	return fmt.Sprintf("malformed repository URL %q: %s", e.URL, e.Reason)
}

// ConfigNotFoundError is returned when orbital.conf.json cannot be read from
// the repository or does not hold a usable configuration.
type ConfigNotFoundError struct {
	Path  string
	Cause error
}

// Error implements the error interface
func (e *ConfigNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no config file found at %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("no config file found at %s", e.Path)
}

// Unwrap returns the underlying error
func (e *ConfigNotFoundError) Unwrap() error {
	return e.Cause
}

// BaseBranchNotFoundError is returned when the configured base branch has no ref
type BaseBranchNotFoundError struct {
	Branch string
}

// Error implements the error interface
func (e *BaseBranchNotFoundError) Error() string {
	return fmt.Sprintf("base branch '%s' was not found in the repository", e.Branch)
}

// RemoteRequestError is a failed GitHub API call
type RemoteRequestError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Type       ErrorType
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *RemoteRequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Method)
	b.WriteString(" ")
	b.WriteString(e.URL)
	b.WriteString(": ")
	if e.Status != "" {
		b.WriteString(e.Status)
	} else if e.StatusCode != 0 {
		fmt.Fprintf(&b, "%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	} else {
		b.WriteString(string(e.Type))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error
func (e *RemoteRequestError) Unwrap() error {
	return e.Cause
}

// Guidance returns a hint telling the user what to do about the failure
func (e *RemoteRequestError) Guidance() string {
	switch e.Type {
	case ErrorTypeAuth:
		return "Invalid or expired GitHub token. Run 'orbital configure' to store a new one"
	case ErrorTypePermission:
		return "Insufficient permissions. The token needs the repo scope (or contents and pull request write access)"
	case ErrorTypeNotFound:
		return "Repository or resource not found. Check the repository URL and that the token can see it"
	case ErrorTypeRateLimit:
		return "GitHub API rate limit exceeded. Please wait before trying again"
	case ErrorTypeConflict:
		return "The repository changed while publishing. Run publish again"
	case ErrorTypeValidation:
		return "GitHub rejected the request. Check the base branch and the stylesheet path in orbital.conf.json"
	case ErrorTypeNetwork:
		return "GitHub could not be reached. Check your connection and try again"
	default:
		return ""
	}
}

// Step identifies one stage of the publish pipeline. Steps are numbered from 1.
type Step int

const (
	StepFindBaseBranch Step = iota + 1
	StepCreateBranch
	StepCreateBlob
	StepReadBaseTree
	StepCreateTree
	StepCreateCommit
	StepUpdateBranch
	StepOpenPullRequest
)

var stepNames = map[Step]string{
	StepFindBaseBranch:  "find base branch",
	StepCreateBranch:    "create branch",
	StepCreateBlob:      "upload blob",
	StepReadBaseTree:    "read base tree",
	StepCreateTree:      "create tree",
	StepCreateCommit:    "create commit",
	StepUpdateBranch:    "move branch to commit",
	StepOpenPullRequest: "open pull request",
}

// String returns the human readable step name
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step %d", int(s))
}

// PublishFailedError reports the pipeline step that failed. Steps before it
// were applied remotely and are left in place; Branch names the branch that
// was created, if any.
type PublishFailedError struct {
	Step   Step
	Name   string
	Branch string
	Cause  error
}

// Error implements the error interface
func (e *PublishFailedError) Error() string {
	msg := fmt.Sprintf("publish failed at step %d (%s): %v", int(e.Step), e.Name, e.Cause)
	if e.Branch != "" {
		msg += fmt.Sprintf(" (branch '%s' was left in place)", e.Branch)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *PublishFailedError) Unwrap() error {
	return e.Cause
}

// StepIndex returns the 1-based index of the failed step
func (e *PublishFailedError) StepIndex() int {
	return int(e.Step)
}

// LeftBranch reports whether a branch was created before the failure
func (e *PublishFailedError) LeftBranch() bool {
	return e.Branch != ""
}

// ValidationFailure is the error form of a failed settings validation
type ValidationFailure struct {
	Reason string
}

// Error implements the error interface
func (e *ValidationFailure) Error() string {
	return "settings are not valid: " + e.Reason
}

// wrapRemoteError converts a go-github error into a RemoteRequestError.
// method and url describe the call and are used when the error does not carry
// its own request.
func wrapRemoteError(err error, method, url string) error {
	if err == nil {
		return nil
	}

	var remoteErr *RemoteRequestError
	if errors.As(err, &remoteErr) {
		return err
	}

	wrapped := &RemoteRequestError{
		Method: method,
		URL:    url,
		Type:   ErrorTypeUnknown,
		Cause:  err,
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var ghErr *github.ErrorResponse

	switch {
	case errors.As(err, &rateErr):
		wrapped.Type = ErrorTypeRateLimit
		wrapped.Message = fmt.Sprintf("rate limit exceeded, resets at %v", rateErr.Rate.Reset.Time)
		fillFromResponse(wrapped, rateErr.Response)
	case errors.As(err, &abuseErr):
		wrapped.Type = ErrorTypeRateLimit
		wrapped.Message = "secondary rate limit triggered"
		fillFromResponse(wrapped, abuseErr.Response)
	case errors.As(err, &ghErr):
		fillFromResponse(wrapped, ghErr.Response)
		parseGitHubAPIError(wrapped, ghErr)
	case isNetworkError(err):
		wrapped.Type = ErrorTypeNetwork
		wrapped.Message = err.Error()
	default:
		wrapped.Message = err.Error()
	}

	return wrapped
}

func fillFromResponse(e *RemoteRequestError, resp *http.Response) {
	if resp == nil {
		return
	}
	e.StatusCode = resp.StatusCode
	e.Status = resp.Status
	if resp.Request != nil && resp.Request.URL != nil {
		e.Method = resp.Request.Method
		e.URL = resp.Request.URL.String()
	}
}

// parseGitHubAPIError classifies an API error response by status code
func parseGitHubAPIError(e *RemoteRequestError, ghErr *github.ErrorResponse) {
	e.Message = ghErr.Message

	switch e.StatusCode {
	case http.StatusUnauthorized:
		e.Type = ErrorTypeAuth
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(ghErr.Message), "rate limit") {
			e.Type = ErrorTypeRateLimit
		} else {
			e.Type = ErrorTypePermission
		}
	case http.StatusNotFound:
		e.Type = ErrorTypeNotFound
	case http.StatusConflict:
		e.Type = ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		e.Type = ErrorTypeValidation

		if len(ghErr.Errors) > 0 {
			var details []string
			for _, fieldErr := range ghErr.Errors {
				if fieldErr.Field != "" {
					details = append(details, fmt.Sprintf("%s: %s", fieldErr.Field, fieldErr.Message))
				} else if fieldErr.Message != "" {
					details = append(details, fieldErr.Message)
				}
			}
			if len(details) > 0 {
				e.Message = fmt.Sprintf("%s: %s", ghErr.Message, strings.Join(details, "; "))
			}
		}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		e.Type = ErrorTypeNetwork
	default:
		e.Type = ErrorTypeUnknown
	}
}

// isNetworkError checks if an error is a network-related error
func isNetworkError(err error) bool {
	errStr := strings.ToLower(err.Error())
	networkKeywords := []string{
		"connection refused",
		"connection reset",
		"network is unreachable",
		"no such host",
		"i/o timeout",
		"dial tcp",
	}

	for _, keyword := range networkKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}
	return false
}
