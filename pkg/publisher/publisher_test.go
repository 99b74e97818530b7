package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/pkg/config"
	"orbital/pkg/document"
	"orbital/pkg/github"
	"orbital/pkg/style"
)

// fakeClient records calls instead of talking to GitHub
type fakeClient struct {
	config     *github.RepoConfig
	configErr  error
	publishErr error

	fetchCalls   int
	publishCalls int
	lastContent  string
	lastBase     string
	lastPath     string
	lastRef      github.RepoRef
}

func (f *fakeClient) FetchConfig(_ context.Context, ref github.RepoRef) (*github.RepoConfig, error) {
	f.fetchCalls++
	f.lastRef = ref
	if f.configErr != nil {
		return nil, f.configErr
	}
	rc := *f.config
	return &rc, nil
}

func (f *fakeClient) Publish(_ context.Context, ref github.RepoRef, content, baseBranch, destPath string) (*github.PublishResult, error) {
	f.publishCalls++
	f.lastContent = content
	f.lastBase = baseBranch
	f.lastPath = destPath
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return &github.PublishResult{
		Branch:            "orbital-1",
		CommitSHA:         "commit-sha",
		PullRequestNumber: 3,
		PullRequestURL:    "https://github.com/" + ref.String() + "/pull/3",
	}, nil
}

// recordingNotifier keeps every message with its level
type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) add(level, format string, args ...interface{}) {
	n.messages = append(n.messages, level+": "+fmt.Sprintf(format, args...))
}

func (n *recordingNotifier) Info(format string, args ...interface{}) { n.add("info", format, args...) }
func (n *recordingNotifier) Success(format string, args ...interface{}) { n.add("success", format, args...) }
func (n *recordingNotifier) Warn(format string, args ...interface{}) { n.add("warn", format, args...) }
func (n *recordingNotifier) Fail(format string, args ...interface{}) { n.add("fail", format, args...) }

func (n *recordingNotifier) contains(s string) bool {
	for _, m := range n.messages {
		if strings.Contains(m, s) {
			return true
		}
	}
	return false
}

var testSettings = config.Settings{RepoURL: "https://github.com/acme/widgets", Token: "test-token"}

var testTokens = document.StaticProvider{Set: style.TokenSet{
	Colors: []style.Color{{Name: "Brand Blue", Value: "#0000ff"}},
	Gradients: []style.Gradient{{
		Name:  "Fade",
		Type:  style.GradientRadial,
		Stops: []style.Stop{{Color: "#fff"}, {Color: "#000", Position: 1}},
	}},
}}

func TestPublisher_Run(t *testing.T) {
	client := &fakeClient{config: &github.RepoConfig{BaseBranch: "main", GlobalStylesFilePath: "styles/vars.scss"}}
	notifier := &recordingNotifier{}

	result, err := New(testSettings, client, testTokens, notifier).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, github.RepoRef{Owner: "acme", Name: "widgets"}, result.Repo)
	assert.Equal(t, style.SCSS, result.Dialect)
	assert.Equal(t, 3, result.Publish.PullRequestNumber)

	assert.Equal(t, 1, client.fetchCalls)
	assert.Equal(t, 1, client.publishCalls)
	assert.Equal(t, "main", client.lastBase)
	assert.Equal(t, "styles/vars.scss", client.lastPath)

	expected, err := style.Format(testTokens.Set, style.SCSS)
	require.NoError(t, err)
	assert.Equal(t, expected, client.lastContent)
	assert.Contains(t, client.lastContent, "$brand-blue: #0000ff;")

	assert.True(t, notifier.contains("success: Pull request created!"))
	assert.True(t, notifier.contains("https://github.com/acme/widgets/pull/3"))
}

func TestPublisher_Run_ConfigMissing(t *testing.T) {
	client := &fakeClient{configErr: &github.ConfigNotFoundError{Path: github.ConfigFileName}}
	notifier := &recordingNotifier{}

	_, err := New(testSettings, client, testTokens, notifier).Run(context.Background())

	var notFound *github.ConfigNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 0, client.publishCalls)
	assert.True(t, notifier.contains("fail: "+MsgConfigNotFound))
}

func TestPublisher_Run_UnsupportedExtension(t *testing.T) {
	client := &fakeClient{config: &github.RepoConfig{BaseBranch: "main", GlobalStylesFilePath: "styles/vars.txt"}}
	notifier := &recordingNotifier{}

	_, err := New(testSettings, client, testTokens, notifier).Run(context.Background())

	var unsupported *style.UnsupportedDialectError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "txt", unsupported.Dialect)

	// nothing is sent to the repository
	assert.Equal(t, 0, client.publishCalls)
	assert.True(t, notifier.contains("unrecognized file format 'txt'"))
}

func TestPublisher_Run_MalformedURL(t *testing.T) {
	client := &fakeClient{}
	notifier := &recordingNotifier{}

	settings := testSettings
	settings.RepoURL = "https://example.com/acme/widgets"

	_, err := New(settings, client, testTokens, notifier).Run(context.Background())

	var malformed *github.MalformedRepoURLError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 0, client.fetchCalls)
	assert.Equal(t, 0, client.publishCalls)
}

func TestPublisher_Run_TokenProviderFails(t *testing.T) {
	client := &fakeClient{config: &github.RepoConfig{BaseBranch: "main", GlobalStylesFilePath: "vars.css"}}
	notifier := &recordingNotifier{}

	_, err := New(testSettings, client, document.NewFileProvider(""), notifier).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read design tokens")
	assert.Equal(t, 0, client.publishCalls)
}

func TestPublisher_Run_PublishFailures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		expected    []string
		notExpected []string
	}{
		{
			name: "base branch missing",
			err: &github.PublishFailedError{
				Step:  github.StepFindBaseBranch,
				Name:  github.StepFindBaseBranch.String(),
				Cause: &github.BaseBranchNotFoundError{Branch: "main"},
			},
			expected:    []string{"fail: The base branch 'main'"},
			notExpected: []string{"left in place"},
		},
		{
			name: "tree creation failed after branch was created",
			err: &github.PublishFailedError{
				Step:   github.StepCreateTree,
				Name:   github.StepCreateTree.String(),
				Branch: "orbital-9",
				Cause:  &github.RemoteRequestError{Method: "POST", URL: "git/trees", StatusCode: 422, Type: github.ErrorTypeValidation},
			},
			expected: []string{
				"fail: Publishing failed at step 5 (create tree)",
				"info: GitHub rejected the request",
				"warn: Branch 'orbital-9' was created and left in place",
			},
		},
		{
			name:     "error outside the pipeline",
			err:      errors.New("boom"),
			expected: []string{"fail: Publishing failed: boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{
				config:     &github.RepoConfig{BaseBranch: "main", GlobalStylesFilePath: "vars.css"},
				publishErr: tt.err,
			}
			notifier := &recordingNotifier{}

			_, err := New(testSettings, client, testTokens, notifier).Run(context.Background())
			assert.ErrorIs(t, err, tt.err)

			for _, msg := range tt.expected {
				assert.True(t, notifier.contains(msg), "missing %q in %v", msg, notifier.messages)
			}
			for _, msg := range tt.notExpected {
				assert.False(t, notifier.contains(msg), "unexpected %q in %v", msg, notifier.messages)
			}
			assert.False(t, notifier.contains("Pull request created!"))
		})
	}
}
