package github

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/pkg/style"
)

// contentsResponse builds a contents API file response for data
func contentsResponse(data string) map[string]interface{} {
	return map[string]interface{}{
		"type":     "file",
		"name":     ConfigFileName,
		"path":     ConfigFileName,
		"encoding": "base64",
		"content":  base64.StdEncoding.EncodeToString([]byte(data)),
	}
}

func TestParseRepoConfig(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected *RepoConfig
		errMsg   string
	}{
		{
			name:     "valid config",
			data:     `{"baseBranch":"main","globalStylesFilePath":"styles/vars.scss"}`,
			expected: &RepoConfig{BaseBranch: "main", GlobalStylesFilePath: "styles/vars.scss"},
		},
		{
			name:     "extra keys are ignored",
			data:     `{"baseBranch":"develop","globalStylesFilePath":"vars.css","owner":"design"}`,
			expected: &RepoConfig{BaseBranch: "develop", GlobalStylesFilePath: "vars.css"},
		},
		{
			name:   "invalid JSON",
			data:   `{"baseBranch":`,
			errMsg: "failed to parse",
		},
		{
			name:   "missing keys",
			data:   `{}`,
			errMsg: "baseBranch, globalStylesFilePath",
		},
		{
			name:   "missing path",
			data:   `{"baseBranch":"main"}`,
			errMsg: "globalStylesFilePath",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, err := ParseRepoConfig([]byte(tt.data))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rc)
		})
	}
}

func TestRepoConfig_Dialect(t *testing.T) {
	rc, err := ParseRepoConfig([]byte(`{"baseBranch":"main","globalStylesFilePath":"styles/vars.scss"}`))
	require.NoError(t, err)

	dialect, err := rc.Dialect()
	require.NoError(t, err)
	assert.Equal(t, style.SCSS, dialect)

	rc.GlobalStylesFilePath = "styles/vars.txt"
	_, err = rc.Dialect()
	var unsupported *style.UnsupportedDialectError
	assert.ErrorAs(t, err, &unsupported)
}

func TestClient_FetchConfig(t *testing.T) {
	ref := RepoRef{Owner: "acme", Name: "widgets"}
	ctx := context.Background()

	t.Run("decodes and parses the config file", func(t *testing.T) {
		server := mockGitHubServer(t, map[string]interface{}{
			"GET /repos/acme/widgets/contents/orbital.conf.json": contentsResponse(`{"baseBranch":"main","globalStylesFilePath":"styles/vars.scss"}`),
		})
		client := createTestClient(t, server)

		rc, err := client.FetchConfig(ctx, ref)
		require.NoError(t, err)
		assert.Equal(t, "main", rc.BaseBranch)
		assert.Equal(t, "styles/vars.scss", rc.GlobalStylesFilePath)
	})

	t.Run("missing file", func(t *testing.T) {
		server := mockGitHubServer(t, map[string]interface{}{})
		client := createTestClient(t, server)

		_, err := client.FetchConfig(ctx, ref)

		var notFound *ConfigNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, ConfigFileName, notFound.Path)

		var remoteErr *RemoteRequestError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, ErrorTypeNotFound, remoteErr.Type)
	})

	t.Run("content is not JSON", func(t *testing.T) {
		server := mockGitHubServer(t, map[string]interface{}{
			"GET /repos/acme/widgets/contents/orbital.conf.json": contentsResponse("baseBranch: main"),
		})
		client := createTestClient(t, server)

		_, err := client.FetchConfig(ctx, ref)
		var notFound *ConfigNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("fetched fresh on every call", func(t *testing.T) {
		server := mockGitHubServer(t, map[string]interface{}{
			"GET /repos/acme/widgets/contents/orbital.conf.json": contentsResponse(`{"baseBranch":"main","globalStylesFilePath":"vars.css"}`),
		})
		client := createTestClient(t, server)

		_, err := client.FetchConfig(ctx, ref)
		require.NoError(t, err)
		_, err = client.FetchConfig(ctx, ref)
		require.NoError(t, err)

		assert.Equal(t, 2, server.calls("GET /repos/acme/widgets/contents/orbital.conf.json"))
	})
}
