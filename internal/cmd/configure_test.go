package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbital/pkg/config"
	"orbital/pkg/fuzzy"
)

type stubSelector struct {
	options  []fuzzy.Option
	prompt   string
	selected string
}

func (s *stubSelector) SetOptions(options []fuzzy.Option) error {
	s.options = options
	return nil
}

func (s *stubSelector) SetPrompt(prompt string) { s.prompt = prompt }

func (s *stubSelector) Select() (string, error) { return s.selected, nil }

func TestConfigureCommand_SavesValidSettings(t *testing.T) {
	env := newTestEnv(t)
	newGitHubServer(t, repoRoutes(true))

	out, err := env.run(t, "secret-token\n",
		"configure", "--repo-url", "https://github.com/acme/widgets", "--token-stdin")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings saved")
	assert.NotContains(t, out, "secret-token")
	assert.NotContains(t, out, "Input is not a terminal")

	creds, err := config.LoadCredentialsFromPath(env.credentialsPath())
	require.NoError(t, err)
	assert.Equal(t, "secret-token", creds.Token(config.DefaultProfile))

	cfg, err := config.LoadConfigFromPath(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets", cfg.GitHub.RepoURL)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Empty(t, cfg.GitHub.Profile)
}

func TestConfigureCommand_Profile(t *testing.T) {
	env := newTestEnv(t)
	newGitHubServer(t, repoRoutes(true))

	_, err := env.run(t, "work-token\n",
		"configure", "--repo-url", "https://github.com/acme/widgets", "--token-stdin", "--profile", "work")
	require.NoError(t, err)

	creds, err := config.LoadCredentialsFromPath(env.credentialsPath())
	require.NoError(t, err)
	assert.Equal(t, "work-token", creds.Token("work"))
	assert.Empty(t, creds.Token(config.DefaultProfile))

	cfg, err := config.LoadConfigFromPath(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.GitHub.Profile)
}

func TestConfigureCommand_InvalidSettingsAreNotSaved(t *testing.T) {
	env := newTestEnv(t)
	newGitHubServer(t, repoRoutes(false))

	out, err := env.run(t, "secret-token\n",
		"configure", "--repo-url", "https://github.com/acme/widgets", "--token-stdin")
	require.Error(t, err)
	assert.Contains(t, out, "Settings were not saved: no push permission")

	assert.NoFileExists(t, env.credentialsPath())
	assert.NoFileExists(t, env.configPath)
}

func TestConfigureCommand_TokenStdinRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "\n", "configure", "--repo-url", "https://github.com/acme/widgets", "--token-stdin")
	assert.ErrorContains(t, err, "no token on standard input")
}

func TestConfigureCommand_KeepsExistingToken(t *testing.T) {
	env := newTestEnv(t)
	newGitHubServer(t, repoRoutes(true))
	env.writeConfig(t, &config.Config{GitHub: config.GitHubConfig{RepoURL: "https://github.com/acme/widgets"}})

	creds, err := config.LoadCredentialsFromPath(env.credentialsPath())
	require.NoError(t, err)
	require.NoError(t, creds.SetToken(config.DefaultProfile, "stored-token"))
	require.NoError(t, creds.Save())

	// empty token answer, empty repository answer keeps the configured URL
	out, err := env.run(t, "\n\n", "configure")
	require.NoError(t, err)
	assert.Contains(t, out, "Configure orbital")
	assert.Contains(t, out, "Input is not a terminal")
	assert.Contains(t, out, "leave empty to keep the current one")
	assert.Contains(t, out, "Settings saved")

	creds, err = config.LoadCredentialsFromPath(env.credentialsPath())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", creds.Token(config.DefaultProfile))
}

func TestConfigureCommand_Pick(t *testing.T) {
	env := newTestEnv(t)

	routes := repoRoutes(true)
	routes["GET /user/repos"] = []map[string]interface{}{
		{"full_name": "acme/widgets", "private": true, "permissions": map[string]bool{"push": true}},
		{"full_name": "acme/readonly", "permissions": map[string]bool{"push": false}},
		{"full_name": "acme/site", "permissions": map[string]bool{"push": true}},
	}
	newGitHubServer(t, routes)

	stub := &stubSelector{selected: "acme/widgets"}
	original := newSelector
	newSelector = func(prompt string, _ io.Reader, _ io.Writer) fuzzy.Selector {
		stub.prompt = prompt
		return stub
	}
	t.Cleanup(func() { newSelector = original })

	_, err := env.run(t, "secret-token\n", "configure", "--pick", "--token-stdin")
	require.NoError(t, err)

	assert.Equal(t, []fuzzy.Option{
		{Value: "acme/widgets", Description: "private"},
		{Value: "acme/site", Description: "public"},
	}, stub.options)

	cfg, err := config.LoadConfigFromPath(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets", cfg.GitHub.RepoURL)
}
