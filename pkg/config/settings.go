package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables that override the files
const (
	EnvToken       = "ORBITAL_GITHUB_TOKEN"
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvRepoURL     = "ORBITAL_REPO_URL"
	EnvAPIURL      = "ORBITAL_GITHUB_API_URL"
)

// Settings are the values one command runs with. They are resolved once and
// passed explicitly to every component.
type Settings struct {
	RepoURL      string
	Token        string
	APIURL       string
	Profile      string
	DocumentPath string

	// TokenSource names where Token came from, for display. Never the token itself.
	TokenSource string
}

// String renders the settings without the token
func (s Settings) String() string {
	token := "<none>"
	if s.Token != "" {
		token = "<redacted>"
	}
	return fmt.Sprintf("repo=%s token=%s (%s) profile=%s", s.RepoURL, token, s.TokenSource, s.Profile)
}

// Overrides are values given on the command line. They win over both the
// environment and the files.
type Overrides struct {
	RepoURL      string
	Profile      string
	DocumentPath string
}

// ResolveSettings merges environment, credentials and config file.
//
// Token: ORBITAL_GITHUB_TOKEN, GITHUB_TOKEN, the credentials profile, then
// github.token in the config file. Repository URL: ORBITAL_REPO_URL, then
// github.repo_url. The profile argument wins over github.profile.
func ResolveSettings(cfg *Config, creds *Credentials, profile string) (Settings, error) {
	return ResolveSettingsWithOverrides(cfg, creds, Overrides{Profile: profile})
}

// ResolveSettingsWithOverrides is ResolveSettings with command line values on top
func ResolveSettingsWithOverrides(cfg *Config, creds *Credentials, o Overrides) (Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	s := Settings{
		Profile:      firstNonEmpty(o.Profile, cfg.GitHub.Profile, DefaultProfile),
		RepoURL:      firstNonEmpty(o.RepoURL, os.Getenv(EnvRepoURL), cfg.GitHub.RepoURL),
		APIURL:       ResolveAPIURL(cfg),
		DocumentPath: firstNonEmpty(o.DocumentPath, cfg.Document.Path),
	}

	s.resolveToken(cfg, creds)

	if s.RepoURL == "" {
		return s, fmt.Errorf("no repository URL configured: run 'orbital configure' or set %s", EnvRepoURL)
	}
	if s.Token == "" {
		return s, errNoToken
	}

	return s, nil
}

var errNoToken = fmt.Errorf("no GitHub token found: run 'orbital configure' or set %s", EnvToken)

// ResolveToken resolves only the token, profile and API URL. It is used by
// commands that do not talk to a particular repository.
func ResolveToken(cfg *Config, creds *Credentials, profile string) (Settings, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	s := Settings{
		Profile: firstNonEmpty(profile, cfg.GitHub.Profile, DefaultProfile),
		APIURL:  ResolveAPIURL(cfg),
	}
	s.resolveToken(cfg, creds)

	if s.Token == "" {
		return s, errNoToken
	}
	return s, nil
}

func (s *Settings) resolveToken(cfg *Config, creds *Credentials) {
	switch {
	case strings.TrimSpace(os.Getenv(EnvToken)) != "":
		s.Token, s.TokenSource = strings.TrimSpace(os.Getenv(EnvToken)), EnvToken
	case strings.TrimSpace(os.Getenv(EnvGitHubToken)) != "":
		s.Token, s.TokenSource = strings.TrimSpace(os.Getenv(EnvGitHubToken)), EnvGitHubToken
	case creds != nil && creds.Token(s.Profile) != "":
		s.Token, s.TokenSource = creds.Token(s.Profile), "credentials profile "+s.Profile
	case strings.TrimSpace(cfg.GitHub.Token) != "":
		s.Token, s.TokenSource = strings.TrimSpace(cfg.GitHub.Token), "config file"
	}
}

// ResolveAPIURL returns the GitHub API root override, or "" for api.github.com
func ResolveAPIURL(cfg *Config) string {
	if cfg == nil {
		return strings.TrimSpace(os.Getenv(EnvAPIURL))
	}
	return firstNonEmpty(os.Getenv(EnvAPIURL), cfg.GitHub.APIURL)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
