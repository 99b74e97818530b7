package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	credentialsFileName = "credentials"
	tokenKey            = "token"

	// DefaultProfile is used when no profile is configured
	DefaultProfile = "default"
)

// Credentials is the ini file holding one access token per profile:
//
//	[default]
//	token = ghp_...
type Credentials struct {
	file *ini.File
	path string
}

// GetCredentialsPath returns the default credentials file path
func GetCredentialsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, credentialsFileName), nil
}

// LoadCredentials loads the credentials file from the default location
func LoadCredentials() (*Credentials, error) {
	path, err := GetCredentialsPath()
	if err != nil {
		return nil, err
	}

	return LoadCredentialsFromPath(path)
}

// LoadCredentialsFromPath loads a credentials file. A missing file yields an
// empty set of credentials.
func LoadCredentialsFromPath(path string) (*Credentials, error) {
	var file *ini.File
	if _, err := os.Stat(path); os.IsNotExist(err) {
		file = ini.Empty()
	} else {
		file, err = ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials file: %w", err)
		}
	}

	return &Credentials{file: file, path: path}, nil
}

// Token returns the token stored for profile, or "" when there is none
func (c *Credentials) Token(profile string) string {
	if !c.file.HasSection(profile) {
		return ""
	}

	key, err := c.file.Section(profile).GetKey(tokenKey)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(key.String())
}

// SetToken stores token under profile. Call Save to persist it.
func (c *Credentials) SetToken(profile, token string) error {
	if profile == "" {
		profile = DefaultProfile
	}

	var section *ini.Section
	if c.file.HasSection(profile) {
		section = c.file.Section(profile)
	} else {
		var err error
		section, err = c.file.NewSection(profile)
		if err != nil {
			return fmt.Errorf("failed to create profile section %s: %w", profile, err)
		}
	}

	section.Key(tokenKey).SetValue(strings.TrimSpace(token))
	return nil
}

// Profiles returns the profiles that carry a token, sorted
func (c *Credentials) Profiles() []string {
	var profiles []string
	for _, section := range c.file.Sections() {
		if section.HasKey(tokenKey) {
			profiles = append(profiles, section.Name())
		}
	}
	sort.Strings(profiles)
	return profiles
}

// Save writes the credentials back to the file they were loaded from
func (c *Credentials) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	f, err := os.OpenFile(c.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open credentials file: %w", err)
	}
	defer f.Close()

	if _, err := c.file.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	return nil
}
