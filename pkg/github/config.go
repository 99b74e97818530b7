package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"orbital/pkg/style"
)

// ConfigFileName is the repository-root file that tells orbital where to publish
const ConfigFileName = "orbital.conf.json"

// Validate checks that both required keys are set and that the stylesheet
// path has a supported extension.
func (rc *RepoConfig) Validate() error {
	var missing []string
	if strings.TrimSpace(rc.BaseBranch) == "" {
		missing = append(missing, "baseBranch")
	}
	if strings.TrimSpace(rc.GlobalStylesFilePath) == "" {
		missing = append(missing, "globalStylesFilePath")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s is missing required keys: %s", ConfigFileName, strings.Join(missing, ", "))
	}
	return nil
}

// Dialect returns the stylesheet dialect selected by GlobalStylesFilePath
func (rc *RepoConfig) Dialect() (style.Dialect, error) {
	return style.DialectFromPath(rc.GlobalStylesFilePath)
}

// ParseRepoConfig decodes the JSON content of orbital.conf.json
func ParseRepoConfig(data []byte) (*RepoConfig, error) {
	var rc RepoConfig
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

// FetchConfig reads orbital.conf.json from the root of the repository's
// default branch. It is fetched on every call. Any failure is reported as a
// *ConfigNotFoundError.
func (c *Client) FetchConfig(ctx context.Context, ref RepoRef) (*RepoConfig, error) {
	file, _, _, err := c.client.Repositories.GetContents(ctx, ref.Owner, ref.Name, ConfigFileName, nil)
	if err != nil {
		return nil, &ConfigNotFoundError{
			Path:  ConfigFileName,
			Cause: wrapRemoteError(err, http.MethodGet, c.endpoint(ref, "contents", ConfigFileName)),
		}
	}
	if file == nil {
		return nil, &ConfigNotFoundError{Path: ConfigFileName, Cause: errors.New("path is a directory")}
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, &ConfigNotFoundError{Path: ConfigFileName, Cause: fmt.Errorf("failed to decode content: %w", err)}
	}

	rc, err := ParseRepoConfig([]byte(content))
	if err != nil {
		return nil, &ConfigNotFoundError{Path: ConfigFileName, Cause: err}
	}

	c.logger.Debug("loaded repository config", "repo", ref.String(), "base_branch", rc.BaseBranch, "path", rc.GlobalStylesFilePath)
	return rc, nil
}
