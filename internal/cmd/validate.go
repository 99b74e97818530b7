package cmd

import (
	"github.com/spf13/cobra"

	"orbital/pkg/config"
	"orbital/pkg/github"
)

var (
	validateRepoURL string
	validateProfile string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured repository can be published to",
	Long: `Check the current settings against GitHub without changing anything.

The checks run in order and stop at the first failure:
• the repository URL names a GitHub repository
• an access token is configured
• the repository exists and the token can see it
• the token can push to it
• orbital.conf.json exists at the root of the repository

Examples:
  orbital validate
  orbital validate --repo-url https://github.com/acme/widgets
  orbital validate --profile work`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateRepoURL, "repo-url", "", "Repository URL to check instead of the configured one")
	validateCmd.Flags().StringVar(&validateProfile, "profile", "", "Credentials profile to use")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	p := printerFor(cmd)

	cfg, creds, err := loadFiles()
	if err != nil {
		return err
	}

	// a missing token is reported by the validator itself
	settings, _ := config.ResolveSettingsWithOverrides(cfg, creds, config.Overrides{
		RepoURL: validateRepoURL,
		Profile: validateProfile,
	})

	if settings.RepoURL == "" {
		p.Fail("No repository URL configured")
		p.DimMsg("run 'orbital configure' or pass --repo-url")
		return reported(&github.ValidationFailure{Reason: "repository URL is required"})
	}

	p.Info("Validating %s", settings.RepoURL)
	result := github.NewValidator(clientOptions(settings.APIURL)...).Validate(cmd.Context(), settings.RepoURL, settings.Token)
	if !result.OK {
		p.Fail("%s", result.ErrorMessage)
		return reported(result.Err())
	}

	p.Success("Ready to publish to %s", settings.RepoURL)
	return nil
}
