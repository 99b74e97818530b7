package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"orbital/pkg/config"
	"orbital/pkg/github"
)

var authProfile string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Show which GitHub account the configured token belongs to",
	Long: `Look up the GitHub user behind the configured token and the scopes it was
granted. The token itself is never printed.

Examples:
  orbital auth
  orbital auth --profile work`,
	RunE: runAuth,
}

func init() {
	authCmd.Flags().StringVar(&authProfile, "profile", "", "Credentials profile to use")
}

func runAuth(cmd *cobra.Command, _ []string) error {
	p := printerFor(cmd)

	cfg, creds, err := loadFiles()
	if err != nil {
		return err
	}

	settings, err := config.ResolveToken(cfg, creds, authProfile)
	if err != nil {
		p.Fail("No GitHub token configured")
		fmt.Fprintln(p.Out, github.GetAuthInstructions())
		return reported(err)
	}

	client, err := github.NewClient(settings.Token, clientOptions(settings.APIURL)...)
	if err != nil {
		return err
	}

	info, err := client.CurrentUser(cmd.Context())
	if err != nil {
		p.Fail("Token from %s was rejected: %v", settings.TokenSource, err)
		return reported(err)
	}

	p.Success("Authenticated as %s", info.User)
	p.DimMsg("token source: %s", settings.TokenSource)
	if len(info.Scopes) > 0 {
		p.DimMsg("scopes: %s", strings.Join(info.Scopes, ", "))
	} else {
		p.DimMsg("scopes: none reported (fine-grained token)")
	}
	if profiles := creds.Profiles(); len(profiles) > 0 {
		p.DimMsg("stored profiles: %s", strings.Join(profiles, ", "))
	}

	return nil
}
