package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"orbital/internal/ui"
	"orbital/pkg/config"
	"orbital/pkg/fuzzy"
	"orbital/pkg/github"
)

var (
	configureRepoURL    string
	configureProfile    string
	configureTokenStdin bool
	configurePick       bool
)

// newSelector is replaced in tests
var newSelector = fuzzy.NewSelector

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set the target repository and GitHub token",
	Long: `Store the repository to publish to and the GitHub access token to use.

The settings are checked against GitHub before anything is saved: the
repository must exist, the token must be able to push to it and the
repository must contain an orbital.conf.json file at its root.

The token is written to ~/.orbital/credentials under the chosen profile, the
repository URL to the config file.

Examples:
  # Prompt for everything
  orbital configure

  # Pick the repository from the ones the token can push to
  orbital configure --pick

  # Non-interactive, e.g. in CI
  echo "$TOKEN" | orbital configure --repo-url https://github.com/acme/widgets --token-stdin`,
	RunE: runConfigure,
}

func init() {
	configureCmd.Flags().StringVar(&configureRepoURL, "repo-url", "", "Repository URL, e.g. https://github.com/acme/widgets")
	configureCmd.Flags().StringVar(&configureProfile, "profile", "", "Credentials profile to store the token under (default \"default\")")
	configureCmd.Flags().BoolVar(&configureTokenStdin, "token-stdin", false, "Read the token from standard input")
	configureCmd.Flags().BoolVar(&configurePick, "pick", false, "Choose the repository from the ones the token can push to")
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	p := printerFor(cmd)
	p.Title("Configure orbital")

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, creds, err := loadFiles()
	if err != nil {
		return err
	}

	existing, _ := config.ResolveToken(cfg, creds, configureProfile)
	profile := existing.Profile

	token, err := readToken(p, existing)
	if err != nil {
		return err
	}

	opts := clientOptions(config.ResolveAPIURL(cfg))

	repoURL := configureRepoURL
	if repoURL == "" && configurePick {
		repoURL, err = pickRepository(cmd, p.In, token, opts)
		if err != nil {
			return err
		}
	}
	if repoURL == "" {
		repoURL = p.AskString("Repository URL", cfg.GitHub.RepoURL)
	}

	p.Info("Checking %s", repoURL)
	result := github.NewValidator(opts...).Validate(ctx, repoURL, token)
	if !result.OK {
		p.Fail("Settings were not saved: %s", result.ErrorMessage)
		return reported(result.Err())
	}

	if err := creds.SetToken(profile, token); err != nil {
		return err
	}
	if err := creds.Save(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	cfg.GitHub.RepoURL = repoURL
	if profile != config.DefaultProfile {
		cfg.GitHub.Profile = profile
	}
	if err := cfg.SaveConfigToPath(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	p.BlankLine()
	p.Success("Settings saved")
	p.DimMsg("repository: %s", repoURL)
	p.DimMsg("profile: %s", profile)
	return nil
}

// readToken asks for a token. An empty answer keeps the one already
// configured, except with --token-stdin where a token must be given.
func readToken(p *ui.Printer, existing config.Settings) (string, error) {
	if !configureTokenStdin && !p.IsTerminal() {
		p.Warn("Input is not a terminal, the token will be read as a plain line. Use --token-stdin in scripts.")
	}

	if configureTokenStdin {
		token, err := p.AskSecret("Token")
		if err != nil {
			return "", err
		}
		if token == "" {
			return "", fmt.Errorf("no token on standard input")
		}
		return token, nil
	}

	prompt := "GitHub access token"
	if existing.Token != "" {
		prompt += " (leave empty to keep the current one)"
	}

	token, err := p.AskSecret(prompt)
	if err != nil && existing.Token == "" {
		return "", err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		token = existing.Token
	}
	return token, nil
}

// pickRepository lets the user choose among the repositories the token can
// push to and returns its URL.
func pickRepository(cmd *cobra.Command, in io.Reader, token string, opts []github.Option) (string, error) {
	client, err := github.NewClient(token, opts...)
	if err != nil {
		return "", err
	}

	repos, err := client.ListPushableRepositories(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(repos) == 0 {
		return "", fmt.Errorf("the token cannot push to any repository")
	}

	options := make([]fuzzy.Option, 0, len(repos))
	for _, repo := range repos {
		description := "public"
		if repo.Private {
			description = "private"
		}
		options = append(options, fuzzy.Option{Value: repo.FullName, Description: description})
	}

	selector := newSelector("Select the repository to publish to", in, cmd.OutOrStdout())
	if err := selector.SetOptions(options); err != nil {
		return "", err
	}

	selected, err := selector.Select()
	if err != nil {
		return "", fmt.Errorf("failed to select repository: %w", err)
	}

	return "https://github.com/" + selected, nil
}
