package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"orbital/pkg/config"
	"orbital/pkg/document"
	"orbital/pkg/github"
	"orbital/pkg/publisher"
)

var (
	publishDocument string
	publishRepoURL  string
	publishProfile  string
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Open a pull request with the current design tokens",
	Long: `Format the colors and gradients of a design document and open a pull request
with them against the configured repository.

The repository's orbital.conf.json decides the base branch and the file to
write. The file extension picks the output format: .css, .scss, .less or .styl.

Publishing creates a new branch, commits the file and opens the pull request.
If a step fails after the branch was created, the branch is left in place and
its name is printed.

Examples:
  orbital publish --document design-tokens.json
  orbital publish --document tokens.yaml --profile work`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVarP(&publishDocument, "document", "d", "", "Design document to read tokens from (JSON or YAML)")
	publishCmd.Flags().StringVar(&publishRepoURL, "repo-url", "", "Repository URL to publish to instead of the configured one")
	publishCmd.Flags().StringVar(&publishProfile, "profile", "", "Credentials profile to use")
}

func runPublish(cmd *cobra.Command, _ []string) error {
	p := printerFor(cmd)

	settings, err := loadSettings(config.Overrides{
		RepoURL:      publishRepoURL,
		Profile:      publishProfile,
		DocumentPath: publishDocument,
	})
	if err != nil {
		return err
	}

	p.Title("Publishing design tokens to %s", settings.RepoURL)

	client, err := github.NewClient(settings.Token, clientOptions(settings.APIURL)...)
	if err != nil {
		return err
	}

	run := publisher.New(settings, client, document.NewFileProvider(settings.DocumentPath), p).
		WithLogger(slog.Default())

	if _, err := run.Run(cmd.Context()); err != nil {
		return reported(err)
	}
	return nil
}
