package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"orbital/pkg/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize orbital configuration",
	Long:  "Create a default configuration file for orbital",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	p := printerFor(cmd)

	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		p.Warn("Configuration file already exists at: %s", path)
		if !p.AskYesNo("Do you want to overwrite it?", false) {
			p.Info("Configuration initialization cancelled.")
			return nil
		}
	}

	defaultConfig := &config.Config{
		GitHub: config.GitHubConfig{
			RepoURL: "https://github.com/your-org/your-repo",
		},
		Document: config.DocumentConfig{
			Path: "design-tokens.json",
		},
	}

	if err := defaultConfig.SaveConfigToPath(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	p.Success("Configuration file created at: %s", path)
	p.Info("Edit the file or run 'orbital configure' to set your repository and token.")

	return nil
}
