package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"orbital/internal/ui"
	"orbital/pkg/config"
	"orbital/pkg/github"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "orbital",
	Short: "Publish design tokens to GitHub as style sheet pull requests",
	Long: `Orbital turns the colors and gradients of a design document into CSS, SCSS,
LESS or Stylus variables and opens a pull request with them against a GitHub
repository.

The target repository decides where the file goes and which format it uses
through an orbital.conf.json file at its root:

  {
    "baseBranch": "main",
    "globalStylesFilePath": "src/styles/globals.scss"
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogger(verbose)
	},
}

// reportedError marks an error the command has already shown to the user
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown *reportedError
		if !errors.As(err, &shown) {
			ui.New(os.Stderr, os.Stdin).Fail("%v", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default ~/.orbital/config.yaml)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(exportCmd)
}

func setupLogger(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func printerFor(cmd *cobra.Command) *ui.Printer {
	return ui.New(cmd.OutOrStdout(), cmd.InOrStdin())
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, nil
}

// loadFiles reads the config file and the credentials file
func loadFiles() (*config.Config, *config.Credentials, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, nil, err
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, nil, err
	}

	return cfg, creds, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	cfg, err := config.LoadConfigFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func loadSettings(o config.Overrides) (config.Settings, error) {
	cfg, creds, err := loadFiles()
	if err != nil {
		return config.Settings{}, err
	}

	settings, err := config.ResolveSettingsWithOverrides(cfg, creds, o)
	if err != nil {
		return settings, err
	}
	slog.Debug("resolved settings", "settings", settings.String())
	return settings, nil
}

func clientOptions(apiURL string) []github.Option {
	opts := []github.Option{github.WithLogger(slog.Default())}
	if apiURL != "" {
		opts = append(opts, github.WithBaseURL(apiURL))
	}
	return opts
}
