package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"orbital/pkg/document"
	"orbital/pkg/style"
)

var (
	exportDocument string
	exportFormat   string
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the design tokens as a local style sheet",
	Long: `Format the colors and gradients of a design document without touching GitHub.

The format is taken from --format, or from the extension of --out when no
format is given. Without either, CSS is written to standard output. When
--format is given and --out has no extension, the format's extension is added.

Examples:
  orbital export --document design-tokens.json
  orbital export --document design-tokens.json --out src/styles/globals.scss
  orbital export --document tokens.yaml --format styl`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportDocument, "document", "d", "", "Design document to read tokens from (JSON or YAML)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format, one of: "+style.DialectList())
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "File to write instead of standard output")
}

func runExport(cmd *cobra.Command, _ []string) error {
	dialect, err := exportDialect()
	if err != nil {
		return err
	}

	path := exportDocument
	if path == "" {
		cfgPath, err := resolveConfigPath()
		if err != nil {
			return err
		}
		cfg, err := loadConfigFile(cfgPath)
		if err != nil {
			return err
		}
		path = cfg.Document.Path
	}

	tokens, err := document.NewFileProvider(path).Tokens(cmd.Context())
	if err != nil {
		return err
	}

	content, err := style.Format(tokens, dialect)
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}

	out := exportOut
	if filepath.Ext(out) == "" {
		out += "." + dialect.Extension()
	}

	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	printerFor(cmd).Success("Wrote %d colors and %d gradients to %s", len(tokens.Colors), len(tokens.Gradients), out)
	return nil
}

func exportDialect() (style.Dialect, error) {
	switch {
	case exportFormat != "":
		return style.ParseDialect(exportFormat)
	case exportOut != "":
		return style.DialectFromPath(exportOut)
	default:
		return style.CSS, nil
	}
}
