package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate man pages or Markdown documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return genDocs(cmd.OutOrStdout(), genDocDir, genDocFormat)
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "man", "output format: man, markdown")
	rootCmd.AddCommand(genDocCmd)
}

func genDocs(w io.Writer, outputDir, format string) error {
	if outputDir == "" {
		return errors.NewUserError(errors.New("output directory is required"), "pass --dir")
	}
	if err := paths.EnsureDir(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	var err error
	switch format {
	case "man":
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{
			Section: "8",
			Source:  "sysmaint",
			Manual:  "System Administration",
		}, outputDir)
	case "markdown":
		err = doc.GenMarkdownTreeCustom(rootCmd, outputDir, filePrepender, linkHandler)
	default:
		return errors.NewConfigError(errors.Newf("unknown doc format %q", format))
	}
	if err != nil {
		return errors.Wrapf(err, "generating %s docs", format)
	}

	fmt.Fprintf(w, "Documentation generated in %s\n", outputDir)
	return nil
}

func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	// sysmaint_history_show.md -> sysmaint history show
	title := strings.ReplaceAll(base, "_", " ")
	return fmt.Sprintf("---\ntitle: %q\n---\n\n", title)
}

func linkHandler(name string) string {
	return strings.ToLower(name)
}
