package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/collector"
	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/history"
	"github.com/thoreinstein/sysmaint/internal/maintenance"
)

var renderFrom string

func init() {
	renderCmd.Flags().StringVar(&renderFrom, "from", "", "artifact directory saved by 'sysmaint run --artifacts-dir'")
	renderCmd.Flags().String("report", "", "HTML report path")
	renderCmd.Flags().String("timezone", "", "IANA timezone for log timestamps (default Local)")
	renderCmd.Flags().String("rules", "", "rule override file (.yaml or .toml)")
	_ = renderCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compile a report from saved artifacts",
	Long: `Compile the HTML report from an artifact directory instead of the
live system. Nothing is executed and root is not required, so a report
can be rebuilt with different rules or a different timezone.

Missing artifacts are shown as unavailable, exactly as a failed collector
would be.`,
	Example: `  # Rebuild a report with an override rule file
  sysmaint render --from /tmp/sysmaint --rules ./rules.yaml --report ./report.html

See Also: sysmaint run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return renderFromDir(cmd.Context(), cmd.OutOrStdout(), cfg, renderFrom)
	},
}

func renderFromDir(ctx context.Context, w io.Writer, cfg config.Config, dir string) error {
	d, err := collector.NewDir(dir)
	if err != nil {
		return errors.NewUserError(err, "pass the directory given to 'sysmaint run --artifacts-dir'")
	}

	classifier, err := classify.Load(cfg.RulesFile)
	if err != nil {
		return errors.NewConfigError(err)
	}

	res, err := maintenance.New(cfg, d.Set(), classifier,
		maintenance.WithRunID(history.NewRunID()),
	).Run(ctx)
	if err != nil {
		return err
	}
	if err := res.Report.Persist(cfg.ReportFile); err != nil {
		return err
	}

	if !quiet {
		fmt.Fprintf(w, "Report written to %s\n", cfg.ReportFile)
	}
	return nil
}
