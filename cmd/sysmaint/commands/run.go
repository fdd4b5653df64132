package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/collector"
	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/history"
	"github.com/thoreinstein/sysmaint/internal/logging"
	"github.com/thoreinstein/sysmaint/internal/maintenance"
)

// geteuid is replaced in tests.
var geteuid = unix.Geteuid

// newCollectors builds the live collectors for cfg. Replaced in tests.
var newCollectors = func(cfg config.Config) collector.Set {
	return collector.NewHost(
		collector.WithSyslogPath(cfg.SyslogPath),
		collector.WithLogLines(cfg.LogLines),
	).Set()
}

var runArtifactsDir string

func init() {
	f := runCmd.Flags()
	f.Bool("skip-update", false, "do not update packages")
	f.Bool("skip-smart", false, "do not run SMART checks")
	f.Bool("skip-integrity", false, "do not verify package integrity")
	f.String("syslog", "", "system log to scan (default /var/log/syslog)")
	f.Int("log-lines", config.DefaultLogLines, "number of recent error lines to keep")
	f.String("report", "", "HTML report path")
	f.String("log-file", "", "durable JSON log path")
	f.String("timezone", "", "IANA timezone for log timestamps (default Local)")
	f.String("rules", "", "rule override file (.yaml or .toml)")
	f.String("history-db", "", "run history database path")
	f.Bool("no-history", false, "do not record this run in the history database")
	f.Duration("collector-timeout", 0, "per-collector time limit (0 for none)")
	f.StringVar(&runArtifactsDir, "artifacts-dir", "", "keep raw collector output in this directory")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Update the system and write the health report",
	Long: `Run every maintenance step in order and write the HTML report.

Steps: package update (apt-get update, upgrade, autoremove, autoclean),
system info, disk usage, memory usage, CPU load, SMART status, recent
system errors and package integrity. A failing step is shown as
unavailable in the report; the run continues.

Requires root. Interrupting the run (Ctrl-C) stops it between steps
without writing a report.`,
	Example: `  # Full run
  sudo sysmaint run

  # Skip slow checks and keep the raw output
  sudo sysmaint run --skip-smart --skip-integrity --artifacts-dir /tmp/sysmaint

See Also: sysmaint render, sysmaint history`,
	Annotations: map[string]string{annotationDurableLog: "true"},
	Args:        cobra.NoArgs,
	RunE:        runRun,
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if geteuid() != 0 {
		return errors.NewUserError(errors.ErrNotPrivileged, "re-run with sudo")
	}
	return runMaintenance(cmd.Context(), cmd.OutOrStdout(), cfg, newCollectors(cfg), runArtifactsDir)
}

// runMaintenance runs the pipeline over collectors, persists the report and
// records the run in history.
func runMaintenance(ctx context.Context, w io.Writer, cfg config.Config, collectors collector.Set, artifactsDir string) error {
	log := logging.FromContext(ctx)

	classifier, err := classify.Load(cfg.RulesFile)
	if err != nil {
		return errors.NewConfigError(err)
	}

	ws, err := collector.NewWorkspace(artifactsDir)
	if err != nil {
		return errors.NewSystemError(err, "check --artifacts-dir")
	}
	defer func() {
		if err := ws.Close(); err != nil {
			log.Warn("removing workspace failed", "dir", ws.Dir(), "error", err)
		}
	}()

	runID := history.NewRunID()
	started := time.Now()
	p := maintenance.New(cfg, collectors, classifier,
		maintenance.WithWorkspace(ws),
		maintenance.WithRunID(runID),
	)

	res, runErr := p.Run(ctx)
	outcome := maintenance.Outcome{
		RunID:      runID,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Result:     res,
	}
	if runErr == nil {
		if err := res.Report.Persist(cfg.ReportFile); err != nil {
			runErr = err
		} else {
			outcome.ReportPath = cfg.ReportFile
			log.Info("report written", "path", cfg.ReportFile)
		}
	}
	outcome.Err = runErr

	if !cfg.NoHistory {
		// The run context may already be cancelled.
		recordRun(context.WithoutCancel(ctx), cfg.HistoryDB, outcome)
	}

	if runErr != nil {
		return runErr
	}

	if !quiet {
		printRunSummary(w, res, cfg.ReportFile, ws)
	}
	return nil
}

// recordRun stores the outcome. History is best-effort: failures are
// logged and never change the exit status.
func recordRun(ctx context.Context, dbPath string, o maintenance.Outcome) {
	log := logging.FromContext(ctx)

	store, err := history.Open(ctx, dbPath)
	if err != nil {
		log.Warn("opening history failed", "path", dbPath, "error", err)
		return
	}
	defer store.Close()

	if err := maintenance.Record(ctx, store, o); err != nil {
		log.Warn("recording run failed", "run_id", o.RunID, "error", err)
	}
}

func printRunSummary(w io.Writer, res *maintenance.Result, reportPath string, ws *collector.Workspace) {
	fmt.Fprintf(w, "Report written to %s\n", reportPath)
	fmt.Fprintf(w, "Run %s on %s: %d recent error(s) (%d high, %d medium, %d low)\n",
		res.RunID, res.Hostname, res.Counts.Total(),
		res.Counts[classify.High], res.Counts[classify.Medium], res.Counts[classify.Low])
	for _, f := range res.Failures {
		fmt.Fprintf(w, "  %s unavailable: %v\n", f.Step, f.Err)
	}
	if ws.Kept() {
		fmt.Fprintf(w, "Artifacts kept in %s\n", ws.Dir())
	}
}
