package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/history"
)

var (
	historyLimit int
	historyJSON  bool
)

func init() {
	historyCmd.PersistentFlags().String("history-db", "", "run history database path")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output in JSON format")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs to show (0 for all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Show runs recorded in the history database (history_db).

Every 'sysmaint run' is recorded unless --no-history is given, including
runs that were interrupted or failed to write their report.`,
}

var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recent runs, newest first",
	Example: `  sysmaint history list -n 5`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}
		return listRuns(cmd.OutOrStdout(), runs, time.Now())
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its findings",
	Long: `Show one run and the classified errors it found.

The run ID may be abbreviated to any unique prefix.`,
	Example: `  sysmaint history show 3f2a`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		run, findings, err := store.Get(cmd.Context(), args[0])
		switch {
		case errors.Is(err, errors.ErrNotFound):
			return errors.NewUserError(err, "Run: sysmaint history list")
		case errors.Is(err, history.ErrAmbiguousID):
			return errors.NewUserError(err, "use a longer run ID prefix")
		case err != nil:
			return err
		}
		return showRun(cmd.OutOrStdout(), run, findings)
	},
}

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(cfg.HistoryDB); errors.Is(err, os.ErrNotExist) {
		return nil, errors.NewUserError(errors.Newf("no history at %s", cfg.HistoryDB), "Run: sudo sysmaint run")
	}
	return history.Open(cmd.Context(), cfg.HistoryDB)
}

func listRuns(w io.Writer, runs []history.Run, now time.Time) error {
	if historyJSON {
		return writeJSON(w, runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTARTED\tHOST\tSTATUS\tHIGH\tMEDIUM\tLOW")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			shortID(r.ID),
			humanize.RelTime(r.StartedAt, now, "ago", "from now"),
			r.Hostname,
			r.Status,
			r.High, r.Medium, r.Low,
		)
	}
	return errors.Wrap(tw.Flush(), "writing run list")
}

func showRun(w io.Writer, run history.Run, findings []history.Finding) error {
	if historyJSON {
		return writeJSON(w, struct {
			history.Run
			Findings []history.Finding `json:"findings"`
		}{run, findings})
	}

	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Host:     %s\n", run.Hostname)
	fmt.Fprintf(w, "Started:  %s\n", run.StartedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(w, "Duration: %s\n", run.Duration().Round(time.Second))
	fmt.Fprintf(w, "Status:   %s\n", run.Status)
	if run.Error != "" {
		fmt.Fprintf(w, "Error:    %s\n", run.Error)
	}
	if run.ReportPath != "" {
		fmt.Fprintf(w, "Report:   %s\n", run.ReportPath)
	}
	fmt.Fprintf(w, "Errors:   %d high, %d medium, %d low\n", run.High, run.Medium, run.Low)

	if len(findings) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tPROCESS\tSEVERITY\tMESSAGE")
	for _, f := range findings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Time, f.Process, f.Severity, truncate(f.Message, 80))
	}
	return errors.Wrap(tw.Flush(), "writing findings")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON")
}

// shortID returns the first block of a run ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
