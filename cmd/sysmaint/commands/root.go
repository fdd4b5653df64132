// Package commands implements the CLI commands for sysmaint.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thoreinstein/sysmaint/cmd"
	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/logging"
)

// annotationDurableLog marks commands whose events are appended to the
// durable log file.
const annotationDurableLog = "sysmaint/durable-log"

// configFile holds the value of the --config flag.
var configFile string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

// logCloser closes the durable log file opened by setupLogging.
var logCloser io.Closer

// durableLog writes only to the durable log file. It is nil when no file is
// open.
var durableLog *slog.Logger

// flagKeys maps command flags onto config keys. A command binds only the
// flags it defines.
var flagKeys = map[string]string{
	"skip-update":       config.KeySkipUpdate,
	"skip-smart":        config.KeySkipSMART,
	"skip-integrity":    config.KeySkipIntegrity,
	"syslog":            config.KeySyslogPath,
	"log-lines":         config.KeyLogLines,
	"report":            config.KeyReportFile,
	"log-file":          config.KeyLogFile,
	"timezone":          config.KeyDisplayTimezone,
	"rules":             config.KeyRulesFile,
	"history-db":        config.KeyHistoryDB,
	"no-history":        config.KeyNoHistory,
	"collector-timeout": config.KeyCollectorTimeout,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/sysmaint/config.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"console log format: text, json")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("sysmaint version {{.Version}}\n")

	// Unknown or malformed flags are configuration errors.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.NewConfigError(err)
	})

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	// Capture load errors for later reporting
	_, configLoadErr = config.Load(configFile)
}

var rootCmd = &cobra.Command{
	Use:   "sysmaint",
	Short: "Routine maintenance and health report for Debian hosts",
	Long: `sysmaint updates a Debian-based host and compiles a single HTML
health report: system info, disk, memory and CPU usage, SMART drive
status, recent system errors classified by severity, and package
integrity.

Collection requires root. Individual checks can be skipped with flags or
in the config file.`,
	Example: `  # Full maintenance run
  sudo sysmaint run

  # Report only, no package updates or SMART checks
  sudo sysmaint run --skip-update --skip-smart

  # Check prerequisites
  sysmaint doctor

  See Also: sysmaint config, sysmaint rules`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		// Check for config load errors first
		if configLoadErr != nil {
			return errors.NewConfigError(configLoadErr)
		}
		if err := bindFlags(cmd); err != nil {
			return errors.NewConfigError(err)
		}
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLog()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// bindFlags binds the flags cmd defines to their config keys so that an
// explicit flag overrides the config file and environment.
func bindFlags(cmd *cobra.Command) error {
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || bindErr != nil {
			return
		}
		bindErr = errors.Wrapf(viper.BindPFlag(key, f), "binding --%s", f.Name)
	})
	return bindErr
}

// setupLogging configures the default logger based on verbosity flags. For
// commands annotated with annotationDurableLog every record is also
// appended as JSON to the configured log file.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// CLI flags take precedence, but if not set, check env var
		if v == 0 {
			if val, ok := os.LookupEnv("SYSMAINT_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2 // Debug
				case "2":
					v = 3 // Trace
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logging.Format(logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return errors.NewConfigError(errors.Newf("unknown log format %q (valid: text, json)", logFormat))
	}

	handlers := []slog.Handler{logging.NewConsoleHandler(logging.Config{
		Level:  level,
		Format: format,
		Output: cmd.ErrOrStderr(),
	})}

	if cmd.Annotations[annotationDurableLog] == "true" {
		path := viper.GetString(config.KeyLogFile)
		// The durable log records everything the run does regardless of
		// console verbosity.
		fileHandler, closer, err := logging.OpenFile(path, slog.LevelInfo)
		if err != nil {
			return err
		}
		logCloser = closer
		durableLog = slog.New(fileHandler)
		handlers = append(handlers, fileHandler)
	}

	var handler slog.Handler
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	} else {
		handler = handlers[0]
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// finishCommand appends a failed command's error to the durable log, then
// closes it. Errors returned from RunE skip PersistentPostRunE, so this is
// the only place they reach the file.
func finishCommand(cmd *cobra.Command, err error) error {
	if err != nil && durableLog != nil {
		name := ""
		if cmd != nil {
			name = cmd.CommandPath()
		}
		durableLog.Error("command failed",
			"command", name,
			"error", err.Error(),
			"exit_code", errors.ExitCode(err),
		)
	}
	if closeErr := closeLog(); err == nil {
		err = closeErr
	}
	return err
}

func closeLog() error {
	durableLog = nil
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return errors.Wrap(err, "closing log file")
}

// loadConfig returns the validated configuration for the current command.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, errors.NewConfigError(err)
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return config.Config{}, errors.NewConfigError(errors.Newf("invalid configuration: %s", strings.Join(msgs, "; ")))
	}
	return cfg, nil
}

// PrintError writes err and any suggestion it carries to w.
func PrintError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(w, "Error: ")
	fmt.Fprintln(w, err)

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) && exitErr.Suggestion != "" {
		fmt.Fprintf(w, "  %s\n", exitErr.Suggestion)
	}
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd, err := rootCmd.ExecuteContextC(ctx)
	return finishCommand(cmd, err)
}
