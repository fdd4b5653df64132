package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/thoreinstein/sysmaint/internal/collector"
	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/logging"
)

// resetViper restores the global viper state after a test changes it.
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	config.Init()
	t.Cleanup(func() {
		viper.Reset()
		config.Init()
	})
}

func noColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"SYSMAINT_DEBUG=1", "1", slog.LevelDebug},
		{"SYSMAINT_DEBUG=true", "true", slog.LevelDebug},
		{"SYSMAINT_DEBUG=2", "2", logging.LevelTrace},
		{"SYSMAINT_DEBUG=0", "0", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = 0
			t.Setenv("SYSMAINT_DEBUG", tt.envVal)

			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}
			if !slog.Default().Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
		})
	}
}

func TestSetupLogging_QuietMutualExclusion(t *testing.T) {
	origVerbosity := verbosity
	origQuiet := quiet
	defer func() {
		verbosity = origVerbosity
		quiet = origQuiet
	}()

	verbosity = 1
	quiet = true

	err := setupLogging(rootCmd)
	if err == nil {
		t.Fatal("expected error when both quiet and verbose are set")
	}
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("ExitCode = %d, want %d", errors.ExitCode(err), errors.ExitUser)
	}
}

func TestSetupLogging_UnknownFormat(t *testing.T) {
	orig := logFormat
	defer func() { logFormat = orig }()

	logFormat = "xml"
	if err := setupLogging(rootCmd); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("setupLogging() error = %v, want ErrInvalidConfig", err)
	}
}

func TestSetupLogging_DurableLog(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "state", "sysmaint.log")
	viper.Set(config.KeyLogFile, path)

	cmd := &cobra.Command{
		Use:         "run",
		Annotations: map[string]string{annotationDurableLog: "true"},
	}
	cmd.SetErr(&bytes.Buffer{})

	if err := setupLogging(cmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(cmd.Context()).Info("run started", "run_id", "abc")
	if err := closeLog(); err != nil {
		t.Fatalf("closeLog() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("durable log not written: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"run started"`) || !strings.Contains(string(data), `"run_id":"abc"`) {
		t.Errorf("durable log = %s", data)
	}
}

func TestSetupLogging_DurableLogUnwritable(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	viper.Set(config.KeyLogFile, filepath.Join(blocker, "sysmaint.log"))

	cmd := &cobra.Command{Annotations: map[string]string{annotationDurableLog: "true"}}
	err := setupLogging(cmd)
	if errors.ExitCode(err) != errors.ExitSystem {
		t.Errorf("ExitCode(%v) = %d, want %d", err, errors.ExitCode(err), errors.ExitSystem)
	}
}

func TestBindFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("report", "", "")
	cmd.Flags().Int("log-lines", 0, "")
	cmd.Flags().String("unrelated", "", "")
	if err := cmd.Flags().Parse([]string{"--report", "/tmp/r.html", "--unrelated", "x"}); err != nil {
		t.Fatal(err)
	}

	if err := bindFlags(cmd); err != nil {
		t.Fatalf("bindFlags() error = %v", err)
	}

	if got := viper.GetString(config.KeyReportFile); got != "/tmp/r.html" {
		t.Errorf("report_file = %q, want /tmp/r.html", got)
	}
	// Unset flags leave the default in place.
	if got := viper.GetInt(config.KeyLogLines); got != config.DefaultLogLines {
		t.Errorf("log_lines = %d, want %d", got, config.DefaultLogLines)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	resetViper(t)
	viper.Set(config.KeyLogLines, 0)

	_, err := loadConfig()
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("loadConfig() error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "log_lines") {
		t.Errorf("error %q should name the field", err)
	}
}

func TestPrintError(t *testing.T) {
	noColor(t)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "plain",
			err:  errors.New("boom"),
			want: "Error: boom\n",
		},
		{
			name: "with suggestion",
			err:  errors.NewUserError(errors.ErrNotPrivileged, "re-run with sudo"),
			want: "Error: root privileges required\n  re-run with sudo\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			if buf.String() != tt.want {
				t.Errorf("PrintError() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRootCommand_UnknownFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", "--no-such-flag"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.ExecuteContext(t.Context())
	if !errors.Is(err, errors.ErrInvalidConfig) {
		t.Fatalf("Execute() error = %v, want ErrInvalidConfig", err)
	}
	if errors.ExitCode(err) != errors.ExitUser {
		t.Errorf("ExitCode = %d, want %d", errors.ExitCode(err), errors.ExitUser)
	}
}

func TestFinishCommand_LogsFatalErrors(t *testing.T) {
	orig := geteuid
	geteuid = func() int { return 1000 }
	t.Cleanup(func() { geteuid = orig })

	tests := []struct {
		name    string
		setup   func()
		wantErr string
	}{
		{
			name:    "not privileged",
			setup:   func() {},
			wantErr: "root privileges required",
		},
		{
			name:    "invalid config",
			setup:   func() { viper.Set(config.KeyLogLines, 0) },
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			logPath := filepath.Join(t.TempDir(), "sysmaint.log")
			viper.Set(config.KeyLogFile, logPath)
			tt.setup()

			if err := setupLogging(runCmd); err != nil {
				t.Fatalf("setupLogging() error = %v", err)
			}
			runErr := runRun(runCmd, nil)
			if runErr == nil {
				t.Fatal("runRun() error = nil, want failure")
			}
			if err := finishCommand(runCmd, runErr); err != runErr {
				t.Errorf("finishCommand() = %v, want the command error", err)
			}
			if logCloser != nil || durableLog != nil {
				t.Error("durable log still open after finishCommand")
			}

			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("reading log: %v", err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			var rec struct {
				Msg      string `json:"msg"`
				Level    string `json:"level"`
				Command  string `json:"command"`
				Error    string `json:"error"`
				ExitCode int    `json:"exit_code"`
			}
			if err := json.Unmarshal([]byte(lines[len(lines)-1]), &rec); err != nil {
				t.Fatalf("last log line %q: %v", lines[len(lines)-1], err)
			}
			if rec.Msg != "command failed" || rec.Level != "ERROR" {
				t.Errorf("record = %+v, want ERROR \"command failed\"", rec)
			}
			if rec.Command != "sysmaint run" {
				t.Errorf("command = %q, want %q", rec.Command, "sysmaint run")
			}
			if !strings.Contains(rec.Error, tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", rec.Error, tt.wantErr)
			}
			if rec.ExitCode != errors.ExitCode(runErr) {
				t.Errorf("exit_code = %d, want %d", rec.ExitCode, errors.ExitCode(runErr))
			}
		})
	}
}

func TestFinishCommand_NoDurableLog(t *testing.T) {
	want := errors.New("boom")
	if got := finishCommand(nil, want); got != want {
		t.Errorf("finishCommand() = %v, want %v", got, want)
	}
	if got := finishCommand(rootCmd, nil); got != nil {
		t.Errorf("finishCommand(nil error) = %v", got)
	}
}

func TestRootCommand_Help(t *testing.T) {
	resetViper(t)
	logPath := filepath.Join(t.TempDir(), "sysmaint.log")
	viper.Set(config.KeyLogFile, logPath)

	called := false
	origCollectors := newCollectors
	newCollectors = func(config.Config) collector.Set {
		called = true
		return collector.Set{}
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"run", "--help"})
	t.Cleanup(func() {
		newCollectors = origCollectors
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		if f := runCmd.Flags().Lookup("help"); f != nil {
			_ = f.Value.Set("false")
			f.Changed = false
		}
	})

	if err := Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out.String(), "Usage:") || !strings.Contains(out.String(), "sysmaint run") {
		t.Errorf("help output missing usage:\n%s", out.String())
	}
	if called {
		t.Error("--help started collection")
	}
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Errorf("--help touched the durable log: stat error = %v", err)
	}
}
