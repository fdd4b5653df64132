package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/sysmaint/internal/errors"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: FormatJSON,
		Output: &buf,
	})

	logger.Info("test message", "key", "value")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["key"] != "value" {
		t.Errorf("JSON output missing custom attribute: got %v, want 'value'", parsed["key"])
	}
}

func TestNew_UnknownFormatDefaultsToText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "yaml", Output: &buf})

	logger.Info("hello")

	if !strings.Contains(buf.String(), "INFO") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected text output, got: %q", buf.String())
	}
}

func TestNewDiscard_ProducesNoOutput(t *testing.T) {
	logger := NewDiscard()
	logger.Error("should vanish")
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{4, LevelTrace},
	}

	for _, tt := range tests {
		got := LevelFromVerbosity(tt.verbosity)
		if got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestLevelTrace(t *testing.T) {
	if LevelTrace >= slog.LevelDebug {
		t.Error("LevelTrace should be lower than LevelDebug")
	}
}

func TestContext(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(t.Context(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext should fall back to slog.Default()")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "sysmaint.log")

	h, closer, err := OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	slog.New(h).Warn("smart collector unavailable", "error", "smartctl missing")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Append, never truncate.
	h, closer, err = OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("OpenFile() second open error = %v", err)
	}
	slog.New(h).Info("report written")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines, got %d: %q", len(lines), data)
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if _, ok := rec["time"]; !ok {
		t.Error("log records must be timestamped")
	}
}

func TestOpenFile_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	_, _, err := OpenFile(filepath.Join(blocker, "sub", "run.log"), slog.LevelInfo)
	if err == nil {
		t.Fatal("expected error for path under a regular file")
	}
	var perr *errors.PersistError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistError, got %T", err)
	}
}

func TestMultiHandler(t *testing.T) {
	var info, debug bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("run_id", "r1")

	logger.Debug("parsed", "entries", 3)
	logger.Info("done")

	if strings.Contains(info.String(), "parsed") {
		t.Error("info handler should not receive debug records")
	}
	if !strings.Contains(debug.String(), `"entries":3`) || !strings.Contains(debug.String(), `"run_id":"r1"`) {
		t.Errorf("debug handler missing record: %s", debug.String())
	}
	if !strings.Contains(info.String(), "done") {
		t.Errorf("info handler missing record: %s", info.String())
	}
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	logger.Debug("visible with -v")
}
