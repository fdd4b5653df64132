// Package logging provides structured logging for the sysmaint CLI using slog.
//
// Console output uses a TTY-aware colorized text handler or JSON. Every run
// additionally appends JSON records to a durable log file through
// [NewMultiHandler] and [OpenFile], so fatal and non-fatal events survive
// the process regardless of outcome.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("collector finished", "collector", "disk")
//
// # Context
//
// Commands store the configured logger in the command context with
// [NewContext]; pipeline code retrieves it with [FromContext].
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	logger := logging.ForTest(t)
package logging
