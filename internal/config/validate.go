package config

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/sysmaint/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrNonPositive indicates a count or duration that must be positive was not.
	ErrNonPositive = errors.New("must be positive")

	// ErrUnknownTimezone indicates display_timezone is not a known IANA zone.
	ErrUnknownTimezone = errors.New("unknown timezone")

	// ErrRulesFormat indicates rules_file has an unsupported extension.
	ErrRulesFormat = errors.New("rules file must be .yaml, .yml or .toml")

	// ErrSamePath indicates two artifacts were configured to the same file.
	ErrSamePath = errors.New("report_file and log_file must differ")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg Config) []error {
	var errs []error

	if cfg.LogLines <= 0 {
		errs = append(errs, &FieldError{Field: KeyLogLines, Err: ErrNonPositive})
	}
	if cfg.CollectorTimeout < 0 {
		errs = append(errs, &FieldError{Field: KeyCollectorTimeout, Err: ErrNonPositive})
	}

	if tz := cfg.DisplayTimezone; tz != "" && tz != "Local" {
		if _, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, &FieldError{Field: KeyDisplayTimezone, Err: ErrUnknownTimezone})
		}
	}

	required := []struct {
		field string
		path  string
	}{
		{KeySyslogPath, cfg.SyslogPath},
		{KeyReportFile, cfg.ReportFile},
		{KeyLogFile, cfg.LogFile},
	}
	for _, r := range required {
		if err := paths.Validate(r.path); err != nil {
			errs = append(errs, &PathError{Field: r.field, Path: r.path, Err: err})
		}
	}

	if !cfg.NoHistory {
		if err := paths.Validate(cfg.HistoryDB); err != nil {
			errs = append(errs, &PathError{Field: KeyHistoryDB, Path: cfg.HistoryDB, Err: err})
		}
	}

	if cfg.RulesFile != "" {
		if err := paths.Validate(cfg.RulesFile); err != nil {
			errs = append(errs, &PathError{Field: KeyRulesFile, Path: cfg.RulesFile, Err: err})
		} else {
			switch strings.ToLower(filepath.Ext(cfg.RulesFile)) {
			case ".yaml", ".yml", ".toml":
			default:
				errs = append(errs, &PathError{Field: KeyRulesFile, Path: cfg.RulesFile, Err: ErrRulesFormat})
			}
		}
	}

	if cfg.ReportFile != "" && filepath.Clean(cfg.ReportFile) == filepath.Clean(cfg.LogFile) {
		errs = append(errs, ErrSamePath)
	}

	return errs
}

// FieldError represents an invalid scalar field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
