package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/sysmaint/internal/paths"
)

// Keys shared between flags, environment and the config file.
const (
	KeySkipUpdate       = "skip_update"
	KeySkipSMART        = "skip_smart"
	KeySkipIntegrity    = "skip_integrity"
	KeySyslogPath       = "syslog_path"
	KeyLogLines         = "log_lines"
	KeyReportFile       = "report_file"
	KeyLogFile          = "log_file"
	KeyDisplayTimezone  = "display_timezone"
	KeyRulesFile        = "rules_file"
	KeyHistoryDB        = "history_db"
	KeyNoHistory        = "no_history"
	KeyCollectorTimeout = "collector_timeout"
)

// DefaultLogLines is how many of the most recent matching syslog lines are kept.
const DefaultLogLines = 50

// Config is the resolved configuration for one invocation. It is a plain
// value; copy it freely.
type Config struct {
	SkipUpdate       bool          `mapstructure:"skip_update" yaml:"skip_update"`
	SkipSMART        bool          `mapstructure:"skip_smart" yaml:"skip_smart"`
	SkipIntegrity    bool          `mapstructure:"skip_integrity" yaml:"skip_integrity"`
	SyslogPath       string        `mapstructure:"syslog_path" yaml:"syslog_path"`
	LogLines         int           `mapstructure:"log_lines" yaml:"log_lines"`
	ReportFile       string        `mapstructure:"report_file" yaml:"report_file"`
	LogFile          string        `mapstructure:"log_file" yaml:"log_file"`
	DisplayTimezone  string        `mapstructure:"display_timezone" yaml:"display_timezone"`
	RulesFile        string        `mapstructure:"rules_file" yaml:"rules_file,omitempty"`
	HistoryDB        string        `mapstructure:"history_db" yaml:"history_db"`
	NoHistory        bool          `mapstructure:"no_history" yaml:"no_history"`
	CollectorTimeout time.Duration `mapstructure:"collector_timeout" yaml:"collector_timeout"`
}

// Location returns the display timezone. Unknown names fall back to
// time.Local; Validate reports them beforehand.
func (c Config) Location() *time.Location {
	if c.DisplayTimezone == "" || c.DisplayTimezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix("SYSMAINT")
	viper.AutomaticEnv()

	for key, value := range Defaults() {
		viper.SetDefault(key, value)
	}
}

// Defaults returns the built-in value for every key.
func Defaults() map[string]any {
	return map[string]any{
		KeySkipUpdate:       false,
		KeySkipSMART:        false,
		KeySkipIntegrity:    false,
		KeySyslogPath:       paths.DefaultSyslogPath,
		KeyLogLines:         DefaultLogLines,
		KeyReportFile:       paths.DefaultReportPath(),
		KeyLogFile:          paths.DefaultLogPath(),
		KeyDisplayTimezone:  "Local",
		KeyRulesFile:        "",
		KeyHistoryDB:        paths.DefaultHistoryPath(),
		KeyNoHistory:        false,
		KeyCollectorTimeout: time.Duration(0),
	}
}

// Load reads the configuration file and returns the merged configuration.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and a
// missing file means defaults apply.
func Load(path string) (Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return Config{}, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration built from Defaults alone.
func Default() Config {
	return Config{
		SyslogPath:      paths.DefaultSyslogPath,
		LogLines:        DefaultLogLines,
		ReportFile:      paths.DefaultReportPath(),
		LogFile:         paths.DefaultLogPath(),
		DisplayTimezone: "Local",
		HistoryDB:       paths.DefaultHistoryPath(),
	}
}
