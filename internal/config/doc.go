// Package config provides configuration management for sysmaint using Viper.
//
// Configuration is resolved once at startup from, in increasing precedence:
// built-in defaults, the config file, SYSMAINT_* environment variables and
// command-line flags bound with viper.BindPFlag. [Load] turns the merged
// view into an immutable [Config] value that is passed explicitly to every
// component; nothing reads viper after that point.
//
// # Configuration File
//
// The file is config.yaml, searched in the current directory and then in
// $XDG_CONFIG_HOME/sysmaint:
//
//	skip_update: false
//	skip_smart: false
//	skip_integrity: true
//	syslog_path: /var/log/syslog
//	log_lines: 50
//	report_file: /srv/reports/host.html
//	log_file: /var/log/sysmaint.log
//	display_timezone: Europe/Berlin
//	rules_file: /etc/sysmaint/rules.toml
//	history_db: /var/lib/sysmaint/history.db
//	no_history: false
//	collector_timeout: 10m
//
// # Validation
//
// [Validate] returns every problem at once so the user can fix them in one
// pass:
//
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
package config
