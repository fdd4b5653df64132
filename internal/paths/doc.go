// Package paths resolves the default locations sysmaint reads and writes.
//
// The package wraps github.com/adrg/xdg for XDG Base Directory compliance.
// When sysmaint runs as root the XDG homes resolve under /root, which keeps
// the report, the run log and the history database out of shared system
// directories unless the operator configures otherwise.
//
//	| Artifact        | Default                                   |
//	|-----------------|-------------------------------------------|
//	| config file     | $XDG_CONFIG_HOME/sysmaint/config.yaml     |
//	| report          | $XDG_DATA_HOME/sysmaint/report.html       |
//	| run log         | $XDG_STATE_HOME/sysmaint/sysmaint.log     |
//	| history db      | $XDG_STATE_HOME/sysmaint/history.db       |
//	| system log read | /var/log/syslog                           |
package paths
