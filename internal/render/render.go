// Package render turns raw collector artifacts into HTML fragments for the
// report. Every function is total: malformed or missing input produces an
// explanatory placeholder, never an error.
package render

import (
	"bytes"
	"html/template"
	"log/slog"
)

// Placeholder texts. Tests and the report compiler match on them.
const (
	DiskUnavailable       = "Disk usage information not available."
	MemoryUnavailable     = "Memory information not available."
	CPUUnparsable         = "Could not parse CPU load."
	SMARTSkipped          = "SMART checks skipped."
	SMARTNoDevices        = "No SMART-capable disks found."
	IntegritySkipped      = "Package integrity check skipped."
	IntegrityClean        = "No package integrity issues found."
	NoRecentErrors        = "No recent errors found."
	SystemInfoUnavailable = "System information not available."
)

var templates = template.Must(template.New("render").Parse(fragments))

// execute renders the named fragment. The templates are fixed and their
// data types are controlled here, so a failure is a programming error; it
// is logged and degrades to an empty fragment rather than aborting the
// report.
func execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering fragment", "template", name, "error", err)
		return ""
	}
	return template.HTML(buf.String())
}

// Notice renders a short explanatory paragraph.
func Notice(text string) template.HTML {
	return execute("notice", text)
}

// Skipped renders the fixed notice for a check disabled by configuration.
func Skipped(text string) template.HTML {
	return execute("skipped", text)
}

// Unavailable renders the notice for a collector that failed. The error is
// shown so the operator can tell a missing tool from a failing one.
func Unavailable(what string, err error) template.HTML {
	data := struct {
		What string
		Err  string
	}{What: what}
	if err != nil {
		data.Err = err.Error()
	}
	return execute("unavailable", data)
}

// Preformatted renders text verbatim in a <pre> block.
func Preformatted(text string) template.HTML {
	return execute("pre", text)
}
