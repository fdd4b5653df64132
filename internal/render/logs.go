package render

import (
	"html/template"
	"time"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/logentry"
)

type segment struct {
	Text string
	Mark bool
}

type logRow struct {
	Time        string
	Host        string
	Process     string
	Message     []segment
	Label       string
	Color       string
	Explanation string
}

type severityCount struct {
	Label string
	Color string
	Count int
}

// LogTable classifies entries with c and renders them as a table, most
// severe counts first in the summary line. No entries renders the
// NoRecentErrors notice and no table.
func LogTable(entries []logentry.Entry, c *classify.Classifier, loc *time.Location) template.HTML {
	findings, counts := c.ClassifyEntries(entries)
	return Findings(findings, counts, loc)
}

// Findings renders already classified entries.
func Findings(findings []classify.Finding, counts classify.Counts, loc *time.Location) template.HTML {
	if len(findings) == 0 {
		return Notice(NoRecentErrors)
	}

	rows := make([]logRow, len(findings))
	for i, f := range findings {
		rows[i] = logRow{
			Time:        f.DisplayTime(loc),
			Host:        f.Host,
			Process:     f.Process,
			Message:     highlight(f.Message, f.MessageHighlights()),
			Label:       f.Severity.Label(),
			Color:       f.Severity.Color(),
			Explanation: f.Explanation,
		}
	}

	var summary []severityCount
	for i := len(classify.Severities) - 1; i >= 0; i-- {
		sev := classify.Severities[i]
		if n := counts[sev]; n > 0 {
			summary = append(summary, severityCount{Label: sev.Label(), Color: sev.Color(), Count: n})
		}
	}

	return execute("logtable", struct {
		Total  int
		Counts []severityCount
		Rows   []logRow
	}{Total: len(findings), Counts: summary, Rows: rows})
}

// highlight splits s into plain and marked segments. Spans must be ordered,
// non-overlapping and within s; anything else is ignored.
func highlight(s string, spans []logentry.Span) []segment {
	var out []segment
	pos := 0
	for _, sp := range spans {
		if sp.Start < pos || sp.End > len(s) || sp.Start >= sp.End {
			continue
		}
		if sp.Start > pos {
			out = append(out, segment{Text: s[pos:sp.Start]})
		}
		out = append(out, segment{Text: s[sp.Start:sp.End], Mark: true})
		pos = sp.End
	}
	if pos < len(s) {
		out = append(out, segment{Text: s[pos:]})
	}
	return out
}
