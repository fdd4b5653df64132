// Package logentry parses filtered system log lines into structured entries.
//
// Lines are expected in the RFC 3339 syslog layout written by rsyslog's
// default template on current Debian and Ubuntu releases:
//
//	2024-12-06T10:51:23.482113+01:00 host1 systemd[1]: Failed to start foo.service
//
// Parsing never fails on content shape. A timestamp that does not parse is
// kept verbatim for display, and short lines degrade to a message-only entry.
package logentry

import (
	"time"

	"github.com/cockroachdb/errors"
)

// ErrEmptyLine is returned for blank input. Callers normally skip blank lines
// before parsing; ParseAll does.
var ErrEmptyLine = errors.New("empty log line")

// DisplayLayout is the format timestamps are rendered in after conversion.
const DisplayLayout = "2006-01-02 15:04:05 MST"

// Span is a half-open byte range [Start, End) into Entry.Raw.
type Span struct {
	Start int
	End   int
}

// Entry is one parsed log line.
type Entry struct {
	// Timestamp is the parsed time; zero when TimeParsed is false.
	Timestamp time.Time
	// TimestampRaw is the first token of the line, verbatim.
	TimestampRaw string
	// TimeParsed reports whether TimestampRaw converted to Timestamp.
	TimeParsed bool

	Host    string
	Process string
	Message string

	// Raw is the original line with the trailing newline removed.
	Raw string
	// MessageOffset is the byte offset of Message within Raw.
	MessageOffset int
	// Highlights marks every case-insensitive occurrence of the error
	// keywords in Raw, in order.
	Highlights []Span
}

// DisplayTime renders the timestamp in loc, or the raw token when the
// timestamp could not be parsed. A nil loc means time.Local.
func (e Entry) DisplayTime(loc *time.Location) string {
	if !e.TimeParsed {
		return e.TimestampRaw
	}
	if loc == nil {
		loc = time.Local
	}
	return e.Timestamp.In(loc).Format(DisplayLayout)
}

// MessageHighlights returns the highlight spans that fall inside Message,
// rebased to offsets within Message.
func (e Entry) MessageHighlights() []Span {
	start, end := e.MessageOffset, e.MessageOffset+len(e.Message)
	var out []Span
	for _, h := range e.Highlights {
		if h.Start < start || h.End > end {
			continue
		}
		out = append(out, Span{Start: h.Start - start, End: h.End - start})
	}
	return out
}
