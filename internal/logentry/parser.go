package logentry

import (
	"bufio"
	"strings"
	"time"
	"unicode"
)

// Keywords are the tokens the upstream filter selects on. They are
// highlighted wherever they occur, including inside longer words
// ("Failed", "errors").
var Keywords = []string{"error", "fail", "critical"}

// timestampLayouts are tried in order. RFC3339 accepts fractional seconds
// on input, so the nano layout only covers the space-less variants.
var timestampLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999Z0700",
	"2006-01-02T15:04:05Z0700",
}

// Parse turns one raw log line into an Entry. It returns ErrEmptyLine for
// blank input and never fails otherwise.
func Parse(line string) (Entry, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return Entry{}, ErrEmptyLine
	}

	e := Entry{
		Raw:        line,
		Highlights: FindKeywords(line),
	}

	tsStart, tsEnd := nextField(line, 0)
	e.TimestampRaw = line[tsStart:tsEnd]
	e.Timestamp, e.TimeParsed = parseTimestamp(e.TimestampRaw)

	hostStart, hostEnd := nextField(line, tsEnd)
	restStart, _ := nextField(line, hostEnd)
	if hostStart == hostEnd || restStart == len(line) {
		// Fewer than three tokens: keep the whole line as the message.
		trimmedStart, _ := nextField(line, 0)
		e.Message = strings.TrimRightFunc(line[trimmedStart:], unicode.IsSpace)
		e.MessageOffset = trimmedStart
		return e, nil
	}

	e.Host = line[hostStart:hostEnd]

	rest := line[restStart:]
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		e.Process = strings.TrimRightFunc(rest, unicode.IsSpace)
		e.MessageOffset = len(line)
		return e, nil
	}

	e.Process = rest[:colon]
	msgStart := restStart + colon + 1
	if msgStart < len(line) && line[msgStart] == ' ' {
		msgStart++
	}
	e.Message = line[msgStart:]
	e.MessageOffset = msgStart
	return e, nil
}

// ParseAll parses every non-blank line of text in order.
func ParseAll(text string) []Entry {
	var entries []Entry
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		e, err := Parse(sc.Text())
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// FindKeywords returns the spans of every case-insensitive keyword
// occurrence in s, ordered by position. Overlapping matches cannot occur
// because no keyword is a substring of another. Only ASCII letters are
// folded, so spans are byte offsets into s itself.
func FindKeywords(s string) []Span {
	var spans []Span
	for i := 0; i < len(s); {
		matched := false
		for _, kw := range Keywords {
			if hasPrefixFold(s[i:], kw) {
				spans = append(spans, Span{Start: i, End: i + len(kw)})
				i += len(kw)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return spans
}

// hasPrefixFold reports whether s starts with the lowercase ASCII word kw,
// ignoring the case of ASCII letters in s.
func hasPrefixFold(s, kw string) bool {
	if len(s) < len(kw) {
		return false
	}
	for j := 0; j < len(kw); j++ {
		c := s[j]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != kw[j] {
			return false
		}
	}
	return true
}

// ContainsKeyword reports whether s contains any keyword, ignoring case.
func ContainsKeyword(s string) bool {
	lower := strings.ToLower(s)
	for _, kw := range Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func parseTimestamp(token string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// nextField returns the bounds of the next whitespace-delimited field at or
// after from. Both bounds equal len(s) when no field remains.
func nextField(s string, from int) (int, int) {
	start := from
	for start < len(s) && isSpace(s[start]) {
		start++
	}
	end := start
	for end < len(s) && !isSpace(s[end]) {
		end++
	}
	return start, end
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
