package logentry

import (
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		wantHost    string
		wantProcess string
		wantMessage string
		wantParsed  bool
		wantTSRaw   string
	}{
		{
			name:        "systemd failure",
			line:        "2024-12-06T10:51:23Z host1 systemd[1]: Failed to start foo.service",
			wantHost:    "host1",
			wantProcess: "systemd[1]",
			wantMessage: "Failed to start foo.service",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23Z",
		},
		{
			name:        "fractional seconds with offset",
			line:        "2024-12-06T10:51:23.482113+01:00 web kernel: ata1: COMRESET failed (errno=-16)",
			wantHost:    "web",
			wantProcess: "kernel",
			wantMessage: "ata1: COMRESET failed (errno=-16)",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23.482113+01:00",
		},
		{
			name:        "unparsable timestamp kept raw",
			line:        "yesterday host1 cron[22]: error",
			wantHost:    "host1",
			wantProcess: "cron[22]",
			wantMessage: "error",
			wantParsed:  false,
			wantTSRaw:   "yesterday",
		},
		{
			name:        "no colon",
			line:        "2024-12-06T10:51:23Z host1 something failed badly",
			wantHost:    "host1",
			wantProcess: "something failed badly",
			wantMessage: "",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23Z",
		},
		{
			name:        "no colon trailing whitespace",
			line:        "2024-12-06T10:51:23Z host1 watchdog failed \t ",
			wantHost:    "host1",
			wantProcess: "watchdog failed",
			wantMessage: "",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23Z",
		},
		{
			name:        "two tokens",
			line:        "  2024-12-06T10:51:23Z failure  ",
			wantHost:    "",
			wantProcess: "",
			wantMessage: "2024-12-06T10:51:23Z failure",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23Z",
		},
		{
			name:        "single token",
			line:        "critical",
			wantMessage: "critical",
			wantTSRaw:   "critical",
		},
		{
			name:        "trailing newline stripped",
			line:        "2024-12-06T10:51:23Z h nginx: error opening log\r\n",
			wantHost:    "h",
			wantProcess: "nginx",
			wantMessage: "error opening log",
			wantParsed:  true,
			wantTSRaw:   "2024-12-06T10:51:23Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got.Host != tt.wantHost {
				t.Errorf("Host = %q, want %q", got.Host, tt.wantHost)
			}
			if got.Process != tt.wantProcess {
				t.Errorf("Process = %q, want %q", got.Process, tt.wantProcess)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.TimeParsed != tt.wantParsed {
				t.Errorf("TimeParsed = %v, want %v", got.TimeParsed, tt.wantParsed)
			}
			if got.TimestampRaw != tt.wantTSRaw {
				t.Errorf("TimestampRaw = %q, want %q", got.TimestampRaw, tt.wantTSRaw)
			}
			if got.Message != "" && got.Raw[got.MessageOffset:got.MessageOffset+len(got.Message)] != got.Message {
				t.Errorf("MessageOffset %d does not locate message in raw line", got.MessageOffset)
			}
		})
	}
}

func TestParse_Timestamp(t *testing.T) {
	e, err := Parse("2024-12-06T10:51:23Z host1 systemd[1]: Failed to start foo.service")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2024, 12, 6, 10, 51, 23, 0, time.UTC)
	if !e.Timestamp.Equal(want) {
		t.Errorf("Timestamp = %v, want %v", e.Timestamp, want)
	}
}

func TestParse_Empty(t *testing.T) {
	for _, line := range []string{"", "   ", "\t\n", "\r\n"} {
		_, err := Parse(line)
		if !errors.Is(err, ErrEmptyLine) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyLine", line, err)
		}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	lines := []string{
		"2024-12-06T10:51:23Z host1 systemd[1]: Failed to start foo.service",
		"2024-12-06T10:51:23Z host1 kernel: EXT4-fs error (device sda1): bad block: 12",
		"2024-12-06T10:51:23Z host1 mysqld[812]: [ERROR] InnoDB: Unable to lock ./ibdata1",
		"bogus-time host1 dockerd[3]: level=error msg=\"failed\"",
	}
	for _, line := range lines {
		e, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", line, err)
		}
		if e.Message == "" {
			t.Fatalf("Parse(%q) produced empty message", line)
		}
		rebuilt := e.Process + ": " + e.Message
		if !strings.HasSuffix(line, rebuilt) {
			t.Errorf("round trip %q is not a suffix of %q", rebuilt, line)
		}

		again, _ := Parse(line)
		if again.Process != e.Process || again.Message != e.Message {
			t.Errorf("Parse(%q) not deterministic", line)
		}
	}
}

func TestParseAll(t *testing.T) {
	text := "2024-12-06T10:51:23Z a kernel: fail one\n\n   \n2024-12-06T10:52:00Z b cron[1]: error two\n"
	entries := ParseAll(text)
	if len(entries) != 2 {
		t.Fatalf("ParseAll() returned %d entries, want 2", len(entries))
	}
	if entries[0].Host != "a" || entries[1].Host != "b" {
		t.Errorf("ParseAll() hosts = %q, %q; want a, b", entries[0].Host, entries[1].Host)
	}
	if got := ParseAll(""); len(got) != 0 {
		t.Errorf("ParseAll(\"\") = %v, want none", got)
	}
}

func TestFindKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []Span
	}{
		{"nothing here", nil},
		{"Failed", []Span{{0, 4}}},
		{"ERROR: critical fail", []Span{{0, 5}, {7, 15}, {16, 20}}},
		{"errors failing", []Span{{0, 5}, {7, 11}}},
		// The Kelvin sign lowercases to a one-byte k.
		{"\u212a\u212a disk error", []Span{{12, 17}}},
		// Invalid UTF-8 lowercases to a three-byte replacement rune.
		{"\xff\xff\xff disk error", []Span{{9, 14}}},
	}
	for _, tt := range tests {
		got := FindKeywords(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("FindKeywords(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FindKeywords(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParse_HighlightsNonASCII(t *testing.T) {
	for _, prefix := range []string{"\u212a\u212a\u212a\u212a", "\xff\xff\xff"} {
		e, err := Parse("2024-12-06T10:51:23Z host1 app: " + prefix + " disk error here")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if len(e.Highlights) != 1 {
			t.Fatalf("Highlights = %v, want one span", e.Highlights)
		}
		h := e.Highlights[0]
		if got := e.Raw[h.Start:h.End]; got != "error" {
			t.Errorf("highlighted %q, want %q", got, "error")
		}
	}
}

func TestContainsKeyword(t *testing.T) {
	if !ContainsKeyword("Job FAILED") {
		t.Error("ContainsKeyword(\"Job FAILED\") = false")
	}
	if ContainsKeyword("all good") {
		t.Error("ContainsKeyword(\"all good\") = true")
	}
}

func TestEntry_DisplayTime(t *testing.T) {
	e, _ := Parse("2024-12-06T10:51:23Z host1 systemd[1]: Failed")
	if got := e.DisplayTime(time.UTC); got != "2024-12-06 10:51:23 UTC" {
		t.Errorf("DisplayTime(UTC) = %q", got)
	}

	loc := time.FixedZone("CET", 3600)
	if got := e.DisplayTime(loc); got != "2024-12-06 11:51:23 CET" {
		t.Errorf("DisplayTime(CET) = %q", got)
	}

	raw, _ := Parse("yesterday host1 systemd[1]: Failed")
	if got := raw.DisplayTime(time.UTC); got != "yesterday" {
		t.Errorf("DisplayTime() for unparsable timestamp = %q, want raw token", got)
	}
}

func TestEntry_MessageHighlights(t *testing.T) {
	e, _ := Parse("2024-12-06T10:51:23Z failhost nginx: critical error")
	got := e.MessageHighlights()
	want := []Span{{0, 8}, {9, 14}}
	if len(got) != len(want) {
		t.Fatalf("MessageHighlights() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MessageHighlights()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
