package classify

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Severity ranks how much attention a classified log entry needs.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

// ErrUnknownSeverity is returned when a severity name does not parse.
var ErrUnknownSeverity = errors.New("unknown severity")

// Severities lists every severity from least to most severe.
var Severities = []Severity{Low, Medium, High}

func (s Severity) String() string {
	switch s {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return "unknown"
	}
}

// Label is the capitalized display name.
func (s Severity) Label() string {
	switch s {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	default:
		return "Unknown"
	}
}

// Color is the CSS color used for the severity in reports.
func (s Severity) Color() string {
	switch s {
	case Medium:
		return "orange"
	case High:
		return "red"
	default:
		return "blue"
	}
}

// ParseSeverity converts "low", "medium" or "high" (any case) to a Severity.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Low, errors.Wrapf(ErrUnknownSeverity, "%q", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both the YAML and TOML
// decoders use it for rule files.
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
