package validator

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalid marks errors produced by Result.Err.
var ErrInvalid = errors.New("validation failed")

// Severity represents the impact of a validation issue.
type Severity int

const (
	// SeverityError makes the input unusable.
	SeverityError Severity = iota
	// SeverityWarning is reported but does not block loading.
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON reports carry the
// severity name rather than its ordinal.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Issue is one problem with one entry of the input.
type Issue struct {
	Severity Severity `json:"severity"`
	// Index is the zero-based position of the offending entry, or -1 when
	// the issue concerns the input as a whole.
	Index int `json:"index"`
	// Name identifies the entry when it has one.
	Name    string `json:"name,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// Location renders the entry and field the issue refers to, such as
// `rules[3] "nginx".regex`.
func (i Issue) Location() string {
	var sb strings.Builder
	if i.Index >= 0 {
		fmt.Fprintf(&sb, "rules[%d]", i.Index)
		if i.Name != "" {
			fmt.Fprintf(&sb, " %q", i.Name)
		}
	}
	if i.Field != "" {
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(i.Field)
	}
	return sb.String()
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if loc := i.Location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)
	if i.Value != nil {
		fmt.Fprintf(&sb, " (got %v)", i.Value)
	}
	return sb.String()
}

// Result aggregates the issues found in one input.
type Result struct {
	// Source names the input, usually a file path.
	Source string  `json:"source,omitempty"`
	Issues []Issue `json:"issues"`
}

// AddError records a blocking issue for the entry at index.
func (r *Result) AddError(index int, name, field, message string, value any) {
	r.add(SeverityError, index, name, field, message, value)
}

// AddWarning records a non-blocking issue for the entry at index.
func (r *Result) AddWarning(index int, name, field, message string, value any) {
	r.add(SeverityWarning, index, name, field, message, value)
}

func (r *Result) add(sev Severity, index int, name, field, message string, value any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Index:    index,
		Name:     name,
		Field:    field,
		Message:  message,
		Value:    value,
	})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	return len(r.Errors()) > 0
}

// Errors returns the issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns the issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(sev Severity) []Issue {
	if r == nil {
		return nil
	}
	var res []Issue
	for _, i := range r.Issues {
		if i.Severity == sev {
			res = append(res, i)
		}
	}
	return res
}

// Err returns nil when the result has no errors. Otherwise it returns an
// error marked with ErrInvalid whose message lists every error issue.
func (r *Result) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	err := errors.Newf("%d problem(s): %s", len(errs), strings.Join(msgs, "; "))
	if r.Source != "" {
		err = errors.Wrapf(err, "validating %s", r.Source)
	}
	return errors.Mark(err, ErrInvalid)
}
