package validator

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestSeverity_String(t *testing.T) {
	tests := []struct {
		s    Severity
		want string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{Severity(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIssue_Error(t *testing.T) {
	tests := []struct {
		name string
		i    Issue
		want string
	}{
		{
			name: "entry with name, field and value",
			i:    Issue{Severity: SeverityError, Index: 2, Name: "nginx", Field: "regex", Message: "does not compile", Value: "("},
			want: `error: rules[2] "nginx".regex: does not compile (got ()`,
		},
		{
			name: "entry without name",
			i:    Issue{Severity: SeverityError, Index: 0, Field: "name", Message: "is required"},
			want: "error: rules[0].name: is required",
		},
		{
			name: "whole input",
			i:    Issue{Severity: SeverityWarning, Index: -1, Message: "no rules defined"},
			want: "warning: no rules defined",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.i.Error(); got != tt.want {
				t.Errorf("Issue.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult(t *testing.T) {
	var nilResult *Result
	if nilResult.HasErrors() {
		t.Error("nil Result should not have errors")
	}

	r := &Result{Source: "rules.yaml"}
	if err := r.Err(); err != nil {
		t.Errorf("empty Result.Err() = %v, want nil", err)
	}

	r.AddWarning(1, "dup", "name", "duplicates an earlier rule", nil)
	if r.HasErrors() {
		t.Error("warnings alone should not count as errors")
	}
	if len(r.Warnings()) != 1 {
		t.Errorf("Warnings() = %d, want 1", len(r.Warnings()))
	}

	r.AddError(0, "", "severity", "must be low, medium or high", "urgent")
	if !r.HasErrors() {
		t.Fatal("HasErrors() = false after AddError")
	}

	err := r.Err()
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Err() = %v, want ErrInvalid mark", err)
	}
	for _, want := range []string{"rules.yaml", "rules[0].severity", "urgent"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Err() = %q, missing %q", err.Error(), want)
		}
	}
}
