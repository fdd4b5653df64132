package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/sysmaint/internal/config"
)

// OutputPathCheck verifies that the directories sysmaint writes into exist
// and are writable.
type OutputPathCheck struct {
	PermissionFixer

	targets []outputTarget
}

var (
	_ Check = (*OutputPathCheck)(nil)
	_ Fixer = (*OutputPathCheck)(nil)
)

type outputTarget struct {
	field string
	path  string
}

// NewOutputPathCheck creates a check over the report, log and history
// locations of cfg.
func NewOutputPathCheck(cfg config.Config) *OutputPathCheck {
	targets := []outputTarget{
		{config.KeyReportFile, cfg.ReportFile},
		{config.KeyLogFile, cfg.LogFile},
	}
	if !cfg.NoHistory {
		targets = append(targets, outputTarget{config.KeyHistoryDB, cfg.HistoryDB})
	}
	return &OutputPathCheck{targets: targets}
}

// Name returns the unique identifier for this check.
func (c *OutputPathCheck) Name() string {
	return "output-paths"
}

// Category returns the grouping for this check.
func (c *OutputPathCheck) Category() string {
	return "paths"
}

// Run checks the parent directory of every output file.
func (c *OutputPathCheck) Run() *CheckResult {
	var issues []pathIssue
	checked := 0
	seen := make(map[string]bool)

	for _, t := range c.targets {
		if t.path == "" {
			continue
		}
		dir := filepath.Dir(filepath.Clean(t.path))
		if seen[dir] {
			continue
		}
		seen[dir] = true
		checked++
		issues = append(issues, c.checkDirectory(dir, t.field)...)
	}

	c.setIssues(issues)
	return c.buildResult(issues, checked)
}

// pathIssue represents a single path problem.
type pathIssue struct {
	Path        string
	Field       string
	Problem     string
	Severity    Severity
	Permissions string // octal representation if available
	Fixable     bool
	FixHint     string
}

// checkDirectory validates an output directory.
func (c *OutputPathCheck) checkDirectory(path, field string) []pathIssue {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		// Created on first run when the parent is writable.
		return []pathIssue{{
			Path:     path,
			Field:    field,
			Problem:  "directory does not exist",
			Severity: SeverityWarning,
			Fixable:  true,
			FixHint:  "sysmaint doctor --fix",
		}}
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Field:    field,
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}

	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Field:    field,
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}
	}

	if writable, err := isDirectoryWritable(path); err != nil || !writable {
		return []pathIssue{{
			Path:        path,
			Field:       field,
			Problem:     "directory is not writable",
			Severity:    SeverityError,
			Permissions: formatPermissions(info.Mode()),
			FixHint:     "choose another " + field + " or run as a user that can write " + path,
		}}
	}

	return nil
}

// isDirectoryWritable tests if a directory is writable by creating a temp file.
func isDirectoryWritable(path string) (bool, error) {
	tmpFile, err := os.CreateTemp(path, ".sysmaint-doctor-*")
	if err != nil {
		return false, err
	}

	tmpPath := tmpFile.Name()
	tmpFile.Close()
	os.Remove(tmpPath)

	return true, nil
}

// buildResult constructs the final CheckResult from accumulated issues.
func (c *OutputPathCheck) buildResult(issues []pathIssue, checked int) *CheckResult {
	if len(issues) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d output directories are writable", checked),
		}
	}

	highestSeverity := SeverityPass
	for _, issue := range issues {
		if issue.Severity > highestSeverity {
			highestSeverity = issue.Severity
		}
	}

	details := make(map[string]any)
	details["checked_paths"] = checked
	details["issue_count"] = len(issues)

	issueDetails := make([]map[string]any, 0, len(issues))
	for _, issue := range issues {
		issueMap := map[string]any{
			"path":     issue.Path,
			"field":    issue.Field,
			"problem":  issue.Problem,
			"severity": issue.Severity.String(),
		}
		if issue.Permissions != "" {
			issueMap["permissions"] = issue.Permissions
		}
		if issue.FixHint != "" {
			issueMap["fix_hint"] = issue.FixHint
		}
		issueDetails = append(issueDetails, issueMap)
	}
	details["issues"] = issueDetails

	fixable := false
	var fixHints []string
	for _, issue := range issues {
		if issue.Fixable {
			fixable = true
		}
		if issue.FixHint != "" && !slices.Contains(fixHints, issue.FixHint) {
			fixHints = append(fixHints, issue.FixHint)
		}
	}

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   highestSeverity,
		Message:  fmt.Sprintf("found %d issue(s) across %d output directories", len(issues), checked),
		Details:  details,
		Fixable:  fixable,
	}

	if len(fixHints) > 0 {
		result.FixHint = strings.Join(fixHints, "; ")
	}

	return result
}

// formatPermissions returns a human-readable permission string (e.g., "0644").
func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}
