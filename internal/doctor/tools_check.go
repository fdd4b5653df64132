package doctor

import (
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/thoreinstein/sysmaint/internal/config"
)

// Tool is an external program a collector runs.
type Tool struct {
	Name    string
	Package string
	// Step is the report step that needs the tool.
	Step string
	// Skipped is true when configuration disables Step.
	Skipped bool
}

// Tools returns the programs the collectors need under cfg.
func Tools(cfg config.Config) []Tool {
	return []Tool{
		{Name: "apt-get", Package: "apt", Step: "update", Skipped: cfg.SkipUpdate},
		{Name: "df", Package: "coreutils", Step: "disk usage"},
		{Name: "free", Package: "procps", Step: "memory usage"},
		{Name: "top", Package: "procps", Step: "cpu load"},
		{Name: "lsblk", Package: "util-linux", Step: "smart", Skipped: cfg.SkipSMART},
		{Name: "smartctl", Package: "smartmontools", Step: "smart", Skipped: cfg.SkipSMART},
		{Name: "debsums", Package: "debsums", Step: "integrity", Skipped: cfg.SkipIntegrity},
		{Name: "dpkg", Package: "dpkg", Step: "integrity", Skipped: cfg.SkipIntegrity},
	}
}

// ToolsCheck verifies that every tool a run needs is on PATH.
type ToolsCheck struct {
	tools    []Tool
	lookPath func(string) (string, error)
}

var _ Check = (*ToolsCheck)(nil)

// NewToolsCheck creates a check for the tools cfg needs.
func NewToolsCheck(cfg config.Config) *ToolsCheck {
	return &ToolsCheck{tools: Tools(cfg), lookPath: exec.LookPath}
}

// Name returns the unique identifier for this check.
func (c *ToolsCheck) Name() string {
	return "required-tools"
}

// Category returns the grouping for this check.
func (c *ToolsCheck) Category() string {
	return "host"
}

// Run looks up every tool. A missing tool is a warning: the run still
// produces a report with that section marked unavailable.
func (c *ToolsCheck) Run() *CheckResult {
	found := make(map[string]any)
	var missing, packages []string
	skipped := 0

	for _, t := range c.tools {
		if t.Skipped {
			skipped++
			continue
		}
		path, err := c.lookPath(t.Name)
		if err != nil {
			missing = append(missing, t.Name)
			if !slices.Contains(packages, t.Package) {
				packages = append(packages, t.Package)
			}
			continue
		}
		found[t.Name] = path
	}

	details := map[string]any{
		"found":   found,
		"skipped": skipped,
	}

	if len(missing) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("all %d tools found", len(found)),
			Details:  details,
		}
	}

	details["missing"] = missing
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityWarning,
		Message:  "missing on PATH: " + strings.Join(missing, ", "),
		Details:  details,
		FixHint:  "apt-get install " + strings.Join(packages, " "),
	}
}
