package doctor

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/config"
)

// SyslogCheck verifies the configured syslog can be opened for reading.
type SyslogCheck struct {
	path string
}

var _ Check = (*SyslogCheck)(nil)

// NewSyslogCheck creates a check for cfg.SyslogPath.
func NewSyslogCheck(cfg config.Config) *SyslogCheck {
	return &SyslogCheck{path: cfg.SyslogPath}
}

// Name returns the unique identifier for this check.
func (c *SyslogCheck) Name() string {
	return "syslog"
}

// Category returns the grouping for this check.
func (c *SyslogCheck) Category() string {
	return "inputs"
}

// Run opens the syslog. An unreadable log still allows a run; the
// System Errors section is then marked unavailable.
func (c *SyslogCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	f, err := os.Open(c.path)
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot read %s: %v", c.path, err)
		switch {
		case os.IsNotExist(err):
			result.FixHint = "set syslog_path to the file rsyslog writes, or install rsyslog"
		case os.IsPermission(err):
			result.FixHint = "re-run with sudo"
		}
		return result
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("cannot stat %s: %v", c.path, err)
		return result
	}
	if info.IsDir() {
		result.Status = SeverityError
		result.Message = c.path + " is a directory"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%s readable (%s)", c.path, humanize.IBytes(uint64(info.Size())))
	result.Details["size"] = info.Size()
	return result
}

// RulesCheck verifies the built-in rule table and any operator override
// load without error.
type RulesCheck struct {
	rulesFile string
}

var _ Check = (*RulesCheck)(nil)

// NewRulesCheck creates a check for the rule table cfg selects.
func NewRulesCheck(cfg config.Config) *RulesCheck {
	return &RulesCheck{rulesFile: cfg.RulesFile}
}

// Name returns the unique identifier for this check.
func (c *RulesCheck) Name() string {
	return "rules"
}

// Category returns the grouping for this check.
func (c *RulesCheck) Category() string {
	return "inputs"
}

// Run loads the classifier the run would use. Validation warnings on an
// override file are reported without failing the check.
func (c *RulesCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  make(map[string]any),
	}

	cl, err := classify.Load(c.rulesFile)
	if err != nil {
		result.Status = SeverityError
		result.Message = err.Error()
		if c.rulesFile != "" {
			result.FixHint = "sysmaint rules check " + c.rulesFile
		}
		return result
	}

	result.Details["rule_count"] = len(cl.Rules())
	result.Details["fallback"] = cl.Fallback().Name
	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d rules loaded", len(cl.Rules()))

	if c.rulesFile == "" {
		return result
	}
	result.Details["rules_file"] = c.rulesFile

	set, err := classify.ReadRulesFile(c.rulesFile)
	if err != nil {
		return result
	}
	if warnings := classify.Validate(c.rulesFile, set.Rules).Warnings(); len(warnings) > 0 {
		msgs := make([]string, 0, len(warnings))
		for _, w := range warnings {
			msgs = append(msgs, w.Error())
		}
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("%d rules loaded with %d warning(s)", len(cl.Rules()), len(warnings))
		result.Details["warnings"] = msgs
		result.FixHint = "sysmaint rules check " + c.rulesFile
	}
	return result
}
