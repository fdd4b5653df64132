package doctor

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/host"
	"golang.org/x/sys/unix"
)

// PrivilegeCheck verifies the process runs with an effective UID of 0,
// which the run command requires.
type PrivilegeCheck struct {
	euid func() int
}

var _ Check = (*PrivilegeCheck)(nil)

// NewPrivilegeCheck creates a privilege check against the current process.
func NewPrivilegeCheck() *PrivilegeCheck {
	return &PrivilegeCheck{euid: unix.Geteuid}
}

// Name returns the unique identifier for this check.
func (c *PrivilegeCheck) Name() string {
	return "privilege"
}

// Category returns the grouping for this check.
func (c *PrivilegeCheck) Category() string {
	return "host"
}

// Run reports an error for non-root users.
func (c *PrivilegeCheck) Run() *CheckResult {
	uid := c.euid()
	if uid == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  "running as root",
		}
	}
	return &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Status:   SeverityError,
		Message:  fmt.Sprintf("effective uid is %d; sysmaint run requires root", uid),
		Details:  map[string]any{"euid": uid},
		FixHint:  "re-run with sudo",
	}
}

// HostCheck verifies the host is a Linux system with the Debian package
// tooling the collectors drive.
type HostCheck struct {
	ctx  context.Context
	info func(context.Context) (*host.InfoStat, error)
}

var _ Check = (*HostCheck)(nil)

// NewHostCheck creates a host platform check.
func NewHostCheck(ctx context.Context) *HostCheck {
	return &HostCheck{ctx: ctx, info: host.InfoWithContext}
}

// Name returns the unique identifier for this check.
func (c *HostCheck) Name() string {
	return "host-platform"
}

// Category returns the grouping for this check.
func (c *HostCheck) Category() string {
	return "host"
}

// Run inspects the operating system and platform family.
func (c *HostCheck) Run() *CheckResult {
	info, err := c.info(c.ctx)
	if err != nil {
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("cannot read host information: %v", err),
		}
	}

	details := map[string]any{
		"os":               info.OS,
		"platform":         info.Platform,
		"platform_family":  info.PlatformFamily,
		"platform_version": info.PlatformVersion,
		"kernel_version":   info.KernelVersion,
	}

	switch {
	case info.OS != "linux":
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityError,
			Message:  fmt.Sprintf("unsupported operating system %q", info.OS),
			Details:  details,
		}
	case info.PlatformFamily != "debian":
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityWarning,
			Message:  fmt.Sprintf("%s is not Debian-based; update and integrity steps will fail", info.Platform),
			Details:  details,
			FixHint:  "use --skip-update and --skip-integrity",
		}
	default:
		return &CheckResult{
			Name:     c.Name(),
			Category: c.Category(),
			Status:   SeverityPass,
			Message:  fmt.Sprintf("%s %s", info.Platform, info.PlatformVersion),
			Details:  details,
		}
	}
}
