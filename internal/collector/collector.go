package collector

import (
	"context"
	"time"
)

// SystemInfo describes the host a report is about.
type SystemInfo struct {
	Hostname        string        `yaml:"hostname"`
	OS              string        `yaml:"os"`
	Platform        string        `yaml:"platform"`
	PlatformVersion string        `yaml:"platform_version"`
	KernelVersion   string        `yaml:"kernel_version"`
	KernelArch      string        `yaml:"kernel_arch"`
	Uptime          time.Duration `yaml:"uptime"`
	BootTime        time.Time     `yaml:"boot_time"`
}

// Integrity is the outcome of a package integrity verification.
type Integrity struct {
	// Raw is the verifier's output, verbatim.
	Raw string
	// Failing lists the packages owning files that failed verification,
	// sorted and de-duplicated.
	Failing []string
}

// Updater refreshes and upgrades installed packages and returns a
// transcript of what ran.
type Updater interface {
	Update(ctx context.Context) (string, error)
}

// SystemInfoCollector describes the host.
type SystemInfoCollector interface {
	SystemInfo(ctx context.Context) (SystemInfo, error)
}

// DiskCollector returns a df -hP style table.
type DiskCollector interface {
	DiskUsage(ctx context.Context) (string, error)
}

// MemoryCollector returns a free -h style summary.
type MemoryCollector interface {
	MemoryUsage(ctx context.Context) (string, error)
}

// CPUCollector returns a process snapshot whose first line carries the
// load averages, as top -bn1 prints it.
type CPUCollector interface {
	CPULoad(ctx context.Context) (string, error)
}

// LogCollector returns the most recent system log lines mentioning an
// error, failure or critical condition, one per line, oldest first.
type LogCollector interface {
	ErrorLog(ctx context.Context) (string, error)
}

// SMARTCollector returns SMART health text keyed by device path.
type SMARTCollector interface {
	SMART(ctx context.Context) (map[string]string, error)
}

// IntegrityCollector verifies installed package files.
type IntegrityCollector interface {
	Integrity(ctx context.Context) (Integrity, error)
}

// Set groups one collector per artifact type.
type Set struct {
	Updater   Updater
	Info      SystemInfoCollector
	Disk      DiskCollector
	Memory    MemoryCollector
	CPU       CPUCollector
	Logs      LogCollector
	SMART     SMARTCollector
	Integrity IntegrityCollector
}
