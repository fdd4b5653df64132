package render

import (
	"html/template"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/thoreinstein/sysmaint/internal/collector"
)

// SmartStatus renders one preformatted block per device, ordered by device
// path.
func SmartStatus(results map[string]string) template.HTML {
	if len(results) == 0 {
		return Notice(SMARTNoDevices)
	}
	devices := make([]string, 0, len(results))
	for dev := range results {
		devices = append(devices, dev)
	}
	slices.Sort(devices)

	type block struct {
		Device string
		Text   string
	}
	blocks := make([]block, len(devices))
	for i, dev := range devices {
		blocks[i] = block{Device: dev, Text: results[dev]}
	}
	return execute("smart", blocks)
}

// PackageIntegrity renders the failing packages and the verifier output.
func PackageIntegrity(raw string, failing []string) template.HTML {
	if strings.TrimSpace(raw) == "" && len(failing) == 0 {
		return Notice(IntegrityClean)
	}
	return execute("integrity", struct {
		Raw     string
		Failing []string
	}{Raw: raw, Failing: failing})
}

// SystemInfoData is everything shown in the system info section.
type SystemInfoData struct {
	Info   collector.SystemInfo
	RunID  string
	Update string
	// Now anchors relative times; zero means time.Now.
	Now time.Time
}

type kv struct {
	Key   string
	Value string
}

// SystemInfo renders the host description as a key/value table. Empty
// values are omitted.
func SystemInfo(d SystemInfoData) template.HTML {
	now := d.Now
	if now.IsZero() {
		now = time.Now()
	}
	info := d.Info

	platform := strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	kernel := info.KernelVersion
	if info.KernelArch != "" {
		kernel = strings.TrimSpace(kernel + " (" + info.KernelArch + ")")
	}

	var uptime string
	if info.Uptime > 0 {
		uptime = strings.TrimSpace(humanize.RelTime(now.Add(-info.Uptime), now, "", ""))
		if !info.BootTime.IsZero() {
			uptime += ", booted " + info.BootTime.UTC().Format("2006-01-02 15:04:05 MST")
		}
	}

	var rows []kv
	for _, r := range []kv{
		{"Hostname", info.Hostname},
		{"Operating system", info.OS},
		{"Platform", platform},
		{"Kernel", kernel},
		{"Uptime", uptime},
		{"Run ID", d.RunID},
		{"System update", d.Update},
	} {
		if r.Value != "" {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return Notice(SystemInfoUnavailable)
	}
	return execute("sysinfo", rows)
}
