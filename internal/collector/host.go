package collector

import (
	"bufio"
	"context"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/thoreinstein/sysmaint/internal/logentry"
	"github.com/thoreinstein/sysmaint/internal/paths"
)

// DefaultLogLines is how many matching syslog lines Host keeps by default.
const DefaultLogLines = 50

// cpuSnapshotLines is how much of the top output is kept.
const cpuSnapshotLines = 5

var (
	aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

	// UpdateCommands run in order; the first failure stops the sequence.
	UpdateCommands = []Command{
		{Name: "apt-get", Args: []string{"update"}, Env: aptEnv},
		{Name: "apt-get", Args: []string{"-y", "upgrade"}, Env: aptEnv},
		{Name: "apt-get", Args: []string{"-y", "autoremove"}, Env: aptEnv},
		{Name: "apt-get", Args: []string{"autoclean"}, Env: aptEnv},
	}

	// debsums diagnostics name the owning package when it knows it.
	fromPackageRe = regexp.MustCompile(`\(from (\S+) package\)`)
)

// Host collects artifacts from the running system using external tools.
type Host struct {
	exec       Executor
	syslogPath string
	logLines   int
	hostInfo   func(context.Context) (*host.InfoStat, error)
}

// Option configures a Host.
type Option func(*Host)

// WithExecutor replaces the command runner.
func WithExecutor(e Executor) Option {
	return func(h *Host) {
		h.exec = e
	}
}

// WithSyslogPath sets the system log file scanned for errors.
func WithSyslogPath(path string) Option {
	return func(h *Host) {
		if path != "" {
			h.syslogPath = path
		}
	}
}

// WithLogLines sets how many of the most recent matching lines are kept.
func WithLogLines(n int) Option {
	return func(h *Host) {
		if n > 0 {
			h.logLines = n
		}
	}
}

// WithHostInfo replaces the gopsutil host lookup.
func WithHostInfo(fn func(context.Context) (*host.InfoStat, error)) Option {
	return func(h *Host) {
		h.hostInfo = fn
	}
}

// NewHost creates a Host with the given options.
func NewHost(opts ...Option) *Host {
	h := &Host{
		exec:       ExecExecutor{},
		syslogPath: paths.DefaultSyslogPath,
		logLines:   DefaultLogLines,
		hostInfo:   host.InfoWithContext,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Set returns a Set with every collector backed by h.
func (h *Host) Set() Set {
	return Set{
		Updater:   h,
		Info:      h,
		Disk:      h,
		Memory:    h,
		CPU:       h,
		Logs:      h,
		SMART:     h,
		Integrity: h,
	}
}

// Update runs UpdateCommands and returns a transcript of every command run
// so far, even when one fails.
func (h *Host) Update(ctx context.Context) (string, error) {
	var sb strings.Builder
	for _, cmd := range UpdateCommands {
		sb.WriteString("$ ")
		sb.WriteString(cmd.String())
		sb.WriteByte('\n')
		out, err := h.exec.Run(ctx, cmd)
		sb.Write(out)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			sb.WriteByte('\n')
		}
		if err != nil {
			return sb.String(), errors.Wrapf(err, "%s", cmd)
		}
	}
	return sb.String(), nil
}

// SystemInfo describes the host via gopsutil.
func (h *Host) SystemInfo(ctx context.Context) (SystemInfo, error) {
	info, err := h.hostInfo(ctx)
	if err != nil {
		return SystemInfo{}, errors.Wrap(err, "reading host info")
	}
	si := SystemInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		KernelArch:      info.KernelArch,
		Uptime:          time.Duration(info.Uptime) * time.Second,
	}
	if info.BootTime > 0 {
		si.BootTime = time.Unix(int64(info.BootTime), 0).UTC()
	}
	return si, nil
}

// DiskUsage runs df -hP.
func (h *Host) DiskUsage(ctx context.Context) (string, error) {
	return h.output(ctx, Command{Name: "df", Args: []string{"-hP"}})
}

// MemoryUsage runs free -h.
func (h *Host) MemoryUsage(ctx context.Context) (string, error) {
	return h.output(ctx, Command{Name: "free", Args: []string{"-h"}})
}

// CPULoad runs top once in batch mode and keeps the summary header.
func (h *Host) CPULoad(ctx context.Context) (string, error) {
	out, err := h.output(ctx, Command{Name: "top", Args: []string{"-bn1"}})
	if err != nil {
		return "", err
	}
	return firstLines(out, cpuSnapshotLines), nil
}

// ErrorLog scans the syslog file for lines containing error, fail or
// critical (any case) and returns the last logLines of them.
func (h *Host) ErrorLog(ctx context.Context) (string, error) {
	f, err := os.Open(h.syslogPath)
	if err != nil {
		return "", errors.Wrap(err, "opening syslog")
	}
	defer f.Close()

	lines, err := tailMatching(ctx, bufio.NewReader(f), h.logLines)
	if err != nil {
		return "", errors.Wrap(err, "reading syslog")
	}
	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// maxLineLen caps a kept syslog line. The remainder of a longer line is
// discarded so the scan continues with the lines after it.
const maxLineLen = 64 * 1024

func tailMatching(ctx context.Context, r *bufio.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	ring := make([]string, 0, n)
	for i := 0; ; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line, err := readLine(r)
		if errors.Is(err, io.EOF) {
			return ring, nil
		}
		if err != nil {
			return nil, err
		}
		if !logentry.ContainsKeyword(line) {
			continue
		}
		if len(ring) == n {
			copy(ring, ring[1:])
			ring = ring[:n-1]
		}
		ring = append(ring, line)
	}
}

// readLine returns the next line without its terminator, truncated to
// maxLineLen bytes.
func readLine(r *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}
		if room := maxLineLen - len(buf); room > 0 {
			buf = append(buf, chunk[:min(len(chunk), room)]...)
		}
		if !isPrefix {
			return string(buf), nil
		}
	}
}

// SMART lists whole disks with lsblk and queries each with smartctl.
// smartctl sets exit status bits for findings, so a non-zero exit with
// output still counts as a result.
func (h *Host) SMART(ctx context.Context) (map[string]string, error) {
	out, err := h.output(ctx, Command{Name: "lsblk", Args: []string{"-dno", "NAME,TYPE"}})
	if err != nil {
		return nil, err
	}

	results := make(map[string]string)
	for _, dev := range parseDisks(out) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := "/dev/" + dev
		text, err := h.exec.Run(ctx, Command{Name: "smartctl", Args: []string{"-H", "-A", path}})
		if err != nil && !exitedWithOutput(text, err) {
			return nil, errors.Wrapf(err, "smartctl %s", path)
		}
		results[path] = string(text)
	}
	return results, nil
}

func parseDisks(lsblk string) []string {
	var disks []string
	for line := range strings.Lines(lsblk) {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == "disk" {
			disks = append(disks, fields[0])
		}
	}
	return disks
}

// Integrity runs debsums -s and resolves the packages owning the files it
// reports.
func (h *Host) Integrity(ctx context.Context) (Integrity, error) {
	out, err := h.exec.Run(ctx, Command{Name: "debsums", Args: []string{"-s"}})
	if err != nil && !exitedWithOutput(out, err) {
		return Integrity{}, errors.Wrap(err, "debsums")
	}
	raw := string(out)

	failing := make(map[string]struct{})
	for line := range strings.Lines(raw) {
		line = strings.TrimSpace(line)
		if m := fromPackageRe.FindStringSubmatch(line); m != nil {
			failing[m[1]] = struct{}{}
			continue
		}
		file := reportedFile(line)
		if file == "" {
			continue
		}
		if pkg := h.owningPackage(ctx, file); pkg != "" {
			failing[pkg] = struct{}{}
		}
	}

	pkgs := make([]string, 0, len(failing))
	for p := range failing {
		pkgs = append(pkgs, p)
	}
	slices.Sort(pkgs)
	return Integrity{Raw: raw, Failing: pkgs}, nil
}

// reportedFile extracts the absolute path from a debsums line, which is
// either a bare path or "debsums: changed file /path".
func reportedFile(line string) string {
	for _, f := range strings.Fields(line) {
		if strings.HasPrefix(f, "/") {
			return f
		}
	}
	return ""
}

// owningPackage asks dpkg which package installed file. Lookup failures
// are not reported; the raw debsums output still names the file.
func (h *Host) owningPackage(ctx context.Context, file string) string {
	out, err := h.exec.Run(ctx, Command{Name: "dpkg", Args: []string{"-S", file}})
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	pkg, _, ok := strings.Cut(line, ": ")
	if !ok {
		return ""
	}
	// dpkg -S may list several packages ("a, b: /path"); take the first.
	pkg, _, _ = strings.Cut(pkg, ",")
	return strings.TrimSpace(pkg)
}

func (h *Host) output(ctx context.Context, cmd Command) (string, error) {
	out, err := h.exec.Run(ctx, cmd)
	if err != nil {
		return "", errors.Wrapf(err, "%s", cmd)
	}
	return string(out), nil
}

func firstLines(s string, n int) string {
	var sb strings.Builder
	for line := range strings.Lines(s) {
		if n == 0 {
			break
		}
		sb.WriteString(line)
		n--
	}
	return sb.String()
}
