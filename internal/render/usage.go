package render

import (
	"html/template"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var loadAverageRe = regexp.MustCompile(`(?i)load averages?:`)

type diskRow struct {
	Filesystem string
	Size       string
	Used       string
	Avail      string
	Mount      string
	Width      string
}

// DiskUsage renders a df -hP style table. The header row is skipped. Each
// data row shows its columns verbatim and a usage bar whose width is the
// use-percent clamped to [0,100]; an unparsable percent gives an empty bar.
func DiskUsage(text string) template.HTML {
	var rows []diskRow
	header := true
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if header {
			header = false
			continue
		}
		if len(fields) < 6 {
			slog.Debug("skipping short df row", "line", line)
			continue
		}
		rows = append(rows, diskRow{
			Filesystem: fields[0],
			Size:       fields[1],
			Used:       fields[2],
			Avail:      fields[3],
			// Mount points may contain spaces.
			Mount: strings.Join(fields[5:], " "),
			Width: formatPercent(ParsePercent(fields[4])),
		})
	}
	if len(rows) == 0 {
		return Notice(DiskUnavailable)
	}
	return execute("disk", rows)
}

// ParsePercent parses values such as "68%" or "68" and clamps the result
// to [0,100]. Malformed input yields 0.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("unparsable percentage", "value", s)
		return 0
	}
	return clamp(v)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// formatPercent rounds to one decimal and drops a zero fraction.
func formatPercent(v float64) string {
	v = math.Round(v*10) / 10
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// MemoryUsage renders the "Mem:" line of a free -h style summary. Total is
// the first value and used the second; unit suffixes are resolved so both
// share one scale.
func MemoryUsage(text string) template.HTML {
	m, ok := parseMemory(text)
	if !ok {
		return Notice(MemoryUnavailable)
	}
	pct := clamp(float64(m.used) / float64(m.total) * 100)
	return execute("memory", struct {
		Total   string
		Used    string
		Percent string
		Raw     string
	}{
		Total:   m.totalRaw,
		Used:    m.usedRaw,
		Percent: formatPercent(pct),
		Raw:     text,
	})
}

type memory struct {
	total, used       uint64
	totalRaw, usedRaw string
}

func parseMemory(text string) (memory, bool) {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "Mem:" {
			continue
		}
		t, err := parseSize(fields[1])
		if err != nil || t == 0 {
			slog.Debug("unparsable memory total", "value", fields[1])
			return memory{}, false
		}
		u, err := parseSize(fields[2])
		if err != nil {
			slog.Debug("unparsable memory used", "value", fields[2])
			return memory{}, false
		}
		return memory{total: t, used: u, totalRaw: fields[1], usedRaw: fields[2]}, true
	}
	return memory{}, false
}

// parseSize accepts free's suffixes ("16G", "7.8Gi", "0B") and plain byte
// counts.
func parseSize(s string) (uint64, error) {
	return humanize.ParseBytes(s)
}

// CPULoad renders the first load-average figure from the first line of a
// top snapshot. The bar shows min(load, 1) as a percentage.
func CPULoad(text string) template.HTML {
	load, ok := parseLoad(text)
	if !ok {
		return Notice(CPUUnparsable)
	}
	return execute("cpu", struct {
		Load    string
		Percent string
		Raw     string
	}{
		Load:    strconv.FormatFloat(load, 'f', 2, 64),
		Percent: formatPercent(math.Min(load, 1) * 100),
		Raw:     text,
	})
}

func parseLoad(text string) (float64, bool) {
	first, _, _ := strings.Cut(text, "\n")
	loc := loadAverageRe.FindStringIndex(first)
	if loc == nil {
		return 0, false
	}
	figure, _, _ := strings.Cut(first[loc[1]:], ",")
	fields := strings.Fields(figure)
	if len(fields) == 0 {
		return 0, false
	}
	load, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || math.IsNaN(load) || math.IsInf(load, 0) || load < 0 {
		slog.Debug("unparsable load average", "value", figure)
		return 0, false
	}
	return load, true
}
