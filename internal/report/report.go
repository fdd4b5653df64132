// Package report assembles rendered sections into a single self-contained
// HTML document and persists it.
package report

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/pkg/fileutil"
)

// FilePerm is the mode of persisted reports.
const FilePerm = 0o644

// SectionID identifies one report section.
type SectionID string

const (
	SystemInfo       SectionID = "system-info"
	DiskUsage        SectionID = "disk-usage"
	MemoryUsage      SectionID = "memory-usage"
	CPULoad          SectionID = "cpu-load"
	SmartStatus      SectionID = "smart-status"
	SystemErrors     SectionID = "system-errors"
	PackageIntegrity SectionID = "package-integrity"
)

// Order is the fixed order sections appear in.
var Order = []SectionID{
	SystemInfo,
	DiskUsage,
	MemoryUsage,
	CPULoad,
	SmartStatus,
	SystemErrors,
	PackageIntegrity,
}

var titles = map[SectionID]string{
	SystemInfo:       "System Info",
	DiskUsage:        "Disk Usage",
	MemoryUsage:      "Memory Usage",
	CPULoad:          "CPU Load",
	SmartStatus:      "SMART Status",
	SystemErrors:     "System Errors",
	PackageIntegrity: "Package Integrity",
}

// Title returns the display title of a section.
func (id SectionID) Title() string {
	if t, ok := titles[id]; ok {
		return t
	}
	return string(id)
}

// Section is one collapsible block of the report.
type Section struct {
	ID        SectionID
	Title     string
	Body      template.HTML
	Collapsed bool
}

// Report is a compiled document. It is not modified after Compile.
type Report struct {
	Title       string
	Hostname    string
	GeneratedAt time.Time
	Sections    []Section
}

// Compile arranges bodies in the fixed section order. Sections missing
// from bodies get a placeholder; IDs outside Order are dropped. The first
// section is expanded and the rest collapsed.
func Compile(title, hostname string, bodies map[SectionID]template.HTML, now time.Time) *Report {
	r := &Report{
		Title:       title,
		Hostname:    hostname,
		GeneratedAt: now.UTC(),
		Sections:    make([]Section, 0, len(Order)),
	}
	for i, id := range Order {
		body, ok := bodies[id]
		if !ok {
			body = placeholder(id)
		}
		r.Sections = append(r.Sections, Section{
			ID:        id,
			Title:     id.Title(),
			Body:      body,
			Collapsed: i > 0,
		})
	}
	return r
}

func placeholder(id SectionID) template.HTML {
	return template.HTML(`<p class="notice">` + template.HTMLEscapeString(id.Title()) + ` not available.</p>`)
}

// Render writes the report as one HTML document.
func (r *Report) Render(w io.Writer) error {
	return errors.Wrap(document.Execute(w, r), "rendering report")
}

// Bytes renders the report into memory.
func (r *Report) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Persist renders the report and writes it to path in a single atomic
// replace. Any failure is returned as a *errors.PersistError naming path.
func (r *Report) Persist(path string) error {
	data, err := r.Bytes()
	if err != nil {
		return errors.NewPersistError(path, err)
	}
	if err := fileutil.AtomicWriteFile(path, data, FilePerm); err != nil {
		return errors.NewPersistError(path, err)
	}
	return nil
}
