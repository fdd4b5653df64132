package collector

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sysmaint/pkg/fileutil"
)

// ErrArtifactMissing is returned by Dir when the requested artifact was not
// saved. It also matches fs.ErrNotExist.
var ErrArtifactMissing = errors.New("artifact not found")

// ErrSkipped is returned by Dir for a step the saving run skipped.
var ErrSkipped = errors.New("step skipped")

// Dir collects artifacts saved in a directory by an earlier run. It never
// runs external tools.
type Dir struct {
	root string
}

// NewDir returns a collector over root. The directory must exist.
func NewDir(root string) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "artifacts directory %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("artifacts path %s is not a directory", root)
	}
	return &Dir{root: root}, nil
}

// Set returns a Set with every collector backed by d.
func (d *Dir) Set() Set {
	return Set{
		Updater:   d,
		Info:      d,
		Disk:      d,
		Memory:    d,
		CPU:       d,
		Logs:      d,
		SMART:     d,
		Integrity: d,
	}
}

func (d *Dir) read(name string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(filepath.Join(d.root, name), fileutil.MaxFileSize)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errors.Mark(errors.Wrapf(err, "%s", name), ErrArtifactMissing)
		}
		return "", errors.Wrapf(err, "reading artifact %s", name)
	}
	return string(data), nil
}

// Update returns the saved update transcript.
func (d *Dir) Update(context.Context) (string, error) {
	text, err := d.read(UpdateFile)
	if err != nil {
		return "", err
	}
	if text == UpdateSkippedText {
		return "", ErrSkipped
	}
	return text, nil
}

// SystemInfo decodes the saved host description.
func (d *Dir) SystemInfo(context.Context) (SystemInfo, error) {
	text, err := d.read(SystemInfoFile)
	if err != nil {
		return SystemInfo{}, err
	}
	var info SystemInfo
	if err := yaml.Unmarshal([]byte(text), &info); err != nil {
		return SystemInfo{}, errors.Wrapf(err, "decoding %s", SystemInfoFile)
	}
	return info, nil
}

// DiskUsage returns the saved df table.
func (d *Dir) DiskUsage(context.Context) (string, error) {
	return d.read(DiskFile)
}

// MemoryUsage returns the saved memory summary.
func (d *Dir) MemoryUsage(context.Context) (string, error) {
	return d.read(MemoryFile)
}

// CPULoad returns the saved process snapshot.
func (d *Dir) CPULoad(context.Context) (string, error) {
	return d.read(CPUFile)
}

// ErrorLog returns the saved error log lines.
func (d *Dir) ErrorLog(context.Context) (string, error) {
	return d.read(ErrorLogFile)
}

// SMART returns the saved per-device SMART text keyed by /dev path.
func (d *Dir) SMART(context.Context) (map[string]string, error) {
	matches, err := filepath.Glob(filepath.Join(d.root, SMARTDir, "*.txt"))
	if err != nil {
		return nil, errors.Wrap(err, "listing SMART artifacts")
	}
	if len(matches) == 0 {
		if _, err := os.Stat(filepath.Join(d.root, SMARTNoDisksFile)); err == nil {
			return map[string]string{}, nil
		}
		return nil, errors.Mark(errors.Newf("%s/*.txt", SMARTDir), ErrArtifactMissing)
	}
	sort.Strings(matches)

	results := make(map[string]string, len(matches))
	for _, m := range matches {
		name := strings.TrimSuffix(filepath.Base(m), ".txt")
		text, err := d.read(filepath.Join(SMARTDir, filepath.Base(m)))
		if err != nil {
			return nil, err
		}
		results["/dev/"+name] = text
	}
	return results, nil
}

// Integrity returns the saved verifier output and failing packages.
func (d *Dir) Integrity(context.Context) (Integrity, error) {
	raw, err := d.read(IntegrityFile)
	if err != nil {
		return Integrity{}, err
	}
	failedText, err := d.read(IntegrityFailedFile)
	if err != nil && !errors.Is(err, ErrArtifactMissing) {
		return Integrity{}, err
	}
	var failing []string
	for _, line := range strings.Split(failedText, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			failing = append(failing, line)
		}
	}
	return Integrity{Raw: raw, Failing: failing}, nil
}
