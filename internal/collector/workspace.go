package collector

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sysmaint/internal/paths"
	"github.com/thoreinstein/sysmaint/pkg/fileutil"
)

const artifactPerm = 0o640

// Workspace is the directory a run stores raw artifacts in. A temporary
// workspace is deleted by Close; a kept one is left in place so the run can
// be rendered again later.
type Workspace struct {
	dir  string
	keep bool
}

// NewWorkspace creates a temporary workspace, or uses keepDir (creating it
// if needed) when keepDir is non-empty.
func NewWorkspace(keepDir string) (*Workspace, error) {
	if keepDir != "" {
		if err := paths.EnsureDir(keepDir, paths.DefaultDirPerm); err != nil {
			return nil, errors.Wrapf(err, "creating artifacts directory %s", keepDir)
		}
		return &Workspace{dir: keepDir, keep: true}, nil
	}

	dir, err := os.MkdirTemp("", paths.AppName+"-*")
	if err != nil {
		return nil, errors.Wrap(err, "creating workspace")
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Kept reports whether Close leaves the directory in place.
func (w *Workspace) Kept() bool {
	return w.keep
}

// Close removes a temporary workspace and everything in it.
func (w *Workspace) Close() error {
	if w.keep {
		return nil
	}
	return errors.Wrap(os.RemoveAll(w.dir), "removing workspace")
}

// SaveText writes a text artifact.
func (w *Workspace) SaveText(name, text string) error {
	return fileutil.AtomicWriteFile(filepath.Join(w.dir, name), []byte(text), artifactPerm)
}

// SaveSystemInfo writes the host description as YAML.
func (w *Workspace) SaveSystemInfo(info SystemInfo) error {
	return fileutil.AtomicWriteYAML(filepath.Join(w.dir, SystemInfoFile), info)
}

// SaveSMART writes one file per device under the smart directory, or an
// empty marker when there were no devices.
func (w *Workspace) SaveSMART(results map[string]string) error {
	if len(results) == 0 {
		return w.SaveText(SMARTNoDisksFile, "")
	}
	for dev, text := range results {
		name := strings.TrimPrefix(dev, "/dev/")
		name = strings.ReplaceAll(name, "/", "_")
		if err := w.SaveText(filepath.Join(SMARTDir, name+".txt"), text); err != nil {
			return err
		}
	}
	return nil
}

// SaveIntegrity writes the raw verifier output and the failing package
// list, one package per line.
func (w *Workspace) SaveIntegrity(in Integrity) error {
	if err := w.SaveText(IntegrityFile, in.Raw); err != nil {
		return err
	}
	failing := slices.Clone(in.Failing)
	slices.Sort(failing)
	var body string
	if len(failing) > 0 {
		body = strings.Join(failing, "\n") + "\n"
	}
	return w.SaveText(IntegrityFailedFile, body)
}
