package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "sysmaint"

// DefaultSyslogPath is the system log scanned for errors.
const DefaultSyslogPath = "/var/log/syslog"

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o750

// ErrInvalidPath indicates the provided path is malformed.
var ErrInvalidPath = errors.New("invalid path")

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used. It returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}

// ConfigDir returns $XDG_CONFIG_HOME/sysmaint.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DataDir returns $XDG_DATA_HOME/sysmaint.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// StateDir returns $XDG_STATE_HOME/sysmaint.
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// DefaultReportPath returns the default HTML report location.
func DefaultReportPath() string {
	return filepath.Join(DataDir(), "report.html")
}

// DefaultLogPath returns the default durable run log location.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "sysmaint.log")
}

// DefaultHistoryPath returns the default run history database location.
func DefaultHistoryPath() string {
	return filepath.Join(StateDir(), "history.db")
}

// Validate checks that path is syntactically usable as a file path.
// It does not check that the path exists.
func Validate(path string) error {
	if path == "" {
		return errors.Wrap(ErrInvalidPath, "empty path")
	}
	if strings.ContainsRune(path, '\x00') {
		return errors.Wrap(ErrInvalidPath, "path contains NUL byte")
	}
	cleaned := filepath.Clean(path)
	if cleaned == "." || cleaned == string(filepath.Separator) {
		return errors.Wrapf(ErrInvalidPath, "%q is not a file path", path)
	}
	return nil
}
