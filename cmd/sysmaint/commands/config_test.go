package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
)

func setConfigFile(t *testing.T, path string) {
	t.Helper()
	orig := configFile
	configFile = path
	t.Cleanup(func() { configFile = orig })
}

func TestShowConfig(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_lines: 75\nskip_smart: true\n"), 0o644))
	setConfigFile(t, path)

	var out bytes.Buffer
	require.NoError(t, showConfig(&out))

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "# "+path+"\n"), got)
	assert.Contains(t, got, "log_lines: 75\n")
	assert.Contains(t, got, "skip_smart: true\n")
	assert.Contains(t, got, "syslog_path: /var/log/syslog\n")
}

func TestShowConfig_MissingFile(t *testing.T) {
	resetViper(t)
	setConfigFile(t, filepath.Join(t.TempDir(), "absent.yaml"))

	err := showConfig(&bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidConfig))
}

func TestGetConfigValue(t *testing.T) {
	resetViper(t)

	var out bytes.Buffer
	require.NoError(t, getConfigValue(&out, config.KeyLogLines))
	assert.Equal(t, "50\n", out.String())

	err := getConfigValue(&bytes.Buffer{}, "no_such_key")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, exitErr.Suggestion, "log_lines")
}

func TestInitConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	var out bytes.Buffer

	require.NoError(t, initConfigFile(&out, path, false))
	assert.Equal(t, "Wrote "+path+"\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, config.DefaultLogLines, got[config.KeyLogLines])
	assert.Equal(t, "Local", got[config.KeyDisplayTimezone])

	t.Run("refuses to overwrite", func(t *testing.T) {
		err := initConfigFile(&bytes.Buffer{}, path, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("log_lines: 5\n"), 0o644))
		require.NoError(t, initConfigFile(&bytes.Buffer{}, path, true))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "log_lines: 50")
	})
}
