package collector

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureDir(t *testing.T) *Dir {
	t.Helper()
	d, err := NewDir(filepath.Join("testdata", "run"))
	require.NoError(t, err)
	return d
}

func TestDir_Artifacts(t *testing.T) {
	d := fixtureDir(t)
	ctx := t.Context()

	info, err := d.SystemInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "host1", info.Hostname)
	assert.Equal(t, "12.8", info.PlatformVersion)
	assert.Equal(t, 73*time.Hour+12*time.Minute, info.Uptime)

	disk, err := d.DiskUsage(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(disk, "Filesystem"))

	mem, err := d.MemoryUsage(ctx)
	require.NoError(t, err)
	assert.Contains(t, mem, "Mem:")

	cpu, err := d.CPULoad(ctx)
	require.NoError(t, err)
	assert.Contains(t, cpu, "load average: 0.42")

	logs, err := d.ErrorLog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(logs, "\n"))

	update, err := d.Update(ctx)
	require.NoError(t, err)
	assert.Contains(t, update, "$ apt-get update")

	smart, err := d.SMART(ctx)
	require.NoError(t, err)
	assert.Len(t, smart, 2)
	assert.Contains(t, smart["/dev/sda"], "PASSED")
	assert.Contains(t, smart, "/dev/nvme0n1")

	integ, err := d.Integrity(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"curl", "tzdata"}, integ.Failing)
	assert.Contains(t, integ.Raw, "changed file /usr/bin/curl")
}

func TestDir_Missing(t *testing.T) {
	d, err := NewDir(t.TempDir())
	require.NoError(t, err)

	_, err = d.DiskUsage(t.Context())
	assert.True(t, errors.Is(err, ErrArtifactMissing), "got %v", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)

	_, err = d.SMART(t.Context())
	assert.True(t, errors.Is(err, ErrArtifactMissing), "got %v", err)

	_, err = d.SystemInfo(t.Context())
	assert.True(t, errors.Is(err, ErrArtifactMissing), "got %v", err)
}

func TestNewDir_Errors(t *testing.T) {
	_, err := NewDir(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)

	_, err = NewDir(filepath.Join("testdata", "run", "disk.txt"))
	assert.Error(t, err)
}

func TestParseDisks(t *testing.T) {
	got := parseDisks("sda disk\nsdb  disk\nsr0 rom\n\nmalformed\nnvme0n1 disk")
	assert.Equal(t, []string{"sda", "sdb", "nvme0n1"}, got)
}

func TestFirstLines(t *testing.T) {
	assert.Equal(t, "a\nb\n", firstLines("a\nb\nc\n", 2))
	assert.Equal(t, "a\nb", firstLines("a\nb", 5))
	assert.Empty(t, firstLines("a\n", 0))
}
