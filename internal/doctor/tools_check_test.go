package doctor

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"github.com/thoreinstein/sysmaint/internal/config"
)

func fakeLookPath(present ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, p := range present {
			if p == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
}

func TestTools(t *testing.T) {
	cfg := config.Default()
	cfg.SkipSMART = true

	var skipped []string
	for _, tool := range Tools(cfg) {
		if tool.Skipped {
			skipped = append(skipped, tool.Name)
		}
	}
	if want := []string{"lsblk", "smartctl"}; !reflect.DeepEqual(skipped, want) {
		t.Errorf("skipped tools = %v, want %v", skipped, want)
	}
}

func TestToolsCheck_Run(t *testing.T) {
	all := []string{"apt-get", "df", "free", "top", "lsblk", "smartctl", "debsums", "dpkg"}

	tests := []struct {
		name        string
		cfg         func(*config.Config)
		present     []string
		want        Severity
		wantMissing []string
		wantHint    string
	}{
		{
			name:    "everything present",
			present: all,
			want:    SeverityPass,
		},
		{
			name:        "smartmontools and debsums missing",
			present:     []string{"apt-get", "df", "free", "top", "lsblk", "dpkg"},
			want:        SeverityWarning,
			wantMissing: []string{"smartctl", "debsums"},
			wantHint:    "apt-get install smartmontools debsums",
		},
		{
			name:        "procps missing once per package",
			present:     []string{"apt-get", "df", "lsblk", "smartctl", "debsums", "dpkg"},
			want:        SeverityWarning,
			wantMissing: []string{"free", "top"},
			wantHint:    "apt-get install procps",
		},
		{
			name: "skipped steps need no tools",
			cfg: func(c *config.Config) {
				c.SkipUpdate = true
				c.SkipSMART = true
				c.SkipIntegrity = true
			},
			present: []string{"df", "free", "top"},
			want:    SeverityPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			c := NewToolsCheck(cfg)
			c.lookPath = fakeLookPath(tt.present...)

			result := c.Run()
			if result.Status != tt.want {
				t.Errorf("Status = %v, want %v (%s)", result.Status, tt.want, result.Message)
			}
			if result.FixHint != tt.wantHint {
				t.Errorf("FixHint = %q, want %q", result.FixHint, tt.wantHint)
			}
			if tt.wantMissing != nil {
				if got := result.Details["missing"]; !reflect.DeepEqual(got, tt.wantMissing) {
					t.Errorf("missing = %v, want %v", got, tt.wantMissing)
				}
			}
		})
	}
}

func TestFakeLookPath(t *testing.T) {
	_, err := fakeLookPath()("smartctl")
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("err = %v, want exec.ErrNotFound", err)
	}
}
