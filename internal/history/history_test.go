package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/logentry"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testRun(id string, started time.Time) Run {
	return Run{
		ID:         id,
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Hostname:   "host1",
		ReportPath: "/var/lib/sysmaint/report.html",
		Status:     StatusSuccess,
		High:       1,
		Medium:     2,
		Low:        3,
	}
}

func TestStore_RecordAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()
	started := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

	findings := []Finding{
		{Time: "2024-12-06 10:51:23 UTC", Host: "host1", Process: "systemd[1]", Message: "Failed to start foo.service", Rule: "systemd", Severity: "medium"},
		{Time: "yesterday", Host: "host1", Process: "kernel", Message: "I/O error", Rule: "kernel", Severity: "high"},
	}
	if err := s.Record(ctx, testRun("run-1", started), findings); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	run, got, err := s.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !run.StartedAt.Equal(started) || run.Duration() != 90*time.Second {
		t.Errorf("Get() times = %v / %v", run.StartedAt, run.Duration())
	}
	if run.Status != StatusSuccess || run.High != 1 || run.Medium != 2 || run.Low != 3 {
		t.Errorf("Get() run = %+v", run)
	}
	if len(got) != 2 || got[0] != findings[0] || got[1] != findings[1] {
		t.Errorf("Get() findings = %+v, want %+v", got, findings)
	}
}

func TestStore_GetByPrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()
	now := time.Now().UTC()

	for _, id := range []string{"abc123", "abd456", "abc"} {
		if err := s.Record(ctx, testRun(id, now), nil); err != nil {
			t.Fatalf("Record(%s) error = %v", id, err)
		}
	}

	tests := []struct {
		prefix string
		wantID string
		target error
	}{
		{"abd", "abd456", nil},
		{"abc", "abc", nil},
		{"abc1", "abc123", nil},
		{"ab", "", ErrAmbiguousID},
		{"zzz", "", errors.ErrNotFound},
		{"", "", errors.ErrNotFound},
		{"a%", "", errors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			run, _, err := s.Get(ctx, tt.prefix)
			if tt.target != nil {
				if !errors.Is(err, tt.target) {
					t.Errorf("Get(%q) error = %v, want %v", tt.prefix, err, tt.target)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.prefix, err)
			}
			if run.ID != tt.wantID {
				t.Errorf("Get(%q).ID = %q, want %q", tt.prefix, run.ID, tt.wantID)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()
	base := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		if err := s.Record(ctx, testRun(id, base.Add(time.Duration(i)*time.Hour)), nil); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 3 || all[0].ID != "third" || all[2].ID != "first" {
		t.Errorf("List(0) = %v", ids(all))
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) error = %v", err)
	}
	if len(limited) != 2 || limited[0].ID != "third" {
		t.Errorf("List(2) = %v", ids(limited))
	}
}

func TestStore_DuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := t.Context()
	run := testRun("dup", time.Now())

	if err := s.Record(ctx, run, []Finding{{Time: "t", Rule: "general", Severity: "low"}}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := s.Record(ctx, run, []Finding{{Time: "t2"}}); err == nil {
		t.Fatal("Record() duplicate id should fail")
	}

	_, findings, err := s.Get(ctx, "dup")
	if err != nil {
		t.Fatal(err)
	}
	if len(findings) != 1 {
		t.Errorf("failed Record left %d findings, want 1", len(findings))
	}

	if err := s.Record(ctx, Run{}, nil); err == nil {
		t.Error("Record() without id should fail")
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(t.Context(), path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(t.Context(), testRun("persisted", time.Now()), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(t.Context(), path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s2.Close()
	runs, err := s2.List(t.Context(), 0)
	if err != nil || len(runs) != 1 {
		t.Errorf("List() after reopen = %v, %v", ids(runs), err)
	}
}

func TestFromFindings(t *testing.T) {
	c, err := classify.LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	entries := logentry.ParseAll("2024-12-06T10:51:23+01:00 host1 systemd[1]: Failed to start foo.service\nnope host1 app: error\n")
	findings, _ := c.ClassifyEntries(entries)

	got := FromFindings(findings)
	if len(got) != 2 {
		t.Fatalf("FromFindings() len = %d", len(got))
	}
	if got[0].Time != "2024-12-06 09:51:23 UTC" || got[0].Rule != "systemd" || got[0].Severity != "medium" {
		t.Errorf("FromFindings()[0] = %+v", got[0])
	}
	if got[1].Time != "nope" || got[1].Rule != "general" || got[1].Severity != "low" {
		t.Errorf("FromFindings()[1] = %+v", got[1])
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == b || len(a) != 36 {
		t.Errorf("NewRunID() = %q, %q", a, b)
	}
}

func ids(runs []Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.ID
	}
	return out
}
