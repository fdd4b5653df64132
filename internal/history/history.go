// Package history records each maintenance run and its classified log
// findings in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/paths"
)

// ErrAmbiguousID is returned when a run ID prefix matches several runs.
var ErrAmbiguousID = errors.New("ambiguous run id")

// Status is the outcome of a run.
type Status string

const (
	StatusSuccess     Status = "success"
	StatusFailed      Status = "failed"
	StatusInterrupted Status = "interrupted"
)

// Run is one recorded maintenance run.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Hostname   string    `json:"hostname" yaml:"hostname"`
	ReportPath string    `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Status     Status    `json:"status" yaml:"status"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	High       int       `json:"high" yaml:"high"`
	Medium     int       `json:"medium" yaml:"medium"`
	Low        int       `json:"low" yaml:"low"`
}

// Duration is how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Finding is a classified log line as stored.
type Finding struct {
	Time     string `json:"time" yaml:"time"`
	Host     string `json:"host" yaml:"host"`
	Process  string `json:"process" yaml:"process"`
	Message  string `json:"message" yaml:"message"`
	Rule     string `json:"rule" yaml:"rule"`
	Severity string `json:"severity" yaml:"severity"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// FromFindings converts classified entries for storage. Times are stored
// in UTC, or verbatim when the entry's timestamp did not parse.
func FromFindings(findings []classify.Finding) []Finding {
	out := make([]Finding, len(findings))
	for i, f := range findings {
		out[i] = Finding{
			Time:     f.DisplayTime(time.UTC),
			Host:     f.Host,
			Process:  f.Process,
			Message:  f.Message,
			Rule:     f.Rule,
			Severity: f.Severity.String(),
		}
	}
	return out
}

// Store is a handle on the history database.
type Store struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		hostname TEXT NOT NULL,
		report_path TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT NOT NULL,
		high INTEGER NOT NULL,
		medium INTEGER NOT NULL,
		low INTEGER NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		time TEXT NOT NULL,
		host TEXT NOT NULL,
		process TEXT NOT NULL,
		message TEXT NOT NULL,
		rule TEXT NOT NULL,
		severity TEXT NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS findings_run ON findings(run_id, seq);`,
	`CREATE INDEX IF NOT EXISTS runs_started ON runs(started_at);`,
}

// Open opens or creates the database at path, creating parent directories.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := paths.EnsureDir(filepath.Dir(path), paths.DefaultDirPerm); err != nil {
		return nil, errors.Wrapf(err, "creating history directory for %s", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening history database %s", path)
	}
	// A single connection serializes writers and keeps pragmas in effect.
	db.SetMaxOpenConns(1)

	for _, q := range append([]string{`PRAGMA foreign_keys = ON;`, `PRAGMA busy_timeout = 5000;`}, schema...) {
		if _, err := db.ExecContext(ctx, q); err != nil {
			_ = db.Close()
			return nil, errors.Wrapf(err, "initializing history database %s", path)
		}
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// timeLayout is fixed width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Record stores a run and its findings in one transaction.
func (s *Store) Record(ctx context.Context, run Run, findings []Finding) (err error) {
	if run.ID == "" {
		return errors.New("run id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning history transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, hostname, report_path, status, error, high, medium, low)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.Hostname, run.ReportPath, string(run.Status), run.Error,
		run.High, run.Medium, run.Low,
	)
	if err != nil {
		return errors.Wrapf(err, "recording run %s", run.ID)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO findings (run_id, seq, time, host, process, message, rule, severity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "preparing finding insert")
	}
	defer stmt.Close()

	for i, f := range findings {
		if _, err = stmt.ExecContext(ctx, run.ID, i, f.Time, f.Host, f.Process, f.Message, f.Rule, f.Severity); err != nil {
			return errors.Wrapf(err, "recording finding %d of run %s", i, run.ID)
		}
	}

	return errors.Wrap(tx.Commit(), "committing history")
}

const runColumns = `id, started_at, finished_at, hostname, report_path, status, error, high, medium, low`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r                 Run
		started, finished string
		status            string
	)
	if err := sc.Scan(&r.ID, &started, &finished, &r.Hostname, &r.ReportPath, &status, &r.Error, &r.High, &r.Medium, &r.Low); err != nil {
		return Run{}, err
	}
	r.Status = Status(status)
	var err error
	if r.StartedAt, err = time.Parse(timeLayout, started); err != nil {
		return Run{}, errors.Wrapf(err, "run %s start time", r.ID)
	}
	if r.FinishedAt, err = time.Parse(timeLayout, finished); err != nil {
		return Run{}, errors.Wrapf(err, "run %s finish time", r.ID)
	}
	return r, nil
}

// List returns the most recent runs, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, errors.Wrap(err, "reading run")
		}
		runs = append(runs, r)
	}
	return runs, errors.Wrap(rows.Err(), "listing runs")
}

// Get returns the run whose ID equals or uniquely starts with id, and its
// findings in their original order.
func (s *Store) Get(ctx context.Context, id string) (Run, []Finding, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, nil, errors.Wrap(errors.ErrNotFound, "empty run id")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' ORDER BY id = ? DESC LIMIT 2`,
		id, escapeLike(id)+"%", id)
	if err != nil {
		return Run{}, nil, errors.Wrapf(err, "looking up run %s", id)
	}
	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, nil, errors.Wrap(err, "reading run")
		}
		matches = append(matches, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, nil, errors.Wrapf(err, "looking up run %s", id)
	}

	switch {
	case len(matches) == 0:
		return Run{}, nil, errors.Wrapf(errors.ErrNotFound, "run %s", id)
	case matches[0].ID != id && len(matches) > 1:
		return Run{}, nil, errors.Wrapf(ErrAmbiguousID, "%s", id)
	}
	run := matches[0]

	findings, err := s.findings(ctx, run.ID)
	if err != nil {
		return Run{}, nil, err
	}
	return run, findings, nil
}

func (s *Store) findings(ctx context.Context, runID string) ([]Finding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT time, host, process, message, rule, severity FROM findings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "reading findings of run %s", runID)
	}
	defer rows.Close()

	var out []Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.Time, &f.Host, &f.Process, &f.Message, &f.Rule, &f.Severity); err != nil {
			return nil, errors.Wrap(err, "reading finding")
		}
		out = append(out, f)
	}
	return out, errors.Wrapf(rows.Err(), "reading findings of run %s", runID)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
