package maintenance

import (
	"context"
	"time"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/history"
)

// Recorder stores run outcomes. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, run history.Run, findings []history.Finding) error
}

// Outcome is what the caller knows about a finished or aborted run.
type Outcome struct {
	RunID      string
	Hostname   string
	StartedAt  time.Time
	FinishedAt time.Time
	// Result is nil when the run stopped before compiling a report.
	Result *Result
	// ReportPath is set only when the report was persisted.
	ReportPath string
	Err        error
}

// Record stores o through rec. Interrupted runs are recorded with
// StatusInterrupted and any other error with StatusFailed.
func Record(ctx context.Context, rec Recorder, o Outcome) error {
	run := history.Run{
		ID:         o.RunID,
		StartedAt:  o.StartedAt,
		FinishedAt: o.FinishedAt,
		Hostname:   o.Hostname,
		ReportPath: o.ReportPath,
		Status:     history.StatusSuccess,
	}

	switch {
	case o.Err == nil:
	case errors.Is(o.Err, errors.ErrInterrupted):
		run.Status = history.StatusInterrupted
		run.Error = o.Err.Error()
	default:
		run.Status = history.StatusFailed
		run.Error = o.Err.Error()
	}

	var findings []history.Finding
	if res := o.Result; res != nil {
		run.High = res.Counts[classify.High]
		run.Medium = res.Counts[classify.Medium]
		run.Low = res.Counts[classify.Low]
		if run.Hostname == "" {
			run.Hostname = res.Hostname
		}
		findings = history.FromFindings(res.Findings)
	}

	return errors.Wrapf(rec.Record(ctx, run, findings), "recording run %s", o.RunID)
}
