package maintenance

import (
	"context"
	"html/template"
	"log/slog"
	"os"
	"time"

	"github.com/thoreinstein/sysmaint/internal/classify"
	"github.com/thoreinstein/sysmaint/internal/collector"
	"github.com/thoreinstein/sysmaint/internal/config"
	"github.com/thoreinstein/sysmaint/internal/errors"
	"github.com/thoreinstein/sysmaint/internal/logentry"
	"github.com/thoreinstein/sysmaint/internal/logging"
	"github.com/thoreinstein/sysmaint/internal/render"
	"github.com/thoreinstein/sysmaint/internal/report"
)

// ReportTitle is the heading of every generated report.
const ReportTitle = "System Maintenance Report"

// Update status texts shown in the system info section.
const (
	UpdateCompleted   = "Completed"
	UpdateSkipped     = "Skipped"
	UpdateNotRecorded = "Not recorded"
	UpdateFailed      = "Failed"
)

// Pipeline runs the collectors and builds a report. Create one per run.
type Pipeline struct {
	cfg        config.Config
	collectors collector.Set
	classifier *classify.Classifier
	workspace  *collector.Workspace
	runID      string
	now        func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkspace saves every collected artifact into w.
func WithWorkspace(w *collector.Workspace) Option {
	return func(p *Pipeline) {
		p.workspace = w
	}
}

// WithRunID sets the identifier shown in the report.
func WithRunID(id string) Option {
	return func(p *Pipeline) {
		p.runID = id
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New creates a Pipeline over the given collectors.
func New(cfg config.Config, collectors collector.Set, classifier *classify.Classifier, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		collectors: collectors,
		classifier: classifier,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Failure records a collector step that did not produce its artifact.
type Failure struct {
	Step string
	Err  error
}

// Result is the outcome of a completed run.
type Result struct {
	RunID      string
	Hostname   string
	StartedAt  time.Time
	FinishedAt time.Time
	Report     *report.Report
	Findings   []classify.Finding
	Counts     classify.Counts
	Failures   []Failure
}

type run struct {
	*Pipeline
	log      *slog.Logger
	bodies   map[report.SectionID]template.HTML
	failures []Failure
}

// Run executes every step in order. It returns an error marked with
// errors.ErrInterrupted if ctx is cancelled before the report is compiled.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	r := &run{
		Pipeline: p,
		log:      logging.FromContext(ctx).With("run_id", p.runID),
		bodies:   make(map[report.SectionID]template.HTML, len(report.Order)),
	}
	started := p.now()
	r.log.Info("run started", "skip_update", p.cfg.SkipUpdate, "skip_smart", p.cfg.SkipSMART, "skip_integrity", p.cfg.SkipIntegrity)

	// Update runs first so the remaining snapshots reflect the upgraded
	// system.
	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	updateStatus := r.update(ctx)

	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	info := r.systemInfo(ctx)
	hostname := info.Hostname
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	r.bodies[report.SystemInfo] = render.SystemInfo(render.SystemInfoData{
		Info:   info,
		RunID:  p.runID,
		Update: updateStatus,
		Now:    started,
	})

	textSteps := []struct {
		id     report.SectionID
		file   string
		fn     func(context.Context) (string, error)
		render func(string) template.HTML
	}{
		{report.DiskUsage, collector.DiskFile, p.collectors.Disk.DiskUsage, render.DiskUsage},
		{report.MemoryUsage, collector.MemoryFile, p.collectors.Memory.MemoryUsage, render.MemoryUsage},
		{report.CPULoad, collector.CPUFile, p.collectors.CPU.CPULoad, render.CPULoad},
	}
	for _, s := range textSteps {
		if err := interrupted(ctx); err != nil {
			return nil, err
		}
		text, err := r.text(ctx, s.id, s.file, s.fn)
		if err != nil {
			r.bodies[s.id] = render.Unavailable(s.id.Title(), err)
			continue
		}
		r.bodies[s.id] = s.render(text)
	}

	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	r.bodies[report.SmartStatus] = r.smart(ctx)

	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	findings, counts := r.logs(ctx)

	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	r.bodies[report.PackageIntegrity] = r.integrity(ctx)

	if err := interrupted(ctx); err != nil {
		return nil, err
	}
	finished := p.now()
	rep := report.Compile(ReportTitle, hostname, r.bodies, finished)

	r.log.Info("run finished",
		"duration", finished.Sub(started).Round(time.Millisecond),
		"findings", len(findings),
		"high", counts[classify.High],
		"medium", counts[classify.Medium],
		"low", counts[classify.Low],
		"failed_steps", len(r.failures),
	)

	return &Result{
		RunID:      p.runID,
		Hostname:   hostname,
		StartedAt:  started,
		FinishedAt: finished,
		Report:     rep,
		Findings:   findings,
		Counts:     counts,
		Failures:   r.failures,
	}, nil
}

// interrupted reports cancellation between steps.
func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Mark(errors.Wrap(err, "run interrupted between collector steps"), errors.ErrInterrupted)
	}
	return nil
}

// stepContext bounds one collector call by the configured timeout.
func (r *run) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.CollectorTimeout > 0 {
		return context.WithTimeout(ctx, r.cfg.CollectorTimeout)
	}
	return ctx, func() {}
}

func (r *run) fail(step string, err error) {
	r.failures = append(r.failures, Failure{Step: step, Err: err})
	r.log.Warn("collector failed", "step", step, "error", err)
}

func (r *run) save(name string, fn func() error) {
	if r.workspace == nil {
		return
	}
	if err := fn(); err != nil {
		r.log.Warn("saving artifact failed", "artifact", name, "error", err)
	}
}

func (r *run) text(ctx context.Context, id report.SectionID, file string, fn func(context.Context) (string, error)) (string, error) {
	stepCtx, cancel := r.stepContext(ctx)
	defer cancel()

	r.log.Debug("collecting", "step", string(id))
	text, err := fn(stepCtx)
	if err != nil {
		r.fail(string(id), err)
		return "", err
	}
	r.save(file, func() error { return r.workspace.SaveText(file, text) })
	return text, nil
}

func (r *run) update(ctx context.Context) string {
	if r.cfg.SkipUpdate {
		r.log.Info("system update skipped")
		r.save(collector.UpdateFile, func() error {
			return r.workspace.SaveText(collector.UpdateFile, collector.UpdateSkippedText)
		})
		return UpdateSkipped
	}
	stepCtx, cancel := r.stepContext(ctx)
	defer cancel()

	r.log.Info("updating packages")
	transcript, err := r.collectors.Updater.Update(stepCtx)
	if transcript != "" {
		r.save(collector.UpdateFile, func() error { return r.workspace.SaveText(collector.UpdateFile, transcript) })
	}
	switch {
	case err == nil:
		return UpdateCompleted
	case errors.Is(err, collector.ErrSkipped):
		return UpdateSkipped
	case errors.Is(err, collector.ErrArtifactMissing):
		return UpdateNotRecorded
	default:
		r.fail("update", err)
		return UpdateFailed + ": " + err.Error()
	}
}

func (r *run) systemInfo(ctx context.Context) collector.SystemInfo {
	stepCtx, cancel := r.stepContext(ctx)
	defer cancel()

	info, err := r.collectors.Info.SystemInfo(stepCtx)
	if err != nil {
		r.fail(string(report.SystemInfo), err)
		return collector.SystemInfo{}
	}
	r.save(collector.SystemInfoFile, func() error { return r.workspace.SaveSystemInfo(info) })
	return info
}

func (r *run) smart(ctx context.Context) template.HTML {
	if r.cfg.SkipSMART {
		r.log.Info("SMART checks skipped")
		return render.Skipped(render.SMARTSkipped)
	}
	stepCtx, cancel := r.stepContext(ctx)
	defer cancel()

	results, err := r.collectors.SMART.SMART(stepCtx)
	if err != nil {
		r.fail(string(report.SmartStatus), err)
		return render.Unavailable(report.SmartStatus.Title(), err)
	}
	r.save(collector.SMARTDir, func() error { return r.workspace.SaveSMART(results) })
	return render.SmartStatus(results)
}

func (r *run) logs(ctx context.Context) ([]classify.Finding, classify.Counts) {
	text, err := r.text(ctx, report.SystemErrors, collector.ErrorLogFile, r.collectors.Logs.ErrorLog)
	if err != nil {
		r.bodies[report.SystemErrors] = render.Unavailable(report.SystemErrors.Title(), err)
		return nil, classify.Counts{}
	}

	entries := logentry.ParseAll(text)
	findings, counts := r.classifier.ClassifyEntries(entries)
	r.log.Debug("classified log entries", "entries", len(entries))
	r.bodies[report.SystemErrors] = render.Findings(findings, counts, r.cfg.Location())
	return findings, counts
}

func (r *run) integrity(ctx context.Context) template.HTML {
	if r.cfg.SkipIntegrity {
		r.log.Info("package integrity check skipped")
		return render.Skipped(render.IntegritySkipped)
	}
	stepCtx, cancel := r.stepContext(ctx)
	defer cancel()

	result, err := r.collectors.Integrity.Integrity(stepCtx)
	if err != nil {
		r.fail(string(report.PackageIntegrity), err)
		return render.Unavailable(report.PackageIntegrity.Title(), err)
	}
	r.save(collector.IntegrityFile, func() error { return r.workspace.SaveIntegrity(result) })
	return render.PackageIntegrity(result.Raw, result.Failing)
}
