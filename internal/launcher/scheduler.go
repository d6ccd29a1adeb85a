// Package launcher spawns the windows of a template and drives each one
// through discovery and placement.
//
// Specs are grouped by kind. Each kind gets one lane that launches its jobs
// strictly one after another, so two new windows of the same kind are never
// pending discovery at once. Lanes of different kinds run concurrently.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/workspace-launcher/internal/discovery"
	"github.com/1broseidon/workspace-launcher/internal/monitor"
	"github.com/1broseidon/workspace-launcher/internal/placer"
	"github.com/1broseidon/workspace-launcher/internal/platform"
	"github.com/1broseidon/workspace-launcher/internal/position"
)

// Options tune a Scheduler. Zero values select defaults.
type Options struct {
	KittyCommand     string
	Shell            string
	DiscoveryTimeout time.Duration
	PollInterval     time.Duration
}

func (o Options) withDefaults() Options {
	if o.KittyCommand == "" {
		o.KittyCommand = "kitty"
	}
	if o.Shell == "" {
		o.Shell = "bash"
	}
	if o.DiscoveryTimeout <= 0 {
		o.DiscoveryTimeout = discovery.DefaultTimeout
	}
	if o.PollInterval <= 0 {
		o.PollInterval = discovery.DefaultPollInterval
	}
	return o
}

// Scheduler runs the jobs of one template invocation.
type Scheduler struct {
	registry   *monitor.Registry
	windows    platform.WindowLister
	spawner    Spawner
	discoverer *discovery.Discoverer
	placer     *placer.Placer
	opts       Options
	logger     *slog.Logger
	now        func() time.Time
}

// NewScheduler wires a scheduler against a detected registry and a window
// system backend.
func NewScheduler(registry *monitor.Registry, backend platform.Backend, spawner Spawner, opts Options, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	return &Scheduler{
		registry:   registry,
		windows:    backend,
		spawner:    spawner,
		discoverer: discovery.NewDiscoverer(backend, opts.PollInterval, logger),
		placer:     placer.New(backend, logger),
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

// Run launches every spec and waits until all jobs are positioned or failed.
//
// Monitor references are validated before anything is spawned; an unknown
// monitor aborts the run with *monitor.UnknownMonitorError and a nil report.
// Every other failure is confined to its job and recorded in the report.
func (s *Scheduler) Run(ctx context.Context, specs []WindowSpec) (*Report, error) {
	monitors := make([]monitor.Monitor, len(specs))
	for i, spec := range specs {
		mon, err := s.registry.Resolve(spec.Monitor)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", i+1, err)
		}
		monitors[i] = mon
	}

	report := newReport(s.now())
	logger := s.logger.With("run", report.RunID)
	logger.Info("launching windows", "windows", len(specs))

	var order []Kind
	lanes := make(map[Kind][]*Job)
	for i, spec := range specs {
		job := newJob(i, spec)

		rect, err := position.Resolve(spec.Position, monitors[i])
		if err != nil {
			s.finish(logger, report, job, err)
			continue
		}
		job.Rect = rect

		if _, ok := lanes[spec.Kind]; !ok {
			order = append(order, spec.Kind)
		}
		lanes[spec.Kind] = append(lanes[spec.Kind], job)
	}

	var g errgroup.Group
	for _, kind := range order {
		jobs := lanes[kind]
		laneLogger := logger.With("kind", string(kind))
		g.Go(func() error {
			for _, job := range jobs {
				s.runJob(ctx, laneLogger, report, job)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = s.now()
	logger.Info("run complete",
		"positioned", report.Positioned(),
		"failed", report.Failed(),
		"elapsed", report.Duration().Round(time.Millisecond),
	)
	return report, nil
}

// runJob takes one job to a terminal state. The snapshot is captured in the
// same lane immediately before the spawn.
func (s *Scheduler) runJob(ctx context.Context, logger *slog.Logger, report *Report, job *Job) {
	if err := ctx.Err(); err != nil {
		s.finish(logger, report, job, err)
		return
	}

	v, err := s.variant(job.Spec.Kind)
	if err != nil {
		s.finish(logger, report, job, &LaunchError{Err: err})
		return
	}
	argv, err := v.argv(job.Spec)
	if err != nil {
		s.finish(logger, report, job, &LaunchError{Err: err})
		return
	}

	before, err := discovery.Capture(s.windows)
	if err != nil {
		s.finish(logger, report, job, &LaunchError{Argv: argv, Err: err})
		return
	}
	pid, err := s.spawner.Spawn(argv)
	if err != nil {
		s.finish(logger, report, job, &LaunchError{Argv: argv, Err: err})
		return
	}
	if err := job.launched(pid, s.now()); err != nil {
		logger.Error("job state", "error", err)
		return
	}
	logger.Debug("spawned", "job", job.Index+1, "pid", pid, "argv", shellJoin(argv))

	win, err := s.discoverer.Discover(ctx, before, v.matcher(job.Spec, argv), s.opts.DiscoveryTimeout)
	if err != nil {
		s.finish(logger, report, job, err)
		return
	}
	job.Window = win.ID

	if err := s.placer.Place(win.ID, job.Rect, job.Spec.Desktop); err != nil {
		s.finish(logger, report, job, err)
		return
	}
	s.finish(logger, report, job, nil)
}

// finish moves job to its terminal state and appends it to the report.
func (s *Scheduler) finish(logger *slog.Logger, report *Report, job *Job, cause error) {
	now := s.now()
	if cause == nil {
		if err := job.positioned(job.Window, now); err != nil {
			cause = err
		}
	}
	if cause != nil {
		if err := job.fail(cause, now); err != nil {
			logger.Error("job state", "error", err)
		}
	}

	attrs := []any{
		"job", job.Index + 1,
		"spec", job.Spec.String(),
	}
	if job.State == StatePositioned {
		logger.Info("window positioned", append(attrs,
			"window", fmt.Sprintf("0x%x", uint32(job.Window)),
			"rect", fmt.Sprintf("%dx%d+%d+%d", job.Rect.Width, job.Rect.Height, job.Rect.X, job.Rect.Y),
		)...)
	} else {
		logger.Warn("window failed", append(attrs, "error", job.Err)...)
	}
	report.record(*job)
}

func (s *Scheduler) variant(k Kind) (variant, error) {
	switch k {
	case KindKitty:
		return kittyVariant{command: s.opts.KittyCommand, shell: s.opts.Shell}, nil
	case KindApp:
		return appVariant{}, nil
	default:
		return nil, fmt.Errorf("unknown window type %q", k)
	}
}
