// Package pipeline runs one puzzle batch end to end: load the input, index
// its lines, fan the solver out over the records and collect a report.
//
// # Phases
//
// Every run goes through the same phases, each traced as a span and timed
// into linescan_phase_latency_seconds:
//   - load: read or map the file, decompressing if needed
//   - index: split the buffer into line spans
//   - solve: the registered solver's parallel pass and reduction
//
// Any error aborts the run; the runner never returns a partial result.
//
// # Basic Usage
//
//	runner, err := pipeline.NewRunner(cfg, logger)
//	rep, err := runner.Run(ctx, pipeline.Request{Puzzle: "gears", Part: 2, Path: "day03.txt"})
//	sink.Show(rep)
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/input"
	"github.com/ajitpratap0/linescan/pkg/lines"
	"github.com/ajitpratap0/linescan/pkg/logger"
	"github.com/ajitpratap0/linescan/pkg/metrics"
	"github.com/ajitpratap0/linescan/pkg/observability"
	"github.com/ajitpratap0/linescan/pkg/performance"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
	"github.com/ajitpratap0/linescan/pkg/report"
)

// Request selects the puzzle part and its input. Data, when non-nil, is
// used instead of reading Path.
type Request struct {
	Puzzle string
	Part   int
	Path   string
	Data   []byte
}

// Runner executes batches with a fixed configuration
type Runner struct {
	cfg      *config.BaseConfig
	logger   *zap.Logger
	registry *registry.Registry
	tracing  *observability.Provider
}

// Option configures a Runner
type Option func(*Runner)

// WithRegistry resolves solvers from reg instead of the global registry
func WithRegistry(reg *registry.Registry) Option {
	return func(r *Runner) {
		r.registry = reg
	}
}

// WithTracing exports spans through p
func WithTracing(p *observability.Provider) Option {
	return func(r *Runner) {
		r.tracing = p
	}
}

// NewRunner creates a runner. The configuration is validated once here.
func NewRunner(cfg *config.BaseConfig, log *zap.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.NewBaseConfig("default")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid configuration")
	}
	if log == nil {
		log = logger.Get()
	}

	r := &Runner{
		cfg:      cfg,
		logger:   log.With(zap.String("component", "runner")),
		registry: registry.GetRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.tracing == nil {
		p, err := observability.New(observability.DefaultConfig())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create tracing provider")
		}
		r.tracing = p
	}
	return r, nil
}

// Run executes one batch and returns its report
func (r *Runner) Run(ctx context.Context, req Request) (*report.Report, error) {
	runID := uuid.NewString()
	ctx = logger.NewContext(ctx, runID, registry.Key(req.Puzzle, req.Part), req.Path)
	log := logger.FromContext(ctx, r.logger)

	solver, err := r.registry.Create(req.Puzzle, req.Part, r.cfg)
	if err != nil {
		return nil, err
	}

	monitor := performance.NewResourceMonitor()
	collector := metrics.NewCollector(req.Puzzle, req.Part)
	rep := &report.Report{
		RunID:     runID,
		Puzzle:    req.Puzzle,
		Part:      req.Part,
		File:      req.Path,
		StartedAt: time.Now().UTC(),
	}

	ctx, batch := r.tracing.StartSpan(ctx, "batch")
	batch.SetAttribute("run_id", runID)
	batch.SetAttribute("puzzle", req.Puzzle)
	batch.SetAttribute("part", req.Part)

	log.Debug("run started")
	err = r.run(ctx, req, solver, collector, rep)
	rep.Elapsed = batch.End(err)
	collector.ObservePhase("batch", rep.Elapsed)
	collector.RecordLines(rep.Lines, err)
	r.tracing.RecordRun(ctx, req.Puzzle, req.Part, rep.Lines, err)

	if err != nil {
		log.Error("run failed", zap.Error(err), zap.Duration("elapsed", rep.Elapsed))
		return nil, err
	}

	collector.SetResult(rep.Result)
	rep.Resources = monitor.GetResourceUsage()
	log.Info("run completed",
		zap.Int64("result", rep.Result),
		zap.Int("lines", rep.Lines),
		zap.Duration("elapsed", rep.Elapsed))
	return rep, nil
}

func (r *Runner) run(ctx context.Context, req Request, solver puzzle.Solver, collector *metrics.Collector, rep *report.Report) error {
	data := req.Data
	if data == nil {
		timer := metrics.NewTimer("load")
		buf, err := input.Load(req.Path, input.OptionsFromConfig(r.cfg))
		if err != nil {
			return err
		}
		defer buf.Close()
		collector.ObservePhase(timer.Name(), timer.Stop())

		if err := buf.Prefetch(); err != nil {
			// non-fatal
			logger.FromContext(ctx, r.logger).Debug("prefetch failed", zap.Error(err))
		}
		data = buf.Bytes()
		rep.Compression = string(buf.Compression())
		rep.Digest = buf.Digest()
		metrics.InputBytes.WithLabelValues(rep.Compression).Add(float64(len(data)))
	}

	var idx *lines.Index
	timer := metrics.NewTimer("index")
	err := r.tracing.TraceBatch(ctx, "index", len(data), func(context.Context) error {
		idx = lines.Split(data)
		return nil
	})
	collector.ObservePhase(timer.Name(), timer.Stop())
	if err != nil {
		return err
	}
	rep.Lines = idx.Len()
	if rep.Digest == "" {
		rep.Digest = input.Digest(data)
	}

	in := &puzzle.Input{
		Data:      data,
		Lines:     idx,
		Workers:   r.cfg.Performance.GetWorkers(),
		ChunkSize: r.cfg.Performance.ChunkSize,
		Logger:    logger.FromContext(ctx, r.logger),
	}

	timer = metrics.NewTimer("solve")
	tracker := collector.Tracker()
	err = r.tracing.TraceBatch(ctx, "solve", idx.Len(), func(ctx context.Context) error {
		result, err := solver.Solve(ctx, in)
		rep.Result = result
		return err
	})
	collector.ObservePhase(timer.Name(), timer.Stop())
	if err != nil {
		return err
	}
	tracker.Increment(int64(idx.Len()))
	tracker.GetAndReset()
	in.Logger.Debug("batch solved", zap.Int("lines", idx.Len()), zap.Int("workers", in.Workers))
	return nil
}
