// Package observability wires OpenTelemetry tracing and metering for batch
// runs.
//
// A Provider owns its tracer and meter providers; nothing is installed
// globally unless the caller asks for it with Install. When tracing is
// disabled the Provider hands out no-op spans so call sites never branch on
// configuration. Run counters are always kept and read back with Counter.
package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config contains tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	SamplingRate   float64
	// Writer receives exported spans; nil means stdout
	Writer       io.Writer
	PrettyPrint  bool
	BatchTimeout time.Duration
}

// DefaultConfig returns a disabled configuration for the linescan service
func DefaultConfig() Config {
	return Config{
		ServiceName:    "linescan",
		ServiceVersion: "1.0.0",
		SamplingRate:   1.0,
		BatchTimeout:   time.Second,
	}
}

// Counter names recorded by RecordRun
const (
	RunsCounter  = "linescan.runs"
	LinesCounter = "linescan.lines"
)

// Provider hands out tracers and meter instruments
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
	mp     *sdkmetric.MeterProvider
	reader *sdkmetric.ManualReader
	meter  metric.Meter

	runs  metric.Int64Counter
	lines metric.Int64Counter
}

// New builds a provider from cfg
func New(cfg Config) (*Provider, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	p := &Provider{reader: sdkmetric.NewManualReader()}
	p.mp = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(p.reader),
	)
	p.meter = p.mp.Meter(cfg.ServiceName)

	if cfg.Enabled {
		tp, err := newTracerProvider(cfg, res)
		if err != nil {
			return nil, err
		}
		p.tp = tp
		p.tracer = tp.Tracer(cfg.ServiceName)
	} else {
		p.tracer = noop.NewTracerProvider().Tracer(cfg.ServiceName)
	}

	p.runs, err = p.meter.Int64Counter(RunsCounter,
		metric.WithDescription("Completed batch runs"))
	if err != nil {
		return nil, fmt.Errorf("failed to create runs counter: %w", err)
	}
	p.lines, err = p.meter.Int64Counter(LinesCounter,
		metric.WithDescription("Lines handed to solvers"),
		metric.WithUnit("{line}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create lines counter: %w", err)
	}
	return p, nil
}

func newTracerProvider(cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	if cfg.PrettyPrint {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SamplingRate <= 0:
		sampler = sdktrace.NeverSample()
	case cfg.SamplingRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SamplingRate)
	}

	batchTimeout := cfg.BatchTimeout
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(batchTimeout)),
	), nil
}

// Install makes the provider's tracer and meter providers the global ones
func (p *Provider) Install() {
	if p.tp != nil {
		otel.SetTracerProvider(p.tp)
	}
	otel.SetMeterProvider(p.mp)
}

// Tracer returns the provider's tracer
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Shutdown flushes pending spans and stops the exporter and the meter
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown meter: %w", err)
	}
	if p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer: %w", err)
	}
	return nil
}

// RecordRun counts one finished batch and its lines on the meter
func (p *Provider) RecordRun(ctx context.Context, puzzle string, part, lines int, err error) {
	attrs := metric.WithAttributes(
		attribute.String("puzzle", puzzle),
		attribute.Int("part", part),
		attribute.String("status", getStatus(err)),
	)
	p.runs.Add(ctx, 1, attrs)
	p.lines.Add(ctx, int64(lines), attrs)
}

// Counter returns the cumulative value of the named counter for the given
// status ("success" or "error"), summed over every puzzle and part. An empty
// status sums all of them.
func (p *Provider) Counter(ctx context.Context, name, status string) (int64, error) {
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(ctx, &rm); err != nil {
		return 0, fmt.Errorf("failed to collect metrics: %w", err)
	}

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if m.Name != name || !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				if v, _ := dp.Attributes.Value("status"); status == "" || v.AsString() == status {
					total += dp.Value
				}
			}
		}
	}
	return total, nil
}

// Span wraps a trace span with deferred attributes
type Span struct {
	span       trace.Span
	startTime  time.Time
	attributes []attribute.KeyValue
}

// StartSpan starts a span named name
func (p *Provider) StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := p.tracer.Start(ctx, name)
	return ctx, &Span{span: span, startTime: time.Now()}
}

// SetAttribute adds an attribute, applied when the span ends
func (s *Span) SetAttribute(key string, value interface{}) {
	var attr attribute.KeyValue

	switch v := value.(type) {
	case string:
		attr = attribute.String(key, v)
	case int:
		attr = attribute.Int(key, v)
	case int64:
		attr = attribute.Int64(key, v)
	case float64:
		attr = attribute.Float64(key, v)
	case bool:
		attr = attribute.Bool(key, v)
	default:
		attr = attribute.String(key, fmt.Sprintf("%v", v))
	}

	s.attributes = append(s.attributes, attr)
}

// End ends the span, marking it failed when err is non-nil
func (s *Span) End(err error) time.Duration {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}

	d := time.Since(s.startTime)
	s.attributes = append(s.attributes, attribute.Float64("duration_seconds", d.Seconds()))
	s.span.SetAttributes(s.attributes...)
	s.span.End()
	return d
}

// SpanContext returns the span's context
func (s *Span) SpanContext() trace.SpanContext {
	return s.span.SpanContext()
}

// TraceBatch runs fn inside a span that records the batch size
func (p *Provider) TraceBatch(ctx context.Context, name string, size int, fn func(context.Context) error) error {
	ctx, span := p.StartSpan(ctx, name)
	span.SetAttribute("batch.size", size)

	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start).Seconds(); err == nil && elapsed > 0 {
		span.SetAttribute("batch.throughput", float64(size)/elapsed)
	}
	span.End(err)
	return err
}

func getStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
