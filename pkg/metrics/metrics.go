// Package metrics exposes Prometheus metrics for batch runs.
//
// All vectors are registered with the default registry on first import.
// A Collector binds them to one puzzle part so the runner does not repeat
// label values:
//
//	c := metrics.NewCollector("gears", 2)
//	timer := metrics.NewTimer("solve")
//	result, err := solver.Solve(ctx, in)
//	c.ObservePhase("solve", timer.Stop())
//	c.RecordLines(lines, err)
//
// WriteTextfile dumps the registry in the text exposition format for
// node_exporter's textfile collector, which suits a CLI that exits after
// one batch.
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LinesProcessed counts input lines handed to solvers.
	// Labels: puzzle, part, status (success/failure)
	LinesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linescan_lines_processed_total",
			Help: "Total number of input lines processed",
		},
		[]string{"puzzle", "part", "status"},
	)

	// PhaseLatency tracks the duration of each batch phase in seconds.
	// Labels: puzzle, phase (load/index/solve/batch)
	PhaseLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "linescan_phase_latency_seconds",
			Help: "Batch phase latency in seconds",
			Buckets: []float64{
				1e-6, // 1μs
				1e-5, // 10μs
				1e-4, // 100μs
				1e-3, // 1ms
				1e-2, // 10ms
				1e-1, // 100ms
				1,    // 1s
				10,   // 10s
			},
		},
		[]string{"puzzle", "phase"},
	)

	// LastResult holds the answer of the most recent successful run.
	// Labels: puzzle, part
	LastResult = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "linescan_last_result",
			Help: "Result of the most recent successful run",
		},
		[]string{"puzzle", "part"},
	)

	// InputBytes counts bytes loaded from input files.
	// Labels: compression
	InputBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linescan_input_bytes_total",
			Help: "Total number of input bytes loaded",
		},
		[]string{"compression"},
	)

	// Throughput tracks lines per second of the most recent solve
	Throughput = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "linescan_throughput_lines_per_second",
			Help: "Lines per second of the most recent solve",
		},
		[]string{"puzzle", "part"},
	)
)

// Collector records the metrics of one puzzle part
type Collector struct {
	puzzle string
	part   string
}

// NewCollector creates a collector for a puzzle part
func NewCollector(puzzle string, part int) *Collector {
	return &Collector{puzzle: puzzle, part: strconv.Itoa(part)}
}

// ObservePhase records how long a phase took
func (c *Collector) ObservePhase(phase string, d time.Duration) {
	PhaseLatency.WithLabelValues(c.puzzle, phase).Observe(d.Seconds())
}

// RecordLines counts n lines with a status derived from err
func (c *Collector) RecordLines(n int, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	LinesProcessed.WithLabelValues(c.puzzle, c.part, status).Add(float64(n))
}

// SetResult publishes the answer of a successful run
func (c *Collector) SetResult(v int64) {
	LastResult.WithLabelValues(c.puzzle, c.part).Set(float64(v))
}

// Tracker returns a throughput tracker for this puzzle part
func (c *Collector) Tracker() *ThroughputTracker {
	return NewThroughputTracker(c.puzzle, c.part)
}

// WriteTextfile writes the default registry to path in the Prometheus text
// format. The file is replaced atomically.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Timer measures the duration of an operation.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Name returns the timer's name
func (t *Timer) Name() string {
	return t.name
}

// Stop returns the elapsed duration since creation. It can be called
// repeatedly.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}

// ThroughputTracker tracks lines per second over time windows.
// Thread-safe for concurrent use.
type ThroughputTracker struct {
	mu        sync.Mutex
	count     int64
	lastReset time.Time
	puzzle    string
	part      string
}

// NewThroughputTracker creates a new throughput tracker for a puzzle part
func NewThroughputTracker(puzzle, part string) *ThroughputTracker {
	return &ThroughputTracker{
		lastReset: time.Now(),
		puzzle:    puzzle,
		part:      part,
	}
}

// Increment adds n to the line count
func (t *ThroughputTracker) Increment(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count += n
}

// GetAndReset calculates the current throughput, publishes it, and starts a
// new window.
func (t *ThroughputTracker) GetAndReset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := time.Since(t.lastReset).Seconds()
	if elapsed == 0 {
		return 0
	}

	throughput := float64(t.count) / elapsed
	t.count = 0
	t.lastReset = time.Now()

	Throughput.WithLabelValues(t.puzzle, t.part).Set(throughput)
	return throughput
}
