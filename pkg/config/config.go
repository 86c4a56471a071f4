package config

import (
	"fmt"
	"runtime"
	"strings"
)

// BaseConfig is the single configuration structure shared by the runner,
// the solvers and the CLI. Sections are grouped by concern:
//   - Performance: worker fan-out and chunk sizing
//   - Input: how files are read and decompressed
//   - Grid: placeholder and gear symbols for grid puzzles
//   - Records: card record shape and capacities
//   - Cubes: bag limits for cube games
//   - Observability: logging, metrics and tracing
type BaseConfig struct {
	// Name identifies the run configuration
	Name string `yaml:"name" json:"name"`
	// Version indicates the configuration version
	Version string `yaml:"version" json:"version"`

	Performance   PerformanceConfig   `yaml:"performance" json:"performance"`
	Input         InputConfig         `yaml:"input" json:"input"`
	Grid          GridConfig          `yaml:"grid" json:"grid"`
	Records       RecordConfig        `yaml:"records" json:"records"`
	Cubes         CubeConfig          `yaml:"cubes" json:"cubes"`
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// PerformanceConfig controls the parallel fan-out.
type PerformanceConfig struct {
	// Workers is the number of concurrent workers (0 = NumCPU)
	Workers int `yaml:"workers" json:"workers"`
	// ChunkSize is the number of records a worker claims at once
	ChunkSize int `yaml:"chunk_size" json:"chunk_size"`
}

// InputConfig controls file loading.
type InputConfig struct {
	// UseMmap memory-maps plain input files instead of reading them
	UseMmap bool `yaml:"use_mmap" json:"use_mmap"`
	// Compression is auto, none, gzip, zstd, lz4, snappy or s2
	Compression string `yaml:"compression" json:"compression"`
	// MaxBytes bounds the decompressed size of an input (0 = unlimited)
	MaxBytes int64 `yaml:"max_bytes" json:"max_bytes"`
}

// GridConfig configures grid-based puzzles.
type GridConfig struct {
	// Placeholder is the filler byte that is neither digit nor symbol
	Placeholder string `yaml:"placeholder" json:"placeholder"`
	// GearSymbol is the byte whose two adjacent numbers form a ratio
	GearSymbol string `yaml:"gear_symbol" json:"gear_symbol"`
	// StrictGears fails the batch when a gear touches three or more numbers
	StrictGears bool `yaml:"strict_gears" json:"strict_gears"`
}

// RecordConfig configures card records.
type RecordConfig struct {
	// HeaderWidth is the fixed label width to skip (0 = skip through the first ':')
	HeaderWidth int `yaml:"header_width" json:"header_width"`
	// Separator divides winning numbers from candidates
	Separator string `yaml:"separator" json:"separator"`
	// WinningCapacity caps the winning numbers per record (0 = unbounded)
	WinningCapacity int `yaml:"winning_capacity" json:"winning_capacity"`
	// CandidateCapacity caps the candidate numbers per record (0 = unbounded)
	CandidateCapacity int `yaml:"candidate_capacity" json:"candidate_capacity"`
	// MaxDigits caps the digits of a single number
	MaxDigits int `yaml:"max_digits" json:"max_digits"`
}

// CubeConfig holds the bag contents for cube games.
type CubeConfig struct {
	Red   int `yaml:"red" json:"red"`
	Green int `yaml:"green" json:"green"`
	Blue  int `yaml:"blue" json:"blue"`
}

// ObservabilityConfig contains monitoring and observability settings.
type ObservabilityConfig struct {
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
	// LogFormat is json or console
	LogFormat string `yaml:"log_format" json:"log_format"`
	// EnableMetrics activates Prometheus collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// MetricsPath, when set, receives the registry in text format after a run
	MetricsPath string `yaml:"metrics_path" json:"metrics_path"`
	// EnableTracing activates span export
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing"`
	// TracingSampleRate controls trace sampling (0.0-1.0)
	TracingSampleRate float64 `yaml:"tracing_sample_rate" json:"tracing_sample_rate"`
}

// NewBaseConfig creates a new BaseConfig with defaults that match the
// published puzzle inputs.
func NewBaseConfig(name string) *BaseConfig {
	return &BaseConfig{
		Name:    name,
		Version: "1.0.0",
		Performance: PerformanceConfig{
			Workers:   runtime.NumCPU(),
			ChunkSize: 16,
		},
		Input: InputConfig{
			UseMmap:     true,
			Compression: "auto",
			MaxBytes:    256 << 20, // 256MB
		},
		Grid: GridConfig{
			Placeholder: ".",
			GearSymbol:  "*",
		},
		Records: RecordConfig{
			Separator: "|",
			MaxDigits: 9,
		},
		Cubes: CubeConfig{
			Red:   12,
			Green: 13,
			Blue:  14,
		},
		Observability: ObservabilityConfig{
			LogLevel:          "info",
			LogFormat:         "json",
			EnableMetrics:     true,
			TracingSampleRate: 1.0,
		},
	}
}

var compressionNames = map[string]bool{
	"auto": true, "none": true, "gzip": true, "zstd": true,
	"lz4": true, "snappy": true, "s2": true,
}

// Validate validates the configuration for correctness.
func (bc *BaseConfig) Validate() error {
	if bc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if bc.Performance.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if bc.Performance.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive")
	}
	if !compressionNames[strings.ToLower(bc.Input.Compression)] {
		return fmt.Errorf("unsupported compression %q", bc.Input.Compression)
	}
	if bc.Input.MaxBytes < 0 {
		return fmt.Errorf("max_bytes cannot be negative")
	}
	if len(bc.Grid.Placeholder) != 1 {
		return fmt.Errorf("placeholder must be a single byte, got %q", bc.Grid.Placeholder)
	}
	if len(bc.Grid.GearSymbol) != 1 {
		return fmt.Errorf("gear_symbol must be a single byte, got %q", bc.Grid.GearSymbol)
	}
	if bc.Grid.Placeholder == bc.Grid.GearSymbol {
		return fmt.Errorf("placeholder and gear_symbol must differ")
	}
	if isDigit(bc.Grid.Placeholder[0]) || isDigit(bc.Grid.GearSymbol[0]) {
		return fmt.Errorf("placeholder and gear_symbol cannot be digits")
	}
	if len(bc.Records.Separator) != 1 || isDigit(bc.Records.Separator[0]) || bc.Records.Separator[0] == ' ' {
		return fmt.Errorf("separator must be a single non-digit, non-space byte, got %q", bc.Records.Separator)
	}
	if bc.Records.HeaderWidth < 0 {
		return fmt.Errorf("header_width cannot be negative")
	}
	if bc.Records.WinningCapacity < 0 || bc.Records.CandidateCapacity < 0 {
		return fmt.Errorf("capacities cannot be negative")
	}
	if bc.Records.MaxDigits <= 0 || bc.Records.MaxDigits > 18 {
		return fmt.Errorf("max_digits must be between 1 and 18")
	}
	if bc.Cubes.Red < 0 || bc.Cubes.Green < 0 || bc.Cubes.Blue < 0 {
		return fmt.Errorf("cube limits cannot be negative")
	}
	if bc.Observability.TracingSampleRate < 0 || bc.Observability.TracingSampleRate > 1 {
		return fmt.Errorf("tracing_sample_rate must be within [0, 1]")
	}
	return nil
}

// GetWorkers returns the number of workers, ensuring it's at least 1
func (p *PerformanceConfig) GetWorkers() int {
	if p.Workers <= 0 {
		return runtime.NumCPU()
	}
	return p.Workers
}

// PlaceholderByte returns the grid placeholder as a byte, '.' when unset
func (g *GridConfig) PlaceholderByte() byte {
	return firstByte(g.Placeholder, '.')
}

// GearByte returns the gear symbol as a byte, '*' when unset
func (g *GridConfig) GearByte() byte {
	return firstByte(g.GearSymbol, '*')
}

// SeparatorByte returns the record separator as a byte, '|' when unset
func (r *RecordConfig) SeparatorByte() byte {
	return firstByte(r.Separator, '|')
}

func firstByte(s string, fallback byte) byte {
	if s == "" {
		return fallback
	}
	return s[0]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
