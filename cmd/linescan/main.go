package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/internal/pipeline"
	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/logger"
	"github.com/ajitpratap0/linescan/pkg/metrics"
	"github.com/ajitpratap0/linescan/pkg/observability"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
	"github.com/ajitpratap0/linescan/pkg/report"

	// Register every solver
	_ "github.com/ajitpratap0/linescan/internal/solvers/cards"
	_ "github.com/ajitpratap0/linescan/internal/solvers/cubes"
	_ "github.com/ajitpratap0/linescan/internal/solvers/gears"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "linescan",
		Short: "linescan - parallel solver for line-oriented puzzle inputs",
		Long: `linescan loads a text input once, indexes its lines and fans a registered
solver out over them across all cores. Grids of part numbers and gears,
scratchcard records and cube games are built in.`,
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "linescan v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered puzzles",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available puzzles:")
			for _, info := range registry.List() {
				fmt.Fprintf(out, "  - %-8s %s\n", info.Key(), info.Description)
			}
		},
	})

	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var v *viper.Viper

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Solve one puzzle part",
		Long: `Solve one puzzle part over an input file and print the elapsed time and result.
Settings come from the optional config file, then LINESCAN_* environment
variables, then flags.

Example:
  linescan run --puzzle gears --part 2 --input day03.txt
  LINESCAN_WORKERS=4 linescan run -p cards -n 1 -i day04.txt.zst --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"puzzle", "input"} {
				if v.GetString(name) == "" {
					return fmt.Errorf("--%s is required", name)
				}
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if path := v.GetString("save-config"); path != "" {
				if err := config.Save(path, cfg); err != nil {
					return err
				}
			}
			return runPuzzle(cmd, v, cfg)
		},
	}

	flags := runCmd.Flags()
	flags.StringP("config", "c", "", "Path to a YAML or JSON configuration file")
	flags.StringP("puzzle", "p", "", "Puzzle name (see 'linescan list')")
	flags.IntP("part", "n", 1, "Puzzle part")
	flags.StringP("input", "i", "", "Path to the input file")
	flags.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
	flags.Int("chunk-size", 16, "Records a worker claims at once")
	flags.String("compression", "auto", "Input compression (auto, none, gzip, zstd, lz4, snappy, s2)")
	flags.Bool("mmap", true, "Memory-map plain input files")
	flags.String("format", "text", "Output format ("+strings.Join(report.Formats, ", ")+")")
	flags.BoolP("verbose", "v", false, "Print run details below the result")
	flags.Bool("strict-gears", false, "Fail when a gear touches three or more numbers")
	flags.String("log-level", "error", "Log level (debug, info, warn, error)")
	flags.Bool("trace", false, "Export spans to stderr")
	flags.String("metrics-path", "", "Write Prometheus metrics to this file after the run")
	flags.String("save-config", "", "Write the effective configuration to this YAML file before running")

	v = bindSettings(flags)
	return runCmd
}

// bindSettings returns a viper instance resolving every flag from the
// command line first and LINESCAN_<FLAG> second
func bindSettings(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("LINESCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, name := range flagNames(flags) {
		_ = v.BindEnv(name)
	}
	_ = v.BindPFlags(flags)
	return v
}

// loadConfig reads the config file, if any, and overlays values that were
// set through the environment or on the command line.
func loadConfig(v *viper.Viper) (*config.BaseConfig, error) {
	cfg := config.NewBaseConfig("linescan")
	cfg.Observability.LogLevel = v.GetString("log-level")

	if path := v.GetString("config"); path != "" {
		loaded, err := config.LoadBase(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	overlay := []struct {
		key   string
		apply func()
	}{
		{"workers", func() { cfg.Performance.Workers = v.GetInt("workers") }},
		{"chunk-size", func() { cfg.Performance.ChunkSize = v.GetInt("chunk-size") }},
		{"compression", func() { cfg.Input.Compression = v.GetString("compression") }},
		{"mmap", func() { cfg.Input.UseMmap = v.GetBool("mmap") }},
		{"strict-gears", func() { cfg.Grid.StrictGears = v.GetBool("strict-gears") }},
		{"log-level", func() { cfg.Observability.LogLevel = v.GetString("log-level") }},
		{"trace", func() { cfg.Observability.EnableTracing = v.GetBool("trace") }},
		{"metrics-path", func() { cfg.Observability.MetricsPath = v.GetString("metrics-path") }},
	}
	for _, o := range overlay {
		if v.IsSet(o.key) {
			o.apply()
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runPuzzle(cmd *cobra.Command, v *viper.Viper, cfg *config.BaseConfig) error {
	if err := logger.Init(logger.FromConfig(cfg.Observability)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get().With(zap.String("component", "linescan-cli"))

	tcfg := observability.DefaultConfig()
	tcfg.ServiceVersion = version
	tcfg.Enabled = cfg.Observability.EnableTracing
	tcfg.SamplingRate = cfg.Observability.TracingSampleRate
	tcfg.Writer = cmd.ErrOrStderr()
	tracing, err := observability.New(tcfg)
	if err != nil {
		return err
	}
	tracing.Install()
	defer func() {
		if err := tracing.Shutdown(context.Background()); err != nil {
			log.Warn("failed to flush spans", zap.Error(err))
		}
	}()

	sink, err := report.NewSink(v.GetString("format"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if text, ok := sink.(*report.TextSink); ok {
		text.Verbose(v.GetBool("verbose"))
	}

	runner, err := pipeline.NewRunner(cfg, logger.Get(), pipeline.WithTracing(tracing))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rep, err := runner.Run(ctx, pipeline.Request{
		Puzzle: v.GetString("puzzle"),
		Part:   v.GetInt("part"),
		Path:   v.GetString("input"),
	})
	if path := cfg.Observability.MetricsPath; path != "" && cfg.Observability.EnableMetrics {
		if werr := metrics.WriteTextfile(path); werr != nil {
			log.Warn("failed to write metrics", zap.String("path", path), zap.Error(werr))
		}
	}
	if err != nil {
		return err
	}

	return sink.Show(rep)
}

// flagNames returns the long names of every flag in fs
func flagNames(fs *pflag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	return names
}
