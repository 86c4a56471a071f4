// Package config provides the configuration for linescan runs.
//
// A single BaseConfig carries every setting the runner, the solvers and the
// CLI need. NewBaseConfig returns defaults that match the published puzzle
// inputs, so most runs need no file at all.
//
// # Usage
//
//	cfg, err := config.LoadBase("linescan.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # File formats
//
// Files ending in .json or .jsonc are read as JSON with comments and
// trailing commas allowed; everything else is read as YAML. References of
// the form ${VAR_NAME} are replaced with the environment value first:
//
//	# linescan.yaml
//	name: nightly
//	performance:
//	  workers: ${LINESCAN_WORKERS}
//	records:
//	  winning_capacity: 10
//	  candidate_capacity: 25
//	grid:
//	  strict_gears: true
//
// # Sections
//
//   - Performance: worker count and chunk size of the parallel fan-out
//   - Input: memory mapping, compression detection and size bound
//   - Grid: placeholder byte, gear symbol, strict gear policy
//   - Records: header width, separator, capacities, digit width
//   - Cubes: bag limits for cube games
//   - Observability: logging, Prometheus metrics, tracing
//
// Capacities of zero mean "size to the data". A positive capacity is a
// checked limit: a record that exceeds it fails with capacity_exceeded
// instead of being truncated.
package config
