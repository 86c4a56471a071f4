// Package testutil provides helpers shared by solver tests
package testutil

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/lines"
	"github.com/ajitpratap0/linescan/pkg/puzzle"
	"github.com/ajitpratap0/linescan/pkg/puzzle/registry"
)

// Workers and ChunkSize are small enough that the sample inputs still
// spread over several chunks.
const (
	Workers   = 3
	ChunkSize = 2
)

// Input indexes data and wraps it in a solver input that logs to the test
func Input(t testing.TB, data string) *puzzle.Input {
	t.Helper()
	buf := []byte(data)
	return &puzzle.Input{
		Data:      buf,
		Lines:     lines.Split(buf),
		Workers:   Workers,
		ChunkSize: ChunkSize,
		Logger:    zaptest.NewLogger(t),
	}
}

// TestContext creates a test context with a 30-second timeout, cancelled
// when the test ends.
func TestContext(t testing.TB) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Solve runs the registered solver for name and part over data. A nil cfg
// uses the defaults.
func Solve(t testing.TB, name string, part int, cfg *config.BaseConfig, data string) (int64, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.NewBaseConfig("test")
	}
	s, err := registry.Create(name, part, cfg)
	if err != nil {
		t.Fatalf("create %s: %v", registry.Key(name, part), err)
	}
	return s.Solve(TestContext(t), Input(t, data))
}
