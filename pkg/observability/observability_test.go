package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProvider(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx, span := p.StartSpan(context.Background(), "batch")
	span.SetAttribute("lines", 10)
	span.End(nil)
	assert.False(t, span.SpanContext().IsValid())

	p.RecordRun(ctx, "gears", 1, 10, nil)
	runs, err := p.Counter(ctx, RunsCounter, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), runs)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestRecordRunCounts(t *testing.T) {
	p, err := New(DefaultConfig())
	require.NoError(t, err)
	ctx := context.Background()

	p.RecordRun(ctx, "gears", 1, 10, nil)
	p.RecordRun(ctx, "cards", 2, 6, nil)
	p.RecordRun(ctx, "cards", 1, 4, errors.New("bad card"))

	tests := []struct {
		name   string
		status string
		want   int64
	}{
		{name: RunsCounter, want: 3},
		{name: RunsCounter, status: "success", want: 2},
		{name: RunsCounter, status: "error", want: 1},
		{name: LinesCounter, want: 20},
		{name: LinesCounter, status: "success", want: 16},
		{name: "linescan.unknown", want: 0},
	}
	for _, tt := range tests {
		got, err := p.Counter(ctx, tt.name, tt.status)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s status=%q", tt.name, tt.status)
	}

	require.NoError(t, p.Shutdown(ctx))
	_, err = p.Counter(ctx, RunsCounter, "")
	assert.Error(t, err)
}

func TestTracingExportsSpans(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Writer = &out

	p, err := New(cfg)
	require.NoError(t, err)

	ctx, batch := p.StartSpan(context.Background(), "batch")
	batch.SetAttribute("puzzle", "cards")
	batch.SetAttribute("part", 2)
	batch.SetAttribute("strict", false)
	batch.SetAttribute("ratio", 0.5)
	batch.SetAttribute("result", int64(30))
	batch.SetAttribute("other", []int{1})

	err = p.TraceBatch(ctx, "solve", 6, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = p.TraceBatch(ctx, "index", 6, func(context.Context) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.True(t, batch.SpanContext().IsValid())
	batch.End(nil)

	require.NoError(t, p.Shutdown(context.Background()))

	exported := out.String()
	for _, name := range []string{`"batch"`, `"solve"`, `"index"`, `"batch.size"`, `"boom"`, `"puzzle"`} {
		assert.Contains(t, exported, name)
	}
}

func TestNeverSample(t *testing.T) {
	var out bytes.Buffer
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.SamplingRate = 0
	cfg.Writer = &out

	p, err := New(cfg)
	require.NoError(t, err)

	_, span := p.StartSpan(context.Background(), "batch")
	span.End(nil)
	require.NoError(t, p.Shutdown(context.Background()))
	assert.Empty(t, out.String())
}

func TestGetStatus(t *testing.T) {
	assert.Equal(t, "success", getStatus(nil))
	assert.Equal(t, "error", getStatus(errors.New("x")))
}
