package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	gojson "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/performance"
)

func sampleReport() *Report {
	return &Report{
		RunID:     "7f9c2ba4-e88f-4b4b-8d5d-6f2e1c2d3a4b",
		Puzzle:    "gears",
		Part:      2,
		File:      "day03.txt",
		Digest:    "af1349b9",
		Lines:     140,
		Result:    467835,
		StartedAt: time.Date(2023, 12, 3, 6, 0, 0, 0, time.UTC),
		Elapsed:   1500 * time.Microsecond,
		Resources: &performance.ResourceUsage{GoroutineCount: 4, LogicalCPUs: 8},
	}
}

func TestTextSink(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewTextSink(&out).Show(sampleReport()))

	assert.Equal(t, "Elapsed time: 1.5ms\nResult: 467835\n", out.String())
}

func TestTextSinkVerbose(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewTextSink(&out).Verbose(true).Show(sampleReport()))

	assert.Contains(t, out.String(), "gears/2")
	assert.Contains(t, out.String(), "140 lines")
}

func TestJSONSink(t *testing.T) {
	var out bytes.Buffer
	sink, err := NewSink("json", &out)
	require.NoError(t, err)
	require.NoError(t, sink.Show(sampleReport()))

	var got Report
	require.NoError(t, gojson.Unmarshal(out.Bytes(), &got))
	if diff := cmp.Diff(sampleReport(), &got); diff != "" {
		t.Errorf("json report mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, out.String(), `"elapsed_ns":1500000`)
}

func TestCBORSinkIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	sa, err := NewSink("cbor", &a)
	require.NoError(t, err)
	sb, err := NewSink("CBOR", &b)
	require.NoError(t, err)

	require.NoError(t, sa.Show(sampleReport()))
	require.NoError(t, sb.Show(sampleReport()))
	assert.Equal(t, a.Bytes(), b.Bytes())

	var got Report
	require.NoError(t, cbor.Unmarshal(a.Bytes(), &got))
	if diff := cmp.Diff(sampleReport(), &got); diff != "" {
		t.Errorf("cbor report mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSinkUnknown(t *testing.T) {
	_, err := NewSink("xml", &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
