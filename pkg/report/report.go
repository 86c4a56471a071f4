// Package report presents the outcome of a batch run.
//
// The runner produces one Report per run and hands it to a Sink chosen by
// the caller: styled text for terminals, JSON for scripts, or deterministic
// CBOR for archiving and diffing runs byte for byte.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fxamacker/cbor/v2"
	gojson "github.com/goccy/go-json"

	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/performance"
)

// Report is the outcome of one run
type Report struct {
	RunID       string                     `json:"run_id" cbor:"run_id"`
	Puzzle      string                     `json:"puzzle" cbor:"puzzle"`
	Part        int                        `json:"part" cbor:"part"`
	File        string                     `json:"file,omitempty" cbor:"file,omitempty"`
	Digest      string                     `json:"digest,omitempty" cbor:"digest,omitempty"`
	Compression string                     `json:"compression,omitempty" cbor:"compression,omitempty"`
	Lines       int                        `json:"lines" cbor:"lines"`
	Result      int64                      `json:"result" cbor:"result"`
	StartedAt   time.Time                  `json:"started_at" cbor:"started_at"`
	Elapsed     time.Duration              `json:"elapsed_ns" cbor:"elapsed_ns"`
	Resources   *performance.ResourceUsage `json:"resources,omitempty" cbor:"resources,omitempty"`
}

// Sink displays a report
type Sink interface {
	Show(r *Report) error
}

// Formats lists the names accepted by NewSink
var Formats = []string{"text", "json", "cbor"}

// NewSink returns the sink for format writing to w
func NewSink(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextSink(w), nil
	case "json":
		return &JSONSink{w: w}, nil
	case "cbor":
		return NewCBORSink(w)
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// TextSink prints the elapsed time and result as styled lines
type TextSink struct {
	w       io.Writer
	verbose bool
	label   lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
}

// NewTextSink creates a text sink. Styling adapts to whether w is a terminal.
func NewTextSink(w io.Writer) *TextSink {
	r := lipgloss.NewRenderer(w)
	return &TextSink{
		w:     w,
		label: r.NewStyle().Bold(true),
		value: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}),
		dim:   r.NewStyle().Faint(true),
	}
}

// Verbose makes the sink print run details below the result
func (s *TextSink) Verbose(v bool) *TextSink {
	s.verbose = v
	return s
}

// Show implements Sink
func (s *TextSink) Show(r *Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", s.label.Render("Elapsed time:"), s.value.Render(r.Elapsed.String()))
	fmt.Fprintf(&b, "%s %s\n", s.label.Render("Result:"), s.value.Render(fmt.Sprint(r.Result)))

	if s.verbose {
		fmt.Fprintln(&b, s.dim.Render(fmt.Sprintf("run %s  %s/%d  %d lines  %s", r.RunID, r.Puzzle, r.Part, r.Lines, r.Digest)))
	}

	_, err := io.WriteString(s.w, b.String())
	return err
}

// JSONSink writes one JSON object per report
type JSONSink struct {
	w io.Writer
}

// Show implements Sink
func (s *JSONSink) Show(r *Report) error {
	return gojson.NewEncoder(s.w).Encode(r)
}

// CBORSink writes reports with Core Deterministic Encoding, so identical
// reports produce identical bytes
type CBORSink struct {
	enc *cbor.Encoder
}

// NewCBORSink creates a CBOR sink writing to w
func NewCBORSink(w io.Writer) (*CBORSink, error) {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "CBOR encoder initialization failed")
	}
	return &CBORSink{enc: em.NewEncoder(w)}, nil
}

// Show implements Sink
func (s *CBORSink) Show(r *Report) error {
	return s.enc.Encode(r)
}
