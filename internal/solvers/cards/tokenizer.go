// Package cards solves the scratchcard records: every line carries a set of
// winning numbers and a sequence of candidate numbers separated by a
// delimiter, and the number of candidates found among the winners drives
// both the score and the copy cascade.
package cards

import (
	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
)

// DefaultMaxDigits bounds a single number so it always fits in an int
const DefaultMaxDigits = 9

// Options describes the shape of a record.
type Options struct {
	// HeaderWidth skips a fixed-width label; 0 skips through the first ':'
	HeaderWidth int
	// Separator divides winning numbers from candidates
	Separator byte
	// WinningCapacity and CandidateCapacity cap the values per side (0 = unbounded)
	WinningCapacity   int
	CandidateCapacity int
	// MaxDigits caps the digits of one number
	MaxDigits int
}

// DefaultOptions returns the options for the published record format
func DefaultOptions() Options {
	return Options{Separator: '|', MaxDigits: DefaultMaxDigits}
}

// OptionsFromConfig builds tokenizer options from the records section
func OptionsFromConfig(cfg *config.BaseConfig) Options {
	return Options{
		HeaderWidth:       cfg.Records.HeaderWidth,
		Separator:         cfg.Records.SeparatorByte(),
		WinningCapacity:   cfg.Records.WinningCapacity,
		CandidateCapacity: cfg.Records.CandidateCapacity,
		MaxDigits:         cfg.Records.MaxDigits,
	}
}

// NumberSet holds the winning numbers of a record. Duplicates collapse.
type NumberSet map[int]struct{}

// Contains reports whether n is in the set
func (s NumberSet) Contains(n int) bool {
	_, ok := s[n]
	return ok
}

// NewNumberSet builds a set from values
func NewNumberSet(values ...int) NumberSet {
	s := make(NumberSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Tokenize splits a record into its winning set and candidate sequence.
// Errors carry the 1-based column of the offending byte.
func Tokenize(line []byte, opts Options) (NumberSet, []int, error) {
	return NewTokenizer(opts).Tokenize(line)
}

// Tokenizer splits records with the same options, reusing its buffers from
// one record to the next. A Tokenizer is not safe for concurrent use; the
// values it returns are valid until the next call.
type Tokenizer struct {
	opts       Options
	winning    NumberSet
	candidates []int
}

// NewTokenizer creates a tokenizer for opts
func NewTokenizer(opts Options) *Tokenizer {
	if opts.MaxDigits <= 0 {
		opts.MaxDigits = DefaultMaxDigits
	}
	return &Tokenizer{opts: opts, winning: make(NumberSet)}
}

// Reset drops the values of the last record
func (t *Tokenizer) Reset() {
	clear(t.winning)
	t.candidates = t.candidates[:0]
}

// Tokenize splits line; see the package-level Tokenize
func (t *Tokenizer) Tokenize(line []byte) (NumberSet, []int, error) {
	t.Reset()
	opts := t.opts

	pos, err := skipHeader(line, opts.HeaderWidth)
	if err != nil {
		return nil, nil, err
	}

	winners := 0
	seenSep := false
	for pos < len(line) {
		c := line[pos]
		switch {
		case isSpace(c):
			pos++
		case c == opts.Separator:
			if seenSep {
				return nil, nil, malformed("repeated separator", pos)
			}
			seenSep = true
			pos++
		case c >= '0' && c <= '9':
			start := pos
			v := 0
			for pos < len(line) && line[pos] >= '0' && line[pos] <= '9' {
				v = v*10 + int(line[pos]-'0')
				pos++
			}
			if pos-start > opts.MaxDigits {
				return nil, nil, malformed("number too long", start)
			}
			if pos < len(line) && !isSpace(line[pos]) && line[pos] != opts.Separator {
				return nil, nil, malformed("unexpected byte in number", pos)
			}
			if seenSep {
				t.candidates = append(t.candidates, v)
			} else {
				t.winning[v] = struct{}{}
				winners++
			}
		default:
			return nil, nil, malformed("unexpected byte", pos)
		}
	}

	if !seenSep {
		return nil, nil, errors.Newf(errors.ErrorTypeMalformedInput, "missing separator %q", opts.Separator)
	}
	if opts.WinningCapacity > 0 && winners > opts.WinningCapacity {
		return nil, nil, overCapacity("winning", winners, opts.WinningCapacity)
	}
	if opts.CandidateCapacity > 0 && len(t.candidates) > opts.CandidateCapacity {
		return nil, nil, overCapacity("candidate", len(t.candidates), opts.CandidateCapacity)
	}

	return t.winning, t.candidates, nil
}

func skipHeader(line []byte, width int) (int, error) {
	if width > 0 {
		if len(line) < width {
			return 0, errors.Newf(errors.ErrorTypeMalformedInput,
				"record shorter than header width %d", width)
		}
		return width, nil
	}
	for i, c := range line {
		if c == ':' {
			return i + 1, nil
		}
	}
	return 0, errors.New(errors.ErrorTypeMalformedInput, "missing header")
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func malformed(msg string, pos int) *errors.Error {
	return errors.New(errors.ErrorTypeMalformedInput, msg).WithDetail("column", pos+1)
}

func overCapacity(side string, got, limit int) *errors.Error {
	return errors.Newf(errors.ErrorTypeCapacityExceeded,
		"%d %s numbers exceed capacity %d", got, side, limit).
		WithDetail("count", got).
		WithDetail("capacity", limit)
}
