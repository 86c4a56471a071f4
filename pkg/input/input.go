// Package input loads a puzzle file into one immutable buffer.
//
// Plain files are memory-mapped when possible; compressed files are detected
// by their magic bytes and inflated into an owned buffer. Either way the
// caller gets a single []byte that stays valid until Close.
package input

import (
	"bytes"
	"encoding/hex"
	stderrors "errors"
	"os"
	"sync"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/compression"
	"github.com/ajitpratap0/linescan/pkg/config"
	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/logger"
	"github.com/ajitpratap0/linescan/pkg/mmap"
)

// Options controls how a file is loaded
type Options struct {
	// UseMmap maps plain files instead of reading them
	UseMmap bool
	// Compression is "auto", "none" or an algorithm name
	Compression string
	// MaxBytes bounds the loaded size (0 = unlimited)
	MaxBytes int64
}

// OptionsFromConfig returns the options of the input section
func OptionsFromConfig(cfg *config.BaseConfig) Options {
	return Options{
		UseMmap:     cfg.Input.UseMmap,
		Compression: cfg.Input.Compression,
		MaxBytes:    cfg.Input.MaxBytes,
	}
}

// Buffer is a loaded input
type Buffer struct {
	path        string
	data        []byte
	compression compression.Algorithm
	mapped      *mmap.Reader

	digestOnce sync.Once
	digest     string
}

// Load reads path according to opts
func Load(path string, opts Options) (*Buffer, error) {
	log := logger.With(zap.String("component", "input"), zap.String("file", path))

	raw, mapped, err := readRaw(path, opts.UseMmap)
	if err != nil {
		return nil, err
	}

	alg := compression.None
	if opts.Compression == "" || opts.Compression == "auto" {
		alg = compression.Detect(raw[:min(len(raw), compression.HeaderSize)])
	} else if alg, err = compression.Parse(opts.Compression); err != nil {
		closeMapped(mapped)
		return nil, err
	}

	b := &Buffer{path: path, compression: alg}
	if alg == compression.None {
		if opts.MaxBytes > 0 && int64(len(raw)) > opts.MaxBytes {
			closeMapped(mapped)
			return nil, errors.Newf(errors.ErrorTypeCapacityExceeded,
				"input is %d bytes, limit is %d", len(raw), opts.MaxBytes).
				WithDetail("file", path)
		}
		b.data = raw
		b.mapped = mapped
	} else {
		data, err := compression.Decompress(bytes.NewReader(raw), alg, opts.MaxBytes)
		closeMapped(mapped)
		if err != nil {
			var e *errors.Error
			if stderrors.As(err, &e) {
				e.WithDetail("file", path)
			}
			return nil, err
		}
		b.data = data
	}

	log.Debug("input loaded",
		zap.Int("bytes", len(b.data)),
		zap.String("compression", string(alg)),
		zap.Bool("mmap", b.mapped != nil))
	return b, nil
}

func readRaw(path string, useMmap bool) ([]byte, *mmap.Reader, error) {
	if useMmap {
		r, err := mmap.Open(path)
		switch {
		case err == nil:
			return r.Bytes(), r, nil
		case !stderrors.Is(err, mmap.ErrUnsupported):
			return nil, nil, err
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read input").
			WithDetail("file", path)
	}
	return data, nil, nil
}

func closeMapped(r *mmap.Reader) {
	if r != nil {
		_ = r.Close()
	}
}

// Bytes returns the loaded contents. The slice must not be modified.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Path returns the file the buffer was loaded from
func (b *Buffer) Path() string {
	return b.path
}

// Compression returns the algorithm the file was stored with
func (b *Buffer) Compression() compression.Algorithm {
	return b.compression
}

// Mapped reports whether the buffer is backed by a memory mapping
func (b *Buffer) Mapped() bool {
	return b.mapped != nil
}

// Prefetch pages a mapped buffer in ahead of a parallel pass. Owned
// buffers are already resident.
func (b *Buffer) Prefetch() error {
	if b.mapped == nil {
		return nil
	}
	return b.mapped.Prefetch(0, b.mapped.Len())
}

// Digest returns the hex BLAKE3 hash of the loaded contents
func (b *Buffer) Digest() string {
	b.digestOnce.Do(func() {
		b.digest = Digest(b.data)
	})
	return b.digest
}

// Digest returns the hex BLAKE3 hash of data
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Close releases the mapping, if any. Bytes must not be used afterwards.
func (b *Buffer) Close() error {
	if b.mapped == nil {
		return nil
	}
	err := b.mapped.Close()
	b.mapped = nil
	b.data = nil
	return err
}
