// Package compression reads and writes compressed puzzle inputs.
//
// Inputs may arrive as gzip, zstd, lz4 frame, snappy or s2 streams. Detect
// identifies the format from the first bytes of a file and Decompress
// inflates it into memory with an upper bound on the output size.
//
// The Compressor set is symmetric: every algorithm Detect recognises can
// also be written with Compress, which is how compressed inputs and test
// fixtures are produced. The batch runner itself only decompresses.
//
//	alg := compression.Detect(head)
//	data, err := compression.Decompress(file, alg, 256<<20)
package compression

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/ajitpratap0/linescan/pkg/errors"
)

// Algorithm represents a compression algorithm.
type Algorithm string

const (
	// None represents no compression
	None Algorithm = "none"
	// Gzip represents gzip compression
	Gzip Algorithm = "gzip"
	// Snappy represents the snappy framing format
	Snappy Algorithm = "snappy"
	// LZ4 represents the lz4 frame format
	LZ4 Algorithm = "lz4"
	// Zstd represents zstandard compression
	Zstd Algorithm = "zstd"
	// S2 represents the s2 stream format (snappy compatible)
	S2 Algorithm = "s2"
)

// Parse returns the algorithm named s. "auto" and "" map to None; callers
// that want detection call Detect instead.
func Parse(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(s)); a {
	case "", "auto":
		return None, nil
	case None, Gzip, Snappy, LZ4, Zstd, S2:
		return a, nil
	default:
		return None, errors.Newf(errors.ErrorTypeConfig, "unsupported compression algorithm: %s", s)
	}
}

// Compressor compresses and decompresses whole streams. Implementations are
// safe for concurrent use.
type Compressor interface {
	// Compress compresses data into a self-describing stream
	Compress(data []byte) ([]byte, error)
	// NewReader returns a reader that inflates src
	NewReader(src io.Reader) (io.ReadCloser, error)
	// Algorithm returns the compression algorithm used
	Algorithm() Algorithm
}

// NewCompressor returns the compressor for alg
func NewCompressor(alg Algorithm) (Compressor, error) {
	switch alg {
	case None:
		return noneCompressor{}, nil
	case Gzip:
		return newGzipCompressor(), nil
	case Snappy:
		return snappyCompressor{}, nil
	case LZ4:
		return lz4Compressor{}, nil
	case Zstd:
		return newZstdCompressor()
	case S2:
		return s2Compressor{}, nil
	default:
		return nil, errors.Newf(errors.ErrorTypeConfig, "unsupported compression algorithm: %s", alg)
	}
}

// Decompress inflates src with alg. It fails with capacity_exceeded when
// the output would exceed limit bytes; limit <= 0 disables the bound.
func Decompress(src io.Reader, alg Algorithm, limit int64) ([]byte, error) {
	c, err := NewCompressor(alg)
	if err != nil {
		return nil, err
	}
	r, err := c.NewReader(src)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeMalformedInput, "invalid "+string(alg)+" stream")
	}
	defer r.Close()

	var in io.Reader = r
	if limit > 0 {
		in = io.LimitReader(r, limit+1)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, in); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeMalformedInput, "failed to decompress "+string(alg)+" stream")
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, errors.Newf(errors.ErrorTypeCapacityExceeded,
			"decompressed input exceeds %d bytes", limit).
			WithDetail("limit", limit)
	}
	return buf.Bytes(), nil
}

// None compressor (no compression)
type noneCompressor struct{}

func (noneCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (noneCompressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(src), nil
}

func (noneCompressor) Algorithm() Algorithm { return None }

// Gzip compressor
type gzipCompressor struct {
	writerPool sync.Pool
}

func newGzipCompressor() *gzipCompressor {
	gc := &gzipCompressor{}
	gc.writerPool.New = func() interface{} {
		return gzip.NewWriter(nil)
	}
	return gc
}

func (gc *gzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := gc.writerPool.Get().(*gzip.Writer)
	defer gc.writerPool.Put(w)

	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (gc *gzipCompressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(src)
}

func (gc *gzipCompressor) Algorithm() Algorithm { return Gzip }

// Snappy compressor, framing format
type snappyCompressor struct{}

func (snappyCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (snappyCompressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(src)), nil
}

func (snappyCompressor) Algorithm() Algorithm { return Snappy }

// LZ4 compressor, frame format
type lz4Compressor struct{}

func (lz4Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level5)); err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (lz4Compressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(src)), nil
}

func (lz4Compressor) Algorithm() Algorithm { return LZ4 }

// Zstd compressor
type zstdCompressor struct {
	encoder *zstd.Encoder
}

func newZstdCompressor() (*zstdCompressor, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &zstdCompressor{encoder: enc}, nil
}

func (zc *zstdCompressor) Compress(data []byte) ([]byte, error) {
	return zc.encoder.EncodeAll(data, nil), nil
}

func (zc *zstdCompressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

func (zc *zstdCompressor) Algorithm() Algorithm { return Zstd }

// S2 compressor, stream format
type s2Compressor struct{}

func (s2Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := s2.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s2Compressor) NewReader(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(src)), nil
}

func (s2Compressor) Algorithm() Algorithm { return S2 }
