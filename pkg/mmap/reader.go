// Package mmap provides read-only memory-mapped access to input files.
//
// The mapping is shared with the page cache and never copied, so the bytes
// returned by a Reader stay valid only until Close.
package mmap

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/ajitpratap0/linescan/pkg/errors"
	"github.com/ajitpratap0/linescan/pkg/logger"
)

// ErrUnsupported is returned by Open where memory mapping is unavailable
var ErrUnsupported = stderrors.New("mmap: not supported on this platform")

// Reader is a read-only memory-mapped file
type Reader struct {
	file     *os.File
	data     []byte
	size     int64
	pageSize int

	mu sync.RWMutex
}

// Open maps the whole of filename into memory. An empty file yields a
// Reader with no data and no mapping.
func Open(filename string) (*Reader, error) {
	if !Supported {
		return nil, ErrUnsupported
	}

	file, err := os.Open(filename) //nolint:gosec // G304: path is chosen by the operator
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open file")
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to stat file")
	}

	r := &Reader{
		file:     file,
		size:     stat.Size(),
		pageSize: os.Getpagesize(),
	}
	if r.size == 0 {
		return r, nil
	}
	if int64(int(r.size)) != r.size {
		file.Close()
		return nil, errors.Newf(errors.ErrorTypeFile, "file too large to map: %d bytes", r.size)
	}

	data, err := mmap(int(file.Fd()), int(r.size))
	if err != nil {
		file.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to mmap file")
	}
	r.data = data

	if err := adviseSequential(data); err != nil {
		// non-fatal
		logger.Get().Debug("madvise failed", zap.String("file", filename), zap.Error(err))
	}
	return r, nil
}

// Bytes returns the mapped file contents
func (r *Reader) Bytes() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data
}

// Len returns the file size in bytes
func (r *Reader) Len() int64 {
	return r.size
}

// Prefetch asks the kernel to page in [start, end) ahead of use. The range
// is widened to page boundaries and clipped to the file; an empty or closed
// mapping is a no-op.
func (r *Reader) Prefetch(start, end int64) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.data == nil {
		return nil
	}
	ps := int64(r.pageSize)
	start = max(start, 0) / ps * ps
	end = min((end+ps-1)/ps*ps, int64(len(r.data)))
	if end <= start {
		return nil
	}
	if err := adviseWillNeed(r.data[start:end]); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to prefetch mapping")
	}
	return nil
}

// Close unmaps the file and closes it
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.data != nil {
		err = munmap(r.data)
		r.data = nil
	}
	if r.file != nil {
		if closeErr := r.file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		r.file = nil
	}
	if err != nil {
		return fmt.Errorf("mmap close: %w", err)
	}
	return nil
}
