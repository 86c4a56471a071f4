//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

// Supported reports whether files can be memory-mapped on this platform
const Supported = true

func mmap(fd int, length int) ([]byte, error) {
	return unix.Mmap(fd, 0, length, unix.PROT_READ, unix.MAP_SHARED)
}

func munmap(b []byte) error {
	return unix.Munmap(b)
}

func adviseSequential(b []byte) error {
	return unix.Madvise(b, unix.MADV_SEQUENTIAL)
}

func adviseWillNeed(b []byte) error {
	return unix.Madvise(b, unix.MADV_WILLNEED)
}
