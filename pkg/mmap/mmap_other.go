//go:build !unix

package mmap

// Supported reports whether files can be memory-mapped on this platform
const Supported = false

func mmap(int, int) ([]byte, error) {
	return nil, ErrUnsupported
}

func munmap([]byte) error {
	return nil
}

func adviseSequential([]byte) error {
	return nil
}

func adviseWillNeed([]byte) error {
	return nil
}
