package compression

import "bytes"

// HeaderSize is the number of leading bytes Detect needs
const HeaderSize = 10

var magics = []struct {
	alg    Algorithm
	prefix []byte
}{
	{Gzip, []byte{0x1f, 0x8b}},
	{Zstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{LZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	{Snappy, []byte("\xff\x06\x00\x00sNaPpY")},
	{S2, []byte("\xff\x06\x00\x00S2sTwO")},
}

// Detect identifies the compression format from the first bytes of a
// stream. Plain text yields None.
func Detect(head []byte) Algorithm {
	for _, m := range magics {
		if bytes.HasPrefix(head, m.prefix) {
			return m.alg
		}
	}
	return None
}
