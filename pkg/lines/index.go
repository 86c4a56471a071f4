// Package lines splits a byte buffer into zero-copy line views.
//
// An Index records the offset and length of every newline-delimited record
// in a buffer. Spans are validated once when the index is built; Line hands
// out subslices of the original buffer without copying, so the buffer must
// stay alive and unmodified while the index is in use.
package lines

// Span is a non-owning view of one line: Offset+Length never exceeds the
// length of the buffer the index was built from.
type Span struct {
	Offset int
	Length int
}

// End returns the exclusive end offset of the span
func (s Span) End() int {
	return s.Offset + s.Length
}

// Index is an ordered table of line spans over a single buffer.
type Index struct {
	buf   []byte
	spans []Span
}

// Split indexes buf on the newline byte. Carriage returns are kept as part
// of the line. A newline at the very end of buf does not start another line,
// and an empty buf yields an empty index.
func Split(buf []byte) *Index {
	idx := &Index{buf: buf}
	if len(buf) == 0 {
		return idx
	}

	idx.spans = make([]Span, 0, estimateLines(buf))
	start := 0
	for i, c := range buf {
		if c != '\n' {
			continue
		}
		idx.spans = append(idx.spans, Span{Offset: start, Length: i - start})
		start = i + 1
	}
	if start < len(buf) {
		idx.spans = append(idx.spans, Span{Offset: start, Length: len(buf) - start})
	}
	return idx
}

// estimateLines guesses the line count from the first line's length so the
// span table is allocated once for uniform inputs.
func estimateLines(buf []byte) int {
	for i, c := range buf {
		if c == '\n' {
			return len(buf)/(i+1) + 1
		}
	}
	return 1
}

// Len returns the number of lines
func (x *Index) Len() int {
	return len(x.spans)
}

// Span returns the span of line i
func (x *Index) Span(i int) Span {
	return x.spans[i]
}

// Spans returns the span table. Callers must not modify it.
func (x *Index) Spans() []Span {
	return x.spans
}

// Line returns line i as a subslice of the indexed buffer
func (x *Index) Line(i int) []byte {
	s := x.spans[i]
	return x.buf[s.Offset:s.End():s.End()]
}

// Bytes returns the indexed buffer
func (x *Index) Bytes() []byte {
	return x.buf
}
