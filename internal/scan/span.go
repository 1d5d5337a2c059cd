package scan

import "bytes"

// Span is a byte range [Begin, End) of the input.
type Span struct {
	Begin, End int
}

func (s Span) Len() int { return s.End - s.Begin }

// Partition splits [0, length) into n equal spans, the last one taking the
// remainder. The boundaries are not record aligned; each worker aligns its
// own span with Align. n is clamped so no span is created past the input.
func Partition(length, n int) []Span {
	if n > length {
		n = length
	}
	if n < 1 {
		n = 1
	}

	step := length / n
	spans := make([]Span, n)
	for i := range spans {
		spans[i] = Span{Begin: i * step, End: (i + 1) * step}
	}
	spans[n-1].End = length

	return spans
}

// Align moves both ends of s forward to record starts. A span never owns the
// record its Begin falls into unless Begin is 0, and always owns the record
// its End falls into. Two spans sharing a boundary align it to the same
// offset, so aligned spans tile the input without gaps or overlap.
func (s Span) Align(data []byte) Span {
	return Span{
		Begin: recordStart(data, s.Begin),
		End:   recordStart(data, s.End),
	}
}

// recordStart returns the offset just past the first newline at or after
// off, 0 for 0, and len(data) when there is no such newline.
func recordStart(data []byte, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(data) {
		return len(data)
	}

	i := bytes.IndexByte(data[off:], '\n')
	if i < 0 {
		return len(data)
	}
	return off + i + 1
}
