// Package scan splits the input into record-aligned spans and walks the
// `key;value\n` records inside a span without copying.
package scan

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/warpstreamlabs/stationstats/internal/fixed"
)

const (
	separator = ';'
	newline   = '\n'
)

// ErrMalformed is wrapped by every RecordError.
var ErrMalformed = errors.New("malformed record")

// RecordError reports the first record of a span that does not match the
// input format.
type RecordError struct {
	// Offset of the record's first byte in the whole input.
	Offset int
	Record string
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s at offset %d: %q: %s", ErrMalformed, e.Offset, e.Record, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrMalformed }

// Scanner walks the records of one aligned span. Its usage follows
// bufio.Scanner:
//
//	s := scan.New(data, span)
//	for s.Scan() {
//		use(s.Key(), s.Value())
//	}
//	if err := s.Err(); err != nil { ... }
//
// Key returns a sub-slice of data, valid as long as data is.
type Scanner struct {
	data []byte
	pos  int
	end  int

	key   []byte
	value fixed.Tenths
	err   error
}

// New returns a Scanner over data[span.Begin:span.End]. The span must start
// at a record boundary; its end must be a record boundary or len(data).
func New(data []byte, span Span) *Scanner {
	return &Scanner{
		data: data,
		pos:  span.Begin,
		end:  span.End,
	}
}

// Scan advances to the next record. It returns false at the end of the span
// or on the first malformed record; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.pos >= s.end || s.err != nil {
		return false
	}

	start := s.pos
	rest := s.data[start:s.end]

	lineEnd := bytes.IndexByte(rest, newline)
	if lineEnd < 0 {
		// last record of the input, no trailing newline
		lineEnd = len(rest)
	}
	line := rest[:lineEnd]

	sep := bytes.IndexByte(line, separator)
	if sep < 0 {
		return s.fail(start, line, "missing separator")
	}

	val := line[sep+1:]
	if !wellFormed(val) {
		return s.fail(start, line, "value is not a one-decimal number in -99.9..99.9")
	}

	s.key = line[:sep]
	s.value = fixed.Parse(val)
	s.pos = start + lineEnd + 1

	return true
}

// wellFormed checks the shape fixed.Parse relies on: an optional sign, one
// or two integer bytes, a dot, one fractional byte.
func wellFormed(val []byte) bool {
	n := len(val)
	if n > 0 && val[0] == '-' {
		n--
	}
	return (n == 3 || n == 4) && val[len(val)-2] == '.'
}

func (s *Scanner) fail(offset int, line []byte, reason string) bool {
	s.err = &RecordError{
		Offset: offset,
		Record: string(line),
		Reason: reason,
	}
	s.key = nil
	return false
}

// Key returns the current record's key.
func (s *Scanner) Key() []byte { return s.key }

// Value returns the current record's value.
func (s *Scanner) Value() fixed.Tenths { return s.value }

// Err returns the first error encountered, nil at a clean end of span.
func (s *Scanner) Err() error { return s.err }
