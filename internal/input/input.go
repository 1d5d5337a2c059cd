// Package input loads a measurements file into an immutable byte buffer.
package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Mode selects how the file is brought into memory.
type Mode string

const (
	// Mmap maps the file read-only. Nothing is copied; pages fault in as the
	// workers touch them.
	Mmap Mode = "mmap"
	// Read copies the whole file onto the heap.
	Read Mode = "read"
)

// ErrNotRegular is returned for paths that are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// Buffer is the loaded contents of a file. Bytes must not be used after
// Close.
type Buffer struct {
	data  []byte
	unmap func() error
}

// Bytes returns the file contents. Callers must not write to it; a mapped
// buffer is read-only and writing faults.
func (b *Buffer) Bytes() []byte { return b.data }

// Close releases the buffer.
func (b *Buffer) Close() error {
	if b.unmap == nil {
		return nil
	}
	err := b.unmap()
	b.unmap, b.data = nil, nil
	return err
}

// Open loads path using mode.
func Open(path string, mode Mode) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	size := fi.Size()
	if size == 0 {
		// a zero length mapping is rejected by the kernel
		return &Buffer{data: []byte{}}, nil
	}
	if int64(int(size)) != size {
		return nil, fmt.Errorf("%s: %d bytes does not fit in memory", path, size)
	}

	switch mode {
	case Mmap:
		return mapFile(f)
	case Read:
		return readFile(f, int(size))
	default:
		return nil, fmt.Errorf("unknown load mode %q", mode)
	}
}

func mapFile(f *os.File) (*Buffer, error) {
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap input: %w", err)
	}

	if err := advise(m); err != nil {
		m.Unmap()
		return nil, fmt.Errorf("madvise input: %w", err)
	}

	return &Buffer{data: m, unmap: m.Unmap}, nil
}

func readFile(f *os.File, size int) (*Buffer, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return &Buffer{data: data}, nil
}
