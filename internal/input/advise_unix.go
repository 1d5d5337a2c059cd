//go:build linux || darwin || freebsd

package input

import "golang.org/x/sys/unix"

// advise asks the kernel to start reading the whole mapping ahead of the
// workers.
func advise(b []byte) error {
	return unix.Madvise(b, unix.MADV_WILLNEED)
}
