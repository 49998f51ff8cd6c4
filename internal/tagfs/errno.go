package tagfs

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// errno recovers the passthrough errno from err, falling back to ENOENT
// when none is available, per spec §7 ("Passthrough OS error ... Only
// when the raw errno is unavailable does the adapter substitute ENOENT").
func errno(err error) syscall.Errno {
	if err == nil {
		return syscall.Errno(0)
	}
	if e, ok := err.(unix.Errno); ok {
		return syscall.Errno(e)
	}
	if e, ok := err.(syscall.Errno); ok {
		return e
	}
	return syscall.ENOENT
}
