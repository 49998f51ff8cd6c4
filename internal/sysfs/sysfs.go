// Package sysfs is the narrow syscall boundary the rest of the module goes
// through to touch the real filesystem: statfs, stat, open, read, close,
// unlink. It exists so the namespace adapter can be unit tested against a
// fake without touching any real files.
package sysfs

import "time"

// Stat is the subset of POSIX stat(2) fields the rest of the module needs,
// translated out of the platform-specific unix.Stat_t representation.
type Stat struct {
	Mode    uint32
	Size    int64
	Blocks  int64
	Nlink   uint32
	Uid     uint32
	Gid     uint32
	Rdev    uint64
	Atime   time.Time
	Mtime   time.Time
	Ctime   time.Time
}

// Statfs is the subset of POSIX statfs(2) fields exposed to callers.
type Statfs struct {
	Blocks  uint64
	Bfree   uint64
	Bavail  uint64
	Files   uint64
	Ffree   uint64
	Bsize   int64
	NameLen int64
}

// Shim is the syscall boundary: every operation returns either success or
// an OS error whose errno can be recovered with Errno(err). It is the only
// place the implementation touches raw system calls, and the unit boundary
// for mocking in tests.
type Shim interface {
	Statfs(path string) (Statfs, error)
	Lstat(path string) (Stat, error)
	Fstat(fd int) (Stat, error)
	Open(path string, flags int) (fd int, err error)
	Pread(fd int, buf []byte, off int64) (n int, err error)
	Close(fd int) error
	Unlink(path string) error
}
