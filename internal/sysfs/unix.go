//go:build linux

package sysfs

import (
	"time"

	"golang.org/x/sys/unix"
)

// Unix is the real Shim, backed directly by golang.org/x/sys/unix.
type Unix struct{}

var _ Shim = Unix{}

func statFromUnix(st *unix.Stat_t) Stat {
	return Stat{
		Mode:   st.Mode,
		Size:   st.Size,
		Blocks: st.Blocks,
		Nlink:  uint32(st.Nlink),
		Uid:    st.Uid,
		Gid:    st.Gid,
		Rdev:   st.Rdev,
		Atime:  time.Unix(st.Atim.Sec, st.Atim.Nsec),
		Mtime:  time.Unix(st.Mtim.Sec, st.Mtim.Nsec),
		Ctime:  time.Unix(st.Ctim.Sec, st.Ctim.Nsec),
	}
}

func (Unix) Statfs(path string) (Statfs, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Statfs{}, err
	}
	return Statfs{
		Blocks:  st.Blocks,
		Bfree:   st.Bfree,
		Bavail:  st.Bavail,
		Files:   st.Files,
		Ffree:   st.Ffree,
		Bsize:   int64(st.Bsize),
		NameLen: int64(st.Namelen),
	}, nil
}

func (Unix) Lstat(path string) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return Stat{}, err
	}
	return statFromUnix(&st), nil
}

func (Unix) Fstat(fd int) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return Stat{}, err
	}
	return statFromUnix(&st), nil
}

func (Unix) Open(path string, flags int) (int, error) {
	return unix.Open(path, flags, 0)
}

func (Unix) Pread(fd int, buf []byte, off int64) (int, error) {
	return unix.Pread(fd, buf, off)
}

func (Unix) Close(fd int) error {
	return unix.Close(fd)
}

func (Unix) Unlink(path string) error {
	return unix.Unlink(path)
}

// Errno recovers the numeric errno from err, if any.
func Errno(err error) (unix.Errno, bool) {
	errno, ok := err.(unix.Errno)
	return errno, ok
}

// Dev returns the device number backing path, used to detect filesystem
// boundaries during the source-tree walk.
func Dev(path string) (uint64, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Dev), nil
}
