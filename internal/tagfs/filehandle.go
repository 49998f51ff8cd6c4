package tagfs

import (
	"context"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/sirupsen/logrus"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
)

// fileHandle is a raw OS file descriptor passed through to the syscall
// shim. Per spec §3, "No in-process state is kept per open handle — the
// descriptor is the handle": the handle's lifetime is owned by the
// kernel, and this type carries nothing beyond the fd and the shim needed
// to operate on it.
type fileHandle struct {
	fd   int
	shim sysfs.Shim
}

var (
	_ fs.FileHandle    = (*fileHandle)(nil)
	_ fs.FileReader    = (*fileHandle)(nil)
	_ fs.FileReleaser  = (*fileHandle)(nil)
	_ fs.FileGetattrer = (*fileHandle)(nil)
)

func newFileHandle(fd int, shim sysfs.Shim) *fileHandle {
	return &fileHandle{fd: fd, shim: shim}
}

// Read reads up to len(dest) bytes at offset off via pread, without moving
// the descriptor's file position, per spec §4.6 ("pread is semantically equivalent and preferable
// if available").
func (h *fileHandle) Read(ctx context.Context, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	logrus.WithFields(logrus.Fields{"fh": h.fd, "off": off, "size": len(dest), "op": "read"}).Debug("read")
	n, err := h.shim.Pread(h.fd, dest, off)
	if err != nil {
		return nil, errno(err)
	}
	return fuse.ReadResultData(dest[:n]), fs.OK
}

// Release closes the descriptor. The kernel guarantees exactly one
// Release per successful Open.
func (h *fileHandle) Release(ctx context.Context) syscall.Errno {
	logrus.WithFields(logrus.Fields{"fh": h.fd, "op": "release"}).Info("release")
	return errno(h.shim.Close(h.fd))
}

// Getattr fstats the descriptor directly, the passthrough path spec §4.6
// prescribes when the kernel supplies a file handle.
func (h *fileHandle) Getattr(ctx context.Context, out *fuse.AttrOut) syscall.Errno {
	logrus.WithFields(logrus.Fields{"fh": h.fd, "op": "getattr"}).Info("getattr")
	st, err := h.shim.Fstat(h.fd)
	if err != nil {
		return errno(err)
	}
	fillAttrFromStat(&out.Attr, st)
	return fs.OK
}
