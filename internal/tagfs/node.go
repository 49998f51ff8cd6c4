// Package tagfs is the filesystem adapter: it maps go-fuse's kernel
// operations onto queries against a frozen tag index via the namespace
// engine, and onto the syscall shim for passthrough file I/O.
package tagfs

import (
	"context"
	"path"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/sirupsen/logrus"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/namespace"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// Root is the state shared by every node in the mount: the frozen tag
// index and the syscall shim. It never changes after construction, so no
// locking is needed to share it across concurrent requests.
type Root struct {
	Index      *tagmodel.Index
	Shim       sysfs.Shim
	SourceRoot string
}

// Node is a single entry in the dynamically-discovered virtual namespace
// tree: either a tag directory or a passthrough file, depending on whether
// source is set. The tree is never built up front; Lookup synthesizes one
// child Inode per call, per spec's "dynamically discovered file systems".
type Node struct {
	fs.Inode

	root   *Root
	vpath  string // virtual path from the mount root, no leading/trailing slash
	source string // non-empty iff this node resolves to a passthrough file
}

var (
	_ fs.InodeEmbedder = (*Node)(nil)
	_ fs.NodeLookuper  = (*Node)(nil)
	_ fs.NodeGetattrer = (*Node)(nil)
	_ fs.NodeOpendirer = (*Node)(nil)
	_ fs.NodeReaddirer = (*Node)(nil)
	_ fs.NodeOpener    = (*Node)(nil)
	_ fs.NodeUnlinker  = (*Node)(nil)
	_ fs.NodeStatfser  = (*Node)(nil)
)

// NewRoot returns the root Node of a mount for the given frozen index.
func NewRoot(idx *tagmodel.Index, shim sysfs.Shim, sourceRoot string) *Node {
	return &Node{root: &Root{Index: idx, Shim: shim, SourceRoot: sourceRoot}}
}

func (n *Node) isDir() bool {
	return n.source == ""
}

func childPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return path.Join(parent, name)
}

// Lookup resolves name within n per spec §4.4, synthesizing a new child
// Inode for a Directory or File classification and ENOENT for Missing.
func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	vpath := childPath(n.vpath, name)
	logrus.WithFields(logrus.Fields{"path": vpath, "op": "lookup"}).Info("lookup")
	res, err := namespace.Resolve(n.root.Index, vpath)
	if err != nil {
		return nil, syscall.EINVAL
	}

	switch res.Kind {
	case namespace.Directory:
		fillSyntheticDirAttr(&out.Attr)
		child := &Node{root: n.root, vpath: vpath}
		return n.NewInode(ctx, child, fs.StableAttr{Mode: syscall.S_IFDIR}), fs.OK

	case namespace.File:
		st, statErr := n.root.Shim.Lstat(res.Source)
		if statErr != nil {
			return nil, errno(statErr)
		}
		fillAttrFromStat(&out.Attr, st)
		child := &Node{root: n.root, vpath: vpath, source: res.Source}
		return n.NewInode(ctx, child, fs.StableAttr{Mode: syscall.S_IFREG}), fs.OK

	default:
		return nil, syscall.ENOENT
	}
}

// Getattr implements passthrough stat for files and synthetic attributes
// for directories, per spec §4.6.
func (n *Node) Getattr(ctx context.Context, f fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	logrus.WithFields(logrus.Fields{"path": n.vpath, "fh": f != nil, "op": "getattr"}).Info("getattr")
	if f != nil {
		if fg, ok := f.(fs.FileGetattrer); ok {
			return fg.Getattr(ctx, out)
		}
	}
	if n.isDir() {
		fillSyntheticDirAttr(&out.Attr)
		return fs.OK
	}
	st, err := n.root.Shim.Lstat(n.source)
	if err != nil {
		return errno(err)
	}
	fillAttrFromStat(&out.Attr, st)
	return fs.OK
}

// Opendir performs no work beyond confirming this node is a directory,
// since every Node the kernel can reach is already classified by Lookup.
func (n *Node) Opendir(ctx context.Context) syscall.Errno {
	logrus.WithFields(logrus.Fields{"path": n.vpath, "op": "opendir"}).Info("opendir")
	if !n.isDir() {
		return syscall.ENOTDIR
	}
	return fs.OK
}

// Readdir re-synthesizes the listing from the tag index on every call; no
// per-directory state is retained between calls.
func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	logrus.WithFields(logrus.Fields{"path": n.vpath, "op": "readdir"}).Info("readdir")
	entries, ok := namespace.List(n.root.Index, n.vpath)
	if !ok {
		return nil, syscall.ENOENT
	}
	out := make([]fuse.DirEntry, 0, len(entries))
	for _, e := range entries {
		mode := uint32(syscall.S_IFDIR)
		if e.Kind == namespace.EntryRegularFile {
			mode = syscall.S_IFREG
		}
		out = append(out, fuse.DirEntry{Name: e.Name, Mode: mode})
	}
	return newListDirStream(out), fs.OK
}

// Open passes through to the syscall shim for File nodes; Directory nodes
// cannot be opened as files.
func (n *Node) Open(ctx context.Context, flags uint32) (fs.FileHandle, uint32, syscall.Errno) {
	logrus.WithFields(logrus.Fields{"path": n.vpath, "flags": flags, "op": "open"}).Info("open")
	if n.isDir() {
		return nil, 0, syscall.EISDIR
	}
	fd, err := n.root.Shim.Open(n.source, int(flags))
	if err != nil {
		return nil, 0, errno(err)
	}
	return newFileHandle(fd, n.root.Shim), 0, fs.OK
}

// Unlink resolves parent/name and, for a File classification, calls the
// syscall shim's unlink and propagates its errno verbatim. The in-memory
// index is never mutated: the basename stays listable until the mount is
// rebuilt, per spec's documented open question.
func (n *Node) Unlink(ctx context.Context, name string) syscall.Errno {
	vpath := childPath(n.vpath, name)
	logrus.WithFields(logrus.Fields{"path": vpath, "op": "unlink"}).Info("unlink")
	res, err := namespace.Resolve(n.root.Index, vpath)
	if err != nil {
		return syscall.EINVAL
	}
	if res.Kind != namespace.File {
		return syscall.ENOENT
	}
	return errno(n.root.Shim.Unlink(res.Source))
}

// Statfs passes through to the real source directory so OS X callers
// (which require a successful statfs to mount at all) get real numbers.
func (n *Node) Statfs(ctx context.Context, out *fuse.StatfsOut) syscall.Errno {
	logrus.WithFields(logrus.Fields{"path": n.vpath, "op": "statfs"}).Debug("statfs")
	st, err := n.root.Shim.Statfs(n.root.SourceRoot)
	if err != nil {
		return errno(err)
	}
	out.Blocks = st.Blocks
	out.Bfree = st.Bfree
	out.Bavail = st.Bavail
	out.Files = st.Files
	out.Ffree = st.Ffree
	out.Bsize = uint32(st.Bsize)
	out.NameLen = uint32(st.NameLen)
	return fs.OK
}

func fillSyntheticDirAttr(attr *fuse.Attr) {
	attr.Mode = syscall.S_IFDIR | 0755
	attr.Nlink = 1
	attr.Size = 0
	attr.Uid = 0
	attr.Gid = 0
	attr.Atime, attr.Atimensec = 0, 0
	attr.Mtime, attr.Mtimensec = 0, 0
	attr.Ctime, attr.Ctimensec = 0, 0
}

func fillAttrFromStat(attr *fuse.Attr, st sysfs.Stat) {
	attr.Mode = st.Mode
	attr.Size = uint64(st.Size)
	attr.Blocks = uint64(st.Blocks)
	attr.Nlink = st.Nlink
	attr.Uid = st.Uid
	attr.Gid = st.Gid
	attr.Rdev = uint32(st.Rdev)
	attr.Atime = uint64(st.Atime.Unix())
	attr.Atimensec = uint32(st.Atime.Nanosecond())
	attr.Mtime = uint64(st.Mtime.Unix())
	attr.Mtimensec = uint32(st.Mtime.Nanosecond())
	attr.Ctime = uint64(st.Ctime.Unix())
	attr.Ctimensec = uint32(st.Ctime.Nanosecond())
}
