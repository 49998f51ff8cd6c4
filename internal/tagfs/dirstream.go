package tagfs

import (
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
)

// listDirStream is a fixed, pre-computed directory listing. The namespace
// engine already evaluated the full set of entries, so there is nothing
// left to stream lazily.
type listDirStream struct {
	entries []fuse.DirEntry
	pos     int
}

var _ fs.DirStream = (*listDirStream)(nil)

func newListDirStream(entries []fuse.DirEntry) *listDirStream {
	return &listDirStream{entries: entries}
}

func (s *listDirStream) HasNext() bool {
	return s.pos < len(s.entries)
}

func (s *listDirStream) Next() (fuse.DirEntry, syscall.Errno) {
	e := s.entries[s.pos]
	s.pos++
	return e, fs.OK
}

func (s *listDirStream) Close() {}
