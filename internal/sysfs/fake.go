package sysfs

import (
	"sync"
	"syscall"
)

// FakeFile is a fake regular file backing a Fake shim.
type FakeFile struct {
	Data  []byte
	Stat  Stat
	Perm  error // returned by Unlink, if set, instead of deleting the file
}

// Fake is an in-memory Shim for unit testing the namespace adapter without
// touching the real filesystem. It is the "fake" spec.md §9 describes as
// the reason the shim is a pluggable capability.
type Fake struct {
	mu        sync.Mutex
	files     map[string]*FakeFile
	openFds   map[int]*openFd
	nextFd    int
	statfs    Statfs
	UnlinkLog []string
}

type openFd struct {
	file *FakeFile
}

// NewFake returns an empty Fake shim.
func NewFake() *Fake {
	return &Fake{
		files:   make(map[string]*FakeFile),
		openFds: make(map[int]*openFd),
		nextFd:  3,
	}
}

// AddFile registers a fake file at path.
func (f *Fake) AddFile(path string, file *FakeFile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = file
}

func (f *Fake) Statfs(path string) (Statfs, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.files[path]; !ok && path != "/" {
		return Statfs{}, syscall.ENOENT
	}
	return f.statfs, nil
}

func (f *Fake) Lstat(path string) (Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ff, ok := f.files[path]
	if !ok {
		return Stat{}, syscall.ENOENT
	}
	return ff.Stat, nil
}

func (f *Fake) Fstat(fd int) (Stat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.openFds[fd]
	if !ok {
		return Stat{}, syscall.EBADF
	}
	return o.file.Stat, nil
}

func (f *Fake) Open(path string, flags int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ff, ok := f.files[path]
	if !ok {
		return 0, syscall.ENOENT
	}
	fd := f.nextFd
	f.nextFd++
	f.openFds[fd] = &openFd{file: ff}
	return fd, nil
}

func (f *Fake) Pread(fd int, buf []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.openFds[fd]
	if !ok {
		return 0, syscall.EBADF
	}
	if off >= int64(len(o.file.Data)) {
		return 0, nil
	}
	n := copy(buf, o.file.Data[off:])
	return n, nil
}

func (f *Fake) Close(fd int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.openFds[fd]; !ok {
		return syscall.EBADF
	}
	delete(f.openFds, fd)
	return nil
}

func (f *Fake) Unlink(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UnlinkLog = append(f.UnlinkLog, path)
	ff, ok := f.files[path]
	if !ok {
		return syscall.ENOENT
	}
	if ff.Perm != nil {
		return ff.Perm
	}
	delete(f.files, path)
	return nil
}

var _ Shim = (*Fake)(nil)
