package tagmodel

import "path/filepath"

// FileEntry is an opaque record addressed by its file-id, the insertion
// index assigned during the source-tree walk.
type FileEntry struct {
	SourcePath string
}

// Basename returns the entry's basename, the name exposed to the virtual
// namespace.
func (f FileEntry) Basename() string {
	return filepath.Base(f.SourcePath)
}

type tagEntry struct {
	tag   Tag
	files map[int]struct{}
}

// Index is the frozen, in-memory (file, tag) relation the namespace engine
// queries. It is built once via a Builder and never mutated afterwards.
type Index struct {
	files   []FileEntry
	tags    map[key]*tagEntry
	display map[string]key
}

// Files returns the ordered file entries, indexed by file-id.
func (idx *Index) Files() []FileEntry {
	return idx.files
}

// File returns the entry for id, and whether id is valid.
func (idx *Index) File(id int) (FileEntry, bool) {
	if id < 0 || id >= len(idx.files) {
		return FileEntry{}, false
	}
	return idx.files[id], true
}

// Tags returns every known tag, in no particular order.
func (idx *Index) Tags() []Tag {
	out := make([]Tag, 0, len(idx.tags))
	for _, e := range idx.tags {
		out = append(out, e.tag)
	}
	return out
}

// Lookup resolves a tag by its display form, returning the canonical Tag
// value (with its singleton flag) and whether it is known to the index.
func (idx *Index) Lookup(display string) (Tag, bool) {
	k, ok := idx.display[display]
	if !ok {
		return Tag{}, false
	}
	e, ok := idx.tags[k]
	if !ok {
		return Tag{}, false
	}
	return e.tag, true
}

// FilesFor returns the set of file-ids tagged by t, and whether t is known.
func (idx *Index) FilesFor(t Tag) (map[int]struct{}, bool) {
	e, ok := idx.tags[t.key()]
	if !ok {
		return nil, false
	}
	return e.files, true
}

// Builder accumulates files and tags during the source-tree walk. It is not
// safe for concurrent use; the walk that populates it is single-threaded.
type Builder struct {
	idx *Index
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{idx: &Index{tags: make(map[key]*tagEntry), display: make(map[string]key)}}
}

// AddFile appends a new file entry and returns its file-id.
func (b *Builder) AddFile(sourcePath string) int {
	id := len(b.idx.files)
	b.idx.files = append(b.idx.files, FileEntry{SourcePath: sourcePath})
	return id
}

// Tag records that file id carries tag t.
func (b *Builder) Tag(id int, t Tag) {
	k := t.key()
	e, ok := b.idx.tags[k]
	if !ok {
		e = &tagEntry{tag: t, files: make(map[int]struct{})}
		b.idx.tags[k] = e
		b.idx.display[t.Display()] = k
	}
	e.files[id] = struct{}{}
}

// Freeze finalizes construction and returns the immutable index. The
// Builder must not be used afterwards.
func (b *Builder) Freeze() *Index {
	idx := b.idx
	b.idx = nil
	return idx
}
