// Package namespace implements the virtual-namespace engine: translating a
// slash-separated path into a Directory/File/Missing classification, and
// synthesizing directory listings, over a frozen tag index.
package namespace

import (
	"errors"
	"sort"
	"strings"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// ErrInvalidPath is returned for path components the POSIX virtual
// namespace cannot represent (a NUL byte, or a drive-letter-style prefix).
var ErrInvalidPath = errors.New("namespace: invalid path")

// Kind classifies a resolved virtual path.
type Kind int

const (
	// Directory paths are composed entirely of tag display-form
	// components (root included).
	Directory Kind = iota
	// File paths resolve to exactly one source file.
	File
	// Missing paths resolve to nothing.
	Missing
)

// Result is the outcome of resolving a virtual path.
type Result struct {
	Kind   Kind
	Source string // valid iff Kind == File
	FileID int    // valid iff Kind == File
}

// EntryKind distinguishes listing entries.
type EntryKind int

const (
	EntryDirectory EntryKind = iota
	EntryRegularFile
)

// Entry is one child of a synthesized directory listing.
type Entry struct {
	Name string
	Kind EntryKind
}

// splitPath normalizes a slash-separated virtual path into its ordered
// normal components. Root ("/" or "") yields an empty slice.
func splitPath(path string) ([]string, error) {
	if strings.ContainsRune(path, 0) {
		return nil, ErrInvalidPath
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, nil
	}
	parts := strings.Split(trimmed, "/")
	for _, p := range parts {
		if isDriveLetterPrefix(p) {
			return nil, ErrInvalidPath
		}
	}
	return parts, nil
}

// isDriveLetterPrefix reports whether p looks like a Windows drive-letter
// path component ("C:"), which go-fuse's POSIX targets never produce and
// this namespace rejects as invalid input rather than pretending to
// support it.
func isDriveLetterPrefix(p string) bool {
	if len(p) != 2 || p[1] != ':' {
		return false
	}
	c := p[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// resolveTags maps each component to its canonical Tag, by display form.
// ok is false if any component is not a known tag.
func resolveTags(idx *tagmodel.Index, components []string) (tags []tagmodel.Tag, ok bool) {
	tags = make([]tagmodel.Tag, 0, len(components))
	for _, c := range components {
		t, found := idx.Lookup(c)
		if !found {
			return nil, false
		}
		tags = append(tags, t)
	}
	return tags, true
}

func allFileIDs(idx *tagmodel.Index) map[int]struct{} {
	out := make(map[int]struct{}, len(idx.Files()))
	for id := range idx.Files() {
		out[id] = struct{}{}
	}
	return out
}

// intersection computes the intersection of tags' post-sets. An empty tag
// list (the path to root) yields the set of every file-id, per spec §4.4.
func intersection(idx *tagmodel.Index, tags []tagmodel.Tag) map[int]struct{} {
	if len(tags) == 0 {
		return allFileIDs(idx)
	}
	first, _ := idx.FilesFor(tags[0])
	out := make(map[int]struct{}, len(first))
	for id := range first {
		out[id] = struct{}{}
	}
	for _, t := range tags[1:] {
		s, _ := idx.FilesFor(t)
		for id := range out {
			if _, ok := s[id]; !ok {
				delete(out, id)
			}
		}
	}
	return out
}

// Resolve classifies a virtual path per spec §4.4.
func Resolve(idx *tagmodel.Index, path string) (Result, error) {
	components, err := splitPath(path)
	if err != nil {
		return Result{}, err
	}

	if _, ok := resolveTags(idx, components); ok {
		return Result{Kind: Directory}, nil
	}
	if len(components) == 0 {
		return Result{Kind: Directory}, nil
	}

	parent, last := components[:len(components)-1], components[len(components)-1]
	parentTags, ok := resolveTags(idx, parent)
	if !ok {
		return Result{Kind: Missing}, nil
	}
	set := intersection(idx, parentTags)

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		entry, ok := idx.File(id)
		if ok && entry.Basename() == last {
			return Result{Kind: File, Source: entry.SourcePath, FileID: id}, nil
		}
	}
	return Result{Kind: Missing}, nil
}

// List synthesizes the directory listing for a Directory path, per spec
// §4.5. ok is false if path is not a Directory.
func List(idx *tagmodel.Index, path string) (entries []Entry, ok bool) {
	components, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	tags, allKnown := resolveTags(idx, components)
	if !allKnown {
		return nil, false
	}

	// Root shows every tag but no files, even if some file is tagged by
	// nothing: the root itself never implies the "all files" universe
	// intersection() uses for parent-path resolution in Resolve.
	var fileIDs map[int]struct{}
	if len(tags) == 0 {
		fileIDs = map[int]struct{}{}
	} else {
		fileIDs = intersection(idx, tags)
	}

	visitedDisplay := make(map[string]struct{}, len(tags))
	visitedSingletonLabels := make(map[string]struct{})
	for _, t := range tags {
		visitedDisplay[t.Display()] = struct{}{}
		if t.IsSingleton() {
			if label, has := t.Label(); has {
				visitedSingletonLabels[label] = struct{}{}
			}
		}
	}

	var dirNames []string
	for _, t := range idx.Tags() {
		if _, seen := visitedDisplay[t.Display()]; seen {
			continue
		}
		if t.IsSingleton() {
			if label, has := t.Label(); has {
				if _, suppressed := visitedSingletonLabels[label]; suppressed {
					continue
				}
			}
		}
		dirNames = append(dirNames, t.Display())
	}
	sort.Strings(dirNames)

	ids := make([]int, 0, len(fileIDs))
	for id := range fileIDs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	seenBasename := make(map[string]struct{}, len(ids))
	var fileNames []string
	for _, id := range ids {
		entry, ok := idx.File(id)
		if !ok {
			continue
		}
		name := entry.Basename()
		if _, dup := seenBasename[name]; dup {
			continue
		}
		seenBasename[name] = struct{}{}
		fileNames = append(fileNames, name)
	}

	entries = make([]Entry, 0, 2+len(dirNames)+len(fileNames))
	entries = append(entries, Entry{Name: ".", Kind: EntryDirectory}, Entry{Name: "..", Kind: EntryDirectory})
	for _, n := range dirNames {
		entries = append(entries, Entry{Name: n, Kind: EntryDirectory})
	}
	for _, n := range fileNames {
		entries = append(entries, Entry{Name: n, Kind: EntryRegularFile})
	}
	return entries, true
}
