package tagger

import (
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// SizeLabel and ModifiedLabel are the singleton labels the metadata
// tagger emits under.
const (
	SizeLabel     = "size"
	ModifiedLabel = "modified"
)

// MetadataTagger tags regular files with their size and modification time,
// read through the syscall shim so it can be unit tested against a fake.
type MetadataTagger struct {
	shim sysfs.Shim
}

// NewMetadataTagger returns a MetadataTagger backed by shim.
func NewMetadataTagger(shim sysfs.Shim) *MetadataTagger {
	return &MetadataTagger{shim: shim}
}

func (t *MetadataTagger) Tag(path string) (map[tagmodel.Tag]struct{}, error) {
	st, err := t.shim.Lstat(path)
	if err != nil {
		return nil, ErrIllegible
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return newTagSet(), nil
	}
	tags := newTagSet(
		tagmodel.New(SizeLabel, true, strconv.FormatInt(st.Size, 10)),
	)
	if !st.Mtime.IsZero() {
		tags[tagmodel.New(ModifiedLabel, true, st.Mtime.UTC().Format("2006-01-02 15:04:05"))] = struct{}{}
	}
	return tags, nil
}
