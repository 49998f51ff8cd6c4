// Package tagger defines the pluggable tag-extraction interface and its
// built-in implementations (MIME sniffing, file metadata).
package tagger

import (
	"errors"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// ErrIllegible is returned when a tagger cannot classify a file. It is not
// a failure of the overall scan: the tagger simply contributes nothing for
// that file, and other taggers still run.
var ErrIllegible = errors.New("tagger: illegible file")

// Tagger maps a source-tree path to the set of tags it carries. Returning
// an empty, nil-error set is a valid success: the file has no tags for
// this tagger.
type Tagger interface {
	Tag(path string) (map[tagmodel.Tag]struct{}, error)
}

func newTagSet(tags ...tagmodel.Tag) map[tagmodel.Tag]struct{} {
	out := make(map[tagmodel.Tag]struct{}, len(tags))
	for _, t := range tags {
		out[t] = struct{}{}
	}
	return out
}
