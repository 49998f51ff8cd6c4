// Package tagmodel defines the tag value type and the in-memory tag index
// that the namespace engine queries.
package tagmodel

import "fmt"

// Separator joins a tag's label and value in its display form.
const Separator = ":"

// Tag is a labeled or unlabeled value attached to a file. The index
// identifies tags by their (label, value) pair (see key); singleton is
// metadata about the label, not part of that identity. Comparing Tag
// values with == also compares singleton.
type Tag struct {
	label     string
	hasLabel  bool
	value     string
	singleton bool
}

// From constructs an unlabeled tag.
func From(value string) Tag {
	return Tag{value: value}
}

// New constructs a labeled tag. singleton marks the label as mutually
// exclusive: at most one value of it may appear along any valid path.
func New(label string, singleton bool, value string) Tag {
	return Tag{label: label, hasLabel: true, singleton: singleton, value: value}
}

// Display renders the tag's directory name: "label:value" if labeled,
// otherwise just "value".
func (t Tag) Display() string {
	if t.hasLabel {
		return fmt.Sprintf("%s%s%s", t.label, Separator, t.value)
	}
	return t.value
}

// Label returns the tag's label and whether it has one.
func (t Tag) Label() (string, bool) {
	return t.label, t.hasLabel
}

// Value returns the tag's bare value, independent of its display form.
func (t Tag) Value() string {
	return t.value
}

// IsSingleton reports whether at most one tag of this label may appear
// along a valid path.
func (t Tag) IsSingleton() bool {
	return t.singleton
}

// key is the equality/hash identity of a tag: (label, hasLabel, value).
// singleton is deliberately excluded, per the tag model's equality rule.
type key struct {
	label    string
	hasLabel bool
	value    string
}

func (t Tag) key() key {
	return key{t.label, t.hasLabel, t.value}
}
