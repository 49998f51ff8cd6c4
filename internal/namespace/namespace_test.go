package namespace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/namespace"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

func names(entries []namespace.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func fileEntries(entries []namespace.Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Kind == namespace.EntryRegularFile {
			out = append(out, e.Name)
		}
	}
	return out
}

func TestRootListing(t *testing.T) {
	tag1, tag2, tag3 := tagmodel.From("tag1"), tagmodel.From("tag2"), tagmodel.From("tag3")
	b := tagmodel.NewBuilder()
	b.AddFile("/src/file1.txt")
	other := b.AddFile("/src/unrelated.txt")
	b.Tag(other, tag1)
	b.Tag(other, tag2)
	b.Tag(other, tag3)
	idx := b.Freeze()

	entries, ok := namespace.List(idx, "/")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{".", "..", "tag1", "tag2", "tag3"}, names(entries))
	assert.Empty(t, fileEntries(entries), "root always shows zero files, per spec")
}

func TestSingleTagListing(t *testing.T) {
	tag1, tag2, tag3 := tagmodel.From("tag1"), tagmodel.From("tag2"), tagmodel.From("tag3")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/src/file1.txt")
	b.Tag(f0, tag2)
	// Tag a second file with tag1/tag3 so they are known to the index and
	// remain candidates, while file1.txt carries only tag2.
	other := b.AddFile("/src/x")
	b.Tag(other, tag1)
	b.Tag(other, tag3)
	idx := b.Freeze()

	entries, ok := namespace.List(idx, "/tag2")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{".", "..", "tag1", "tag3", "file1.txt"}, names(entries))
}

func TestIntersectionDepthTwo(t *testing.T) {
	tag1, tag2 := tagmodel.From("tag1"), tagmodel.From("tag2")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/src/file1.txt")
	b.Tag(f0, tag1)
	b.Tag(f0, tag2)
	idx := b.Freeze()

	entries, ok := namespace.List(idx, "/tag2/tag1")
	require.True(t, ok)
	assert.Equal(t, []string{"file1.txt"}, fileEntries(entries))
}

func TestIntersectionIsOrderInsensitive(t *testing.T) {
	tag1, tag2 := tagmodel.From("tag1"), tagmodel.From("tag2")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/src/file1.txt")
	b.Tag(f0, tag1)
	b.Tag(f0, tag2)
	idx := b.Freeze()

	a, ok := namespace.List(idx, "/tag2/tag1")
	require.True(t, ok)
	c, ok := namespace.List(idx, "/tag1/tag2")
	require.True(t, ok)
	assert.ElementsMatch(t, names(a), names(c))
}

func TestSingletonSuppression(t *testing.T) {
	v1 := tagmodel.New("singleton", true, "v1")
	v2 := tagmodel.New("singleton", true, "v2")
	tag1 := tagmodel.From("tag1")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/src/file1.txt")
	b.Tag(f0, v1)
	other := b.AddFile("/src/other.txt")
	b.Tag(other, v2)
	b.Tag(other, tag1)
	idx := b.Freeze()

	entries, ok := namespace.List(idx, "/singleton:v1")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{".", "..", "tag1", "file1.txt"}, names(entries))
	assert.NotContains(t, names(entries), "singleton:v2")
}

func TestResolveFile(t *testing.T) {
	tag := tagmodel.From("tag")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/fake/source/present.txt")
	b.Tag(f0, tag)
	idx := b.Freeze()

	res, err := namespace.Resolve(idx, "/tag/present.txt")
	require.NoError(t, err)
	assert.Equal(t, namespace.File, res.Kind)
	assert.Equal(t, "/fake/source/present.txt", res.Source)
}

func TestResolveMissing(t *testing.T) {
	tag := tagmodel.From("tag")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/fake/source/present.txt")
	b.Tag(f0, tag)
	idx := b.Freeze()

	res, err := namespace.Resolve(idx, "/tag/missing.txt")
	require.NoError(t, err)
	assert.Equal(t, namespace.Missing, res.Kind)
}

func TestResolveFileDirectlyUnderRoot(t *testing.T) {
	// Resolve's "parent is root" case uses the all-files universe even
	// though List never shows files at root (spec §4.4 vs §4.5).
	tag := tagmodel.From("tag")
	b := tagmodel.NewBuilder()
	f0 := b.AddFile("/fake/source/present.txt")
	b.Tag(f0, tag)
	idx := b.Freeze()

	res, err := namespace.Resolve(idx, "/present.txt")
	require.NoError(t, err)
	assert.Equal(t, namespace.File, res.Kind)
	assert.Equal(t, "/fake/source/present.txt", res.Source)
}

func TestResolveUnknownTagIsMissing(t *testing.T) {
	idx := tagmodel.NewBuilder().Freeze()
	res, err := namespace.Resolve(idx, "/nosuchtag")
	require.NoError(t, err)
	assert.Equal(t, namespace.Missing, res.Kind)
}

func TestBasenameCollisionTakesFirstInsertionOrder(t *testing.T) {
	tag := tagmodel.From("tag")
	b := tagmodel.NewBuilder()
	first := b.AddFile("/a/dup.txt")
	b.Tag(first, tag)
	second := b.AddFile("/b/dup.txt")
	b.Tag(second, tag)
	idx := b.Freeze()

	res, err := namespace.Resolve(idx, "/tag/dup.txt")
	require.NoError(t, err)
	require.Equal(t, namespace.File, res.Kind)
	assert.Equal(t, "/a/dup.txt", res.Source)
}

func TestDriveLetterPrefixRejected(t *testing.T) {
	idx := tagmodel.NewBuilder().Freeze()
	_, err := namespace.Resolve(idx, "/C:/foo")
	assert.ErrorIs(t, err, namespace.ErrInvalidPath)
}
