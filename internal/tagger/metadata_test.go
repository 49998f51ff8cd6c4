package tagger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagger"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

func TestMetadataTaggerFile(t *testing.T) {
	fake := sysfs.NewFake()
	fake.AddFile("test_file", &sysfs.FakeFile{
		Stat: sysfs.Stat{
			Mode:  unix.S_IFREG | 0644,
			Size:  1234,
			Mtime: time.Unix(24*60*60, 0),
		},
	})

	mt := tagger.NewMetadataTagger(fake)
	tags, err := mt.Tag("test_file")
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Contains(t, tags, tagmodel.New("size", true, "1234"))
	assert.Contains(t, tags, tagmodel.New("modified", true, "1970-01-02 00:00:00"))
}

func TestMetadataTaggerDirectoryIsEmpty(t *testing.T) {
	fake := sysfs.NewFake()
	fake.AddFile("src", &sysfs.FakeFile{Stat: sysfs.Stat{Mode: unix.S_IFDIR | 0755}})

	mt := tagger.NewMetadataTagger(fake)
	tags, err := mt.Tag("src")
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestMetadataTaggerMissingIsIllegible(t *testing.T) {
	fake := sysfs.NewFake()
	mt := tagger.NewMetadataTagger(fake)
	_, err := mt.Tag("test_file")
	assert.ErrorIs(t, err, tagger.ErrIllegible)
}
