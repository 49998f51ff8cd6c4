// Package scan walks a source tree once and builds the frozen tag index
// that the namespace engine queries for the lifetime of the mount.
package scan

import (
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagger"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// DevLookup returns the device number backing path, used to keep the walk
// on a single filesystem. Swapped out in tests; real callers use
// sysfs.Dev.
type DevLookup func(path string) (uint64, error)

// Build walks root, invoking every tagger on each regular file it finds,
// and returns the frozen index. The walk never crosses a device boundary.
// Tagger failures are logged and otherwise ignored; one tagger's Illegible
// result never prevents another from contributing.
func Build(root string, taggers []tagger.Tagger, devOf DevLookup) (*tagmodel.Index, error) {
	b := tagmodel.NewBuilder()

	rootDev, err := devOf(root)
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logrus.WithError(err).WithField("path", path).Warn("walk error")
			return nil
		}
		if d.IsDir() {
			dev, err := devOf(path)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Warn("stat directory")
				return filepath.SkipDir
			}
			if dev != rootDev {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		id := b.AddFile(path)
		union := make(map[tagmodel.Tag]struct{})
		for _, t := range taggers {
			tags, err := t.Tag(path)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Debug("tagger skipped file")
				continue
			}
			for tag := range tags {
				union[tag] = struct{}{}
			}
		}
		for tag := range union {
			b.Tag(id, tag)
		}
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		logrus.WithFields(logrus.Fields{
			"path": path,
			"size": size,
			"tags": len(union),
		}).Debug("scanned file")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b.Freeze(), nil
}

// DefaultTaggers returns the built-in taggers (MIME, metadata) wired
// against the real syscall shim.
func DefaultTaggers(shim sysfs.Shim) []tagger.Tagger {
	return []tagger.Tagger{
		tagger.NewMimeTagger(),
		tagger.NewMetadataTagger(shim),
	}
}
