// Command tagfs mounts a tag-based virtual filesystem over a source
// directory: every file is inspected once at startup, the tags it is
// assigned become nested directories, and reads/unlinks pass through to
// the backing file.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/scan"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/sysfs"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagfs"
)

// version is overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

const logLevelEnv = "TAGFS_LOG"

func setupLogger() {
	level, err := logrus.ParseLevel(os.Getenv(logLevelEnv))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func newRootCmd() *cobra.Command {
	var numThreads int

	cmd := &cobra.Command{
		Use:     "tagfs <mountpoint> <source>",
		Short:   "Tag-based filesystem",
		Long:    "Tag-based filesystem, with directory hierarchy based on intrinsic file properties.",
		Version: version,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], numThreads)
		},
	}
	cmd.Flags().IntVarP(&numThreads, "num-threads", "n", 1, "request-handling threads: 1 serializes requests, any larger value lets go-fuse dispatch them concurrently (the count itself is not used)")
	return cmd
}

func run(mountpoint, source string, numThreads int) error {
	shim := sysfs.Unix{}

	idx, err := scan.Build(source, scan.DefaultTaggers(shim), sysfs.Dev)
	if err != nil {
		return fmt.Errorf("scan source tree: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"source": source,
		"files":  len(idx.Files()),
		"tags":   len(idx.Tags()),
	}).Info("tag index built")

	root := tagfs.NewRoot(idx, shim, source)

	attrTTL := time.Second
	opts := &fs.Options{
		EntryTimeout:    &attrTTL,
		AttrTimeout:     &attrTTL,
		NegativeTimeout: &attrTTL,
		MountOptions: fuse.MountOptions{
			Options:        []string{"auto_unmount"},
			FsName:         source,
			Name:           "tagfs",
			SingleThreaded: numThreads <= 1,
			Debug:          logrus.GetLevel() >= logrus.DebugLevel,
		},
	}

	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		return fmt.Errorf("mount %s: %w", mountpoint, err)
	}
	logrus.WithField("mountpoint", mountpoint).Info("mounted")
	server.Wait()
	return nil
}

func main() {
	setupLogger()
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("tagfs failed")
		os.Exit(1)
	}
}
