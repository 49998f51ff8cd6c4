package tagger

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

// MimeLabel is the singleton label the MIME tagger emits under.
const MimeLabel = "mime"

// MimeExtractor sniffs the MIME type of a file. Injectable so the tagger
// can be unit tested without touching the real detector.
type MimeExtractor interface {
	File(path string) (string, error)
}

// realMimeExtractor wraps the pack's pure-Go MIME sniffer.
type realMimeExtractor struct{}

func (realMimeExtractor) File(path string) (string, error) {
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return m.String(), nil
}

// MimeTagger emits a single singleton "mime" tag per file, sourced from an
// injectable MimeExtractor. Extractor failure maps to ErrIllegible; other
// taggers still run.
type MimeTagger struct {
	extractor MimeExtractor
}

// NewMimeTagger returns a MimeTagger backed by the real MIME sniffer.
func NewMimeTagger() *MimeTagger {
	return &MimeTagger{extractor: realMimeExtractor{}}
}

// NewMimeTaggerWithExtractor returns a MimeTagger backed by extractor,
// for tests.
func NewMimeTaggerWithExtractor(extractor MimeExtractor) *MimeTagger {
	return &MimeTagger{extractor: extractor}
}

func (t *MimeTagger) Tag(path string) (map[tagmodel.Tag]struct{}, error) {
	raw, err := t.extractor.File(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Debug("mime lookup failed")
		return nil, ErrIllegible
	}
	// mimetype returns e.g. "text/plain; charset=utf-8"; keep the essence.
	essence, _, _ := strings.Cut(raw, ";")
	essence = strings.TrimSpace(essence)
	value := strings.ReplaceAll(essence, "/", "|")
	return newTagSet(tagmodel.New(MimeLabel, true, value)), nil
}
