package tagger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagger"
	"github.com/SMartinScottLogic/reimagined-octo-train/internal/tagmodel"
)

type stubExtractor struct {
	result string
	err    error
}

func (s stubExtractor) File(path string) (string, error) {
	return s.result, s.err
}

func TestMimeTaggerSuccess(t *testing.T) {
	mt := tagger.NewMimeTaggerWithExtractor(stubExtractor{result: "text/x-c"})
	tags, err := mt.Tag("main.go")
	require.NoError(t, err)
	assert.Equal(t, map[tagmodel.Tag]struct{}{
		tagmodel.New("mime", true, "text|x-c"): {},
	}, tags)
}

func TestMimeTaggerTrimsParameters(t *testing.T) {
	mt := tagger.NewMimeTaggerWithExtractor(stubExtractor{result: "text/plain; charset=utf-8"})
	tags, err := mt.Tag("README")
	require.NoError(t, err)
	assert.Contains(t, tags, tagmodel.New("mime", true, "text|plain"))
}

func TestMimeTaggerFailureIsIllegible(t *testing.T) {
	mt := tagger.NewMimeTaggerWithExtractor(stubExtractor{err: errors.New("boom")})
	_, err := mt.Tag("bob")
	assert.ErrorIs(t, err, tagger.ErrIllegible)
}
