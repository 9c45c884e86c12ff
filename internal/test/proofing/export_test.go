package proofing_test

import (
	"testing"

	"fotoproof-backend/internal/proofing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseName(t *testing.T) {
	cases := map[string]string{
		"IMG 001.jpg":     "IMG 001",
		"a.jpg":           "a",
		"archive.tar.gz":  "archive.tar",
		"no_extension":    "no_extension",
		"DSC_0042.CR2":    "DSC_0042",
		"folder.v2/photo": "folder.v2/photo",
	}
	for in, want := range cases {
		assert.Equal(t, want, proofing.BaseName(in), in)
	}
}

func TestFormats_SimpleNames(t *testing.T) {
	names := []string{"a.jpg", "b.jpg"}

	assert.Equal(t, "a OR b", proofing.WindowsFormat(names))
	assert.Equal(t, "a, b", proofing.LightroomFormat(names))
	assert.Equal(t, "a OR b", proofing.MacOSFormat(names))
}

func TestFormats_NamesWithSpaces(t *testing.T) {
	names := []string{"IMG 001.jpg", "IMG_002.jpg"}

	assert.Equal(t, "IMG 001 OR IMG_002", proofing.WindowsFormat(names))
	assert.Equal(t, "IMG 001, IMG_002", proofing.LightroomFormat(names))
	assert.Equal(t, `"IMG 001" OR IMG_002`, proofing.MacOSFormat(names))
}

func TestFormats_Idempotent(t *testing.T) {
	names := []string{"IMG 001.jpg", "b.png", "c"}

	first := proofing.Formats(names)
	second := proofing.Formats(names)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"IMG 001.jpg", "b.png", "c"}, names)
}

func TestFindFormat(t *testing.T) {
	f, ok := proofing.FindFormat([]string{"a.jpg"}, proofing.FormatLightroom)
	require.True(t, ok)
	assert.Equal(t, "lightroom_filter.txt", f.Filename)
	assert.Equal(t, "a", f.Content)

	_, ok = proofing.FindFormat([]string{"a.jpg"}, "bogus")
	assert.False(t, ok)
}

func TestFormats_Empty(t *testing.T) {
	assert.Equal(t, "", proofing.WindowsFormat(nil))
	assert.Equal(t, "", proofing.LightroomFormat([]string{}))
}
