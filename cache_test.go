package ccli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteAndParseSections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSection(&buf, "history", []string{"one", "two"}))
	require.NoError(t, WriteSection(&buf, "alias", []string{"ll ls -la"}))

	sections, err := ParseSections(&buf)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	require.Equal(t, "history", sections[0].Tag)
	require.Equal(t, []string{"one", "two"}, sections[0].Lines)
	require.Equal(t, "alias", sections[1].Tag)
	require.Equal(t, []string{"ll ls -la"}, sections[1].Lines)
}

func TestParseSectionsIgnoresUnrelatedContent(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("# a comment a human added\n")
	require.NoError(t, WriteSection(&buf, "history", []string{"one"}))
	buf.WriteString("# trailer\n")

	sections, err := ParseSections(&buf)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, []string{"one"}, sections[0].Lines)
}

func TestParseSectionsTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(cacheStartSentinel + " history 3\none\ntwo\n")
	_, err := ParseSections(&buf)
	require.Error(t, err)
	require.Equal(t, KindParseFailure, KindOf(err))
}

func TestReplaceSectionPreservesOthers(t *testing.T) {
	sections := []Section{
		{Tag: "history", Lines: []string{"old"}},
		{Tag: "alias", Lines: []string{"ll ls -la"}},
	}
	out := ReplaceSection(sections, "history", []string{"new"})
	require.Len(t, out, 2)

	lines, ok := FindSection(out, "history")
	require.True(t, ok)
	require.Equal(t, []string{"new"}, lines)

	lines, ok = FindSection(out, "alias")
	require.True(t, ok)
	require.Equal(t, []string{"ll ls -la"}, lines)
}

func TestSaveAndLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache")

	require.NoError(t, SaveFile(path, DefaultHistoryTag, []string{"make clean", "make test"}))
	require.NoError(t, SaveFile(path, DefaultAliasTag, []string{"ll ls -la"}))

	lines, ok, err := LoadFile(path, DefaultHistoryTag)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"make clean", "make test"}, lines)

	lines, ok, err = LoadFile(path, DefaultAliasTag)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"ll ls -la"}, lines)

	require.NoError(t, SaveFile(path, DefaultHistoryTag, []string{"make clean"}))
	lines, ok, err = LoadFile(path, DefaultAliasTag)
	require.NoError(t, err)
	require.True(t, ok, "the alias section must survive a rewrite of the history section")
	require.Equal(t, []string{"ll ls -la"}, lines)
}

func TestLoadFileMissingIsNotAnError(t *testing.T) {
	lines, ok, err := LoadFile(filepath.Join(t.TempDir(), "missing"), DefaultHistoryTag)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, lines)
}
