package ccli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryAddAndNavigate(t *testing.T) {
	h := NewHistory(3)
	h.Add("one")
	h.Add("two")
	h.Add("three")

	buf := NewBuffer()
	require.False(t, h.Up(1, buf))
	require.Equal(t, "three", buf.String())

	require.False(t, h.Up(1, buf))
	require.Equal(t, "two", buf.String())

	require.False(t, h.Down(1, buf))
	require.Equal(t, "three", buf.String())

	require.False(t, h.Down(1, buf))
	require.Equal(t, "", buf.String())
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(2)
	h.Add("one")
	h.Add("two")
	h.Add("three")

	require.Equal(t, 3, h.Size())

	v, ok := h.At(1)
	require.True(t, ok)
	require.Equal(t, "three", v)

	v, ok = h.At(2)
	require.True(t, ok)
	require.Equal(t, "two", v)

	_, ok = h.At(3)
	require.False(t, ok, "oldest entry should have been evicted out of the bounded ring")
}

func TestHistoryScratchPreservedAcrossNavigation(t *testing.T) {
	h := NewHistory(5)
	h.Add("make clean")

	buf := NewBuffer()
	buf.Replace("in progress")

	h.Up(1, buf)
	require.Equal(t, "make clean", buf.String())

	h.Down(1, buf)
	require.Equal(t, "in progress", buf.String())
}

func TestHistoryReverseSearch(t *testing.T) {
	h := NewHistory(10)
	h.Add("make clean")
	h.Add("make test")

	buf := NewBuffer()
	h.BeginSearch(buf)
	h.AppendSearchKey('c', buf)
	h.AppendSearchKey('l', buf)
	h.AppendSearchKey('e', buf)

	require.False(t, h.SearchFailed())
	require.Equal(t, "make clean", buf.String())

	h.Advance(buf)
	require.True(t, h.SearchFailed(), "no earlier entry contains \"cle\"")

	h.EndSearch()
	require.False(t, h.Searching())
}

func TestHistorySearchAbortRestoresLine(t *testing.T) {
	h := NewHistory(10)
	h.Add("make clean")

	buf := NewBuffer()
	buf.Replace("draft")

	h.BeginSearch(buf)
	h.AppendSearchKey('c', buf)
	require.Equal(t, "make clean", buf.String())

	h.AbortSearch(buf)
	require.Equal(t, "draft", buf.String())
	require.False(t, h.Searching())
}

func TestHistoryDisabled(t *testing.T) {
	h := NewHistory(0)
	h.Add("ignored")
	require.Equal(t, 0, h.Size())
}
