package ccli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLongestCommonPrefix(t *testing.T) {
	require.Equal(t, "make ", LongestCommonPrefix([]string{"make all", "make clean"}))
	require.Equal(t, "", LongestCommonPrefix([]string{"foo", "bar"}))
	require.Equal(t, "solo", LongestCommonPrefix([]string{"solo"}))
	require.Equal(t, "", LongestCommonPrefix(nil))
}

func TestCompleteCommandNames(t *testing.T) {
	r := NewRegistry()
	r.Register("make", noopRun, nil, nil)
	r.Register("man", noopRun, nil, nil)
	r.Register("ls", noopRun, nil, nil)

	cands := Complete(r, nil, 0, "ma")
	require.Equal(t, []string{"make", "man"}, cands.Words)
}

func TestCompletePerCommandCallback(t *testing.T) {
	r := NewRegistry()
	r.Register("checkout", noopRun, func(args []string, word int, match string) ([]string, byte) {
		return []string{"main", "master"}, 0
	}, nil)

	cands := Complete(r, []string{"checkout", "ma"}, 1, "ma")
	require.Equal(t, []string{"main", "master"}, cands.Words)
}

func TestCompleteCommandTableFallback(t *testing.T) {
	r := NewRegistry()
	root := &CompletionNode{
		Options: []*CompletionNode{
			{Name: "remote", Options: []*CompletionNode{
				{Name: "add"},
				{Name: "remove"},
			}},
		},
	}
	require.NoError(t, r.RegisterCompletionTable(root))

	cands := Complete(r, []string{"remote", "a"}, 1, "a")
	require.Equal(t, []string{"add"}, cands.Words)
}

func TestCompleteNoMatchesReturnsEmpty(t *testing.T) {
	r := NewRegistry()
	cands := Complete(r, nil, 0, "zzz")
	require.Empty(t, cands.Words)
}

func TestCompleteDedupesAndSorts(t *testing.T) {
	r := NewRegistry()
	r.SetDefaultComplete(func(args []string, word int, match string) ([]string, byte) {
		return []string{"b", "a", "b", "c"}, 0
	})
	cands := Complete(r, []string{"x"}, 1, "")
	require.Equal(t, []string{"a", "b", "c"}, cands.Words)
}
