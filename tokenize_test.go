package ccli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeBasic(t *testing.T) {
	args, next, err := Tokenize("set  foo   bar", "")
	require.NoError(t, err)
	require.Equal(t, -1, next)
	require.Equal(t, []string{"set", "foo", "bar"}, args)
}

func TestTokenizeQuoting(t *testing.T) {
	args, _, err := Tokenize(`echo "hello world" 'it''s'`, "")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "hello world", "its"}, args)
}

func TestTokenizeEscapes(t *testing.T) {
	args, _, err := Tokenize(`echo a\ b c\\d`, "")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "a b", `c\d`}, args)
}

func TestTokenizeChainDelimiter(t *testing.T) {
	args, next, err := Tokenize("echo one; echo two", ";")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "one"}, args)
	require.Greater(t, next, 0)

	args2, next2, err := Tokenize("echo one; echo two"[next:], ";")
	require.NoError(t, err)
	require.Equal(t, []string{"echo", "two"}, args2)
	require.Equal(t, -1, next2)
}

func TestTokenizeEmpty(t *testing.T) {
	args, next, err := Tokenize("   ", "")
	require.NoError(t, err)
	require.Equal(t, -1, next)
	require.Nil(t, args)
}

func TestQuoteRoundTrip(t *testing.T) {
	original := []string{"it's", `a\b`, "plain", "with space"}
	quoted := QuoteArgs(original)

	args, _, err := Tokenize(quoted, "")
	require.NoError(t, err)
	require.Equal(t, original, args)
}

func TestQuoteSingleArg(t *testing.T) {
	require.Equal(t, `'it\'s'`, Quote("it's"))
}
