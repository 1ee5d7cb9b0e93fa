package ccli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeAll(t *testing.T, input string) []Intent {
	t.Helper()
	dec := NewDecoder(strings.NewReader(input))
	var out []Intent
	for {
		in, err := dec.Next()
		require.NoError(t, err)
		if in.Kind == IntentEndOfInput {
			return out
		}
		out = append(out, in)
	}
}

func TestDecodeControlKeys(t *testing.T) {
	cases := map[string]IntentKind{
		"\x03": IntentInterrupt,
		"\x12": IntentReverseSearch,
		"\x15": IntentDeleteToStart,
		"\x19": IntentYank,
		"\x7f": IntentBackspace,
		"\r":   IntentEnter,
		"\n":   IntentEnter,
		"\t":   IntentTab,
		"a":    IntentPrintable,
	}
	for input, want := range cases {
		got := decodeAll(t, input)
		require.Len(t, got, 1, "input %q", input)
		require.Equal(t, want, got[0].Kind, "input %q", input)
	}
}

func TestDecodeCSIArrows(t *testing.T) {
	cases := map[string]IntentKind{
		"\x1b[A": IntentUp,
		"\x1b[B": IntentDown,
		"\x1b[C": IntentRight,
		"\x1b[D": IntentLeft,
		"\x1b[H": IntentHome,
		"\x1b[F": IntentEnd,
	}
	for input, want := range cases {
		got := decodeAll(t, input)
		require.Len(t, got, 1, "input %q", input)
		require.Equal(t, want, got[0].Kind, "input %q", input)
	}
}

func TestDecodeCSITilde(t *testing.T) {
	cases := map[string]IntentKind{
		"\x1b[3~": IntentDelete,
		"\x1b[5~": IntentPageUp,
		"\x1b[6~": IntentPageDown,
		"\x1b[1~": IntentHome,
		"\x1b[4~": IntentEnd,
	}
	for input, want := range cases {
		got := decodeAll(t, input)
		require.Len(t, got, 1, "input %q", input)
		require.Equal(t, want, got[0].Kind, "input %q", input)
	}
}

func TestDecodeCtrlArrowWordMotion(t *testing.T) {
	got := decodeAll(t, "\x1b[1;5C\x1b[1;5D")
	require.Len(t, got, 2)
	require.Equal(t, IntentRightWord, got[0].Kind)
	require.Equal(t, IntentLeftWord, got[1].Kind)
}

func TestDecodePrintableSequence(t *testing.T) {
	got := decodeAll(t, "hi")
	require.Len(t, got, 2)
	require.Equal(t, byte('h'), got[0].Byte)
	require.Equal(t, byte('i'), got[1].Byte)
}

func TestDecodeUnread(t *testing.T) {
	dec := NewDecoder(strings.NewReader("b"))
	dec.Unread('a')
	in, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, byte('a'), in.Byte)

	in, err = dec.Next()
	require.NoError(t, err)
	require.Equal(t, byte('b'), in.Byte)
}

func TestDecodeUnknownEscapeIgnored(t *testing.T) {
	got := decodeAll(t, "\x1bZ")
	require.Len(t, got, 1)
	require.Equal(t, IntentIgnored, got[0].Kind)
}
