package ccli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func noopRun(name, line string, data interface{}, args []string) (int, error) { return 0, nil }

func TestRegisterReplacesExistingCommand(t *testing.T) {
	r := NewRegistry()
	r.Register("go", noopRun, nil, 1)
	r.Register("go", noopRun, nil, 2)

	require.Len(t, r.Commands(), 1)
	cmd, ok := r.Lookup("go")
	require.True(t, ok)
	require.Equal(t, 2, cmd.Data)
}

func TestUnregisterCommand(t *testing.T) {
	r := NewRegistry()
	r.Register("go", noopRun, nil, nil)
	require.True(t, r.Unregister("go"))
	require.False(t, r.Unregister("go"))
	_, ok := r.Lookup("go")
	require.False(t, ok)
}

func TestAliasRegistrationAndRemoval(t *testing.T) {
	r := NewRegistry()
	r.RegisterAlias("ll", "ls -la")
	a, ok := r.LookupAlias("ll")
	require.True(t, ok)
	require.Equal(t, "ls -la", a.Expansion)

	r.RegisterAlias("ll", "")
	_, ok = r.LookupAlias("ll")
	require.False(t, ok)
}

func TestDefaultHooks(t *testing.T) {
	r := NewRegistry()
	var buf bytes.Buffer

	status, err := r.unknownHook(&buf, "frobnicate", []string{"frobnicate"})
	require.NoError(t, err)
	require.Equal(t, 0, status)
	require.Contains(t, buf.String(), "frobnicate")

	buf.Reset()
	status, err = r.interruptHook(&buf, "", 0)
	require.NoError(t, err)
	require.Equal(t, 1, status)
}

func TestRegisterCommandTableRejectsDuplicateSiblings(t *testing.T) {
	r := NewRegistry()
	root := &CommandNode{
		Subcommands: []*CommandNode{
			{Name: "add", Run: noopRun},
			{Name: "add", Run: noopRun},
		},
	}
	err := r.RegisterCommandTable(root)
	require.Error(t, err)
	require.Equal(t, KindBadStructure, KindOf(err))
}

func TestRegisterCommandTableRejectsDeadEnd(t *testing.T) {
	r := NewRegistry()
	root := &CommandNode{
		Subcommands: []*CommandNode{
			{Name: "remote"},
		},
	}
	err := r.RegisterCommandTable(root)
	require.Error(t, err)
}

func TestRegisterCommandTableFlattensTopLevel(t *testing.T) {
	r := NewRegistry()
	var got []string
	leaf := func(name, line string, data interface{}, args []string) (int, error) {
		got = args
		return 0, nil
	}
	root := &CommandNode{
		Subcommands: []*CommandNode{
			{
				Name: "remote",
				Subcommands: []*CommandNode{
					{Name: "add", Run: leaf},
				},
			},
		},
	}
	require.NoError(t, r.RegisterCommandTable(root))

	cmd, ok := r.Lookup("remote")
	require.True(t, ok)
	status, err := cmd.Run("remote", "remote add origin url", nil, []string{"remote", "add", "origin", "url"})
	require.NoError(t, err)
	require.Equal(t, 0, status)
	require.Equal(t, []string{"remote", "add", "origin", "url"}, got)
}

func TestRegisterCommandTableUnresolvedSubcommandFails(t *testing.T) {
	r := NewRegistry()
	root := &CommandNode{
		Subcommands: []*CommandNode{
			{
				Name: "remote",
				Subcommands: []*CommandNode{
					{Name: "add", Run: noopRun},
				},
			},
		},
	}
	require.NoError(t, r.RegisterCommandTable(root))

	cmd, ok := r.Lookup("remote")
	require.True(t, ok)
	_, err := cmd.Run("remote", "remote bogus", nil, []string{"remote", "bogus"})
	require.Error(t, err)
	require.Equal(t, KindNotFound, KindOf(err))
}
