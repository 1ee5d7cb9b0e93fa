package ccli

import (
	"fmt"
	"io"
)

// NoSpace is the reserved completion-terminator sentinel meaning
// "append nothing after this unique match" instead of a space.
const NoSpace byte = 1

// CommandFunc is the callback invoked to run a registered command. name
// is the name under which it was found (equal to args[0]; after an
// alias expansion both come from the expanded statement), line is the
// raw statement text, and args is the tokenised argument vector.
type CommandFunc func(name, line string, data interface{}, args []string) (int, error)

// CompleteFunc proposes completion candidates for the in-progress word
// match within args (args[word] is being completed; match is its
// current, possibly empty, text). The returned terminator byte
// overrides the default space delimiter inserted after a unique match;
// 0 means "use the default", NoSpace means "append nothing".
type CompleteFunc func(args []string, word int, match string) (candidates []string, terminator byte)

// Command is a flat per-command registry record (component R).
type Command struct {
	Name     string
	Run      CommandFunc
	Complete CompleteFunc
	Data     interface{}
}

// Alias is a recorded alias expansion. Executing is set transiently by
// the dispatch engine while the expansion is in flight, to suppress
// recursive self-expansion.
type Alias struct {
	Name      string
	Expansion string
	executing bool
}

// CommandNode is one node of a hierarchical command table. The root
// node's Name is ignored. A nil Run with no Subcommands is a
// structural error caught by RegisterCommandTable.
type CommandNode struct {
	Name        string
	Run         CommandFunc
	Data        interface{}
	Options     interface{}
	Subcommands []*CommandNode
}

// CompletionNode is one node of a hierarchical completion table.
type CompletionNode struct {
	Name     string
	Complete CompleteFunc
	Data     interface{}
	Options  []*CompletionNode
}

// EnterHook runs when an empty line is submitted.
type EnterHook func() (int, error)

// UnknownHook runs when argv[0] matches no alias, no command, and no
// command-table entry.
type UnknownHook func(w io.Writer, name string, args []string) (int, error)

// InterruptHook runs on Ctrl-C. A non-zero return ends the event loop.
type InterruptHook func(w io.Writer, line string, pos int) (int, error)

func defaultEnterHook() (int, error) { return 0, nil }

func defaultUnknownHook(w io.Writer, name string, args []string) (int, error) {
	fmt.Fprintf(w, "Command not found: %s\n", name)
	return 0, nil
}

func defaultInterruptHook(w io.Writer, line string, pos int) (int, error) {
	fmt.Fprintf(w, "^C\n")
	return 1, nil
}

// Registry (component R) owns command and alias records, the three
// singleton hooks, and the optional command and completion tables.
type Registry struct {
	commands []*Command
	aliases  []*Alias

	commandTable    *CommandNode
	completionTable *CompletionNode
	defaultComplete CompleteFunc

	enterHook     EnterHook
	unknownHook   UnknownHook
	interruptHook InterruptHook

	chainDelim string
}

// NewRegistry returns a Registry with the default hooks installed.
func NewRegistry() *Registry {
	return &Registry{
		enterHook:     defaultEnterHook,
		unknownHook:   defaultUnknownHook,
		interruptHook: defaultInterruptHook,
	}
}

// Register adds or replaces the command named name. Replacing an
// existing name updates its callback and data in place; invariant 6
// in §8 (registering the same name twice leaves exactly one record).
func (r *Registry) Register(name string, run CommandFunc, complete CompleteFunc, data interface{}) {
	for _, c := range r.commands {
		if c.Name == name {
			c.Run, c.Complete, c.Data = run, complete, data
			return
		}
	}
	r.commands = append(r.commands, &Command{Name: name, Run: run, Complete: complete, Data: data})
}

// Unregister removes the command named name, compacting the list.
func (r *Registry) Unregister(name string) bool {
	for i, c := range r.commands {
		if c.Name == name {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup finds a command by exact name (linear scan — command counts
// are expected to be small, per §9 design notes).
func (r *Registry) Lookup(name string) (*Command, bool) {
	for _, c := range r.commands {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Commands returns the registered commands in registration order.
func (r *Registry) Commands() []*Command { return r.commands }

// RegisterAlias adds or replaces an alias. Registering with an empty
// expansion removes it.
func (r *Registry) RegisterAlias(name, expansion string) {
	if expansion == "" {
		r.UnregisterAlias(name)
		return
	}
	for _, a := range r.aliases {
		if a.Name == name {
			a.Expansion = expansion
			return
		}
	}
	r.aliases = append(r.aliases, &Alias{Name: name, Expansion: expansion})
}

// UnregisterAlias removes the alias named name.
func (r *Registry) UnregisterAlias(name string) bool {
	for i, a := range r.aliases {
		if a.Name == name {
			r.aliases = append(r.aliases[:i], r.aliases[i+1:]...)
			return true
		}
	}
	return false
}

// LookupAlias finds an alias by exact name.
func (r *Registry) LookupAlias(name string) (*Alias, bool) {
	for _, a := range r.aliases {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Aliases returns the registered aliases in registration order.
func (r *Registry) Aliases() []*Alias { return r.aliases }

// SetEnterHook replaces the empty-line submission hook.
func (r *Registry) SetEnterHook(h EnterHook) {
	if h == nil {
		h = defaultEnterHook
	}
	r.enterHook = h
}

// SetUnknownHook replaces the no-match submission hook.
func (r *Registry) SetUnknownHook(h UnknownHook) {
	if h == nil {
		h = defaultUnknownHook
	}
	r.unknownHook = h
}

// SetInterruptHook replaces the Ctrl-C hook.
func (r *Registry) SetInterruptHook(h InterruptHook) {
	if h == nil {
		h = defaultInterruptHook
	}
	r.interruptHook = h
}

// SetDefaultComplete installs the fallback completion callback used
// when no per-command completion fires.
func (r *Registry) SetDefaultComplete(fn CompleteFunc) { r.defaultComplete = fn }

// SetChainDelimiter configures the command-chaining statement
// separator (e.g. ";" or "&&"). An empty string disables chaining.
func (r *Registry) SetChainDelimiter(delim string) { r.chainDelim = delim }

// ChainDelimiter returns the configured chaining delimiter, if any.
func (r *Registry) ChainDelimiter() string { return r.chainDelim }

// validateCommandTree walks a command table checking for the
// structural errors §4.8 assigns to registration-time validation: a
// nil node, duplicate sibling names, or a node with neither a Run
// callback nor any Subcommands (dead end). In the source this is a
// sigsetjmp-guarded pointer walk over a possibly-malformed NUL-less
// array; here the table is a typed Go slice, so the only remaining
// failure modes are the semantic ones below (§9 design note).
func validateCommandTree(node *CommandNode, isRoot bool) error {
	if node == nil {
		return errBadStructure("nil command table node")
	}
	if !isRoot && node.Run == nil && len(node.Subcommands) == 0 {
		return errBadStructure("command node " + node.Name + " has neither a callback nor subcommands")
	}
	seen := make(map[string]bool, len(node.Subcommands))
	for _, child := range node.Subcommands {
		if child == nil {
			return errBadStructure("nil subcommand under " + node.Name)
		}
		if child.Name == "" {
			return errBadStructure("unnamed subcommand under " + node.Name)
		}
		if seen[child.Name] {
			return errBadStructure("duplicate subcommand name: " + child.Name)
		}
		seen[child.Name] = true
		if err := validateCommandTree(child, false); err != nil {
			return err
		}
	}
	return nil
}

func validateCompletionTree(node *CompletionNode) error {
	if node == nil {
		return errBadStructure("nil completion table node")
	}
	seen := make(map[string]bool, len(node.Options))
	for _, child := range node.Options {
		if child == nil {
			return errBadStructure("nil completion option under " + node.Name)
		}
		if seen[child.Name] {
			return errBadStructure("duplicate completion option name: " + child.Name)
		}
		seen[child.Name] = true
		if err := validateCompletionTree(child); err != nil {
			return err
		}
	}
	return nil
}

// RegisterCommandTable validates root, stores it, and registers each
// of its top-level subcommands as a normal flat command whose callback
// re-enters the tree with the argument vector offset past the
// top-level name (§4.6, §4.7).
func (r *Registry) RegisterCommandTable(root *CommandNode) error {
	if err := validateCommandTree(root, true); err != nil {
		return err
	}
	r.commandTable = root
	for _, child := range root.Subcommands {
		node := child
		r.Register(node.Name, func(name, line string, data interface{}, args []string) (int, error) {
			return dispatchCommandNode(node, name, line, args, 1)
		}, nil, nil)
	}
	return nil
}

// RegisterCompletionTable validates and stores the hierarchical
// completion table.
func (r *Registry) RegisterCompletionTable(root *CompletionNode) error {
	if err := validateCompletionTree(root); err != nil {
		return err
	}
	r.completionTable = root
	return nil
}

// resolveCommandNode walks node matching args[offset:] against
// Subcommands by exact name, stopping at the deepest match. It returns
// the matched node and how many argv entries were consumed navigating
// to it.
func resolveCommandNode(node *CommandNode, args []string, offset int) (*CommandNode, int) {
	cur := node
	depth := offset
	for depth < len(args) {
		var next *CommandNode
		for _, c := range cur.Subcommands {
			if c.Name == args[depth] {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		cur = next
		depth++
	}
	return cur, depth
}

// dispatchCommandNode re-enters a command table at node, resolving any
// further nested subcommand names from args[offset:] before invoking
// the deepest match's Run callback with the full, unshifted argument
// vector.
func dispatchCommandNode(node *CommandNode, name, line string, args []string, offset int) (int, error) {
	target, consumed := resolveCommandNode(node, args, offset)
	if target.Run == nil {
		return 0, errNotFound("no callback for command: " + name)
	}
	_ = consumed
	return target.Run(name, line, target.Data, args)
}
