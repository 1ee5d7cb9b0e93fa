package ccli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// completionBlock is the slice growth chunk used when gathering
// candidates, mirroring the teacher's amortised append pattern used
// elsewhere for buffers and history rings.
const completionBlock = 64

// Candidates holds the result of a completion gather: the deduplicated,
// sorted set of candidate strings plus the terminator byte to append
// after a unique match (0 meaning "the default space").
type Candidates struct {
	Words      []string
	Terminator byte
}

// LongestCommonPrefix returns the longest prefix shared by every string
// in words, or "" if words is empty.
func LongestCommonPrefix(words []string) string {
	if len(words) == 0 {
		return ""
	}
	prefix := words[0]
	for _, w := range words[1:] {
		i := 0
		for i < len(prefix) && i < len(w) && prefix[i] == w[i] {
			i++
		}
		prefix = prefix[:i]
		if prefix == "" {
			break
		}
	}
	return prefix
}

// dedupSorted stable-sorts words and removes exact duplicates, growing
// the backing array in completionBlock-sized chunks as the teacher's
// candidate-list helper does.
func dedupSorted(words []string) []string {
	if len(words) == 0 {
		return nil
	}
	sort.Strings(words)
	out := make([]string, 0, ((len(words)/completionBlock)+1)*completionBlock)
	out = append(out, words[0])
	for _, w := range words[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}

func filterPrefix(words []string, prefix string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// commandNames lists every flat command name, used both for completing
// argv[0] and as the base of the command-table traversal.
func commandNames(r *Registry) []string {
	names := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		names = append(names, c.Name)
	}
	return names
}

// completionTableNames walks the completion table matching args[0:word]
// against Options by name, one level per consumed argument, returning
// the candidate Options names at the node reached — or nil if the path
// does not resolve. At word == 0 no argument is consumed and root's own
// Options are returned, matching the top-level command names.
func completionTableNames(root *CompletionNode, args []string, word int) ([]string, CompleteFunc, bool) {
	if root == nil {
		return nil, nil, false
	}
	cur := root
	depth := 0
	for depth < word {
		if depth >= len(args) {
			break
		}
		var next *CompletionNode
		for _, o := range cur.Options {
			if o.Name == args[depth] {
				next = o
				break
			}
		}
		if next == nil {
			return nil, nil, false
		}
		cur = next
		depth++
	}
	if cur.Complete != nil {
		return nil, cur.Complete, true
	}
	names := make([]string, 0, len(cur.Options))
	for _, o := range cur.Options {
		names = append(names, o.Name)
	}
	return names, nil, true
}

// Complete gathers completion candidates for word (an index into args;
// word == len(args) means a new, empty trailing word) against match,
// the partial text already typed for that word (component C). Every
// applicable source appends to one shared candidate list, which is then
// deduplicated, sorted, and filtered by match as a whole:
//
//  1. word == 0: flat command names.
//  2. a per-command Complete callback, if args[0] names a registered
//     command with one installed.
//  3. the completion table, walked by args[0:word] (this also supplies
//     the table's root options at word == 0, alongside the command
//     names from source 1).
//  4. the registry-wide default completion callback, only when no
//     per-command callback from source 2 ran.
//
// The terminator reported is that of the last source that produced a
// non-default one.
func Complete(r *Registry, args []string, word int, match string) Candidates {
	var words []string
	var terminator byte

	if word == 0 {
		words = append(words, commandNames(r)...)
	}

	cmdFired := false
	if len(args) > 0 {
		if cmd, ok := r.Lookup(args[0]); ok && cmd.Complete != nil {
			cmdFired = true
			w, term := cmd.Complete(args, word, match)
			words = append(words, w...)
			if term != 0 {
				terminator = term
			}
		}
	}

	if names, fn, ok := completionTableNames(r.completionTable, args, word); ok {
		if fn != nil {
			w, term := fn(args, word, match)
			words = append(words, w...)
			if term != 0 {
				terminator = term
			}
		} else {
			words = append(words, names...)
		}
	}

	if !cmdFired && r.defaultComplete != nil {
		w, term := r.defaultComplete(args, word, match)
		words = append(words, w...)
		if term != 0 {
			terminator = term
		}
	}

	return Candidates{Words: dedupSorted(filterPrefix(words, match)), Terminator: terminator}
}

// FileComplete is a ready-made CompleteFunc for commands that take a
// filesystem path argument: it lists the entries of the directory part
// of match, filtered by the remaining basename prefix, annotating
// directories with a trailing slash and the NoSpace terminator so the
// cursor lands ready to descend further rather than past a space.
func FileComplete(args []string, word int, match string) ([]string, byte) {
	dir, base := filepath.Split(match)
	lookIn := dir
	if lookIn == "" {
		lookIn = "."
	}
	entries, err := os.ReadDir(lookIn)
	if err != nil {
		return nil, 0
	}
	var out []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), base) {
			continue
		}
		name := dir + e.Name()
		if e.IsDir() {
			name += "/"
		}
		out = append(out, name)
	}
	if len(out) == 1 && strings.HasSuffix(out[0], "/") {
		return out, NoSpace
	}
	return out, 0
}

// PathComplete is a ready-made CompleteFunc that completes executable
// names found on the colon-separated directories of $PATH, for
// commands that invoke an external program named by their first
// argument.
func PathComplete(args []string, word int, match string) ([]string, byte) {
	var out []string
	for _, dir := range strings.Split(os.Getenv("PATH"), ":") {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if strings.HasPrefix(e.Name(), match) {
				out = append(out, e.Name())
			}
		}
	}
	return out, 0
}
