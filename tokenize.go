package ccli

import "strings"

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// Tokenize converts a raw line into an argument vector (component T),
// honouring single and double quoting and backslash escapes. If delim
// is non-empty it is treated as a statement separator: parsing stops
// at the first top-level (unquoted) occurrence of delim and next is
// set to the offset just past it (with following whitespace skipped)
// so the caller can resume parsing the remainder as another statement.
// If no delimiter is found (or none was supplied), next is -1.
//
// Tokenize never fails on malformed quoting — an unterminated quote
// simply runs to the end of input, matching the non-fatal posture
// §7 requires of the dispatcher's parse-failure path (which instead
// arises from true resource exhaustion, not malformed syntax).
func Tokenize(line, delim string) (args []string, next int, err error) {
	i := 0
	n := len(line)

	for {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i >= n {
			return args, -1, nil
		}
		if delim != "" && strings.HasPrefix(line[i:], delim) {
			i += len(delim)
			for i < n && isSpace(line[i]) {
				i++
			}
			return args, i, nil
		}

		var raw []byte
		var q byte
		for i < n {
			c := line[i]
			if q == 0 && isSpace(c) {
				break
			}
			if q == 0 && delim != "" && strings.HasPrefix(line[i:], delim) {
				break
			}
			if c == '\\' {
				raw = append(raw, c)
				i++
				if i < n {
					raw = append(raw, line[i])
					i++
				}
				continue
			}
			if c == '\'' || c == '"' {
				if q == 0 {
					q = c
				} else if q == c {
					q = 0
				}
				raw = append(raw, c)
				i++
				continue
			}
			raw = append(raw, c)
			i++
		}
		args = append(args, unquoteArg(string(raw)))
	}
}

// unquoteArg implements rule 6: strip unescaped quote bytes and
// resolve backslash escapes (a backslash followed by any byte keeps
// that byte literally; a trailing unescaped backslash is kept as-is).
func unquoteArg(raw string) string {
	var buf strings.Builder
	buf.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case '\\':
			if i+1 < len(raw) {
				i++
				buf.WriteByte(raw[i])
			} else {
				buf.WriteByte('\\')
			}
		case '\'', '"':
			// drop the quote byte itself
		default:
			buf.WriteByte(c)
		}
	}
	return buf.String()
}

// Quote re-quotes a single argument unambiguously using single quotes,
// escaping embedded backslashes and single quotes. It is the inverse
// half of the tokenise/re-quote round trip in §8 invariant 3.
func Quote(arg string) string {
	var buf strings.Builder
	buf.Grow(len(arg) + 2)
	buf.WriteByte('\'')
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		if c == '\\' || c == '\'' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(c)
	}
	buf.WriteByte('\'')
	return buf.String()
}

// QuoteArgs re-quotes and joins an argument vector with single spaces.
func QuoteArgs(args []string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = Quote(a)
	}
	return strings.Join(parts, " ")
}
