package ccli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// newTranscriptRegistry builds the small fixed command set the
// dispatch transcripts in testdata/dispatch exercise: echo, alias, a
// couple of bare marker commands, and chaining enabled on ";".
func newTranscriptRegistry(out *bytes.Buffer) *Registry {
	r := NewRegistry()
	r.SetChainDelimiter(";")
	r.Register("alias", func(name, line string, data interface{}, args []string) (int, error) {
		if len(args) >= 3 {
			r.RegisterAlias(args[1], QuoteArgs(args[2:]))
		}
		return 0, nil
	}, nil, nil)
	r.Register("echo", func(name, line string, data interface{}, args []string) (int, error) {
		fmt.Fprintln(out, strings.Join(args[1:], " "))
		return 0, nil
	}, nil, nil)
	r.Register("first", func(name, line string, data interface{}, args []string) (int, error) {
		fmt.Fprintln(out, "first")
		return 0, nil
	}, nil, nil)
	r.Register("second", func(name, line string, data interface{}, args []string) (int, error) {
		fmt.Fprintln(out, "second")
		return 0, nil
	}, nil, nil)
	return r
}

// TestDispatchTranscript runs the dispatch engine against golden
// command transcripts: each "run" block is one or more lines submitted
// in sequence, and the expected output is whatever those lines wrote
// plus any unknown-command diagnostics.
func TestDispatchTranscript(t *testing.T) {
	var r *Registry
	var h *History
	out := &bytes.Buffer{}

	datadriven.Walk(t, "testdata/dispatch", func(t *testing.T, path string) {
		datadriven.RunTest(t, path, func(t *testing.T, td *datadriven.TestData) string {
			switch td.Cmd {
			case "init":
				r = newTranscriptRegistry(out)
				h = NewHistory(50)
				return ""

			case "run":
				out.Reset()
				for _, line := range strings.Split(strings.TrimRight(td.Input, "\n"), "\n") {
					if line == "" {
						continue
					}
					if _, err := Execute(r, h, out, line, true); err != nil {
						return err.Error()
					}
				}
				return out.String()

			default:
				t.Fatalf("unknown directive: %s", td.Cmd)
				return ""
			}
		})
	})
}
