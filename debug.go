package ccli

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var dbg = struct {
	sync.Once
	w   io.WriteCloser
	err error
}{}

func initDebug() {
	path := os.Getenv("CCLI_DEBUG")
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		dbg.err = err
		return
	}
	dbg.w = f
}

func debugPrintf(format string, args ...interface{}) {
	dbg.Do(initDebug)
	if dbg.w == nil {
		return
	}
	fmt.Fprintf(dbg.w, format, args...)
}

func debugIntent(in Intent) string {
	switch in.Kind {
	case IntentPrintable:
		return fmt.Sprintf("<printable %q>", in.Byte)
	case IntentNone:
		return "<none>"
	default:
		return fmt.Sprintf("<%d>", in.Kind)
	}
}
