package ccli

import "errors"

// Kind classifies the failure behind an Error, mirroring the small
// taxonomy a systems implementation would otherwise report through
// errno plus a bare -1 return.
type Kind int

const (
	// KindNone indicates a non-error sentinel; it never appears on a
	// constructed *Error.
	KindNone Kind = iota
	// KindInvalidArgument covers nil handles, negative file descriptors,
	// and malformed arguments caught before any work is attempted.
	KindInvalidArgument
	// KindNotFound covers a command or alias lookup that found nothing.
	// It is not treated as a hard failure by callers that tolerate a
	// miss (e.g. Dispatch falling through to the unknown hook).
	KindNotFound
	// KindBadStructure covers a malformed command or completion table
	// caught at registration time.
	KindBadStructure
	// KindAllocation covers memory exhaustion while building owned
	// buffers (argument vectors, candidate lists).
	KindAllocation
	// KindIO covers read/write/seek/truncate failures on the input and
	// output endpoints or on cache files.
	KindIO
	// KindParseFailure covers input that could not be parsed, such as a
	// truncated or mis-framed cache section. The tokeniser does not fail
	// on malformed quoting: an unterminated quote runs to end of input.
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindNotFound:
		return "not found"
	case KindBadStructure:
		return "bad structure"
	case KindAllocation:
		return "allocation failure"
	case KindIO:
		return "i/o error"
	case KindParseFailure:
		return "parse failure"
	default:
		return "none"
	}
}

// Error pairs a Kind with the underlying cause. Public operations that
// can fail return one of these instead of a bare error so that callers
// can branch on Kind without string-matching.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// newError wraps err (which may be nil) with kind.
func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func errInvalid(msg string) *Error {
	return newError(KindInvalidArgument, errors.New(msg))
}

func errNotFound(msg string) *Error {
	return newError(KindNotFound, errors.New(msg))
}

func errBadStructure(msg string) *Error {
	return newError(KindBadStructure, errors.New(msg))
}

func errParse(msg string) *Error {
	return newError(KindParseFailure, errors.New(msg))
}

// KindOf reports the Kind of err if it (or something it wraps) is a
// *Error, or KindNone otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
