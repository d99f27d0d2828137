package storage

import "strings"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound         ErrKind = iota + 1 // input path does not exist
	ErrKindNotAFile                            // input path is a directory or special file
	ErrKindNotEditable                         // write/commit on a session without edit rights
	ErrKindUnsupportedRange                    // stepped range access
	ErrKindOutOfRange                          // offsets outside [0, Len()]
	ErrKindInvalidValue                        // e.g. empty fill pattern for a non-empty span
	ErrKindClosed                              // operation on a closed session
	ErrKindIO                                  // underlying read/write/copy failure
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "file does not exist"
	case ErrKindNotAFile:
		return "not a regular file"
	case ErrKindNotEditable:
		return "session is not editable"
	case ErrKindUnsupportedRange:
		return "stepped ranges are not supported"
	case ErrKindOutOfRange:
		return "offset out of range"
	case ErrKindInvalidValue:
		return "invalid value"
	case ErrKindClosed:
		return "session is closed"
	case ErrKindIO:
		return "i/o failure"
	default:
		return "unknown error"
	}
}

// Error is a typed storage error. Op and Path give context; Err is the
// optional underlying cause.
type Error struct {
	Kind ErrKind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("storage: ")
	switch {
	case e.Op != "" && e.Path != "":
		b.WriteString(e.Op + " " + e.Path + ": ")
	case e.Op != "":
		b.WriteString(e.Op + ": ")
	case e.Path != "":
		b.WriteString(e.Path + ": ")
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind when target is a bare sentinel,
// so errors.Is(err, ErrNotEditable) works on contextual errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Op != "" || t.Path != "" || t.Err != nil {
		return e == t
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrNotFound         = &Error{Kind: ErrKindNotFound}
	ErrNotAFile         = &Error{Kind: ErrKindNotAFile}
	ErrNotEditable      = &Error{Kind: ErrKindNotEditable}
	ErrUnsupportedRange = &Error{Kind: ErrKindUnsupportedRange}
	ErrOutOfRange       = &Error{Kind: ErrKindOutOfRange}
	ErrInvalidValue     = &Error{Kind: ErrKindInvalidValue}
	ErrClosed           = &Error{Kind: ErrKindClosed}
	ErrIO               = &Error{Kind: ErrKindIO}
)

func newError(kind ErrKind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}
