package selection

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidRecord   = errors.New("invalid record")
	ErrNotFound        = errors.New("not found")
)

// Error is returned by every selection operation.
type Error struct {
	Kind   error
	Policy Policy
	Index  int // record index, -1 when the error is not about a record
	Msg    string
}

func (e *Error) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s selection: %s: record %d: %s", e.Policy, e.Kind, e.Index, e.Msg)
	}
	return fmt.Sprintf("%s selection: %s: %s", e.Policy, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func invalidArgument(p Policy, format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Policy: p, Index: -1, Msg: fmt.Sprintf(format, args...)}
}

func invalidRecord(p Policy, idx int, format string, args ...any) error {
	return &Error{Kind: ErrInvalidRecord, Policy: p, Index: idx, Msg: fmt.Sprintf(format, args...)}
}

func notFound(p Policy, format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Policy: p, Index: -1, Msg: fmt.Sprintf(format, args...)}
}

// ErrorKind returns a short label for err, suitable for metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInvalidRecord):
		return "invalid_record"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}
