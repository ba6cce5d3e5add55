package construct

import "fmt"

// PathError wraps any construct error with the breadcrumb of the
// composite chain that produced it. Composites attach a PathError only
// once; an error that already carries a path propagates unchanged.
type PathError struct {
	Path Path
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// withPath attaches path to err unless err already carries one.
func withPath(err error, path Path) error {
	if err == nil {
		return nil
	}
	var pe *PathError
	if as(err, &pe) {
		return err
	}
	return &PathError{Path: path, Err: err}
}

// as is a tiny errors.As wrapper kept local so error files don't all
// need to import "errors" for this one call.
func as(err error, target **PathError) bool {
	for err != nil {
		if pe, ok := err.(*PathError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// ErrStream covers short reads, write failures and out-of-range seeks.
type ErrStream struct{ Msg string }

func (e ErrStream) Error() string { return "stream error: " + e.Msg }

// ErrFormat covers values out of an encoding's representable range, or
// a mismatch against an expected constant.
type ErrFormat struct{ Msg string }

func (e ErrFormat) Error() string { return "format error: " + e.Msg }

// ErrString covers encoding/decoding failures and unsupported encodings.
type ErrString struct{ Msg string }

func (e ErrString) Error() string { return "string error: " + e.Msg }

// ErrRange covers wrong element counts and exhausted RepeatUntil loops.
type ErrRange struct{ Msg string }

func (e ErrRange) Error() string { return "range error: " + e.Msg }

// ErrMapping covers unknown symbols passed to Enum/FlagsEnum on build.
type ErrMapping struct{ Msg string }

func (e ErrMapping) Error() string { return "mapping error: " + e.Msg }

// ErrSelect is raised when every alternative in a Select fails.
type ErrSelect struct{ Msg string }

func (e ErrSelect) Error() string { return "select error: " + e.Msg }

// ErrTerminator is raised when a required terminator is missing.
type ErrTerminator struct{ Msg string }

func (e ErrTerminator) Error() string { return "terminator error: " + e.Msg }

// ErrPadding is raised on a pattern mismatch while parsing padding.
type ErrPadding struct{ Msg string }

func (e ErrPadding) Error() string { return "padding error: " + e.Msg }

// ErrSizeUnknown is raised by SizeOf when the size genuinely depends on
// context that was not supplied.
type ErrSizeUnknown struct{ Msg string }

func (e ErrSizeUnknown) Error() string { return "size-unknown error: " + e.Msg }

// ErrContext is raised when an expression references a missing key.
type ErrContext struct{ Msg string }

func (e ErrContext) Error() string { return "context error: " + e.Msg }

// ErrAlignment is raised when a Bitwise region is not a byte multiple.
type ErrAlignment struct{ Msg string }

func (e ErrAlignment) Error() string { return "alignment error: " + e.Msg }

// ErrValidation is raised by Check when its predicate is false.
type ErrValidation struct{ Msg string }

func (e ErrValidation) Error() string { return "validation error: " + e.Msg }

// cancelParsing is the distinguished control signal described in
// spec.md 4.7/9: it is caught only by range consumers (GreedyRange,
// RepeatUntil) and is an error everywhere else.
type cancelParsing struct{}

func (cancelParsing) Error() string { return "parsing cancelled" }

// CancelParsing is the sentinel a GreedyRange/RepeatUntil processing
// hook returns to signal early, non-error termination.
var CancelParsing error = cancelParsing{}

func isCancelParsing(err error) bool {
	_, ok := err.(cancelParsing)
	return ok
}
