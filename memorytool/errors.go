package memorytool

import "fmt"

// PathError reports an invalid or sandbox-escaping memory path: a missing
// /memories prefix, a path that resolves outside the memory root, or an
// attempt to delete the root itself. It is always raised before any
// filesystem operation is attempted.
type PathError struct {
	// Path is the offending virtual path as supplied by the caller.
	Path string
	// Reason describes why the path was rejected.
	Reason string
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Path)
}

// OperationError reports a command that could not proceed against a valid
// path: a missing target, a target of the wrong type, an ambiguous replace,
// an out-of-range insert line, or a rename collision. Unexpected filesystem
// failures are wrapped here via Err rather than masked.
type OperationError struct {
	// Reason is the human-readable failure description.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *OperationError) Unwrap() error { return e.Err }
