// Package errors provides centralized error handling for classboard.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// Validation findings (a duplicate title, a quota overflow) are NOT errors: they
// are returned as values by the validation engine. The sentinels below cover
// malformed input, refused state changes and storage failures.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
var (
	// ErrMalformedInput indicates the engine was handed data it cannot reason
	// about (nil project, missing project dates, unknown mode). These are
	// programmer errors rather than user-facing findings.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidTransition indicates a status change that is not in the
	// transition table.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrTransitionBlocked indicates a status change refused by a hard guard.
	ErrTransitionBlocked = errors.New("state transition blocked")

	// ErrConfirmationRequired indicates advisory warnings were raised and the
	// caller did not confirm them.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrValidationBlocked indicates the validator refused a draft task.
	ErrValidationBlocked = errors.New("task validation blocked")

	// ErrGroupFull indicates a member cannot be added because the group is at capacity.
	ErrGroupFull = errors.New("group is at capacity")

	// ErrMemberExists indicates the member already belongs to the group.
	ErrMemberExists = errors.New("member already in group")

	// ErrMemberNotFound indicates the member does not belong to the group.
	ErrMemberNotFound = errors.New("member not found")

	// ErrGroupNotFound indicates the requested group does not exist in the project.
	ErrGroupNotFound = errors.New("group not found")

	// ErrProjectNotFound indicates the requested project snapshot does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrProjectExists indicates an attempt to import a project that already exists.
	ErrProjectExists = errors.New("project already exists")

	// ErrTaskNotFound indicates the task does not exist in the project.
	ErrTaskNotFound = errors.New("task not found")

	// ErrSnapshotInvalid indicates a snapshot file failed to parse or did not
	// match the snapshot schema.
	ErrSnapshotInvalid = errors.New("invalid project snapshot")

	// ErrUnsupportedFormat indicates a snapshot file extension that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")

	// ErrLockTimeout indicates a file lock could not be acquired within the timeout period.
	ErrLockTimeout = errors.New("lock acquisition timeout")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrPathTraversal indicates an attempt to use path traversal in an identifier.
	ErrPathTraversal = errors.New("path traversal detected")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrInvalidTimezone indicates the configured timezone is unknown.
	ErrInvalidTimezone = errors.New("invalid timezone")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflictingFlags indicates that mutually exclusive flags were specified.
	ErrConflictingFlags = errors.New("conflicting flags specified")

	// ErrMenuCanceled indicates that the user canceled a prompt.
	ErrMenuCanceled = errors.New("prompt canceled by user")

	// ErrJSONErrorOutput indicates that an error has already been output as JSON.
	// Commands should silence cobra's error printing when this is returned.
	ErrJSONErrorOutput = errors.New("error output as JSON")
)

// ExitCodeError wraps an error with the process exit code the CLI should use.
type ExitCodeError struct {
	Code int
	Err  error
}

// NewExitCodeError wraps err so the CLI exits with code.
func NewExitCodeError(code int, err error) *ExitCodeError {
	return &ExitCodeError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code carried by err, if any.
func ExitCode(err error) (int, bool) {
	var e *ExitCodeError
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}
