package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries maps sentinel errors to user-facing messages.
// A slice (not a map) keeps a stable lookup order for wrapped errors.
//
//nolint:gochecknoglobals // Pre-built mapping
var errorInfoEntries = []errorEntry{
	// ===================
	// Validation
	// ===================
	{
		err: ErrValidationBlocked,
		info: ErrorInfo{
			Message: "The task was rejected by the validation rules.",
			Action:  "Fix the fields listed above and submit again.",
		},
	},
	{
		err: ErrConfirmationRequired,
		info: ErrorInfo{
			Message: "Warnings were raised and need an explicit confirmation.",
			Action:  "Review the warnings, then re-run with --yes to continue anyway.",
		},
	},
	{
		err: ErrMalformedInput,
		info: ErrorInfo{
			Message: "The project snapshot or draft is incomplete.",
			Action:  "Check that the project has start and end dates and that the draft has an id in edit mode.",
		},
	},

	// ===================
	// State machines
	// ===================
	{
		err: ErrInvalidTransition,
		info: ErrorInfo{
			Message: "This status change is not allowed.",
			Action:  "Run 'classboard rules' to see the allowed status changes.",
		},
	},
	{
		err: ErrTransitionBlocked,
		info: ErrorInfo{
			Message: "This status change is blocked by the project or task dates.",
			Action:  "Adjust the dates or assignees before changing the status.",
		},
	},

	// ===================
	// Groups
	// ===================
	{
		err: ErrGroupFull,
		info: ErrorInfo{
			Message: "The group has reached its capacity.",
			Action:  "Add the member to another group or raise the group capacity.",
		},
	},
	{
		err: ErrMemberExists,
		info: ErrorInfo{
			Message: "This member already belongs to the group.",
		},
	},
	{
		err: ErrGroupNotFound,
		info: ErrorInfo{
			Message: "The group does not exist in this project.",
			Action:  "Run 'classboard project show <id>' to list the groups.",
		},
	},

	// ===================
	// Storage
	// ===================
	{
		err: ErrProjectNotFound,
		info: ErrorInfo{
			Message: "The project was not found in the local store.",
			Action:  "Import it first with 'classboard project import <file>'.",
		},
	},
	{
		err: ErrProjectExists,
		info: ErrorInfo{
			Message: "A project with this id is already stored.",
			Action:  "Use --replace to overwrite the stored snapshot.",
		},
	},
	{
		err: ErrTaskNotFound,
		info: ErrorInfo{
			Message: "The task does not exist in this project.",
		},
	},
	{
		err: ErrSnapshotInvalid,
		info: ErrorInfo{
			Message: "The project snapshot file is invalid.",
			Action:  "Fix the reported fields in the snapshot file.",
		},
	},
	{
		err: ErrUnsupportedFormat,
		info: ErrorInfo{
			Message: "Snapshot files must be .json, .yaml or .yml.",
		},
	},
	{
		err: ErrLockTimeout,
		info: ErrorInfo{
			Message: "Another classboard process is using this project.",
			Action:  "Wait for it to finish and try again.",
		},
	},

	// ===================
	// Configuration & CLI
	// ===================
	{
		err: ErrValueOutOfRange,
		info: ErrorInfo{
			Message: "A configuration value is out of range.",
			Action:  "Check ~/.classboard/config.yaml and .classboard/config.yaml.",
		},
	},
	{
		err: ErrInvalidTimezone,
		info: ErrorInfo{
			Message: "The configured timezone is unknown.",
			Action:  "Use an IANA name such as Europe/Paris.",
		},
	},
	{
		err: ErrInvalidOutputFormat,
		info: ErrorInfo{
			Message: "Invalid output format.",
			Action:  "Use --output text or --output json.",
		},
	},
	{
		err: ErrConflictingFlags,
		info: ErrorInfo{
			Message: "Conflicting flags were specified.",
			Action:  "Check the command help for valid flag combinations.",
		},
	},
}

// errorInfoMap provides O(1) lookup for direct sentinel error matches.
//
//nolint:gochecknoglobals // Built once from errorInfoEntries
var errorInfoMap = buildErrorInfoMap()

func buildErrorInfoMap() map[error]ErrorInfo {
	m := make(map[error]ErrorInfo, len(errorInfoEntries))
	for _, entry := range errorInfoEntries {
		m[entry.err] = entry.info
	}
	return m
}

// getErrorInfo looks up the ErrorInfo for a given error, falling back to
// errors.Is() traversal for wrapped errors.
func getErrorInfo(err error) ErrorInfo {
	if info, ok := errorInfoMap[err]; ok {
		return info
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info
		}
	}
	return ErrorInfo{Message: err.Error()}
}

// UserMessage returns a user-friendly message for common errors.
// For unrecognized errors, it returns the error's original message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return getErrorInfo(err).Message
}

// Actionable returns a user-friendly error message along with a suggested
// action. The action is empty when there is nothing the user can do.
func Actionable(err error) (message, action string) {
	if err == nil {
		return "", ""
	}
	info := getErrorInfo(err)
	return info.Message, info.Action
}
