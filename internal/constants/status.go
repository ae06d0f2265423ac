package constants

// ProjectStatus represents the state of a project in the project state machine.
// Status values are the upper-case French identifiers used by the school's
// front end, so snapshots round-trip without translation.
type ProjectStatus string

// Project status constants. The state machine is:
//
//	PLANIFIE → EN_COURS, ANNULE
//	EN_COURS → TERMINE, ANNULE
//	ANNULE   → PLANIFIE (manual reactivation)
//	TERMINE  → (terminal)
const (
	// ProjectStatusPlanned indicates the project is scheduled but not started.
	ProjectStatusPlanned ProjectStatus = "PLANIFIE"

	// ProjectStatusInProgress indicates the project is running.
	ProjectStatusInProgress ProjectStatus = "EN_COURS"

	// ProjectStatusDone indicates the project is finished.
	ProjectStatusDone ProjectStatus = "TERMINE"

	// ProjectStatusCanceled indicates the project was canceled.
	// A canceled project can be reactivated to PLANIFIE.
	ProjectStatusCanceled ProjectStatus = "ANNULE"
)

// String returns the string representation of the ProjectStatus.
func (s ProjectStatus) String() string {
	return string(s)
}

// ProjectStatuses returns every project status in display order.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{
		ProjectStatusPlanned,
		ProjectStatusInProgress,
		ProjectStatusDone,
		ProjectStatusCanceled,
	}
}

// TaskStatus represents the state of a task in the task state machine.
type TaskStatus string

// Task status constants. The cycle is:
//
//	A_FAIRE → EN_COURS → TERMINEE → A_FAIRE (reopen)
//	EN_RETARD → EN_COURS
const (
	// TaskStatusTodo indicates the task has not been started.
	TaskStatusTodo TaskStatus = "A_FAIRE"

	// TaskStatusInProgress indicates someone is working on the task.
	TaskStatusInProgress TaskStatus = "EN_COURS"

	// TaskStatusDone indicates the task is finished.
	TaskStatusDone TaskStatus = "TERMINEE"

	// TaskStatusLate indicates the due date passed before the task was finished.
	TaskStatusLate TaskStatus = "EN_RETARD"
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	return string(s)
}

// TaskStatuses returns every task status in display order.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusTodo,
		TaskStatusInProgress,
		TaskStatusDone,
		TaskStatusLate,
	}
}

// Priority is the urgency attached to a task.
type Priority string

// Priority constants.
const (
	PriorityLow    Priority = "BASSE"
	PriorityMedium Priority = "MOYENNE"
	PriorityHigh   Priority = "HAUTE"
)

// String returns the string representation of the Priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// AssigneeType discriminates the two forms of task assignee.
type AssigneeType string

// Assignee type constants.
const (
	// AssigneeGroup assigns a whole group to the task.
	AssigneeGroup AssigneeType = "groupe"

	// AssigneeMember assigns one member of a group to the task.
	AssigneeMember AssigneeType = "membre"
)

// ValidationMode tells the validator whether the draft is a new task or an
// edit of an existing one.
type ValidationMode string

// Validation mode constants.
const (
	ModeCreate ValidationMode = "create"
	ModeEdit   ValidationMode = "edit"
)

// IsValid reports whether m is a known validation mode.
func (m ValidationMode) IsValid() bool {
	return m == ModeCreate || m == ModeEdit
}
