package domain

import "github.com/mrz1836/classboard/internal/constants"

// Re-export the status types from constants so consumers can import domain
// types and status types together.
type (
	// ProjectStatus represents the state of a project.
	ProjectStatus = constants.ProjectStatus

	// TaskStatus represents the state of a task.
	TaskStatus = constants.TaskStatus

	// Priority is the urgency of a task.
	Priority = constants.Priority

	// AssigneeType discriminates group and member assignees.
	AssigneeType = constants.AssigneeType
)

// Re-export status constants for convenience.
const (
	ProjectStatusPlanned    = constants.ProjectStatusPlanned
	ProjectStatusInProgress = constants.ProjectStatusInProgress
	ProjectStatusDone       = constants.ProjectStatusDone
	ProjectStatusCanceled   = constants.ProjectStatusCanceled

	TaskStatusTodo       = constants.TaskStatusTodo
	TaskStatusInProgress = constants.TaskStatusInProgress
	TaskStatusDone       = constants.TaskStatusDone
	TaskStatusLate       = constants.TaskStatusLate

	AssigneeGroup  = constants.AssigneeGroup
	AssigneeMember = constants.AssigneeMember
)
