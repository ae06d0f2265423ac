// Package task implements the task status state machine of classboard.
//
// A task cycles A_FAIRE → EN_COURS → TERMINEE → A_FAIRE. EN_RETARD is never
// chosen by a user: RefreshOverdue moves late tasks into it, and the only way
// out is restarting the task. Guards on top of the table block transitions
// that the table allows but the task's dates or assignees do not.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/tui, internal/project
package task

import (
	"fmt"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// ValidTransitions defines the user-driven transitions of a task.
// Format: from_status -> []to_statuses
//
//	A_FAIRE   → EN_COURS
//	EN_COURS  → TERMINEE
//	TERMINEE  → A_FAIRE
//	EN_RETARD → EN_COURS
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.TaskStatus][]constants.TaskStatus{
	constants.TaskStatusTodo:       {constants.TaskStatusInProgress},
	constants.TaskStatusInProgress: {constants.TaskStatusDone},
	constants.TaskStatusDone:       {constants.TaskStatusTodo},
	constants.TaskStatusLate:       {constants.TaskStatusInProgress},
}

// Guard messages shown to the user when a transition is refused.
const (
	msgFinishNotStarted   = "Impossible de terminer une tâche qui n'a pas été commencée."
	msgFinishUnassigned   = "Impossible de terminer une tâche sans responsable."
	msgStartWrongStatus   = "Seule une tâche à faire ou en retard peut être démarrée."
	msgStartBeforeDate    = "Impossible de démarrer la tâche avant sa date de début (%s)."
	msgStartAfterDeadline = "Impossible de démarrer la tâche après sa date d'échéance (%s)."
)

// GuardError reports a transition refused by a business guard. Its message
// is meant for the user; it matches ErrTransitionBlocked with errors.Is.
type GuardError struct {
	From   constants.TaskStatus
	To     constants.TaskStatus
	Reason string
}

func (e *GuardError) Error() string {
	return e.Reason
}

// Unwrap returns ErrTransitionBlocked.
func (e *GuardError) Unwrap() error {
	return cberrors.ErrTransitionBlocked
}

// IsValidTransition checks if the table allows moving from one status to
// another. The same status is not a transition.
func IsValidTransition(from, to constants.TaskStatus) bool {
	if from == to {
		return false
	}
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// GetValidTargetStatuses returns the statuses reachable from the given one.
func GetValidTargetStatuses(from constants.TaskStatus) []constants.TaskStatus {
	targets, exists := ValidTransitions[from]
	if !exists {
		return nil
	}
	result := make([]constants.TaskStatus, len(targets))
	copy(result, targets)
	return result
}

// NextStatus returns the status a "next" click moves the task to.
func NextStatus(current constants.TaskStatus) (constants.TaskStatus, bool) {
	targets := ValidTransitions[current]
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

// HandleStatusChange returns a copy of t moved to status to, or an error.
//
// Guard refusals are *GuardError values. Edges missing from ValidTransitions
// wrap ErrInvalidTransition. Asking for the current status is a no-op.
// Finishing a task with no recorded progress sets it to 100.
func HandleStatusChange(t domain.Task, to constants.TaskStatus, today domain.Date) (domain.Task, error) {
	from := t.Status
	if from == "" {
		from = constants.TaskStatusTodo
	}
	if from == to {
		return t.Clone(), nil
	}

	if err := checkGuards(t, from, to, today); err != nil {
		return t, err
	}
	if !IsValidTransition(from, to) {
		return t, fmt.Errorf("%w: cannot transition from %s to %s", cberrors.ErrInvalidTransition, from, to)
	}

	updated := t.Clone()
	updated.Status = to
	if to == constants.TaskStatusDone && updated.Progress == nil {
		done := constants.MaxProgress
		updated.Progress = &done
	}
	return updated, nil
}

// Next moves t along the cycle with the same guards as HandleStatusChange.
func Next(t domain.Task, today domain.Date) (domain.Task, error) {
	from := t.Status
	if from == "" {
		from = constants.TaskStatusTodo
	}
	to, ok := NextStatus(from)
	if !ok {
		return t, fmt.Errorf("%w: no transition from %s", cberrors.ErrInvalidTransition, from)
	}
	return HandleStatusChange(t, to, today)
}

func checkGuards(t domain.Task, from, to constants.TaskStatus, today domain.Date) error {
	refuse := func(reason string) error {
		return &GuardError{From: from, To: to, Reason: reason}
	}

	switch to {
	case constants.TaskStatusDone:
		if from == constants.TaskStatusTodo {
			return refuse(msgFinishNotStarted)
		}
		if from == constants.TaskStatusInProgress && len(t.Assignees) == 0 {
			return refuse(msgFinishUnassigned)
		}
	case constants.TaskStatusInProgress:
		if from != constants.TaskStatusTodo && from != constants.TaskStatusLate {
			return refuse(msgStartWrongStatus)
		}
		if !t.StartDate.IsZero() && today.Before(t.StartDate) {
			return refuse(fmt.Sprintf(msgStartBeforeDate, t.StartDate))
		}
		if !t.DueDate.IsZero() && today.After(t.DueDate) {
			return refuse(fmt.Sprintf(msgStartAfterDeadline, t.DueDate))
		}
	}
	return nil
}
