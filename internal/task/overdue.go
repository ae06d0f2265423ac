package task

import (
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// IsOverdue reports whether t is unfinished and its due date has passed.
func IsOverdue(t domain.Task, today domain.Date) bool {
	if t.Status == constants.TaskStatusDone || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(today)
}

// RefreshOverdue returns a copy of tasks where every overdue task not
// already late is moved to EN_RETARD, along with the ids of the moved tasks.
func RefreshOverdue(tasks []domain.Task, today domain.Date) ([]domain.Task, []string) {
	out := make([]domain.Task, len(tasks))
	var moved []string
	for i, t := range tasks {
		out[i] = t.Clone()
		if t.Status == constants.TaskStatusLate || !IsOverdue(t, today) {
			continue
		}
		out[i].Status = constants.TaskStatusLate
		moved = append(moved, t.ID)
	}
	return out, moved
}
