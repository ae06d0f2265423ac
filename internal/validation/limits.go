package validation

import "github.com/mrz1836/classboard/internal/constants"

// Limits holds the hand-tunable numbers behind the rules.
type Limits struct {
	// MaxTasksPerDay caps the tasks of a project starting on the same date.
	MaxTasksPerDay int `json:"max_tasks_per_day"`

	// MaxDurationDays caps dateEcheance - dateDebut.
	MaxDurationDays int `json:"max_task_duration_days"`

	// MinAssignees and MaxAssignees bound the number of responsible parties.
	MinAssignees int `json:"min_assignees"`
	MaxAssignees int `json:"max_assignees"`
}

// DefaultLimits returns the limits used by the school: 3 tasks per day,
// 90 days per task and 1 to 5 responsible parties.
func DefaultLimits() Limits {
	return Limits{
		MaxTasksPerDay:  constants.MaxTasksPerDay,
		MaxDurationDays: constants.MaxTaskDurationDays,
		MinAssignees:    constants.MinAssignees,
		MaxAssignees:    constants.MaxAssignees,
	}
}

// withDefaults replaces non-positive values with the defaults.
func (l Limits) withDefaults() Limits {
	d := DefaultLimits()
	if l.MaxTasksPerDay <= 0 {
		l.MaxTasksPerDay = d.MaxTasksPerDay
	}
	if l.MaxDurationDays <= 0 {
		l.MaxDurationDays = d.MaxDurationDays
	}
	if l.MinAssignees <= 0 {
		l.MinAssignees = d.MinAssignees
	}
	if l.MaxAssignees <= 0 {
		l.MaxAssignees = d.MaxAssignees
	}
	return l
}
