package validation

import (
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// ValidateDates checks the draft's dates against today and the project's
// envelope. Rules run in order and stop at the first failure for each field.
//
// When the start is before the project start and the due date is after the
// project end, a single message naming both project bounds is reported on
// dateDebut instead of two separate envelope messages. Other dateEcheance
// failures, such as the duration limit, are still reported.
func ValidateDates(draft domain.Task, project *domain.Project, today domain.Date, limits Limits) FieldErrors {
	limits = limits.withDefaults()
	errs := FieldErrors{}

	start, due := draft.StartDate, draft.DueDate
	startBeforeProject := false

	switch {
	case start.IsZero():
		errs.Add(constants.FieldStartDate, msgStartRequired)
	case start.Before(today):
		errs.Add(constants.FieldStartDate, msgStartInPast)
	case start.Before(project.StartDate):
		startBeforeProject = true
		errs.Add(constants.FieldStartDate, msgStartBeforeProject(start, project.StartDate))
	case start.After(project.EndDate):
		errs.Add(constants.FieldStartDate, msgStartAfterProject(start, project.EndDate))
	}

	switch {
	case due.IsZero():
		errs.Add(constants.FieldDueDate, msgDueRequired)
	case due.Before(today):
		errs.Add(constants.FieldDueDate, msgDueInPast)
	case !start.IsZero() && due.Before(start):
		errs.Add(constants.FieldDueDate, msgDueBeforeStart)
	case !start.IsZero() && start.DaysUntil(due) > limits.MaxDurationDays:
		errs.Add(constants.FieldDueDate, msgDueTooFar(limits.MaxDurationDays))
	case due.After(project.EndDate) && !startBeforeProject:
		errs.Add(constants.FieldDueDate, msgDueAfterProject(due, project.EndDate))
	}

	if startBeforeProject && due.After(project.EndDate) {
		errs[constants.FieldStartDate] = msgOutsideProject(project.StartDate, project.EndDate)
	}

	return errs
}
