package validation

import (
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// CheckDailyQuota rejects the draft when limit other tasks of the project
// already start on the draft's start date. A non-positive limit falls back to
// the default.
func CheckDailyQuota(draft domain.Task, project *domain.Project, limit int) FieldErrors {
	errs := FieldErrors{}
	if draft.StartDate.IsZero() {
		return errs
	}
	if limit <= 0 {
		limit = constants.MaxTasksPerDay
	}

	count := 0
	for _, t := range project.OtherTasks(draft.ID) {
		if t.StartDate.Equal(draft.StartDate) && !t.StartDate.IsZero() {
			count++
		}
	}
	if count >= limit {
		errs.Add(constants.FieldStartDate, msgDailyQuota(limit, draft.StartDate))
	}
	return errs
}
