package validation

import (
	"github.com/mrz1836/classboard/internal/domain"
)

// FindOverlaps lists every member of the draft who is also assigned, as a
// member, to another task whose closed date interval intersects the draft's.
//
// Conflicts come out in project task order, then in the conflicting task's
// assignee order. Names are resolved from the project's groups; a member no
// group knows keeps empty names. A draft without member assignees or without
// both dates has no conflicts.
func FindOverlaps(draft domain.Task, project *domain.Project) []domain.Conflict {
	conflicts := []domain.Conflict{}
	if !draft.HasDates() {
		return conflicts
	}

	users := make(map[string]struct{})
	for _, a := range draft.MemberAssignees() {
		users[a.UserID] = struct{}{}
	}
	if len(users) == 0 {
		return conflicts
	}

	for _, t := range project.OtherTasks(draft.ID) {
		if !t.HasDates() || len(t.Assignees) == 0 {
			continue
		}
		if !intervalsOverlap(draft.StartDate, draft.DueDate, t.StartDate, t.DueDate) {
			continue
		}
		for _, a := range t.MemberAssignees() {
			if _, shared := users[a.UserID]; !shared {
				continue
			}
			c := domain.Conflict{
				UserID:    a.UserID,
				TaskID:    t.ID,
				TaskTitle: t.Title,
			}
			if m, ok := project.Member(a.UserID); ok {
				c.LastName = m.LastName
				c.FirstName = m.FirstName
			}
			conflicts = append(conflicts, c)
		}
	}
	return conflicts
}

// intervalsOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share a day.
func intervalsOverlap(aStart, aEnd, bStart, bEnd domain.Date) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}
