package validation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// NormalizeTitle trims, NFC-normalizes and case-folds a title so that
// "Conception", " conception " and "CONCEPTION" compare equal.
func NormalizeTitle(title string) string {
	// A Caser keeps state between calls, so each call builds its own.
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(title)))
}

// CheckUniqueness reports a title already used by another task of the project
// and another task occupying exactly the same period as the draft.
//
// The period rule ignores assignees: two tasks with identical start and due
// dates are rejected even when nobody is shared.
func CheckUniqueness(draft domain.Task, project *domain.Project) FieldErrors {
	errs := FieldErrors{}
	others := project.OtherTasks(draft.ID)

	if title := NormalizeTitle(draft.Title); title != "" {
		for _, t := range others {
			if NormalizeTitle(t.Title) == title {
				errs.Add(constants.FieldTitle, msgTitleTaken)
				break
			}
		}
	}

	if draft.HasDates() {
		start, due := draft.StartDate.String(), draft.DueDate.String()
		for _, t := range others {
			if !t.HasDates() {
				continue
			}
			if t.StartDate.String() == start && t.DueDate.String() == due {
				msg := msgSamePeriod(t.Title)
				errs.Add(constants.FieldStartDate, msg)
				errs.Add(constants.FieldDueDate, msg)
				break
			}
		}
	}

	return errs
}
