package validation

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// TestProperty01_AcceptedDatesStayInsideBounds verifies that whenever the
// date rules accept a draft, its dates lie inside the project envelope and
// span at most the maximum duration.
func TestProperty01_AcceptedDatesStayInsideBounds(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2023-12-01")
	limits := DefaultLimits()

	rapid.Check(t, func(rt *rapid.T) {
		start := today.AddDays(rapid.IntRange(-30, 250).Draw(rt, "start_offset"))
		due := start.AddDays(rapid.IntRange(-20, 200).Draw(rt, "duration"))
		draft := domain.Task{StartDate: start, DueDate: due}

		errs := ValidateDates(draft, project, today, limits)
		if len(errs) > 0 {
			return
		}
		if start.Before(project.StartDate) || start.After(due) || due.After(project.EndDate) {
			rt.Fatalf("accepted %s..%s outside %s..%s", start, due, project.StartDate, project.EndDate)
		}
		if start.DaysUntil(due) > limits.MaxDurationDays {
			rt.Fatalf("accepted %s..%s longer than %d days", start, due, limits.MaxDurationDays)
		}
	})
}

// TestProperty01_OutsideBothBoundsNamesBoth verifies that a draft starting
// before the project and ending after it always gets the combined message,
// whatever its length.
func TestProperty01_OutsideBothBoundsNamesBoth(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2023-11-01")
	combined := msgOutsideProject(project.StartDate, project.EndDate)

	rapid.Check(t, func(rt *rapid.T) {
		start := project.StartDate.AddDays(-rapid.IntRange(1, 60).Draw(rt, "days_before"))
		due := project.EndDate.AddDays(rapid.IntRange(1, 60).Draw(rt, "days_after"))
		draft := domain.Task{StartDate: start, DueDate: due}

		errs := ValidateDates(draft, project, today, DefaultLimits())
		if errs[constants.FieldStartDate] != combined {
			rt.Fatalf("%s..%s: dateDebut = %q", start, due, errs[constants.FieldStartDate])
		}
	})
}

// TestProperty02_DuplicateTitleRejected verifies that any case or whitespace
// variant of an existing title is rejected on the title field.
func TestProperty02_DuplicateTitleRejected(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		title := rapid.StringMatching(`[A-Za-zéèàç][A-Za-zéèàç ]{0,20}`).Draw(rt, "title")
		project := testProject()
		project.Tasks = []domain.Task{testTask("t-1", title, "2024-02-01", "2024-02-14", alice)}

		variant := title
		if rapid.Bool().Draw(rt, "upper") {
			variant = strings.ToUpper(variant)
		}
		pad := strings.Repeat(" ", rapid.IntRange(0, 3).Draw(rt, "pad"))
		draft := testTask("", pad+variant+pad, "2024-03-01", "2024-03-02", alice)

		errs := CheckUniqueness(draft, project)
		if errs[constants.FieldTitle] != msgTitleTaken {
			rt.Fatalf("title %q not rejected against %q", draft.Title, title)
		}
	})
}

// TestProperty03_ExactPeriodRejectedOnBothFields verifies that copying the
// period of any other task flags both date fields, whoever is assigned.
func TestProperty03_ExactPeriodRejectedOnBothFields(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "num_tasks")
		base := domain.MustParseDate("2024-01-10")
		project := testProject()
		for i := 0; i < n; i++ {
			start := base.AddDays(rapid.IntRange(0, 100).Draw(rt, "start"))
			due := start.AddDays(rapid.IntRange(0, 30).Draw(rt, "length"))
			project.Tasks = append(project.Tasks,
				testTask(fmt.Sprintf("t-%d", i), fmt.Sprintf("Tâche %d", i), start.String(), due.String(), alice))
		}
		target := project.Tasks[rapid.IntRange(0, n-1).Draw(rt, "target")]
		assignee := rapid.SampledFrom([][2]string{alice, bob, chloe}).Draw(rt, "assignee")
		draft := testTask("", "Nouvelle", target.StartDate.String(), target.DueDate.String(), assignee)

		errs := CheckUniqueness(draft, project)
		if errs[constants.FieldStartDate] == "" || errs[constants.FieldDueDate] == "" {
			rt.Fatalf("period %s..%s not rejected: %v", draft.StartDate, draft.DueDate, errs)
		}
	})
}

// TestProperty04_OverlapMatchesIntervalIntersection verifies that a shared
// member produces a conflict exactly when the closed intervals intersect.
func TestProperty04_OverlapMatchesIntervalIntersection(t *testing.T) {
	base := domain.MustParseDate("2024-02-01")

	rapid.Check(t, func(rt *rapid.T) {
		aStart := base.AddDays(rapid.IntRange(0, 40).Draw(rt, "a_start"))
		aEnd := aStart.AddDays(rapid.IntRange(0, 20).Draw(rt, "a_len"))
		bStart := base.AddDays(rapid.IntRange(0, 40).Draw(rt, "b_start"))
		bEnd := bStart.AddDays(rapid.IntRange(0, 20).Draw(rt, "b_len"))

		project := testProject()
		project.Tasks = []domain.Task{testTask("t-1", "Existante", aStart.String(), aEnd.String(), alice, bob)}
		draft := testTask("", "Nouvelle", bStart.String(), bEnd.String(), alice)

		intersect := !bStart.After(aEnd) && !bEnd.Before(aStart)
		conflicts := FindOverlaps(draft, project)

		if intersect && len(conflicts) != 1 {
			rt.Fatalf("expected one conflict for %s..%s vs %s..%s, got %d", bStart, bEnd, aStart, aEnd, len(conflicts))
		}
		if !intersect && len(conflicts) != 0 {
			rt.Fatalf("unexpected conflict for %s..%s vs %s..%s", bStart, bEnd, aStart, aEnd)
		}
	})
}

// TestProperty05_QuotaBoundary verifies that the daily quota trips exactly
// when the limit is reached by other tasks.
func TestProperty05_QuotaBoundary(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 5).Draw(rt, "limit")
		existing := rapid.IntRange(0, 7).Draw(rt, "existing")
		project := projectWithStarts(existing, "2024-02-01")
		draft := testTask("", "Nouvelle", "2024-02-01", "2024-02-28", alice)

		errs := CheckDailyQuota(draft, project, limit)
		if (existing >= limit) != (errs[constants.FieldStartDate] != "") {
			rt.Fatalf("limit %d with %d existing: errors %v", limit, existing, errs)
		}
	})
}

// TestProperty06_BlockedIffErrorsOrUnconfirmedOverlaps verifies the blocked
// flag against the rest of the result.
func TestProperty06_BlockedIffErrorsOrUnconfirmedOverlaps(t *testing.T) {
	v := newTestValidator()
	base := domain.MustParseDate("2024-01-01")

	rapid.Check(t, func(rt *rapid.T) {
		project := testProject()
		n := rapid.IntRange(0, 4).Draw(rt, "num_tasks")
		for i := 0; i < n; i++ {
			start := base.AddDays(rapid.IntRange(-5, 160).Draw(rt, "start"))
			due := start.AddDays(rapid.IntRange(-2, 100).Draw(rt, "length"))
			who := rapid.SampledFrom([][2]string{alice, bob, chloe}).Draw(rt, "who")
			project.Tasks = append(project.Tasks,
				testTask(fmt.Sprintf("t-%d", i), fmt.Sprintf("Tâche %d", i), start.String(), due.String(), who))
		}

		start := base.AddDays(rapid.IntRange(-5, 160).Draw(rt, "draft_start"))
		due := start.AddDays(rapid.IntRange(-2, 100).Draw(rt, "draft_length"))
		draft := testTask("", rapid.SampledFrom([]string{"Tâche 0", "Nouvelle", ""}).Draw(rt, "title"),
			start.String(), due.String(), alice, chloe)
		confirmed := rapid.Bool().Draw(rt, "confirmed")

		result, err := v.Validate(draft, project, constants.ModeCreate, Options{ConfirmedOverlaps: confirmed})
		if err != nil {
			rt.Fatalf("Validate failed: %v", err)
		}
		want := len(result.Errors) > 0 || (len(result.Conflicts) > 0 && !confirmed)
		if result.Blocked != want {
			rt.Fatalf("blocked = %v, want %v (errors %v, conflicts %d)", result.Blocked, want, result.Errors, len(result.Conflicts))
		}
		if (len(result.Conflicts) > 0) != (result.Warnings[constants.FieldOverlap] != "") {
			rt.Fatalf("overlap warning out of sync with %d conflicts", len(result.Conflicts))
		}
	})
}
