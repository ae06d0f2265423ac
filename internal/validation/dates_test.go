package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/classboard/internal/domain"
)

func TestValidateDates(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2024-01-15")

	tests := []struct {
		name      string
		start     string
		due       string
		wantStart string
		wantDue   string
	}{
		{name: "valid range", start: "2024-02-01", due: "2024-02-14"},
		{name: "start today, due same day", start: "2024-01-15", due: "2024-01-15"},
		{name: "due on project end", start: "2024-05-01", due: "2024-06-01"},
		{name: "exactly max duration", start: "2024-02-01", due: "2024-05-01"},
		{name: "missing start", due: "2024-02-14", wantStart: msgStartRequired},
		{name: "missing due", start: "2024-02-01", wantDue: msgDueRequired},
		{name: "missing both", wantStart: msgStartRequired, wantDue: msgDueRequired},
		{name: "start in past", start: "2024-01-14", due: "2024-02-14", wantStart: msgStartInPast},
		{name: "due in past", start: "2024-02-01", due: "2024-01-10", wantDue: msgDueInPast},
		{name: "due before start", start: "2024-02-10", due: "2024-02-01", wantDue: msgDueBeforeStart},
		{name: "one day over max duration", start: "2024-02-01", due: "2024-05-02", wantDue: msgDueTooFar(90)},
		{
			name: "start after project end", start: "2024-06-02", due: "2024-06-03",
			wantStart: msgStartAfterProject(domain.MustParseDate("2024-06-02"), project.EndDate),
			wantDue:   msgDueAfterProject(domain.MustParseDate("2024-06-03"), project.EndDate),
		},
		{
			name: "due after project end", start: "2024-05-01", due: "2024-06-02",
			wantDue: msgDueAfterProject(domain.MustParseDate("2024-06-02"), project.EndDate),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := domain.Task{StartDate: domain.MustParseDate(tt.start), DueDate: domain.MustParseDate(tt.due)}
			errs := ValidateDates(draft, project, today, DefaultLimits())

			assert.Equal(t, tt.wantStart, errs["dateDebut"])
			assert.Equal(t, tt.wantDue, errs["dateEcheance"])
		})
	}
}

func TestValidateDates_StartBeforeProject(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2023-12-01")
	draft := domain.Task{
		StartDate: domain.MustParseDate("2023-12-31"),
		DueDate:   domain.MustParseDate("2024-01-10"),
	}

	errs := ValidateDates(draft, project, today, DefaultLimits())

	assert.Contains(t, errs["dateDebut"], "avant le début du projet")
	assert.NotContains(t, errs, "dateEcheance")
}

func TestValidateDates_OutsideBothBounds(t *testing.T) {
	project := testProject()
	project.EndDate = domain.MustParseDate("2024-02-01")
	today := domain.MustParseDate("2023-12-01")
	draft := domain.Task{
		StartDate: domain.MustParseDate("2023-12-31"),
		DueDate:   domain.MustParseDate("2024-02-02"),
	}

	errs := ValidateDates(draft, project, today, DefaultLimits())

	assert.Equal(t, msgOutsideProject(project.StartDate, project.EndDate), errs["dateDebut"])
	assert.Contains(t, errs["dateDebut"], "2024-01-01")
	assert.Contains(t, errs["dateDebut"], "2024-02-01")
	assert.NotContains(t, errs, "dateEcheance")
}

func TestValidateDates_OutsideBothBoundsOfLongProject(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2023-12-01")
	draft := domain.Task{
		StartDate: domain.MustParseDate("2023-12-15"),
		DueDate:   domain.MustParseDate("2024-06-15"),
	}

	errs := ValidateDates(draft, project, today, DefaultLimits())

	assert.Equal(t, msgOutsideProject(project.StartDate, project.EndDate), errs["dateDebut"])
	assert.Equal(t, msgDueTooFar(90), errs["dateEcheance"])
}

func TestValidateDates_CustomDuration(t *testing.T) {
	project := testProject()
	today := domain.MustParseDate("2024-01-15")
	draft := domain.Task{
		StartDate: domain.MustParseDate("2024-02-01"),
		DueDate:   domain.MustParseDate("2024-02-09"),
	}

	errs := ValidateDates(draft, project, today, Limits{MaxDurationDays: 7})

	assert.Equal(t, msgDueTooFar(7), errs["dateEcheance"])
}
