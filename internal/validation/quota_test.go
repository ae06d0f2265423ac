package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/classboard/internal/domain"
)

func projectWithStarts(n int, start string) *domain.Project {
	project := testProject()
	for i := 0; i < n; i++ {
		due := domain.MustParseDate(start).AddDays(i + 1).String()
		project.Tasks = append(project.Tasks, testTask(fmt.Sprintf("t-%d", i+1), fmt.Sprintf("Tâche %d", i+1), start, due, alice))
	}
	return project
}

func TestCheckDailyQuota(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		wantErr  bool
	}{
		{"empty day", 0, false},
		{"two already", 2, false},
		{"three already", 3, true},
		{"four already", 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := projectWithStarts(tt.existing, "2024-02-01")
			draft := testTask("", "Nouvelle", "2024-02-01", "2024-02-20", alice)

			errs := CheckDailyQuota(draft, project, 3)
			if tt.wantErr {
				assert.Equal(t, msgDailyQuota(3, draft.StartDate), errs["dateDebut"])
				assert.Contains(t, errs["dateDebut"], "(3)")
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestCheckDailyQuota_EditExcludesSelf(t *testing.T) {
	project := projectWithStarts(3, "2024-02-01")
	draft := project.Tasks[0]

	assert.Empty(t, CheckDailyQuota(draft, project, 3))
}

func TestCheckDailyQuota_OtherDaysIgnored(t *testing.T) {
	project := projectWithStarts(3, "2024-02-02")
	draft := testTask("", "Nouvelle", "2024-02-01", "2024-02-20", alice)

	assert.Empty(t, CheckDailyQuota(draft, project, 3))
	assert.Empty(t, CheckDailyQuota(testTask("", "Sans date", "", "", alice), project, 3))
}

func TestCheckDailyQuota_DefaultLimit(t *testing.T) {
	project := projectWithStarts(3, "2024-02-01")
	draft := testTask("", "Nouvelle", "2024-02-01", "2024-02-20", alice)

	assert.Contains(t, CheckDailyQuota(draft, project, 0), "dateDebut")
	assert.Empty(t, CheckDailyQuota(draft, project, 4))
}
