package validation

import (
	"time"

	"github.com/mrz1836/classboard/internal/clock"
	"github.com/mrz1836/classboard/internal/domain"
)

// testProject returns a project running from 2024-01-01 to 2024-06-01 with
// two groups and no tasks.
func testProject() *domain.Project {
	return &domain.Project{
		ID:        "p-1",
		Name:      "Application de gestion",
		Status:    domain.ProjectStatusInProgress,
		StartDate: domain.MustParseDate("2024-01-01"),
		EndDate:   domain.MustParseDate("2024-06-01"),
		Groups: []domain.Group{
			{
				ID:   "g1",
				Name: "Groupe A",
				Members: []domain.Member{
					{UserID: "u1", LastName: "Martin", FirstName: "Alice"},
					{UserID: "u2", LastName: "Durand", FirstName: "Bob"},
				},
			},
			{
				ID:   "g2",
				Name: "Groupe B",
				Members: []domain.Member{
					{UserID: "u3", LastName: "Petit", FirstName: "Chloé"},
				},
			},
		},
	}
}

// testTask builds a task with member assignees given as userID:groupID pairs.
func testTask(id, title, start, due string, members ...[2]string) domain.Task {
	t := domain.Task{
		ID:        id,
		Title:     title,
		Status:    domain.TaskStatusTodo,
		StartDate: domain.MustParseDate(start),
		DueDate:   domain.MustParseDate(due),
	}
	for _, m := range members {
		t.Assignees = append(t.Assignees, domain.MemberAssignee(m[0], m[1]))
	}
	return t
}

var (
	alice = [2]string{"u1", "g1"} //nolint:gochecknoglobals // test fixture
	bob   = [2]string{"u2", "g1"} //nolint:gochecknoglobals // test fixture
	chloe = [2]string{"u3", "g2"} //nolint:gochecknoglobals // test fixture
)

// beforeProject is a clock reading one month before the test project starts.
func beforeProject() clock.Clock {
	return clock.Fixed(time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC))
}

func newTestValidator(opts ...Option) *Validator {
	return NewValidator(append([]Option{WithClock(beforeProject()), WithLocation(time.UTC)}, opts...)...)
}
