package tui

import (
	"sort"
	"strconv"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/validation"
)

// RenderFindings prints field errors then field warnings, each sorted by
// field name, as "field: message" lines.
func RenderFindings(out Output, errs, warnings map[string]string) {
	for _, field := range sortedFields(errs) {
		out.Error(findingError{field: field, msg: errs[field]})
	}
	for _, field := range sortedFields(warnings) {
		out.Warning(field + ": " + warnings[field])
	}
}

// RenderResult prints a validation result. JSON outputs get the result
// object itself. Text outputs get the findings, the conflict table and a
// closing verdict line.
func RenderResult(out Output, r validation.Result) error {
	if IsJSON(out) {
		return out.JSON(r)
	}

	RenderFindings(out, r.Errors, r.Warnings)
	if len(r.Conflicts) > 0 {
		if err := out.Table(ConflictTable(r.Conflicts)); err != nil {
			return err
		}
	}

	switch {
	case !r.Valid():
		out.Info("La tâche est bloquée : corrigez les erreurs ci-dessus.")
	case r.NeedsConfirmation():
		out.Info("Des conflits de planning demandent une confirmation.")
	default:
		out.Success("La tâche respecte toutes les règles.")
	}
	return nil
}

// ConflictTable lists one row per overlapping assignment.
func ConflictTable(conflicts []domain.Conflict) *Table {
	t := NewTable(
		TableColumn{Name: "MEMBRE", MaxWidth: 32},
		TableColumn{Name: "ID"},
		TableColumn{Name: "TÂCHE EN CONFLIT", MaxWidth: 40},
		TableColumn{Name: "ID TÂCHE"},
	)
	for _, c := range conflicts {
		t.AddRow(c.FirstName+" "+c.LastName, c.UserID, c.TaskTitle, c.TaskID)
	}
	return t
}

// TaskTable lists the tasks of a project.
func TaskTable(tasks []domain.Task) *Table {
	t := NewTable(
		TableColumn{Name: "ID"},
		TableColumn{Name: "TITRE", MaxWidth: 40},
		TableColumn{Name: "STATUT"},
		TableColumn{Name: "DÉBUT"},
		TableColumn{Name: "ÉCHÉANCE"},
		TableColumn{Name: "AVANCEMENT", Align: AlignRight},
	)
	for _, task := range tasks {
		status := task.Status
		if status == "" {
			status = constants.TaskStatusTodo
		}
		progress := "-"
		if task.Progress != nil {
			progress = strconv.Itoa(*task.Progress) + "%"
		}
		t.AddRow(task.ID, task.Title, FormatStatus(status), task.StartDate.String(), task.DueDate.String(), progress)
	}
	return t
}

// ProjectTable lists projects with their envelope and counts.
func ProjectTable(projects []*domain.Project) *Table {
	t := NewTable(
		TableColumn{Name: "ID"},
		TableColumn{Name: "NOM", MaxWidth: 40},
		TableColumn{Name: "STATUT"},
		TableColumn{Name: "DÉBUT"},
		TableColumn{Name: "FIN"},
		TableColumn{Name: "GROUPES", Align: AlignRight},
		TableColumn{Name: "TÂCHES", Align: AlignRight},
	)
	for _, p := range projects {
		status := p.Status
		if status == "" {
			status = constants.ProjectStatusPlanned
		}
		t.AddRow(p.ID, p.Name, FormatStatus(status), p.StartDate.String(), p.EndDate.String(),
			strconv.Itoa(len(p.Groups)), strconv.Itoa(len(p.Tasks)))
	}
	return t
}

// GroupTable lists groups with their fill level.
func GroupTable(groups []domain.Group, defaultCapacity int) *Table {
	t := NewTable(
		TableColumn{Name: "ID"},
		TableColumn{Name: "NOM", MaxWidth: 32},
		TableColumn{Name: "MEMBRES", Align: AlignRight},
		TableColumn{Name: "CAPACITÉ", Align: AlignRight},
	)
	for _, g := range groups {
		t.AddRow(g.ID, g.Name, strconv.Itoa(len(g.Members)), strconv.Itoa(g.CapacityOr(defaultCapacity)))
	}
	return t
}

// MemberTable lists the members of every group, one row per student.
func MemberTable(groups []domain.Group) *Table {
	t := NewTableFromHeaders("GROUPE", "ID", "MEMBRE")
	for _, g := range groups {
		for _, m := range g.Members {
			t.AddRow(g.ID, m.UserID, m.FullName())
		}
	}
	return t
}

// findingError carries a field message through Output.Error.
type findingError struct {
	field string
	msg   string
}

func (e findingError) Error() string { return e.field + ": " + e.msg }

func sortedFields(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
