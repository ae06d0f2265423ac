package validation

import (
	"fmt"
	"strings"

	"github.com/mrz1836/classboard/internal/domain"
)

// User-facing messages. The school's front end is French, so are they.
const (
	msgStartRequired  = "La date de début est obligatoire."
	msgStartInPast    = "La date de début ne peut pas être dans le passé."
	msgDueRequired    = "La date d'échéance est obligatoire."
	msgDueInPast      = "La date d'échéance ne peut pas être dans le passé."
	msgDueBeforeStart = "La date d'échéance doit être postérieure ou égale à la date de début."
	msgTitleRequired  = "Le titre est obligatoire."
	msgTitleTaken     = "Une tâche avec ce titre existe déjà dans ce projet."
	msgNoAssignee     = "Veuillez sélectionner au moins un responsable."
	msgProgressRange  = "L'avancement doit être compris entre 0 et 100."
)

func msgStartBeforeProject(start, projectStart domain.Date) string {
	return fmt.Sprintf("La date de début (%s) ne peut pas être avant le début du projet (%s).", start, projectStart)
}

func msgStartAfterProject(start, projectEnd domain.Date) string {
	return fmt.Sprintf("La date de début (%s) ne peut pas être après la fin du projet (%s).", start, projectEnd)
}

func msgOutsideProject(projectStart, projectEnd domain.Date) string {
	return fmt.Sprintf("Les dates de la tâche doivent être comprises entre le début (%s) et la fin (%s) du projet.",
		projectStart, projectEnd)
}

func msgDueTooFar(maxDays int) string {
	return fmt.Sprintf("La durée d'une tâche ne peut pas dépasser %d jours.", maxDays)
}

func msgDueAfterProject(due, projectEnd domain.Date) string {
	return fmt.Sprintf("La date d'échéance (%s) ne peut pas être après la fin du projet (%s).", due, projectEnd)
}

func msgSamePeriod(title string) string {
	return fmt.Sprintf("La tâche « %s » occupe déjà exactement la même période.", title)
}

func msgDailyQuota(limit int, day domain.Date) string {
	return fmt.Sprintf("Le nombre maximal de tâches commençant le même jour (%d) est atteint pour le %s.", limit, day)
}

func msgTooManyAssignees(limit int) string {
	return fmt.Sprintf("Trop de responsables sélectionnés (maximum %d).", limit)
}

func msgTooFewAssignees(limit int) string {
	return fmt.Sprintf("Veuillez sélectionner au moins %d responsables.", limit)
}

func msgGroupsUnrepresented(names []string) string {
	return fmt.Sprintf("Chaque groupe du projet doit avoir au moins un membre assigné. Groupes sans membre : %s.",
		strings.Join(names, ", "))
}

func msgUnknownPriority(p domain.Priority) string {
	return fmt.Sprintf("Priorité inconnue : %s.", p)
}

// OverlapSummary renders the advisory message for a list of conflicts.
func OverlapSummary(conflicts []domain.Conflict) string {
	parts := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if name == "" {
			name = c.UserID
		}
		parts = append(parts, fmt.Sprintf("%s (« %s »)", name, c.TaskTitle))
	}
	return fmt.Sprintf("Conflit de planning pour %d affectation(s) : %s.", len(conflicts), strings.Join(parts, ", "))
}
