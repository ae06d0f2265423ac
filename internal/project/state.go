// Package project manages project snapshots: the project status state
// machine, loading snapshot files and the local snapshot store.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors,
//     internal/flock, internal/validation, std lib
//   - MUST NOT import: internal/cli, internal/tui
package project

import (
	"fmt"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/validation"
)

// ValidTransitions defines the usual project lifecycle.
// Format: from_status -> []to_statuses
//
//	PLANIFIE → EN_COURS, ANNULE
//	EN_COURS → TERMINE, ANNULE
//	ANNULE   → PLANIFIE
//
// TERMINE has no outgoing edge. Edges missing from the table are not
// forbidden: they raise a warning the user may override.
//
//nolint:gochecknoglobals // Exported for testing and read-only lookup table
var ValidTransitions = map[constants.ProjectStatus][]constants.ProjectStatus{
	constants.ProjectStatusPlanned:    {constants.ProjectStatusInProgress, constants.ProjectStatusCanceled},
	constants.ProjectStatusInProgress: {constants.ProjectStatusDone, constants.ProjectStatusCanceled},
	constants.ProjectStatusCanceled:   {constants.ProjectStatusPlanned},
}

const (
	msgDoneBeforeEnd        = "Le projet ne peut pas être terminé avant sa date de fin (%s)."
	msgCancelDone           = "Un projet terminé ne peut pas être annulé."
	msgUnusualTransition    = "Transition inhabituelle : %s → %s. Confirmez pour continuer."
	msgPlannedAlreadyBegun  = "Un projet planifié devrait commencer dans le futur (début le %s)."
	msgInProgressNotStarted = "Le projet n'a pas encore commencé (début le %s)."
	msgInProgressOverdue    = "Le projet semble en retard : sa date de fin (%s) est dépassée."
)

// IsValidTransition reports whether the table lists the edge from → to.
// The same status is not a transition.
func IsValidTransition(from, to constants.ProjectStatus) bool {
	if from == to {
		return false
	}
	for _, target := range ValidTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// GetValidTargetStatuses returns the statuses the table allows from the given one.
func GetValidTargetStatuses(from constants.ProjectStatus) []constants.ProjectStatus {
	targets, exists := ValidTransitions[from]
	if !exists {
		return nil
	}
	result := make([]constants.ProjectStatus, len(targets))
	copy(result, targets)
	return result
}

// Decision is the outcome of checking a project status change.
type Decision struct {
	Errors   validation.FieldErrors   `json:"errors"`
	Warnings validation.FieldWarnings `json:"warnings"`
}

// Blocked reports whether the change may not be applied, given whether the
// user confirmed the warnings.
func (d Decision) Blocked(confirmed bool) bool {
	return len(d.Errors) > 0 || (len(d.Warnings) > 0 && !confirmed)
}

// CheckTransition evaluates moving p to status to on date today.
// Errors block the change. Warnings ask for confirmation: an edge outside
// the table, or a status that disagrees with the project dates.
// Keeping the current status is always allowed.
func CheckTransition(p *domain.Project, to constants.ProjectStatus, today domain.Date) (Decision, error) {
	d := Decision{Errors: validation.FieldErrors{}, Warnings: validation.FieldWarnings{}}
	if err := p.CheckEnvelope(); err != nil {
		return d, err
	}
	if !isKnownStatus(to) {
		return d, fmt.Errorf("%w: unknown project status %q", cberrors.ErrInvalidTransition, to)
	}

	from := p.Status
	if from == "" {
		from = constants.ProjectStatusPlanned
	}
	if from == to {
		return d, nil
	}

	switch {
	case from == constants.ProjectStatusDone && to == constants.ProjectStatusCanceled:
		d.Errors.Add(constants.FieldStatus, msgCancelDone)
	case to == constants.ProjectStatusDone && p.EndDate.After(today):
		d.Errors.Add(constants.FieldStatus, fmt.Sprintf(msgDoneBeforeEnd, p.EndDate))
	case !IsValidTransition(from, to):
		d.Warnings.Add(constants.FieldTransition, fmt.Sprintf(msgUnusualTransition, from, to))
	}

	switch to {
	case constants.ProjectStatusPlanned:
		if !p.StartDate.After(today) {
			d.Warnings.Add(constants.FieldStartDate, fmt.Sprintf(msgPlannedAlreadyBegun, p.StartDate))
		}
	case constants.ProjectStatusInProgress:
		if p.StartDate.After(today) {
			d.Warnings.Add(constants.FieldStartDate, fmt.Sprintf(msgInProgressNotStarted, p.StartDate))
		}
		if p.EndDate.Before(today) {
			d.Warnings.Add(constants.FieldProjectEnd, fmt.Sprintf(msgInProgressOverdue, p.EndDate))
		}
	}

	return d, nil
}

// Apply returns a copy of p moved to status to. It fails with
// ErrTransitionBlocked when the decision has errors, and with
// ErrConfirmationRequired when it has warnings the user did not confirm.
// The decision is returned in every case so callers can show it.
func Apply(p *domain.Project, to constants.ProjectStatus, today domain.Date, confirmed bool) (*domain.Project, Decision, error) {
	d, err := CheckTransition(p, to, today)
	if err != nil {
		return nil, d, err
	}
	if len(d.Errors) > 0 {
		return nil, d, fmt.Errorf("%w: %s", cberrors.ErrTransitionBlocked, d.Errors[constants.FieldStatus])
	}
	if len(d.Warnings) > 0 && !confirmed {
		return nil, d, fmt.Errorf("%w: %d warning(s) for %s → %s",
			cberrors.ErrConfirmationRequired, len(d.Warnings), p.Status, to)
	}

	updated := p.Clone()
	updated.Status = to
	return updated, d, nil
}

func isKnownStatus(s constants.ProjectStatus) bool {
	for _, known := range constants.ProjectStatuses() {
		if s == known {
			return true
		}
	}
	return false
}
