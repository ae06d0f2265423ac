// Package domain provides shared domain types for classboard: projects,
// groups, members, tasks and their assignees.
//
// JSON and YAML field names are the French identifiers of the school's front
// end (nom, dateDebut, assignesA...) so snapshots exported by it load as-is.
//
// This package follows strict import rules:
//   - CAN import: internal/clock, internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
package domain

import (
	"fmt"

	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// Project is a pedagogical assignment with a fixed date envelope, its groups
// and its tasks. The validation engine receives it fully loaded.
type Project struct {
	ID        string        `json:"id" yaml:"id"`
	Name      string        `json:"nom" yaml:"nom"`
	Status    ProjectStatus `json:"statut" yaml:"statut"`
	StartDate Date          `json:"dateDebut" yaml:"dateDebut"`
	EndDate   Date          `json:"dateFin" yaml:"dateFin"`
	Groups    []Group       `json:"groupes" yaml:"groupes"`
	Tasks     []Task        `json:"taches" yaml:"taches"`

	// SchemaVersion is stamped by the snapshot store.
	SchemaVersion int `json:"schemaVersion,omitempty" yaml:"schemaVersion,omitempty"`
}

// CheckEnvelope returns ErrMalformedInput when the project dates are missing
// or inverted. The engine cannot reason about a project without them.
func (p *Project) CheckEnvelope() error {
	if p == nil {
		return fmt.Errorf("%w: project is nil", cberrors.ErrMalformedInput)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: project %q has no start date", cberrors.ErrMalformedInput, p.ID)
	}
	if p.EndDate.IsZero() {
		return fmt.Errorf("%w: project %q has no end date", cberrors.ErrMalformedInput, p.ID)
	}
	if !p.StartDate.Before(p.EndDate) {
		return fmt.Errorf("%w: project %q starts on %s but ends on %s",
			cberrors.ErrMalformedInput, p.ID, p.StartDate, p.EndDate)
	}
	return nil
}

// Group returns a pointer to the group with id, for in-place updates.
func (p *Project) Group(id string) (*Group, bool) {
	for i := range p.Groups {
		if p.Groups[i].ID == id {
			return &p.Groups[i], true
		}
	}
	return nil, false
}

// Task returns a pointer to the task with id, for in-place updates.
func (p *Project) Task(id string) (*Task, bool) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], true
		}
	}
	return nil, false
}

// Member finds a member by user id across all groups.
func (p *Project) Member(userID string) (Member, bool) {
	for _, g := range p.Groups {
		if m, ok := g.Member(userID); ok {
			return m, true
		}
	}
	return Member{}, false
}

// OtherTasks returns the project's tasks except the one with selfID. An empty
// selfID excludes nothing.
func (p *Project) OtherTasks(selfID string) []Task {
	out := make([]Task, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		if selfID != "" && t.ID == selfID {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Clone returns a deep copy of the project.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	c := *p
	c.Groups = make([]Group, len(p.Groups))
	for i, g := range p.Groups {
		gc := g
		gc.Members = append([]Member(nil), g.Members...)
		if g.Capacity != nil {
			capacity := *g.Capacity
			gc.Capacity = &capacity
		}
		c.Groups[i] = gc
	}
	c.Tasks = make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		c.Tasks[i] = t.Clone()
	}
	return &c
}
