// Package group enforces group membership capacity.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, std lib
//   - MUST NOT import: internal/cli, internal/tui, internal/project
package group

import (
	"fmt"
	"strings"

	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// capacityOf returns the group capacity, falling back to defaultCapacity and
// then to the built-in default.
func capacityOf(g domain.Group, defaultCapacity int) int {
	if defaultCapacity <= 0 {
		return g.EffectiveCapacity()
	}
	return g.CapacityOr(defaultCapacity)
}

// AddMember appends m to g. It fails with ErrGroupFull when the group is at
// capacity and with ErrMemberExists when the user is already a member.
func AddMember(g *domain.Group, m domain.Member, defaultCapacity int) error {
	if g == nil {
		return fmt.Errorf("group %w", cberrors.ErrEmptyValue)
	}
	if strings.TrimSpace(m.UserID) == "" {
		return fmt.Errorf("member user ID %w", cberrors.ErrEmptyValue)
	}
	if g.HasMember(m.UserID) {
		return fmt.Errorf("user '%s' in group '%s': %w", m.UserID, g.ID, cberrors.ErrMemberExists)
	}
	if limit := capacityOf(*g, defaultCapacity); len(g.Members) >= limit {
		return fmt.Errorf("group '%s' has %d/%d members: %w", g.ID, len(g.Members), limit, cberrors.ErrGroupFull)
	}
	g.Members = append(g.Members, m)
	return nil
}

// RemoveMember removes the member with userID from g.
func RemoveMember(g *domain.Group, userID string) error {
	if g == nil {
		return fmt.Errorf("group %w", cberrors.ErrEmptyValue)
	}
	for i, m := range g.Members {
		if m.UserID == userID {
			g.Members = append(g.Members[:i:i], g.Members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("user '%s' in group '%s': %w", userID, g.ID, cberrors.ErrMemberNotFound)
}

// Remaining returns how many members g can still accept, never negative.
func Remaining(g domain.Group, defaultCapacity int) int {
	return max(capacityOf(g, defaultCapacity)-len(g.Members), 0)
}

// Overflow describes a group holding more members than its capacity.
type Overflow struct {
	GroupID  string `json:"groupId"`
	Name     string `json:"nom"`
	Members  int    `json:"members"`
	Capacity int    `json:"capacity"`
}

// CheckCapacity lists the groups of p that exceed their capacity, in project
// order. Snapshots edited outside classboard can break the rule AddMember keeps.
func CheckCapacity(p *domain.Project, defaultCapacity int) []Overflow {
	var out []Overflow
	if p == nil {
		return out
	}
	for _, g := range p.Groups {
		limit := capacityOf(g, defaultCapacity)
		if len(g.Members) > limit {
			out = append(out, Overflow{GroupID: g.ID, Name: g.Name, Members: len(g.Members), Capacity: limit})
		}
	}
	return out
}

// AddToProject adds m to the group groupID of p. The user must not already
// belong to any group of the project.
func AddToProject(p *domain.Project, groupID string, m domain.Member, defaultCapacity int) error {
	g, ok := p.Group(groupID)
	if !ok {
		return fmt.Errorf("group '%s': %w", groupID, cberrors.ErrGroupNotFound)
	}
	for _, other := range p.Groups {
		if other.ID != groupID && other.HasMember(m.UserID) {
			return fmt.Errorf("user '%s' in group '%s': %w", m.UserID, other.ID, cberrors.ErrMemberExists)
		}
	}
	return AddMember(g, m, defaultCapacity)
}
