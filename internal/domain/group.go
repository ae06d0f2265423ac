package domain

import (
	"strings"

	"github.com/mrz1836/classboard/internal/constants"
)

// Member is a student belonging to a group.
type Member struct {
	UserID    string `json:"userId" yaml:"userId"`
	LastName  string `json:"nom" yaml:"nom"`
	FirstName string `json:"prenom" yaml:"prenom"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
}

// FullName returns "Prénom Nom", skipping empty parts.
func (m Member) FullName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Group is a capacity-limited set of students.
type Group struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"nom" yaml:"nom"`
	Members []Member `json:"membres" yaml:"membres"`

	// Capacity is the maximum number of members. Nil means the default of 5.
	Capacity *int `json:"capacite,omitempty" yaml:"capacite,omitempty"`
}

// EffectiveCapacity returns the declared capacity, or the default when the
// group does not declare a positive one.
func (g Group) EffectiveCapacity() int {
	return g.CapacityOr(constants.DefaultGroupCapacity)
}

// CapacityOr returns the declared capacity, or def when unset.
func (g Group) CapacityOr(def int) int {
	if g.Capacity == nil || *g.Capacity <= 0 {
		return def
	}
	return *g.Capacity
}

// HasMember reports whether userID belongs to the group.
func (g Group) HasMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// Member returns the member with userID.
func (g Group) Member(userID string) (Member, bool) {
	for _, m := range g.Members {
		if m.UserID == userID {
			return m, true
		}
	}
	return Member{}, false
}
