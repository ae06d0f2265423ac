// Package validation implements the task constraint-validation engine.
//
// The engine decides whether a draft task (create or edit) is legal inside a
// fully loaded project snapshot. It is a pure function of its inputs: it never
// performs I/O, keeps no state between calls and returns findings as values.
// Blocking findings land in Result.Errors; advisory ones (assignee overlaps)
// land in Result.Warnings and only block until the caller confirms them.
//
// Import rules:
//   - CAN import: internal/constants, internal/domain, internal/errors, internal/clock
//   - MUST NOT import: internal/cli, internal/tui, internal/project
package validation

import (
	"sort"

	"github.com/mrz1836/classboard/internal/domain"
)

// FieldErrors maps a form field name to its blocking message.
type FieldErrors map[string]string

// FieldWarnings maps a form field name to its advisory message.
type FieldWarnings map[string]string

// Add records msg on field unless the field already has a message.
// The first finding for a field wins. Reports whether msg was recorded.
func (e FieldErrors) Add(field, msg string) bool {
	return addFirst(e, field, msg)
}

// Merge adds every entry of other that does not collide with an existing field.
func (e FieldErrors) Merge(other FieldErrors) {
	for _, field := range sortedKeys(other) {
		addFirst(e, field, other[field])
	}
}

// Fields returns the field names in sorted order.
func (e FieldErrors) Fields() []string {
	return sortedKeys(e)
}

// Add records msg on field unless the field already has a message.
func (w FieldWarnings) Add(field, msg string) bool {
	return addFirst(w, field, msg)
}

// Merge adds every entry of other that does not collide with an existing field.
func (w FieldWarnings) Merge(other FieldWarnings) {
	for _, field := range sortedKeys(other) {
		addFirst(w, field, other[field])
	}
}

// Fields returns the field names in sorted order.
func (w FieldWarnings) Fields() []string {
	return sortedKeys(w)
}

func addFirst[M ~map[string]string](m M, field, msg string) bool {
	if _, exists := m[field]; exists {
		return false
	}
	m[field] = msg
	return true
}

func sortedKeys[M ~map[string]string](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Result is the outcome of validating one draft task.
type Result struct {
	// Errors block submission. Never nil.
	Errors FieldErrors `json:"errors"`

	// Warnings require an explicit confirmation. Never nil.
	Warnings FieldWarnings `json:"warnings"`

	// Conflicts details the member overlaps summarized in Warnings["overlap"].
	Conflicts []domain.Conflict `json:"conflicts,omitempty"`

	// Blocked is true iff Errors is non-empty, or overlaps exist and were
	// not confirmed.
	Blocked bool `json:"blocked"`
}

// Valid reports whether no blocking error was found.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// NeedsConfirmation reports whether only unconfirmed warnings block the draft.
// Callers present a "continue anyway" choice and call again with
// Options.ConfirmedOverlaps set.
func (r Result) NeedsConfirmation() bool {
	return r.Blocked && len(r.Errors) == 0
}
