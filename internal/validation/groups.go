package validation

import (
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
)

// CheckGroupRules enforces the number of responsible parties and, when the
// project has groups, that each group has at least one of its members
// assigned. Unrepresented groups are named together in one message.
func CheckGroupRules(draft domain.Task, project *domain.Project, limits Limits) FieldErrors {
	limits = limits.withDefaults()
	errs := FieldErrors{}

	switch n := len(draft.Assignees); {
	case n == 0:
		errs.Add(constants.FieldAssignees, msgNoAssignee)
	case n < limits.MinAssignees:
		errs.Add(constants.FieldAssignees, msgTooFewAssignees(limits.MinAssignees))
	case n > limits.MaxAssignees:
		errs.Add(constants.FieldAssignees, msgTooManyAssignees(limits.MaxAssignees))
	}

	if len(project.Groups) == 0 {
		return errs
	}

	perGroup := make(map[string]int, len(project.Groups))
	for _, a := range draft.MemberAssignees() {
		perGroup[a.GroupID]++
	}
	var missing []string
	for _, g := range project.Groups {
		if perGroup[g.ID] > 0 {
			continue
		}
		name := g.Name
		if name == "" {
			name = g.ID
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		errs.Add(constants.FieldAssignees, msgGroupsUnrepresented(missing))
	}
	return errs
}

// CheckTaskFields validates the scalar fields of the draft: a non-blank
// title, a progress between 0 and 100 and a known priority.
func CheckTaskFields(draft domain.Task) FieldErrors {
	errs := FieldErrors{}
	if NormalizeTitle(draft.Title) == "" {
		errs.Add(constants.FieldTitle, msgTitleRequired)
	}
	if p := draft.Progress; p != nil && (*p < 0 || *p > constants.MaxProgress) {
		errs.Add(constants.FieldProgress, msgProgressRange)
	}
	if draft.Priority != "" && !draft.Priority.IsValid() {
		errs.Add(constants.FieldPriority, msgUnknownPriority(draft.Priority))
	}
	return errs
}
