package domain

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Assignee is a party responsible for a task: either a whole group or one
// member of a group.
//
// Example JSON representations (both accepted on input, the flat one is
// produced on output):
//
//	{"type": "groupe", "groupeId": "g1"}
//	{"type": "membre", "userId": "u7", "groupeId": "g1"}
//	{"type": "membre", "value": {"userId": "u7", "groupeId": "g1"}}
type Assignee struct {
	// Type is "groupe" or "membre".
	Type AssigneeType `json:"type" yaml:"type"`

	// GroupID is the group assigned, or the group the member belongs to.
	GroupID string `json:"groupeId" yaml:"groupeId"`

	// UserID is set for member assignees only.
	UserID string `json:"userId,omitempty" yaml:"userId,omitempty"`
}

// GroupAssignee returns an assignee for a whole group.
func GroupAssignee(groupID string) Assignee {
	return Assignee{Type: AssigneeGroup, GroupID: groupID}
}

// MemberAssignee returns an assignee for one member of a group.
func MemberAssignee(userID, groupID string) Assignee {
	return Assignee{Type: AssigneeMember, GroupID: groupID, UserID: userID}
}

// IsMember reports whether the assignee targets a single member.
func (a Assignee) IsMember() bool {
	return a.Type == AssigneeMember
}

// assigneeWire accepts both the flat and the nested "value" layouts.
type assigneeWire struct {
	Type    AssigneeType `json:"type" yaml:"type"`
	GroupID string       `json:"groupeId" yaml:"groupeId"`
	UserID  string       `json:"userId" yaml:"userId"`
	Value   *struct {
		GroupID string `json:"groupeId" yaml:"groupeId"`
		UserID  string `json:"userId" yaml:"userId"`
	} `json:"value,omitempty" yaml:"value,omitempty"`
}

func (w assigneeWire) toAssignee() (Assignee, error) {
	a := Assignee{Type: w.Type, GroupID: w.GroupID, UserID: w.UserID}
	if w.Value != nil {
		if a.GroupID == "" {
			a.GroupID = w.Value.GroupID
		}
		if a.UserID == "" {
			a.UserID = w.Value.UserID
		}
	}
	switch a.Type {
	case AssigneeGroup:
		a.UserID = ""
	case AssigneeMember:
		if a.UserID == "" {
			return Assignee{}, fmt.Errorf("member assignee without userId")
		}
	default:
		return Assignee{}, fmt.Errorf("unknown assignee type %q", a.Type)
	}
	return a, nil
}

// UnmarshalJSON decodes either assignee layout.
func (a *Assignee) UnmarshalJSON(data []byte) error {
	var w assigneeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.toAssignee()
	if err != nil {
		return err
	}
	*a = decoded
	return nil
}

// UnmarshalYAML decodes either assignee layout.
func (a *Assignee) UnmarshalYAML(node *yaml.Node) error {
	var w assigneeWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	decoded, err := w.toAssignee()
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = decoded
	return nil
}
