package domain

// Task is a unit of work inside a project.
//
// Example JSON representation:
//
//	{
//	    "id": "t-1",
//	    "titre": "Conception",
//	    "description": "Diagrammes UML",
//	    "priorite": "HAUTE",
//	    "statut": "A_FAIRE",
//	    "dateDebut": "2024-02-01",
//	    "dateEcheance": "2024-02-14",
//	    "assignesA": [{"type": "membre", "userId": "u1", "groupeId": "g1"}],
//	    "pourcentageAvancement": 20
//	}
type Task struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"titre" yaml:"titre"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Priority    Priority   `json:"priorite,omitempty" yaml:"priorite,omitempty"`
	Status      TaskStatus `json:"statut,omitempty" yaml:"statut,omitempty"`
	StartDate   Date       `json:"dateDebut" yaml:"dateDebut"`
	DueDate     Date       `json:"dateEcheance" yaml:"dateEcheance"`
	Assignees   []Assignee `json:"assignesA" yaml:"assignesA"`

	// Progress is the completion percentage (0-100). Nil means not tracked.
	Progress *int `json:"pourcentageAvancement,omitempty" yaml:"pourcentageAvancement,omitempty"`
}

// HasDates reports whether both the start and due dates are set.
func (t Task) HasDates() bool {
	return !t.StartDate.IsZero() && !t.DueDate.IsZero()
}

// MemberAssignees returns the member-type assignees in order.
func (t Task) MemberAssignees() []Assignee {
	var out []Assignee
	for _, a := range t.Assignees {
		if a.IsMember() {
			out = append(out, a)
		}
	}
	return out
}

// Clone returns a deep copy of the task so state changes never alias the
// caller's snapshot.
func (t Task) Clone() Task {
	c := t
	if t.Assignees != nil {
		c.Assignees = append([]Assignee(nil), t.Assignees...)
	}
	if t.Progress != nil {
		p := *t.Progress
		c.Progress = &p
	}
	return c
}

// Conflict records that a member assigned to a draft task is already busy on
// another task whose dates overlap the draft's.
type Conflict struct {
	UserID    string `json:"userId"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	TaskID    string `json:"conflictingTaskId"`
	TaskTitle string `json:"conflictingTaskTitle"`
}
