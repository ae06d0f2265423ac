package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	cberrors "github.com/mrz1836/classboard/internal/errors"
)

const exampleProjectJSON = `{
    "id": "p-1",
    "nom": "Projet Web",
    "statut": "EN_COURS",
    "dateDebut": "2024-01-01",
    "dateFin": "2024-06-01",
    "groupes": [
        {
            "id": "g1",
            "nom": "Groupe A",
            "capacite": 4,
            "membres": [
                {"userId": "u1", "nom": "Martin", "prenom": "Alice", "email": "alice@example.org"},
                {"userId": "u2", "nom": "Bernard", "prenom": "Hugo"}
            ]
        }
    ],
    "taches": [
        {
            "id": "t-1",
            "titre": "Conception",
            "priorite": "HAUTE",
            "statut": "A_FAIRE",
            "dateDebut": "2024-02-01",
            "dateEcheance": "2024-02-14T10:00:00+01:00",
            "assignesA": [
                {"type": "membre", "userId": "u1", "groupeId": "g1"},
                {"type": "membre", "value": {"userId": "u2", "groupeId": "g1"}},
                {"type": "groupe", "groupeId": "g1"}
            ],
            "pourcentageAvancement": 20
        }
    ]
}`

const exampleProjectYAML = `
id: p-1
nom: Projet Web
statut: PLANIFIE
dateDebut: 2024-01-01
dateFin: "2024-06-01"
groupes:
  - id: g1
    nom: Groupe A
    membres:
      - userId: u1
        nom: Martin
        prenom: Alice
taches:
  - id: t-1
    titre: Conception
    dateDebut: 2024-02-01
    dateEcheance: 2024-02-14
    assignesA:
      - type: membre
        value:
          userId: u1
          groupeId: g1
`

func TestProject_UnmarshalJSON(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(exampleProjectJSON), &p))

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, ProjectStatusInProgress, p.Status)
	assert.Equal(t, NewDate(2024, 1, 1), p.StartDate)
	require.Len(t, p.Groups, 1)
	assert.Equal(t, 4, p.Groups[0].EffectiveCapacity())
	require.Len(t, p.Tasks, 1)

	task := p.Tasks[0]
	assert.Equal(t, NewDate(2024, 2, 14), task.DueDate, "timestamps reduce to their calendar date")
	require.Len(t, task.Assignees, 3)
	assert.Equal(t, MemberAssignee("u1", "g1"), task.Assignees[0])
	assert.Equal(t, MemberAssignee("u2", "g1"), task.Assignees[1], "nested value layout is accepted")
	assert.Equal(t, GroupAssignee("g1"), task.Assignees[2])
	require.NotNil(t, task.Progress)
	assert.Equal(t, 20, *task.Progress)
	assert.Len(t, task.MemberAssignees(), 2)
}

func TestProject_UnmarshalYAML(t *testing.T) {
	var p Project
	require.NoError(t, yaml.Unmarshal([]byte(exampleProjectYAML), &p))

	assert.Equal(t, NewDate(2024, 1, 1), p.StartDate)
	assert.Equal(t, NewDate(2024, 6, 1), p.EndDate)
	require.Len(t, p.Tasks, 1)
	assert.Equal(t, NewDate(2024, 2, 1), p.Tasks[0].StartDate)
	assert.Equal(t, MemberAssignee("u1", "g1"), p.Tasks[0].Assignees[0])
	assert.Equal(t, 5, p.Groups[0].EffectiveCapacity())
}

func TestProject_MarshalJSON(t *testing.T) {
	p := Project{
		ID:        "p-1",
		StartDate: NewDate(2024, 1, 1),
		Tasks: []Task{{
			ID:        "t-1",
			Title:     "Rapport",
			StartDate: NewDate(2024, 3, 1),
			Assignees: []Assignee{MemberAssignee("u1", "g1")},
		}},
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, "2024-01-01", generic["dateDebut"])
	assert.Nil(t, generic["dateFin"], "unset dates encode as null")

	tasks := generic["taches"].([]any)
	first := tasks[0].(map[string]any)
	assert.Equal(t, "2024-03-01", first["dateDebut"])
	assignee := first["assignesA"].([]any)[0].(map[string]any)
	assert.Equal(t, "membre", assignee["type"])
	assert.Equal(t, "u1", assignee["userId"])
}

func TestAssignee_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown type", `{"type": "classe", "groupeId": "g1"}`},
		{"member without user", `{"type": "membre", "groupeId": "g1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Assignee
			assert.Error(t, json.Unmarshal([]byte(tt.json), &a))
		})
	}
}

func TestDate(t *testing.T) {
	t.Run("parse formats", func(t *testing.T) {
		d, err := ParseDate("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())

		d, err = ParseDate("2024-02-29T23:59:00-05:00")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29", d.String())

		d, err = ParseDate("  ")
		require.NoError(t, err)
		assert.True(t, d.IsZero())

		_, err = ParseDate("29/02/2024")
		assert.Error(t, err)
	})

	t.Run("comparisons ignore time of day", func(t *testing.T) {
		morning := DateOf(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), nil)
		evening := DateOf(time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC), nil)
		assert.True(t, morning.Equal(evening))
		assert.False(t, morning.Before(evening))
	})

	t.Run("date of uses location", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		d := DateOf(time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC), loc)
		assert.Equal(t, NewDate(2024, 5, 2), d)
	})

	t.Run("date of without location keeps the zone of t", func(t *testing.T) {
		paris := time.FixedZone("UTC+1", 60*60)
		d := DateOf(time.Date(2024, 2, 1, 0, 30, 0, 0, paris), nil)
		assert.Equal(t, NewDate(2024, 2, 1), d)
		assert.True(t, DateOf(time.Time{}, nil).IsZero())
	})

	t.Run("arithmetic across february", func(t *testing.T) {
		start := NewDate(2024, 2, 28)
		assert.Equal(t, NewDate(2024, 3, 1), start.AddDays(2))
		assert.Equal(t, 2, start.DaysUntil(NewDate(2024, 3, 1)))
		assert.Equal(t, 0, start.DaysUntil(start))
	})

	t.Run("arithmetic", func(t *testing.T) {
		start := NewDate(2024, 1, 1)
		assert.Equal(t, NewDate(2024, 3, 31), start.AddDays(90))
		assert.Equal(t, 90, start.DaysUntil(NewDate(2024, 3, 31)))
		assert.Equal(t, -1, start.DaysUntil(NewDate(2023, 12, 31)))
		assert.True(t, Date{}.AddDays(3).IsZero())
	})

	t.Run("json null and empty", func(t *testing.T) {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(`null`), &d))
		assert.True(t, d.IsZero())
		require.NoError(t, json.Unmarshal([]byte(`""`), &d))
		assert.True(t, d.IsZero())
		assert.Error(t, json.Unmarshal([]byte(`42`), &d))
	})
}

func TestProject_CheckEnvelope(t *testing.T) {
	var nilProject *Project
	require.ErrorIs(t, nilProject.CheckEnvelope(), cberrors.ErrMalformedInput)

	tests := []struct {
		name    string
		project Project
		wantErr bool
	}{
		{"valid", Project{StartDate: NewDate(2024, 1, 1), EndDate: NewDate(2024, 6, 1)}, false},
		{"missing start", Project{EndDate: NewDate(2024, 6, 1)}, true},
		{"missing end", Project{StartDate: NewDate(2024, 1, 1)}, true},
		{"same day", Project{StartDate: NewDate(2024, 1, 1), EndDate: NewDate(2024, 1, 1)}, true},
		{"inverted", Project{StartDate: NewDate(2024, 6, 1), EndDate: NewDate(2024, 1, 1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.CheckEnvelope()
			if tt.wantErr {
				assert.ErrorIs(t, err, cberrors.ErrMalformedInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProject_Lookups(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(exampleProjectJSON), &p))

	g, ok := p.Group("g1")
	require.True(t, ok)
	assert.Equal(t, "Groupe A", g.Name)
	_, ok = p.Group("nope")
	assert.False(t, ok)

	m, ok := p.Member("u2")
	require.True(t, ok)
	assert.Equal(t, "Hugo Bernard", m.FullName())

	task, ok := p.Task("t-1")
	require.True(t, ok)
	assert.Equal(t, "Conception", task.Title)

	assert.Empty(t, p.OtherTasks("t-1"))
	assert.Len(t, p.OtherTasks(""), 1)
}

func TestProject_Clone(t *testing.T) {
	var p Project
	require.NoError(t, json.Unmarshal([]byte(exampleProjectJSON), &p))

	c := p.Clone()
	c.Tasks[0].Assignees[0].UserID = "changed"
	*c.Tasks[0].Progress = 99
	c.Groups[0].Members[0].FirstName = "changed"
	*c.Groups[0].Capacity = 1

	assert.Equal(t, "u1", p.Tasks[0].Assignees[0].UserID)
	assert.Equal(t, 20, *p.Tasks[0].Progress)
	assert.Equal(t, "Alice", p.Groups[0].Members[0].FirstName)
	assert.Equal(t, 4, *p.Groups[0].Capacity)

	var nilProject *Project
	assert.Nil(t, nilProject.Clone())
}
