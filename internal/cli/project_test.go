package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
)

func TestProjectImport(t *testing.T) {
	t.Parallel()

	t.Run("new project", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		out, err := h.run("project", "import", h.file("web.json", projectJSON))

		require.NoError(t, err)
		assert.Contains(t, out, "Projet web-2024 importé (1 groupe(s), 1 tâche(s)).")
		assert.Equal(t, "Application web", h.stored().Name)
	})

	t.Run("existing id needs replace", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()
		path := h.file("web.json", strings.Replace(projectJSON, "Application web", "Application mobile", 1))

		_, err := h.run("project", "import", path)
		require.ErrorIs(t, err, errors.ErrProjectExists)

		out, err := h.run("project", "import", "-o", "json", "--replace", path)
		require.NoError(t, err)
		var resp ImportResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.True(t, resp.Replaced)
		assert.Empty(t, resp.Overflows)
		assert.Equal(t, "Application mobile", h.stored().Name)
	})

	t.Run("yaml snapshot", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		snapshot := `
id: web-2024
nom: Application web
dateDebut: 2024-01-01
dateFin: 2024-06-01
groupes:
  - id: g1
    nom: Groupe A
    membres:
      - {userId: u1, nom: Martin, prenom: Alice}
`
		_, err := h.run("project", "import", h.file("web.yaml", snapshot))
		require.NoError(t, err)
		assert.Len(t, h.stored().Groups, 1)
	})

	t.Run("over capacity is reported", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		full := strings.Replace(projectJSON, `"capacite": 3`, `"capacite": 1`, 1)
		out, err := h.run("project", "import", "-o", "json", h.file("web.json", full))

		require.NoError(t, err)
		var resp ImportResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp.Overflows, 1)
		assert.Equal(t, "g1", resp.Overflows[0].GroupID)
		assert.Equal(t, 2, resp.Overflows[0].Members)
		assert.Equal(t, 1, resp.Overflows[0].Capacity)
	})

	t.Run("schema violation", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		bad := strings.Replace(projectJSON, `"statut": "EN_COURS"`, `"statut": "FINI"`, 1)
		_, err := h.run("project", "import", h.file("web.json", bad))

		require.ErrorIs(t, err, errors.ErrSnapshotInvalid)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})
}

func TestProjectList(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	out, err := h.run("project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Aucun projet")

	out, err = h.run("project", "ls", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)

	h.importProject()
	out, err = h.run("project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "web-2024")
	assert.Contains(t, out, "Application web")

	out, err = h.run("project", "list", "-o", "json")
	require.NoError(t, err)
	var projects []domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "web-2024", projects[0].ID)
}

func TestProjectShow(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.importProject()

	out, err := h.run("project", "show", "web-2024")
	require.NoError(t, err)
	assert.Contains(t, out, "Application web")
	assert.Contains(t, out, "2024-01-01 → 2024-06-01")
	assert.Contains(t, out, "Groupe A")
	assert.Contains(t, out, "Alice Martin")
	assert.Contains(t, out, "Bob Durand")
	assert.Contains(t, out, "Conception")

	_, err = h.run("project", "show", "missing")
	require.ErrorIs(t, err, errors.ErrProjectNotFound)

	_, err = h.run("project", "show")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestProjectExport(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.importProject()

	out, err := h.run("project", "export", "web-2024")
	require.NoError(t, err)
	var p domain.Project
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "web-2024", p.ID)
	require.Len(t, p.Tasks, 1)

	out, err = h.run("project", "export", "web-2024", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "id: web-2024")
	assert.Contains(t, out, "dateDebut:")

	// The export round-trips through import.
	h2 := newHarness(t)
	_, err = h2.run("project", "import", h2.file("copy.yaml", out))
	require.NoError(t, err)
	assert.Equal(t, "Application web", h2.stored().Name)

	_, err = h.run("project", "export", "web-2024", "--format", "xml")
	require.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestProjectStatus(t *testing.T) {
	t.Parallel()

	t.Run("usual change is applied", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()
		out, err := h.run("project", "status", "-o", "json", "--project-id", "web-2024", "--to", "ANNULE")
		require.NoError(t, err)

		var resp ProjectStatusResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.True(t, resp.Applied)
		assert.Equal(t, "EN_COURS", resp.From)
		assert.Equal(t, "ANNULE", resp.To)
		assert.Equal(t, constants.ProjectStatusCanceled, h.stored().Status)
	})

	t.Run("finishing before the end date is blocked", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()
		out, err := h.run("project", "status", "--project-id", "web-2024", "--to", "TERMINE")

		require.ErrorIs(t, err, errors.ErrTransitionBlocked)
		assert.Equal(t, ExitBlocked, ExitCodeForError(err))
		assert.Contains(t, out, "2024-06-01")
		assert.Zero(t, h.asked)
		assert.Equal(t, constants.ProjectStatusInProgress, h.stored().Status)
	})

	t.Run("warnings need confirmation", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()

		// EN_COURS → PLANIFIE is unusual and the project has already begun.
		_, err := h.run("project", "status", "--project-id", "web-2024", "--to", "PLANIFIE")
		require.ErrorIs(t, err, errors.ErrConfirmationRequired)
		assert.Equal(t, 1, h.asked)
		assert.Equal(t, constants.ProjectStatusInProgress, h.stored().Status)

		h.answer(true)
		_, err = h.run("project", "status", "--project-id", "web-2024", "--to", "PLANIFIE")
		require.NoError(t, err)
		assert.Equal(t, constants.ProjectStatusPlanned, h.stored().Status)
	})

	t.Run("yes in json mode", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()

		out, err := h.run("project", "status", "-o", "json", "--project-id", "web-2024", "--to", "PLANIFIE")
		require.ErrorIs(t, err, errors.ErrConfirmationRequired)
		var resp ProjectStatusResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.False(t, resp.Applied)
		assert.Contains(t, resp.Decision.Warnings, constants.FieldTransition)
		assert.Contains(t, resp.Decision.Warnings, constants.FieldStartDate)

		_, err = h.run("project", "status", "-o", "json", "--yes", "--project-id", "web-2024", "--to", "PLANIFIE")
		require.NoError(t, err)
		assert.Zero(t, h.asked)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()

		h := newHarness(t)
		h.importProject()
		_, err := h.run("project", "status", "--project-id", "web-2024", "--to", "FINI")

		require.ErrorIs(t, err, errors.ErrInvalidTransition)
		assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
	})
}
