package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/classboard/internal/clock"
	"github.com/mrz1836/classboard/internal/config"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// projectJSON runs from 2024-01-01 to 2024-06-01 with one group of two
// members and one task assigned to Alice in early February.
const projectJSON = `{
  "id": "web-2024",
  "nom": "Application web",
  "statut": "EN_COURS",
  "dateDebut": "2024-01-01",
  "dateFin": "2024-06-01",
  "groupes": [
    {"id": "g1", "nom": "Groupe A", "capacite": 3,
     "membres": [
       {"userId": "u1", "nom": "Martin", "prenom": "Alice"},
       {"userId": "u2", "nom": "Durand", "prenom": "Bob"}
     ]}
  ],
  "taches": [
    {"id": "t-1", "titre": "Conception", "statut": "A_FAIRE",
     "dateDebut": "2024-02-01", "dateEcheance": "2024-02-14",
     "assignesA": [{"type": "membre", "userId": "u1", "groupeId": "g1"}]}
  ]
}`

// validDraftYAML is accepted as-is on 2024-01-15.
const validDraftYAML = `
titre: Rapport final
dateDebut: 2024-03-01
dateEcheance: 2024-03-10
assignesA:
  - type: membre
    userId: u2
    groupeId: g1
`

// overlapDraftJSON is valid but keeps Alice busy during "Conception".
const overlapDraftJSON = `{
  "titre": "Maquettes",
  "dateDebut": "2024-02-05",
  "dateEcheance": "2024-02-10",
  "assignesA": [{"type": "membre", "userId": "u1", "groupeId": "g1"}]
}`

// invalidDraftJSON has no title and ends after the project.
const invalidDraftJSON = `{
  "titre": "  ",
  "dateDebut": "2024-05-20",
  "dateEcheance": "2024-07-01",
  "assignesA": [{"type": "membre", "userId": "u2", "groupeId": "g1"}]
}`

// testToday is the default clock reading of the CLI tests.
func testToday() clock.Clock {
	return clock.Fixed(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC))
}

// testConfig returns defaults with a temporary store, UTC dates and no log file.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Time.Timezone = "UTC"
	cfg.Store.Dir = t.TempDir()
	cfg.Store.LockTimeout = time.Second
	cfg.Log.Disabled = true
	return cfg
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// harness runs commands against one configuration and store.
type harness struct {
	t       *testing.T
	cfg     *config.Config
	dir     string
	clock   clock.Clock
	confirm ConfirmFunc
	asked   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, cfg: testConfig(t), dir: t.TempDir(), clock: testToday()}
	h.confirm = func(_, _ string) (bool, error) {
		h.asked++
		return false, nil
	}
	return h
}

// answer makes the confirmation prompt return yes.
func (h *harness) answer(yes bool) {
	h.confirm = func(_, _ string) (bool, error) {
		h.asked++
		return yes, nil
	}
}

func (h *harness) file(name, content string) string {
	return writeFile(h.t, h.dir, name, content)
}

// run executes the root command and returns its stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd(BuildInfo{Version: "test"},
		WithConfig(h.cfg),
		WithClock(h.clock),
		WithLogWriter(io.Discard),
		WithConfirm(h.confirm),
	)
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// importProject stores the fixture project.
func (h *harness) importProject() {
	h.t.Helper()
	_, err := h.run("project", "import", h.file("web.json", projectJSON))
	require.NoError(h.t, err)
}
