package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mrz1836/classboard/internal/config"
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/project"
	"github.com/mrz1836/classboard/internal/task"
	"github.com/mrz1836/classboard/internal/tui"
)

// rulesWordWrap is the width of the rendered rules page.
const rulesWordWrap = 80

// RulesResponse is the JSON output of "rules".
type RulesResponse struct {
	Limits             config.RulesConfig  `json:"limits"`
	TaskTransitions    map[string][]string `json:"taskTransitions"`
	ProjectTransitions map[string][]string `json:"projectTransitions"`
}

func addRulesCommand(root *cobra.Command, a *app) {
	var raw bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the planning rules and their configured limits",
		Long: `Print the rules applied to tasks and projects, with the limits taken from
the configuration. The page is rendered as Markdown in a terminal; --raw
prints the Markdown source.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(a, raw, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	root.AddCommand(cmd)
}

func runRules(a *app, raw bool, w io.Writer) error {
	out := a.output(w)
	if tui.IsJSON(out) {
		return out.JSON(RulesResponse{
			Limits:             a.cfg.Rules,
			TaskTransitions:    taskTransitionTable(),
			ProjectTransitions: projectTransitionTable(),
		})
	}

	doc := rulesMarkdown(a.cfg.Rules)
	if raw {
		_, err := io.WriteString(w, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(rulesStyle(w)),
		glamour.WithWordWrap(rulesWordWrap),
	)
	if err != nil {
		_, err = io.WriteString(w, doc)
		return err
	}
	rendered, err := r.Render(doc)
	if err != nil {
		_, err = io.WriteString(w, doc)
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// rulesStyle picks the glamour style: plain unless w is a color terminal.
func rulesStyle(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || !tui.HasColorSupport() { //nolint:gosec // fd fits in int
		return styles.NoTTYStyle
	}
	return styles.AutoStyle
}

func taskTransitionTable() map[string][]string {
	table := make(map[string][]string, len(task.ValidTransitions))
	for _, from := range constants.TaskStatuses() {
		for _, to := range task.ValidTransitions[from] {
			table[string(from)] = append(table[string(from)], string(to))
		}
	}
	return table
}

func projectTransitionTable() map[string][]string {
	table := make(map[string][]string, len(project.ValidTransitions))
	for _, from := range constants.ProjectStatuses() {
		for _, to := range project.ValidTransitions[from] {
			table[string(from)] = append(table[string(from)], string(to))
		}
	}
	return table
}

// rulesMarkdown builds the rules page from the configured limits.
func rulesMarkdown(r config.RulesConfig) string {
	var b strings.Builder

	b.WriteString("# Règles de planification\n\n")
	b.WriteString("## Tâches\n\n")
	b.WriteString("- Le titre est obligatoire et unique dans le projet (sans tenir compte de la casse).\n")
	b.WriteString("- Les dates de début et d'échéance sont obligatoires et comprises dans les dates du projet.\n")
	b.WriteString("- Une nouvelle tâche ne peut pas commencer dans le passé.\n")
	fmt.Fprintf(&b, "- Une tâche dure au plus %d jour(s).\n", r.MaxTaskDurationDays)
	fmt.Fprintf(&b, "- Au plus %d tâche(s) commencent le même jour.\n", r.MaxTasksPerDay)
	fmt.Fprintf(&b, "- Une tâche a entre %d et %d responsable(s).\n", r.MinAssignees, r.MaxAssignees)
	b.WriteString("- Une tâche qui couvre toute la durée du projet doit impliquer chaque groupe.\n")
	b.WriteString("- Un membre déjà occupé sur la même période demande une confirmation.\n\n")

	b.WriteString("## Groupes\n\n")
	fmt.Fprintf(&b, "- Un groupe sans capacité déclarée accepte %d membre(s).\n", r.DefaultGroupCapacity)
	b.WriteString("- Un étudiant appartient à un seul groupe du projet.\n\n")

	b.WriteString("## Cycle de vie d'une tâche\n\n")
	writeTransitions(&b, taskTransitionTable(), taskStatusNames())
	b.WriteString("\nUne tâche non terminée dont l'échéance est dépassée passe en EN_RETARD.\n\n")

	b.WriteString("## Cycle de vie d'un projet\n\n")
	writeTransitions(&b, projectTransitionTable(), projectStatusNames())
	b.WriteString("\nLes autres changements demandent une confirmation. Un projet terminé ne peut pas être annulé.\n")

	return b.String()
}

func writeTransitions(b *strings.Builder, table map[string][]string, order []string) {
	b.WriteString("| Depuis | Vers |\n|---|---|\n")
	for _, from := range order {
		targets := table[from]
		if len(targets) == 0 {
			fmt.Fprintf(b, "| %s | (aucun) |\n", from)
			continue
		}
		fmt.Fprintf(b, "| %s | %s |\n", from, strings.Join(targets, ", "))
	}
}

func taskStatusNames() []string {
	var names []string
	for _, s := range constants.TaskStatuses() {
		names = append(names, string(s))
	}
	return names
}

func projectStatusNames() []string {
	var names []string
	for _, s := range constants.ProjectStatuses() {
		names = append(names, string(s))
	}
	return names
}
