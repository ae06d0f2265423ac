package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/group"
	"github.com/mrz1836/classboard/internal/project"
	"github.com/mrz1836/classboard/internal/tui"
)

const confirmStatusQuestion = "Changer le statut du projet malgré les avertissements ?"

// addProjectCommand adds the project command and its subcommands.
func addProjectCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage project snapshots in the local store",
	}
	cmd.AddCommand(
		newProjectImportCmd(a),
		newProjectListCmd(a),
		newProjectShowCmd(a),
		newProjectExportCmd(a),
		newProjectStatusCmd(a),
	)
	root.AddCommand(cmd)
}

// ImportResponse is the JSON output of "project import".
type ImportResponse struct {
	ProjectID string           `json:"projectId"`
	Replaced  bool             `json:"replaced"`
	Overflows []group.Overflow `json:"overflows"`
}

func newProjectImportCmd(a *app) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a project snapshot into the local store",
		Long: `Read a JSON or YAML project snapshot, check it and store it under its id.
JSON files are checked against the snapshot schema. Groups holding more
members than their capacity are reported but not rejected.

Examples:
  classboard project import web-2024.json
  classboard project import web-2024.yaml --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectImport(cmd.Context(), a, args[0], replace, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite a stored project with the same id")
	return cmd
}

func runProjectImport(ctx context.Context, a *app, path string, replace bool, w io.Writer) error {
	p, err := project.LoadSnapshot(path)
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}

	resp := ImportResponse{ProjectID: p.ID, Overflows: group.CheckCapacity(p, a.cfg.Rules.DefaultGroupCapacity)}
	err = store.Create(ctx, p)
	if stderrors.Is(err, errors.ErrProjectExists) && replace {
		err = store.Update(ctx, p)
		resp.Replaced = true
	}
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("project_id", p.ID).
		Bool("replaced", resp.Replaced).
		Int("groups", len(p.Groups)).
		Int("tasks", len(p.Tasks)).
		Msg("project imported")

	out := a.output(w)
	if tui.IsJSON(out) {
		if resp.Overflows == nil {
			resp.Overflows = []group.Overflow{}
		}
		return out.JSON(resp)
	}
	for _, o := range resp.Overflows {
		out.Warning(fmt.Sprintf("Le groupe %s dépasse sa capacité (%d/%d).", o.Name, o.Members, o.Capacity))
	}
	out.Success(fmt.Sprintf("Projet %s importé (%d groupe(s), %d tâche(s)).", p.ID, len(p.Groups), len(p.Tasks)))
	return nil
}

func newProjectListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjectList(cmd.Context(), a, cmd.OutOrStdout())
		},
	}
}

func runProjectList(ctx context.Context, a *app, w io.Writer) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	projects, err := store.List(ctx)
	if err != nil {
		return err
	}

	out := a.output(w)
	if tui.IsJSON(out) {
		if projects == nil {
			projects = []*domain.Project{}
		}
		return out.JSON(projects)
	}
	if len(projects) == 0 {
		out.Info("Aucun projet. Importez-en un avec 'classboard project import FICHIER'.")
		return nil
	}
	return out.Table(tui.ProjectTable(projects))
}

func newProjectShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show the groups and tasks of a stored project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectShow(cmd.Context(), a, args[0], cmd.OutOrStdout())
		},
	}
}

func runProjectShow(ctx context.Context, a *app, id string, w io.Writer) error {
	store, err := a.store()
	if err != nil {
		return err
	}
	p, err := store.Get(ctx, id)
	if err != nil {
		return err
	}

	out := a.output(w)
	if tui.IsJSON(out) {
		return out.JSON(p)
	}

	status := p.Status
	if status == "" {
		status = constants.ProjectStatusPlanned
	}
	_, _ = fmt.Fprintf(w, "%s  %s\n", tui.StyleBold.Render(p.Name), tui.FormatStatus(status))
	_, _ = fmt.Fprintf(w, "%s → %s\n\n", p.StartDate, p.EndDate)
	if err := out.Table(tui.GroupTable(p.Groups, a.cfg.Rules.DefaultGroupCapacity)); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w)
	if members := tui.MemberTable(p.Groups); members.Len() > 0 {
		if err := out.Table(members); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w)
	}
	if len(p.Tasks) == 0 {
		out.Info("Aucune tâche.")
		return nil
	}
	return out.Table(tui.TaskTable(p.Tasks))
}

func newProjectExportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a stored project as a JSON or YAML snapshot",
		Long: `Write a stored project to stdout in the snapshot format accepted by
'project import' and '--project'.

Examples:
  classboard project export web-2024 > web-2024.json
  classboard project export web-2024 --format yaml > web-2024.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectExport(cmd.Context(), a, args[0], format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", string(project.FormatJSON), "snapshot format (json|yaml)")
	return cmd
}

func runProjectExport(ctx context.Context, a *app, id, format string, w io.Writer) error {
	f := project.Format(format)
	if f != project.FormatJSON && f != project.FormatYAML {
		return fmt.Errorf("%w: format %q", errors.ErrUnsupportedFormat, format)
	}
	store, err := a.store()
	if err != nil {
		return err
	}
	p, err := store.Get(ctx, id)
	if err != nil {
		return err
	}
	data, err := project.EncodeSnapshot(p, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// projectStatusOptions holds the flags of "project status".
type projectStatusOptions struct {
	projectID string
	to        string
	yes       bool
}

// ProjectStatusResponse is the JSON output of "project status".
type ProjectStatusResponse struct {
	StatusChange
	Decision project.Decision `json:"decision"`
	Applied  bool             `json:"applied"`
}

func newProjectStatusCmd(a *app) *cobra.Command {
	var opts projectStatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Change the status of a stored project",
		Long: `Change a project status. Usual changes:

  PLANIFIE → EN_COURS | ANNULE
  EN_COURS → TERMINE | ANNULE
  ANNULE   → PLANIFIE

Other changes, and statuses that disagree with the project dates, raise
warnings that need a confirmation (--yes). A finished project cannot be
canceled and a project cannot be finished before its end date.

Examples:
  classboard project status --project-id web-2024 --to EN_COURS
  classboard project status --project-id web-2024 --to PLANIFIE --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProjectStatus(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.projectID, "project-id", "", "id of the stored project")
	cmd.Flags().StringVar(&opts.to, "to", "", "target status (PLANIFIE|EN_COURS|TERMINE|ANNULE)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "confirm warnings without asking")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runProjectStatus(ctx context.Context, a *app, opts projectStatusOptions, w io.Writer) error {
	out := a.output(w)
	to := constants.ProjectStatus(opts.to)

	today, err := a.today()
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}

	// Decide outside the lock so the prompt does not hold it.
	current, err := store.Get(ctx, opts.projectID)
	if err != nil {
		return err
	}
	d, err := project.CheckTransition(current, to, today)
	if err != nil {
		return err
	}
	confirmed := opts.yes
	if len(d.Errors) == 0 && len(d.Warnings) > 0 && !confirmed && !tui.IsJSON(out) {
		tui.RenderFindings(out, d.Errors, d.Warnings)
		if confirmed, err = a.askConfirmation(false, confirmStatusQuestion, ""); err != nil {
			return err
		}
	}

	resp := ProjectStatusResponse{StatusChange: StatusChange{ProjectID: opts.projectID, To: string(to)}}
	_, err = store.Modify(ctx, opts.projectID, func(p *domain.Project) error {
		resp.From = string(p.Status)
		if resp.From == "" {
			resp.From = string(constants.ProjectStatusPlanned)
		}
		updated, decision, err := project.Apply(p, to, today, confirmed)
		resp.Decision = decision
		if err != nil {
			return err
		}
		*p = *updated
		resp.Applied = true
		return nil
	})

	zerolog.Ctx(ctx).Info().
		Str("project_id", opts.projectID).
		Str("from", resp.From).
		Str("to", resp.To).
		Bool("applied", resp.Applied).
		Msg("project status change")

	if tui.IsJSON(out) {
		if jsonErr := out.JSON(resp); jsonErr != nil {
			return jsonErr
		}
		return err
	}
	if err != nil {
		if stderrors.Is(err, errors.ErrTransitionBlocked) {
			tui.RenderFindings(out, resp.Decision.Errors, nil)
		}
		return err
	}
	tui.RenderFindings(out, nil, resp.Decision.Warnings)
	out.Success(fmt.Sprintf("Projet %s : %s → %s", opts.projectID,
		tui.FormatStatus(constants.ProjectStatus(resp.From)), tui.FormatStatus(to)))
	return nil
}
