package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/project"
	"github.com/mrz1836/classboard/internal/task"
	"github.com/mrz1836/classboard/internal/tui"
	"github.com/mrz1836/classboard/internal/validation"
)

// addTaskCommand adds the task command and its subcommands.
func addTaskCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add tasks and change their status in the local store",
	}
	cmd.AddCommand(newTaskAddCmd(a), newTaskStatusCmd(a), newTaskRefreshCmd(a))
	root.AddCommand(cmd)
}

// taskAddOptions holds the flags of "task add".
type taskAddOptions struct {
	projectID string
	draft     string
	yes       bool
}

// TaskAddResponse is the JSON output of "task add".
type TaskAddResponse struct {
	ProjectID string            `json:"projectId"`
	Task      domain.Task       `json:"task"`
	Result    validation.Result `json:"result"`
}

func newTaskAddCmd(a *app) *cobra.Command {
	var opts taskAddOptions

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Validate a draft and add it to a stored project",
		Long: `Validate a task draft in create mode and, when the rules accept it, store it
in the project with a new id. Overlapping members ask for a confirmation
unless --yes is given.

Examples:
  classboard task add --project-id web-2024 --draft task.yaml
  classboard task add --project-id web-2024 --draft task.yaml --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskAdd(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.projectID, "project-id", "", "id of the stored project")
	cmd.Flags().StringVar(&opts.draft, "draft", "", "task draft file (.json, .yaml, .yml)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "accept member overlaps without asking")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("draft")

	return cmd
}

func runTaskAdd(ctx context.Context, a *app, opts taskAddOptions, w io.Writer) error {
	logger := zerolog.Ctx(ctx)
	out := a.output(w)

	draft, err := project.LoadDraft(opts.draft)
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}
	v, err := a.validator(*logger)
	if err != nil {
		return err
	}

	// First pass outside the lock so the prompt does not hold it.
	current, err := store.Get(ctx, opts.projectID)
	if err != nil {
		return err
	}
	res, err := v.Validate(draft, current, constants.ModeCreate, validation.Options{ConfirmedOverlaps: opts.yes})
	if err != nil {
		return err
	}
	if !res.Valid() {
		if err := tui.RenderResult(out, res); err != nil {
			return err
		}
		return resultError(res)
	}
	confirmed := opts.yes
	if res.NeedsConfirmation() {
		if err := tui.RenderResult(out, res); err != nil {
			return err
		}
		if confirmed, err = a.askConfirmation(false, confirmOverlapQuestion, res.Warnings[constants.FieldOverlap]); err != nil {
			return err
		}
		if !confirmed {
			return resultError(res)
		}
	}

	// Second pass under the lock against the latest snapshot.
	var added domain.Task
	_, err = store.Modify(ctx, opts.projectID, func(p *domain.Project) error {
		res, err = v.Validate(draft, p, constants.ModeCreate, validation.Options{ConfirmedOverlaps: confirmed})
		if err != nil {
			return err
		}
		if res.Blocked {
			return resultError(res)
		}
		added = draft.Clone()
		added.ID = uuid.NewString()
		if added.Status == "" {
			added.Status = constants.TaskStatusTodo
		}
		p.Tasks = append(p.Tasks, added)
		return nil
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrValidationBlocked) || stderrors.Is(err, errors.ErrConfirmationRequired) {
			_ = tui.RenderResult(out, res)
		}
		return err
	}

	logger.Info().
		Str("project_id", opts.projectID).
		Str("task_id", added.ID).
		Int("warnings", len(res.Warnings)).
		Msg("task added")

	if tui.IsJSON(out) {
		return out.JSON(TaskAddResponse{ProjectID: opts.projectID, Task: added, Result: res})
	}
	out.Success(fmt.Sprintf("Tâche « %s » ajoutée au projet %s (id %s).", added.Title, opts.projectID, added.ID))
	return nil
}

// taskStatusOptions holds the flags of "task status".
type taskStatusOptions struct {
	projectID string
	taskID    string
	to        string
	next      bool
}

// StatusChange is the JSON output of a status change.
type StatusChange struct {
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
}

func newTaskStatusCmd(a *app) *cobra.Command {
	var opts taskStatusOptions

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Change the status of a stored task",
		Long: `Move a task along its life cycle:

  A_FAIRE → EN_COURS → TERMINEE → A_FAIRE, and EN_RETARD → EN_COURS.

Starting requires the start date to be reached and the due date not passed.
Finishing requires the task to be in progress and assigned.

Examples:
  classboard task status --project-id web-2024 --task t-1 --to EN_COURS
  classboard task status --project-id web-2024 --task t-1 --next`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskStatus(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.projectID, "project-id", "", "id of the stored project")
	cmd.Flags().StringVar(&opts.taskID, "task", "", "task id")
	cmd.Flags().StringVar(&opts.to, "to", "", "target status (A_FAIRE|EN_COURS|TERMINEE)")
	cmd.Flags().BoolVar(&opts.next, "next", false, "move to the next status in the cycle")
	_ = cmd.MarkFlagRequired("project-id")
	_ = cmd.MarkFlagRequired("task")
	cmd.MarkFlagsMutuallyExclusive("to", "next")
	cmd.MarkFlagsOneRequired("to", "next")

	return cmd
}

func runTaskStatus(ctx context.Context, a *app, opts taskStatusOptions, w io.Writer) error {
	logger := zerolog.Ctx(ctx)

	today, err := a.today()
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}

	change := StatusChange{ProjectID: opts.projectID, TaskID: opts.taskID}
	_, err = store.Modify(ctx, opts.projectID, func(p *domain.Project) error {
		t, ok := p.Task(opts.taskID)
		if !ok {
			return fmt.Errorf("task '%s': %w", opts.taskID, errors.ErrTaskNotFound)
		}
		from := t.Status
		if from == "" {
			from = constants.TaskStatusTodo
		}

		var updated domain.Task
		if opts.next {
			updated, err = task.Next(*t, today)
		} else {
			updated, err = task.HandleStatusChange(*t, constants.TaskStatus(opts.to), today)
		}
		if err != nil {
			return err
		}
		*t = updated
		change.From, change.To = string(from), string(updated.Status)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("project_id", change.ProjectID).
		Str("task_id", change.TaskID).
		Str("from", change.From).
		Str("to", change.To).
		Msg("task status changed")

	out := a.output(w)
	if tui.IsJSON(out) {
		return out.JSON(change)
	}
	out.Success(fmt.Sprintf("Tâche %s : %s → %s", change.TaskID,
		tui.FormatStatus(constants.TaskStatus(change.From)), tui.FormatStatus(constants.TaskStatus(change.To))))
	return nil
}

// RefreshResponse is the JSON output of "task refresh".
type RefreshResponse struct {
	ProjectID string   `json:"projectId"`
	Late      []string `json:"late"`
}

func newTaskRefreshCmd(a *app) *cobra.Command {
	var projectID string

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Mark overdue tasks as EN_RETARD",
		Long: `Move every unfinished task whose due date has passed to EN_RETARD.

Example:
  classboard task refresh --project-id web-2024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTaskRefresh(cmd.Context(), a, projectID, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&projectID, "project-id", "", "id of the stored project")
	_ = cmd.MarkFlagRequired("project-id")
	return cmd
}

func runTaskRefresh(ctx context.Context, a *app, projectID string, w io.Writer) error {
	today, err := a.today()
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}

	var late []string
	_, err = store.Modify(ctx, projectID, func(p *domain.Project) error {
		p.Tasks, late = task.RefreshOverdue(p.Tasks, today)
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("project_id", projectID).
		Int("late", len(late)).
		Msg("overdue tasks refreshed")

	out := a.output(w)
	if tui.IsJSON(out) {
		if late == nil {
			late = []string{}
		}
		return out.JSON(RefreshResponse{ProjectID: projectID, Late: late})
	}
	if len(late) == 0 {
		out.Info("Aucune tâche en retard.")
		return nil
	}
	for _, id := range late {
		out.Warning(fmt.Sprintf("Tâche %s passée en %s", id, constants.TaskStatusLate))
	}
	return nil
}
