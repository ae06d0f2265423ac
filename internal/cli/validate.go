package cli

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/project"
	"github.com/mrz1836/classboard/internal/tui"
	"github.com/mrz1836/classboard/internal/validation"
)

const confirmOverlapQuestion = "Continuer malgré les conflits de planning ?"

// validateTaskOptions holds the flags of "validate task".
type validateTaskOptions struct {
	source          projectSource
	draft           string
	mode            string
	confirmOverlaps bool
	yes             bool
}

// addValidateCommand adds the validate command and its subcommands.
func addValidateCommand(root *cobra.Command, a *app) {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check task drafts against the project rules",
	}
	cmd.AddCommand(newValidateTaskCmd(a), newValidateBatchCmd(a))
	root.AddCommand(cmd)
}

func newValidateTaskCmd(a *app) *cobra.Command {
	var opts validateTaskOptions

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Validate one task draft",
		Long: `Validate a task draft against a project and print the blocking errors
and the warnings.

When only member overlaps block the draft, a terminal session asks whether to
continue anyway. --confirm-overlaps accepts them up front and --yes answers
the question.

Examples:
  classboard validate task --project web.json --draft task.yaml
  classboard validate task --project-id web-2024 --draft task.json --mode edit
  classboard validate task --project web.json --draft task.json -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidateTask(cmd.Context(), a, opts, cmd.OutOrStdout())
		},
	}

	addProjectSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.draft, "draft", "", "task draft file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&opts.mode, "mode", string(constants.ModeCreate), "validation mode (create|edit)")
	cmd.Flags().BoolVar(&opts.confirmOverlaps, "confirm-overlaps", false, "accept member overlaps")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "answer yes to the overlap question")
	_ = cmd.MarkFlagRequired("draft")

	return cmd
}

// parseMode checks the --mode flag.
func parseMode(s string) (constants.ValidationMode, error) {
	mode := constants.ValidationMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: mode %q must be create or edit", errors.ErrInvalidArgument, s)
	}
	return mode, nil
}

func runValidateTask(ctx context.Context, a *app, opts validateTaskOptions, w io.Writer) error {
	logger := zerolog.Ctx(ctx)

	mode, err := parseMode(opts.mode)
	if err != nil {
		return err
	}
	p, err := a.loadProject(ctx, opts.source)
	if err != nil {
		return err
	}
	draft, err := project.LoadDraft(opts.draft)
	if err != nil {
		return err
	}
	v, err := a.validator(*logger)
	if err != nil {
		return err
	}

	res, err := v.Validate(draft, p, mode, validation.Options{ConfirmedOverlaps: opts.confirmOverlaps})
	if err != nil {
		return err
	}

	out := a.output(w)
	if res.NeedsConfirmation() && !tui.IsJSON(out) {
		if err := tui.RenderResult(out, res); err != nil {
			return err
		}
		ok, err := a.askConfirmation(opts.yes, confirmOverlapQuestion, res.Warnings[constants.FieldOverlap])
		if err != nil {
			return err
		}
		if !ok {
			return blocked(errors.ErrConfirmationRequired, "%d overlap(s) not confirmed", len(res.Conflicts))
		}
		if res, err = v.Validate(draft, p, mode, validation.Options{ConfirmedOverlaps: true}); err != nil {
			return err
		}
		out.Info("Conflits de planning confirmés.")
	} else if res.NeedsConfirmation() && opts.yes {
		if res, err = v.Validate(draft, p, mode, validation.Options{ConfirmedOverlaps: true}); err != nil {
			return err
		}
	}

	logger.Info().
		Str("project_id", p.ID).
		Str("mode", string(mode)).
		Bool("blocked", res.Blocked).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Msg("task validated")

	if err := tui.RenderResult(out, res); err != nil {
		return err
	}
	return resultError(res)
}

// resultError maps a blocked result to an ExitBlocked error.
func resultError(res validation.Result) error {
	switch {
	case !res.Valid():
		return blocked(errors.ErrValidationBlocked, "%d field error(s)", len(res.Errors))
	case res.Blocked:
		return blocked(errors.ErrConfirmationRequired, "%d overlap(s) not confirmed", len(res.Conflicts))
	default:
		return nil
	}
}

// batchOptions holds the flags of "validate batch".
type batchOptions struct {
	source          projectSource
	mode            string
	confirmOverlaps bool
	workers         int
}

// BatchItem is the result of one draft in a batch.
type BatchItem struct {
	Draft  string             `json:"draft"`
	TaskID string             `json:"taskId,omitempty"`
	Result *validation.Result `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func newValidateBatchCmd(a *app) *cobra.Command {
	var opts batchOptions

	cmd := &cobra.Command{
		Use:   "batch DRAFT...",
		Short: "Validate several task drafts against one project",
		Long: `Validate every draft independently against the same project snapshot.
Drafts are checked concurrently and reported in argument order. Drafts do not
see each other: each is compared with the tasks already in the project.

Examples:
  classboard validate batch --project web.json drafts/*.yaml
  classboard validate batch --project-id web-2024 a.json b.json -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateBatch(cmd.Context(), a, opts, args, cmd.OutOrStdout())
		},
	}

	addProjectSourceFlags(cmd, &opts.source)
	cmd.Flags().StringVar(&opts.mode, "mode", string(constants.ModeCreate), "validation mode (create|edit)")
	cmd.Flags().BoolVar(&opts.confirmOverlaps, "confirm-overlaps", false, "accept member overlaps")
	cmd.Flags().IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of drafts validated at once")

	return cmd
}

func runValidateBatch(ctx context.Context, a *app, opts batchOptions, drafts []string, w io.Writer) error {
	logger := zerolog.Ctx(ctx)

	mode, err := parseMode(opts.mode)
	if err != nil {
		return err
	}
	p, err := a.loadProject(ctx, opts.source)
	if err != nil {
		return err
	}
	v, err := a.validator(*logger)
	if err != nil {
		return err
	}

	items := validateDrafts(ctx, v, p, mode, validation.Options{ConfirmedOverlaps: opts.confirmOverlaps}, drafts, opts.workers)
	if err := ctx.Err(); err != nil {
		return err
	}

	out := a.output(w)
	failed, rejected := 0, 0
	for _, item := range items {
		switch {
		case item.Error != "":
			failed++
		case item.Result.Blocked:
			rejected++
		}
	}
	logger.Info().
		Int("drafts", len(items)).
		Int("rejected", rejected).
		Int("failed", failed).
		Msg("batch validated")

	if tui.IsJSON(out) {
		if err := out.JSON(items); err != nil {
			return err
		}
	} else if err := renderBatch(out, w, items); err != nil {
		return err
	}

	switch {
	case failed > 0:
		return errors.NewExitCodeError(ExitInvalidInput,
			fmt.Errorf("%w: %d of %d draft(s) could not be read", errors.ErrMalformedInput, failed, len(items)))
	case rejected > 0:
		return blocked(errors.ErrValidationBlocked, "%d of %d draft(s) rejected", rejected, len(items))
	default:
		return nil
	}
}

// validateDrafts validates every draft concurrently. The engine is pure, so
// the shared project and validator need no locking. Per-draft failures are
// recorded in the item, never returned.
func validateDrafts(ctx context.Context, v *validation.Validator, p *domain.Project, mode constants.ValidationMode,
	opts validation.Options, drafts []string, workers int,
) []BatchItem {
	items := make([]BatchItem, len(drafts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, path := range drafts {
		g.Go(func() error {
			items[i] = BatchItem{Draft: path}
			if err := gctx.Err(); err != nil {
				items[i].Error = err.Error()
				return nil
			}
			draft, err := project.LoadDraft(path)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].TaskID = draft.ID
			res, err := v.Validate(draft, p, mode, opts)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// renderBatch prints one section per draft followed by a summary line.
func renderBatch(out tui.Output, w io.Writer, items []BatchItem) error {
	accepted := 0
	for _, item := range items {
		_, _ = fmt.Fprintf(w, "\n%s\n", tui.StyleBold.Render("── "+item.Draft))
		if item.Error != "" {
			out.Error(fmt.Errorf("%s", item.Error)) //nolint:err113 // already formatted
			continue
		}
		if err := tui.RenderResult(out, *item.Result); err != nil {
			return err
		}
		if !item.Result.Blocked {
			accepted++
		}
	}
	_, _ = fmt.Fprintln(w)
	out.Info(fmt.Sprintf("%d/%d brouillon(s) accepté(s).", accepted, len(items)))
	return nil
}

