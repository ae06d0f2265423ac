package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/classboard/internal/config"
	"github.com/mrz1836/classboard/internal/domain"
	"github.com/mrz1836/classboard/internal/errors"
	"github.com/mrz1836/classboard/internal/project"
	"github.com/mrz1836/classboard/internal/tui"
	"github.com/mrz1836/classboard/internal/validation"
)

// projectSource selects where a command reads its project from.
type projectSource struct {
	file string
	id   string
}

// addProjectSourceFlags registers --project and --project-id, exactly one
// of which must be given.
func addProjectSourceFlags(cmd *cobra.Command, src *projectSource) {
	cmd.Flags().StringVar(&src.file, "project", "", "project snapshot file (.json, .yaml, .yml)")
	cmd.Flags().StringVar(&src.id, "project-id", "", "id of a project in the local store")
	cmd.MarkFlagsMutuallyExclusive("project", "project-id")
	cmd.MarkFlagsOneRequired("project", "project-id")
}

// output returns the output for the selected format.
func (a *app) output(w io.Writer) tui.Output {
	return tui.NewOutput(w, a.flags.Output)
}

// location returns the configured timezone.
func (a *app) location() (*time.Location, error) {
	loc, err := a.cfg.Time.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", errors.ErrInvalidTimezone, a.cfg.Time.Timezone, err)
	}
	return loc, nil
}

// today returns the current calendar date in the configured timezone.
func (a *app) today() (domain.Date, error) {
	loc, err := a.location()
	if err != nil {
		return domain.Date{}, err
	}
	return domain.DateOf(a.clock.Now(), loc), nil
}

// validator builds the engine with the configured limits.
func (a *app) validator(logger zerolog.Logger) (*validation.Validator, error) {
	loc, err := a.location()
	if err != nil {
		return nil, err
	}
	return validation.NewValidator(
		validation.WithClock(a.clock),
		validation.WithLocation(loc),
		validation.WithLimits(limitsFromConfig(a.cfg.Rules)),
		validation.WithLogger(logger),
	), nil
}

// limitsFromConfig maps the rules section to engine limits.
func limitsFromConfig(r config.RulesConfig) validation.Limits {
	return validation.Limits{
		MaxTasksPerDay:  r.MaxTasksPerDay,
		MaxDurationDays: r.MaxTaskDurationDays,
		MinAssignees:    r.MinAssignees,
		MaxAssignees:    r.MaxAssignees,
	}
}

// store opens the snapshot store.
func (a *app) store() (*project.FileStore, error) {
	dir, err := a.cfg.StoreDir()
	if err != nil {
		return nil, err
	}
	return project.NewFileStore(dir, project.WithLockTimeout(a.cfg.Store.LockTimeout))
}

// loadProject reads the project named by src.
func (a *app) loadProject(ctx context.Context, src projectSource) (*domain.Project, error) {
	if src.file != "" {
		return project.LoadSnapshot(src.file)
	}
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	return store.Get(ctx, src.id)
}

// askConfirmation returns true when assumeYes is set, or when the user
// accepts the prompt. JSON output never prompts.
func (a *app) askConfirmation(assumeYes bool, question, details string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if a.flags.Output == OutputJSON || a.confirm == nil {
		return false, nil
	}
	return a.confirm(question, details)
}

// blocked wraps sentinel in an ExitBlocked error.
func blocked(sentinel error, format string, args ...any) error {
	return errors.NewExitCodeError(ExitBlocked, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}
