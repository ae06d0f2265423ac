package validation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/classboard/internal/clock"
	"github.com/mrz1836/classboard/internal/constants"
	"github.com/mrz1836/classboard/internal/domain"
	cberrors "github.com/mrz1836/classboard/internal/errors"
)

// Options are the per-call inputs of Validate besides the draft itself.
type Options struct {
	// ConfirmedOverlaps is set on the second submission, after the user
	// accepted the overlap warnings.
	ConfirmedOverlaps bool
}

// Validator runs every task rule against a project snapshot.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	clock  clock.Clock
	loc    *time.Location
	limits Limits
	logger zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the clock used to compute "today".
func WithClock(c clock.Clock) Option {
	return func(v *Validator) {
		if c != nil {
			v.clock = c
		}
	}
}

// WithLocation sets the timezone in which "today" is computed.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// WithLimits overrides the rule limits. Non-positive fields keep their defaults.
func WithLimits(l Limits) Option {
	return func(v *Validator) {
		v.limits = l.withDefaults()
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// NewValidator creates a Validator using the real clock, the local timezone
// and the default limits unless overridden.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		clock:  clock.RealClock{},
		loc:    time.Local,
		limits: DefaultLimits(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Limits returns the limits in effect.
func (v *Validator) Limits() Limits {
	return v.limits
}

// Today returns the current calendar date in the validator's timezone.
func (v *Validator) Today() domain.Date {
	return domain.DateOf(v.clock.Now(), v.loc)
}

// Validate decides whether draft may be saved into project.
//
// Every blocking rule runs; when two rules flag the same field the first one
// keeps it, in this order: fields, dates, uniqueness, daily quota, groups.
// Overlaps never produce errors: they are reported in Warnings["overlap"] and
// Conflicts, and block only until opts.ConfirmedOverlaps is set.
//
// An error is returned only for malformed input: a nil project, a project
// without a valid date envelope, an unknown mode, or an edit without a task id.
func (v *Validator) Validate(draft domain.Task, project *domain.Project, mode constants.ValidationMode,
	opts Options,
) (Result, error) {
	if err := project.CheckEnvelope(); err != nil {
		return Result{}, err
	}
	switch mode {
	case constants.ModeCreate:
		// A new task is compared against every existing task.
		draft.ID = ""
	case constants.ModeEdit:
		if draft.ID == "" {
			return Result{}, fmt.Errorf("%w: edit mode requires the task id", cberrors.ErrMalformedInput)
		}
	default:
		return Result{}, fmt.Errorf("%w: unknown validation mode %q", cberrors.ErrMalformedInput, mode)
	}

	today := v.Today()
	errs := FieldErrors{}
	errs.Merge(CheckTaskFields(draft))
	errs.Merge(ValidateDates(draft, project, today, v.limits))
	errs.Merge(CheckUniqueness(draft, project))
	errs.Merge(CheckDailyQuota(draft, project, v.limits.MaxTasksPerDay))
	errs.Merge(CheckGroupRules(draft, project, v.limits))

	warnings := FieldWarnings{}
	conflicts := FindOverlaps(draft, project)
	if len(conflicts) > 0 {
		warnings.Add(constants.FieldOverlap, OverlapSummary(conflicts))
	}

	result := Result{
		Errors:    errs,
		Warnings:  warnings,
		Conflicts: conflicts,
		Blocked:   len(errs) > 0 || (len(conflicts) > 0 && !opts.ConfirmedOverlaps),
	}

	v.logger.Debug().
		Str("mode", string(mode)).
		Str("today", today.String()).
		Int("errors", len(errs)).
		Int("conflicts", len(conflicts)).
		Bool("confirmed", opts.ConfirmedOverlaps).
		Bool("blocked", result.Blocked).
		Msg("task draft validated")

	return result, nil
}
