package config

import (
	"github.com/mrz1836/classboard/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - rules.max_tasks_per_day must be between 1 and 50
//   - rules.max_task_duration_days must be between 1 and 366
//   - rules.min_assignees must be at least 1 and not above rules.max_assignees
//   - rules.default_group_capacity must be at least 1
//   - time.timezone must be a known IANA zone
//   - store.lock_timeout must be positive
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateRulesConfig(&cfg.Rules); err != nil {
		return err
	}
	if _, err := cfg.Time.Location(); err != nil {
		return errors.Wrapf(errors.ErrInvalidTimezone, "time.timezone %q: %v", cfg.Time.Timezone, err)
	}
	if cfg.Store.LockTimeout <= 0 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"store.lock_timeout must be positive, got %s", cfg.Store.LockTimeout)
	}
	if cfg.Log.MaxSizeMB < 0 || cfg.Log.MaxBackups < 0 || cfg.Log.MaxAgeDays < 0 {
		return errors.Wrap(errors.ErrValueOutOfRange, "log rotation settings cannot be negative")
	}
	return nil
}

func validateRulesConfig(cfg *RulesConfig) error {
	if cfg.MaxTasksPerDay < 1 || cfg.MaxTasksPerDay > 50 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.max_tasks_per_day must be between 1 and 50, got %d", cfg.MaxTasksPerDay)
	}
	if cfg.MaxTaskDurationDays < 1 || cfg.MaxTaskDurationDays > 366 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.max_task_duration_days must be between 1 and 366, got %d", cfg.MaxTaskDurationDays)
	}
	if cfg.MinAssignees < 1 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.min_assignees must be at least 1, got %d", cfg.MinAssignees)
	}
	if cfg.MaxAssignees < cfg.MinAssignees {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.max_assignees (%d) must not be below rules.min_assignees (%d)", cfg.MaxAssignees, cfg.MinAssignees)
	}
	if cfg.DefaultGroupCapacity < 1 {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.default_group_capacity must be at least 1, got %d", cfg.DefaultGroupCapacity)
	}
	return nil
}
