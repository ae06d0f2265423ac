// Package config provides configuration management for classboard with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides or ApplyOverrides)
//  2. Environment variables (CLASSBOARD_* prefix, a .env file is read first)
//  3. Project config (.classboard/config.yaml)
//  4. Global config (~/.classboard/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure for classboard.
type Config struct {
	// Rules holds the tunable limits of the validation engine.
	Rules RulesConfig `yaml:"rules" mapstructure:"rules"`

	// Time controls how "today" is computed.
	Time TimeConfig `yaml:"time" mapstructure:"time"`

	// Store locates the local snapshot store.
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Log controls the rotating CLI log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// RulesConfig contains the numbers behind the task rules.
type RulesConfig struct {
	// MaxTasksPerDay is the number of tasks of one project allowed to start
	// on the same date.
	// Default: 3, Valid range: 1-50
	MaxTasksPerDay int `yaml:"max_tasks_per_day" mapstructure:"max_tasks_per_day"`

	// MaxTaskDurationDays caps the span between start and due dates.
	// Default: 90, Valid range: 1-366
	MaxTaskDurationDays int `yaml:"max_task_duration_days" mapstructure:"max_task_duration_days"`

	// MinAssignees and MaxAssignees bound the responsible parties of a task.
	// Defaults: 1 and 5
	MinAssignees int `yaml:"min_assignees" mapstructure:"min_assignees"`
	MaxAssignees int `yaml:"max_assignees" mapstructure:"max_assignees"`

	// DefaultGroupCapacity applies to groups that declare no capacity.
	// Default: 5
	DefaultGroupCapacity int `yaml:"default_group_capacity" mapstructure:"default_group_capacity"`
}

// TimeConfig contains calendar settings.
type TimeConfig struct {
	// Timezone is an IANA zone name ("Europe/Paris"). Empty means the
	// system local zone.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// StoreConfig contains settings for the snapshot store.
type StoreConfig struct {
	// Dir is the store root. Empty means ~/.classboard.
	Dir string `yaml:"dir" mapstructure:"dir"`

	// LockTimeout bounds the wait for a project lock.
	// Default: 5s
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
}

// LogConfig contains settings for the CLI log file.
type LogConfig struct {
	// File is the log file path. Empty means ~/.classboard/logs/classboard.log.
	File string `yaml:"file" mapstructure:"file"`

	// MaxSizeMB is the size at which the file is rotated.
	MaxSizeMB int `yaml:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups is the number of rotated files kept.
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days"`

	// Disabled turns file logging off.
	Disabled bool `yaml:"disabled" mapstructure:"disabled"`
}

// Location resolves the configured timezone.
func (t TimeConfig) Location() (*time.Location, error) {
	if t.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(t.Timezone)
}
