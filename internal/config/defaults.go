package config

import (
	"github.com/mrz1836/classboard/internal/constants"
)

// Log rotation defaults.
const (
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 28
)

// DefaultConfig returns a Config holding the built-in defaults, the base
// layer under files, environment and flags.
func DefaultConfig() *Config {
	return &Config{
		Rules: RulesConfig{
			MaxTasksPerDay:       constants.MaxTasksPerDay,
			MaxTaskDurationDays:  constants.MaxTaskDurationDays,
			MinAssignees:         constants.MinAssignees,
			MaxAssignees:         constants.MaxAssignees,
			DefaultGroupCapacity: constants.DefaultGroupCapacity,
		},
		Store: StoreConfig{
			LockTimeout: constants.LockTimeout,
		},
		Log: LogConfig{
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
