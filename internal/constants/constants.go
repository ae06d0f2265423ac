// Package constants provides centralized constant values used throughout classboard.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Rule limits applied by the validation engine when no configuration overrides them.
const (
	// MaxTasksPerDay is the maximum number of tasks of one project that may
	// start on the same calendar date.
	MaxTasksPerDay = 3

	// MaxTaskDurationDays is the maximum number of days between a task's
	// start date and its due date.
	MaxTaskDurationDays = 90

	// MinAssignees is the minimum number of responsible parties on a task.
	MinAssignees = 1

	// MaxAssignees is the maximum number of responsible parties on a task.
	MaxAssignees = 5

	// DefaultGroupCapacity is the member capacity of a group that does not
	// declare one.
	DefaultGroupCapacity = 5

	// MaxProgress is the upper bound of a task's completion percentage.
	MaxProgress = 100
)

// Day is the length of one calendar day used for duration arithmetic.
const Day = 24 * time.Hour

// DateLayout is the wire format of every date in project snapshots.
const DateLayout = "2006-01-02"

// Directory names and paths used by classboard for organizing data.
const (
	// ClassboardHome is the hidden directory name where classboard stores all its data.
	// This directory is created in the user's home directory.
	ClassboardHome = ".classboard"

	// ProjectsDir is the directory name where project snapshots are stored.
	ProjectsDir = "projects"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"
)

// File names used for state persistence.
const (
	// ProjectFileName is the name of the JSON file that stores a project snapshot.
	ProjectFileName = "project.json"

	// LockFileName is the name of the lock file guarding a project snapshot.
	LockFileName = ".lock"

	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.classboard/logs/classboard.log
	CLILogFileName = "classboard.log"

	// GlobalConfigName is the name of the configuration file in both the
	// global and the project configuration directories.
	GlobalConfigName = "config.yaml"
)

// Store timing.
const (
	// LockTimeout is the maximum duration to wait for a snapshot lock.
	LockTimeout = 5 * time.Second

	// LockRetryInterval is the pause between two lock attempts.
	LockRetryInterval = 50 * time.Millisecond
)

// SnapshotSchemaVersion is the current version of the project snapshot format.
const SnapshotSchemaVersion = 1
